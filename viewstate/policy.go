// file: viewstate/policy.go
package viewstate

// SyncPolicy says how a confirmed mutation reaches the loaded collection.
type SyncPolicy int

const (
	// Splice replaces or inserts the returned entity by id.
	Splice SyncPolicy = iota
	// Refetch reloads the collection; used when the server computes fields
	// the client cannot (ban expiry, ordering).
	Refetch
	// SpliceThenRefetch shows the returned entity at once and then reloads.
	SpliceThenRefetch
	// Replace swaps in the collection the server returned.
	Replace
)

func (p SyncPolicy) String() string {
	switch p {
	case Splice:
		return "splice"
	case Refetch:
		return "refetch"
	case SpliceThenRefetch:
		return "splice+refetch"
	case Replace:
		return "replace"
	}
	return "unknown"
}

func (p SyncPolicy) splices() bool  { return p == Splice || p == SpliceThenRefetch }
func (p SyncPolicy) refetches() bool { return p == Refetch || p == SpliceThenRefetch }

// Op names a mutation.
type Op string

const (
	OpCreate    Op = "create"
	OpUpdate    Op = "update"
	OpDelete    Op = "delete"
	OpBan       Op = "ban"
	OpUnban     Op = "unban"
	OpCrawl     Op = "crawl"
	OpCalculate Op = "calculate"
)

// Policies is one entity's table.
type Policies map[Op]SyncPolicy

// For returns the policy for op, Refetch when undeclared.
func (p Policies) For(op Op) SyncPolicy {
	if policy, ok := p[op]; ok {
		return policy
	}
	return Refetch
}

// Per-entity tables. Rankings refetch after create and update because the
// server reorders and recomputes winRate; member bans refetch because the
// server owns the expiry timestamp.
var (
	GamePolicies = Policies{
		OpCreate: Refetch,
		OpUpdate: Replace,
		OpDelete: Refetch,
		OpCrawl:  Refetch,
	}
	TeamPolicies = Policies{
		OpCreate: Splice,
		OpUpdate: Splice,
		OpDelete: Splice,
	}
	RankingPolicies = Policies{
		OpCreate:    SpliceThenRefetch,
		OpUpdate:    SpliceThenRefetch,
		OpDelete:    Splice,
		OpCrawl:     Replace,
		OpCalculate: Replace,
	}
	MemberPolicies = Policies{
		OpUpdate: SpliceThenRefetch,
		OpDelete: Refetch,
		OpBan:    Refetch,
		OpUnban:  Refetch,
	}
	CommentPolicies = Policies{
		OpCreate: Refetch,
		OpUpdate: Refetch,
		OpDelete: Refetch,
	}
)

// spliceByID replaces the element with item's id, or appends it.
func spliceByID[T any](list []T, item T, id func(T) int64) []T {
	out := make([]T, 0, len(list)+1)
	found := false
	for _, el := range list {
		if id(el) == id(item) {
			out = append(out, item)
			found = true
			continue
		}
		out = append(out, el)
	}
	if !found {
		out = append(out, item)
	}
	return out
}

// removeByID drops the element with the given id.
func removeByID[T any](list []T, target int64, id func(T) int64) []T {
	out := make([]T, 0, len(list))
	for _, el := range list {
		if id(el) != target {
			out = append(out, el)
		}
	}
	return out
}
