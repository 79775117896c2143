// file: viewstate/actions.go
package viewstate

// FetchStart marks the primary data as loading and clears the error.
type FetchStart struct{}

// FetchSuccess replaces the primary data wholesale.
type FetchSuccess[T any] struct{ Payload T }

// FetchError replaces the screen with a blocking error.
type FetchError struct{ Message string }

// SetMessage queues a non-blocking notification.
type SetMessage struct{ Message string }

// ClearMessage dismisses the notification.
type ClearMessage struct{}

// OpenConfirm opens a confirmation dialog for Target.
type OpenConfirm[T any] struct {
	Target T
	Prompt string
}

// CloseConfirm dismisses the confirmation dialog.
type CloseConfirm struct{}

// ActionStart and ActionDone bracket a mutation for disabled controls.
type ActionStart struct{}
type ActionDone struct{}

func (FetchStart) isAction()      {}
func (FetchSuccess[T]) isAction() {}
func (FetchError) isAction()      {}
func (SetMessage) isAction()      {}
func (ClearMessage) isAction()    {}
func (OpenConfirm[T]) isAction()  {}
func (CloseConfirm) isAction()    {}
func (ActionStart) isAction()     {}
func (ActionDone) isAction()      {}

// Status is embedded in every container state.
type Status struct {
	Loading bool
	Busy    bool
	Error   string
	Message string
}

// Pending is a confirmation dialog.
type Pending[T any] struct {
	Open   bool
	Target T
	Prompt string
}

// reduceStatus handles the transitions every container shares.
func reduceStatus(st Status, a Action) (Status, bool) {
	switch a := a.(type) {
	case FetchStart:
		st.Loading = true
		st.Error = ""
	case FetchError:
		st.Loading = false
		st.Error = a.Message
		st.Message = a.Message
	case SetMessage:
		st.Message = a.Message
	case ClearMessage:
		st.Message = ""
	case ActionStart:
		st.Busy = true
	case ActionDone:
		st.Busy = false
	default:
		return st, false
	}
	return st, true
}

// reducePending handles OpenConfirm/CloseConfirm for one dialog.
func reducePending[T any](p Pending[T], a Action) (Pending[T], bool) {
	switch a := a.(type) {
	case OpenConfirm[T]:
		return Pending[T]{Open: true, Target: a.Target, Prompt: a.Prompt}, true
	case CloseConfirm:
		return Pending[T]{}, true
	}
	return p, false
}
