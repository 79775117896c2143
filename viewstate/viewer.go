// file: viewstate/viewer.go
package viewstate

import (
	"context"
	"time"

	"go-ballpark/models"
)

// Viewer is the read side of the session store. Role checks call it on every
// use rather than caching the answer.
type Viewer interface {
	User() (models.SessionUser, bool)
	IsAdmin() bool
}

// Clock returns the current time. Tests substitute a fixed one.
type Clock func() time.Time

// TeamsAPI lists teams for pickers and logos.
type TeamsAPI interface {
	List(ctx context.Context) ([]models.Team, error)
}
