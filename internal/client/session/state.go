// Package session holds the process-wide authentication state of the
// client: Anonymous, PendingVerification(email) or Authenticated(session).
//
// A Manager is created once at startup, restored from local storage, and
// passed explicitly to every component that needs it.
package session

import "github.com/dmitrijs2005/onboard/internal/client/models"

// State is the kind of the current auth state.
type State int

const (
	Anonymous State = iota
	PendingVerification
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case PendingVerification:
		return "pending_verification"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of the auth state at one instant.
type Snapshot struct {
	State        State
	Session      *models.Session
	PendingEmail string
}

func (s Snapshot) IsAuthenticated() bool   { return s.State == Authenticated }
func (s Snapshot) NeedsVerification() bool { return s.State == PendingVerification }
