package session

import (
	"maps"

	"github.com/dmitrymomot/authkit/pkg/claims"
	"github.com/dmitrymomot/authkit/pkg/permissions"
)

// State is a read-only snapshot of the session. The Manager is its single
// writer; consumers receive copies and must not treat a snapshot as live.
type State struct {
	// User holds the decoded claims of the current token, nil when signed
	// out. Always derived from Token, never mutated independently.
	User *claims.Claims

	// Token is the raw session token, "" when signed out.
	Token string

	// IsAuthenticated is true iff Token is present and was not expired at
	// the last check.
	IsAuthenticated bool

	// Permissions is the capability set fetched for this session. Empty
	// until FetchPermissions succeeds.
	Permissions permissions.Set

	// Loading is true while a session-affecting network operation is in
	// flight. UIs key their pending indicators off this.
	Loading bool

	// Err is the error of the most recent session-affecting operation, nil
	// after a success.
	Err error
}

// clone returns a copy safe to hand out: the permissions map is copied so a
// later replacement inside the manager cannot be observed through an old
// snapshot.
func (s State) clone() State {
	out := s
	if s.Permissions != nil {
		out.Permissions = maps.Clone(s.Permissions)
	}
	return out
}
