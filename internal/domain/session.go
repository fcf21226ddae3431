package domain

import "time"

const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
)

// TableSession is one continuous seating period at a table. At most one
// session per table is active at any time.
type TableSession struct {
	ID        string    `json:"id"`
	TableID   uint      `json:"table_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GuestSession is one diner's identity within a TableSession, tracked by an
// opaque token. Tokens are unique across the whole system, not per session.
type GuestSession struct {
	ID             string    `json:"id"`
	TableSessionID string    `json:"table_session_id"`
	GuestToken     string    `json:"guest_token"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NeedsReattach reports whether a guest session found by token must be moved
// onto the given table session before it can take new orders. A session is
// stale once the table turned over (different table session) or after staff
// cleared the table (status no longer active). A returning token is always
// reattached, never duplicated.
func (g GuestSession) NeedsReattach(tableSessionID string) bool {
	return g.TableSessionID != tableSessionID || g.Status != SessionStatusActive
}
