package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNeedsReattach(t *testing.T) {
	current := GuestSession{
		TableSessionID: "ts-1",
		Status:         SessionStatusActive,
	}
	assert.False(t, current.NeedsReattach("ts-1"))

	// The table turned over since this token was last seen.
	assert.True(t, current.NeedsReattach("ts-2"))

	// Staff cleared the table; the session must be reactivated even on the
	// same table session.
	completed := GuestSession{
		TableSessionID: "ts-1",
		Status:         SessionStatusCompleted,
	}
	assert.True(t, completed.NeedsReattach("ts-1"))
}
