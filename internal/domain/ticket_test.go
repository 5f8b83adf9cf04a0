package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTicketReason(t *testing.T) {
	for _, r := range TicketReasons() {
		got, err := ParseTicketReason(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, got)
		assert.True(t, r.Valid())
	}

	for _, bad := range []string{"", "drop", "HARASSMENT", "Took  extra money", "Other"} {
		_, err := ParseTicketReason(bad)
		assert.Error(t, err, bad)
		assert.False(t, TicketReason(bad).Valid())
	}
}

func TestTicketReasonPriority(t *testing.T) {
	assert.Equal(t, 1, TicketReasonHarassment.Priority())
	assert.Equal(t, 2, TicketReasonTookExtraMoney.Priority())
	assert.Equal(t, 3, TicketReasonBadBehavior.Priority())
	assert.Equal(t, 4, TicketReasonDrop.Priority())
	assert.Equal(t, 0, TicketReason("Other").Priority())
}

func TestTicketReasonsReturnsCopy(t *testing.T) {
	reasons := TicketReasons()
	reasons[0] = "mutated"
	assert.Equal(t, TicketReasonHarassment, TicketReasons()[0])
}

func TestParseComplaintStatus(t *testing.T) {
	s, err := ParseComplaintStatus("resolved")
	require.NoError(t, err)
	assert.Equal(t, ComplaintStatusResolved, s)

	_, err = ParseComplaintStatus("RESOLVED")
	assert.Error(t, err)
}
