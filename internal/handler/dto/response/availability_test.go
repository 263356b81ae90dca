//go:build unit

package response_test

import (
	"testing"

	"tourbook/internal/domain/availability"
	"tourbook/internal/handler/dto/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReasonMessage(t *testing.T) {
	tests := []struct {
		reason availability.Reason
		spots  int
		want   string
	}{
		{availability.ReasonNone, 5, ""},
		{availability.ReasonPastDate, 0, "Cannot book a date in the past"},
		{availability.ReasonBlackout, 0, "Tour is not available on this date"},
		{availability.ReasonNotOperating, 0, "Tour does not operate at this date and time"},
		{availability.ReasonSoldOut, 0, "This time slot is sold out"},
		{availability.ReasonInsufficientCapacity, 3, "Only 3 spots remaining"},
		{availability.Reason("weird"), 0, "This time slot is unavailable"},
	}

	for _, tt := range tests {
		t.Run(string(tt.reason), func(t *testing.T) {
			assert.Equal(t, tt.want, response.ReasonMessage(tt.reason, tt.spots))
		})
	}
}

func TestFromSlotCheck(t *testing.T) {
	t.Run("available slot omits reason", func(t *testing.T) {
		res := response.FromSlotCheck(&availability.SlotCheck{Available: true, SpotsRemaining: 4, MaxCapacity: 6, BookedCount: 2})
		assert.True(t, res.Available)
		assert.Nil(t, res.Reason)
		assert.Nil(t, res.Message)
	})

	t.Run("sold out slot carries reason code", func(t *testing.T) {
		res := response.FromSlotCheck(&availability.SlotCheck{MaxCapacity: 6, BookedCount: 6, Reason: availability.ReasonSoldOut})
		require.NotNil(t, res.Reason)
		assert.Equal(t, "sold_out", *res.Reason)
		assert.Equal(t, "This time slot is sold out", *res.Message)
	})
}
