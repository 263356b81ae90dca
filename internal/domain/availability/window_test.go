//go:build unit

package availability_test

import (
	"testing"
	"time"

	"tourbook/internal/domain/availability"
	"tourbook/internal/pkg/dates"
	"tourbook/internal/pkg/patch"
	"tourbook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "09:00", want: "09:00"},
		{input: "23:59", want: "23:59"},
		{input: "14:30:00", want: "14:30"},
		{input: "9am", wantErr: true},
		{input: "25:00", wantErr: true},
		{input: "09:60", wantErr: true},
		{input: "9:00", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := availability.ParseClockTime(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, availability.ErrInvalidClockTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestNewWeekdays(t *testing.T) {
	wd, err := availability.NewWeekdays(0, 6)
	require.NoError(t, err)
	assert.True(t, wd.Has(time.Sunday))
	assert.True(t, wd.Has(time.Saturday))
	assert.False(t, wd.Has(time.Monday))
	assert.Equal(t, []int{0, 6}, wd.Ints())

	_, err = availability.NewWeekdays(7)
	assert.ErrorIs(t, err, availability.ErrInvalidWeekday)
}

func TestSelectWindow(t *testing.T) {
	tourID := uuid.New()
	monday := dates.New(2026, 6, 15)
	tuesday := dates.New(2026, 6, 16)

	bounded := func(start, end time.Time) availability.Window {
		w := builder.OpenWindow(tourID, start, 0, 1, 2, 3, 4, 5, 6)
		w.EndDate = &end
		return w
	}

	t.Run("bounded window beats open-ended one", func(t *testing.T) {
		open := builder.OpenWindow(tourID, dates.New(2026, 1, 1), 1)
		summer := bounded(dates.New(2026, 6, 1), dates.New(2026, 8, 31))

		got, kind := availability.SelectWindow([]availability.Window{open, summer}, monday)

		require.NotNil(t, got)
		assert.Equal(t, availability.MatchFound, kind)
		assert.Equal(t, summer.ID, got.ID)
	})

	t.Run("narrower range wins", func(t *testing.T) {
		wide := bounded(dates.New(2026, 6, 1), dates.New(2026, 6, 30))
		narrow := bounded(dates.New(2026, 6, 10), dates.New(2026, 6, 20))

		got, _ := availability.SelectWindow([]availability.Window{narrow, wide}, monday)

		require.NotNil(t, got)
		assert.Equal(t, narrow.ID, got.ID)
	})

	t.Run("equal span falls back to latest start", func(t *testing.T) {
		early := bounded(dates.New(2026, 6, 10), dates.New(2026, 6, 16))
		late := bounded(dates.New(2026, 6, 12), dates.New(2026, 6, 18))

		got, _ := availability.SelectWindow([]availability.Window{late, early}, monday)

		require.NotNil(t, got)
		assert.Equal(t, late.ID, got.ID)
	})

	t.Run("identical ranges fall back to lowest id", func(t *testing.T) {
		a := bounded(dates.New(2026, 6, 1), dates.New(2026, 6, 30))
		b := bounded(dates.New(2026, 6, 1), dates.New(2026, 6, 30))
		a.ID = uuid.MustParse("00000000-0000-0000-0000-000000000002")
		b.ID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

		got, _ := availability.SelectWindow([]availability.Window{a, b}, monday)

		require.NotNil(t, got)
		assert.Equal(t, b.ID, got.ID)
	})

	t.Run("window covering the date on another weekday", func(t *testing.T) {
		mondays := builder.OpenWindow(tourID, dates.New(2026, 1, 1), 1)

		got, kind := availability.SelectWindow([]availability.Window{mondays}, tuesday)

		assert.Nil(t, got)
		assert.Equal(t, availability.MatchWrongDay, kind)
	})

	t.Run("no window covers the date", func(t *testing.T) {
		later := builder.OpenWindow(tourID, dates.New(2026, 7, 1), 0, 1, 2, 3, 4, 5, 6)
		inactive := builder.OpenWindow(tourID, dates.New(2026, 1, 1), 0, 1, 2, 3, 4, 5, 6)
		inactive.IsActive = false

		got, kind := availability.SelectWindow([]availability.Window{later, inactive}, monday)

		assert.Nil(t, got)
		assert.Equal(t, availability.MatchNoWindow, kind)
	})

	t.Run("end date is inclusive", func(t *testing.T) {
		w := bounded(dates.New(2026, 6, 1), monday)
		w.MaxParticipants = patch.Ptr(4)

		got, kind := availability.SelectWindow([]availability.Window{w}, monday)

		require.NotNil(t, got)
		assert.Equal(t, availability.MatchFound, kind)
	})
}
