package calendar_test

import (
	"drivingschool/internal/domains/lesson/calendar"
	"drivingschool/internal/domains/lesson/model"
	"drivingschool/internal/domains/lesson/slot"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday 13 May 2026.
func fixedNow() time.Time {
	return time.Date(2026, time.May, 13, 15, 30, 0, 0, time.UTC)
}

func TestParseMonth(t *testing.T) {
	month, err := calendar.ParseMonth("2026-07")
	require.NoError(t, err)
	assert.Equal(t, calendar.Month{Year: 2026, Month: time.July}, month)
	assert.Equal(t, "2026-07", month.String())

	_, err = calendar.ParseMonth("07/2026")
	assert.ErrorIs(t, err, calendar.ErrInvalidMonth)
}

func TestCursor_PreviousMonthAtCurrentIsNoop(t *testing.T) {
	cursor := calendar.NewCursor(fixedNow)

	assert.False(t, cursor.PreviousMonth())
	assert.Equal(t, calendar.Month{Year: 2026, Month: time.May}, cursor.Current())
}

func TestCursor_PreviousMonthDecrementsByOne(t *testing.T) {
	cursor := calendar.NewCursor(fixedNow)
	cursor.NextMonth()
	cursor.NextMonth()

	assert.True(t, cursor.PreviousMonth())
	assert.Equal(t, calendar.Month{Year: 2026, Month: time.June}, cursor.Current())

	assert.True(t, cursor.PreviousMonth())
	assert.False(t, cursor.PreviousMonth())
	assert.Equal(t, calendar.Month{Year: 2026, Month: time.May}, cursor.Current())
}

func TestCursor_NextMonthCrossesYear(t *testing.T) {
	cursor := calendar.NewCursor(fixedNow)
	cursor.MoveTo(calendar.Month{Year: 2026, Month: time.December})
	cursor.NextMonth()

	assert.Equal(t, calendar.Month{Year: 2027, Month: time.January}, cursor.Current())
}

func TestCursor_MoveToClampsPastMonths(t *testing.T) {
	cursor := calendar.NewCursor(fixedNow)
	cursor.MoveTo(calendar.Month{Year: 2025, Month: time.December})

	assert.Equal(t, calendar.Month{Year: 2026, Month: time.May}, cursor.Current())
}

func TestView_CurrentMonthOmitsPastDays(t *testing.T) {
	day, _ := time.Parse(time.DateOnly, "2026-05-20")
	past, _ := time.Parse(time.DateOnly, "2026-05-02")
	grouped := slot.Group([]model.Lesson{
		{ID: "l1", LessonDate: day},
		{ID: "l2", LessonDate: day},
		{ID: "old", LessonDate: past},
	})

	view := calendar.NewCursor(fixedNow).View(grouped)

	assert.Nil(t, view.Previous)
	assert.Equal(t, calendar.Month{Year: 2026, Month: time.June}, view.Next)
	assert.Equal(t, int(time.Wednesday), view.LeadingBlanks)
	require.Len(t, view.Cells, 19)
	assert.Equal(t, "2026-05-13", view.Cells[0].Date)
	assert.Equal(t, "2026-05-31", view.Cells[len(view.Cells)-1].Date)

	for _, cell := range view.Cells {
		assert.GreaterOrEqual(t, cell.Date, "2026-05-13")

		if cell.Date == "2026-05-20" {
			assert.Equal(t, 2, cell.Count())
		} else {
			assert.Zero(t, cell.Count(), cell.Date)
		}
	}
}

func TestView_FutureMonthStartsOnFirst(t *testing.T) {
	cursor := calendar.NewCursor(fixedNow)
	cursor.NextMonth()

	view := cursor.View(slot.Group(nil))

	require.NotNil(t, view.Previous)
	assert.Equal(t, calendar.Month{Year: 2026, Month: time.May}, *view.Previous)
	assert.Equal(t, int(time.Monday), view.LeadingBlanks)
	require.Len(t, view.Cells, 30)
	assert.Equal(t, 1, view.Cells[0].Day)
}
