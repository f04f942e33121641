// Package calendar drives the month view of bookable lessons.
package calendar

import (
	"drivingschool/internal/domains/lesson/model"
	"drivingschool/internal/domains/lesson/slot"
	"drivingschool/shared/constant"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidMonth = errors.New("invalid month, expected YYYY-MM")

type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func ParseMonth(value string) (Month, error) {
	parsed, err := time.Parse(constant.MonthFormat, value)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, value)
	}

	return MonthOf(parsed), nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}

	return m.Month < other.Month
}

func (m Month) AddMonths(n int) Month {
	return MonthOf(m.first(time.UTC).AddDate(0, n, 0))
}

func (m Month) first(loc *time.Location) time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, loc)
}

func (m Month) days() int {
	return m.first(time.UTC).AddDate(0, 1, -1).Day()
}

// Cursor holds the displayed month. It never points before the real current month.
type Cursor struct {
	now     func() time.Time
	current Month
}

func NewCursor(now func() time.Time) *Cursor {
	return &Cursor{
		now:     now,
		current: MonthOf(now()),
	}
}

func (c *Cursor) Current() Month {
	return c.current
}

func (c *Cursor) CanGoBack() bool {
	return MonthOf(c.now()).Before(c.current)
}

// PreviousMonth steps back one month and reports whether it moved.
func (c *Cursor) PreviousMonth() bool {
	if !c.CanGoBack() {
		return false
	}

	c.current = c.current.AddMonths(-1)

	return true
}

func (c *Cursor) NextMonth() {
	c.current = c.current.AddMonths(1)
}

// MoveTo positions the cursor, clamping past months to the current one.
func (c *Cursor) MoveTo(month Month) {
	if today := MonthOf(c.now()); month.Before(today) {
		month = today
	}

	c.current = month
}

type Cell struct {
	Date    string
	Day     int
	Lessons []model.Lesson
}

func (c Cell) Count() int {
	return len(c.Lessons)
}

type View struct {
	Month Month
	// LeadingBlanks is the number of empty cells before the first day in a
	// Sunday-first grid.
	LeadingBlanks int
	Cells         []Cell
	Previous      *Month
	Next          Month
}

// View lays out the displayed month. In the real current month the days
// before today are omitted.
func (c *Cursor) View(grouped slot.Grouped) View {
	now := c.now()
	first := c.current.first(now.Location())
	startDay := 1

	if c.current == MonthOf(now) {
		startDay = now.Day()
	}

	view := View{
		Month:         c.current,
		LeadingBlanks: int(first.AddDate(0, 0, startDay-1).Weekday()),
		Cells:         make([]Cell, 0, c.current.days()-startDay+1),
		Next:          c.current.AddMonths(1),
	}

	if c.CanGoBack() {
		previous := c.current.AddMonths(-1)
		view.Previous = &previous
	}

	for day := startDay; day <= c.current.days(); day++ {
		date := first.AddDate(0, 0, day-1).Format(constant.DateOnlyFormat)

		view.Cells = append(view.Cells, Cell{
			Date:    date,
			Day:     day,
			Lessons: grouped.On(date),
		})
	}

	return view
}
