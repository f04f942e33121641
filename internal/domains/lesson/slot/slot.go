// Package slot filters bookable lessons and groups them by day.
package slot

import (
	"drivingschool/internal/domains/lesson/model"
	"strings"
)

// All selects every instructor or every lesson type.
const All = "all"

type Selection struct {
	InstructorID string
	Type         string
}

// NewSelection normalises raw query values. Empty values and unknown lesson
// types select everything.
func NewSelection(instructorID, lessonType string) Selection {
	instructorID = strings.TrimSpace(instructorID)
	if instructorID == "" {
		instructorID = All
	}

	lessonType = strings.TrimSpace(lessonType)
	if lessonType != All && !model.Type(lessonType).IsValid() {
		lessonType = All
	}

	return Selection{InstructorID: instructorID, Type: lessonType}
}

func (s Selection) Matches(lesson model.Lesson) bool {
	if s.InstructorID != All && s.InstructorID != "" && lesson.InstructorID != s.InstructorID {
		return false
	}

	if s.Type != All && s.Type != "" && string(lesson.Type) != s.Type {
		return false
	}

	return true
}

// Filter keeps the lessons matching the selection, preserving order.
func Filter(lessons []model.Lesson, selection Selection) []model.Lesson {
	kept := make([]model.Lesson, 0, len(lessons))

	for _, lesson := range lessons {
		if selection.Matches(lesson) {
			kept = append(kept, lesson)
		}
	}

	return kept
}

// Grouped maps calendar dates to lessons, remembering the order dates were first seen.
type Grouped struct {
	dates  []string
	byDate map[string][]model.Lesson
}

func Group(lessons []model.Lesson) Grouped {
	grouped := Grouped{byDate: map[string][]model.Lesson{}}

	for _, lesson := range lessons {
		key := lesson.DateKey()

		if _, seen := grouped.byDate[key]; !seen {
			grouped.dates = append(grouped.dates, key)
		}

		grouped.byDate[key] = append(grouped.byDate[key], lesson)
	}

	return grouped
}

func (g Grouped) Dates() []string {
	return append([]string(nil), g.dates...)
}

func (g Grouped) On(date string) []model.Lesson {
	return g.byDate[date]
}

func (g Grouped) Count(date string) int {
	return len(g.byDate[date])
}

// Len is the number of lessons across all dates.
func (g Grouped) Len() int {
	total := 0
	for _, lessons := range g.byDate {
		total += len(lessons)
	}

	return total
}

// Flatten concatenates the groups in date order.
func (g Grouped) Flatten() []model.Lesson {
	flat := make([]model.Lesson, 0, g.Len())

	for _, date := range g.dates {
		flat = append(flat, g.byDate[date]...)
	}

	return flat
}
