package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, 8, DaysUntil("2025-06-09", now))
	assert.Equal(t, 0, DaysUntil("2025-06-01", now))
	assert.Equal(t, 0, DaysUntil("2025-05-20", now), "past dates clamp to zero")
	assert.Equal(t, 0, DaysUntil("not-a-date", now))
}

func TestNextExam(t *testing.T) {
	exams := []Exam{
		{Paper: "Paper 2", Date: "2025-06-18"},
		{Paper: "Paper 1", Date: "2025-06-09"},
		{Paper: "Paper 3", Date: "2025-06-26"},
	}

	next := NextExam(exams, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	require.NotNil(t, next)
	assert.Equal(t, "Paper 2", next.Paper)

	// An exam on the query date still counts as upcoming.
	next = NextExam(exams, time.Date(2025, 6, 26, 0, 0, 0, 0, time.UTC))
	require.NotNil(t, next)
	assert.Equal(t, "Paper 3", next.Paper)

	assert.Nil(t, NextExam(exams, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)))
}

func TestUpcomingExamsOmitsExhaustedSubjects(t *testing.T) {
	tt := DefaultExamTimetable()
	now := time.Date(2025, 6, 28, 0, 0, 0, 0, time.UTC)

	upcoming := UpcomingExams(tt, now)

	// Psychology's last paper was 26 June.
	assert.NotContains(t, upcoming, "Psychology")
	require.Contains(t, upcoming, "Chemistry")
	assert.Equal(t, "Paper 3", upcoming["Chemistry"].Exam.Paper)
	assert.Equal(t, 4, upcoming["Chemistry"].DaysLeft)
}

func TestBuildCalendar(t *testing.T) {
	tt := DefaultExamTimetable()
	timetable := DefaultWeekdayTimetable()
	start := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC) // a Monday

	calendar := BuildCalendar(tt, timetable, start, 15)
	require.Len(t, calendar, 15)

	first := calendar[0]
	assert.Equal(t, 1, first.WeekNumber)
	assert.Equal(t, "2025-06-09", first.StartDate)
	assert.Equal(t, "2025-06-15", first.EndDate)
	require.Len(t, first.Days, 7)

	// Psychology Paper 1 sits on the opening Monday.
	monday := first.Days[0]
	assert.Equal(t, "Monday", monday.DayName)
	require.Len(t, monday.Exams, 1)
	assert.Equal(t, "Psychology", monday.Exams[0].Subject)
	assert.NotEmpty(t, monday.Tasks)

	// Weekend days have no fixed timetable slots.
	assert.Empty(t, first.Days[5].Tasks)
	assert.Empty(t, first.Days[6].Tasks)

	// Week exams roll up from the days.
	assert.NotEmpty(t, first.Exams)
}

func TestFilterTimetable(t *testing.T) {
	timetable := DefaultWeekdayTimetable()

	// No enrollment: only core-subject slots survive.
	coreOnly := FilterTimetable(timetable, nil, "Psychology")
	require.Contains(t, coreOnly, "Monday")
	for _, slots := range coreOnly {
		require.Len(t, slots, 1)
		assert.Contains(t, slots[0], "Psychology")
	}

	// Biology enrollment keeps the staged "Biology (Y13)" slots too.
	withBio := FilterTimetable(timetable, []string{"Biology"}, "Psychology")
	require.Contains(t, withBio, "Monday")
	assert.Len(t, withBio["Monday"], 2)
	assert.Contains(t, withBio["Monday"][1], "Biology (Y13)")
}

func TestFilterWeekendTasks(t *testing.T) {
	tasks := DefaultWeekendTasks()

	coreOnly := FilterWeekendTasks(tasks, nil, "Psychology")
	require.Len(t, coreOnly, 3)
	for _, task := range coreOnly {
		assert.Contains(t, task.Task, "Psychology")
	}

	all := FilterWeekendTasks(tasks, []string{"Chemistry", "Biology"}, "Psychology")
	assert.Len(t, all, len(tasks))
}
