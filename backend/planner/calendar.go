package planner

import (
	"strings"
	"time"
)

// Exam is one exam sitting for a subject.
type Exam struct {
	Paper  string `json:"paper"`
	Date   string `json:"date"` // YYYY-MM-DD
	Topics string `json:"topics"`
}

// ExamTimetable maps subject name to its exam sittings.
type ExamTimetable map[string][]Exam

// WeekdayTimetable maps weekday name to its fixed study slots, each of
// the form "Subject: description".
type WeekdayTimetable map[string][]string

// WeekendTask is a points-scored weekend activity.
type WeekendTask struct {
	Task   string `json:"task"`
	Points int    `json:"points"`
}

// DefaultExamTimetable returns a fresh copy of the built-in exam dates,
// so callers can hold it as their own immutable configuration.
func DefaultExamTimetable() ExamTimetable {
	return ExamTimetable{
		"Psychology": {
			{Paper: "Paper 1", Date: "2025-06-09", Topics: "Social Influence, Memory, Attachment, Psychopathology"},
			{Paper: "Paper 2", Date: "2025-06-18", Topics: "Approaches, Biopsychology, Research Methods"},
			{Paper: "Paper 3", Date: "2025-06-26", Topics: "Issues & Debates, Schizophrenia, Aggression, Relationships"},
		},
		"Chemistry": {
			{Paper: "Paper 1", Date: "2025-06-16", Topics: "Inorganic & Physical Chemistry"},
			{Paper: "Paper 2", Date: "2025-06-24", Topics: "Organic & Physical Chemistry"},
			{Paper: "Paper 3", Date: "2025-07-02", Topics: "Practical Skills & All Content"},
		},
		"Biology": {
			{Paper: "Paper 1", Date: "2025-06-19", Topics: "Biological Processes"},
			{Paper: "Paper 2", Date: "2025-06-27", Topics: "Biological Diversity"},
			{Paper: "Paper 3", Date: "2025-07-03", Topics: "Unified Biology"},
		},
	}
}

// DefaultWeekdayTimetable returns a fresh copy of the fixed weekday
// study plan.
func DefaultWeekdayTimetable() WeekdayTimetable {
	return WeekdayTimetable{
		"Monday": {
			"Psychology: Research Methods & Approaches",
			"Chemistry: Platform session (1-2 lessons; review current concepts)",
			"Biology (Y13): Platform session (1-2 lessons; focus on retention)",
		},
		"Tuesday": {
			"Psychology: Memory & Attachment",
			"Chemistry: Platform session (1-2 new lessons on challenging topics)",
			"Biology (Y13): Continue progress & review weak areas",
		},
		"Wednesday": {
			"Psychology: Psychopathology & Biopsychology",
			"Chemistry: Review previous lessons or new lesson (problem-solving practice)",
			"Biology (Y12): Start platform lessons for Year 12 topics",
		},
		"Thursday": {
			"Psychology: Issues & Debates, Schizophrenia",
			"Chemistry: Platform session (focus on Physical Chemistry: Acids, Bases, Redox)",
			"Biology (Y13): Platform session (continue Year 13 topics)",
		},
	}
}

// DefaultWeekendTasks returns a fresh copy of the weekend points tasks.
func DefaultWeekendTasks() []WeekendTask {
	return []WeekendTask{
		{"Chemistry: Complete one platform lesson and review areas of confusion", 3},
		{"Chemistry: Do past paper questions on a specific topic", 4},
		{"Chemistry: Watch/review a Chemistry video/summary and take notes", 2},
		{"Biology: Complete 1-2 platform lessons (Year 12 or 13)", 3},
		{"Biology: Practice questions or flashcards based on recent lessons", 4},
		{"Biology: Review concepts (e.g., cell division, genetics)", 2},
		{"Psychology: Complete an essay-style question on a major topic", 4},
		{"Psychology: Review case studies or specific theories", 3},
		{"Psychology: Take a timed quiz on topics", 3},
	}
}

// DaysUntil returns the number of days from now until a YYYY-MM-DD date,
// clamped to zero for past or unparseable dates.
func DaysUntil(dateStr string, now time.Time) int {
	end, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return 0
	}
	days := int(end.Sub(dateOnly(now)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// NextExam finds the earliest exam on or after now, or nil.
func NextExam(exams []Exam, now time.Time) *Exam {
	today := dateOnly(now)
	var next *Exam
	var nextDate time.Time
	for i := range exams {
		date, err := time.Parse("2006-01-02", exams[i].Date)
		if err != nil || date.Before(today) {
			continue
		}
		if next == nil || date.Before(nextDate) {
			next = &exams[i]
			nextDate = date
		}
	}
	return next
}

// UpcomingExams returns the next future exam per subject, with its
// days-until count. Subjects with no exams left are omitted.
type UpcomingExam struct {
	Exam     Exam `json:"exam"`
	DaysLeft int  `json:"days_left"`
}

func UpcomingExams(tt ExamTimetable, now time.Time) map[string]UpcomingExam {
	upcoming := make(map[string]UpcomingExam)
	for subject, exams := range tt {
		if next := NextExam(exams, now); next != nil {
			upcoming[subject] = UpcomingExam{
				Exam:     *next,
				DaysLeft: DaysUntil(next.Date, now),
			}
		}
	}
	return upcoming
}

// CalendarDay is one day in the study calendar.
type CalendarDay struct {
	Date    string   `json:"date"`
	DayName string   `json:"day_name"`
	Tasks   []string `json:"tasks"`
	Exams   []CalendarExam `json:"exams"`
}

// CalendarExam annotates an exam with its subject.
type CalendarExam struct {
	Subject string `json:"subject"`
	Paper   string `json:"paper"`
	Topics  string `json:"topics"`
}

// CalendarWeek is one week in the study calendar.
type CalendarWeek struct {
	WeekNumber int           `json:"week_number"`
	StartDate  string        `json:"start_date"`
	EndDate    string        `json:"end_date"`
	Days       []CalendarDay `json:"days"`
	Exams      []CalendarExam `json:"exams"`
}

// BuildCalendar lays out the coming weeks day by day, attaching the
// weekday timetable slots and any exams falling on each date.
func BuildCalendar(tt ExamTimetable, timetable WeekdayTimetable, start time.Time, weeks int) []CalendarWeek {
	examsByDate := make(map[string][]CalendarExam)
	for subject, exams := range tt {
		for _, exam := range exams {
			examsByDate[exam.Date] = append(examsByDate[exam.Date], CalendarExam{
				Subject: subject,
				Paper:   exam.Paper,
				Topics:  exam.Topics,
			})
		}
	}

	calendar := make([]CalendarWeek, 0, weeks)
	current := dateOnly(start)
	for week := 1; week <= weeks; week++ {
		weekData := CalendarWeek{
			WeekNumber: week,
			StartDate:  current.Format("2006-01-02"),
			EndDate:    current.AddDate(0, 0, 6).Format("2006-01-02"),
		}

		for offset := 0; offset < 7; offset++ {
			day := current.AddDate(0, 0, offset)
			dayStr := day.Format("2006-01-02")
			dayExams := examsByDate[dayStr]

			weekData.Days = append(weekData.Days, CalendarDay{
				Date:    dayStr,
				DayName: day.Weekday().String(),
				Tasks:   timetable[day.Weekday().String()],
				Exams:   dayExams,
			})
			weekData.Exams = append(weekData.Exams, dayExams...)
		}

		calendar = append(calendar, weekData)
		current = current.AddDate(0, 0, 7)
	}
	return calendar
}

// FilterTimetable keeps only the slots whose subject prefix matches an
// enrolled subject. The core subject always passes. Days left with no
// slots are dropped.
func FilterTimetable(timetable WeekdayTimetable, enrolled []string, core string) WeekdayTimetable {
	allowed := func(slot string) bool {
		prefix, _, _ := strings.Cut(slot, ":")
		if core != "" && strings.Contains(prefix, core) {
			return true
		}
		for _, subject := range enrolled {
			if strings.Contains(prefix, subject) {
				return true
			}
		}
		return false
	}

	filtered := make(WeekdayTimetable)
	for day, slots := range timetable {
		var keep []string
		for _, slot := range slots {
			if allowed(slot) {
				keep = append(keep, slot)
			}
		}
		if len(keep) > 0 {
			filtered[day] = keep
		}
	}
	return filtered
}

// FilterWeekendTasks keeps only the weekend tasks whose subject prefix
// matches an enrolled subject or the core subject.
func FilterWeekendTasks(tasks []WeekendTask, enrolled []string, core string) []WeekendTask {
	var filtered []WeekendTask
	for _, task := range tasks {
		prefix, _, _ := strings.Cut(task.Task, ":")
		if core != "" && strings.Contains(prefix, core) {
			filtered = append(filtered, task)
			continue
		}
		for _, subject := range enrolled {
			if strings.Contains(prefix, subject) {
				filtered = append(filtered, task)
				break
			}
		}
	}
	return filtered
}
