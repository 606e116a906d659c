package planner

import (
	"math"
	"sort"
	"time"

	"project/backend/models"
)

// Weekdays in display order.
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday",
	"Friday", "Saturday", "Sunday",
}

// Quadrants of the day in display order.
var Quadrants = []string{"Night", "Morning", "Afternoon", "Evening"}

// TimeByWeekday sums logged minutes per calendar day of week across the
// whole history: task durations plus external platform minutes.
func TimeByWeekday(tasks []models.TaskLog, platform []models.PlatformLog) map[string]int {
	dist := make(map[string]int, len(Weekdays))
	for _, day := range Weekdays {
		dist[day] = 0
	}
	for _, log := range tasks {
		dist[log.DateCompleted.Weekday().String()] += log.Duration
	}
	for _, log := range platform {
		dist[log.Date.Weekday().String()] += log.TimeSpent
	}
	return dist
}

// TimeByQuadrant buckets task minutes by time of day: night 00-06,
// morning 06-12, afternoon 12-18, evening 18-24. Platform logs carry no
// time of day, so only task logs contribute.
func TimeByQuadrant(tasks []models.TaskLog) map[string]int {
	dist := make(map[string]int, len(Quadrants))
	for _, q := range Quadrants {
		dist[q] = 0
	}
	for _, log := range tasks {
		dist[quadrantOf(log.DateCompleted.Hour())] += log.Duration
	}
	return dist
}

func quadrantOf(hour int) string {
	switch {
	case hour < 6:
		return "Night"
	case hour < 12:
		return "Morning"
	case hour < 18:
		return "Afternoon"
	default:
		return "Evening"
	}
}

// ProductivityByDay computes tasks completed per hour of study for each
// day of week. Days with no logged minutes yield 0, never an error.
func ProductivityByDay(tasks []models.TaskLog) map[string]float64 {
	minutes := make(map[string]int, len(Weekdays))
	counts := make(map[string]int, len(Weekdays))
	for _, log := range tasks {
		day := log.DateCompleted.Weekday().String()
		minutes[day] += log.Duration
		counts[day]++
	}

	productivity := make(map[string]float64, len(Weekdays))
	for _, day := range Weekdays {
		if minutes[day] > 0 {
			productivity[day] = float64(counts[day]) / (float64(minutes[day]) / 60.0)
		} else {
			productivity[day] = 0
		}
	}
	return productivity
}

// OverallProductivity is tasks completed per hour across all history,
// 0 when nothing has been logged.
func OverallProductivity(tasks []models.TaskLog) float64 {
	total := 0
	for _, log := range tasks {
		total += log.Duration
	}
	if total == 0 {
		return 0
	}
	return float64(len(tasks)) / (float64(total) / 60.0)
}

// Streaks derives the current and maximum study streaks from task logs.
// The current streak is 1 when a log exists today, 1 when the latest log
// is from yesterday (a streak still in grace), otherwise 0. The maximum
// streak is the longest run of consecutive calendar dates among the
// distinct log dates. The two values are independent.
func Streaks(tasks []models.TaskLog, today time.Time) (current, max int) {
	if len(tasks) == 0 {
		return 0, 0
	}

	seen := make(map[time.Time]bool)
	for _, log := range tasks {
		seen[dateOnly(log.DateCompleted)] = true
	}

	todayDate := dateOnly(today)
	switch {
	case seen[todayDate]:
		current = 1
	case seen[todayDate.AddDate(0, 0, -1)]:
		current = 1
	}

	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	max = 1
	run := 1
	for i := 1; i < len(dates); i++ {
		if dates[i].Sub(dates[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > max {
			max = run
		}
	}
	return current, max
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStats aggregates one calendar week of activity.
type WeekStats struct {
	Week            string         `json:"week"`
	Tasks           int            `json:"tasks"`
	Subjects        map[string]int `json:"subjects"`
	TimeSpent       float64        `json:"time_spent"` // hours, one decimal
	PlatformLessons int            `json:"platform_lessons"`
}

// WeeklyStats aggregates the last n calendar weeks (Monday start), most
// recent week first.
func WeeklyStats(tasks []models.TaskLog, platform []models.PlatformLog, n int, today time.Time) []WeekStats {
	stats := make([]WeekStats, 0, n)
	thisWeek := weekStart(today)

	for i := 0; i < n; i++ {
		start := thisWeek.AddDate(0, 0, -7*i)
		end := start.AddDate(0, 0, 6)

		week := WeekStats{
			Week:     start.Format("02 Jan") + " - " + end.Format("02 Jan"),
			Subjects: make(map[string]int),
		}

		minutes := 0
		for _, log := range tasks {
			d := dateOnly(log.DateCompleted)
			if d.Before(start) || d.After(end) {
				continue
			}
			week.Tasks++
			week.Subjects[log.Subject]++
			minutes += log.Duration
		}
		week.TimeSpent = math.Round(float64(minutes)/60.0*10) / 10

		for _, log := range platform {
			d := dateOnly(log.Date)
			if d.Before(start) || d.After(end) {
				continue
			}
			week.PlatformLessons += log.LessonsCompleted
		}

		stats = append(stats, week)
	}
	return stats
}

func weekStart(t time.Time) time.Time {
	d := dateOnly(t)
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	return d.AddDate(0, 0, -offset)
}

// AverageBySubject computes the mean task duration and difficulty per
// subject. Subjects with no entries are omitted rather than reported as
// zero.
func AverageBySubject(tasks []models.TaskLog) (duration, difficulty map[string]float64) {
	totalDuration := make(map[string]int)
	totalDifficulty := make(map[string]int)
	counts := make(map[string]int)
	for _, log := range tasks {
		totalDuration[log.Subject] += log.Duration
		totalDifficulty[log.Subject] += log.Difficulty
		counts[log.Subject]++
	}

	duration = make(map[string]float64, len(counts))
	difficulty = make(map[string]float64, len(counts))
	for subject, count := range counts {
		duration[subject] = float64(totalDuration[subject]) / float64(count)
		difficulty[subject] = float64(totalDifficulty[subject]) / float64(count)
	}
	return duration, difficulty
}

// DailyLessons is one day of platform lesson counts.
type DailyLessons struct {
	Date    string `json:"date"`
	Lessons int    `json:"lessons"`
}

// WeeklyLessons is one week of platform lesson counts.
type WeeklyLessons struct {
	Week    string `json:"week"`
	Lessons int    `json:"lessons"`
}

// PlatformStats is the recent platform history for one subject.
type PlatformStats struct {
	Daily  []DailyLessons  `json:"daily"`
	Weekly []WeeklyLessons `json:"weekly"`
}

// PlatformHistory derives, per subject, the last 14 days of daily lesson
// counts and the last 8 weeks of weekly lesson counts.
func PlatformHistory(logs []models.PlatformLog, subjects []string, today time.Time) map[string]PlatformStats {
	history := make(map[string]PlatformStats, len(subjects))
	todayDate := dateOnly(today)
	thisWeek := weekStart(today)

	for _, subject := range subjects {
		var stats PlatformStats

		for i := 0; i < 14; i++ {
			day := todayDate.AddDate(0, 0, -i)
			lessons := 0
			for _, log := range logs {
				if log.Subject == subject && dateOnly(log.Date).Equal(day) {
					lessons += log.LessonsCompleted
				}
			}
			stats.Daily = append(stats.Daily, DailyLessons{
				Date:    day.Format("2006-01-02"),
				Lessons: lessons,
			})
		}

		for i := 0; i < 8; i++ {
			start := thisWeek.AddDate(0, 0, -7*i)
			end := start.AddDate(0, 0, 6)
			lessons := 0
			for _, log := range logs {
				d := dateOnly(log.Date)
				if log.Subject == subject && !d.Before(start) && !d.After(end) {
					lessons += log.LessonsCompleted
				}
			}
			stats.Weekly = append(stats.Weekly, WeeklyLessons{
				Week:    start.Format("02 Jan") + " - " + end.Format("02 Jan"),
				Lessons: lessons,
			})
		}

		history[subject] = stats
	}
	return history
}
