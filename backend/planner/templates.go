package planner

import (
	"math/rand"
	"strings"
)

// Task is a generated study suggestion. Tasks are ephemeral: they are
// produced fresh for each request and never persisted.
type Task struct {
	Subject     string `json:"subject"`
	Description string `json:"task"`
	Duration    int    `json:"duration"` // minutes
	Category    string `json:"type"`
}

// CategoryPlatform marks tasks pointing at the external lesson platform.
const CategoryPlatform = "PlatformSession"

type taskTemplate struct {
	Category    string
	Pattern     string
	MinDuration int
}

var taskTemplates = []taskTemplate{
	{"Review", "Review and create summary notes on {topic}", 30},
	{"Practice", "Complete practice questions on {topic}", 45},
	{"Quiz", "Create and answer quiz questions for {topic}", 20},
	{"Mind Map", "Create a detailed mind map for {topic}", 25},
	{"Flash Cards", "Make flash cards covering {topic}", 30},
	{"Essay Plan", "Create essay plans related to {topic}", 40},
	{CategoryPlatform, "Complete platform session on {topic}", 45},
}

// PickTemplate selects a task template suitable for the requested
// duration and formats the topic into it. Templates whose minimum viable
// duration exceeds the requested time are filtered out; if none qualify
// the full catalog is used, so a task is always produced.
func PickTemplate(rng *rand.Rand, subject string, topic Topic, minutes int) Task {
	suitable := make([]taskTemplate, 0, len(taskTemplates))
	for _, t := range taskTemplates {
		if t.MinDuration <= minutes {
			suitable = append(suitable, t)
		}
	}
	if len(suitable) == 0 {
		suitable = taskTemplates
	}

	tpl := suitable[rng.Intn(len(suitable))]
	return Task{
		Subject:     subject,
		Description: strings.ReplaceAll(tpl.Pattern, "{topic}", topic.Title),
		Duration:    minutes,
		Category:    tpl.Category,
	}
}
