package planner

import (
	"math/rand"
	"strings"
	"time"
)

const (
	minDailyBudget = 180 // minutes
	maxDailyBudget = 240

	// Chance that a platform-linked subject's session points at the
	// external lesson platform instead of a template task.
	platformTaskChance = 0.9

	fallbackTaskDuration = 45
)

// ProficiencyMap maps subject -> topic title -> self-rated mastery (1-5).
type ProficiencyMap map[string]map[string]int

// GeneratorConfig tunes daily task generation.
type GeneratorConfig struct {
	// MinTasks is the minimum number of tasks a plan must contain;
	// shortfalls are padded with generic revision sessions.
	MinTasks int
	// CoreSubject is always studied and never platform-linked.
	CoreSubject string
}

// Generator produces daily task lists. All randomness flows through the
// injected source, so tests can supply a seeded one.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

func NewGenerator(cfg GeneratorConfig, rng *rand.Rand) *Generator {
	if cfg.MinTasks <= 0 {
		cfg.MinTasks = 3
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{cfg: cfg, rng: rng}
}

// Generate builds the day's task list from the curriculum, the user's
// enrolled subjects, the subjects linked to the external platform, and
// optional proficiency ratings. Topics the user rates low are more
// likely to be selected (weight 6 - proficiency).
func (g *Generator) Generate(cur Curriculum, enrolled, platformLinked []string, prof ProficiencyMap) []Task {
	budget := minDailyBudget + g.rng.Intn(maxDailyBudget-minDailyBudget+1)
	subjects := g.chooseSubjects(cur, enrolled)

	var tasks []Task
	if len(subjects) > 0 {
		// Integer division: the remainder is intentionally dropped,
		// not redistributed.
		perSubject := budget / len(subjects)
		linked := make(map[string]bool, len(platformLinked))
		for _, s := range platformLinked {
			linked[s] = true
		}

		for _, name := range subjects {
			subject, ok := cur.Subject(name)
			if !ok {
				continue
			}

			platform := linked[name] && name != g.cfg.CoreSubject &&
				g.rng.Float64() < platformTaskChance

			for _, node := range g.sessionNodes(name, subject) {
				minutes := perSubject
				if node.halved {
					minutes = perSubject / 2
				}
				topic, ok := g.pickTopic(node.topics, prof[name])
				if !ok {
					continue
				}
				if platform {
					tasks = append(tasks, Task{
						Subject:     node.label,
						Description: "Complete platform session on " + topic.Title,
						Duration:    minutes,
						Category:    CategoryPlatform,
					})
				} else {
					tasks = append(tasks, PickTemplate(g.rng, node.label, topic, minutes))
				}
			}
		}
	}

	for len(tasks) < g.cfg.MinTasks {
		tasks = append(tasks, Task{
			Subject:     "General",
			Description: "General revision session",
			Duration:    fallbackTaskDuration,
			Category:    "Revision",
		})
	}

	// Order carries no meaning downstream.
	g.rng.Shuffle(len(tasks), func(i, j int) {
		tasks[i], tasks[j] = tasks[j], tasks[i]
	})
	return tasks
}

// chooseSubjects picks the day's subject set: the enrollment intersected
// with the curriculum when supplied (falling back to a single available
// subject), otherwise a random sample of 2-3 subjects.
func (g *Generator) chooseSubjects(cur Curriculum, enrolled []string) []string {
	all := cur.Subjects()
	if len(enrolled) > 0 {
		var chosen []string
		for _, s := range enrolled {
			if cur.Has(s) {
				chosen = append(chosen, s)
			}
		}
		if len(chosen) == 0 && len(all) > 0 {
			chosen = all[:1]
		}
		return chosen
	}

	n := 2 + g.rng.Intn(2)
	if n > len(all) {
		n = len(all)
	}
	chosen := make([]string, 0, n)
	for _, i := range g.rng.Perm(len(all))[:n] {
		chosen = append(chosen, all[i])
	}
	return chosen
}

// sessionNode is one topic-bearing point in a subject's hierarchy.
type sessionNode struct {
	label  string
	topics []Topic
	halved bool
}

// sessionNodes yields the day's study nodes for a subject regardless of
// its shape. Staged subjects contribute every stage group at half the
// subject time; grouped subjects contribute one randomly chosen group;
// flat subjects contribute their topic list directly.
func (g *Generator) sessionNodes(name string, subject Subject) []sessionNode {
	switch {
	case subject.Staged():
		var nodes []sessionNode
		for _, stage := range subject.Stages {
			for _, group := range stage.Groups {
				if len(group.Topics) == 0 {
					continue
				}
				nodes = append(nodes, sessionNode{
					label:  name + " (" + stage.Name + ")",
					topics: group.Topics,
					halved: true,
				})
			}
		}
		return nodes

	case len(subject.Groups) > 0:
		candidates := make([]TopicGroup, 0, len(subject.Groups))
		for _, group := range subject.Groups {
			if len(group.Topics) > 0 {
				candidates = append(candidates, group)
			}
		}
		if len(candidates) == 0 {
			return nil
		}
		group := candidates[g.rng.Intn(len(candidates))]
		return []sessionNode{{label: name, topics: group.Topics}}

	case len(subject.Topics) > 0:
		return []sessionNode{{label: name, topics: subject.Topics}}
	}
	return nil
}

// pickTopic draws one topic from a node. When proficiency ratings are
// available for topics in the node, the draw is weighted by
// 6 - proficiency, so a rating of 1 is five times as likely as a rating
// of 5. Topics without a rating are excluded from the weighted draw;
// when no rated topics exist in the node the draw is uniform.
func (g *Generator) pickTopic(topics []Topic, weights map[string]int) (Topic, bool) {
	if len(topics) == 0 {
		return Topic{}, false
	}

	type candidate struct {
		topic  Topic
		weight int
	}
	var candidates []candidate
	total := 0
	for _, topic := range topics {
		if rating, ok := weights[topic.Title]; ok && rating >= 1 && rating <= 5 {
			w := 6 - rating
			candidates = append(candidates, candidate{topic, w})
			total += w
		}
	}

	if total > 0 {
		r := g.rng.Intn(total)
		for _, c := range candidates {
			if r < c.weight {
				return c.topic, true
			}
			r -= c.weight
		}
	}

	// Uniform fallback when no weighted candidate matched.
	return topics[g.rng.Intn(len(topics))], true
}

// TopicID normalizes a topic title into the identifier used by the
// ratings API (lowercase, underscores for spaces).
func TopicID(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "_")
}

// TopicTitle is the inverse of TopicID for simple titles.
func TopicTitle(id string) string {
	return strings.ReplaceAll(id, "_", " ")
}
