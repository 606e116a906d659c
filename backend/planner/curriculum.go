package planner

import (
	"fmt"
	"log"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Topic is a single syllabus leaf.
type Topic struct {
	Title string `yaml:"title" json:"title"`
}

// TopicGroup is a named group of topics (a module or an exam paper).
type TopicGroup struct {
	Name   string  `yaml:"name" json:"name"`
	Topics []Topic `yaml:"topics" json:"topics"`
}

// Stage is a study stage (a year) holding its own topic groups.
type Stage struct {
	Name   string       `yaml:"name" json:"name"`
	Groups []TopicGroup `yaml:"modules" json:"modules"`
}

// Subject is a tagged variant over the shapes a syllabus subject can
// take: a flat topic list, a set of topic groups (modules or papers), or
// a set of stages (years) each holding groups.
type Subject struct {
	Topics []Topic      `json:"topics,omitempty"`
	Groups []TopicGroup `json:"groups,omitempty"`
	Stages []Stage      `json:"stages,omitempty"`
}

// Staged reports whether the subject is organised in stages. Staged
// subjects contribute a study session per stage group; the others
// contribute one session for a single group.
func (s Subject) Staged() bool {
	return len(s.Stages) > 0
}

// UnmarshalYAML accepts any of the supported subject shapes. A bare
// sequence is treated as a flat topic list.
func (s *Subject) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		return value.Decode(&s.Topics)
	}

	var aux struct {
		Years   []Stage      `yaml:"years"`
		Modules []TopicGroup `yaml:"modules"`
		Papers  []TopicGroup `yaml:"papers"`
		Topics  []Topic      `yaml:"topics"`
	}
	if err := value.Decode(&aux); err != nil {
		return err
	}

	s.Stages = aux.Years
	s.Topics = aux.Topics
	switch {
	case len(aux.Modules) > 0:
		s.Groups = aux.Modules
	case len(aux.Papers) > 0:
		s.Groups = aux.Papers
	}

	if len(s.Stages) == 0 && len(s.Groups) == 0 && len(s.Topics) == 0 {
		return fmt.Errorf("subject has no years, modules, papers or topics")
	}
	return nil
}

// Curriculum is the loaded syllabus tree. It is immutable once built:
// construct it at process start and pass it to whatever needs it.
type Curriculum struct {
	subjects map[string]Subject
}

// NewCurriculum builds a curriculum from a subject map. The map is
// copied, so later changes to the argument do not leak in.
func NewCurriculum(subjects map[string]Subject) Curriculum {
	copied := make(map[string]Subject, len(subjects))
	for name, subject := range subjects {
		copied[name] = subject
	}
	return Curriculum{subjects: copied}
}

// Subjects returns the subject names in sorted order.
func (c Curriculum) Subjects() []string {
	names := make([]string, 0, len(c.subjects))
	for name := range c.subjects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the curriculum contains the named subject.
func (c Curriculum) Has(name string) bool {
	_, ok := c.subjects[name]
	return ok
}

// Subject returns the named subject.
func (c Curriculum) Subject(name string) (Subject, bool) {
	s, ok := c.subjects[name]
	return s, ok
}

// FindTopic resolves a normalized topic identifier to its subject and
// canonical title.
func (c Curriculum) FindTopic(id string) (subject, title string, ok bool) {
	for name, subj := range c.subjects {
		for _, topic := range subj.AllTopics() {
			if TopicID(topic.Title) == id {
				return name, topic.Title, true
			}
		}
	}
	return "", "", false
}

// AllTopics flattens every topic in the subject, in document order.
func (s Subject) AllTopics() []Topic {
	var topics []Topic
	topics = append(topics, s.Topics...)
	for _, group := range s.Groups {
		topics = append(topics, group.Topics...)
	}
	for _, stage := range s.Stages {
		for _, group := range stage.Groups {
			topics = append(topics, group.Topics...)
		}
	}
	return topics
}

// LoadCurriculum reads the syllabus document at path. It fails closed:
// any read or parse error yields the built-in default tree, so callers
// never observe an empty curriculum. A malformed subject is skipped with
// a warning instead of failing the whole document.
func LoadCurriculum(path string) Curriculum {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("curriculum: could not read %s: %v, using built-in default", path, err)
		return DefaultCurriculum()
	}

	var doc struct {
		Subjects map[string]yaml.Node `yaml:"subjects"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		log.Printf("curriculum: could not parse %s: %v, using built-in default", path, err)
		return DefaultCurriculum()
	}

	subjects := make(map[string]Subject)
	for name, node := range doc.Subjects {
		var subject Subject
		if err := node.Decode(&subject); err != nil {
			log.Printf("curriculum: skipping subject %q: %v", name, err)
			continue
		}
		subjects[name] = subject
	}

	if len(subjects) == 0 {
		log.Printf("curriculum: %s contains no usable subjects, using built-in default", path)
		return DefaultCurriculum()
	}
	return Curriculum{subjects: subjects}
}

// DefaultCurriculum is the built-in fallback syllabus.
func DefaultCurriculum() Curriculum {
	return Curriculum{subjects: map[string]Subject{
		"Psychology": {
			Groups: []TopicGroup{
				{Name: "Paper 1", Topics: []Topic{
					{Title: "Social Influence"},
					{Title: "Memory"},
					{Title: "Attachment"},
					{Title: "Psychopathology"},
				}},
				{Name: "Paper 2", Topics: []Topic{
					{Title: "Approaches"},
					{Title: "Biopsychology"},
					{Title: "Research Methods"},
				}},
			},
		},
		"Chemistry": {
			Groups: []TopicGroup{
				{Name: "Physical Chemistry", Topics: []Topic{
					{Title: "Atomic Structure"},
					{Title: "Bonding"},
					{Title: "Energetics"},
					{Title: "Kinetics"},
					{Title: "Equilibria"},
				}},
			},
		},
		"Biology": {
			Stages: []Stage{
				{Name: "Year 12", Groups: []TopicGroup{
					{Name: "Foundations in Biology", Topics: []Topic{
						{Title: "Cell Biology"},
						{Title: "Biological Molecules"},
					}},
				}},
				{Name: "Year 13", Groups: []TopicGroup{
					{Name: "Genetics and Ecosystems", Topics: []Topic{
						{Title: "Genetics"},
						{Title: "Ecology"},
					}},
				}},
			},
		},
	}}
}
