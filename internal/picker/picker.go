// Package picker implements the three-tier cascading selection model
// (lesson -> topic -> quiz) used by the solve, question-authoring and
// category-builder surfaces. The three surfaces get independent instances
// of the same state machine; they never share state.
package picker

import (
	"strings"
	"sync"

	"github.com/quizforge/quizforge/internal/catalog"
)

type Tier string

const (
	TierLesson Tier = "lesson"
	TierTopic  Tier = "topic"
	TierQuiz   Tier = "quiz"
)

type Item struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Path     string `json:"path,omitempty"`
	Selected bool   `json:"selected"`
}

type View struct {
	Lessons []Item `json:"lessons"`
	Topics  []Item `json:"topics"`
	Quizzes []Item `json:"quizzes"`

	LessonID string `json:"lesson_id"`
	TopicID  string `json:"topic_id"`
	QuizID   string `json:"quiz_id"`

	// QuizLabel is the full "Lesson / Topic / Title" of the selected quiz,
	// empty when nothing is selected.
	QuizLabel string `json:"quiz_label,omitempty"`
}

// Picker holds one surface's selection plus per-tier filter strings.
// Selections recorded by Select* are intent only; Render reconciles them
// against a snapshot and applies the first-candidate default policy.
type Picker struct {
	mu sync.Mutex

	lessonID string
	topicID  string
	quizID   string

	lessonFilter string
	topicFilter  string
	quizFilter   string
}

func New() *Picker { return &Picker{} }

func (p *Picker) SelectLesson(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lessonID = id
	p.topicID = ""
	p.quizID = ""
}

func (p *Picker) SelectTopic(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topicID = id
	p.quizID = ""
}

func (p *Picker) SelectQuiz(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.quizID = id
}

func (p *Picker) SetFilter(tier Tier, q string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch tier {
	case TierLesson:
		p.lessonFilter = q
	case TierTopic:
		p.topicFilter = q
	case TierQuiz:
		p.quizFilter = q
	}
}

func (p *Picker) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lessonID, p.topicID, p.quizID = "", "", ""
	p.lessonFilter, p.topicFilter, p.quizFilter = "", "", ""
}

// Render recomputes the three candidate lists from the snapshot, validates
// the current selection against each, and fills defaults. It is safe to call
// on every request and every refresh: unchanged inputs produce an identical
// view and selection.
//
// Policy per tier: a selection absent from the (filtered) candidate list is
// replaced by the list's first entry, or cleared when the list is empty;
// replacing or clearing an upstream tier clears everything downstream.
func (p *Picker) Render(snap *catalog.Snapshot) View {
	p.mu.Lock()
	defer p.mu.Unlock()

	lessonQ := normalize(p.lessonFilter)
	topicQ := normalize(p.topicFilter)
	quizQ := normalize(p.quizFilter)

	lessons := snap.RootCategories()
	if lessonQ != "" {
		lessons = filterCategories(snap, lessons, lessonQ)
	}
	if !containsCategory(lessons, p.lessonID) {
		p.lessonID = firstCategory(lessons)
		p.topicID = ""
		p.quizID = ""
	}

	var topics []catalog.Category
	if p.lessonID != "" {
		topics = snap.DirectChildren(p.lessonID)
		if topicQ != "" {
			topics = filterCategories(snap, topics, topicQ)
		}
	}
	if !containsCategory(topics, p.topicID) {
		p.topicID = firstCategory(topics)
		p.quizID = ""
	}

	var quizzes []catalog.Quiz
	if p.topicID != "" {
		quizzes = snap.QuizzesOf(p.topicID)
		if quizQ != "" {
			kept := quizzes[:0:0]
			for _, q := range quizzes {
				if strings.Contains(strings.ToLower(q.Title), quizQ) {
					kept = append(kept, q)
				}
			}
			quizzes = kept
		}
	}
	if !containsQuiz(quizzes, p.quizID) {
		p.quizID = ""
		if len(quizzes) > 0 {
			p.quizID = quizzes[0].ID
		}
	}

	v := View{
		Lessons:  make([]Item, 0, len(lessons)),
		Topics:   make([]Item, 0, len(topics)),
		Quizzes:  make([]Item, 0, len(quizzes)),
		LessonID: p.lessonID,
		TopicID:  p.topicID,
		QuizID:   p.quizID,
	}
	for _, c := range lessons {
		v.Lessons = append(v.Lessons, Item{ID: c.ID, Label: c.Name, Selected: c.ID == p.lessonID})
	}
	for _, c := range topics {
		v.Topics = append(v.Topics, Item{ID: c.ID, Label: c.Name, Path: snap.Path(c.ID), Selected: c.ID == p.topicID})
	}
	for _, q := range quizzes {
		v.Quizzes = append(v.Quizzes, Item{ID: q.ID, Label: q.Title, Path: snap.Path(q.CategoryID), Selected: q.ID == p.quizID})
		if q.ID == p.quizID {
			v.QuizLabel = snap.QuizPath(q)
		}
	}
	return v
}

func normalize(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// Lesson and topic tiers match the filter against the display path, so a
// topic can be found by its lesson's name too.
func filterCategories(snap *catalog.Snapshot, in []catalog.Category, q string) []catalog.Category {
	out := in[:0:0]
	for _, c := range in {
		if strings.Contains(strings.ToLower(snap.Path(c.ID)), q) {
			out = append(out, c)
		}
	}
	return out
}

func containsCategory(in []catalog.Category, id string) bool {
	if id == "" {
		return false
	}
	for _, c := range in {
		if c.ID == id {
			return true
		}
	}
	return false
}

func firstCategory(in []catalog.Category) string {
	if len(in) == 0 {
		return ""
	}
	return in[0].ID
}

func containsQuiz(in []catalog.Quiz, id string) bool {
	if id == "" {
		return false
	}
	for _, q := range in {
		if q.ID == id {
			return true
		}
	}
	return false
}
