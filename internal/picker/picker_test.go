package picker_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quizforge/quizforge/internal/catalog"
	"github.com/quizforge/quizforge/internal/picker"
)

// Math(Algebra["Linear Equations","Quadratics"], Geometry["Angles"]),
// Physics(Mechanics[]).
func snap() *catalog.Snapshot {
	return &catalog.Snapshot{
		Categories: []catalog.Category{
			{ID: "math", Name: "Math"},
			{ID: "algebra", Name: "Algebra", ParentID: "math"},
			{ID: "geometry", Name: "Geometry", ParentID: "math"},
			{ID: "physics", Name: "Physics"},
			{ID: "mechanics", Name: "Mechanics", ParentID: "physics"},
		},
		Quizzes: []catalog.Quiz{
			{ID: "lin", Title: "Linear Equations", CategoryID: "algebra"},
			{ID: "quad", Title: "Quadratics", CategoryID: "algebra"},
			{ID: "ang", Title: "Angles", CategoryID: "geometry"},
		},
	}
}

func TestRenderDefaultsToFirstCandidates(t *testing.T) {
	p := picker.New()
	v := p.Render(snap())

	// With no prior selection every tier picks its first candidate.
	require.Equal(t, "math", v.LessonID)
	require.Equal(t, "algebra", v.TopicID)
	require.Equal(t, "lin", v.QuizID)
	require.Equal(t, "Math / Algebra / Linear Equations", v.QuizLabel)
}

func TestRenderIsIdempotent(t *testing.T) {
	p := picker.New()
	s := snap()
	p.SelectLesson("math")
	p.SelectTopic("geometry")
	p.SelectQuiz("ang")

	v1 := p.Render(s)
	v2 := p.Render(s)
	require.Equal(t, v1, v2)
	require.Equal(t, "ang", v2.QuizID)
}

func TestSelectLessonClearsDownstream(t *testing.T) {
	p := picker.New()
	s := snap()
	p.SelectLesson("math")
	p.SelectTopic("geometry")
	p.SelectQuiz("ang")
	require.Equal(t, "ang", p.Render(s).QuizID)

	p.SelectLesson("physics")
	v := p.Render(s)
	require.Equal(t, "physics", v.LessonID)
	require.Equal(t, "mechanics", v.TopicID)
	require.Empty(t, v.QuizID, "no quizzes under mechanics")
	require.Empty(t, v.QuizLabel)
	require.Empty(t, v.Quizzes)
}

func TestStaleSelectionFallsBack(t *testing.T) {
	p := picker.New()
	s := snap()
	p.SelectLesson("math")
	p.SelectTopic("geometry")
	p.SelectQuiz("ang")
	require.Equal(t, "ang", p.Render(s).QuizID)

	// The selected quiz disappears from the snapshot (deleted elsewhere).
	s.Quizzes = s.Quizzes[:2]
	v := p.Render(s)
	require.Equal(t, "geometry", v.TopicID)
	require.Empty(t, v.QuizID)
}

func TestFilterNarrowsAndRestores(t *testing.T) {
	p := picker.New()
	s := snap()
	p.SelectTopic("algebra")
	p.SetFilter(picker.TierQuiz, "quad")

	v := p.Render(s)
	require.Len(t, v.Quizzes, 1)
	require.Equal(t, "quad", v.QuizID, "filtered-out selection falls back to first match")

	p.SetFilter(picker.TierQuiz, "")
	v = p.Render(s)
	require.Len(t, v.Quizzes, 2)
	require.Equal(t, "quad", v.QuizID, "surviving selection is kept when the filter lifts")
}

func TestLessonFilterMatchesPath(t *testing.T) {
	p := picker.New()
	s := snap()
	// Topic filters match against the full path, so a topic is findable by
	// its lesson's name.
	p.SelectLesson("math")
	p.SetFilter(picker.TierTopic, "math")
	v := p.Render(s)
	require.Len(t, v.Topics, 2)

	p.SetFilter(picker.TierTopic, "geo")
	v = p.Render(s)
	require.Len(t, v.Topics, 1)
	require.Equal(t, "geometry", v.TopicID)
}

func TestEmptySnapshot(t *testing.T) {
	p := picker.New()
	v := p.Render(&catalog.Snapshot{})
	require.Empty(t, v.LessonID)
	require.Empty(t, v.TopicID)
	require.Empty(t, v.QuizID)
	require.NotNil(t, v.Lessons)
	require.Empty(t, v.Lessons)
}

func TestReset(t *testing.T) {
	p := picker.New()
	s := snap()
	p.SelectLesson("physics")
	p.SetFilter(picker.TierLesson, "phys")
	p.Reset()

	v := p.Render(s)
	require.Equal(t, "math", v.LessonID, "reset returns to the default selection")
	require.Len(t, v.Lessons, 2, "reset clears filters")
}

func TestResetLeavesPickerUsable(t *testing.T) {
	p := picker.New()
	s := snap()

	// Resetting must not disturb the picker's internal locking: repeated
	// resets and further mutations all have to keep working.
	p.Reset()
	p.Reset()
	p.SelectLesson("physics")
	require.Equal(t, "physics", p.Render(s).LessonID)

	p.Reset()
	require.Equal(t, "math", p.Render(s).LessonID)
}

func TestRegistryIsolatesPurposes(t *testing.T) {
	reg := picker.NewRegistry()
	s := snap()

	reg.Get("u1", picker.PurposeSolve).SelectLesson("physics")
	solveView := reg.Get("u1", picker.PurposeSolve).Render(s)
	authorView := reg.Get("u1", picker.PurposeAuthor).Render(s)

	require.Equal(t, "physics", solveView.LessonID)
	require.Equal(t, "math", authorView.LessonID, "purposes must not share state")

	otherView := reg.Get("u2", picker.PurposeSolve).Render(s)
	require.Equal(t, "math", otherView.LessonID, "users must not share state")

	reg.Drop("u1")
	require.Equal(t, "math", reg.Get("u1", picker.PurposeSolve).Render(s).LessonID)
}
