package catalog

import "strings"

// maxPathHops bounds the upward walk in Path so a cycle in the stored data
// cannot hang a render pass. Cycles are not otherwise validated.
const maxPathHops = 30

// RootCategories returns every category with no parent ("lessons").
func (s *Snapshot) RootCategories() []Category {
	out := make([]Category, 0, 8)
	for _, c := range s.Categories {
		if c.ParentID == "" {
			out = append(out, c)
		}
	}
	return out
}

// DirectChildren returns the categories whose parent is parentID ("topics"
// when parentID is a lesson).
func (s *Snapshot) DirectChildren(parentID string) []Category {
	out := make([]Category, 0, 8)
	for _, c := range s.Categories {
		if c.ParentID != "" && c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out
}

// Descendants returns rootID plus every category transitively below it,
// via an explicit stack. Order is unspecified; deletion reverses the list
// so children go before parents.
func (s *Snapshot) Descendants(rootID string) []string {
	out := make([]string, 0, 8)
	stack := []string{rootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, id)
		for _, c := range s.Categories {
			if c.ParentID == id {
				stack = append(stack, c.ID)
			}
		}
	}
	return out
}

// Path renders the dotted path of a category, e.g. "Math / Algebra".
// Unknown ids yield "".
func (s *Snapshot) Path(id string) string {
	cur, ok := s.CategoryByID(id)
	if !ok {
		return ""
	}
	chain := []string{cur.Name}
	for cur.ParentID != "" && len(chain) < maxPathHops {
		parent, ok := s.CategoryByID(cur.ParentID)
		if !ok {
			break
		}
		chain = append([]string{parent.Name}, chain...)
		cur = parent
	}
	return strings.Join(chain, " / ")
}

// QuizPath renders "Lesson / Topic / Title" for confirmation prompts and
// overview listings.
func (s *Snapshot) QuizPath(q Quiz) string {
	if p := s.Path(q.CategoryID); p != "" {
		return p + " / " + q.Title
	}
	return q.Title
}
