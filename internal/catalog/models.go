package catalog

// Category forms a forest via ParentID. The UI keeps it two levels deep
// (lesson -> topic) but nothing here enforces that.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"` // empty for a lesson (root)
}

type Quiz struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	CategoryID string `json:"category_id"`
}

// Question is an image-based multiple-choice item. ImageURL is the fetchable
// reference served to clients; StoragePath is the object-store key used when
// the question is deleted.
type Question struct {
	ID          string `json:"id"`
	QuizID      string `json:"quiz_id"`
	Correct     string `json:"correct"` // one of A-E
	ImageURL    string `json:"image_url"`
	StoragePath string `json:"storage_path,omitempty"`
	Explain     string `json:"explain,omitempty"`
}

// Choices are the five answer controls every question exposes.
var Choices = []string{"A", "B", "C", "D", "E"}

func ValidChoice(s string) bool {
	for _, c := range Choices {
		if s == c {
			return true
		}
	}
	return false
}
