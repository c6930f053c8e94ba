package question

// Question is a question bank record. The correct answer travels with the
// record; correctness is always recomputed server-side on submission.
type Question struct {
	ID       int64    `json:"id"`
	Category string   `json:"category"`
	Text     string   `json:"text"`
	Options  []string `json:"options"`
	Correct  string   `json:"correct"`
}
