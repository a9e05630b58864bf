package model

import "time"

const (
	TypeText    = "text"
	TypeVariant = "variant"
)

type Question struct {
	ID            string    `json:"id,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Slug          string    `json:"slug,omitempty"`
	Active        bool      `json:"active"`
	QuestionType  string    `json:"questionType"`
	Variants      []Variant `json:"variants,omitempty"`
	MaxSelections int       `json:"maxSelections,omitempty"`
	Answers       []Answer  `json:"answers,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`

	// Answered is filled from the viewer's session, never stored.
	Answered bool `json:"answered,omitempty"`
}

type Variant struct {
	Text string `json:"text"`
}

type Answer struct {
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"createdAt"`
}

// Type returns the question type, defaulting to text for legacy records
// that never had one set.
func (q Question) Type() string {
	if q.QuestionType == "" {
		return TypeText
	}
	return q.QuestionType
}

// SelectionCap returns the effective maxSelections, defaulting to 1.
func (q Question) SelectionCap() int {
	if q.MaxSelections < 1 {
		return 1
	}
	return q.MaxSelections
}

// HasVariant reports whether text names one of the question's variants.
func (q Question) HasVariant(text string) bool {
	for _, v := range q.Variants {
		if v.Text == text {
			return true
		}
	}
	return false
}
