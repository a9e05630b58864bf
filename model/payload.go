package model

// Payloads decoded from request bodies. Validation combines struct tags
// with the cross-field checks the tags cannot express.

type QuestionPayload struct {
	Title         string    `json:"title" validate:"required"`
	Description   string    `json:"description"`
	QuestionType  string    `json:"questionType" validate:"omitempty,oneof=text variant"`
	Variants      []Variant `json:"variants" validate:"omitempty,dive"`
	MaxSelections int       `json:"maxSelections" validate:"omitempty,min=1"`
}

type QuestionPatch struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	Active        *bool      `json:"active"`
	QuestionType  *string    `json:"questionType" validate:"omitempty,oneof=text variant"`
	Variants      *[]Variant `json:"variants" validate:"omitempty,dive"`
	MaxSelections *int       `json:"maxSelections" validate:"omitempty,min=1"`
}

type SubmissionPayload struct {
	// Answer carries the free-text response for text questions.
	Answer string `json:"answer"`
	// Selected carries the chosen variant texts for variant questions.
	Selected []string `json:"selected"`
}
