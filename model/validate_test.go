package model

import (
	"strings"
	"testing"
)

func TestQuestionPayloadValidate(t *testing.T) {
	tests := []struct {
		name      string
		payload   QuestionPayload
		wantError string // substring, empty means valid
	}{
		{
			name:    "minimal text question",
			payload: QuestionPayload{Title: "Feedback?"},
		},
		{
			name: "well-formed variant question",
			payload: QuestionPayload{
				Title:         "Pick",
				QuestionType:  TypeVariant,
				Variants:      []Variant{{Text: "A"}, {Text: "B"}},
				MaxSelections: 2,
			},
		},
		{
			name:      "missing title",
			payload:   QuestionPayload{},
			wantError: "title is required",
		},
		{
			name:      "unknown question type",
			payload:   QuestionPayload{Title: "x", QuestionType: "ranked"},
			wantError: "questiontype must be one of",
		},
		{
			name:      "variant question without variants",
			payload:   QuestionPayload{Title: "x", QuestionType: TypeVariant},
			wantError: "at least one variant",
		},
		{
			name: "blank variant text",
			payload: QuestionPayload{
				Title:        "x",
				QuestionType: TypeVariant,
				Variants:     []Variant{{Text: "  "}},
			},
			wantError: "variant 1 has no text",
		},
		{
			name: "cap exceeds variant count",
			payload: QuestionPayload{
				Title:         "x",
				QuestionType:  TypeVariant,
				Variants:      []Variant{{Text: "A"}},
				MaxSelections: 2,
			},
			wantError: "exceeds variant count",
		},
		{
			name:      "maxSelections on a text question",
			payload:   QuestionPayload{Title: "x", MaxSelections: 2},
			wantError: "only applies to variant questions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantError == "" {
				if err != nil {
					t.Errorf("expected valid payload, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.wantError) {
				t.Errorf("expected error containing %q, got %q", tt.wantError, err)
			}
		})
	}
}

func TestQuestionPayloadValidateCollectsAllProblems(t *testing.T) {
	p := QuestionPayload{
		QuestionType: TypeVariant,
	}

	err := p.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"title is required", "at least one variant"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected combined error to mention %q, got %q", want, err)
		}
	}
}

func TestQuestionPatchValidate(t *testing.T) {
	blank := "   "
	if err := (QuestionPatch{Title: &blank}).Validate(); err == nil {
		t.Error("expected blank title to be rejected")
	}

	title := "New title"
	if err := (QuestionPatch{Title: &title}).Validate(); err != nil {
		t.Errorf("expected valid patch, got %v", err)
	}

	if err := (QuestionPatch{}).Validate(); err != nil {
		t.Errorf("expected empty patch to be valid, got %v", err)
	}
}

func TestQuestionDefaults(t *testing.T) {
	q := Question{}
	if q.Type() != TypeText {
		t.Errorf("expected default type text, got %q", q.Type())
	}
	if q.SelectionCap() != 1 {
		t.Errorf("expected default cap 1, got %d", q.SelectionCap())
	}

	q = Question{Variants: []Variant{{Text: "A"}}}
	if !q.HasVariant("A") || q.HasVariant("B") {
		t.Error("HasVariant misreported membership")
	}
}
