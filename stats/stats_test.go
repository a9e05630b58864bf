package stats

import (
	"reflect"
	"testing"

	"github.com/ekarimli/sorgu/model"
)

func variantQuestion(maxSelections int, variants []string, answers []string) model.Question {
	q := model.Question{
		QuestionType:  model.TypeVariant,
		MaxSelections: maxSelections,
	}
	for _, v := range variants {
		q.Variants = append(q.Variants, model.Variant{Text: v})
	}
	for _, a := range answers {
		q.Answers = append(q.Answers, model.Answer{Answer: a})
	}
	return q
}

func TestVariantCounts(t *testing.T) {
	tests := []struct {
		name     string
		question model.Question
		expected map[string]int
	}{
		{
			name:     "mixed legacy and list encodings",
			question: variantQuestion(1, []string{"A", "B"}, []string{`["A"]`, `["B"]`, `A`}),
			expected: map[string]int{"A": 2, "B": 1},
		},
		{
			name:     "multi-select fan-out",
			question: variantQuestion(2, []string{"A", "B", "C"}, []string{`["A","B"]`, `["B","C"]`}),
			expected: map[string]int{"A": 1, "B": 2, "C": 1},
		},
		{
			name:     "unknown values ignored",
			question: variantQuestion(1, []string{"A"}, []string{`["A","X"]`, `Y`}),
			expected: map[string]int{"A": 1},
		},
		{
			name:     "variants with no responses still reported",
			question: variantQuestion(1, []string{"A", "B"}, []string{`["A"]`}),
			expected: map[string]int{"A": 1, "B": 0},
		},
		{
			name:     "no answers",
			question: variantQuestion(1, []string{"A", "B"}, nil),
			expected: map[string]int{"A": 0, "B": 0},
		},
		{
			name: "text question yields empty mapping",
			question: model.Question{
				QuestionType: model.TypeText,
				Answers:      []model.Answer{{Answer: "free text"}},
			},
			expected: map[string]int{},
		},
		{
			name:     "variant question without variants yields empty mapping",
			question: model.Question{QuestionType: model.TypeVariant},
			expected: map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := VariantCounts(tt.question)
			if !reflect.DeepEqual(counts, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, counts)
			}
		})
	}
}

func TestVariantCountsSingleSelectSumInvariant(t *testing.T) {
	// with maxSelections=1 the counts must add up to the answer total
	q := variantQuestion(1, []string{"A", "B", "C"}, []string{`["A"]`, `["B"]`, `B`, `["C"]`, `A`})

	counts := VariantCounts(q)
	sum := 0
	for _, c := range counts {
		sum += c
	}
	if sum != len(q.Answers) {
		t.Errorf("expected sum %d, got %d", len(q.Answers), sum)
	}
}

func TestVariantCountsDoesNotMutateQuestion(t *testing.T) {
	q := variantQuestion(1, []string{"A"}, []string{`["A"]`})
	before := len(q.Answers)

	VariantCounts(q)
	VariantCounts(q)

	if len(q.Answers) != before || q.Answers[0].Answer != `["A"]` {
		t.Error("aggregation mutated the question")
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		total    int
		expected float64
	}{
		{"zero total", 3, 0, 0},
		{"zero count", 0, 4, 0},
		{"exact half", 1, 2, 50},
		{"one decimal rounding", 1, 3, 33.3},
		{"rounds up", 2, 3, 66.7},
		{"full", 7, 7, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentage(tt.count, tt.total); got != tt.expected {
				t.Errorf("Percentage(%d, %d) = %v, expected %v", tt.count, tt.total, got, tt.expected)
			}
		})
	}
}

func TestSummarizeKeepsVariantOrder(t *testing.T) {
	q := variantQuestion(2, []string{"C", "A", "B"}, []string{`["A","B"]`, `["B"]`})

	summary := Summarize(q)
	if summary.TotalAnswers != 2 {
		t.Errorf("expected 2 total answers, got %d", summary.TotalAnswers)
	}

	order := []string{"C", "A", "B"}
	if len(summary.Variants) != len(order) {
		t.Fatalf("expected %d rows, got %d", len(order), len(summary.Variants))
	}
	for i, text := range order {
		if summary.Variants[i].Text != text {
			t.Errorf("row %d: expected %q, got %q", i, text, summary.Variants[i].Text)
		}
	}

	if summary.Variants[2].Count != 2 || summary.Variants[2].Percentage != 100 {
		t.Errorf("unexpected stats for B: %+v", summary.Variants[2])
	}
	if summary.Variants[0].Count != 0 || summary.Variants[0].Percentage != 0 {
		t.Errorf("unexpected stats for C: %+v", summary.Variants[0])
	}
}
