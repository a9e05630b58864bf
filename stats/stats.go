// Package stats computes per-variant response counts and percentages.
// Everything here is a read-only projection over a fetched question: safe on
// stale data, never touches the store.
package stats

import (
	"math"

	gojson "github.com/goccy/go-json"

	"github.com/ekarimli/sorgu/model"
)

type VariantStat struct {
	Text       string  `json:"text"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type Summary struct {
	TotalAnswers int           `json:"totalAnswers"`
	Variants     []VariantStat `json:"variants"`
}

// VariantCounts maps each variant text to the number of answers naming it.
// Answers come in two encodings: a JSON list of selected texts (current), or
// a bare variant text (legacy single-select records). Values that match no
// known variant are dropped silently.
func VariantCounts(q model.Question) map[string]int {
	if q.Type() != model.TypeVariant || len(q.Variants) == 0 {
		return map[string]int{}
	}

	counts := make(map[string]int, len(q.Variants))
	for _, v := range q.Variants {
		counts[v.Text] = 0
	}

	for _, a := range q.Answers {
		var selected []string
		if err := gojson.Unmarshal([]byte(a.Answer), &selected); err != nil {
			// legacy encoding: the whole string is one selection
			selected = []string{a.Answer}
		}
		for _, text := range selected {
			if _, known := counts[text]; known {
				counts[text]++
			}
		}
	}

	return counts
}

// Percentage returns count/total as a percentage rounded to one decimal.
// A zero total yields 0 rather than dividing.
func Percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

// Summarize produces render-ready rows in the question's variant order.
func Summarize(q model.Question) Summary {
	counts := VariantCounts(q)
	total := len(q.Answers)

	rows := make([]VariantStat, 0, len(q.Variants))
	for _, v := range q.Variants {
		count := counts[v.Text]
		rows = append(rows, VariantStat{
			Text:       v.Text,
			Count:      count,
			Percentage: Percentage(count, total),
		})
	}

	return Summary{
		TotalAnswers: total,
		Variants:     rows,
	}
}
