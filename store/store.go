package store

import (
	"context"
	"database/sql"
	"regexp"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"

	"github.com/ekarimli/sorgu/model"
)

// ErrNotFound signals an absent question id, as opposed to a store failure.
var ErrNotFound = errors.New("question not found")

var reNoIdent = regexp.MustCompile(`\W+`)

// Questions is the client for the question collection. Variants live embedded
// in a JSON column on the question row; answers live in a child table that
// cascades on delete, so a question and its answers die together.
type Questions struct {
	db *sql.DB
}

func NewQuestions(db *sql.DB) *Questions {
	return &Questions{db: db}
}

// ListAll returns every question with its answers loaded, in creation order.
func (s *Questions) ListAll(ctx context.Context) ([]model.Question, error) {
	return s.list(ctx, false)
}

// ListActive returns only the questions currently offered to viewers.
func (s *Questions) ListActive(ctx context.Context) ([]model.Question, error) {
	return s.list(ctx, true)
}

func (s *Questions) list(ctx context.Context, activeOnly bool) ([]model.Question, error) {
	query := `
		SELECT id, title, description, slug, active, question_type, max_selections, variants, created_at
		FROM question`
	if activeOnly {
		query += `
		WHERE active`
	}
	query += `
		ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "list questions")
	}
	defer rows.Close()

	questions := []model.Question{}
	index := map[string]int{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, errors.Wrap(err, "list questions: scan")
		}
		index[q.ID] = len(questions)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list questions")
	}

	ansRows, err := s.db.QueryContext(ctx, `
		SELECT question_id, answer, created_at
		FROM answer
		ORDER BY question_id, id`)
	if err != nil {
		return nil, errors.Wrap(err, "list questions: answers")
	}
	defer ansRows.Close()

	for ansRows.Next() {
		var qid string
		var a model.Answer
		if err := ansRows.Scan(&qid, &a.Answer, &a.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "list questions: answers scan")
		}
		if i, ok := index[qid]; ok {
			questions[i].Answers = append(questions[i].Answers, a)
		}
	}
	if err := ansRows.Err(); err != nil {
		return nil, errors.Wrap(err, "list questions: answers")
	}

	return questions, nil
}

// GetByID returns one question with its answers, or ErrNotFound.
func (s *Questions) GetByID(ctx context.Context, id string) (model.Question, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, slug, active, question_type, max_selections, variants, created_at
		FROM question
		WHERE id = ?`,
		id,
	)

	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Question{}, ErrNotFound
	}
	if err != nil {
		return model.Question{}, errors.Wrap(err, "get question")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT answer, created_at
		FROM answer
		WHERE question_id = ?
		ORDER BY id`,
		id,
	)
	if err != nil {
		return model.Question{}, errors.Wrap(err, "get question: answers")
	}
	defer rows.Close()

	for rows.Next() {
		var a model.Answer
		if err := rows.Scan(&a.Answer, &a.CreatedAt); err != nil {
			return model.Question{}, errors.Wrap(err, "get question: answers scan")
		}
		q.Answers = append(q.Answers, a)
	}
	if err := rows.Err(); err != nil {
		return model.Question{}, errors.Wrap(err, "get question: answers")
	}

	return q, nil
}

// Create stores a new question. The id is store-assigned, active defaults to
// true and the slug is derived from the title.
func (s *Questions) Create(ctx context.Context, p model.QuestionPayload) (model.Question, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return model.Question{}, errors.Wrap(err, "create question: id")
	}

	q := model.Question{
		ID:            id.String(),
		Title:         p.Title,
		Description:   p.Description,
		Slug:          Slugify(p.Title),
		Active:        true,
		QuestionType:  p.QuestionType,
		Variants:      p.Variants,
		MaxSelections: p.MaxSelections,
		CreatedAt:     time.Now(),
	}
	if q.QuestionType == "" {
		q.QuestionType = model.TypeText
	}
	if q.MaxSelections < 1 {
		q.MaxSelections = 1
	}

	variantsJson, err := marshalVariants(q.Variants)
	if err != nil {
		return model.Question{}, errors.Wrap(err, "create question: variants")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO question (id, title, description, slug, active, question_type, max_selections, variants, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.Title, q.Description, q.Slug, q.Active, q.QuestionType, q.MaxSelections, variantsJson, q.CreatedAt,
	)
	if err != nil {
		return model.Question{}, errors.Wrap(err, "create question")
	}

	return q, nil
}

// Update merges the non-nil patch fields into the stored question.
func (s *Questions) Update(ctx context.Context, id string, p model.QuestionPatch) (model.Question, error) {
	q, err := s.GetByID(ctx, id)
	if err != nil {
		return model.Question{}, err
	}

	if p.Title != nil {
		q.Title = *p.Title
		q.Slug = Slugify(*p.Title)
	}
	if p.Description != nil {
		q.Description = *p.Description
	}
	if p.Active != nil {
		q.Active = *p.Active
	}
	if p.QuestionType != nil {
		q.QuestionType = *p.QuestionType
	}
	if p.Variants != nil {
		q.Variants = *p.Variants
	}
	if p.MaxSelections != nil {
		q.MaxSelections = *p.MaxSelections
	}

	variantsJson, err := marshalVariants(q.Variants)
	if err != nil {
		return model.Question{}, errors.Wrap(err, "update question: variants")
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE question
		SET
			title = ?,
			description = ?,
			slug = ?,
			active = ?,
			question_type = ?,
			max_selections = ?,
			variants = ?
		WHERE id = ?`,
		q.Title, q.Description, q.Slug, q.Active, q.QuestionType, q.MaxSelections, variantsJson, id,
	)
	if err != nil {
		return model.Question{}, errors.Wrap(err, "update question")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Question{}, errors.Wrap(err, "update question: verify")
	}
	if n < 1 {
		return model.Question{}, ErrNotFound
	}

	return q, nil
}

// SetActive flips whether the question is offered to viewers.
func (s *Questions) SetActive(ctx context.Context, id string, active bool) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE question SET active = ? WHERE id = ?`,
		active, id,
	)
	if err != nil {
		return errors.Wrap(err, "set active")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "set active: verify")
	}
	if n < 1 {
		return ErrNotFound
	}
	return nil
}

// AppendAnswer adds one answer entry to the question. The insert is a single
// statement, so concurrent submissions cannot lose each other.
func (s *Questions) AppendAnswer(ctx context.Context, id string, a model.Answer) error {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM question WHERE id = ?`, id).
		Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return errors.Wrap(err, "append answer: check question")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO answer (question_id, answer, created_at)
		VALUES (?, ?, ?)`,
		id, a.Answer, a.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "append answer")
	}
	return nil
}

// Delete removes the question and, through the cascade, all its answers.
func (s *Questions) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM question WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete question")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete question: verify")
	}
	if n < 1 {
		return ErrNotFound
	}
	return nil
}

// Slugify renders a title as a URL-friendly identifier.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = reNoIdent.ReplaceAllLiteralString(slug, " ")
	return strings.Join(strings.Fields(slug), "-")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row scanner) (q model.Question, err error) {
	var variantsJson string
	err = row.Scan(
		&q.ID, &q.Title, &q.Description, &q.Slug, &q.Active,
		&q.QuestionType, &q.MaxSelections, &variantsJson, &q.CreatedAt,
	)
	if err != nil {
		return
	}

	if variantsJson != "" {
		err = gojson.Unmarshal([]byte(variantsJson), &q.Variants)
	}
	return
}

func marshalVariants(variants []model.Variant) (string, error) {
	if len(variants) == 0 {
		return "", nil
	}
	b, err := gojson.Marshal(variants)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
