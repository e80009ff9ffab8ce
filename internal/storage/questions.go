package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var defaultQuestionsYAML []byte

// QuestionSeed is a question as written in a YAML question file.
type QuestionSeed struct {
	Question      string `yaml:"question"`
	ExpectedQuery string `yaml:"expected_query"`
	Difficulty    string `yaml:"difficulty"`
}

type questionFile struct {
	Questions []QuestionSeed `yaml:"questions"`
}

// DefaultQuestions returns the built-in question bank.
func DefaultQuestions() ([]QuestionSeed, error) {
	return parseQuestions(defaultQuestionsYAML, "embedded question bank")
}

// LoadQuestionFile reads questions from a YAML file.
func LoadQuestionFile(path string) ([]QuestionSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to read questions %s: %w", path, err)
	}
	return parseQuestions(data, path)
}

func parseQuestions(data []byte, source string) ([]QuestionSeed, error) {
	var f questionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("storage: failed to parse %s: %w", source, err)
	}
	for i, q := range f.Questions {
		if strings.TrimSpace(q.Question) == "" || strings.TrimSpace(q.ExpectedQuery) == "" {
			return nil, fmt.Errorf("storage: %s: question %d needs question and expected_query", source, i+1)
		}
	}
	return f.Questions, nil
}

// SeedQuestions inserts seeds only when the bank is empty, so restarting a
// server never duplicates the sample questions. Returns how many were added.
func (s *Store) SeedQuestions(ctx context.Context, seeds []QuestionSeed) (int, error) {
	n, err := s.CountQuestions(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	return s.AddQuestions(ctx, seeds)
}

// AddQuestions inserts all seeds in one transaction.
func (s *Store) AddQuestions(ctx context.Context, seeds []QuestionSeed) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, q := range seeds {
		difficulty := q.Difficulty
		if difficulty == "" {
			difficulty = "easy"
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO questions (question, expected_query, difficulty) VALUES (?, ?, ?)",
			q.Question, q.ExpectedQuery, difficulty,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot insert question: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit questions: %w", err)
	}
	return len(seeds), nil
}

// AddQuestion inserts a single question and returns its ID.
func (s *Store) AddQuestion(ctx context.Context, seed QuestionSeed) (int64, error) {
	difficulty := seed.Difficulty
	if difficulty == "" {
		difficulty = "easy"
	}
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO questions (question, expected_query, difficulty) VALUES (?, ?, ?)",
		seed.Question, seed.ExpectedQuery, difficulty,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot insert question: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// CountQuestions returns the size of the bank.
func (s *Store) CountQuestions(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM questions").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count questions: %w", err)
	}
	return n, nil
}

// RandomQuestion picks one question uniformly. Returns ErrNotFound when the
// bank is empty.
func (s *Store) RandomQuestion(ctx context.Context) (Question, error) {
	return s.scanQuestion(s.db.QueryRowContext(ctx,
		`SELECT id, question, expected_query, difficulty
		 FROM questions
		 ORDER BY RANDOM()
		 LIMIT 1`,
	))
}

// QuestionByID looks a question up. Returns ErrNotFound for unknown IDs.
func (s *Store) QuestionByID(ctx context.Context, id int64) (Question, error) {
	return s.scanQuestion(s.db.QueryRowContext(ctx,
		`SELECT id, question, expected_query, difficulty
		 FROM questions
		 WHERE id = ?`,
		id,
	))
}

func (s *Store) scanQuestion(row *sql.Row) (Question, error) {
	var q Question
	err := row.Scan(&q.ID, &q.Prompt, &q.ExpectedQuery, &q.Difficulty)
	if errors.Is(err, sql.ErrNoRows) {
		return Question{}, ErrNotFound
	}
	if err != nil {
		return Question{}, fmt.Errorf("storage: cannot query question: %w", err)
	}
	return q, nil
}

// ListQuestions returns the whole bank ordered by ID.
func (s *Store) ListQuestions(ctx context.Context) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, question, expected_query, difficulty FROM questions ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list questions: %w", err)
	}
	defer rows.Close()

	var out []Question
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.Prompt, &q.ExpectedQuery, &q.Difficulty); err != nil {
			return nil, fmt.Errorf("storage: cannot scan question: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
