package quiz

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/sql-snake/internal/storage"
)

func newTestBank(t *testing.T, seeds ...storage.QuestionSeed) (*Bank, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "quiz.db"))
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if len(seeds) > 0 {
		if _, err := store.SeedQuestions(context.Background(), seeds); err != nil {
			t.Fatalf("SeedQuestions() error = %v", err)
		}
	}
	return NewBank(store), store
}

func TestBankEmpty(t *testing.T) {
	bank, _ := newTestBank(t)

	if _, err := bank.RandomQuestion(context.Background()); !errors.Is(err, ErrNoQuestion) {
		t.Errorf("err = %v, want ErrNoQuestion", err)
	}
}

func TestBankValidate(t *testing.T) {
	ctx := context.Background()
	bank, _ := newTestBank(t, storage.QuestionSeed{
		Question:      "Select all employees from the 'employees' table",
		ExpectedQuery: "SELECT * FROM employees;",
	})

	q, err := bank.RandomQuestion(ctx)
	if err != nil {
		t.Fatalf("RandomQuestion() error = %v", err)
	}

	v, err := bank.Validate(ctx, "  select *  from EMPLOYEES ", q.ID)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !v.Valid || v.Expected != "SELECT * FROM employees;" {
		t.Errorf("unexpected verdict %+v", v)
	}

	v, err = bank.Validate(ctx, "select name from employees", q.ID)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if v.Valid {
		t.Error("wrong query accepted")
	}

	if _, err := bank.Validate(ctx, "select 1", q.ID+1); !errors.Is(err, ErrUnknownQuestion) {
		t.Errorf("err = %v, want ErrUnknownQuestion", err)
	}
	if _, err := bank.Validate(ctx, " ", q.ID); !errors.Is(err, ErrMissingInput) {
		t.Errorf("err = %v, want ErrMissingInput", err)
	}
}

func TestBankUpdateStats(t *testing.T) {
	ctx := context.Background()
	bank, store := newTestBank(t)

	if err := bank.UpdateStats(ctx, Stats{Username: "ada", Score: 6, QuestionsAnswered: 2, CorrectAnswers: 1}); err != nil {
		t.Fatalf("UpdateStats() error = %v", err)
	}

	p, err := store.PlayerStats(ctx, "ada")
	if err != nil {
		t.Fatalf("PlayerStats() error = %v", err)
	}
	if p.HighScore != 6 || p.TotalQuestions != 2 || p.CorrectAnswers != 1 {
		t.Errorf("unexpected stats %+v", p)
	}
}
