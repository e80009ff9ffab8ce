package snake

import (
	"errors"
	"math/rand"
	"slices"
	"testing"
)

// lockedMeal returns a round one tick away from eating locked food.
func lockedMeal() State {
	return playing([]Point{{10, 10}, {9, 10}, {8, 10}}, DirRight, Point{11, 10}, true)
}

func TestLockedFoodOpensChallenge(t *testing.T) {
	s := lockedMeal()

	next, ev := s.Tick(&scriptedRand{})

	if ev != EventQuizTriggered {
		t.Fatalf("event = %v, expected quiz", ev)
	}
	if !next.Paused || !next.Running || next.Phase != PhaseAwaitingQuestion {
		t.Errorf("paused=%v running=%v phase=%v", next.Paused, next.Running, next.Phase)
	}
	if next.Epoch != s.Epoch+1 {
		t.Errorf("epoch = %d, expected %d", next.Epoch, s.Epoch+1)
	}
	if next.Score != s.Score || len(next.Snake) != len(s.Snake) {
		t.Errorf("score %d len %d: locked food must not score or grow before the quiz", next.Score, len(next.Snake))
	}
	if next.Head() != (Point{11, 10}) || !next.Locked || next.Food != (Point{11, 10}) {
		t.Errorf("head %v food %v locked %v", next.Head(), next.Food, next.Locked)
	}

	// The scheduler may keep firing; nothing moves while paused
	again, ev := next.Tick(&scriptedRand{})
	if ev != EventNone || again.Head() != next.Head() {
		t.Error("ticks during the quiz must not move the snake")
	}
}

func TestCorrectAnswerMatchesUnlockedMeal(t *testing.T) {
	plain := lockedMeal()
	plain.Locked = false
	want, wantEv := plain.Tick(rand.New(rand.NewSource(77)))

	s, ev := lockedMeal().Tick(&scriptedRand{})
	if ev != EventQuizTriggered {
		t.Fatalf("event = %v", ev)
	}
	s = s.QuestionLoaded(s.Epoch, Question{ID: 3, Prompt: "Select all employees"})
	if s.Phase != PhaseShowingQuestion || s.Question == nil || s.Question.ID != 3 {
		t.Fatalf("question not shown: phase=%v question=%v", s.Phase, s.Question)
	}

	s, err := s.Submit("SELECT * FROM employees;")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if s.Phase != PhaseValidating {
		t.Fatalf("phase = %v, expected validating", s.Phase)
	}

	s = s.Validated(s.Epoch, Verdict{Valid: true, Expected: "SELECT * FROM employees;"})
	if s.Phase != PhaseResolved || s.Feedback.Kind != FeedbackSuccess || !s.Paused {
		t.Fatalf("phase=%v feedback=%+v paused=%v", s.Phase, s.Feedback, s.Paused)
	}
	if s.Score != 0 {
		t.Fatal("score must wait for the resolve delay")
	}

	got, gotEv := s.Resolve(s.Epoch, rand.New(rand.NewSource(77)))

	if gotEv != wantEv {
		t.Errorf("event = %v, expected %v", gotEv, wantEv)
	}
	if !slices.Equal(got.Snake, want.Snake) {
		t.Errorf("snake = %v, expected %v", got.Snake, want.Snake)
	}
	if got.Score != want.Score || got.Level != want.Level || got.Food != want.Food || got.Locked != want.Locked {
		t.Errorf("got score=%d level=%d food=%v locked=%v, expected score=%d level=%d food=%v locked=%v",
			got.Score, got.Level, got.Food, got.Locked, want.Score, want.Level, want.Food, want.Locked)
	}
	if got.Paused || got.Phase != PhasePlaying || got.Question != nil {
		t.Errorf("play should resume: paused=%v phase=%v", got.Paused, got.Phase)
	}
	if got.QuestionsAnswered != 1 || got.CorrectAnswers != 1 {
		t.Errorf("answered=%d correct=%d", got.QuestionsAnswered, got.CorrectAnswers)
	}
}

func TestWrongAnswerKeepsModalOpen(t *testing.T) {
	s, _ := lockedMeal().Tick(&scriptedRand{})
	s = s.QuestionLoaded(s.Epoch, Question{ID: 1, Prompt: "q"})
	s, _ = s.Submit("select 1")

	s = s.Validated(s.Epoch, Verdict{Valid: false, Expected: "SELECT * FROM employees;"})

	if s.Phase != PhaseShowingQuestion || !s.Paused {
		t.Errorf("phase=%v paused=%v, modal should stay open", s.Phase, s.Paused)
	}
	if s.Feedback.Kind != FeedbackError || s.Feedback.Text != "Incorrect. Expected: SELECT * FROM employees;" {
		t.Errorf("feedback = %+v", s.Feedback)
	}
	if s.Score != 0 || s.QuestionsAnswered != 1 || s.CorrectAnswers != 0 {
		t.Errorf("score=%d answered=%d correct=%d", s.Score, s.QuestionsAnswered, s.CorrectAnswers)
	}

	// Resubmission is allowed
	if _, err := s.Submit("SELECT * FROM employees"); err != nil {
		t.Errorf("resubmit error = %v", err)
	}
}

func TestValidationFailurePromptsRetry(t *testing.T) {
	s, _ := lockedMeal().Tick(&scriptedRand{})
	s = s.QuestionLoaded(s.Epoch, Question{ID: 1, Prompt: "q"})
	s, _ = s.Submit("select 1")

	s = s.ValidationFailed(s.Epoch)

	if s.Phase != PhaseShowingQuestion || s.Feedback.Text != msgValidationError {
		t.Errorf("phase=%v feedback=%+v", s.Phase, s.Feedback)
	}
	if s.QuestionsAnswered != 0 {
		t.Error("a transport failure is not an answered question")
	}
}

func TestEmptyQueryRejectedLocally(t *testing.T) {
	s, _ := lockedMeal().Tick(&scriptedRand{})
	s = s.QuestionLoaded(s.Epoch, Question{ID: 1, Prompt: "q"})

	next, err := s.Submit("   \n\t")

	if !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("err = %v, expected ErrEmptyQuery", err)
	}
	if next.Phase != PhaseShowingQuestion || next.Feedback.Text != msgEmptyQuery {
		t.Errorf("phase=%v feedback=%+v", next.Phase, next.Feedback)
	}
}

func TestSubmitWithoutQuestion(t *testing.T) {
	s := playing([]Point{{10, 10}}, DirRight, Point{0, 0}, false)
	if _, err := s.Submit("select 1"); !errors.Is(err, ErrNoChallenge) {
		t.Errorf("err = %v, expected ErrNoChallenge", err)
	}

	waiting, _ := lockedMeal().Tick(&scriptedRand{})
	if _, err := waiting.Submit("select 1"); !errors.Is(err, ErrNoChallenge) {
		t.Errorf("err = %v while the question is still loading", err)
	}
}

func TestQuestionFailedUnlocksFoodInPlace(t *testing.T) {
	s, _ := lockedMeal().Tick(&scriptedRand{})
	food := s.Food

	s = s.QuestionFailed(s.Epoch)

	if s.Locked || s.Food != food {
		t.Errorf("food = %v locked=%v, expected plain food at %v", s.Food, s.Locked, food)
	}
	if s.Paused || s.Phase != PhasePlaying || !s.Running {
		t.Errorf("paused=%v phase=%v running=%v", s.Paused, s.Phase, s.Running)
	}
	if s.Score != 0 || len(s.Snake) != 3 {
		t.Errorf("score=%d len=%d", s.Score, len(s.Snake))
	}

	next, ev := s.Tick(&scriptedRand{})
	if ev != EventNone || next.Head() != (Point{12, 10}) {
		t.Errorf("play should continue: event=%v head=%v", ev, next.Head())
	}
}

func TestSkipPlacesFreshFood(t *testing.T) {
	s, _ := lockedMeal().Tick(&scriptedRand{})
	s = s.QuestionLoaded(s.Epoch, Question{ID: 1, Prompt: "q"})
	skipped := s.Food
	epoch := s.Epoch

	// First draw lands on the skipped cell, second on a free one
	next := s.Skip(&scriptedRand{ints: []int{skipped.X, skipped.Y, 2, 3}, floats: []float64{0.1}})

	if next.Food == skipped || next.Food != (Point{2, 3}) {
		t.Errorf("food = %v, expected (2,3)", next.Food)
	}
	if !next.Locked {
		t.Error("fresh food rolls its own lock")
	}
	if next.Paused || next.Phase != PhasePlaying || next.Question != nil {
		t.Errorf("paused=%v phase=%v", next.Paused, next.Phase)
	}
	if next.Epoch == epoch {
		t.Error("skip must start a new epoch")
	}
	if next.Score != 0 || len(next.Snake) != 3 {
		t.Errorf("skip is free but gives nothing: score=%d len=%d", next.Score, len(next.Snake))
	}
}

func TestSkipOnNearlyFullGrid(t *testing.T) {
	settings := DefaultSettings()
	settings.TileCount = 2
	s := Start(settings, rand.New(rand.NewSource(1)))
	s.Snake = []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	s.Food = Point{0, 0}
	s.Locked = true
	s = s.beginChallenge()

	next := s.Skip(rand.New(rand.NewSource(5)))

	if next.HasFood() {
		t.Errorf("no free cell left, food = %v", next.Food)
	}
	if next.Phase != PhasePlaying {
		t.Errorf("phase = %v", next.Phase)
	}
}

func TestSkipIgnoredOutsideChallenge(t *testing.T) {
	s := playing([]Point{{10, 10}}, DirRight, Point{4, 4}, false)
	if next := s.Skip(&scriptedRand{}); next.Food != s.Food || next.Epoch != s.Epoch {
		t.Error("skip outside the quiz must be a no-op")
	}
}

func TestStaleResponsesAreDropped(t *testing.T) {
	s, _ := lockedMeal().Tick(&scriptedRand{})
	old := s.Epoch

	// Player skips before the question arrives
	s = s.Skip(rand.New(rand.NewSource(2)))
	late := s.QuestionLoaded(old, Question{ID: 9, Prompt: "late"})
	if late.Question != nil || late.Phase != PhasePlaying {
		t.Error("a question for a skipped quiz must be ignored")
	}
	if failed := s.QuestionFailed(old); failed.Food != s.Food || failed.Locked != s.Locked {
		t.Error("a failure for a skipped quiz must be ignored")
	}

	// A verdict arriving after a restart is ignored too
	q, _ := lockedMeal().Tick(&scriptedRand{})
	q = q.QuestionLoaded(q.Epoch, Question{ID: 1, Prompt: "q"})
	q, _ = q.Submit("select 1")
	pending := q.Epoch
	q = q.Restart(rand.New(rand.NewSource(3)))
	after := q.Validated(pending, Verdict{Valid: true})
	if after.CorrectAnswers != 0 || after.Phase != PhasePlaying {
		t.Error("a verdict from before the restart must be ignored")
	}
	if resolved, ev := q.Resolve(pending, rand.New(rand.NewSource(3))); ev != EventNone || resolved.Score != 0 {
		t.Error("a resolve from before the restart must be ignored")
	}
}

func TestRestartClearsEverythingButEpoch(t *testing.T) {
	s, _ := lockedMeal().Tick(&scriptedRand{})
	s.Score = 17
	s.Level = 4
	s.QuestionsAnswered = 3

	next := s.Restart(rand.New(rand.NewSource(4)))

	if next.Score != 0 || next.Level != 1 || next.QuestionsAnswered != 0 || next.Paused || next.Question != nil {
		t.Errorf("restart carried state: %+v", next.Snapshot())
	}
	if next.Epoch <= s.Epoch {
		t.Errorf("epoch %d must advance past %d", next.Epoch, s.Epoch)
	}
}
