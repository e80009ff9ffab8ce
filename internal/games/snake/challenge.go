package snake

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyQuery is returned by Submit for blank input. Nothing is sent.
	ErrEmptyQuery = errors.New("snake: empty query")
	// ErrNoChallenge is returned by Submit when no question is on screen.
	ErrNoChallenge = errors.New("snake: no question to answer")
)

// Feedback texts shown in the quiz modal.
const (
	msgFetching        = "Fetching question..."
	msgEmptyQuery      = "Please enter an SQL query"
	msgChecking        = "Checking your query..."
	msgCorrect         = "Correct! Food unlocked!"
	msgIncorrectPrefix = "Incorrect. Expected: "
	msgIncorrect       = "Incorrect. Try again."
	msgValidationError = "Error validating query. Please try again."
)

// beginChallenge pauses the round and opens a new quiz session.
func (s State) beginChallenge() State {
	s.Paused = true
	s.Phase = PhaseAwaitingQuestion
	s.Epoch++
	s.Question = nil
	s.Feedback = Feedback{Kind: FeedbackInfo, Text: msgFetching}
	return s
}

// current reports whether an async completion for epoch still applies.
func (s State) current(epoch uint64, phase Phase) bool {
	return s.Running && s.Epoch == epoch && s.Phase == phase
}

// resume closes the quiz and lets ticks run again.
func (s State) resume() State {
	s.Paused = false
	s.Phase = PhasePlaying
	s.Question = nil
	s.Feedback = Feedback{}
	s.hasDeferred = false
	return s
}

// QuestionLoaded shows the fetched question.
func (s State) QuestionLoaded(epoch uint64, q Question) State {
	if !s.current(epoch, PhaseAwaitingQuestion) {
		return s
	}
	s.Phase = PhaseShowingQuestion
	s.Question = &q
	s.Feedback = Feedback{}
	return s
}

// QuestionFailed abandons the quiz after a fetch failure: the lock is
// cleared, the food stays where it is as plain food and play resumes.
func (s State) QuestionFailed(epoch uint64) State {
	if !s.current(epoch, PhaseAwaitingQuestion) {
		return s
	}
	s.Locked = false
	return s.resume()
}

// Submit checks a query locally before it goes to the question service.
// On success the state is Validating and the caller must send the query
// together with s.Question.ID under s.Epoch.
func (s State) Submit(query string) (State, error) {
	if s.Phase != PhaseShowingQuestion || s.Question == nil {
		return s, ErrNoChallenge
	}
	if strings.TrimSpace(query) == "" {
		s.Feedback = Feedback{Kind: FeedbackError, Text: msgEmptyQuery}
		return s, ErrEmptyQuery
	}
	s.Phase = PhaseValidating
	s.Feedback = Feedback{Kind: FeedbackInfo, Text: msgChecking}
	return s, nil
}

// Validated applies the service's verdict. A correct answer moves to
// Resolved; the caller schedules Resolve after Settings.ResolveDelay.
// A wrong answer keeps the modal open for another try.
func (s State) Validated(epoch uint64, v Verdict) State {
	if !s.current(epoch, PhaseValidating) {
		return s
	}
	s.QuestionsAnswered++
	if v.Valid {
		s.CorrectAnswers++
		s.Phase = PhaseResolved
		s.Feedback = Feedback{Kind: FeedbackSuccess, Text: msgCorrect}
		return s
	}
	s.Phase = PhaseShowingQuestion
	text := msgIncorrect
	if v.Expected != "" {
		text = msgIncorrectPrefix + v.Expected
	}
	s.Feedback = Feedback{Kind: FeedbackError, Text: text}
	return s
}

// ValidationFailed keeps the modal open and asks the player to retry.
func (s State) ValidationFailed(epoch uint64) State {
	if !s.current(epoch, PhaseValidating) {
		return s
	}
	s.Phase = PhaseShowingQuestion
	s.Feedback = Feedback{Kind: FeedbackError, Text: msgValidationError}
	return s
}

// Resolve finishes a correctly answered quiz: the lock goes away, play
// resumes and the food is consumed exactly like unlocked food.
func (s State) Resolve(epoch uint64, rng Rand) (State, Event) {
	if !s.current(epoch, PhaseResolved) {
		return s, EventNone
	}
	grown := make([]Point, 0, len(s.Snake)+1)
	grown = append(grown, s.Snake...)
	if s.hasDeferred {
		grown = append(grown, s.deferredTail)
	}
	s.Snake = grown
	s.Locked = false
	s = s.resume()
	return s.consume(rng)
}

// Skip abandons the quiz without penalty. The current food is discarded and
// fresh food (with a fresh lock roll) is placed elsewhere when possible.
func (s State) Skip(rng Rand) State {
	switch s.Phase {
	case PhaseAwaitingQuestion, PhaseShowingQuestion, PhaseValidating:
	default:
		return s
	}
	skipped := s.Food
	s.Epoch++
	s = s.resume()
	if skipped == noFood {
		return s.placeFood(rng, nil)
	}
	return s.placeFood(rng, &skipped)
}
