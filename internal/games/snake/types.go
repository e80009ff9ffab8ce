// Package snake implements the SQL Snake simulation: a fixed-grid Snake whose
// food is sometimes locked behind an SQL quiz.
//
// The package is pure. State is a value and every operation returns a new
// State, so the simulation can be driven by a Bubble Tea timer, an SSH session
// or a unit test alike. Network calls, timers and drawing to a terminal live
// in the platform layer.
package snake

import "time"

// Point is a cell on the grid.
type Point struct {
	X, Y int
}

// Add returns p shifted by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// noFood marks a grid with no free cell left.
var noFood = Point{X: -1, Y: -1}

// Direction is the snake's heading.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case DirRight:
		return DirLeft
	case DirLeft:
		return DirRight
	case DirUp:
		return DirDown
	default:
		return DirUp
	}
}

// Delta returns the one-cell offset for the heading.
func (d Direction) Delta() Point {
	switch d {
	case DirUp:
		return Point{Y: -1}
	case DirDown:
		return Point{Y: 1}
	case DirLeft:
		return Point{X: -1}
	default:
		return Point{X: 1}
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Phase is the controller state, including the quiz sub-states.
type Phase int

const (
	PhaseReady            Phase = iota // start screen, nothing running
	PhasePlaying                       // ticks advance the snake
	PhaseAwaitingQuestion              // locked food eaten, question requested
	PhaseShowingQuestion               // modal open, waiting for a query
	PhaseValidating                    // query sent, waiting for the verdict
	PhaseResolved                      // correct answer shown, resume pending
	PhaseGameOver                      // terminal until restart
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhasePlaying:
		return "playing"
	case PhaseAwaitingQuestion:
		return "awaiting_question"
	case PhaseShowingQuestion:
		return "showing_question"
	case PhaseValidating:
		return "validating"
	case PhaseResolved:
		return "resolved"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Question is a quiz prompt owned by the question service.
type Question struct {
	ID         int64
	Prompt     string
	Difficulty string
}

// Verdict is the question service's answer to a submitted query.
type Verdict struct {
	Valid    bool
	Expected string
}

// FeedbackKind classifies the message shown under the quiz prompt.
type FeedbackKind int

const (
	FeedbackNone FeedbackKind = iota
	FeedbackInfo
	FeedbackSuccess
	FeedbackError
)

// Feedback is the single status line of the quiz modal.
type Feedback struct {
	Kind FeedbackKind
	Text string
}

// Event reports what a transition did, so the platform can react
// (reschedule the ticker, fetch a question, report stats).
type Event int

const (
	EventNone Event = iota
	EventAte
	EventLevelUp
	EventQuizTriggered
	EventGameOver
)

func (e Event) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventAte:
		return "ate"
	case EventLevelUp:
		return "level_up"
	case EventQuizTriggered:
		return "quiz_triggered"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Rand is the randomness the simulation needs. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Settings are the tunables of a round.
type Settings struct {
	TileCount      int           // grid is TileCount x TileCount
	Origin         Point         // spawn cell of the single starting segment
	LockChance     float64       // probability that new food is quiz-locked
	BaseInterval   time.Duration // tick interval before level scaling
	IntervalStep   time.Duration // subtracted once per level
	MinInterval    time.Duration // fastest allowed tick
	PointsPerLevel int           // level up whenever score is a multiple of this
	ResolveDelay   time.Duration // success feedback shown before resuming
}

// DefaultSettings mirrors the classic 400x400 canvas with 20px tiles.
func DefaultSettings() Settings {
	return Settings{
		TileCount:      20,
		Origin:         Point{X: 10, Y: 10},
		LockChance:     0.3,
		BaseInterval:   150 * time.Millisecond,
		IntervalStep:   10 * time.Millisecond,
		MinInterval:    50 * time.Millisecond,
		PointsPerLevel: 5,
		ResolveDelay:   1500 * time.Millisecond,
	}
}

// Interval returns the tick interval for a level:
// max(BaseInterval - level*IntervalStep, MinInterval).
func (s Settings) Interval(level int) time.Duration {
	return max(s.BaseInterval-time.Duration(level)*s.IntervalStep, s.MinInterval)
}

// normalized fills zero values from the defaults and keeps Origin on the grid.
func (s Settings) normalized() Settings {
	def := DefaultSettings()
	if s.TileCount < 2 {
		s.TileCount = def.TileCount
	}
	if s.BaseInterval <= 0 {
		s.BaseInterval = def.BaseInterval
	}
	if s.MinInterval <= 0 {
		s.MinInterval = def.MinInterval
	}
	if s.IntervalStep < 0 {
		s.IntervalStep = 0
	}
	if s.LockChance < 0 {
		s.LockChance = 0
	}
	if s.Origin.X < 0 || s.Origin.X >= s.TileCount || s.Origin.Y < 0 || s.Origin.Y >= s.TileCount {
		s.Origin = Point{X: s.TileCount / 2, Y: s.TileCount / 2}
	}
	return s
}
