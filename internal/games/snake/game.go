package snake

// maxFoodAttempts bounds rejection sampling before falling back to a scan of
// the free cells, so a nearly full grid cannot spin forever.
const maxFoodAttempts = 512

// State is the complete state of one SQL Snake round.
// Treat it as a value: operations return an updated copy and never mutate
// slices reachable from the receiver.
type State struct {
	Settings Settings

	Snake []Point // head at index 0
	Food  Point
	// Locked marks Food as quiz-gated. Food and lock are always placed or
	// cleared together, so there is never a lock without matching food.
	Locked bool

	Score         int
	Level         int
	Direction     Direction // heading applied on the last tick
	NextDirection Direction // last accepted turn, applied on the next tick
	Running       bool
	Paused        bool // only ever true while Running

	Phase    Phase
	Question *Question
	Feedback Feedback
	// Epoch identifies the current quiz session. Async completions carry the
	// epoch they were issued under and are dropped when it no longer matches.
	Epoch uint64

	QuestionsAnswered int
	CorrectAnswers    int
	Ticks             uint64

	// deferredTail is the tail cell given up when locked food was reached.
	// A correct answer gives it back, which makes the growth identical to
	// eating unlocked food.
	deferredTail Point
	hasDeferred  bool
}

// New returns the start-screen state: nothing is running until Restart.
func New(settings Settings) State {
	settings = settings.normalized()
	return State{
		Settings:      settings,
		Snake:         []Point{settings.Origin},
		Food:          noFood,
		Level:         1,
		Direction:     DirRight,
		NextDirection: DirRight,
		Phase:         PhaseReady,
	}
}

// Start returns a freshly started round.
func Start(settings Settings, rng Rand) State {
	return New(settings).Restart(rng)
}

// Restart discards the round and starts a new one with the same settings.
// Only the epoch survives, so responses to an abandoned quiz are ignored.
func (s State) Restart(rng Rand) State {
	next := State{
		Settings:      s.Settings,
		Snake:         []Point{s.Settings.Origin},
		Level:         1,
		Direction:     DirRight,
		NextDirection: DirRight,
		Running:       true,
		Phase:         PhasePlaying,
		Epoch:         s.Epoch + 1,
	}
	return next.placeFood(rng, nil)
}

// Head returns the head segment.
func (s State) Head() Point {
	return s.Snake[0]
}

// HasFood reports whether food is on the board. It is false only when the
// snake fills every cell.
func (s State) HasFood() bool {
	return s.Food != noFood
}

// LockedFood returns the locked food cell, if any.
func (s State) LockedFood() (Point, bool) {
	if !s.Locked || !s.HasFood() {
		return Point{}, false
	}
	return s.Food, true
}

// InChallenge reports whether the quiz flow owns the round.
func (s State) InChallenge() bool {
	switch s.Phase {
	case PhaseAwaitingQuestion, PhaseShowingQuestion, PhaseValidating, PhaseResolved:
		return true
	}
	return false
}

// Turn buffers a direction change. Input is accepted only while the round is
// running and not paused, and a turn straight back into the neck is
// rejected. The last accepted turn before a tick wins.
func (s State) Turn(dir Direction) State {
	if !s.Running || s.Paused {
		return s
	}
	if dir == s.Direction.Opposite() {
		return s
	}
	s.NextDirection = dir
	return s
}

// Tick advances the snake one cell.
func (s State) Tick(rng Rand) (State, Event) {
	if !s.Running || s.Paused {
		return s, EventNone
	}
	s.Ticks++
	s.Direction = s.NextDirection

	head := s.Head().Add(s.Direction.Delta())
	if !s.inBounds(head) {
		return s.gameOver(), EventGameOver
	}
	// Checked against the whole pre-move body, tail included: a snake about
	// to vacate its tail cell still collides with it.
	if s.occupies(head) {
		return s.gameOver(), EventGameOver
	}

	body := make([]Point, 0, len(s.Snake)+1)
	body = append(body, head)
	body = append(body, s.Snake...)

	if s.HasFood() && head == s.Food {
		if s.Locked {
			s.deferredTail = body[len(body)-1]
			s.hasDeferred = true
			s.Snake = body[:len(body)-1]
			return s.beginChallenge(), EventQuizTriggered
		}
		s.Snake = body
		return s.consume(rng)
	}

	s.Snake = body[:len(body)-1]
	return s, EventNone
}

// consume applies a meal: the snake has already grown, so bump the score,
// place new food and evaluate the level-up.
func (s State) consume(rng Rand) (State, Event) {
	s.Score++
	s = s.placeFood(rng, nil)
	if s.Settings.PointsPerLevel > 0 && s.Score%s.Settings.PointsPerLevel == 0 {
		s.Level++
		return s, EventLevelUp
	}
	return s, EventAte
}

func (s State) gameOver() State {
	s.Running = false
	s.Paused = false
	s.Phase = PhaseGameOver
	return s
}

func (s State) inBounds(p Point) bool {
	n := s.Settings.TileCount
	return p.X >= 0 && p.X < n && p.Y >= 0 && p.Y < n
}

func (s State) occupies(p Point) bool {
	for _, seg := range s.Snake {
		if seg == p {
			return true
		}
	}
	return false
}

// placeFood puts food on a random free cell and rolls the lock. avoid, when
// set, is also treated as occupied unless it is the only free cell left.
func (s State) placeFood(rng Rand, avoid *Point) State {
	n := s.Settings.TileCount
	occupied := make(map[Point]bool, len(s.Snake))
	for _, seg := range s.Snake {
		occupied[seg] = true
	}
	blocked := func(p Point) bool {
		return occupied[p] || (avoid != nil && p == *avoid)
	}

	for range maxFoodAttempts {
		p := Point{X: rng.Intn(n), Y: rng.Intn(n)}
		if !blocked(p) {
			return s.setFood(p, rng)
		}
	}

	var free []Point
	for y := range n {
		for x := range n {
			if p := (Point{X: x, Y: y}); !blocked(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 && avoid != nil && s.inBounds(*avoid) && !occupied[*avoid] {
		free = append(free, *avoid)
	}
	if len(free) == 0 {
		s.Food = noFood
		s.Locked = false
		return s
	}
	return s.setFood(free[rng.Intn(len(free))], rng)
}

func (s State) setFood(p Point, rng Rand) State {
	s.Food = p
	s.Locked = rng.Float64() < s.Settings.LockChance
	return s
}
