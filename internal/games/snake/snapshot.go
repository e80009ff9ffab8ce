package snake

// Snapshot is a flat copy of the observable state, used for determinism
// checks and debugging.
type Snapshot struct {
	Ticks    uint64
	Phase    Phase
	Score    int
	Level    int
	SnakeLen int
	HeadX    int
	HeadY    int
	Dir      Direction
	FoodX    int
	FoodY    int
	Locked   bool
	Epoch    uint64
	Answered int
	Correct  int
	Running  bool
	Paused   bool
	Interval int64 // tick interval in milliseconds at the current level
}

// Snapshot returns the current snapshot.
// A zero State has no snake; its head is reported as (0, 0).
func (s State) Snapshot() Snapshot {
	var head Point
	if len(s.Snake) > 0 {
		head = s.Head()
	}
	return Snapshot{
		Ticks:    s.Ticks,
		Phase:    s.Phase,
		Score:    s.Score,
		Level:    s.Level,
		SnakeLen: len(s.Snake),
		HeadX:    head.X,
		HeadY:    head.Y,
		Dir:      s.Direction,
		FoodX:    s.Food.X,
		FoodY:    s.Food.Y,
		Locked:   s.Locked,
		Epoch:    s.Epoch,
		Answered: s.QuestionsAnswered,
		Correct:  s.CorrectAnswers,
		Running:  s.Running,
		Paused:   s.Paused,
		Interval: s.Settings.Interval(s.Level).Milliseconds(),
	}
}
