// Package tui provides the Bubble Tea integration for SQL Snake.
// It handles the terminal UI loop, input mapping, quiz requests, and SSH
// session serving.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Gen identifies the
// scheduler run that produced it.
type TickMsg struct {
	Gen  uint64
	Time time.Time
}

// ticker drives the simulation with one-shot tea.Tick commands. Each start
// begins a new generation; ticks from older generations are dropped, so a
// pause never leaves a stray tick behind and a resume never replays missed
// steps.
type ticker struct {
	gen     uint64
	running bool
}

// start begins a new generation and schedules its first tick.
func (t *ticker) start(interval time.Duration) tea.Cmd {
	t.gen++
	t.running = true
	return tickCmd(t.gen, interval)
}

// next schedules the following tick of the current generation.
func (t *ticker) next(interval time.Duration) tea.Cmd {
	if !t.running {
		return nil
	}
	return tickCmd(t.gen, interval)
}

// stop invalidates any tick in flight.
func (t *ticker) stop() {
	t.gen++
	t.running = false
}

// accept reports whether msg belongs to the live generation.
func (t ticker) accept(msg TickMsg) bool {
	return t.running && msg.Gen == t.gen
}

// tickCmd returns a Bubble Tea command that sends one tick after interval.
func tickCmd(gen uint64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
