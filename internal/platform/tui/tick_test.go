package tui

import (
	"testing"
	"time"
)

func TestTickerGenerations(t *testing.T) {
	var tk ticker

	if tk.accept(TickMsg{Gen: 0}) {
		t.Fatal("stopped ticker must not accept ticks")
	}

	if cmd := tk.start(10 * time.Millisecond); cmd == nil {
		t.Fatal("start() should schedule a tick")
	}
	first := tk.gen
	if !tk.accept(TickMsg{Gen: first}) {
		t.Error("tick of the live generation rejected")
	}

	tk.start(10 * time.Millisecond)
	if tk.accept(TickMsg{Gen: first}) {
		t.Error("tick from a replaced generation accepted")
	}

	tk.stop()
	if tk.accept(TickMsg{Gen: tk.gen}) {
		t.Error("ticks after stop must be dropped")
	}
	if cmd := tk.next(10 * time.Millisecond); cmd != nil {
		t.Error("next() on a stopped ticker should be nil")
	}
}

func TestTickCmdCarriesGeneration(t *testing.T) {
	msg := tickCmd(7, time.Millisecond)()
	tick, ok := msg.(TickMsg)
	if !ok {
		t.Fatalf("tickCmd produced %T", msg)
	}
	if tick.Gen != 7 {
		t.Errorf("Gen = %d, expected 7", tick.Gen)
	}
}
