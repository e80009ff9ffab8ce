package tui

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sql-snake/internal/core"
	"github.com/vovakirdan/sql-snake/internal/games/snake"
	"github.com/vovakirdan/sql-snake/internal/quiz"
	"github.com/vovakirdan/sql-snake/internal/storage"
)

// Options configures a game model.
type Options struct {
	Settings snake.Settings
	Service  quiz.Service
	// Store is optional; when set the best score is read from it.
	Store    *storage.Store
	Username string
	Runtime  core.RuntimeConfig
	// Timeout bounds each quiz request.
	Timeout time.Duration
	Logger  *log.Logger
}

// Model is the Bubble Tea model for one SQL Snake session.
type Model struct {
	opts     Options
	state    snake.State
	rng      *rand.Rand
	ticker   ticker
	input    textinput.Model
	help     help.Model
	keys     KeyMap
	screen   *core.Screen
	width    int
	height   int
	best     int
	logger   *log.Logger
	quitting bool
}

// NewModel creates a model showing the start screen.
func NewModel(opts Options) Model {
	// Use time-based seed if not specified
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Username == "" {
		opts.Username = "anonymous"
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Placeholder = "SELECT ..."
	ti.Prompt = "SQL> "
	ti.CharLimit = 500

	state := snake.New(opts.Settings)
	bw, bh := snake.BoardSize(state.Settings)

	m := Model{
		opts:   opts,
		state:  state,
		rng:    rand.New(rand.NewSource(opts.Runtime.Seed)),
		input:  ti,
		help:   help.New(),
		keys:   DefaultKeyMap(),
		screen: core.NewScreen(bw, bh),
		width:  opts.Runtime.ScreenW,
		height: opts.Runtime.ScreenH,
		logger: logger,
	}
	m.sizeInput()
	if opts.Store != nil {
		if best, err := opts.Store.HighScore(context.Background(), opts.Username); err == nil {
			m.best = best
		} else {
			logger.Warn("could not read high score", "user", opts.Username, "error", err)
		}
	}
	return m
}

// sizeInput fits the query input to the modal.
func (m *Model) sizeInput() {
	w, _ := snake.BoardSize(m.state.Settings)
	m.input.Width = max(w-len(m.input.Prompt)-4, 10)
}

// Init initializes the model. Nothing ticks until the player starts.
func (m Model) Init() tea.Cmd {
	return nil
}

// State returns the current simulation state.
func (m Model) State() snake.State {
	return m.state
}

// Best returns the best score known for the player.
func (m Model) Best() int {
	return m.best
}

// IsQuitting returns true if the user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if !m.ticker.accept(msg) {
			return m, nil
		}
		prev := m.state
		var ev snake.Event
		m.state, ev = m.state.Tick(m.rng)
		if ev != snake.EventNone {
			m.logger.Debug("tick", "event", ev, "state", m.state.Snapshot())
		}
		return m, m.sync(prev, true)

	case questionMsg:
		prev := m.state
		if msg.err != nil {
			m.logger.Warn("question fetch failed, food unlocked", "error", msg.err)
			m.state = m.state.QuestionFailed(msg.epoch)
		} else {
			m.state = m.state.QuestionLoaded(msg.epoch, snake.Question{
				ID:         msg.question.ID,
				Prompt:     msg.question.Prompt,
				Difficulty: msg.question.Difficulty,
			})
		}
		return m, m.sync(prev, false)

	case verdictMsg:
		prev := m.state
		if msg.err != nil {
			m.logger.Warn("validation failed", "error", msg.err)
			m.state = m.state.ValidationFailed(msg.epoch)
		} else {
			m.state = m.state.Validated(msg.epoch, snake.Verdict{
				Valid:    msg.verdict.Valid,
				Expected: msg.verdict.Expected,
			})
		}
		return m, m.sync(prev, false)

	case resolveMsg:
		prev := m.state
		m.state, _ = m.state.Resolve(msg.epoch, m.rng)
		return m, m.sync(prev, false)

	case statsMsg:
		if msg.err != nil {
			m.logger.Warn("stats report failed", "user", msg.stats.Username, "error", msg.err)
		} else {
			m.logger.Info("stats reported", "user", msg.stats.Username, "score", msg.stats.Score)
		}
		return m, nil
	}

	// Cursor blink and other input internals
	if m.state.Phase == snake.PhaseShowingQuestion {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.MapKey(msg, m.state.Phase)
	prev := m.state

	switch action {
	case core.ActionQuit:
		m.quitting = true
		m.ticker.stop()
		return m, tea.Quit

	case core.ActionStart, core.ActionRestart:
		m.state = m.state.Restart(m.rng)
		return m, m.sync(prev, false)

	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		if dir, ok := directionFor(action); ok {
			m.state = m.state.Turn(dir)
		}
		return m, nil

	case core.ActionSkip:
		m.state = m.state.Skip(m.rng)
		return m, m.sync(prev, false)

	case core.ActionSubmit:
		next, err := m.state.Submit(m.input.Value())
		m.state = next
		if err != nil {
			if !errors.Is(err, snake.ErrEmptyQuery) && !errors.Is(err, snake.ErrNoChallenge) {
				m.logger.Error("submit failed", "error", err)
			}
			return m, nil
		}
		m.input.Blur()
		return m, validateCmd(m.opts.Service, m.opts.Timeout, m.state.Epoch, strings.TrimSpace(m.input.Value()), m.state.Question.ID)
	}

	if m.state.Phase == snake.PhaseShowingQuestion {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// sync issues the commands implied by a transition from prev to the current
// state: scheduler changes, quiz requests, and the end-of-round report.
func (m *Model) sync(prev snake.State, fromTick bool) tea.Cmd {
	cur := m.state
	var cmds []tea.Cmd

	wasTicking := prev.Running && !prev.Paused
	ticking := cur.Running && !cur.Paused
	interval := cur.Settings.Interval(cur.Level)

	switch {
	case !ticking:
		if m.ticker.running {
			m.ticker.stop()
		}
	case !wasTicking || !m.ticker.running || cur.Level != prev.Level:
		cmds = append(cmds, m.ticker.start(interval))
	case fromTick:
		cmds = append(cmds, m.ticker.next(interval))
	}

	if cur.Phase != prev.Phase || cur.Epoch != prev.Epoch {
		switch cur.Phase {
		case snake.PhaseAwaitingQuestion:
			m.input.Reset()
			m.input.Blur()
			cmds = append(cmds, fetchQuestionCmd(m.opts.Service, m.opts.Timeout, cur.Epoch))
		case snake.PhaseShowingQuestion:
			cmds = append(cmds, m.input.Focus())
		case snake.PhaseResolved:
			cmds = append(cmds, resolveCmd(cur.Epoch, cur.Settings.ResolveDelay))
		case snake.PhasePlaying:
			m.input.Reset()
			m.input.Blur()
		}
	}

	if prev.Running && !cur.Running {
		m.best = max(m.best, cur.Score)
		m.logger.Info("round over", "user", m.opts.Username, "score", cur.Score, "level", cur.Level,
			"answered", cur.QuestionsAnswered, "correct", cur.CorrectAnswers)
		cmds = append(cmds, reportStatsCmd(m.opts.Service, m.opts.Timeout, quiz.Stats{
			Username:          m.opts.Username,
			Score:             cur.Score,
			QuestionsAnswered: cur.QuestionsAnswered,
			CorrectAnswers:    cur.CorrectAnswers,
		}))
	}

	return tea.Batch(cmds...)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// Run starts a local Bubble Tea program and blocks until the player quits
// or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
