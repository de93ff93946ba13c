package ui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/botplot/internal/logging"
	"github.com/five82/botplot/internal/plot"
	"github.com/five82/botplot/internal/prefs"
	"github.com/five82/botplot/internal/state"
)

const defaultRefreshInterval = 3 * time.Second

// Engine advances the data sources by one refresh cycle.
type Engine interface {
	Tick() error
}

// Options configures the UI.
type Options struct {
	Engine    Engine
	Store     *state.Store
	Interval  time.Duration
	NoUpdate  bool
	Sources   []string // display names of the inputs
	ThemeName string
	PrefsPath string
	Logger    *slog.Logger
	Plot      plot.Options
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	engine    Engine
	store     *state.Store
	interval  time.Duration
	noUpdate  bool
	sources   []string
	prefsPath string
	logger    *slog.Logger

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	plotOpts plot.Options
	width    int
	height   int
	ready    bool
	showHelp bool

	// Data state
	lastUpdated time.Time
	err         error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultRefreshInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = ThemeNames()[0]
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	store := opts.Store
	if store == nil {
		store = state.New(state.Options{})
	}

	return Model{
		engine:      opts.Engine,
		store:       store,
		interval:    interval,
		noUpdate:    opts.NoUpdate,
		sources:     opts.Sources,
		prefsPath:   prefsPath,
		logger:      logger.With("component", "ui"),
		theme:       GetTheme(themeName),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		plotOpts:    opts.Plot,
		lastUpdated: time.Now(),
	}
}

// Err returns the error that ended the program, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.noUpdate || m.engine == nil {
		return nil
	}
	return tickCmd(m.interval)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	bodyHeight := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(footer))

	fig := plot.Build(m.store, m.plotOpts)
	body := m.renderFigure(fig, m.width, bodyHeight)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Follow):
		m.plotOpts.Follow = !m.plotOpts.Follow
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil
	}

	return m, nil
}

// handleTick runs one engine cycle and schedules the next.
func (m Model) handleTick(at time.Time) (tea.Model, tea.Cmd) {
	if err := m.engine.Tick(); err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.lastUpdated = at
	return m, tickCmd(m.interval)
}

func (m Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name}.WithFollow(m.plotOpts.Follow)
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", "path", m.prefsPath, "error", err)
	}
}

// Messages

type tickMsg time.Time

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until it exits. It returns the
// engine error that stopped the program, or nil when the user quit or ctx was
// cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
