package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/coordinator-insight/backend/internal/model/chat"
	"github.com/coordinator-insight/backend/internal/model/journey"
	"github.com/coordinator-insight/backend/internal/model/persona"
	chatService "github.com/coordinator-insight/backend/internal/service/chat"
	"github.com/coordinator-insight/backend/internal/toggle"
)

const (
	defaultWidth  = 100
	defaultHeight = 32
)

// Options configures the terminal UI.
type Options struct {
	Session *chatService.Session
	Persona persona.Persona
	Initial toggle.Option
	Dark    bool
	Logger  *zap.Logger
}

type (
	snapshotMsg   chat.Snapshot
	submitDoneMsg struct{ err error }
)

// Model is the bubbletea model of the profile page.
type Model struct {
	ctx     context.Context
	session *chatService.Session
	watcher *chatService.Watcher
	persona persona.Persona
	logger  *zap.Logger

	toggle         *toggle.Toggle
	slider         *slider
	stopToggleLogs func()

	styles   Styles
	renderer *glamour.TermRenderer
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	snap   chat.Snapshot
	width  int
	height int
}

// New builds the model. ctx bounds every completion call issued from the UI.
func New(ctx context.Context, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("tui")

	theme := LightTheme()
	if opts.Dark {
		theme = DarkTheme()
	}
	styles := NewStyles(theme)

	ti := textinput.New()
	ti.Placeholder = "Ask about the coordinator career..."
	ti.Prompt = "│ "
	ti.CharLimit = 2000
	ti.PromptStyle = styles.UserLine

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	tg := toggle.New(opts.Initial, 0)
	last := tg.Selected()
	stop := tg.Subscribe(func(s toggle.State) {
		if s.Selected != last {
			last = s.Selected
			logger.Debug("perspective changed", zap.String("perspective", string(journey.FromOption(s.Selected))))
		}
	})

	m := Model{
		ctx:            ctx,
		session:        opts.Session,
		watcher:        opts.Session.Watch(),
		persona:        opts.Persona,
		logger:         logger,
		toggle:         tg,
		slider:         newSlider(tg, defaultWidth),
		stopToggleLogs: stop,
		styles:         styles,
		input:          ti,
		spinner:        sp,
		snap:           opts.Session.Snapshot(),
		width:          defaultWidth,
		height:         defaultHeight,
	}
	m.resize(defaultWidth, defaultHeight)
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		waitForSnapshot(m.watcher),
	)
}

// Perspective returns the currently selected content perspective.
func (m Model) Perspective() journey.Perspective {
	return journey.FromOption(m.toggle.Selected())
}

// Snapshot returns the last chat snapshot the UI rendered.
func (m Model) Snapshot() chat.Snapshot {
	return m.snap
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.shutdown()
			return m, tea.Quit

		case tea.KeyCtrlO:
			if m.snap.PanelOpen {
				m.session.ClosePanel()
				m.input.Blur()
			} else {
				m.session.OpenPanel()
				cmds = append(cmds, m.input.Focus())
			}
			m.refresh(m.session.Snapshot())
			return m, tea.Batch(cmds...)

		case tea.KeyCtrlT:
			theme := DarkTheme()
			if m.styles.Theme.IsDark {
				theme = LightTheme()
			}
			m.applyTheme(theme)
			return m, nil

		case tea.KeyEnter:
			if m.snap.PanelOpen {
				return m, submit(m.ctx, m.session, m.input.Value())
			}
			return m, nil

		case tea.KeyLeft, tea.KeyRight:
			if !m.snap.PanelOpen {
				opt := toggle.OptionA
				if msg.Type == tea.KeyRight {
					opt = toggle.OptionB
				}
				return m, m.slider.selectOption(opt)
			}
		}

		if m.snap.PanelOpen {
			before := m.input.Value()
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
			if m.input.Value() != before {
				m.session.SetDraft(m.input.Value())
				m.refresh(m.session.Snapshot())
			}
		}

	case tea.MouseMsg:
		cmds = append(cmds, m.slider.handleMouse(msg))
		if m.snap.PanelOpen {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case animFrameMsg:
		cmds = append(cmds, m.slider.step())

	case snapshotMsg:
		m.refresh(chat.Snapshot(msg))
		cmds = append(cmds, waitForSnapshot(m.watcher))

	case submitDoneMsg:
		switch {
		case msg.err == nil,
			errors.Is(msg.err, chatService.ErrValidationRejected),
			errors.Is(msg.err, chatService.ErrRequestAbandoned):
		default:
			m.logger.Warn("submit failed", zap.Error(msg.err))
		}
		m.refresh(m.session.Snapshot())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// refresh adopts snap unless a newer one was already rendered.
func (m *Model) refresh(snap chat.Snapshot) {
	if snap.Version < m.snap.Version {
		return
	}
	m.snap = snap
	if m.input.Value() != snap.Draft {
		m.input.SetValue(snap.Draft)
		m.input.CursorEnd()
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width, m.height = width, height
	m.slider.resize(width)

	panelWidth := m.panelWidth()
	m.input.Width = panelWidth - 6
	vpHeight := height - 10
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport = viewport.New(panelWidth-4, vpHeight)
	m.renderer = newRenderer(m.styles.Theme, panelWidth-6)
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m *Model) applyTheme(theme Theme) {
	m.styles = NewStyles(theme)
	m.input.PromptStyle = m.styles.UserLine
	m.spinner.Style = m.styles.Spinner
	m.renderer = newRenderer(theme, m.panelWidth()-6)
	m.viewport.SetContent(m.renderTranscript())
}

func (m Model) panelWidth() int {
	w := m.width * 2 / 5
	if w < 30 {
		w = 30
	}
	return w
}

func (m *Model) shutdown() {
	m.watcher.Close()
	m.stopToggleLogs()
}

func newRenderer(theme Theme, wrap int) *glamour.TermRenderer {
	if wrap < 20 {
		wrap = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(theme.Name),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil
	}
	return renderer
}

func waitForSnapshot(w *chatService.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-w.Ready():
			return snapshotMsg(w.Latest())
		case <-w.Done():
			return nil
		}
	}
}

func submit(ctx context.Context, session *chatService.Session, draft string) tea.Cmd {
	return func() tea.Msg {
		return submitDoneMsg{err: session.Submit(ctx, draft)}
	}
}
