// Package tui is the terminal front-end: a character creation form, the
// narrative log, the stats sidebar, and slash commands for settings. All
// state transitions go through the reducer in internal/game; this package
// only renders and routes input.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rowanveil/dungeon-chat/internal/engine"
	"github.com/rowanveil/dungeon-chat/internal/game"
	"github.com/rowanveil/dungeon-chat/internal/models"
)

type phase int

const (
	phaseCreate phase = iota
	phaseStarting
	phasePlaying
	phaseFatal
)

const (
	focusName = iota
	focusClass
	focusBackground
	focusCount
)

type model struct {
	phase    phase
	engine   *engine.Engine
	session  *engine.Session
	state    *game.State
	settings models.GameSettings

	// settingsPath is where changed settings are saved; empty disables saving.
	settingsPath string

	nameInput       textinput.Model
	backgroundInput textinput.Model
	classIdx        int
	focus           int

	actionInput textinput.Model
	viewport    viewport.Model
	spin        spinner.Model

	notice string
	err    error
	width  int
	height int
}

type sessionOpenedMsg struct {
	session *engine.Session
	resp    *models.TurnResponse
}

type startFailedMsg struct {
	err error
}

type turnFinishedMsg struct {
	// session identifies the session this reply belongs to; replies from a
	// session that was restarted away are dropped.
	session *engine.Session
	resp    *models.TurnResponse
	err     error
}

type effectExpiredMsg struct{}

type transcriptSavedMsg struct {
	path string
	err  error
}

func newModel(eng *engine.Engine, settings models.GameSettings, settingsPath string) model {
	name := textinput.New()
	name.Placeholder = "Rex"
	name.CharLimit = 40
	name.Width = 30
	name.Focus()

	background := textinput.New()
	background.Placeholder = "A soldier far from home..."
	background.CharLimit = 200
	background.Width = 60

	action := textinput.New()
	action.Placeholder = "What do you do?"
	action.CharLimit = 300
	action.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return model{
		phase:           phaseCreate,
		engine:          eng,
		state:           game.NewState(),
		settings:        settings.Normalize(),
		settingsPath:    settingsPath,
		nameInput:       name,
		backgroundInput: background,
		actionInput:     action,
		spin:            sp,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.logWidth()
		m.viewport.Height = msg.Height - 7
		if m.phase == phasePlaying {
			m.viewport.SetContent(m.renderLog())
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case sessionOpenedMsg:
		m.session = msg.session
		m.state.ApplyStart(msg.resp, time.Now())
		m.phase = phasePlaying
		if m.viewport.Width == 0 {
			m.viewport = viewport.New(m.logWidth(), m.height-7)
		}
		m.viewport.SetContent(m.renderLog())
		m.viewport.GotoBottom()
		m.actionInput.Reset()
		m.actionInput.Focus()
		return m, m.effectCmd()

	case startFailedMsg:
		m.state.ApplyStartFailure()
		m.err = msg.err
		m.phase = phaseFatal
		return m, nil

	case turnFinishedMsg:
		if msg.session != m.session {
			return m, nil
		}
		if msg.err != nil {
			m.state.ApplyFailure(time.Now())
		} else {
			m.state.ApplyTurn(msg.resp, time.Now())
		}
		m.viewport.SetContent(m.renderLog())
		m.viewport.GotoBottom()
		return m, m.effectCmd()

	case effectExpiredMsg:
		m.state.ExpireEffect(time.Now())
		return m, nil

	case transcriptSavedMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("export failed: %v", msg.err)
		} else {
			m.notice = "transcript saved to " + msg.path
		}
		return m, nil
	}

	return m.updateInputs(msg)
}

func (m model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		if m.phase == phaseFatal {
			m.phase = phaseCreate
			m.err = nil
			return m, nil
		}
		return m, tea.Quit
	}

	switch m.phase {
	case phaseCreate:
		return m.updateCreate(msg)
	case phasePlaying:
		return m.updatePlaying(msg)
	}
	return m, nil
}

func (m model) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		return m.setFocus((m.focus + 1) % focusCount), nil
	case tea.KeyShiftTab, tea.KeyUp:
		return m.setFocus((m.focus + focusCount - 1) % focusCount), nil

	case tea.KeyLeft:
		if m.focus == focusClass {
			m.classIdx = (m.classIdx + len(models.Classes) - 1) % len(models.Classes)
			return m, nil
		}
	case tea.KeyRight:
		if m.focus == focusClass {
			m.classIdx = (m.classIdx + 1) % len(models.Classes)
			return m, nil
		}

	case tea.KeyEnter:
		if m.focus != focusBackground {
			return m.setFocus(m.focus + 1), nil
		}
		char := models.Character{
			Name:       m.nameInput.Value(),
			Class:      models.Classes[m.classIdx],
			Background: m.backgroundInput.Value(),
		}
		if err := char.Validate(); err != nil {
			m.notice = err.Error()
			return m, nil
		}
		if !m.state.BeginStart() {
			return m, nil
		}
		m.notice = ""
		m.phase = phaseStarting
		return m, tea.Batch(m.spin.Tick, m.openSession(char))
	}

	return m.updateInputs(msg)
}

func (m model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type != tea.KeyEnter {
		return m.updateInputs(msg)
	}

	input := m.actionInput.Value()
	if input == "" {
		return m, nil
	}
	m.actionInput.Reset()
	m.notice = ""

	if res, handled := evalCommand(input, m.settings); handled {
		return m.runCommand(res)
	}

	// Input is inert once the game is over or while a turn is in flight.
	if !m.state.BeginAction(input, time.Now()) {
		return m, nil
	}
	m.viewport.SetContent(m.renderLog())
	m.viewport.GotoBottom()
	return m, m.submitAction(input)
}

func (m model) runCommand(res commandResult) (tea.Model, tea.Cmd) {
	switch res.kind {
	case cmdQuit:
		return m, tea.Quit

	case cmdRestart:
		if m.session != nil {
			m.session.Close()
			m.session = nil
		}
		m.state.Restart()
		m.phase = phaseCreate
		m.nameInput.Reset()
		m.backgroundInput.Reset()
		m.classIdx = 0
		return m.setFocus(focusName), nil

	case cmdExport:
		path := res.arg
		if path == "" {
			path = fmt.Sprintf("adventure-%s.yaml", time.Now().Format("20060102-150405"))
		}
		messages := m.state.Messages
		return m, func() tea.Msg {
			return transcriptSavedMsg{path: path, err: models.ExportTranscript(path, messages)}
		}

	case cmdSettings:
		m.settings = res.settings
		m.notice = res.note
		if m.settingsPath != "" {
			// Best effort; a read-only config dir should not break play.
			_ = models.SaveSettings(m.settingsPath, m.settings)
		}
		return m, nil

	default:
		m.notice = res.note
		return m, nil
	}
}

func (m model) setFocus(focus int) model {
	m.focus = focus
	m.nameInput.Blur()
	m.backgroundInput.Blur()
	switch focus {
	case focusName:
		m.nameInput.Focus()
	case focusBackground:
		m.backgroundInput.Focus()
	}
	return m
}

func (m model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.phase {
	case phaseCreate:
		switch m.focus {
		case focusName:
			m.nameInput, cmd = m.nameInput.Update(msg)
		case focusBackground:
			m.backgroundInput, cmd = m.backgroundInput.Update(msg)
		}
	case phasePlaying:
		m.actionInput, cmd = m.actionInput.Update(msg)
	}
	return m, cmd
}

func (m model) logWidth() int {
	w := int(float64(m.width) * 0.72)
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) openSession(char models.Character) tea.Cmd {
	settings := m.settings
	return func() tea.Msg {
		session, resp, err := m.engine.OpenSession(context.Background(), char, settings)
		if err != nil {
			return startFailedMsg{err}
		}
		return sessionOpenedMsg{session: session, resp: resp}
	}
}

func (m model) submitAction(action string) tea.Cmd {
	session := m.session
	settings := m.settings
	return func() tea.Msg {
		resp, err := session.SubmitAction(context.Background(), action, settings)
		return turnFinishedMsg{session: session, resp: resp, err: err}
	}
}

// effectCmd schedules the self-expiry of the visual effect.
func (m model) effectCmd() tea.Cmd {
	if !m.state.EffectActive(time.Now()) {
		return nil
	}
	return tea.Tick(game.EffectDuration, func(time.Time) tea.Msg {
		return effectExpiredMsg{}
	})
}

// Run starts the TUI and blocks until the player quits.
func Run(eng *engine.Engine, settings models.GameSettings, settingsPath string) error {
	p := tea.NewProgram(newModel(eng, settings, settingsPath), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
