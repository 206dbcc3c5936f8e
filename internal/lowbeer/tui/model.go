// Package tui is the dashboard render loop. It owns the session state;
// the watcher goroutine only ever reaches it through the event queue,
// drained once per pass.
package tui

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mistakeknot/lowbeer/internal/lowbeer/config"
	"github.com/mistakeknot/lowbeer/internal/lowbeer/events"
	"github.com/mistakeknot/lowbeer/internal/lowbeer/gemini"
	"github.com/mistakeknot/lowbeer/internal/lowbeer/session"
	"github.com/mistakeknot/lowbeer/internal/lowbeer/watch"
)

type mode int

const (
	modeChat mode = iota
	modeConfig
	modeLogs
)

const (
	cfgFieldRepo = iota
	cfgFieldKey
)

// notificationTTL bounds how long a one-shot toast stays on screen.
const notificationTTL = 4 * time.Second

type keyMap struct {
	Config key.Binding
	Logs   key.Binding
	Submit key.Binding
	Close  key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Config: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "configuration"),
	),
	Logs: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "event logs"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "send"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

type tickMsg time.Time

// Model is the dashboard TUI model.
type Model struct {
	session  *session.Session
	cfg      config.Config
	settings config.Settings
	root     string

	queue      *events.Queue
	watcher    *watch.Watcher
	watchErr   error
	backendErr error
	saveErr    error

	mode       mode
	input      textinput.Model
	chatView   viewport.Model
	cfgInputs  [2]textinput.Model
	cfgFocus   int
	cfgSaved   bool
	logsFilter textinput.Model

	notifySince time.Time
	width       int
	height      int
	confirmQuit bool
	quitting    bool
}

// New builds the dashboard model and applies the persisted
// configuration, starting the watcher and backend when possible.
func New(root string, cfg config.Config, settings config.Settings, sess *session.Session, q *events.Queue) Model {
	input := textinput.New()
	input.Placeholder = "What would you like to do?"
	input.Prompt = "> "
	input.CharLimit = 512

	repoInput := textinput.New()
	repoInput.Placeholder = "local repo path"
	repoInput.Prompt = "repo path: "
	repoInput.SetValue(cfg.RepoPath)

	keyInput := textinput.New()
	keyInput.Placeholder = "Gemini API key"
	keyInput.Prompt = "API key:   "
	keyInput.EchoMode = textinput.EchoPassword
	keyInput.SetValue(cfg.APIKey)

	logsFilter := textinput.New()
	logsFilter.Placeholder = "filter events"
	logsFilter.Prompt = "/ "

	m := Model{
		session:    sess,
		cfg:        cfg,
		settings:   settings,
		root:       root,
		queue:      q,
		input:      input,
		chatView:   viewport.New(0, 0),
		cfgInputs:  [2]textinput.Model{repoInput, keyInput},
		logsFilter: logsFilter,
	}
	m.applyConfig()
	m.input.Focus()
	return m
}

// Init starts the drain tick.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// applyConfig rebuilds the backend and watcher from the current
// configuration. Failures block only the features that need them.
func (m *Model) applyConfig() {
	client, err := gemini.New(m.cfg.APIKey,
		gemini.WithModel(m.settings.LLM.Model),
		gemini.WithTimeout(time.Duration(m.settings.LLM.TimeoutSeconds)*time.Second),
	)
	if err != nil {
		m.backendErr = err
		m.session.SetBackend(nil)
	} else {
		m.backendErr = nil
		m.session.SetBackend(client)
	}

	m.applyWatchPath()
}

// applyWatchPath keeps at most one watcher alive, stopping the old one
// fully before starting on a new path.
func (m *Model) applyWatchPath() {
	path := m.cfg.RepoPath
	if path == m.watcher.Path() && m.watchErr == nil {
		return
	}

	m.watcher.Stop()
	m.watcher = nil
	m.watchErr = nil
	if path == "" {
		return
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		m.watchErr = errInvalidRepoPath(path)
		return
	}
	w, err := watch.Start(path, m.queue, m.settings.Watch.IgnoreDirs)
	if err != nil {
		m.watchErr = err
		return
	}
	m.watcher = w
	m.session.LogMonitoringStarted(path)
}

// Close stops the watcher; called when the program exits.
func (m *Model) Close() {
	m.watcher.Stop()
	m.watcher = nil
}

// Update handles one render-loop pass.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Every pass starts by draining pending file events so the
	// notification is shown promptly.
	if m.session.DrainEvents() > 0 {
		m.notifySince = time.Now()
	}
	m.expireNotification()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		m.chatView.Width = msg.Width - 2
		m.chatView.Height = m.chatHeight()
		m.syncChat()
		return m, nil

	case tickMsg:
		return m, m.tick()

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			if m.settings.TUI.ConfirmQuit && !m.confirmQuit {
				m.confirmQuit = true
				return m, nil
			}
			m.Close()
			m.quitting = true
			return m, tea.Quit
		}
		m.confirmQuit = false
		switch m.mode {
		case modeConfig:
			return m.updateConfig(msg)
		case modeLogs:
			return m.updateLogs(msg)
		default:
			return m.updateChat(msg)
		}
	}

	var cmd tea.Cmd
	m.chatView, cmd = m.chatView.Update(msg)
	return m, cmd
}

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Config):
		m.mode = modeConfig
		m.cfgFocus = cfgFieldRepo
		m.cfgSaved = false
		m.saveErr = nil
		m.cfgInputs[cfgFieldRepo].Focus()
		m.cfgInputs[cfgFieldKey].Blur()
		m.input.Blur()
		return m, nil

	case key.Matches(msg, keys.Logs):
		m.mode = modeLogs
		m.logsFilter.SetValue("")
		m.logsFilter.Focus()
		m.input.Blur()
		return m, nil

	case key.Matches(msg, keys.Submit):
		text := m.input.Value()
		m.input.Reset()
		// Reducers run synchronously: the loop blocks for the
		// duration of the completion call, bounded by the HTTP
		// timeout.
		m.session.HandleInput(context.Background(), text)
		if m.session.Notification != "" {
			m.notifySince = time.Now()
		}
		m.syncChat()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfig(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Close):
		m.mode = modeChat
		m.cfgInputs[cfgFieldRepo].SetValue(m.cfg.RepoPath)
		m.cfgInputs[cfgFieldKey].SetValue(m.cfg.APIKey)
		m.input.Focus()
		return m, nil

	case msg.Type == tea.KeyTab || msg.Type == tea.KeyShiftTab || msg.Type == tea.KeyDown || msg.Type == tea.KeyUp:
		m.cfgInputs[m.cfgFocus].Blur()
		m.cfgFocus = (m.cfgFocus + 1) % len(m.cfgInputs)
		m.cfgInputs[m.cfgFocus].Focus()
		return m, nil

	case key.Matches(msg, keys.Submit):
		m.cfg.RepoPath = m.cfgInputs[cfgFieldRepo].Value()
		m.cfg.APIKey = m.cfgInputs[cfgFieldKey].Value()
		if err := config.Save(m.root, m.cfg); err != nil {
			m.saveErr = err
			return m, nil
		}
		m.saveErr = nil
		m.applyConfig()
		m.cfgSaved = true
		return m, nil
	}

	var cmd tea.Cmd
	m.cfgInputs[m.cfgFocus], cmd = m.cfgInputs[m.cfgFocus].Update(msg)
	return m, cmd
}

func (m Model) updateLogs(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Close) {
		m.mode = modeChat
		m.logsFilter.Blur()
		m.input.Focus()
		return m, nil
	}
	var cmd tea.Cmd
	m.logsFilter, cmd = m.logsFilter.Update(msg)
	return m, cmd
}

func (m *Model) expireNotification() {
	if m.session.Notification == "" {
		return
	}
	if m.notifySince.IsZero() {
		m.notifySince = time.Now()
		return
	}
	if time.Since(m.notifySince) > notificationTTL {
		m.session.ClearNotification()
		m.notifySince = time.Time{}
	}
}

func (m Model) chatHeight() int {
	// Header, dashboard panels, milestones and footer share the
	// column with the transcript.
	h := m.height - 14 - len(m.session.Tasks)
	if h < 5 {
		h = 5
	}
	return h
}
