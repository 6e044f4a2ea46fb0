// File: model.go
// Title: REPL Model
// Description: Bubbletea model of the interactive shell: reads instruction
//              strings, runs them through the pipeline against one shared
//              execution context and keeps a scrollable transcript.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-11
// Modified: 2025-11-11
//
// Change History:
// - 2025-11-11 v0.1.0: Initial implementation

package repl

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	ullog "github.com/msto63/unilang/core/log"
	"github.com/msto63/unilang/unilang"
	"github.com/msto63/unilang/unilang/command"
)

// Config holds REPL configuration
type Config struct {
	Prompt         string
	MaxSuggestions int
	Pipeline       *unilang.Pipeline
	Logger         *ullog.Logger
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Prompt:         "unilang> ",
		MaxSuggestions: 5,
	}
}

// ReloadMsg replaces the pipeline after the command manifests changed
type ReloadMsg struct {
	Pipeline *unilang.Pipeline
	Err      error
}

// Model is the bubbletea model of the REPL
type Model struct {
	width  int
	height int
	ready  bool

	input    textinput.Model
	viewport viewport.Model

	pipeline  *unilang.Pipeline
	completer *Completer
	session   *command.ExecutionContext
	logger    *ullog.Logger

	prompt         string
	maxSuggestions int
	transcript     []string
	suggestions    []string
	status         string

	history      []string
	historyIndex int
	currentInput string
}

// New creates the REPL model
func New(cfg Config) Model {
	def := DefaultConfig()
	if cfg.Prompt == "" {
		cfg.Prompt = def.Prompt
	}
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = def.MaxSuggestions
	}
	if cfg.Logger == nil {
		cfg.Logger = ullog.GetDefault()
	}

	ti := textinput.New()
	ti.Prompt = PromptStyle.Render(cfg.Prompt)
	ti.Placeholder = "type a command, ? for help, Tab to complete"
	ti.Focus()

	return Model{
		input:          ti,
		pipeline:       cfg.Pipeline,
		completer:      NewCompleter(cfg.Pipeline.Registry()),
		session:        command.NewExecutionContext(),
		logger:         cfg.Logger.WithField("component", "unilang-repl"),
		prompt:         cfg.Prompt,
		maxSuggestions: cfg.MaxSuggestions,
		historyIndex:   -1,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// input line and status line
		viewportHeight := msg.Height - 2
		if viewportHeight < 1 {
			viewportHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - len(m.prompt) - 1
		m.refresh()

	case ReloadMsg:
		if msg.Err != nil {
			m.status = "reload failed: " + msg.Err.Error()
			m.logger.Warn("Registry reload failed", ullog.Fields{"error": msg.Err.Error()})
			break
		}
		m.pipeline = msg.Pipeline
		m.completer = NewCompleter(msg.Pipeline.Registry())
		m.status = fmt.Sprintf("reloaded, %d commands", len(msg.Pipeline.Registry().Commands()))
		m.logger.Info("Registry reloaded", ullog.Fields{"commands": len(msg.Pipeline.Registry().Commands())})
	}

	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc, tea.KeyCtrlD:
		return m, tea.Quit

	case tea.KeyEnter:
		line := strings.TrimSpace(m.input.Value())
		if line == "exit" || line == "quit" {
			return m, tea.Quit
		}
		m.submit(line)
		return m, nil

	case tea.KeyTab:
		m.complete()
		return m, nil

	case tea.KeyUp:
		m.historyPrev()
		return m, nil

	case tea.KeyDown:
		m.historyNext()
		return m, nil

	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		if m.ready {
			m.viewport, cmd = m.viewport.Update(msg)
		}
		return m, cmd
	}

	m.suggestions = nil
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs line and appends the exchange to the transcript
func (m *Model) submit(line string) {
	m.suggestions = nil
	m.status = ""
	m.input.Reset()
	m.historyIndex = -1
	m.currentInput = ""

	if line != "" && (len(m.history) == 0 || m.history[len(m.history)-1] != line) {
		m.history = append(m.history, line)
	}

	result := m.pipeline.ProcessCommand(line, m.session)
	entry := PromptStyle.Render(m.prompt) + InputEchoStyle.Render(line)
	if rendered := RenderResult(result); rendered != "" {
		entry += "\n" + rendered
	}
	m.transcript = append(m.transcript, entry)
	m.refresh()
}

// complete replaces the command word by its completion, or lists the
// candidates when there are several
func (m *Model) complete() {
	value := m.input.Value()
	if strings.ContainsAny(value, " \t") {
		return
	}

	matches := m.completer.Complete(value, m.maxSuggestions)
	switch {
	case len(matches) == 0:
		m.suggestions = nil
		m.status = "no matching command"
	case len(matches) == 1:
		m.setInput(matches[0] + " ")
		m.suggestions = nil
	default:
		if prefix := CommonPrefix(matches); len(prefix) > len(value) && strings.HasPrefix(prefix, value) {
			m.setInput(prefix)
		}
		m.suggestions = matches
	}
}

func (m *Model) setInput(value string) {
	m.input.SetValue(value)
	m.input.CursorEnd()
}

func (m *Model) historyPrev() {
	if len(m.history) == 0 {
		return
	}
	if m.historyIndex == -1 {
		m.currentInput = m.input.Value()
		m.historyIndex = len(m.history) - 1
	} else if m.historyIndex > 0 {
		m.historyIndex--
	}
	m.setInput(m.history[m.historyIndex])
}

func (m *Model) historyNext() {
	if m.historyIndex == -1 {
		return
	}
	if m.historyIndex < len(m.history)-1 {
		m.historyIndex++
		m.setInput(m.history[m.historyIndex])
		return
	}
	m.historyIndex = -1
	m.setInput(m.currentInput)
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.transcript, "\n"))
	m.viewport.GotoBottom()
}

// View renders the model
func (m Model) View() string {
	var b strings.Builder
	if m.ready {
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	switch {
	case len(m.suggestions) > 0:
		b.WriteString(SuggestionStyle.Render(strings.Join(m.suggestions, "  ")))
	case m.status != "":
		b.WriteString(StatusStyle.Render(m.status))
	default:
		b.WriteString(StatusStyle.Render("Enter run · Tab complete · ↑/↓ history · Esc quit"))
	}
	return b.String()
}

// Transcript returns the rendered exchanges so far
func (m Model) Transcript() []string {
	return append([]string(nil), m.transcript...)
}

// Suggestions returns the candidates of the last completion
func (m Model) Suggestions() []string {
	return append([]string(nil), m.suggestions...)
}

// Input returns the current input line
func (m Model) Input() string {
	return m.input.Value()
}

// RenderResult formats a pipeline result for the transcript
func RenderResult(r unilang.Result) string {
	if !r.Success {
		if r.Error == nil {
			return ErrorStyle.Render("error: unknown failure")
		}
		return ErrorStyle.Render(fmt.Sprintf("%s: %s", r.Error.Code, r.Error.Message))
	}
	if r.IsHelp() {
		return HelpStyle.Render(strings.TrimRight(r.Text(), "\n"))
	}
	return OutputStyle.Render(r.Text())
}
