package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/wordscramble/internal/game"
)

// Model is the Bubble Tea model for a single game session
type Model struct {
	game   Game
	logger *log.Logger

	// UI components
	wordsViewport viewport.Model
	wordInput     textinput.Model

	// State
	rootWord  string
	usedWords []string
	alert     *game.Rejection
	pending   bool // a submission is in flight
	quitting  bool

	// Dimensions
	width  int
	height int

	// Test mode
	testMode    bool
	capturedLog []string // For test assertions
}

// submittedMsg carries the result of a submission back to Update
type submittedMsg struct {
	outcome   game.Outcome
	usedWords []string
	err       error
}

// NewModel creates a new TUI model for g
func NewModel(g Game, logger *log.Logger) *Model {
	return NewModelWithOptions(g, logger, false)
}

// NewModelWithOptions creates a new TUI model with test mode option
func NewModelWithOptions(g Game, logger *log.Logger, testMode bool) *Model {
	// Sized properly when WindowSizeMsg arrives
	vp := viewport.New(10, 5)

	ti := textinput.New()
	ti.Placeholder = "Enter your word"
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &Model{
		game:          g,
		logger:        logger.WithPrefix("tui"),
		wordsViewport: vp,
		wordInput:     ti,
		rootWord:      g.RootWord(),
		usedWords:     g.UsedWords(),
		testMode:      testMode,
		capturedLog:   []string{},
	}
	m.refreshWords()
	return m
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case submittedMsg:
		m.pending = false
		m.handleResult(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

		// An open alert swallows input until it is dismissed
		if m.alert != nil {
			switch msg.String() {
			case "enter", "esc":
				m.alert = nil
			}
			return m, nil
		}

		switch msg.String() {
		case "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if m.pending {
				return m, nil
			}
			m.pending = true
			return m, m.submit(m.wordInput.Value())
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.wordsViewport, cmd = m.wordsViewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.wordInput, cmd = m.wordInput.Update(msg)
	return m, cmd
}

// submit runs the submission off the update loop. Only one is in flight at
// a time, so the game never sees concurrent calls.
func (m *Model) submit(raw string) tea.Cmd {
	g := m.game
	return func() tea.Msg {
		out, err := g.Submit(raw)
		return submittedMsg{outcome: out, usedWords: g.UsedWords(), err: err}
	}
}

func (m *Model) handleResult(msg submittedMsg) {
	if msg.err != nil {
		m.logger.Error("Submission failed", "error", msg.err)
		m.alert = &game.Rejection{Title: "Something went wrong", Message: msg.err.Error()}
		m.record("error: " + msg.err.Error())
		return
	}

	out := msg.outcome
	switch out.Status {
	case game.StatusIgnored:
		m.wordInput.SetValue("")

	case game.StatusAccepted:
		m.logger.Debug("Word accepted", "word", out.Word)
		m.wordInput.SetValue("")
		m.usedWords = msg.usedWords
		m.refreshWords()
		m.record("accepted: " + out.Word)

	case game.StatusRejected:
		m.logger.Debug("Word rejected", "word", out.Word, "reason", out.Rejection.Reason)
		m.alert = out.Rejection
		m.record(fmt.Sprintf("rejected: %s (%s)", out.Word, out.Rejection.Title))
	}
}

func (m *Model) resize() {
	width := m.width - 4
	height := m.height - 10
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	m.wordsViewport.Width = width
	m.wordsViewport.Height = height
	m.wordInput.Width = width - 2
	m.refreshWords()
}

func (m *Model) refreshWords() {
	m.wordsViewport.SetContent(m.renderWords())
	m.wordsViewport.GotoTop()
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	// Don't render until we have valid dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(HeaderStyle.Render(m.rootWord))
	content.WriteString("\n\n")
	content.WriteString(m.wordInput.View())
	content.WriteString("\n\n")

	listStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(m.wordsViewport.Width)
	content.WriteString(listStyle.Render(m.wordsViewport.View()))
	content.WriteString("\n")

	if m.alert != nil {
		content.WriteString(m.renderAlert())
		content.WriteString("\n")
	}

	content.WriteString(m.renderHelp())
	return content.String()
}

// renderWords lists used words, most recent first, with their letter counts
func (m *Model) renderWords() string {
	if len(m.usedWords) == 0 {
		return InfoStyle.Render("No words yet")
	}
	lines := make([]string, 0, len(m.usedWords))
	for _, w := range m.usedWords {
		count := CountStyle.Render(fmt.Sprintf("%2d", utf8.RuneCountInString(w)))
		lines = append(lines, count+"  "+WordStyle.Render(w))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderAlert() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		AlertTitleStyle.Render(m.alert.Title),
		AlertMessageStyle.Render(m.alert.Message),
		"",
		OkayStyle.Render("[ Okay ]"),
	)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#FF6B6B")).
		Padding(0, 1).
		Render(body)
}

func (m *Model) renderHelp() string {
	switch {
	case m.alert != nil:
		return InfoStyle.Render("Enter or Esc to dismiss")
	case m.pending:
		return WarningStyle.Render("Checking...")
	default:
		return InfoStyle.Render("Enter to submit • ↑↓ scroll • Esc to quit")
	}
}

// record notes a result line; only test mode keeps it
func (m *Model) record(entry string) {
	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
	}
}

// UsedWords returns the words currently shown
func (m *Model) UsedWords() []string {
	return append([]string(nil), m.usedWords...)
}

// Alert returns the open rejection alert, if any
func (m *Model) Alert() *game.Rejection {
	return m.alert
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *Model) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// IsTestMode returns whether the TUI is in test mode
func (m *Model) IsTestMode() bool {
	return m.testMode
}

// Run starts the program in the alternate screen and blocks until the
// player quits.
func Run(g Game, logger *log.Logger) error {
	program := tea.NewProgram(NewModel(g, logger), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
