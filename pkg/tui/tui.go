// Package tui provides a terminal user interface for musiconv
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/james-see/musiconv/pkg/converter"
)

// Acid-inspired color scheme (303/acid aesthetic)
var (
	acidGreen  = lipgloss.Color("#39FF14")
	acidYellow = lipgloss.Color("#FFFF00")
	silverGray = lipgloss.Color("#C0C0C0")
	darkGray   = lipgloss.Color("#333333")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(acidGreen).
			Background(darkGray).
			Padding(0, 2).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(silverGray)

	valueStyle = lipgloss.NewStyle().
			Foreground(acidGreen).
			Bold(true)

	historyStyle = lipgloss.NewStyle().
			Foreground(silverGray).
			PaddingLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(acidYellow)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(acidGreen).
			Padding(1, 2)
)

// maxHistory bounds the scrollback shown above the prompt.
const maxHistory = 8

// historyEntry is one accepted or rejected input line.
type historyEntry struct {
	input  string
	result string
	err    error
}

// Model represents the TUI model
type Model struct {
	conv    *converter.Converter
	input   textinput.Model
	history []historyEntry
	err     error
	width   int
	height  int
}

// New creates a new TUI model
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "A4, 440Hz, A4=432Hz, 35%, -10dB, F/d, bass, sc 5:#"
	ti.Prompt = promptStyle.Render("> ")
	ti.Focus()
	ti.CharLimit = 64

	return Model{
		conv:  converter.New(),
		input: ti,
	}
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			if line == "q" || line == "quit" || line == "exit" {
				return m, tea.Quit
			}
			m.applyLine(line)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// applyLine feeds one input line through the converter and records the
// outcome in the scrollback.
func (m *Model) applyLine(line string) {
	err := m.conv.Set(line)
	entry := historyEntry{input: line, err: err}
	if err == nil {
		entry.result = fmt.Sprintf("%s  %.3fHz", m.conv.NoteName(), m.conv.Frequency())
	}
	m.err = err

	m.history = append(m.history, entry)
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" MUSICONV "))
	s.WriteString("\n")
	s.WriteString(m.viewState())
	s.WriteString("\n")

	for _, h := range m.history {
		if h.err != nil {
			s.WriteString(historyStyle.Render(h.input))
			s.WriteString("  ")
			s.WriteString(errorStyle.Render("✗ " + h.err.Error()))
		} else {
			s.WriteString(historyStyle.Render(fmt.Sprintf("%s  →  %s", h.input, h.result)))
		}
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(m.input.View())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("enter: apply • esc: quit"))

	return s.String()
}

func (m Model) viewState() string {
	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-10s", label)) + valueStyle.Render(value)
	}

	notations := m.conv.Notation()
	parts := make([]string, len(notations))
	for i, n := range notations {
		parts[i] = n.String()
	}

	lines := []string{
		row("note", fmt.Sprintf("%s  (%s in %s)", m.conv.NoteName(), m.conv.KeyName(), m.conv.Key())),
		row("value", fmt.Sprintf("%+.2f", m.conv.NoteValue())),
		row("freq", fmt.Sprintf("%.3fHz  (base %s)", m.conv.Frequency(), formatHz(m.conv.BaseFreq()))),
		row("level", fmt.Sprintf("%.1f%%  %.2fdB", m.conv.Amplitude()*100, m.conv.Gain())),
		row("staff", fmt.Sprintf("%s  (%s clef)", strings.Join(parts, "  |  "), m.conv.Clef())),
	}

	return boxStyle.Render(strings.Join(lines, "\n"))
}

func formatHz(hz float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", hz), "0"), ".") + "Hz"
}

// Run starts the TUI application
func Run() error {
	p := tea.NewProgram(New(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
