package review

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TerminalPrompter implements Prompter with Bubble Tea widgets. Each
// call runs a small standalone program: a cursor-driven select list or
// a single-line text input. Quitting with esc/ctrl+c reports
// ErrCancelled, which the engine treats as save-and-exit.
type TerminalPrompter struct{}

// NewTerminalPrompter creates the interactive prompter.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{}
}

// Select presents a vertical choice list and blocks until the user
// picks an entry or cancels.
func (t *TerminalPrompter) Select(title string, choices []Choice) (string, error) {
	model := selectModel{title: title, choices: choices}
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return "", fmt.Errorf("running select prompt: %w", err)
	}

	result := final.(selectModel)
	if result.cancelled {
		return "", ErrCancelled
	}
	return result.choices[result.cursor].Value, nil
}

// Input presents a single-line text field pre-filled with initial.
func (t *TerminalPrompter) Input(title, initial string) (string, error) {
	ti := textinput.New()
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()

	model := inputModel{title: title, input: ti}
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return "", fmt.Errorf("running input prompt: %w", err)
	}

	result := final.(inputModel)
	if result.cancelled {
		return "", ErrCancelled
	}
	return result.input.Value(), nil
}

var _ Prompter = (*TerminalPrompter)(nil)

// selectModel is the Bubble Tea model for a choice list.
type selectModel struct {
	title     string
	choices   []Choice
	cursor    int
	done      bool
	cancelled bool
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.cancelled = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m selectModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	s := titleStyle.Render(m.title) + "\n"
	for i, choice := range m.choices {
		if i == m.cursor {
			s += selectedStyle.Render("> "+choice.Label) + "\n"
		} else {
			s += choiceStyle.Render("  "+choice.Label) + "\n"
		}
	}
	s += helpStyle.Render("j/k move · enter select · esc save & exit")
	return s
}

// inputModel is the Bubble Tea model for a one-line text field.
type inputModel struct {
	title     string
	input     textinput.Model
	done      bool
	cancelled bool
}

func (m inputModel) Init() tea.Cmd { return textinput.Blink }

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return titleStyle.Render(m.title) + "\n" + m.input.View() + "\n" +
		helpStyle.Render("enter confirm · esc cancel")
}
