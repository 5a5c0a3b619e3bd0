package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/heapinspect"
	"github.com/wippyai/heapinspect/object"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateBrowse modelState = iota
	stateGoto
)

type browserModel struct {
	err      error
	heap     *object.Heap
	input    textinput.Model
	stack    []object.Handle
	rows     []fieldRow
	selected int
	state    modelState
}

func newBrowserModel(heap *object.Heap, addr heapinspect.Address) *browserModel {
	m := &browserModel{heap: heap, state: stateBrowse}
	m.push(heap.Object(addr))
	return m
}

func (m *browserModel) current() object.Handle {
	return m.stack[len(m.stack)-1]
}

func (m *browserModel) push(h object.Handle) {
	m.stack = append(m.stack, h)
	m.load()
}

func (m *browserModel) pop() {
	if len(m.stack) > 1 {
		m.stack = m.stack[:len(m.stack)-1]
		m.load()
	}
}

func (m *browserModel) load() {
	m.rows = describe(m.current())
	m.selected = 0
	m.err = nil
}

func (m *browserModel) Init() tea.Cmd {
	return nil
}

// follow descends into the selected field when it holds a non-null reference.
func (m *browserModel) follow() {
	if m.selected >= len(m.rows) {
		return
	}
	r := m.rows[m.selected]
	if r.err != nil {
		m.err = r.err
		return
	}
	h, ok := r.value.(object.Handle)
	if !ok {
		return
	}
	if h.IsNull() {
		m.err = fmt.Errorf("%s is null", r.name)
		return
	}
	var cycle error
	for _, seen := range m.stack {
		if seen.Equal(h) {
			cycle = fmt.Errorf("%s points back to %s", r.name, seen)
			break
		}
	}
	m.push(h)
	m.err = cycle
}

func (m *browserModel) startGoto() {
	ti := textinput.New()
	ti.Placeholder = "0x1000"
	ti.Prompt = "address: "
	ti.Width = 24
	ti.Focus()
	m.input = ti
	m.state = stateGoto
}

func (m *browserModel) finishGoto() {
	m.state = stateBrowse
	addr, err := parseAddress(m.input.Value())
	if err != nil {
		m.err = err
		return
	}
	m.push(m.heap.Object(addr))
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.state == stateGoto {
		switch key.String() {
		case "enter":
			m.finishGoto()
		case "esc":
			m.state = stateBrowse
		case "ctrl+c":
			return m, tea.Quit
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.rows)-1 {
			m.selected++
		}
	case "enter", "right", "l":
		m.follow()
	case "esc", "backspace", "left", "h":
		m.pop()
	case "g":
		m.startGoto()
	}
	return m, nil
}

func (m *browserModel) breadcrumb() string {
	parts := make([]string, len(m.stack))
	for i, h := range m.stack {
		parts[i] = fmt.Sprintf("0x%x", uint64(h.Address()))
	}
	return strings.Join(parts, " > ")
}

func (m *browserModel) View() string {
	var b strings.Builder
	h := m.current()

	b.WriteString(titleStyle.Render("Heap Inspector"))
	b.WriteString(" ")
	b.WriteString(m.breadcrumb())
	b.WriteString("\n\n")

	writeHeader(&b, h)
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString(helpStyle.Render("no fields known for this type"))
		b.WriteString("\n")
	}
	for i, r := range m.rows {
		val := formatValue(r.value)
		if r.err != nil {
			val = errorStyle.Render(r.err.Error())
		}
		line := fmt.Sprintf("+%-4d %s %s = %s", r.offset, fieldStyle.Render(r.name), kindStyle.Render(r.kind.String()), val)
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.state == stateGoto {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter jump • esc cancel"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓ select • enter follow • esc back • g goto • q quit"))
	}
	return b.String()
}

func runInteractive(heap *object.Heap, addr heapinspect.Address) error {
	p := tea.NewProgram(newBrowserModel(heap, addr), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
