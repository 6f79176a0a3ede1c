package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/pdsmelt/boundary"
)

const previewLines = 20

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD580"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type action int

const (
	actionPreviewSave action = iota
	actionPreviewMeta
	actionWrite
)

var actionNames = [...]string{
	actionPreviewSave: "Preview save",
	actionPreviewMeta: "Preview metadata",
	actionWrite:       "Write save to file",
}

type modelState int

const (
	stateSelect modelState = iota
	stateInputPath
	stateShowResult
)

type interactiveModel struct {
	err      error
	save     *melted
	meta     *melted
	metaErr  error
	opts     options
	result   string
	input    textinput.Model
	selected int
	state    modelState
	loaded   bool
}

type loadedMsg struct {
	err     error
	save    *melted
	meta    *melted
	metaErr error
}

type resultMsg struct {
	err    error
	result string
}

func newInteractiveModel(opts options) *interactiveModel {
	return &interactiveModel{opts: opts, state: stateSelect}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.load
}

func (m *interactiveModel) load() tea.Msg {
	game, err := gameOf(m.opts)
	if err != nil {
		return loadedMsg{err: err}
	}
	data, err := os.ReadFile(m.opts.path)
	if err != nil {
		return loadedMsg{err: err}
	}

	b := boundary.New()
	defer b.Close()

	save, err := meltFile(b, game, data, targetSave)
	if err != nil {
		return loadedMsg{err: err}
	}
	meta, metaErr := meltFile(b, game, data, targetMeta)
	return loadedMsg{save: save, meta: meta, metaErr: metaErr}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputPath {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelect && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelect && m.selected < len(actionNames)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelect:
				if action(m.selected) == actionWrite {
					m.prepareInput()
					m.state = stateInputPath
					return m, nil
				}
				return m, m.preview
			case stateInputPath:
				return m, m.write
			case stateShowResult:
				m.state = stateSelect
				m.result = ""
				m.err = nil
			}
			return m, nil

		case "esc":
			if m.state != stateSelect {
				m.state = stateSelect
				m.result = ""
				m.err = nil
			}
			return m, nil
		}

	case loadedMsg:
		m.loaded = true
		m.err = msg.err
		m.save = msg.save
		m.meta = msg.meta
		m.metaErr = msg.metaErr

	case resultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputPath {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) prepareInput() {
	ti := textinput.New()
	ti.Prompt = "output: "
	ti.Placeholder = m.opts.path + ".txt"
	ti.Width = 60
	ti.Focus()
	m.input = ti
}

func (m *interactiveModel) preview() tea.Msg {
	target := m.save
	if action(m.selected) == actionPreviewMeta {
		if m.meta == nil {
			return resultMsg{err: m.metaErr}
		}
		target = m.meta
	}

	data, err := target.text(m.opts.utf8)
	if err != nil {
		return resultMsg{err: err}
	}
	lines := bytes.SplitN(data, []byte("\n"), previewLines+1)
	if len(lines) > previewLines {
		lines = append(lines[:previewLines], []byte("..."))
	}
	return resultMsg{result: string(bytes.Join(lines, []byte("\n")))}
}

func (m *interactiveModel) write() tea.Msg {
	opts := m.opts
	opts.out = m.input.Value()
	if opts.out == "" {
		opts.out = m.input.Placeholder
	}
	if err := emit(opts, m.save); err != nil {
		return resultMsg{err: err}
	}
	return resultMsg{result: fmt.Sprintf("wrote %s", opts.out)}
}

func (m *interactiveModel) View() string {
	if !m.loaded {
		return "Melting " + m.opts.path + "..."
	}
	if m.save == nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Save Melter"))
	b.WriteString(" ")
	b.WriteString(m.opts.path)
	b.WriteString("\n\n")

	for _, line := range strings.Split(strings.TrimRight(m.save.summary(), "\n"), "\n") {
		label, value, _ := strings.Cut(line, ":")
		b.WriteString(labelStyle.Render(label+":") + value + "\n")
	}
	if m.meta == nil {
		b.WriteString(labelStyle.Render("Metadata:") + "  none\n")
	}
	if m.save.unknown {
		b.WriteString(warnStyle.Render("unresolved tokens present; set " + m.save.game.TokenEnv()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.state {
	case stateSelect:
		for i, name := range actionNames {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + name))
			} else {
				b.WriteString("  " + name)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter run • q quit"))

	case stateInputPath:
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter write • esc back"))

	case stateShowResult:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func runInteractive(opts options) error {
	p := tea.NewProgram(newInteractiveModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
