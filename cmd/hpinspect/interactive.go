package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/physics-shim/config"
	"github.com/wippyai/physics-shim/symbols"
)

type interactiveModel struct {
	err       error
	cfg       *config.Config
	in        *inspection
	spinner   spinner.Model
	filter    textinput.Model
	visible   []int
	selected  int
	loading   bool
	filtering bool
	shaken    bool
}

type inspectedMsg struct {
	err error
	in  *inspection
}

func newInteractiveModel(cfg *config.Config, handshake bool) *interactiveModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = typeStyle

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter entry points"
	ti.Width = 40

	return &interactiveModel{
		cfg:     cfg,
		spinner: sp,
		filter:  ti,
		loading: true,
		shaken:  handshake,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load(m.shaken))
}

func (m *interactiveModel) load(handshake bool) tea.Cmd {
	return func() tea.Msg {
		in, err := inspect(context.Background(), m.cfg, nil, handshake)
		return inspectedMsg{in: in, err: err}
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "/":
			m.filtering = true
			return m, m.filter.Focus()

		case "h":
			// The load entry point runs at most once per process.
			if m.loading || m.shaken {
				return m, nil
			}
			m.shaken = true
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.load(true))
		}

	case inspectedMsg:
		m.loading = false
		m.err = msg.err
		m.in = msg.in
		m.applyFilter()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		m.filtering = false
		m.filter.Blur()
		if msg.String() == "esc" {
			m.filter.SetValue("")
			m.applyFilter()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *interactiveModel) applyFilter() {
	m.visible = m.visible[:0]
	if m.in == nil {
		return
	}
	q := strings.ToLower(m.filter.Value())
	for i, s := range m.in.slots {
		if q == "" || strings.Contains(strings.ToLower(s.sig.Name), q) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.in == nil {
		return m.spinner.View() + " Opening " + m.cfg.ModuleName() + "..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Physics Shim"))
	b.WriteString(" ")
	b.WriteString(m.in.module)
	b.WriteString(" ")
	b.WriteString(typeStyle.Render("(" + m.in.backend + ")"))
	b.WriteString("\n\n")

	if m.in.loadErr != nil {
		b.WriteString(errorStyle.Render("load: " + m.in.loadErr.Error()))
	} else {
		b.WriteString(okStyle.Render("load: ok"))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "bound %d/%d • handshake %s", m.in.boundCount(), len(m.in.slots), handshakeStatus(m.in))
	if m.in.handshake {
		fmt.Fprintf(&b, " • unlocked %s", unlockStatus(m.in))
	}
	if m.loading {
		b.WriteString(" " + m.spinner.View())
	}
	b.WriteString("\n\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
	}

	for i, idx := range m.visible {
		s := m.in.slots[idx]
		mark := okStyle.Render("●")
		if !s.bound {
			mark = errorStyle.Render("○")
		}
		line := "  " + s.sig.Name
		if i == m.selected {
			line = selectedStyle.Render("> " + s.sig.Name)
		}
		b.WriteString(mark + " " + line + "\n")
	}

	if len(m.visible) > 0 {
		s := m.in.slots[m.visible[m.selected]]
		b.WriteString("\n")
		b.WriteString(formatSignature(s.sig))
		b.WriteString("\n")
		if s.err != nil {
			b.WriteString(errorStyle.Render(s.err.Error()))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	help := "↑/↓ select • / filter • q quit"
	if !m.shaken {
		help = "↑/↓ select • / filter • h handshake • q quit"
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func formatSignature(sig symbols.Signature) string {
	var params []string
	for _, p := range sig.Params {
		typ := symbols.TypeName(p.Type)
		if p.Pointer {
			typ = "ptr"
		}
		params = append(params, p.Name+": "+typeStyle.Render(typ))
	}
	result := ""
	if len(sig.Results) > 0 {
		result = " -> " + typeStyle.Render(symbols.TypeName(sig.Results[0]))
	}
	return funcStyle.Render(sig.Name) + "(" + strings.Join(params, ", ") + ")" + result
}

func runInteractive(cfg *config.Config, handshake bool) error {
	p := tea.NewProgram(newInteractiveModel(cfg, handshake), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
