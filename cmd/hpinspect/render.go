package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func status(err error) string {
	if err == nil {
		return "ok"
	}
	return err.Error()
}

func handshakeStatus(in *inspection) string {
	switch {
	case !in.handshake:
		return "not run"
	case in.initErr != nil:
		return "failed: " + in.initErr.Error()
	default:
		return "done"
	}
}

func unlockStatus(in *inspection) string {
	switch {
	case in.unlocked != nil:
		return fmt.Sprintf("%t", *in.unlocked)
	case in.unlockErr != nil:
		return "unavailable: " + in.unlockErr.Error()
	default:
		return "not queried"
	}
}

func renderPlain(w io.Writer, in *inspection) {
	fmt.Fprintf(w, "module:    %s (%s)\n", in.module, in.backend)
	fmt.Fprintf(w, "load:      %s\n", status(in.loadErr))
	fmt.Fprintf(w, "bound:     %d/%d\n", in.boundCount(), len(in.slots))
	fmt.Fprintf(w, "handshake: %s\n", handshakeStatus(in))
	if in.handshake {
		fmt.Fprintf(w, "unlocked:  %s\n", unlockStatus(in))
	}
	fmt.Fprintln(w)
	for _, s := range in.slots {
		mark := "[x]"
		if !s.bound {
			mark = "[ ]"
		}
		fmt.Fprintf(w, "%s %s\n", mark, s.sig)
		if s.err != nil {
			fmt.Fprintf(w, "    %s\n", s.err)
		}
	}
}

func renderStyled(w io.Writer, in *inspection) {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Physics Shim"))
	b.WriteString(" ")
	b.WriteString(in.module)
	b.WriteString(" ")
	b.WriteString(typeStyle.Render("(" + in.backend + ")"))
	b.WriteString("\n\n")

	if in.loadErr != nil {
		b.WriteString(errorStyle.Render("load: " + in.loadErr.Error()))
	} else {
		b.WriteString(okStyle.Render("load: ok"))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "bound: %d/%d  handshake: %s", in.boundCount(), len(in.slots), handshakeStatus(in))
	if in.handshake {
		fmt.Fprintf(&b, "  unlocked: %s", unlockStatus(in))
	}
	b.WriteString("\n\n")

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(helpStyle).
		Headers("", "ENTRY POINT", "SIGNATURE", "REASON").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, s := range in.slots {
		mark := okStyle.Render("●")
		reason := ""
		if !s.bound {
			mark = errorStyle.Render("○")
			reason = errorStyle.Render(status(s.err))
		}
		t.Row(mark, funcStyle.Render(s.sig.Name), typeStyle.Render(signatureTail(s.sig.String(), s.sig.Name)), reason)
	}
	b.WriteString(t.String())
	b.WriteString("\n")
	fmt.Fprint(w, b.String())
}

// signatureTail drops the leading name from a rendered signature.
func signatureTail(sig, name string) string {
	return strings.TrimPrefix(sig, name)
}
