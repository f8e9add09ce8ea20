// Package render formats a grammar for people to read.
package render

import (
	"fmt"
	"strings"

	"github.com/atinylittleshell/tabcomplete/internal/grammar"
	"github.com/charmbracelet/lipgloss"
)

const (
	ColorCyan   = lipgloss.Color("12") // Program and action names
	ColorYellow = lipgloss.Color("11") // Parameter names
	ColorGray   = lipgloss.Color("8")  // Kinds, descriptions
)

var (
	// HeaderStyle is used for the program name and section titles
	HeaderStyle = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)

	// ActionStyle is used for action names
	ActionStyle = lipgloss.NewStyle().Foreground(ColorCyan)

	// ParameterStyle is used for parameter names
	ParameterStyle = lipgloss.NewStyle().Foreground(ColorYellow)

	// DimStyle is used for kinds and descriptions
	DimStyle = lipgloss.NewStyle().Foreground(ColorGray)

	indent = lipgloss.NewStyle().PaddingLeft(2)
)

// Grammar renders an overview of g: the global parameters and every action
// with its summary.
func Grammar(g *grammar.Grammar) string {
	var sb strings.Builder

	sb.WriteString(HeaderStyle.Render(g.Program))
	sb.WriteString("\n\n")

	if len(g.Globals) > 0 {
		sb.WriteString(HeaderStyle.Render("Global parameters"))
		sb.WriteString("\n")
		sb.WriteString(indent.Render(parameters(g.Globals)))
		sb.WriteString("\n\n")
	}

	sb.WriteString(HeaderStyle.Render("Actions"))
	sb.WriteString("\n")
	lines := make([]string, 0, len(g.Actions))
	width := 0
	for _, a := range g.Actions {
		width = max(width, lipgloss.Width(a.Name))
	}
	for _, a := range g.Actions {
		line := ActionStyle.Render(pad(a.Name, width))
		if a.Summary != "" {
			line += "  " + DimStyle.Render(a.Summary)
		}
		lines = append(lines, line)
	}
	sb.WriteString(indent.Render(strings.Join(lines, "\n")))
	sb.WriteString("\n")

	return sb.String()
}

// Action renders one action with its parameters and the globals that apply
// to it.
func Action(g *grammar.Grammar, a *grammar.Action) string {
	var sb strings.Builder

	sb.WriteString(HeaderStyle.Render(g.Program + " " + a.Name))
	sb.WriteString("\n")
	if a.Summary != "" {
		sb.WriteString(DimStyle.Render(a.Summary))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if len(a.Parameters) > 0 {
		sb.WriteString(HeaderStyle.Render("Parameters"))
		sb.WriteString("\n")
		sb.WriteString(indent.Render(parameters(a.Parameters)))
		sb.WriteString("\n\n")
	}

	if len(g.Globals) > 0 {
		sb.WriteString(HeaderStyle.Render("Global parameters"))
		sb.WriteString("\n")
		sb.WriteString(indent.Render(parameters(g.Globals)))
		sb.WriteString("\n")
	}

	return sb.String()
}

func parameters(params []grammar.Parameter) string {
	names := make([]string, 0, len(params))
	width := 0
	for _, p := range params {
		n := strings.Join(p.Names(), ", ")
		names = append(names, n)
		width = max(width, lipgloss.Width(n))
	}

	lines := make([]string, 0, len(params))
	for i, p := range params {
		line := ParameterStyle.Render(pad(names[i], width)) + "  " + DimStyle.Render(kind(p.Kind))
		if p.Description != "" {
			line += "  " + DimStyle.Render(p.Description)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func kind(k grammar.Kind) string {
	switch k := k.(type) {
	case grammar.ChoiceValue:
		return fmt.Sprintf("<%s>", strings.Join(k.Values, "|"))
	case grammar.StringValue:
		return "<string>"
	default:
		return "(flag)"
	}
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
