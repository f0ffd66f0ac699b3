package main

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-planet/engine/scene"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

const title = "o x y - p l a n e t"

var (
	gradientFrom, _ = colorful.Hex("#0088ff")
	gradientTo, _   = colorful.Hex("#d946ef")

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8B5CF6")).Bold(true)
)

// banner renders the startup header: the title in a blue to magenta gradient followed by
// the active settings.
func banner(cfg scene.Config, opts options) string {
	var b strings.Builder

	runes := []rune(title)
	b.WriteString("  ")
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := gradientFrom.BlendHcl(gradientTo, t).Clamped()
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Bold(true).Render(string(r)))
	}
	b.WriteString("\n")

	seed := "random"
	if cfg.Seed != 0 {
		seed = fmt.Sprint(cfg.Seed)
	}
	settings := []struct{ key, value string }{
		{"stars", fmt.Sprint(cfg.StarCount)},
		{"nebula", fmt.Sprint(cfg.Nebula.Count)},
		{"seed", seed},
		{"window", fmt.Sprintf("%dx%d", opts.width, opts.height)},
		{"vsync", fmt.Sprint(opts.vsync)},
	}
	for _, s := range settings {
		b.WriteString("  " + keyStyle.Render(s.key) + " " + mutedStyle.Render(s.value) + "\n")
	}
	b.WriteString(mutedStyle.Render("  drag to orbit · right drag to pan · scroll to zoom · esc to quit"))
	b.WriteString("\n\n")
	return b.String()
}
