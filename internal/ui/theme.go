package ui

import (
	"fmt"
	"strings"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name                                         string
	Title, Muted, Accent, Success, Error, Pending string
	Urgent                                       string
	BoxUnchecked, BoxChecked                     string
	CornerTL, CornerTR, CornerBL, CornerBR       string
	H, V                                         string
}

var themes = map[string]Theme{
	"dark": {
		Name: "dark",
		Title: bold, Muted: fgGray, Accent: fgCyan,
		Success: fgGreen, Error: fgRed, Pending: fgYellow, Urgent: bold + fgRed,
		BoxUnchecked: "☐", BoxChecked: "☑",
		CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
		H: "─", V: "│",
	},
	"light": {
		Name: "light",
		Title: bold + fgBlack, Muted: dim, Accent: fgBlue,
		Success: fgGreen, Error: fgRed, Pending: fgBlue, Urgent: bold + fgRed,
		BoxUnchecked: "☐", BoxChecked: "☑",
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
	},
	"mono": {
		Name: "mono",
		BoxUnchecked: "[ ]", BoxChecked: "[x]",
		CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
		H: "-", V: "|",
	},
}

var current = themes["dark"]

// SetTheme switches to dark, light or mono.
func SetTheme(name string) error {
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return fmt.Errorf("ui: unknown theme %q (want dark, light or mono)", name)
	}
	current = t
	return nil
}

// Expose what renderers need
func Current() Theme { return current }
