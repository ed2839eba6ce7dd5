package vitals

import (
	"strings"
)

// Style identifies the colour theme applied to a status cell. Styling is
// cosmetic only - unrecognised status values map to StyleNone and the cell is
// left unformatted.
type Style int

const (
	StyleNone Style = iota
	StyleGreen
	StyleAmber
	StyleRed
)

func (s Style) String() string {
	switch s {
	case StyleGreen:
		return "green"
	case StyleAmber:
		return "amber"
	case StyleRed:
		return "red"
	}

	return "none"
}

// bpStyles matches BP Status values exactly - the classifications are produced
// upstream from a fixed set.
var bpStyles = map[string]Style{
	"High":     StyleRed,
	"Elevated": StyleAmber,
	"Normal":   StyleGreen,
}

// BPStyle returns the colour theme for a BP Status value.
func BPStyle(status string) Style {
	if style, ok := bpStyles[clean(status)]; ok {
		return style
	}

	return StyleNone
}

// SugarStyle returns the colour theme for a Sugar Status value. Sugar statuses
// are compound (e.g. "Fasting: Pre-Diabetic | PP: Normal") so matching is by
// substring, worst classification first.
func SugarStyle(status string) Style {
	switch {
	case strings.Contains(status, "Diabetic") && !strings.Contains(status, "Pre"):
		return StyleRed

	case strings.Contains(status, "Pre"):
		return StyleAmber

	case strings.Contains(status, "Normal"):
		return StyleGreen
	}

	return StyleNone
}
