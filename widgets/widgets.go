package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-arp/arp"
	"go-arp/theme"
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// KeyName names a pitch class
func KeyName(pc int) string {
	return noteNames[((pc%12)+12)%12]
}

// NoteName renders a MIDI pitch as name and octave, with 60 as C4. Silence
// renders as "--".
func NoteName(pitch int) string {
	if pitch == arp.Silence {
		return "--"
	}
	return fmt.Sprintf("%s%d", KeyName(pitch), pitch/12-1)
}

// RenderBar draws a labelled horizontal bar for v in [0, 1], coloured by v.
func RenderBar(th *theme.Theme, label string, v float64, width int) string {
	v = max(0, min(1, v))
	filled := int(v*float64(width) + 0.5)
	bar := strings.Repeat(string(th.Symbols.BarFull), filled)
	rest := strings.Repeat(string(th.Symbols.BarEmpty), width-filled)

	barStyle := lipgloss.NewStyle().Foreground(th.Color(0.2 + 0.8*v))
	dim := lipgloss.NewStyle().Foreground(th.Muted())
	return fmt.Sprintf("%-12s %s%s %4.2f", label, barStyle.Render(bar), dim.Render(rest), v)
}

// RenderPattern draws one symbol per step, perRow steps to a line. Notes are
// coloured by height within [lo, hi].
func RenderPattern(th *theme.Theme, notes []arp.Note, step, perRow, lo, hi int) string {
	if perRow <= 0 {
		perRow = len(notes)
	}
	span := float64(max(1, hi-lo))
	dim := lipgloss.NewStyle().Foreground(th.Muted())
	head := lipgloss.NewStyle().Foreground(th.Success()).Bold(true)

	var lines []string
	var line strings.Builder
	for i, n := range notes {
		switch {
		case i == step:
			line.WriteString(head.Render(string(th.Symbols.Playhead)))
		case n.Silent():
			line.WriteString(dim.Render(string(th.Symbols.Rest)))
		default:
			c := th.Color(0.15 + 0.85*float64(n.Pitch-lo)/span)
			line.WriteString(lipgloss.NewStyle().Foreground(c).Render(string(th.Symbols.Note)))
		}
		if (i+1)%perRow == 0 || i == len(notes)-1 {
			lines = append(lines, line.String())
			line.Reset()
		}
	}
	return strings.Join(lines, "\n")
}

// RenderNotes lists pitches by name, newest last.
func RenderNotes(notes []arp.Note) string {
	names := make([]string, len(notes))
	for i, n := range notes {
		names[i] = fmt.Sprintf("%-3s", NoteName(n.Pitch))
	}
	return strings.Join(names, " ")
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
