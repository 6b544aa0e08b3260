package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-arp/arp"
	"go-arp/sequencer"
	"go-arp/theme"
	"go-arp/widgets"
)

const (
	barWidth = 24
	nudge    = 0.05

	rowOverall = int(arp.NumKinds)
	rowBalance = rowOverall + 1
	numRows    = rowBalance + 1
)

// Ports names the open MIDI ports for the header. Empty means none.
type Ports struct {
	In, Out string
}

type Model struct {
	Manager  *sequencer.Manager
	Theme    *theme.Theme
	Ports    Ports
	state    sequencer.State
	row      int
	showHelp bool
	quitting bool
}

type UpdateMsg struct{}

func NewModel(manager *sequencer.Manager, th *theme.Theme, ports Ports) Model {
	return Model{
		Manager: manager,
		Theme:   th,
		Ports:   ports,
		state:   manager.State(),
	}
}

func ListenForUpdates(manager *sequencer.Manager) tea.Cmd {
	return func() tea.Msg {
		<-manager.UpdateChan
		return UpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Manager)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		mgr := m.Manager
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			mgr.Stop()
			return m, tea.Quit

		case "p", " ":
			mgr.TogglePlay()

		case "+", "=":
			mgr.SetTempo(mgr.Tempo() + 5)

		case "-", "_":
			mgr.SetTempo(mgr.Tempo() - 5)

		case "j", "down":
			m.row = (m.row + 1) % numRows

		case "k", "up":
			m.row = (m.row + numRows - 1) % numRows

		case "l", "right":
			m.nudgeRow(nudge)

		case "h", "left":
			m.nudgeRow(-nudge)

		case "1":
			mgr.CycleSeed(0, 1)

		case "2":
			mgr.CycleSeed(1, 1)

		case "d":
			mgr.CycleToneDistribution()

		case "m":
			mgr.ToggleMode()

		case ">", ".":
			mgr.ShiftKey(1)

		case "<", ",":
			mgr.ShiftKey(-1)

		case "r":
			mgr.ResetHistory()

		case "?":
			m.showHelp = !m.showHelp
		}
		m.state = mgr.State()

	case UpdateMsg:
		m.state = m.Manager.State()
		return m, ListenForUpdates(m.Manager)
	}

	return m, nil
}

func (m Model) nudgeRow(delta float64) {
	switch m.row {
	case rowOverall:
		m.Manager.NudgeOverall(delta)
	case rowBalance:
		m.Manager.NudgeBalance(delta)
	default:
		m.Manager.NudgeTemperature(arp.Kind(m.row), delta)
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.state
	g := m.Manager.Generator()

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	cursorStyle := lipgloss.NewStyle().Foreground(m.Theme.Success())
	warnStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	playState := "STOP"
	if s.Playing {
		playState = "PLAY"
	}
	mode := "major"
	if s.Mode == arp.ModeMinor {
		mode = "minor"
	}
	header := headerStyle.Render(fmt.Sprintf("go-arp  %s  %3dbpm  step:%02d/%d  key:%s %s  dist:%d  note:%s",
		playState, s.Tempo, s.Step, s.Length, widgets.KeyName(s.Key), mode, s.ToneDistribution, widgets.NoteName(s.Sounding)))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n")
	out.WriteString(dimStyle.Render(m.portLine()))
	out.WriteString("\n\n")

	sub, beats, _ := g.Metre()
	lo := g.LowestNote()
	out.WriteString(widgets.RenderPattern(m.Theme, s.Pattern, s.Step, sub*beats, lo, lo+12*g.Octaves()))
	out.WriteString("\n\n")

	for i := 0; i < numRows; i++ {
		var label string
		var v float64
		switch i {
		case rowOverall:
			label, v = "overall", s.Overall
		case rowBalance:
			label, v = fmt.Sprintf("seeds %d>%d", s.Seed1, s.Seed2), s.Balance
		default:
			label, v = arp.Kind(i).String(), s.Temps[i]
		}
		marker := "  "
		if i == m.row {
			marker = cursorStyle.Render("> ")
		}
		if i == rowOverall {
			out.WriteString("\n")
		}
		out.WriteString(marker)
		out.WriteString(widgets.RenderBar(m.Theme, label, v, barWidth))
		out.WriteString("\n")
	}

	out.WriteString("\n")
	out.WriteString(dimStyle.Render(widgets.RenderNotes(s.Recent)))
	out.WriteString("\n")
	if s.Fallbacks > 0 {
		out.WriteString(warnStyle.Render(fmt.Sprintf("sampler fallbacks: %d", s.Fallbacks)))
		out.WriteString("\n")
	}

	out.WriteString("\n")
	if m.showHelp {
		out.WriteString(widgets.RenderKeyHelp(keyHelp))
	} else {
		out.WriteString(dimStyle.Render("p:play  +/-:tempo  jk:select  hl:adjust  1/2:seeds  d:dist  m:mode  </>:key  r:reset  ?:help  q:quit"))
	}

	return out.String()
}

func (m Model) portLine() string {
	in, outName := m.Ports.In, m.Ports.Out
	if in == "" {
		in = "none"
	}
	if outName == "" {
		outName = "none"
	}
	return fmt.Sprintf("in:%s  out:%s", in, outName)
}

var keyHelp = []widgets.KeySection{
	{Title: "Transport", Keys: []widgets.KeyBinding{
		{Key: "p / space", Desc: "play, stop and reset to seed"},
		{Key: "+ / -", Desc: "tempo up/down 5 bpm"},
		{Key: "q", Desc: "quit"},
	}},
	{Title: "Temperatures", Keys: []widgets.KeyBinding{
		{Key: "j / k", Desc: "select row"},
		{Key: "h / l", Desc: "decrease/increase selected"},
	}},
	{Title: "Pattern", Keys: []widgets.KeyBinding{
		{Key: "1 / 2", Desc: "next first/second seed"},
		{Key: "d", Desc: "next tone distribution"},
		{Key: "m", Desc: "major/minor"},
		{Key: "< / >", Desc: "key down/up a semitone"},
		{Key: "r", Desc: "reset history to seed"},
	}},
}
