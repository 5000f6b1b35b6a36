package watch

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/smpctl/internal/discover"
	"github.com/muurk/smpctl/internal/smp"
	"github.com/muurk/smpctl/internal/transport"
)

// Color palette for the monitor
var (
	accentColor  = lipgloss.Color("#7D56F4") // Purple - header, borders
	changedColor = lipgloss.Color("#FFA500") // Orange - phys that changed
	vacantColor  = lipgloss.Color("#626262") // Gray - vacant or empty phys
	errColor     = lipgloss.Color("#FF5555") // Red - poll errors
	textColor    = lipgloss.Color("#FFFFFF")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(accentColor).
			Bold(true).
			Padding(0, 1)

	headerRowStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	rowStyle        = lipgloss.NewStyle().Foreground(textColor)
	changedRowStyle = lipgloss.NewStyle().Foreground(changedColor).Bold(true)
	vacantRowStyle  = lipgloss.NewStyle().Foreground(vacantColor)
	errStyle        = lipgloss.NewStyle().Foreground(errColor).Bold(true)
	footerStyle     = lipgloss.NewStyle().Foreground(vacantColor)
)

// Messages for async operations
type pollMsg struct {
	snap *discover.Snapshot
	err  error
}

type tickMsg time.Time

// watchKeyMap defines key bindings for the monitor
type watchKeyMap struct {
	Refresh key.Binding
	Pause   key.Binding
	Quit    key.Binding
}

// Model is the monitor's bubbletea model.
type Model struct {
	tp       transport.Transport
	interval time.Duration

	// poll state
	snap     *discover.Snapshot
	prev     *discover.Snapshot
	err      error
	polling  bool
	paused   bool
	lastPoll time.Time

	// UI state
	width   int
	height  int
	spinner spinner.Model
	keys    watchKeyMap
}

// New builds a monitor model polling tp on the given interval.
func New(tp transport.Transport, interval time.Duration) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(accentColor)

	keys := watchKeyMap{
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}

	return Model{
		tp:       tp,
		interval: interval,
		polling:  true,
		spinner:  s,
		keys:     keys,
	}
}

// Run starts the monitor and blocks until it exits.
func Run(tp transport.Transport, interval time.Duration) error {
	program := tea.NewProgram(New(tp, interval), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) poll() tea.Cmd {
	tp := m.tp
	return func() tea.Msg {
		snap, err := discover.Collect(tp, false)
		return pollMsg{snap: snap, err: err}
	}
}

func (m Model) schedule() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the first poll immediately.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.poll(), m.spinner.Tick)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			if !m.polling {
				m.polling = true
				return m, tea.Batch(m.poll(), m.spinner.Tick)
			}
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			if !m.paused && !m.polling {
				return m, m.schedule()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case pollMsg:
		m.polling = false
		m.lastPoll = time.Now()
		m.err = msg.err
		if msg.err == nil {
			m.prev = m.snap
			m.snap = msg.snap
		}
		if !m.paused {
			return m, m.schedule()
		}

	case tickMsg:
		if m.paused || m.polling {
			return m, nil
		}
		m.polling = true
		return m, tea.Batch(m.poll(), m.spinner.Tick)

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, cmd
}

// changedPhys maps phy id to whether its change count moved since the
// previous snapshot.
func (m Model) changedPhys() map[int]bool {
	changed := make(map[int]bool)
	if m.prev == nil || m.snap == nil {
		return changed
	}
	prev := make(map[int]discover.PhyStatus, len(m.prev.Phys))
	for _, p := range m.prev.Phys {
		prev[p.ID] = p
	}
	for _, p := range m.snap.Phys {
		old, ok := prev[p.ID]
		if !ok {
			changed[p.ID] = true
			continue
		}
		if old.ChangeCount != p.ChangeCount || old.AttachedSA != p.AttachedSA ||
			old.Negotiated != p.Negotiated || old.Vacant != p.Vacant {
			changed[p.ID] = true
		}
	}
	return changed
}

func rateCell(negot int) string {
	switch negot {
	case 8:
		return "1.5G"
	case 9:
		return "3G"
	case 0xa:
		return "6G"
	case 0xb:
		return "12G"
	case 0xc:
		return "22.5G"
	case 1:
		return "dis"
	case 2:
		return "rst!"
	case 3:
		return "hold"
	case 4:
		return "psel"
	default:
		return "-"
	}
}

// View renders the monitor.
func (m Model) View() string {
	var b strings.Builder

	title := "smpctl watch"
	if m.snap != nil && m.snap.SASAddress != 0 {
		title = fmt.Sprintf("smpctl watch  0x%016x", m.snap.SASAddress)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("poll failed: %v", m.err)))
		b.WriteString("\n\n")
	}

	if m.snap == nil {
		b.WriteString("  " + m.spinner.View() + " polling expander...\n")
		return b.String()
	}

	b.WriteString(headerRowStyle.Render(
		fmt.Sprintf("  %-4s %-5s %-8s %-18s %-5s %-4s %s",
			"phy", "rate", "type", "attached", "aphy", "rt", "cc")))
	b.WriteString("\n")

	changed := m.changedPhys()
	for _, p := range m.snap.Phys {
		style := rowStyle
		switch {
		case changed[p.ID]:
			style = changedRowStyle
		case p.Vacant || p.Attached == smp.DeviceTypeNone:
			style = vacantRowStyle
		}

		var line string
		if p.Vacant {
			line = fmt.Sprintf("  %-4d %-5s %-8s %-18s", p.ID, "-", "vacant", "-")
		} else if p.Attached == smp.DeviceTypeNone {
			line = fmt.Sprintf("  %-4d %-5s %-8s %-18s", p.ID, rateCell(p.Negotiated), "-", "-")
		} else {
			line = fmt.Sprintf("  %-4d %-5s %-8s 0x%016x %-5d %-4s %d",
				p.ID, rateCell(p.Negotiated), p.Attached.Short(),
				p.AttachedSA, p.AttachedPhy,
				p.Routing.Letter(m.snap.TableToTable), p.ChangeCount)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	status := fmt.Sprintf("%d phys  expander cc %d  last poll %s",
		m.snap.NumPhys, m.snap.ExpanderChange, m.lastPoll.Format("15:04:05"))
	if m.paused {
		status += "  [paused]"
	} else if m.polling {
		status += "  " + m.spinner.View()
	}
	b.WriteString(footerStyle.Render("  " + status))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("  r refresh  p pause  q quit"))
	b.WriteString("\n")

	return b.String()
}
