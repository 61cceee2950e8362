package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/glyphfall/internal/config"
	"github.com/san-kum/glyphfall/internal/dom"
	"github.com/san-kum/glyphfall/internal/nav"
	"github.com/san-kum/glyphfall/internal/rain"
	"github.com/san-kum/glyphfall/internal/surface"
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	chromeRows      = 2
	rampShades      = 8
	scrollStep      = 20
	intervalHistory = 120
	DefaultTickRate = 60
)

type TickMsg time.Time

// frameStats is shared by value copies of Model.
type frameStats struct {
	intervals []float64
	resets    int
}

func (s *frameStats) OnFrame(f rain.Frame) {
	s.resets += f.Resets
	if f.Index == 0 {
		return
	}
	s.intervals = append(s.intervals, f.Interval)
	if len(s.intervals) > intervalHistory {
		s.intervals = s.intervals[1:]
	}
}

// Model is the live terminal view.
type Model struct {
	driver   *rain.Driver
	term     *surface.Term
	navbar   *nav.Toggler
	stats    *frameStats
	theme    Theme
	ramp     []lipgloss.Style
	tick     time.Duration
	start    time.Time
	scroll   float64
	width    int
	height   int
	paused   bool
	showHelp bool
	showStat bool
	log      *slog.Logger
}

// NewModel builds the engine for cfg on a terminal surface. tickRate is the
// callback rate in Hz; the driver throttles it to cfg's frame rate.
func NewModel(cfg *config.Config, src rain.Source, tickRate float64, log *slog.Logger) (Model, error) {
	if log == nil {
		log = slog.Default()
	}
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}

	cell := cfg.Rain.CellSize
	term := surface.NewTerm(defaultWidth, defaultHeight-chromeRows, cell)
	grid, err := rain.NewGrid(term.Width(), term.Height(), cfg.Params(), src)
	if err != nil {
		return Model{}, err
	}
	driver, err := rain.NewDriver(grid, term, rain.NewManualScheduler(), cfg.Style())
	if err != nil {
		return Model{}, err
	}
	stats := &frameStats{}
	driver.AddObserver(stats)

	theme := GetTheme(cfg.Theme)
	return Model{
		driver: driver,
		term:   term,
		navbar: nav.New(dom.NewElement("navigation", nav.TransparentClasses...), cfg.Nav.Threshold),
		stats:  stats,
		theme:  theme,
		ramp:   theme.Ramp(rampShades),
		tick:   time.Duration(float64(time.Second) / tickRate),
		width:  defaultWidth,
		height: defaultHeight,
		log:    log,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return m.nextTick()
}

func (m Model) nextTick() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.driver.Resize(m.term.Width(), m.term.Height())
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.ramp = m.theme.Ramp(rampShades)
		case "down", "j":
			m.scrollBy(scrollStep)
		case "up", "k":
			m.scrollBy(-scrollStep)
		case "s":
			m.showStat = !m.showStat
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		rows := max(msg.Height-chromeRows, 0)
		px := m.term.CellPx()
		m.driver.Resize(msg.Width*px, rows*px)
		m.log.Debug("resized", "cols", msg.Width, "rows", rows, "columns", m.driver.Grid().Len())
	case TickMsg:
		t := time.Time(msg)
		if m.start.IsZero() {
			m.start = t
		}
		if !m.paused {
			m.driver.Tick(float64(t.Sub(m.start)) / float64(time.Millisecond))
		}
		return m, m.nextTick()
	}
	return m, nil
}

func (m *Model) scrollBy(d float64) {
	m.scroll = max(m.scroll+d, 0)
	if m.navbar.OnScroll(m.scroll) {
		m.log.Debug("navigation toggled", "solid", m.navbar.Solid(), "scroll", m.scroll)
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.navView())
	b.WriteByte('\n')
	b.WriteString(m.term.Render(m.ramp))
	b.WriteByte('\n')
	if m.showHelp {
		b.WriteString(KeyHint.Render("space pause  r rebuild  t theme  j/k scroll  s stats  q quit"))
	} else {
		b.WriteString(m.statusView())
	}
	return b.String()
}

func (m Model) navView() string {
	title := "glyphfall"
	right := fmt.Sprintf("scroll %d", int(m.scroll))
	pad := max(m.width-len(title)-len(right)-2, 1)
	line := " " + title + strings.Repeat(" ", pad) + right + " "

	style := lipgloss.NewStyle().Foreground(m.theme.Text)
	if m.navbar.Solid() {
		style = style.Background(m.theme.NavBg).Bold(true)
	}
	return style.Render(line)
}

func (m Model) statusView() string {
	status := StatusRunning.Render("RUNNING")
	if m.paused {
		status = StatusPaused.Render("PAUSED")
	}
	parts := []string{
		status,
		metric("fps", "%.0f", 1000/m.driver.Interval()),
		metric("cols", "%d", m.driver.Grid().Len()),
		metric("frames", "%d", m.driver.Frames()),
		metric("theme", "%s", m.theme.Name),
	}
	if m.showStat {
		parts = append(parts, metric("resets", "%d", m.stats.resets), SparklineChart(m.stats.intervals, 30))
	}
	return strings.Join(parts, "  ")
}

func (m Model) Driver() *rain.Driver { return m.driver }

func (m Model) Solid() bool { return m.navbar.Solid() }

func (m Model) Paused() bool { return m.paused }

func (m Model) Theme() Theme { return m.theme }

// Run starts the live view in the alternate screen.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
