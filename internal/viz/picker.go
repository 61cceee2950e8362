package viz

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/glyphfall/internal/config"
	"github.com/san-kum/glyphfall/internal/rain"
)

var presetInfo = map[string]string{
	"classic": "the stock rain",
	"storm":   "fast and heavy",
	"drizzle": "slow with long trails",
	"dense":   "small latin glyphs",
}

var (
	pickTitle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cc66")).Bold(true)
	pickSub      = lipgloss.NewStyle().Foreground(lipgloss.Color("#558866"))
	pickCursor   = lipgloss.NewStyle().Foreground(lipgloss.Color("#0aff0a")).Bold(true)
	pickSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	pickValue    = lipgloss.NewStyle().Foreground(lipgloss.Color("#88ff88")).Bold(true)
	pickIdle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#446655"))
	pickKey      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aa55")).Bold(true)
)

const (
	stateMenu = iota
	stateTune
	stateLive
)

// tunable is one adjustable rain setting.
type tunable struct {
	name string
	step float64
	get  func(*config.Config) float64
	set  func(*config.Config, float64)
}

var tunables = []tunable{
	{"fps", 1,
		func(c *config.Config) float64 { return c.Rain.FPS },
		func(c *config.Config, v float64) { c.Rain.FPS = max(v, 1) }},
	{"cell_size", 1,
		func(c *config.Config) float64 { return float64(c.Rain.CellSize) },
		func(c *config.Config, v float64) { c.Rain.CellSize = max(int(v), 4) }},
	{"step", 0.1,
		func(c *config.Config) float64 { return c.Rain.Step },
		func(c *config.Config, v float64) { c.Rain.Step = max(v, 0.1) }},
	{"reset_chance", 0.005,
		func(c *config.Config) float64 { return c.Rain.ResetChance },
		func(c *config.Config, v float64) { c.Rain.ResetChance = min(max(v, 0), 1) }},
	{"fade", 0.01,
		func(c *config.Config) float64 { return c.Rain.Fade },
		func(c *config.Config, v float64) { c.Rain.Fade = min(max(v, 0.01), 1) }},
}

// Picker lets the user choose a preset and tune it before the live view
// starts.
type Picker struct {
	state    int
	cursor   int
	presets  []string
	chosen   string
	cfg      *config.Config
	base     config.Config
	src      rain.Source
	tickRate float64
	log      *slog.Logger
	width    int
	height   int
	live     Model
	err      error
}

func NewPicker(base *config.Config, src rain.Source, tickRate float64, log *slog.Logger) *Picker {
	return &Picker{
		presets:  config.ListPresets(),
		base:     *base,
		src:      src,
		tickRate: tickRate,
		log:      log,
		width:    defaultWidth,
		height:   defaultHeight,
	}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch p.state {
		case stateMenu:
			return p.menuKey(msg)
		case stateTune:
			return p.tuneKey(msg)
		}
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
	}
	if p.state == stateLive {
		next, cmd := p.live.Update(msg)
		p.live = next.(Model)
		return p, cmd
	}
	return p, nil
}

func (p Picker) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.presets)-1 {
			p.cursor++
		}
	case "enter", " ":
		cfg := p.base
		cfg.Apply(p.presets[p.cursor])
		p.cfg = &cfg
		p.chosen = p.presets[p.cursor]
		p.state, p.cursor = stateTune, 0
	}
	return p, nil
}

func (p Picker) tuneKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return p, tea.Quit
	case "q", "esc":
		p.state, p.cursor = stateMenu, 0
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(tunables)-1 {
			p.cursor++
		}
	case "left", "h":
		t := tunables[p.cursor]
		t.set(p.cfg, t.get(p.cfg)-t.step)
	case "right", "l":
		t := tunables[p.cursor]
		t.set(p.cfg, t.get(p.cfg)+t.step)
	case "enter", "s":
		return p.start()
	}
	return p, nil
}

func (p Picker) start() (tea.Model, tea.Cmd) {
	live, err := NewModel(p.cfg, p.src, p.tickRate, p.log)
	if err != nil {
		p.err = err
		return p, nil
	}
	p.live, p.state = live, stateLive
	next, _ := p.live.Update(tea.WindowSizeMsg{Width: p.width, Height: p.height})
	p.live = next.(Model)
	return p, p.live.Init()
}

func (p Picker) View() string {
	switch p.state {
	case stateTune:
		return p.viewTune()
	case stateLive:
		return p.live.View()
	}
	return p.viewMenu()
}

func (p Picker) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + GradientText("GLYPHFALL", "#0aff0a", "#d8ffd8") + "\n    " + pickSub.Render("digital rain") + "\n    " + pickSub.Render("────────────") + "\n\n")
	for i, name := range p.presets {
		if i == p.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", pickCursor.Render("▸"), pickSelected.Render(fmt.Sprintf("%-10s", name)), pickValue.Render(presetInfo[name])))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", pickIdle.Render(fmt.Sprintf("  %-10s", name)), pickIdle.Render(presetInfo[name])))
		}
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (p Picker) viewTune() string {
	var b strings.Builder
	b.WriteString("\n\n    " + pickTitle.Render(strings.ToUpper(p.chosen)) + "\n    " + pickSub.Render(presetInfo[p.chosen]) + "\n    " + pickSub.Render("────────────") + "\n\n")
	for i, t := range tunables {
		val := fmt.Sprintf("%8.3f", t.get(p.cfg))
		if i == p.cursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", pickCursor.Render("▸"), pickSelected.Render(fmt.Sprintf("%-13s", t.name)), pickValue.Render(val)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", pickIdle.Render(fmt.Sprintf("  %-13s", t.name)), pickIdle.Render(val)))
		}
	}
	if p.err != nil {
		b.WriteString("\n    " + SparkLow.Render(p.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hints("j/k", "select", "h/l", "adjust", "s", "start", "esc", "back") + "\n")
	return b.String()
}

func hints(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, pickKey.Render(pairs[i])+pickIdle.Render(" "+pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}

// RunPicker shows the preset menu and then the live view.
func RunPicker(p *Picker) error {
	_, err := tea.NewProgram(p, tea.WithAltScreen()).Run()
	return err
}
