package viz

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/glyphfall/internal/config"
)

type zeroSource struct{}

func (zeroSource) Intn(n int) int   { return 0 }
func (zeroSource) Float64() float64 { return 0 }

func newTestModel(t *testing.T) Model {
	t.Helper()
	m, err := NewModel(config.DefaultConfig(), zeroSource{}, 60, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWindowSizeRebuildsGrid(t *testing.T) {
	m := newTestModel(t)
	m = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if got := m.Driver().Grid().Len(); got != 100 {
		t.Errorf("expected 100 columns, got %d", got)
	}
	if got := m.term.Rows(); got != 28 {
		t.Errorf("expected 28 rows, got %d", got)
	}
}

func TestTicksAreThrottled(t *testing.T) {
	m := newTestModel(t)
	start := time.Unix(0, 0)
	for i := 0; i <= 60; i++ {
		m = update(m, TickMsg(start.Add(time.Duration(i)*time.Second/60)))
	}

	frames := m.Driver().Frames()
	if frames < 12 || frames > 26 {
		t.Errorf("expected a throttled frame count for one second at 60Hz, got %d", frames)
	}
	if m.Driver().Ticks() != 61 {
		t.Errorf("expected 61 ticks, got %d", m.Driver().Ticks())
	}
}

func TestPauseSkipsTicks(t *testing.T) {
	m := newTestModel(t)
	m = update(m, key(" "))
	if !m.Paused() {
		t.Fatal("expected paused")
	}
	start := time.Unix(0, 0)
	for i := 0; i < 10; i++ {
		m = update(m, TickMsg(start.Add(time.Duration(i)*100*time.Millisecond)))
	}
	if m.Driver().Ticks() != 0 {
		t.Errorf("expected no ticks while paused, got %d", m.Driver().Ticks())
	}
}

func TestScrollTogglesNavigation(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 4; i++ {
		m = update(m, key("j"))
	}
	if m.Solid() {
		t.Error("nav should be transparent at 80px")
	}
	m = update(m, key("j"))
	if !m.Solid() {
		t.Error("nav should be solid at 100px")
	}
	m = update(m, key("k"))
	if m.Solid() {
		t.Error("nav should be transparent after scrolling back")
	}
}

func TestThemeCycle(t *testing.T) {
	m := newTestModel(t)
	first := m.Theme().Name
	for range Themes {
		m = update(m, key("t"))
	}
	if m.Theme().Name != first {
		t.Errorf("expected to wrap to %s, got %s", first, m.Theme().Name)
	}
}

func TestViewLayout(t *testing.T) {
	m := newTestModel(t)
	m = update(m, tea.WindowSizeMsg{Width: 40, Height: 12})
	lines := strings.Split(m.View(), "\n")
	if len(lines) != 12 {
		t.Errorf("expected 12 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "glyphfall") {
		t.Errorf("expected nav bar first, got %q", lines[0])
	}
}

func TestRamp(t *testing.T) {
	ramp := ThemeMatrix.Ramp(8)
	if len(ramp) != 8 {
		t.Fatalf("expected 8 shades, got %d", len(ramp))
	}
	if !ramp[7].GetBold() {
		t.Error("brightest shade should be bold")
	}
}

func TestGetTheme(t *testing.T) {
	if GetTheme("amber").Name != "amber" {
		t.Error("expected amber")
	}
	if GetTheme("missing").Name != "matrix" {
		t.Error("expected fallback to matrix")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names mismatch")
	}
}

func TestBlend(t *testing.T) {
	if got := blend("#000000", "#ffffff", 0.5); got != "#808080" {
		t.Errorf("expected #808080, got %s", got)
	}
	if got := blend("#0aff0a", "#000000", 0); got != "#0aff0a" {
		t.Errorf("expected #0aff0a, got %s", got)
	}
}

func TestPickerStartsLive(t *testing.T) {
	p := NewPicker(config.DefaultConfig(), zeroSource{}, 60, slog.New(slog.NewTextHandler(io.Discard, nil)))

	var m tea.Model = *p
	m, _ = m.Update(key("j"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(key("l"))
	m, cmd := m.Update(key("s"))

	got := m.(Picker)
	if got.state != stateLive {
		t.Fatalf("expected live state, got %d", got.state)
	}
	if got.chosen != "dense" {
		t.Errorf("expected dense preset, got %s", got.chosen)
	}
	if got.live.Driver().Interval() != 1000.0/31 {
		t.Errorf("expected tuned fps 31, got interval %f", got.live.Driver().Interval())
	}
	if cmd == nil {
		t.Error("expected tick command")
	}
}

func TestPickerKeepsTerminalAlphabet(t *testing.T) {
	base := config.DefaultConfig()
	base.Rain.Alphabet = "halfwidth"
	p := NewPicker(base, zeroSource{}, 60, slog.New(slog.NewTextHandler(io.Discard, nil)))

	var m tea.Model = *p
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	got := m.(Picker)
	if got.chosen != "classic" {
		t.Fatalf("expected classic preset, got %s", got.chosen)
	}
	if got.cfg.Rain.Alphabet != "halfwidth" {
		t.Errorf("expected halfwidth alphabet kept, got %s", got.cfg.Rain.Alphabet)
	}
}
