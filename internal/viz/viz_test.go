package viz

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/galaxy/internal/camera"
	"github.com/san-kum/galaxy/internal/config"
	"github.com/san-kum/galaxy/internal/galaxy"
	"github.com/san-kum/galaxy/internal/label"
	"github.com/san-kum/galaxy/internal/scene"
)

func TestCanvasAdditiveColor(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Add(0, 0, colorful.Color{R: 0.6, G: 0.1})
	c.Add(1, 1, colorful.Color{R: 0.6, B: 0.2})

	if got := c.Grid[0][0]; got != blank|0x1|0x10 {
		t.Errorf("cell rune = %U, want both dots set", got)
	}
	col := c.ColorAt(0, 0)
	if col.R != 1 || col.G != 0.1 || col.B != 0.2 {
		t.Errorf("accumulated color = %+v, want red clamped to 1", col)
	}
	c.Add(100, 100, colorful.Color{R: 1})
	c.Add(-1, 0, colorful.Color{R: 1})

	c.Clear()
	if c.Grid[0][0] != blank || c.ColorAt(0, 0) != (colorful.Color{}) {
		t.Error("clear left state behind")
	}
}

func TestCanvasPaintIsOpaque(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Add(0, 0, colorful.Color{B: 1})
	c.Paint(1, 0, colorful.Color{G: 1})
	c.Add(0, 1, colorful.Color{R: 1})

	if got := c.ColorAt(0, 0); got != (colorful.Color{G: 1}) {
		t.Errorf("painted cell color = %+v, want pure green", got)
	}
	if got := c.Grid[0][0]; got != blank|0x8 {
		t.Errorf("painted cell rune = %U, want only the painted dot", got)
	}
}

func TestCanvasRender(t *testing.T) {
	c := NewCanvas(3, 1)
	c.Paint(0, 0, colorful.Color{R: 1})
	plain := c.String()
	if !strings.HasPrefix(plain, string(rune(blank|0x1))) {
		t.Errorf("unexpected plain render %q", plain)
	}
	if !strings.Contains(c.Render(), string(rune(blank|0x1))) {
		t.Error("colored render lost the dot")
	}
}

func TestDrawScene(t *testing.T) {
	s := scene.New()
	buf := &galaxy.Buffer{
		Count:     2,
		Positions: []float32{0, 0, 0, 0, 0, 500},
		Colors:    []float32{1, 1, 1, 1, 1, 1},
	}
	s.Attach(scene.NewRenderable(buf, scene.MaterialFor(galaxy.DefaultParameters())))

	c := NewCanvas(20, 10)
	orbit := config.DefaultConfig().Camera.Orbit()
	w, h := c.Dots()
	orbit.SetAspect(float64(w) / float64(h))

	if n := DrawScene(c, s, orbit.Projector(w, h), 0); n != 1 {
		t.Errorf("drew %d points, want 1 (the other is beyond the far plane)", n)
	}
	lit := 0
	for row := 4; row <= 5; row++ {
		for col := 9; col <= 10; col++ {
			if c.ColorAt(col, row).R > 0 {
				lit++
			}
		}
	}
	if lit != 1 {
		t.Errorf("origin should light one centre cell, lit %d", lit)
	}

	released := scene.NewRenderable(buf, scene.MaterialFor(galaxy.DefaultParameters()))
	released.Release()
	s.Attach(released)
	if n := DrawScene(c, s, orbit.Projector(w, h), 0); n != 1 {
		t.Errorf("released objects must be skipped, drew %d", n)
	}
}

func TestDrawSceneStrides(t *testing.T) {
	p := galaxy.DefaultParameters()
	p.Count = 1000
	buf, err := galaxy.Generate(p, galaxy.NewSeededSource(3))
	if err != nil {
		t.Fatal(err)
	}
	s := scene.New()
	s.Attach(scene.NewRenderable(buf, scene.MaterialFor(p)))
	c := NewCanvas(40, 20)
	w, h := c.Dots()
	o := camera.NewOrbit([3]float64{0, 20, 0.01}, 50, 0.1, 100, 1)

	if n := DrawScene(c, s, o.Projector(w, h), 100); n > 100 {
		t.Errorf("drew %d points with a cap of 100", n)
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawLine(0, 0, 7, 0, colorful.Color{G: 0.5})
	for col := 0; col < 4; col++ {
		if got := c.Grid[0][col]; got != blank|0x1|0x8 {
			t.Errorf("cell %d rune = %U, want the top row of dots", col, got)
		}
		if got := c.ColorAt(col, 0); got.G != 1 {
			t.Errorf("cell %d green = %v, want two dots of 0.5", col, got.G)
		}
	}
	if c.Grid[1][0] != blank {
		t.Error("horizontal line leaked into the next row")
	}

	c.Clear()
	c.DrawLine(0, 7, 0, 0, colorful.Color{R: 1})
	for row := 0; row < 2; row++ {
		if c.Grid[row][0] != blank|0x1|0x2|0x4|0x40 {
			t.Errorf("row %d rune = %U, want the left column of dots", row, c.Grid[row][0])
		}
	}
}

func TestDrawGuide(t *testing.T) {
	c := NewCanvas(40, 20)
	orbit := config.DefaultConfig().Camera.Orbit()
	w, h := c.Dots()
	orbit.SetAspect(float64(w) / float64(h))

	DrawGuide(c, orbit.Projector(w, h), 1)
	lit := 0
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			if c.Grid[row][col] == blank {
				continue
			}
			lit++
			if got := c.ColorAt(col, row); got.B < guideColor.B {
				t.Fatalf("cell %d,%d color = %+v, want guide light", col, row, got)
			}
		}
	}
	if lit < 10 {
		t.Errorf("guide lit %d cells, want both axes drawn", lit)
	}
}

func newTestModel(t *testing.T) (Model, *scene.Host, *scene.Scene) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Label.Enabled = false
	p := galaxy.DefaultParameters()
	p.Count = 1000
	graph := scene.New()
	host := scene.NewHost(graph, scene.WithRandom(galaxy.SourceFactory(9)))
	return NewModel(cfg, host, graph, p, nil), host, graph
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func TestModelInitialBuild(t *testing.T) {
	m, host, graph := newTestModel(t)
	if host.Builds() != 1 || graph.Len() != 1 {
		t.Fatalf("builds %d, objects %d after NewModel", host.Builds(), graph.Len())
	}
	if m.profile == nil || m.profile.Count != 1000 {
		t.Error("profile not computed for the first galaxy")
	}
}

func TestModelNudgeCommitsOnEnter(t *testing.T) {
	m, host, _ := newTestModel(t)

	m = press(m, "l", "l")
	if host.Builds() != 1 {
		t.Fatalf("nudging rebuilt the galaxy (%d builds)", host.Builds())
	}
	m = press(m, "enter")
	if host.Builds() != 2 {
		t.Fatalf("enter did not commit (%d builds)", host.Builds())
	}
	if snap, _ := host.Current(); snap.Count != 1200 {
		t.Errorf("count = %d, want 1200", snap.Count)
	}
	if m.profile.Count != 1200 {
		t.Errorf("profile count = %d, want 1200", m.profile.Count)
	}
}

func TestModelMoveCommits(t *testing.T) {
	m, host, _ := newTestModel(t)
	press(m, "j", "l", "j")
	if host.Builds() != 2 {
		t.Errorf("moving off an edited control should commit, %d builds", host.Builds())
	}
}

func TestModelTypedValue(t *testing.T) {
	m, host, _ := newTestModel(t)
	m = press(m, "enter", "2", "5", "0", "0", "enter")
	if m.editing {
		t.Error("still editing after enter")
	}
	if snap, _ := host.Current(); snap.Count != 2500 {
		t.Errorf("count = %d, want 2500", snap.Count)
	}

	m = press(m, "enter", "x", "y", "enter")
	if m.inputErr == nil {
		t.Error("expected an input error for non-numeric text")
	}
	m = press(m, "enter", "9", "esc")
	if m.editing || host.Builds() != 2 {
		t.Errorf("esc should cancel (editing %v, builds %d)", m.editing, host.Builds())
	}
}

func TestModelRegenerateKey(t *testing.T) {
	m, host, _ := newTestModel(t)
	press(m, "r")
	if host.Builds() != 2 {
		t.Errorf("r should rebuild, %d builds", host.Builds())
	}
}

func TestModelResize(t *testing.T) {
	m, _, _ := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 50})
	m = next.(Model)
	if m.canvas.Width != 140-sidebarWidth-2 || m.canvas.Height != 49 {
		t.Errorf("canvas %dx%d after resize", m.canvas.Width, m.canvas.Height)
	}
	want := float64(m.canvas.Width*2) / float64(m.canvas.Height*4)
	if m.orbit.Aspect != want {
		t.Errorf("aspect = %v, want %v", m.orbit.Aspect, want)
	}
	if m.drawn == 0 {
		t.Error("resize should redraw the scene")
	}
}

func TestModelLabel(t *testing.T) {
	m, _, graph := newTestModel(t)

	next, _ := m.Update(labelMsg{Err: errors.New("no font")})
	m = next.(Model)
	if m.label != labelFailed || graph.Len() != 1 {
		t.Errorf("failed label: state %v, objects %d", m.label, graph.Len())
	}

	g, err := label.Build(label.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	next, _ = m.Update(labelMsg{Geometry: g})
	m = next.(Model)
	if m.label != labelReady || graph.Len() != 2 {
		t.Errorf("loaded label: state %v, objects %d", m.label, graph.Len())
	}
	if !strings.Contains(m.View(), "Star Wars") {
		t.Error("sidebar should name the title once loaded")
	}
}

func TestModelQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestModelThemeAndGuide(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Label.Enabled = false
	cfg.UI.Theme = "ocean"
	cfg.UI.Guide = true
	graph := scene.New()
	host := scene.NewHost(graph, scene.WithRandom(galaxy.SourceFactory(9)))
	p := galaxy.DefaultParameters()
	p.Count = 100
	m := NewModel(cfg, host, graph, p, nil)

	if m.styles.theme.Name != "ocean" {
		t.Errorf("theme = %q, want ocean", m.styles.theme.Name)
	}
	if !m.showGuide {
		t.Error("guide not enabled from config")
	}
	m = press(m, "g")
	if m.showGuide {
		t.Error("g did not toggle the guide off")
	}
	m = press(m, "t")
	if m.styles.theme.Name != ThemeNebula.Name {
		t.Errorf("next theme = %q, want wrap to nebula", m.styles.theme.Name)
	}

	cfg.UI.Theme = "nope"
	if m := NewModel(cfg, host, graph, p, nil); m.styles.theme.Name != ThemeNebula.Name {
		t.Errorf("unknown theme resolved to %q, want the default", m.styles.theme.Name)
	}
}

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != len(Themes) {
		t.Fatalf("%d names for %d themes", len(names), len(Themes))
	}
	for _, n := range names {
		if GetTheme(n).Name != n {
			t.Errorf("GetTheme(%q) did not round trip", n)
		}
	}
}
