package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/galaxy/internal/analysis"
	"github.com/san-kum/galaxy/internal/camera"
	"github.com/san-kum/galaxy/internal/config"
	"github.com/san-kum/galaxy/internal/galaxy"
	"github.com/san-kum/galaxy/internal/label"
	"github.com/san-kum/galaxy/internal/scene"
	"github.com/san-kum/galaxy/internal/tweak"
)

const (
	sidebarWidth = 40
	profileBins  = 28
	orbitStep    = 0.15
	zoomStep     = 1.15
)

type labelState int

const (
	labelOff labelState = iota
	labelLoading
	labelReady
	labelFailed
)

type TickMsg time.Time

type labelMsg label.Result

// Model is the terminal galaxy viewer.
type Model struct {
	cfg      *config.Config
	log      *slog.Logger
	host     *scene.Host
	graph    *scene.Scene
	panel    *tweak.Panel
	orbit    *camera.Orbit
	viewport *camera.Viewport
	canvas   *Canvas
	styles   styles

	profile     *analysis.Profile
	builds      int
	showProfile bool
	showGuide   bool
	showHelp    bool
	editing     bool
	editBuf     string
	inputErr    error

	label     labelState
	frame     int
	drawn     int
	lastFrame time.Time
	fps       float64
}

// NewModel builds the viewer around host and performs the first generation
// from params. A failed first build is shown in the status line.
func NewModel(cfg *config.Config, host *scene.Host, graph *scene.Scene, params galaxy.Parameters, log *slog.Logger) Model {
	if log == nil {
		log = slog.Default()
	}
	m := Model{
		cfg:         cfg,
		log:         log.With("component", "tui"),
		host:        host,
		graph:       graph,
		panel:       tweak.NewPanel(params, host.Regenerate),
		orbit:       cfg.Camera.Orbit(),
		viewport:    camera.NewViewport(80*2, 24*4, 1),
		canvas:      NewCanvas(80-sidebarWidth, 24),
		styles:      newStyles(GetTheme(cfg.UI.Theme)),
		showProfile: true,
		showGuide:   cfg.UI.Guide,
	}
	if name := m.styles.theme.Name; cfg.UI.Theme != "" && cfg.UI.Theme != name {
		m.log.Warn("unknown theme", "theme", cfg.UI.Theme, "using", name)
	}
	m.resize(80, 24)
	if err := m.panel.Regenerate(); err != nil {
		m.log.Error("initial generation failed", "error", err)
	}
	m.refreshProfile()
	if cfg.Label.Enabled {
		m.label = labelLoading
	}
	return m
}

func tick(fps int) tea.Cmd {
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func loadLabel(opts label.Options) tea.Cmd {
	return func() tea.Msg { return labelMsg(<-label.LoadAsync(opts)) }
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tick(m.cfg.Window.FPS)}
	if m.label == labelLoading {
		cmds = append(cmds, loadLabel(m.cfg.Label.Options()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			m.editKey(msg)
			m.afterInput()
			return m, nil
		}
		if cmd := m.handleKey(msg); cmd != nil {
			return m, cmd
		}
		m.afterInput()
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.draw()
	case labelMsg:
		m.installLabel(label.Result(msg))
	case TickMsg:
		now := time.Time(msg)
		if !m.lastFrame.IsZero() {
			if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
				m.fps = 0.9*m.fps + 0.1/dt
			}
		}
		m.lastFrame = now
		m.frame++
		m.orbit.Update()
		m.draw()
		return m, tick(m.cfg.Window.FPS)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		m.panel.Commit()
		return tea.Quit
	case "up", "k":
		m.panel.Move(-1)
	case "down", "j", "tab":
		m.panel.Move(1)
	case "left", "h":
		m.panel.Nudge(-1)
	case "right", "l":
		m.panel.Nudge(1)
	case "H":
		m.panel.Nudge(-10)
	case "L":
		m.panel.Nudge(10)
	case "enter":
		if m.panel.Dirty() {
			m.panel.Commit()
		} else {
			m.editing, m.editBuf, m.inputErr = true, "", nil
		}
	case "r":
		m.panel.Regenerate()
	case "w":
		m.orbit.Rotate(0, -orbitStep)
	case "s":
		m.orbit.Rotate(0, orbitStep)
	case "a":
		m.orbit.Rotate(-orbitStep, 0)
	case "d":
		m.orbit.Rotate(orbitStep, 0)
	case "+", "=":
		m.orbit.Zoom(zoomStep)
	case "-", "_":
		m.orbit.Zoom(1 / zoomStep)
	case "p":
		m.showProfile = !m.showProfile
	case "t":
		m.styles = newStyles(NextTheme(m.styles.theme))
	case "g":
		m.showGuide = !m.showGuide
	case "?":
		m.showHelp = !m.showHelp
	}
	return nil
}

func (m *Model) editKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		m.editing = false
		if err := m.panel.Set(m.editBuf); err != nil {
			m.inputErr = err
			return
		}
		m.panel.Commit()
	case tea.KeyEsc:
		m.editing, m.editBuf = false, ""
	case tea.KeyBackspace:
		if r := []rune(m.editBuf); len(r) > 0 {
			m.editBuf = string(r[:len(r)-1])
		}
	case tea.KeyRunes:
		m.editBuf += string(msg.Runes)
	}
}

// afterInput refreshes derived state once a key may have rebuilt the galaxy.
func (m *Model) afterInput() {
	if b := m.host.Builds(); b != m.builds || m.host.State() == scene.Empty {
		m.refreshProfile()
	}
}

func (m *Model) refreshProfile() {
	m.builds = m.host.Builds()
	m.profile = nil
	params := m.panel.Committed()
	m.host.View(func(r *scene.Renderable) {
		if r == nil || r.Buffer == nil {
			return
		}
		prof, err := analysis.Compute(r.Buffer, params, profileBins)
		if err != nil {
			m.log.Debug("profile skipped", "error", err)
			return
		}
		m.profile = prof
	})
}

func (m *Model) installLabel(res label.Result) {
	if res.Err != nil {
		m.label = labelFailed
		m.log.Warn("title label unavailable", "error", res.Err)
		return
	}
	m.graph.Attach(scene.NewRenderable(res.Geometry.Buffer, scene.SolidMaterial(res.Geometry.PointSize)))
	m.label = labelReady
	m.log.Debug("title label attached", "points", res.Geometry.Count)
}

// resize fits the canvas into a terminal of w×h cells beside the sidebar.
func (m *Model) resize(w, h int) {
	cols := max(w-sidebarWidth-2, 10)
	rows := max(h-1, 4)
	if m.viewport.Resize(cols*2, rows*4, 1) || m.canvas.Width != cols || m.canvas.Height != rows {
		m.canvas = NewCanvas(cols, rows)
		m.orbit.SetAspect(m.viewport.Aspect())
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	w, h := m.canvas.Dots()
	proj := m.orbit.Projector(w, h)
	if m.showGuide {
		DrawGuide(m.canvas, proj, m.panel.Committed().Radius)
	}
	m.host.View(func(*scene.Renderable) {
		m.drawn = DrawScene(m.canvas, m.graph, proj, m.cfg.Render.MaxDrawn)
	})
}

func (m Model) View() string {
	main := lipgloss.JoinHorizontal(lipgloss.Top, m.canvas.Render(), m.styles.panel.Render(m.sidebar()))
	if m.showHelp {
		return helpOverlay + "\n" + main
	}
	return main
}

func (m Model) sidebar() string {
	st := m.styles
	var s strings.Builder
	s.WriteString(GradientText("GALAXY", st.theme.Primary, st.theme.Secondary) + "\n")

	if snap, ok := m.host.Current(); ok {
		s.WriteString(st.ok.Render("● ") + st.value.Render(fmt.Sprintf("%d particles", snap.Count)) + "\n")
	} else {
		s.WriteString(st.warn.Render("○ empty") + "\n")
	}
	if err := m.panel.Err(); err != nil {
		s.WriteString(st.err.Render(truncate(err.Error(), sidebarWidth-2)) + "\n")
	}
	if m.inputErr != nil {
		s.WriteString(st.err.Render(truncate(m.inputErr.Error(), sidebarWidth-2)) + "\n")
	}
	s.WriteString(st.label.Render("builds") + st.value.Render(fmt.Sprintf("%d", m.host.Builds())) + "\n")
	s.WriteString(st.label.Render("drawn") + st.value.Render(fmt.Sprintf("%d  %.0f fps", m.drawn, m.fps)) + "\n")
	s.WriteString(st.label.Render("title") + st.value.Render(m.labelStatus()) + "\n")
	s.WriteString(st.Separator(sidebarWidth-2) + "\n")

	for i, c := range m.panel.Controls() {
		cursor := "  "
		name := st.label.Render(c.Name)
		if i == m.panel.Cursor() {
			cursor = st.active.Render("▸ ")
			name = st.active.Width(11).Render(c.Name)
		}
		value := m.panel.Value(i)
		if m.editing && i == m.panel.Cursor() {
			value = m.editBuf + "_"
		} else if i == m.panel.Cursor() && m.panel.Dirty() {
			value += "*"
		}
		var widget string
		if col, ok := m.panel.ColorOf(i); ok {
			widget = Swatch(col, 10)
		} else {
			widget = st.graph.Render(RatioBar(m.panel.Ratio(i), 10))
		}
		s.WriteString(fmt.Sprintf("%s%s %s %s\n", cursor, name, widget, st.value.Render(value)))
	}

	if m.showProfile && m.profile != nil {
		s.WriteString(st.Separator(sidebarWidth-2) + "\n")
		s.WriteString(st.graph.Render(analysis.Chart(m.profile, sidebarWidth-10, 5)) + "\n")
		s.WriteString(st.muted.Render(fmt.Sprintf("arms %d  thickness %.3f", m.profile.DominantArms, m.profile.StdHeight)) + "\n")
	}

	s.WriteString(st.keyHint.Render("\nj/k select  h/l adjust  enter commit\nwasd orbit  +/- zoom  r regen  ? help"))
	return s.String()
}

func (m Model) labelStatus() string {
	switch m.label {
	case labelLoading:
		return AnimatedSpinner(m.frame) + " loading"
	case labelReady:
		return m.cfg.Label.Text
	case labelFailed:
		return "unavailable"
	default:
		return "off"
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  j/k ↑/↓  - Select control           ║
║  h/l ←/→  - Adjust value (H/L: x10)  ║
║  Enter    - Commit, or type a value  ║
║  Esc      - Cancel typing            ║
║  R        - Regenerate               ║
║  W/A/S/D  - Orbit camera             ║
║  +/-      - Zoom                     ║
║  P        - Toggle radial profile    ║
║  T        - Cycle themes             ║
║  G        - Toggle ground guide      ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run regenerates the galaxy described by cfg and runs the terminal viewer
// until the user quits.
func Run(cfg *config.Config, log *slog.Logger) error {
	params, err := cfg.Galaxy.Parameters()
	if err != nil {
		return err
	}
	graph := scene.New()
	host := scene.NewHost(graph,
		scene.WithRandom(galaxy.SourceFactory(cfg.Seed)),
		scene.WithBudget(cfg.Render.BudgetBytes()),
		scene.WithLogger(log),
	)
	defer host.Close()

	m := NewModel(cfg, host, graph, params, log)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
