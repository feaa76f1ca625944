package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/geotrace/internal/blackhole"
	"github.com/san-kum/geotrace/internal/geodesic"
	"github.com/san-kum/geotrace/internal/physics"
	"github.com/san-kum/geotrace/internal/ray"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives one photon interactively, rendering the equatorial-plane
// projection of its path alongside live diagnostics.
type Model struct {
	origin, dir [3]float64
	bh          blackhole.BlackHole
	cfg         ray.Config

	session *ray.Session

	width, height int
	canvas        *Canvas
	viewRadius    float64
	trail         []struct{ x, y int }
	radiusHistory []float64
	conserved     physics.Conserved

	running      bool
	stepsPerTick int
	showHelp     bool
}

// NewModel builds the live view for one ray. The view radius is fixed from
// the starting radius so the geometry does not rescale mid-flight.
func NewModel(origin, dir [3]float64, bh blackhole.BlackHole, cfg ray.Config) Model {
	s := ray.New(origin, dir, bh, cfg)
	return Model{
		origin:        origin,
		dir:           dir,
		bh:            bh,
		cfg:           cfg,
		session:       s,
		width:         width,
		height:        height,
		canvas:        NewCanvas(width, height),
		viewRadius:    s.Radius() * 1.5,
		trail:         make([]struct{ x, y int }, 0, historyCapacity),
		radiusHistory: make([]float64, 0, historyCapacity),
		conserved:     physics.NewConserved(s.State(), bh),
		running:       true,
		stepsPerTick:  4,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the ray.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "+", "=":
			if m.stepsPerTick < 256 {
				m.stepsPerTick *= 2
			}
		case "-", "_":
			if m.stepsPerTick > 1 {
				m.stepsPerTick /= 2
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		m.draw()
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// advance takes up to stepsPerTick integration steps, stopping early at a
// terminal state or once the ray has escaped.
func (m *Model) advance() {
	for i := 0; i < m.stepsPerTick; i++ {
		if m.session.HasEscaped() {
			m.running = false
			return
		}
		if !m.session.Step() {
			m.running = false
			return
		}
		m.record()
	}
}

func (m *Model) record() {
	m.radiusHistory = append(m.radiusHistory, m.session.Radius())
	if len(m.radiusHistory) > historyCapacity {
		m.radiusHistory = m.radiusHistory[1:]
	}
	x, y := m.project(m.session.State())
	m.trail = append(m.trail, struct{ x, y int }{x, y})
	if len(m.trail) > historyCapacity {
		m.trail = m.trail[1:]
	}
}

func (m *Model) reset() {
	m.session = ray.New(m.origin, m.dir, m.bh, m.cfg)
	m.trail = m.trail[:0]
	m.radiusHistory = m.radiusHistory[:0]
	m.conserved = physics.NewConserved(m.session.State(), m.bh)
	m.running = true
}

// project maps a spacetime state onto the canvas via its equatorial-plane
// projection (r sinθ cosφ, r sinθ sinφ), centered on the black hole.
func (m *Model) project(x geodesic.State) (int, int) {
	cw, ch := m.width*2, m.height*4
	rp := x[geodesic.R] * math.Sin(x[geodesic.Theta])
	px := rp * math.Cos(x[geodesic.Phi])
	py := rp * math.Sin(x[geodesic.Phi])
	scale := m.scale()
	return cw/2 + int(px*scale), ch/2 - int(py*scale)
}

func (m *Model) scale() float64 {
	cw, ch := m.width*2, m.height*4
	return float64(minInt(cw, ch)) / (2 * m.viewRadius)
}

func (m *Model) draw() {
	m.canvas.Clear()
	cw, ch := m.width*2, m.height*4
	cx, cy := cw/2, ch/2

	scale := m.scale()
	m.canvas.FillCircle(cx, cy, int(m.bh.SchwarzschildRadius()*scale))
	if m.bh.Spin != 0 {
		m.canvas.DrawCircle(cx, cy, int(m.bh.ErgosphereRadius(math.Pi/2)*scale))
	}

	for _, pt := range m.trail {
		m.canvas.Set(pt.x, pt.y)
	}

	px, py := m.project(m.session.State())
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			m.canvas.Set(px+dx, py+dy)
		}
	}
}

func (m Model) statusLine() string {
	if m.session.HasEscaped() {
		return StatusRunning.Render("ESCAPED")
	}
	switch m.session.Status() {
	case ray.StatusTracing:
		if m.running {
			return StatusRunning.Render("TRACING")
		}
		return StatusPaused.Render("PAUSED")
	case ray.StatusCaptured:
		return StatusTerminal.Render("CAPTURED")
	case ray.StatusMaxSteps:
		return StatusTerminal.Render("MAX STEPS")
	case ray.StatusDiverged:
		return StatusTerminal.Render("DIVERGED")
	}
	return ""
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("GEODESIC TRACE") + "\n")
	s.WriteString(m.statusLine() + "\n\n")

	if len(m.radiusHistory) > 1 {
		chart := asciigraph.Plot(m.radiusHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Radius"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Mass") + valueStyle.Render(fmt.Sprintf("%.3f", m.bh.Mass)) + "\n")
	s.WriteString(labelStyle.Render("Spin") + valueStyle.Render(fmt.Sprintf("%.3f", m.bh.Spin)) + "\n")
	s.WriteString(labelStyle.Render("Radius") + valueStyle.Render(fmt.Sprintf("%.4f", m.session.Radius())) + "\n")
	s.WriteString(labelStyle.Render("Lambda") + valueStyle.Render(fmt.Sprintf("%.4f", m.session.Lambda())) + "\n")
	s.WriteString(labelStyle.Render("Step size") + valueStyle.Render(fmt.Sprintf("%.2e", m.session.StepSize())) + "\n")
	s.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprintf("%d / %d", m.session.StepCount(), m.cfg.MaxSteps)) + "\n")
	s.WriteString(labelStyle.Render("Budget") + ProgressBar(float64(m.session.StepCount())/float64(m.cfg.MaxSteps), 20) + "\n")

	s.WriteString("\nCONSERVED\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.6f", m.conserved.E)) + "\n")
	s.WriteString(labelStyle.Render("L_z") + valueStyle.Render(fmt.Sprintf("%.6f", m.conserved.Lz)) + "\n")
	s.WriteString(labelStyle.Render("Carter Q") + valueStyle.Render(fmt.Sprintf("%.6f", m.conserved.Q)) + "\n")

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\n+/-:Speed ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume tracing     ║
║  R        - Restart the ray          ║
║  Q        - Quit                     ║
║  +        - Double steps per frame   ║
║  -        - Halve steps per frame    ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
