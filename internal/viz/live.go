package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/18Orion/ParticleInteractionSimulator/internal/dynamo"
	"github.com/18Orion/ParticleInteractionSimulator/internal/physics"
	"github.com/18Orion/ParticleInteractionSimulator/internal/sim"
)

const (
	width            = 60
	height           = 20
	historyCapacity  = 300
	trailCapacity    = 120
	maxTicksPerFrame = 1 << 16
)

type TickMsg time.Time

// Builder produces a fresh world; the model calls it again on reset.
type Builder func() (*sim.World, error)

// Model holds the world being animated and the view state around it.
type Model struct {
	name          string
	build         Builder
	world         *sim.World
	fps           int
	ticksPerFrame int
	running       bool
	showTrails    bool
	canvas        *Canvas
	view          *Viewport
	trails        [][]dynamo.Vector2
	energyHistory []float64
	collisions    *int
	err           error
}

type collisionCounter struct{ n *int }

func (c collisionCounter) OnTick(float64, []physics.Body) {}
func (c collisionCounter) OnCollision(sim.Collision)      { *c.n++ }

// NewModel builds the first world and returns a running model.
func NewModel(name string, build Builder, ticksPerFrame, fps int) (Model, error) {
	if ticksPerFrame < 1 {
		ticksPerFrame = 1
	}
	if fps < 1 {
		fps = 30
	}
	m := Model{
		name:          name,
		build:         build,
		fps:           fps,
		ticksPerFrame: ticksPerFrame,
		running:       true,
		showTrails:    true,
		canvas:        NewCanvas(width, height),
		view:          &Viewport{},
		collisions:    new(int),
	}
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			if err := m.reset(); err != nil {
				m.err = err
			}
		case "+", "=":
			if m.ticksPerFrame < maxTicksPerFrame {
				m.ticksPerFrame *= 2
			}
		case "-", "_":
			if m.ticksPerFrame > 1 {
				m.ticksPerFrame /= 2
			}
		case "t":
			m.showTrails = !m.showTrails
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.step()
		}
		m.draw()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.world.AdvanceTicks(m.ticksPerFrame)
	bodies := m.world.Bodies()
	for i, b := range bodies {
		if !b.IsFinite() {
			m.err = &dynamo.SimulationError{
				Tick: m.world.Ticks(), Time: m.world.ElapsedTime(), Body: i, Wrapped: dynamo.ErrInvalidState,
			}
			m.running = false
			return
		}
	}
	m.record(bodies)
}

func (m *Model) record(bodies []physics.Body) {
	if len(m.trails) != len(bodies) {
		m.trails = make([][]dynamo.Vector2, len(bodies))
	}
	for i, b := range bodies {
		m.trails[i] = append(m.trails[i], b.Position)
		if len(m.trails[i]) > trailCapacity {
			m.trails[i] = m.trails[i][1:]
		}
	}
	if e := physics.TotalEnergy(bodies); !math.IsNaN(e) && !math.IsInf(e, 0) {
		m.energyHistory = append(m.energyHistory, e)
		if len(m.energyHistory) > historyCapacity {
			m.energyHistory = m.energyHistory[1:]
		}
	}
}

func (m *Model) reset() error {
	w, err := m.build()
	if err != nil {
		return err
	}
	*m.collisions = 0
	w.AddObserver(collisionCounter{n: m.collisions})
	m.world = w
	m.err = nil
	m.trails = nil
	m.energyHistory = m.energyHistory[:0]
	m.view.Reset()
	m.record(w.Bodies())
	m.draw()
	return nil
}

func (m *Model) draw() {
	m.canvas.Clear()
	bodies := m.world.Bodies()
	points := make([]dynamo.Vector2, 0, len(bodies))
	for _, b := range bodies {
		if b.Position.IsFinite() {
			points = append(points, b.Position)
		}
	}
	m.view.Fit(points, 0.15)
	scale := m.view.Scale(m.canvas)
	if m.showTrails {
		for _, trail := range m.trails {
			for _, p := range trail {
				if p.IsFinite() {
					m.canvas.Set(m.view.Project(p, m.canvas))
				}
			}
		}
	}
	for _, b := range bodies {
		if !b.Position.IsFinite() {
			continue
		}
		x, y := m.view.Project(b.Position, m.canvas)
		r := int(b.Radius * scale)
		if r > 6 {
			r = 6
		}
		m.canvas.Disc(x, y, r)
	}
}

// View renders the canvas and the stats panel side by side.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")
	switch {
	case m.err != nil:
		s.WriteString(hitStyle.Render("HALTED") + "\n" + valueStyle.Render(m.err.Error()) + "\n\n")
	case m.running:
		s.WriteString(runStyle.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(pausedStyle.Render("PAUSED") + "\n\n")
	}
	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Total energy (J)"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}
	s.WriteString(row("Time", fmt.Sprintf("%.2fs", m.world.ElapsedTime())))
	s.WriteString(row("Ticks", fmt.Sprintf("%d (x%d/frame)", m.world.Ticks(), m.ticksPerFrame)))
	s.WriteString(row("Tick", fmt.Sprintf("%gs", m.world.TickDuration())))
	if *m.collisions > 0 {
		s.WriteString(labelStyle.Render("Contacts") + hitStyle.Render(fmt.Sprint(*m.collisions)) + "\n")
	}
	s.WriteString("\n")
	for i, b := range m.world.Bodies() {
		name := b.Name
		if name == "" {
			name = fmt.Sprintf("body %d", i)
		}
		if b.Fixed {
			s.WriteString(nameStyle.Render(name) + " " + fixedStyle.Render("fixed") + "\n")
		} else {
			s.WriteString(nameStyle.Render(name) + "\n")
		}
		s.WriteString(row(" pos", formatVec(b.Position)))
		s.WriteString(row(" vel", formatVec(b.Velocity)))
		s.WriteString(row(" acc", formatVec(b.Acceleration)))
	}
	s.WriteString(helpStyle.Render("SP:Pause R:Reset Q:Quit\n+/-:Speed T:Trails"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

func formatVec(v dynamo.Vector2) string {
	return fmt.Sprintf("(%.3g, %.3g)", v.X(), v.Y())
}

// Run animates the world until the user quits.
func Run(name string, build Builder, ticksPerFrame, fps int) error {
	m, err := NewModel(name, build, ticksPerFrame, fps)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
