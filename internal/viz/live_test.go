package viz

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/18Orion/ParticleInteractionSimulator/internal/dynamo"
	"github.com/18Orion/ParticleInteractionSimulator/internal/physics"
	"github.com/18Orion/ParticleInteractionSimulator/internal/sim"
)

func earthDrop() (*sim.World, error) {
	w, err := sim.New(0.1)
	if err != nil {
		return nil, err
	}
	w.AddBody(physics.NewBody(5.972e24, 0, 6.371e6, physics.WithName("earth"), physics.WithFixed(true)))
	w.AddBody(physics.NewBody(1, 0, 1, physics.WithName("probe"),
		physics.WithPosition(dynamo.NewVector2(6.371e6+100, 0))))
	return w, nil
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestNewModel(t *testing.T) {
	m, err := NewModel("earth-drop", earthDrop, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if m.ticksPerFrame != 1 || m.fps != 30 {
		t.Errorf("defaults not applied: ticks=%d fps=%d", m.ticksPerFrame, m.fps)
	}
	if !m.running {
		t.Error("model should start running")
	}
}

func TestNewModelBuildError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewModel("x", func() (*sim.World, error) { return nil, boom }, 1, 30)
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want %v", err, boom)
	}
}

func TestUpdateTickAdvancesWorld(t *testing.T) {
	m, _ := NewModel("earth-drop", earthDrop, 5, 30)
	m = update(t, m, TickMsg(time.Now()))
	if got := m.world.Ticks(); got != 5 {
		t.Errorf("ticks = %d, want 5", got)
	}
	probe, _ := m.world.Body(1)
	if probe.Velocity.Magnitude() == 0 {
		t.Error("probe did not start falling")
	}
}

func TestUpdateKeys(t *testing.T) {
	m, _ := NewModel("earth-drop", earthDrop, 4, 30)

	m = update(t, m, key(" "))
	if m.running {
		t.Fatal("space should pause")
	}
	m = update(t, m, TickMsg(time.Now()))
	if m.world.Ticks() != 0 {
		t.Error("paused model advanced the world")
	}

	m = update(t, m, key("+"))
	if m.ticksPerFrame != 8 {
		t.Errorf("ticksPerFrame = %d, want 8", m.ticksPerFrame)
	}
	m = update(t, m, key("-"))
	m = update(t, m, key("-"))
	m = update(t, m, key("-"))
	m = update(t, m, key("-"))
	if m.ticksPerFrame != 1 {
		t.Errorf("ticksPerFrame = %d, want floor of 1", m.ticksPerFrame)
	}

	m = update(t, m, key("t"))
	if m.showTrails {
		t.Error("t should hide trails")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestUpdateResetRebuildsWorld(t *testing.T) {
	m, _ := NewModel("earth-drop", earthDrop, 10, 30)
	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, TickMsg(time.Now()))
	if m.world.Ticks() == 0 {
		t.Fatal("world did not advance")
	}
	m = update(t, m, key("r"))
	if m.world.Ticks() != 0 || m.world.ElapsedTime() != 0 {
		t.Errorf("reset left ticks=%d t=%g", m.world.Ticks(), m.world.ElapsedTime())
	}
	if len(m.energyHistory) != 1 {
		t.Errorf("energy history has %d entries after reset, want 1", len(m.energyHistory))
	}
}

func TestCollisionsCounted(t *testing.T) {
	touching := func() (*sim.World, error) {
		w, _ := sim.New(1)
		w.AddBody(physics.NewBody(1e10, 0, 1))
		w.AddBody(physics.NewBody(1e10, 0, 1, physics.WithPosition(dynamo.NewVector2(1.5, 0))))
		return w, nil
	}
	m, _ := NewModel("touch", touching, 3, 30)
	m = update(t, m, TickMsg(time.Now()))
	if *m.collisions != 6 {
		t.Errorf("collisions = %d, want 6", *m.collisions)
	}
	if !strings.Contains(m.View(), "Contacts") {
		t.Error("view does not report contacts")
	}
}

func TestViewListsBodies(t *testing.T) {
	m, _ := NewModel("earth-drop", earthDrop, 1, 30)
	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, TickMsg(time.Now()))
	v := m.View()
	for _, want := range []string{"EARTH-DROP", "earth", "probe", "fixed", "RUNNING", "Total energy"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestStepHaltsOnInvalidState(t *testing.T) {
	bad := func() (*sim.World, error) {
		w, _ := sim.New(1)
		w.AddBody(physics.NewBody(1, 0, 0))
		w.AddBody(physics.NewBody(1, 0, 0,
			physics.WithPosition(dynamo.NewVector2(10, 0)),
			physics.WithVelocity(dynamo.NewVector2(1e308, 0))))
		return w, nil
	}
	m, _ := NewModel("bad", bad, 4, 30)
	m = update(t, m, TickMsg(time.Now()))
	if !errors.Is(m.err, dynamo.ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", m.err)
	}
	if m.running {
		t.Error("model kept running after invalid state")
	}
	if !strings.Contains(m.View(), "HALTED") {
		t.Error("view does not show halt")
	}
}
