package viz

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/glcanvas/internal/demos"
	"github.com/san-kum/glcanvas/internal/session"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	if c.Dots() != 2 {
		t.Fatalf("expected 2 dots, got %d", c.Dots())
	}
	if got := c.Cell(0, 0); got != '\u2801' {
		t.Errorf("expected dot 1 in the first cell, got %U", got)
	}
	if got := c.Cell(1, 0); got != '\u2880' {
		t.Errorf("expected dot 8 in the second cell, got %U", got)
	}
	if got := c.String(); got != "\u2801\u2880\n" {
		t.Errorf("String = %q", got)
	}

	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)
	if c.Dots() != 2 {
		t.Errorf("out of range pixels must be ignored, got %d dots", c.Dots())
	}

	c.Clear()
	if c.Dots() != 0 || c.Cell(0, 0) != blank {
		t.Error("expected an empty canvas after Clear")
	}
}

func TestCanvasFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := 20; y < 40; y++ {
		for x := 20; x < 40; x++ {
			img.SetNRGBA(x, y, color.NRGBA{G: 128, A: 255})
		}
	}

	c := NewCanvas(10, 5)
	c.FromImage(img)

	// bottom-right quarter of a 20x20 sub-pixel grid
	if got := c.Dots(); got != 100 {
		t.Errorf("expected 100 dots, got %d", got)
	}
	if c.Cell(0, 0) != blank {
		t.Error("expected the background corner to stay empty")
	}

	c.FromImage(nil)
	if c.Dots() != 0 {
		t.Error("expected a cleared canvas for a nil image")
	}
}

func TestNextThemeWraps(t *testing.T) {
	th := Themes[0]
	for range Themes {
		th = NextTheme(th)
	}
	if th.Name != Themes[0].Name {
		t.Errorf("expected to wrap to %s, got %s", Themes[0].Name, th.Name)
	}
	if GetTheme("nope").Name != Themes[0].Name {
		t.Error("expected the default theme for an unknown name")
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil, 4); got != "────" {
		t.Errorf("unexpected empty sparkline %q", got)
	}
	got := Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8}, 8)
	if got != "▁▂▃▄▅▆▇█" {
		t.Errorf("unexpected sparkline %q", got)
	}
}

func starter(t *testing.T, name string) Starter {
	t.Helper()
	return func() (*session.Session, error) {
		p := demos.DefaultParams()
		p.Width, p.Height = 200, 400
		d, err := demos.NewRegistry().Get(name, p)
		if err != nil {
			return nil, err
		}
		return session.New(d, nil).Start(session.Config{FPS: 60, Realtime: true})
	}
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelTicksAdvanceDemo(t *testing.T) {
	m, err := NewModel("canvas_stress", starter(t, "canvas_stress"), 60)
	if err != nil {
		t.Fatal(err)
	}

	now := time.Unix(0, 0)
	var tm tea.Model = m
	for i := 0; i < 4; i++ {
		tm, _ = tm.Update(TickMsg(now.Add(time.Duration(i) * 20 * time.Millisecond)))
	}

	lm := tm.(Model)
	if n := len(lm.sess.Samples()); n != 4 {
		t.Fatalf("expected 4 frames, got %d", n)
	}
	smp, _ := lm.sess.Latest()
	if smp.Time != 60 || smp.Population != 4 {
		t.Errorf("unexpected last sample %+v", smp)
	}
	if len(lm.fpsHistory) != 3 {
		t.Errorf("expected 3 defined rates, got %d", len(lm.fpsHistory))
	}
	if !strings.Contains(lm.View(), "CANVAS_STRESS") {
		t.Error("expected the demo name in the view")
	}
}

func TestModelPauseSkipsTime(t *testing.T) {
	m, err := NewModel("cube_rotate", starter(t, "cube_rotate"), 60)
	if err != nil {
		t.Fatal(err)
	}

	now := time.Unix(0, 0)
	var tm tea.Model = m
	tm, _ = tm.Update(TickMsg(now))
	tm, _ = tm.Update(key(" "))
	tm, _ = tm.Update(TickMsg(now.Add(time.Second)))
	tm, _ = tm.Update(key(" "))
	tm, _ = tm.Update(TickMsg(now.Add(time.Second + 16*time.Millisecond)))

	lm := tm.(Model)
	if n := len(lm.sess.Samples()); n != 2 {
		t.Fatalf("expected 2 frames, got %d", n)
	}
	smp, _ := lm.sess.Latest()
	if smp.Time != 16 {
		t.Errorf("expected paused time to be skipped, got ts=%f", smp.Time)
	}
}

func TestModelKeys(t *testing.T) {
	m, err := NewModel("draw_square", starter(t, "draw_square"), 60)
	if err != nil {
		t.Fatal(err)
	}
	if m.canvas.Dots() == 0 {
		t.Error("expected the one-shot image on the canvas")
	}

	tm, _ := m.Update(key("t"))
	if tm.(Model).theme.Name == m.theme.Name {
		t.Error("expected theme to change")
	}

	tm, _ = tm.Update(key("?"))
	if !strings.Contains(tm.View(), "KEYBOARD SHORTCUTS") {
		t.Error("expected help overlay")
	}

	_, cmd := tm.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestPickerLaunch(t *testing.T) {
	items := []PickerItem{{"cube_rotate", "cube"}, {"draw_square", "quad"}}
	var launched string
	p := NewPicker(items, func(name string) (Model, error) {
		launched = name
		return NewModel(name, starter(t, name), 60)
	})

	var tm tea.Model = p
	tm, _ = tm.Update(key("j"))
	if tm.(Picker).Selected() != "draw_square" {
		t.Fatalf("expected draw_square selected, got %s", tm.(Picker).Selected())
	}
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if launched != "draw_square" || tm.(Picker).live == nil {
		t.Fatal("expected the selected demo to launch")
	}

	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if tm.(Picker).live != nil {
		t.Error("expected esc to return to the list")
	}
}

func TestPickerLaunchError(t *testing.T) {
	p := NewPicker([]PickerItem{{"bad", ""}}, func(string) (Model, error) {
		return Model{}, errors.New("no such demo")
	})
	tm, _ := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(tm.View(), "no such demo") {
		t.Error("expected the launch error in the view")
	}
}
