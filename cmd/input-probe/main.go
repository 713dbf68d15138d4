// Command input-probe is an interactive diagnostic for the input
// pipeline. It runs a fixed-step frame loop over a terminal backend
// and displays live key state, recent history matches, and resolved
// actions for a binding profile.
//
// Usage:
//
//	input-probe [-profile bindings.toml] [-script bindings.lua] [-fps 60]
//
// Press Escape or Ctrl+C to quit.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/inputcore/backend"
	"github.com/dshills/inputcore/config"
	"github.com/dshills/inputcore/key"
	"github.com/dshills/inputcore/runtime"
	"github.com/dshills/inputcore/script"
)

func main() {
	profilePath := flag.String("profile", "", "TOML binding profile to load")
	scriptPath := flag.String("script", "", "Lua binding script to run")
	fps := flag.Int("fps", 60, "frame rate of the probe loop")
	decay := flag.Duration("decay", backend.DefaultDecay, "synthetic key release window")
	flag.Parse()

	if *fps <= 0 {
		log.Fatal("fps must be positive")
	}

	rt := runtime.New()
	if err := loadBindings(rt, *profilePath, *scriptPath); err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("creating screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("initializing screen: %v", err)
	}
	defer screen.Fini()

	src := backend.NewScreenSource(screen, backend.WithDecay(*decay))
	defer src.Close()

	if err := run(rt, src, screen, time.Second/time.Duration(*fps)); err != nil {
		screen.Fini()
		log.Fatal(err)
	}
}

// loadBindings installs the profile and/or script, or a small default
// layout when neither is given.
func loadBindings(rt *runtime.Runtime[key.Code, key.State], profilePath, scriptPath string) error {
	loaded := false
	if profilePath != "" {
		p, err := config.Load(profilePath)
		if err != nil {
			return err
		}
		if err := p.Apply(rt.Mapping()); err != nil {
			return err
		}
		loaded = true
	}
	if scriptPath != "" {
		ev := script.NewEvaluator()
		if err := ev.Apply(scriptPath, rt.Mapping()); err != nil {
			return err
		}
		loaded = true
	}
	if loaded {
		return nil
	}

	m := rt.Mapping()
	m.AddContext("probe")
	for action, code := range map[string]key.Code{
		"up":     key.CodeUp,
		"down":   key.CodeDown,
		"left":   key.CodeLeft,
		"right":  key.CodeRight,
		"jump":   key.CodeSpace,
		"accept": key.CodeEnter,
	} {
		m.AddActionIn("probe", action)
		m.MapActionIn("probe", action, code)
	}
	if !m.SetCurrentContext("probe") {
		return fmt.Errorf("installing default probe context")
	}
	return nil
}

func run(rt *runtime.Runtime[key.Code, key.State], src backend.Source, screen tcell.Screen, step time.Duration) error {
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	for range ticker.C {
		rt.BeginFrame()
		for _, ev := range src.Poll() {
			rt.Push(ev.Code, ev.State, ev.Time)
		}
		rt.EndFrame()

		game := rt.Game()
		if game.Processing().JustPressed(key.CodeEscape) {
			return nil
		}
		draw(screen, rt)
	}
	return nil
}

func draw(screen tcell.Screen, rt *runtime.Runtime[key.Code, key.State]) {
	screen.Clear()

	style := tcell.StyleDefault
	proc := rt.Processing()
	mapper := rt.Mapping()
	stats := rt.Stats()

	row := 0
	puts(screen, 0, row, style.Bold(true), "input-probe  (Escape to quit)")
	row += 2

	names := make([]string, 0, 8)
	for _, c := range proc.PressedKeys() {
		names = append(names, c.String())
	}
	puts(screen, 0, row, style, "pressed: "+strings.Join(names, " "))
	row += 2

	ctx := "<none>"
	if cur, ok := mapper.CurrentContext(); ok {
		ctx = cur
	}
	puts(screen, 0, row, style, "context: "+ctx)
	row++

	game := rt.Game()
	for _, action := range mapper.ResolvedActions() {
		st := mapper.Action(action)
		mark := " "
		switch {
		case st.Pressed:
			mark = "+"
		case st.Released:
			mark = "-"
		case st.Held:
			mark = "="
		}
		line := fmt.Sprintf("  [%s] %-12s value=%.1f held=%v dur=%s",
			mark, action, game.ActionValue(action), st.Held, st.Duration.Round(time.Millisecond))
		puts(screen, 0, row, style, line)
		row++
	}
	row++

	puts(screen, 0, row, style.Dim(true), fmt.Sprintf(
		"frames=%d events=%d (kbd=%d mouse=%d pad=%d) dropped=%d peak/frame=%d",
		stats.Frames, stats.Events,
		stats.EventsByDevice[key.DeviceKeyboard],
		stats.EventsByDevice[key.DeviceMouse],
		stats.EventsByDevice[key.DeviceGamepad],
		stats.Dropped, stats.PeakEventsPerFrame))

	screen.Show()
}

func puts(screen tcell.Screen, x, y int, style tcell.Style, s string) {
	for i, r := range s {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

func init() {
	log.SetOutput(os.Stderr)
	log.SetFlags(0)
}
