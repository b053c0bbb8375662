package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/vantage/pkg/hud"
	"github.com/taigrr/vantage/pkg/render"
	"github.com/taigrr/vantage/pkg/tour"
)

// viewer owns the terminal session. Every field is touched only by the
// frame loop goroutine.
type viewer struct {
	scene  *scene
	term   *uv.Terminal
	engine *tour.Engine
	logger *log.Logger

	width, height int
	termRenderer  *render.TerminalRenderer
	fb            *render.Framebuffer
	camera        *render.Camera
	rasterizer    *render.Rasterizer

	hud       *hud.HUD
	form      *hud.Form
	wireframe bool

	lastMouseX, lastMouseY int
	quit                   func()
}

func openLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return log.New(f, "vantage ", log.LstdFlags|log.Lmicroseconds), func() { f.Close() }, nil
}

func runViewer(parent context.Context, s *scene) error {
	logger, closeLog, err := openLog(logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	engine := tour.NewEngine(s.catalog,
		tour.WithDuration(s.duration),
		tour.WithDebounce(s.debounce),
		tour.WithFPS(targetFPS),
		tour.WithLogger(logger),
	)

	v := &viewer{
		scene:  s,
		term:   term,
		engine: engine,
		logger: logger,
		camera: render.NewCamera(),
		hud:    hud.New(s.model.Name, s.model.TriangleCount()),
		form:   hud.NewForm(engine.RequestCustomPose),
		quit:   cancel,
	}
	v.resize(width, height)

	engine.Subscribe(v.hud.Update)
	engine.Subscribe(arrivalLogger(logger))

	logger.Printf("loaded %s: %d meshes, %d triangles, %d viewpoints",
		s.model.Name, len(s.model.Meshes), s.model.TriangleCount(), s.catalog.Len())

	// Input arrives on the terminal's goroutine. Hand it to the frame loop
	// so the engine is only ever touched from one goroutine.
	events := make(chan uv.Event, 64)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return v.loop(ctx, events)
}

// arrivalLogger logs each time the camera settles on a viewpoint.
func arrivalLogger(logger *log.Logger) func(tour.Status) {
	prev := tour.Idle
	return func(st tour.Status) {
		if prev == tour.Transitioning && st.State == tour.Idle {
			logger.Printf("arrived at %d/%d %q %v", st.Ordinal(), st.Total, st.Name, st.Pose)
		}
		prev = st.State
	}
}

func (v *viewer) loop(ctx context.Context, events <-chan uv.Event) error {
	targetDuration := time.Second / time.Duration(max(targetFPS, 1))

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		now := time.Now()

	drain:
		for {
			select {
			case ev := <-events:
				v.handle(ev, now)
			default:
				break drain
			}
		}

		pose := v.engine.OnFrame(now)
		v.camera.SetPose(pose)

		drawScene(v.rasterizer, v.scene, v.wireframe)
		if v.engine.Arbiter().Dragging() {
			v.markTarget()
		}
		v.termRenderer.Render(v.fb)

		v.hud.SetProgress(v.engine.Progress(now))
		v.hud.UpdateFPS(now)
		bounds := uv.Rect(0, 0, v.width, v.height)
		v.hud.Draw(v.term, bounds)
		v.form.Draw(v.term, bounds)

		if err := v.termRenderer.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// markTarget outlines the orbit pivot while dragging.
func (v *viewer) markTarget() {
	x, y, _, ok := v.camera.WorldToScreen(v.camera.Target, v.fb.Width, v.fb.Height)
	if !ok {
		return
	}
	v.fb.Marker(int(x), int(y), 2, render.RGB(255, 210, 80))
}

func (v *viewer) resize(width, height int) {
	v.width, v.height = width, height
	v.termRenderer = render.NewTerminalRenderer(v.term, width, height)
	fbWidth, fbHeight := v.termRenderer.FramebufferSize()
	v.fb = render.NewFramebuffer(fbWidth, fbHeight)
	v.rasterizer = render.NewRasterizer(v.camera, v.fb)
	setupCamera(v.camera, v.scene, fbWidth, fbHeight)
}

func (v *viewer) handle(ev uv.Event, now time.Time) {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		v.term.Erase()
		v.term.Resize(ev.Width, ev.Height)
		v.resize(ev.Width, ev.Height)

	case uv.KeyPressEvent:
		if ev.MatchString("ctrl+c") {
			v.quit()
			return
		}
		if v.form.IsOpen() {
			if v.form.HandleKey(ev) == hud.Submitted {
				v.logger.Printf("custom pose requested: %v", v.form.Pose())
			}
			return
		}
		switch {
		case ev.MatchString("escape", "q"):
			v.quit()
		case ev.MatchString("n", "j", "pgdown", "right"):
			v.engine.RequestAdvance(tour.Next)
		case ev.MatchString("p", "k", "pgup", "left"):
			v.engine.RequestAdvance(tour.Prev)
		case ev.MatchString("g"):
			v.form.Open(v.engine.Pose())
		case ev.MatchString("x"):
			v.wireframe = !v.wireframe
		case ev.MatchString("?"), ev.MatchString("shift+/"):
			v.hud.Toggle()
		}

	case uv.MouseClickEvent:
		if ev.Button == uv.MouseLeft && !v.form.IsOpen() {
			v.engine.DragStart()
			v.lastMouseX, v.lastMouseY = ev.X, ev.Y
		}

	case uv.MouseReleaseEvent:
		v.engine.DragEnd()

	case uv.MouseMotionEvent:
		if v.engine.Arbiter().Dragging() {
			v.engine.Drag(ev.X-v.lastMouseX, ev.Y-v.lastMouseY)
			v.lastMouseX, v.lastMouseY = ev.X, ev.Y
		}

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			v.engine.Scroll(-1, now)
		case uv.MouseWheelDown:
			v.engine.Scroll(1, now)
		}
	}
}
