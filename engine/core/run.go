package core

import (
	"runtime"
	"time"
)

// Run wires the platform window + backend and executes the main loop.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newBackend func(Window, Config) (Backend, error)) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return err
	}

	backend, err := newBackend(win, cfg)
	if err != nil {
		return err
	}
	defer backend.Shutdown()

	w, h := win.FramebufferSize()
	backend.Resize(w, h)

	eng := &Engine{
		Window:  win,
		Backend: backend,
		Input:   NewInput(),
		Layers:  &LayerStack{},
		Config:  cfg,
		start:   time.Now(),
	}
	win.SetEventCallback(func(ev Event) {
		if r, ok := ev.(EventResize); ok {
			if r.W < 1 || r.H < 1 {
				return
			}
			backend.Resize(r.W, r.H)
		}
		eng.Input.Handle(ev)
		app.OnEvent(eng, ev)
		eng.Layers.ForEachReverse(func(l Layer) bool { return l.OnEvent(eng, ev) })
	})

	app.OnStart(eng)
	eng.Layers.ForEach(func(l Layer) { l.OnAttach(eng) })

	// Fixed-timestep (60 Hz) with interpolation
	const tick = time.Second / 60
	var (
		accum   time.Duration
		prev    = time.Now()
		clear   = cfg.ClearColor
		maxStep = 10 // prevent spiral of death
	)

	for !win.ShouldClose() {
		now := time.Now()
		accum += now.Sub(prev)
		prev = now

		win.PollEvents()

		steps := 0
		for accum >= tick && steps < maxStep {
			dt := float64(tick) / float64(time.Second)
			app.OnUpdate(eng, dt)
			eng.Layers.ForEach(func(l Layer) { l.OnUpdate(eng, dt) })
			accum -= tick
			steps++
		}
		alpha := float64(accum) / float64(tick)

		// Color and depth are cleared once; every UI pass of the frame
		// shares the depth attachment.
		backend.Clear(clear[0], clear[1], clear[2], clear[3])
		app.OnRender(eng, alpha)
		eng.Layers.ForEach(func(l Layer) { l.OnRender(eng, alpha) })
		eng.Input.EndFrame()

		win.SwapBuffers()
	}

	for {
		l, ok := eng.Layers.Pop()
		if !ok {
			break
		}
		l.OnDetach(eng)
	}
	app.OnShutdown(eng)
	Logger().Info("engine exit", "uptime", eng.Uptime())
	return nil
}
