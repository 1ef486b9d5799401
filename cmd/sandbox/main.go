package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hubastard/tessel/engine/assets"
	"github.com/hubastard/tessel/engine/core"
	glbackend "github.com/hubastard/tessel/engine/gfx/gl"
	"github.com/hubastard/tessel/engine/platform"
	"github.com/hubastard/tessel/engine/profiler"
	"github.com/hubastard/tessel/engine/text"
	"github.com/hubastard/tessel/engine/ui"
	"github.com/spf13/pflag"
)

type App struct {
	cfg    core.Config
	ui     *ui.Renderer
	glyphs *glbackend.TextRenderer
	layer  *UILayer
}

func (a *App) OnStart(e *core.Engine) {
	if err := a.start(e); err != nil {
		core.Logger().Error("sandbox start failed", "err", err)
		e.Window.RequestClose()
	}
}

func (a *App) start(e *core.Engine) error {
	backend, ok := e.Backend.(*glbackend.Backend)
	if !ok {
		return fmt.Errorf("sandbox needs the GL backend, got %T", e.Backend)
	}

	shaper, err := text.DefaultShaper()
	if err != nil {
		return err
	}
	atlas, err := text.NewAtlas(shaper.FontData(), text.DefaultPageSize)
	if err != nil {
		return err
	}
	tvs, tfs, err := assets.Pair(assets.TextVertex, assets.TextFragment)
	if err != nil {
		return err
	}
	if a.glyphs, err = glbackend.NewTextRenderer(backend, atlas, tvs, tfs); err != nil {
		return err
	}

	w, h := e.Window.FramebufferSize()
	opts := ui.OptionsFromConfig(a.cfg, w, h)
	opts.ContentScale = e.Window.ContentScale()
	if opts.VertexShader, opts.FragmentShader, err = assets.Pair(assets.UIVertex, assets.UIFragment); err != nil {
		return err
	}
	if a.ui, err = ui.New(backend, a.glyphs, shaper, opts); err != nil {
		return err
	}

	a.layer = NewUILayer(a.ui, profiler.NewFrames(120))
	e.Layers.Push(a.layer)
	return nil
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {}
func (a *App) OnRender(e *core.Engine, alpha float64) {}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {
	if a.ui != nil {
		a.ui.HandleEvent(ev)
	}
	switch v := ev.(type) {
	case core.EventCloseRequested:
		e.Window.RequestClose()
	case core.EventKey:
		if v.Down && v.Key == core.KeyEscape {
			e.Window.RequestClose()
		}
	}
}

func (a *App) OnShutdown(e *core.Engine) {
	if a.ui != nil {
		a.ui.Close()
	}
	if a.glyphs != nil {
		a.glyphs.Release()
	}
}

func main() {
	configPath := pflag.StringP("config", "c", "tessel.toml", "TOML settings file")
	logLevel := pflag.String("log-level", "", "override log_level from the config")
	pflag.Parse()

	cfg, err := core.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	level, err := cfg.Level()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var win *platform.GLFWWindow
	newWindow := func(cfg core.Config) (core.Window, error) {
		w, err := platform.NewGLFWWindow(cfg, nil)
		win = w
		return w, err
	}
	newBackend := func(win core.Window, cfg core.Config) (core.Backend, error) {
		return glbackend.New(win, cfg)
	}

	err = core.Run(&App{cfg: cfg}, cfg, newWindow, newBackend)
	if win != nil {
		win.Destroy()
	}
	if err != nil {
		core.Logger().Error("run failed", "err", err)
		os.Exit(1)
	}
}
