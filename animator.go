// Package animator displays a frame-by-frame animation produced by a
// user-supplied draw callback inside a window, with a scrub slider, a
// cached-playback mode backed by on-disk PNG frames, and a pointer-click
// hook.
package animator

import (
	"fmt"
	"image"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
)

// viewKind is the currently shown side of the stacked view.
type viewKind int

const (
	viewLive viewKind = iota
	viewStill
)

// Animator owns the window, the frame cache, and the registered callbacks.
// All methods are intended for the UI goroutine; Run is the only blocking
// entry point.
type Animator struct {
	cfg  Config
	name string

	cache   *FrameCache
	watcher *cacheWatcher

	draw    FrameFunc
	frames  int
	clickFn func(ClickEvent)

	surface Surface
	canvas  *canvasSurface

	mode     Mode
	rendered bool
	frame    int
	view     viewKind

	still      image.Image
	stillDirty bool
	stillImg   *ebiten.Image

	controls *controlPanel
}

// RunOptions configures the Run entry point.
type RunOptions struct {
	// Clear empties the cache directory before anything else.
	Clear bool
	// Prerendered performs a full prerender up front and starts in cached
	// mode; false starts in live mode.
	Prerendered bool
	// InitialFrame is the frame shown when the window opens.
	InitialFrame int
}

// New resolves the cache directory for cfg and invokes the optional setup
// callback. The window itself is not created until Run.
func New(cfg Config) (*Animator, error) {
	cfg.applyDefaults()
	cache, err := OpenFrameCache(cfg.CacheRoot, cfg.Name)
	if err != nil {
		return nil, err
	}
	name := cfg.Name
	if name == "" {
		name = "animator_" + filepath.Base(cache.Dir())
	}
	a := &Animator{
		cfg:   cfg,
		name:  name,
		cache: cache,
		mode:  ModeLive,
	}
	if cfg.Setup != nil {
		cfg.Setup()
	}
	return a, nil
}

// Name returns the instance name, synthesized from the temp directory when
// the config carried none.
func (a *Animator) Name() string { return a.name }

// Cache exposes the underlying frame cache.
func (a *Animator) Cache() *FrameCache { return a.cache }

// Mode returns the current playback mode.
func (a *Animator) Mode() Mode { return a.mode }

// Frame returns the current scrub position.
func (a *Animator) Frame() int { return a.frame }

// SetFrameCallback registers the per-frame draw routine and the total frame
// count, and updates the scrub bound. Calling it again replaces the prior
// registration.
func (a *Animator) SetFrameCallback(draw FrameFunc, frames int) {
	if frames < 1 {
		panic("animator: frame count must be >= 1")
	}
	a.draw = draw
	a.frames = frames
	if a.canvas != nil {
		a.canvas.draw = draw
	}
	a.controls.SetMaxFrame(frames - 1)
}

// SetClickCallback registers the pointer-click handler. No default handler
// is installed; a click with none registered panics.
func (a *Animator) SetClickCallback(fn func(ClickEvent)) {
	a.clickFn = fn
}

// ensureSurface allocates the live drawing target on first use.
func (a *Animator) ensureSurface() {
	if a.surface != nil {
		return
	}
	a.canvas = newCanvasSurface(a.cfg.Width, a.cfg.Height-controlsHeight)
	a.canvas.draw = a.draw
	a.surface = a.canvas
}

// Prerender rasterizes every frame into the cache directory unless it is
// already non-empty. Blocking; runs on the calling goroutine.
func (a *Animator) Prerender() error {
	if a.draw == nil && a.surface == nil {
		return fmt.Errorf("animator: no frame callback registered")
	}
	a.ensureSurface()
	err := a.cache.Render(a.frames, func(frame int) (image.Image, error) {
		a.surface.Render(frame)
		return a.surface.Capture()
	})
	a.drainWatcher()
	return err
}

// Rerender clears the cache and prerenders it from scratch.
func (a *Animator) Rerender() error {
	if err := a.Clear(); err != nil {
		return err
	}
	return a.Prerender()
}

// Clear removes all cached frame files, keeping the directory. It does not
// reset the in-session rendered flag; combine with Prerender or Rerender to
// repopulate before cached playback.
func (a *Animator) Clear() error {
	err := a.cache.Clear()
	a.drainWatcher()
	return err
}

// Visualize displays the given frame through the current mode.
func (a *Animator) Visualize(frame int) error {
	return a.visualize(frame)
}

func (a *Animator) visualize(frame int) error {
	a.frame = frame
	switch a.mode {
	case ModeCached:
		if !a.rendered {
			if err := a.Prerender(); err != nil {
				return err
			}
			a.rendered = true
		}
		img, err := a.cache.Load(frame)
		if err != nil {
			return err
		}
		a.still = img
		a.stillDirty = true
		a.view = viewStill
	default:
		a.ensureSurface()
		a.view = viewLive
		a.surface.Render(frame)
	}
	a.controls.SetStatus(a.mode, frame, a.frames)
	return nil
}

// visualizeCurrent redisplays the current scrub frame; used after a click
// handler may have mutated rendering state.
func (a *Animator) visualizeCurrent() error {
	return a.visualize(a.frame)
}

// handleClick forwards the event to the click callback and redisplays the
// current frame so callback-driven state changes become visible.
func (a *Animator) handleClick(ev ClickEvent) error {
	a.clickFn(ev)
	return a.visualizeCurrent()
}

// setMode switches playback mode and redisplays the current frame.
func (a *Animator) setMode(mode Mode) error {
	a.mode = mode
	return a.visualizeCurrent()
}

func (a *Animator) toggleMode() error {
	if a.mode == ModeCached {
		return a.setMode(ModeLive)
	}
	return a.setMode(ModeCached)
}

// drainWatcher discards pending watcher events caused by our own writes.
func (a *Animator) drainWatcher() {
	if a.watcher == nil {
		return
	}
	for {
		select {
		case <-a.watcher.Events:
		default:
			return
		}
	}
}

// pollWatcher marks the rendered flag stale when another process touched a
// named cache directory.
func (a *Animator) pollWatcher() {
	if a.watcher == nil {
		return
	}
	for {
		select {
		case path := <-a.watcher.Events:
			log.Printf("cache %s changed externally (%s); will re-check before cached playback", a.cache.Dir(), path)
			a.rendered = false
		case err := <-a.watcher.Errors:
			log.Printf("cache watcher error: %v", err)
		default:
			return
		}
	}
}

// prepare runs everything that precedes the event loop: cache maintenance,
// mode selection, widget construction, and the initial frame display.
func (a *Animator) prepare(opts RunOptions) error {
	if a.draw == nil && a.surface == nil {
		return fmt.Errorf("animator: no frame callback registered")
	}
	if opts.InitialFrame < 0 || opts.InitialFrame >= a.frames {
		return fmt.Errorf("animator: initial frame %d out of range [0, %d)", opts.InitialFrame, a.frames)
	}

	if opts.Clear {
		if err := a.Clear(); err != nil {
			return err
		}
	}
	if opts.Prerendered {
		if err := a.Prerender(); err != nil {
			return err
		}
	}
	a.rendered = opts.Prerendered
	if opts.Prerendered {
		a.mode = ModeCached
	} else {
		a.mode = ModeLive
	}

	a.controls = newControlPanel(a.frames-1, func(frame int) {
		if err := a.visualize(frame); err != nil {
			log.Printf("visualize frame %d: %v", frame, err)
		}
	}, func() {
		if err := a.toggleMode(); err != nil {
			log.Printf("toggle mode: %v", err)
		}
	})

	if a.cfg.WatchCache && !a.cache.Temp() {
		w, err := newCacheWatcher(a.cache.Dir())
		if err != nil {
			log.Printf("cache watcher unavailable: %v", err)
		} else {
			a.watcher = w
		}
	}

	if err := a.visualize(opts.InitialFrame); err != nil {
		return err
	}
	a.controls.SetFrame(opts.InitialFrame)
	return nil
}

// Run optionally clears and prerenders the cache, shows the window at the
// initial frame, and blocks in the event loop until the window is closed.
// Temp cache directories are removed on return.
func (a *Animator) Run(opts RunOptions) error {
	defer func() {
		if a.watcher != nil {
			_ = a.watcher.Close()
		}
		if a.cache.Temp() {
			if err := a.cache.Remove(); err != nil {
				log.Printf("remove temp cache %s: %v", a.cache.Dir(), err)
			}
		}
	}()

	if err := a.prepare(opts); err != nil {
		return err
	}

	ebiten.SetWindowTitle(a.cfg.Title)
	ebiten.SetWindowSize(a.cfg.Width, a.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(a)
}
