package animator

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hajimehoshi/ebiten/v2"
)

// fakeSurface stands in for the ebiten-backed canvas so dispatch logic can
// run headless. It records every draw invocation and captures a solid color
// derived from the last rendered frame.
type fakeSurface struct {
	renders []int
	last    int
}

func (f *fakeSurface) Render(frame int) {
	f.last = frame
	f.renders = append(f.renders, frame)
}

func (f *fakeSurface) Capture() (image.Image, error) {
	return solidFrame(f.last), nil
}

func newTestAnimator(t *testing.T, frames int) (*Animator, *fakeSurface) {
	t.Helper()
	a, err := New(Config{Name: "test", CacheRoot: t.TempDir()})
	if err != nil {
		t.Fatalf("new animator: %v", err)
	}
	fs := &fakeSurface{}
	a.surface = fs
	a.frames = frames
	return a, fs
}

func TestNewResolvesCacheDir(t *testing.T) {
	t.Run("named", func(t *testing.T) {
		root := t.TempDir()
		a, err := New(Config{Name: "orbit", CacheRoot: root})
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		if a.Name() != "orbit" {
			t.Fatalf("name = %q, want orbit", a.Name())
		}
		if got, want := a.Cache().Dir(), filepath.Join(root, "orbit"); got != want {
			t.Fatalf("cache dir = %q, want %q", got, want)
		}
		if a.Cache().Temp() {
			t.Fatal("named cache should not be temp")
		}
	})

	t.Run("unnamed", func(t *testing.T) {
		a, err := New(Config{})
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		defer a.Cache().Remove()
		if !strings.HasPrefix(a.Name(), "animator_") {
			t.Fatalf("synthesized name = %q, want animator_ prefix", a.Name())
		}
		if !a.Cache().Temp() {
			t.Fatal("unnamed cache should be temp")
		}
	})
}

func TestNewInvokesSetup(t *testing.T) {
	calls := 0
	_, err := New(Config{Name: "setup", CacheRoot: t.TempDir(), Setup: func() { calls++ }})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if calls != 1 {
		t.Fatalf("setup invoked %d times, want 1", calls)
	}
}

func TestSetFrameCallbackRejectsZeroFrames(t *testing.T) {
	a, _ := newTestAnimator(t, 1)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for frame count 0")
		}
	}()
	a.SetFrameCallback(nil, 0)
}

func TestVisualizeCachedLazilyPrerenders(t *testing.T) {
	a, fs := newTestAnimator(t, 3)
	a.mode = ModeCached

	if err := a.visualize(1); err != nil {
		t.Fatalf("visualize: %v", err)
	}

	// First cached visualize triggers the full prerender, in order.
	if diff := cmp.Diff([]int{0, 1, 2}, fs.renders); diff != "" {
		t.Fatalf("prerender draws mismatch (-want +got):\n%s", diff)
	}
	if !a.rendered {
		t.Fatal("rendered flag should be set after lazy prerender")
	}
	if a.view != viewStill {
		t.Fatal("cached mode should show the still view")
	}
	if a.still == nil {
		t.Fatal("still image should be loaded")
	}

	// Subsequent cached visualizes never re-invoke the draw routine.
	if err := a.visualize(2); err != nil {
		t.Fatalf("visualize: %v", err)
	}
	if len(fs.renders) != 3 {
		t.Fatalf("cached visualize re-invoked draw routine: %v", fs.renders)
	}

	r, g, b, _ := a.still.At(0, 0).RGBA()
	want := frameColor(2)
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Fatalf("still pixel = (%d,%d,%d), want %v", r>>8, g>>8, b>>8, want)
	}
}

func TestVisualizeLiveAlwaysRedraws(t *testing.T) {
	a, fs := newTestAnimator(t, 3)

	if err := a.visualize(1); err != nil {
		t.Fatalf("visualize: %v", err)
	}
	if err := a.visualize(1); err != nil {
		t.Fatalf("visualize: %v", err)
	}

	if diff := cmp.Diff([]int{1, 1}, fs.renders); diff != "" {
		t.Fatalf("live draws mismatch (-want +got):\n%s", diff)
	}
	if a.view != viewLive {
		t.Fatal("live mode should show the live view")
	}
}

func TestToggleModeDispatch(t *testing.T) {
	a, fs := newTestAnimator(t, 3)
	a.rendered = false

	// Start live at frame 0.
	if err := a.visualize(0); err != nil {
		t.Fatalf("visualize: %v", err)
	}
	// Toggle to cached: prerenders once, then serves from disk.
	if err := a.toggleMode(); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if a.mode != ModeCached {
		t.Fatalf("mode = %v, want Cached", a.mode)
	}
	drawsAfterPrerender := len(fs.renders)

	// Toggle back to live: the draw routine runs again for the same frame.
	if err := a.toggleMode(); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if a.mode != ModeLive {
		t.Fatalf("mode = %v, want Live", a.mode)
	}
	if len(fs.renders) != drawsAfterPrerender+1 {
		t.Fatalf("toggling to live should redraw exactly once, draws %v", fs.renders)
	}

	// And back to cached: already rendered, no further draws.
	if err := a.toggleMode(); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if len(fs.renders) != drawsAfterPrerender+1 {
		t.Fatalf("cached toggle should not redraw, draws %v", fs.renders)
	}
}

func TestClickForwarding(t *testing.T) {
	a, fs := newTestAnimator(t, 5)
	a.frame = 2

	var got []ClickEvent
	a.SetClickCallback(func(ev ClickEvent) {
		got = append(got, ev)
	})

	sent := ClickEvent{X: 120, Y: 44, Button: MouseButtonRight, Modifiers: Modifiers{Shift: true}}
	if err := a.handleClick(sent); err != nil {
		t.Fatalf("handle click: %v", err)
	}

	if diff := cmp.Diff([]ClickEvent{sent}, got); diff != "" {
		t.Fatalf("click event mismatch (-want +got):\n%s", diff)
	}
	// Exactly one redisplay of the current scrub frame follows the callback.
	if diff := cmp.Diff([]int{2}, fs.renders); diff != "" {
		t.Fatalf("redisplay mismatch (-want +got):\n%s", diff)
	}
}

func TestClearKeepsRenderedFlag(t *testing.T) {
	a, fs := newTestAnimator(t, 3)
	a.mode = ModeCached

	if err := a.visualize(0); err != nil {
		t.Fatalf("visualize: %v", err)
	}
	if err := a.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	// Clear does not reset the in-memory flag, so the next cached visualize
	// skips prerendering and fails at load time.
	if err := a.visualize(1); err == nil {
		t.Fatal("cached visualize after clear should fail to load")
	}
	if len(fs.renders) != 3 {
		t.Fatalf("clear should not trigger redraws, draws %v", fs.renders)
	}

	// Rerender repopulates and recovers.
	if err := a.Rerender(); err != nil {
		t.Fatalf("rerender: %v", err)
	}
	if err := a.visualize(1); err != nil {
		t.Fatalf("visualize after rerender: %v", err)
	}
}

func TestPrepareScenario(t *testing.T) {
	// frames=3 with a distinct color per index; starting cleared, cached,
	// at frame 1 must rebuild the cache, show the still for frame 1, and
	// park the slider there.
	a, fs := newTestAnimator(t, 3)

	// Leftovers from a previous run with a different frame count.
	if err := a.cache.Render(2, countingRender(&[]int{})); err != nil {
		t.Fatalf("seed stale cache: %v", err)
	}

	if err := a.prepare(RunOptions{Clear: true, Prerendered: true, InitialFrame: 1}); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	if n, _ := a.cache.Count(); n != 3 {
		t.Fatalf("cache holds %d files, want 3", n)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, fs.renders); diff != "" {
		t.Fatalf("prerender draws mismatch (-want +got):\n%s", diff)
	}
	if a.mode != ModeCached {
		t.Fatalf("mode = %v, want Cached", a.mode)
	}
	if a.view != viewStill {
		t.Fatal("should start on the still view")
	}
	r, g, b, _ := a.still.At(0, 0).RGBA()
	want := frameColor(1)
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Fatalf("initial still = (%d,%d,%d), want %v", r>>8, g>>8, b>>8, want)
	}
	if a.controls.slider.Current != 1 {
		t.Fatalf("slider at %d, want 1", a.controls.slider.Current)
	}
}

func TestRunRemovesTempCacheOnError(t *testing.T) {
	a, err := New(Config{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	dir := a.Cache().Dir()

	// No frame callback registered, so Run fails before the event loop; the
	// temp cache must still be cleaned up.
	if err := a.Run(RunOptions{}); err == nil {
		t.Fatal("run without a frame callback should fail")
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("temp cache should be removed after failed run, stat err = %v", err)
	}
}

func TestRunValidation(t *testing.T) {
	t.Run("no_frame_callback", func(t *testing.T) {
		a, err := New(Config{Name: "run", CacheRoot: t.TempDir()})
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		if err := a.Run(RunOptions{}); err == nil {
			t.Fatal("run without a frame callback should fail")
		}
	})

	t.Run("initial_frame_out_of_range", func(t *testing.T) {
		a, _ := newTestAnimator(t, 3)
		a.draw = func(frame int, dst *ebiten.Image) {}
		if err := a.Run(RunOptions{InitialFrame: 3}); err == nil {
			t.Fatal("out-of-range initial frame should fail")
		}
		if err := a.Run(RunOptions{InitialFrame: -1}); err == nil {
			t.Fatal("negative initial frame should fail")
		}
	})
}
