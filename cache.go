package animator

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

// DefaultCacheRoot is the base directory for named frame caches.
const DefaultCacheRoot = ".prerendered"

// FrameCache is a directory holding one PNG per frame index. A named cache
// lives under the cache root and survives across runs; an unnamed cache is a
// private temp directory removed by the owner on shutdown.
type FrameCache struct {
	dir  string
	temp bool
}

// OpenFrameCache resolves the cache directory for name. An empty name
// allocates a temp directory; otherwise the directory is <root>/<name>,
// created if missing so re-running with the same name reuses a prior cache.
func OpenFrameCache(root, name string) (*FrameCache, error) {
	if name == "" {
		dir, err := os.MkdirTemp("", "animator-")
		if err != nil {
			return nil, fmt.Errorf("create temp cache dir: %w", err)
		}
		return &FrameCache{dir: dir, temp: true}, nil
	}
	if root == "" {
		root = DefaultCacheRoot
	}
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
	}
	return &FrameCache{dir: dir}, nil
}

// Dir returns the cache directory path.
func (c *FrameCache) Dir() string { return c.dir }

// Temp reports whether the cache lives in a throwaway temp directory.
func (c *FrameCache) Temp() bool { return c.temp }

// FramePath returns the on-disk path for a frame index.
func (c *FrameCache) FramePath(frame int) string {
	return filepath.Join(c.dir, strconv.Itoa(frame)+".png")
}

// Count returns the number of files currently in the cache directory.
func (c *FrameCache) Count() (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, fmt.Errorf("read cache dir %s: %w", c.dir, err)
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() {
			n++
		}
	}
	return n, nil
}

// Empty reports whether the cache directory holds no files. A non-empty
// directory is treated as fully rendered; partial contents are not detected.
func (c *FrameCache) Empty() (bool, error) {
	n, err := c.Count()
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// Render populates the cache by invoking render for every index in order and
// writing each result as <index>.png. It short-circuits when the directory is
// already non-empty. Rendering is synchronous; an error aborts the remaining
// frames and leaves whatever was written so far in place.
func (c *FrameCache) Render(frames int, render func(frame int) (image.Image, error)) error {
	empty, err := c.Empty()
	if err != nil {
		return err
	}
	if !empty {
		n, _ := c.Count()
		if n != frames {
			log.Printf("cache %s holds %d files for %d frames; skipping prerender anyway", c.dir, n, frames)
		}
		return nil
	}
	log.Printf("prerendering %d frames into %s", frames, c.dir)
	for i := 0; i < frames; i++ {
		log.Printf("rendering frame %d/%d", i+1, frames)
		img, err := render(i)
		if err != nil {
			return fmt.Errorf("render frame %d: %w", i, err)
		}
		if err := c.save(i, img); err != nil {
			return err
		}
	}
	return nil
}

func (c *FrameCache) save(frame int, img image.Image) error {
	f, err := os.Create(c.FramePath(frame))
	if err != nil {
		return fmt.Errorf("create frame file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode frame %d: %w", frame, err)
	}
	return f.Close()
}

// Load decodes the cached image for a frame index. A missing file is a hard
// error; stale or partial caches are not detected proactively.
func (c *FrameCache) Load(frame int) (image.Image, error) {
	f, err := os.Open(c.FramePath(frame))
	if err != nil {
		return nil, fmt.Errorf("open cached frame %d: %w", frame, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode cached frame %d: %w", frame, err)
	}
	return img, nil
}

// Clear removes every file in the cache directory, non-recursively, leaving
// the directory itself in place.
func (c *FrameCache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("read cache dir %s: %w", c.dir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil {
			return fmt.Errorf("remove %s: %w", e.Name(), err)
		}
	}
	return nil
}

// Remove deletes the cache directory and its contents. Only meaningful for
// temp caches; named caches are left on disk indefinitely.
func (c *FrameCache) Remove() error {
	return os.RemoveAll(c.dir)
}
