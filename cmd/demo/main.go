package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/animator"
)

// scene produces frames for the animator and reacts to canvas clicks.
type scene interface {
	Frames() int
	Draw(frame int, dst *ebiten.Image)
	Click(ev animator.ClickEvent)
}

func main() {
	name := flag.String("name", "", "cache name under .prerendered/ (empty for a temp cache)")
	frames := flag.Int("frames", 60, "number of frames in the animation")
	sceneName := flag.String("scene", "colors", "scene to show: colors, physics, or script")
	scriptPath := flag.String("script", "", "tengo script path (scene=script)")
	configPath := flag.String("config", "", "optional YAML config file")
	clear := flag.Bool("clear", false, "clear the cache before starting")
	live := flag.Bool("live", false, "start in live mode instead of cached")
	frame := flag.Int("frame", 0, "initial frame")
	watch := flag.Bool("watch", false, "watch the cache directory for external changes")
	flag.Parse()

	if *frames < 1 {
		log.Fatal("frames must be >= 1")
	}

	cfg := animator.Config{
		Name:       *name,
		Title:      "animator demo",
		WatchCache: *watch,
	}
	if *configPath != "" {
		loaded, err := animator.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
		if cfg.Name == "" {
			cfg.Name = *name
		}
	}

	a, err := animator.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	var s scene
	switch *sceneName {
	case "colors":
		s = newColorScene(*frames)
	case "physics":
		s = newPhysicsScene(*frames)
	case "script":
		if *scriptPath == "" {
			log.Fatal("scene=script requires -script")
		}
		s, err = newScriptScene(*scriptPath, *frames)
		if err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatalf("unknown scene %q", *sceneName)
	}

	a.SetFrameCallback(s.Draw, s.Frames())
	a.SetClickCallback(s.Click)

	err = a.Run(animator.RunOptions{
		Clear:        *clear,
		Prerendered:  !*live,
		InitialFrame: *frame,
	})
	if err != nil {
		log.Fatal(err)
	}
}
