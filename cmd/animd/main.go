// animd is the animation daemon. It drives a humanoid rig with the
// bundled clips and serves playback control, pose queries, and a
// websocket frame stream over HTTP.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BlackRoad-Interactive/blackroad-animation-controller/internal/config"
	"github.com/BlackRoad-Interactive/blackroad-animation-controller/internal/log"
	"github.com/BlackRoad-Interactive/blackroad-animation-controller/pkg/animator"
	"github.com/BlackRoad-Interactive/blackroad-animation-controller/pkg/clip"
	"github.com/BlackRoad-Interactive/blackroad-animation-controller/pkg/preset"
	"github.com/BlackRoad-Interactive/blackroad-animation-controller/pkg/web"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadDaemon(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "animd: %v\n", err)
		os.Exit(1)
	}
	log.Init(cfg.LogLevel)

	skeleton, err := preset.Humanoid()
	if err != nil {
		log.Error("failed to build skeleton", "error", err)
		os.Exit(1)
	}
	anim := animator.New(skeleton, preset.Clips()...)

	// Bundled example clips ship alongside the generated cycles.
	embedded, err := preset.LoadAllEmbedded()
	if err != nil {
		log.Error("failed to load embedded clips", "error", err)
		os.Exit(1)
	}
	for _, c := range embedded {
		anim.AddClip(c)
	}

	srv := web.NewServer(anim, web.Options{
		Addr:         cfg.ListenAddr,
		TickInterval: cfg.TickInterval(),
	})

	if cfg.ClipDir != "" {
		if err := loadClipDir(anim, cfg.ClipDir); err != nil {
			log.Error("failed to load clip directory", "dir", cfg.ClipDir, "error", err)
			os.Exit(1)
		}
		watcher, err := watchClips(srv, cfg.ClipDir)
		if err != nil {
			log.Error("failed to watch clip directory", "dir", cfg.ClipDir, "error", err)
			os.Exit(1)
		}
		defer watcher.Close()
	}

	if cfg.InitialClip != "" {
		if err := anim.Play(cfg.InitialClip); err != nil {
			log.Warn("initial clip not available", "clip", cfg.InitialClip, "error", err)
		}
	}

	// Graceful shutdown on Ctrl+C.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("shutting down")
		srv.Shutdown()
	}()

	log.Info("starting animation daemon",
		"addr", cfg.ListenAddr,
		"tick", cfg.TickInterval(),
		"clips", len(anim.ClipNames()),
		"initial_clip", cfg.InitialClip,
	)
	if err := srv.Start(); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// loadClipDir registers every clip JSON file found in dir.
func loadClipDir(anim *animator.Animator, dir string) error {
	clips, err := clip.LoadDirectory(dir)
	if err != nil {
		return err
	}
	for _, c := range clips {
		anim.AddClip(c)
	}
	log.Info("loaded clip directory", "dir", dir, "clips", len(clips))
	return nil
}

// watchClips hot-reloads clip files when they change on disk. Deleted
// clips stay registered until the daemon restarts; only reloadable
// changes take effect.
func watchClips(srv *web.Server, dir string) (*clip.Watcher, error) {
	w, err := clip.NewWatcher(dir)
	if err != nil {
		return nil, err
	}

	go func() {
		for {
			select {
			case path, ok := <-w.Events:
				if !ok {
					return
				}
				c, err := clip.LoadFile(path)
				if err != nil {
					log.Warn("failed to reload clip", "path", path, "error", err)
					continue
				}
				srv.AddClip(c)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("clip watcher error", "error", err)
			}
		}
	}()
	return w, nil
}
