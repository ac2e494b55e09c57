package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/gogpu/gg"

	"github.com/iburimskiy/phorma/internal/config"
	"github.com/iburimskiy/phorma/internal/controller"
	"github.com/iburimskiy/phorma/internal/export"
	"github.com/iburimskiy/phorma/internal/game"
)

func main() {
	var (
		cfgPath = flag.String("config", "", "TOML settings file, reloaded on change")
		svgOut  = flag.String("svg", "", "render headless and write an SVG to this file")
		pngOut  = flag.String("png", "", "render headless and write a PNG to this file")
		width   = flag.Int("width", config.WindowWidth, "viewport width the canvas is derived from")
		height  = flag.Int("height", config.WindowHeight, "viewport height the canvas is derived from")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	gg.SetLogger(log)

	headless := *svgOut != "" || *pngOut != ""
	cfg, err := loadConfig(log, *cfgPath, !headless)
	if err != nil {
		log.Error("load config", "err", err)
		os.Exit(1)
	}

	w, h := config.CanvasSize(*width, *height)
	ctl := controller.New(log, cfg, w, h)

	if headless {
		if err := renderHeadless(ctl, *svgOut, *pngOut); err != nil {
			log.Error("render", "err", err)
			os.Exit(1)
		}
		log.Info("done", "status", ctl.Status())
		return
	}

	var opts []game.Option
	if *cfgPath != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		updates := make(chan config.Config, 1)
		go func() {
			if err := config.Watch(ctx, *cfgPath, updates, log); err != nil {
				log.Warn("config watch stopped", "err", err)
			}
		}()
		opts = append(opts, game.WithUpdates(updates), game.WithConfigPath(*cfgPath))
	}

	if err := game.Run(game.New(log, ctl, opts...)); err != nil {
		log.Error("run", "err", err)
		os.Exit(1)
	}
}

// loadConfig returns the defaults when no path is given. In window mode a
// missing file is created so it can be edited while the program runs.
func loadConfig(log *slog.Logger, path string, create bool) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if !create || !errors.Is(err, fs.ErrNotExist) {
		return cfg, err
	}
	if err := config.Save(path, cfg); err != nil {
		return cfg, err
	}
	log.Info("wrote default config", "path", path)
	return cfg, nil
}

func renderHeadless(ctl *controller.Controller, svgPath, pngPath string) error {
	if err := ctl.State().Err; err != nil {
		return err
	}
	if svgPath != "" {
		if err := export.ToFile(svgPath, ctl.ExportSVG); err != nil {
			return err
		}
	}
	if pngPath != "" {
		img, err := ctl.RasterImage()
		if err != nil {
			return err
		}
		err = export.ToFile(pngPath, func(w io.Writer) error {
			return export.WritePNG(w, img)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
