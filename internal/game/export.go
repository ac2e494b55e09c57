package game

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/phorma/internal/config"
	"github.com/iburimskiy/phorma/internal/export"
)

// askSavePath opens a native save dialog. An empty path means the user
// cancelled.
func askSavePath(title, name, filter string) (string, error) {
	path, err := zenity.SelectFileSave(
		zenity.Title(title),
		zenity.Filename(name),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     filter,
			Patterns: []string{"*" + filepath.Ext(name)},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", fmt.Errorf("save dialog: %w", err)
	}
	return path, nil
}

func (g *Game) exportSVG() (string, error) {
	path, err := askSavePath("Export SVG", config.ExportSVGName, "SVG image")
	if err != nil || path == "" {
		return "", err
	}
	if err := export.ToFile(path, g.ctl.ExportSVG); err != nil {
		return "", err
	}
	return "Exported " + filepath.Base(path), nil
}

func (g *Game) exportPNG() (string, error) {
	img, err := g.snapshot()
	if err != nil {
		return "", err
	}
	path, err := askSavePath("Export PNG", config.ExportPNGName, "PNG image")
	if err != nil || path == "" {
		return "", err
	}
	err = export.ToFile(path, func(w io.Writer) error {
		return export.WritePNG(w, img)
	})
	if err != nil {
		return "", err
	}
	return "Exported " + filepath.Base(path), nil
}
