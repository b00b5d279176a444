package player

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// PreparePoster scales the poster image down to fit the display resolution
// and writes the result next to the source as <name>.prepared.png. Images
// that already fit are never upscaled. Returns the prepared file's path.
func PreparePoster(srcPath string, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("player: poster dimensions %dx%d invalid", width, height)
	}

	img, err := imaging.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("player: open poster: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > width || bounds.Dy() > height {
		img = imaging.Fit(img, width, height, imaging.Lanczos)
		img = imaging.Sharpen(img, 0.5)
	}

	out := preparedPosterPath(srcPath)
	if err := imaging.Save(img, out); err != nil {
		return "", fmt.Errorf("player: save prepared poster: %w", err)
	}
	return out, nil
}

// preparedPosterPath derives the output path for a prepared poster.
func preparedPosterPath(srcPath string) string {
	base := strings.TrimSuffix(srcPath, filepath.Ext(srcPath))
	return base + ".prepared.png"
}
