// Package imagetest provides synthetic image fixtures for tests.
package imagetest

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// JPEGBytes returns an encoded JPEG of the given size. A contrasting block
// is pasted in so the image is not a flat color.
func JPEGBytes(width, height int) ([]byte, error) {
	img := imaging.New(width, height, color.NRGBA{R: 200, G: 200, B: 200, A: 255})

	block := imaging.New(width/4, height/4, color.NRGBA{R: 30, G: 60, B: 120, A: 255})
	img = imaging.Paste(img, block, image.Pt(width/4, height/4))

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG); err != nil {
		return nil, fmt.Errorf("encode fixture jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteJPEG writes a synthetic JPEG to path.
func WriteJPEG(path string, width, height int) error {
	data, err := JPEGBytes(width, height)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// PopulateImageDir writes n synthetic images named image_{i}.jpg into dir
// and returns their paths. The directory is created if absent.
func PopulateImageDir(dir string, n int) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, n)
	for i := 0; i < n; i++ {
		path := filepath.Join(dir, fmt.Sprintf("image_%d.jpg", i))
		if err := WriteJPEG(path, 64, 48); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
