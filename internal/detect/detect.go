// Package detect runs the detection capability over a directory of images
// and collects one detection group per image.
package detect

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"

	"github.com/ayusman/shelfscan/internal/logging"
	"github.com/ayusman/shelfscan/internal/model"
)

// ImageDetections groups the objects detected in a single image,
// keyed by the image's filename.
type ImageDetections struct {
	ImageName  string
	Detections []model.Detection
}

// DetectionError reports a decode or inference failure. It aborts the
// whole batch; there is no per-image isolation.
type DetectionError struct {
	ImageName string
	Err       error
}

func (e *DetectionError) Error() string {
	if e.ImageName == "" {
		return fmt.Sprintf("detect: %v", e.Err)
	}
	return fmt.Sprintf("detect %s: %v", e.ImageName, e.Err)
}

func (e *DetectionError) Unwrap() error { return e.Err }

// Run enumerates every .jpg file directly under dir (enumeration order is
// not guaranteed stable across platforms), decodes each and invokes the
// detector, returning one group per image. An empty or image-free
// directory yields an empty result and no error.
func Run(detector model.Detector, dir string, log *logging.Logger) ([]ImageDetections, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &DetectionError{Err: err}
	}

	groups := []ImageDetections{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".jpg") {
			continue
		}

		group, err := detectOne(detector, dir, entry.Name())
		if err != nil {
			return nil, err
		}

		log.Info("detected %d objects in %s", len(group.Detections), group.ImageName)
		groups = append(groups, group)
	}

	return groups, nil
}

func detectOne(detector model.Detector, dir, name string) (ImageDetections, error) {
	img := gocv.IMRead(filepath.Join(dir, name), gocv.IMReadColor)
	defer img.Close()

	if img.Empty() {
		return ImageDetections{}, &DetectionError{ImageName: name, Err: fmt.Errorf("unreadable or corrupt image")}
	}

	detections, err := detector.Detect(img)
	if err != nil {
		return ImageDetections{}, &DetectionError{ImageName: name, Err: err}
	}

	return ImageDetections{ImageName: name, Detections: detections}, nil
}
