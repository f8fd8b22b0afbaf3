// Package model provides the object-detection capability used by the
// batch pipeline: an interface over a trained model plus the YOLO
// implementation backed by OpenCV's DNN module.
package model

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Detector defines the interface for object-detection implementations.
type Detector interface {
	// Detect analyzes a decoded image and returns the objects found in it.
	// Returns an empty slice if nothing is detected.
	Detect(img gocv.Mat) ([]Detection, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Box is a bounding box in the model's native output scale. No unit
// conversion is applied; coordinates are recorded as the model reports them.
type Box struct {
	XCenter float64
	YCenter float64
	Width   float64
	Height  float64
}

// Detection is a single object found in a single image.
type Detection struct {
	Label      string
	Confidence float64
	Box        Box
}

// Config holds configuration options for detection.
type Config struct {
	// ConfThreshold is the minimum confidence for a detection to be kept (0.0-1.0).
	ConfThreshold float64

	// NMSThreshold is the IoU threshold for non-maximum suppression (0.0-1.0).
	NMSThreshold float64

	// InputSize is the square side length the network expects, in pixels.
	InputSize int
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		ConfThreshold: 0.25,
		NMSThreshold:  0.45,
		InputSize:     640,
	}
}

// LoadError reports a failure to load or initialize the detection model.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load model %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
