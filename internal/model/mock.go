package model

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	detections []Detection
	err        error
	calls      int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetDetections sets the detections that will be returned by Detect.
func (m *MockDetector) SetDetections(detections []Detection) {
	m.detections = detections
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Calls returns how many times Detect has been invoked.
func (m *MockDetector) Calls() int {
	return m.calls
}

// Detect returns the pre-configured detections or error.
func (m *MockDetector) Detect(img gocv.Mat) ([]Detection, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.detections, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// CreamJarDetection returns a preset Detection representing a cosmetics jar,
// useful as a fixture in pipeline tests.
func CreamJarDetection() Detection {
	return Detection{
		Label:      "cream jar",
		Confidence: 0.87,
		Box: Box{
			XCenter: 120.5,
			YCenter: 64.0,
			Width:   40.0,
			Height:  30.0,
		},
	}
}
