package model

import (
	"errors"
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"
)

// YOLODetector implements Detector using a yolov5 ONNX export loaded
// through OpenCV's DNN module.
type YOLODetector struct {
	net    gocv.Net
	labels []string
	config Config
}

// NewYOLODetector loads the model weights at modelPath and returns a
// ready-to-use detector. It fails with a *LoadError if the file is
// missing, the network cannot be parsed, or the backend cannot initialize.
func NewYOLODetector(modelPath string, config Config) (*YOLODetector, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, &LoadError{Path: modelPath, Err: err}
	}

	net := gocv.ReadNetFromONNX(modelPath)
	if net.Empty() {
		return nil, &LoadError{Path: modelPath, Err: errors.New("network is empty after load")}
	}

	if err := net.SetPreferableBackend(gocv.NetBackendDefault); err != nil {
		net.Close()
		return nil, &LoadError{Path: modelPath, Err: err}
	}
	if err := net.SetPreferableTarget(gocv.NetTargetCPU); err != nil {
		net.Close()
		return nil, &LoadError{Path: modelPath, Err: err}
	}

	return &YOLODetector{
		net:    net,
		labels: cocoLabels,
		config: config,
	}, nil
}

// Detect runs inference over a decoded image and returns the surviving
// detections after confidence filtering and non-maximum suppression.
// Box coordinates are in the network's input scale.
func (d *YOLODetector) Detect(img gocv.Mat) ([]Detection, error) {
	if img.Empty() {
		return nil, errors.New("input image is empty")
	}

	size := image.Pt(d.config.InputSize, d.config.InputSize)
	blob := gocv.BlobFromImage(img, 1.0/255.0, size, gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")

	output := d.net.Forward("")
	defer output.Close()

	data, err := output.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("read network output: %w", err)
	}

	candidates, err := decodePredictions(data, d.labels, float32(d.config.ConfThreshold))
	if err != nil {
		return nil, err
	}

	return suppressOverlaps(candidates, d.config), nil
}

// Close releases the underlying network.
func (d *YOLODetector) Close() error {
	return d.net.Close()
}

// decodePredictions turns the raw row-major network output into detection
// candidates. Each row is (cx, cy, w, h, objectness, class scores...); a
// row's confidence is objectness times its best class score. The output
// shape is validated so a malformed model surfaces as an error instead of
// silently misaligned records.
func decodePredictions(data []float32, labels []string, confThreshold float32) ([]Detection, error) {
	stride := 5 + len(labels)
	if len(data) == 0 || len(data)%stride != 0 {
		return nil, fmt.Errorf("unexpected output shape: %d values is not a multiple of %d", len(data), stride)
	}

	var detections []Detection
	for row := 0; row < len(data); row += stride {
		objectness := data[row+4]

		bestClass := 0
		bestScore := float32(0)
		for c, score := range data[row+5 : row+stride] {
			if score > bestScore {
				bestScore = score
				bestClass = c
			}
		}

		confidence := objectness * bestScore
		if confidence < confThreshold {
			continue
		}

		detections = append(detections, Detection{
			Label:      labels[bestClass],
			Confidence: float64(confidence),
			Box: Box{
				XCenter: float64(data[row]),
				YCenter: float64(data[row+1]),
				Width:   float64(data[row+2]),
				Height:  float64(data[row+3]),
			},
		})
	}

	return detections, nil
}

// suppressOverlaps applies non-maximum suppression and returns the kept
// detections in the order OpenCV ranks them.
func suppressOverlaps(candidates []Detection, config Config) []Detection {
	if len(candidates) == 0 {
		return nil
	}

	rects := make([]image.Rectangle, len(candidates))
	scores := make([]float32, len(candidates))
	for i, c := range candidates {
		x := int(c.Box.XCenter - c.Box.Width/2)
		y := int(c.Box.YCenter - c.Box.Height/2)
		rects[i] = image.Rect(x, y, x+int(c.Box.Width), y+int(c.Box.Height))
		scores[i] = float32(c.Confidence)
	}

	indices := gocv.NMSBoxes(rects, scores, float32(config.ConfThreshold), float32(config.NMSThreshold))

	kept := make([]Detection, 0, len(indices))
	for _, idx := range indices {
		kept = append(kept, candidates[idx])
	}
	return kept
}
