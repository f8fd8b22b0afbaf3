// Package pipeline composes the batch run: fetch images, detect objects,
// persist the results. Stages execute strictly in sequence; the first
// stage error aborts the run and propagates unchanged.
package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/ayusman/shelfscan/internal/detect"
	"github.com/ayusman/shelfscan/internal/fetch"
	"github.com/ayusman/shelfscan/internal/logging"
	"github.com/ayusman/shelfscan/internal/model"
	"github.com/ayusman/shelfscan/internal/store"
)

// Config holds the dependencies of a pipeline run.
type Config struct {
	Store    *store.Store
	Detector model.Detector
	Source   fetch.Source
	ImageDir string
	Log      *logging.Logger
}

// Pipeline runs the fetch-detect-persist sequence over one batch.
type Pipeline struct {
	config Config
}

// New creates a Pipeline with the given configuration.
func New(config Config) *Pipeline {
	return &Pipeline{config: config}
}

// Run executes one batch run. Nothing is written to the store unless
// detection succeeded for the whole image set; the number of rows written
// equals the total number of (image, detection) pairs.
func (p *Pipeline) Run(ctx context.Context) error {
	runID := uuid.NewString()
	log := p.config.Log
	log.Info("run %s: starting batch of %d images", runID, p.config.Source.Len())

	fetcher := fetch.New(p.config.Source, log)
	paths, err := fetcher.Download(ctx, p.config.ImageDir)
	if err != nil {
		return err
	}
	log.Info("run %s: fetched %d images into %s", runID, len(paths), p.config.ImageDir)

	groups, err := detect.Run(p.config.Detector, p.config.ImageDir, log)
	if err != nil {
		return err
	}

	records := flatten(groups)
	if err := p.config.Store.Detections().AppendBatch(records); err != nil {
		return err
	}

	log.Info("run %s: stored %d detections across %d images", runID, len(records), len(groups))
	return nil
}

// flatten turns per-image detection groups into flat store records,
// one per (image, detection) pair.
func flatten(groups []detect.ImageDetections) []store.Detection {
	var records []store.Detection
	for _, group := range groups {
		for _, d := range group.Detections {
			records = append(records, store.Detection{
				ImageName:  group.ImageName,
				Label:      d.Label,
				Confidence: d.Confidence,
				XCenter:    d.Box.XCenter,
				YCenter:    d.Box.YCenter,
				Width:      d.Box.Width,
				Height:     d.Box.Height,
			})
		}
	}
	return records
}
