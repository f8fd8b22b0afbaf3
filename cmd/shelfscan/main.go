// Command shelfscan runs one batch of the channel-image detection
// pipeline: load the model, fetch the image batch, detect objects,
// persist the bounding boxes, exit.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ayusman/shelfscan/internal/config"
	"github.com/ayusman/shelfscan/internal/fetch"
	"github.com/ayusman/shelfscan/internal/logging"
	"github.com/ayusman/shelfscan/internal/model"
	"github.com/ayusman/shelfscan/internal/pipeline"
	"github.com/ayusman/shelfscan/internal/store"
)

func main() {
	fmt.Println("Shelfscan - channel image object detection")

	cfg := config.Load()
	log := logging.New(os.Stdout, os.Stderr)

	if err := run(cfg, log); err != nil {
		// Stage errors propagate untouched; this is the single place
		// they are logged.
		log.Error("run failed: %v", err)
		os.Exit(1)
	}

	log.Info("run completed successfully")
}

func run(cfg *config.Config, log *logging.Logger) error {
	detector, err := model.NewYOLODetector(cfg.ModelPath, model.Config{
		ConfThreshold: cfg.ConfThreshold,
		NMSThreshold:  cfg.NMSThreshold,
		InputSize:     model.DefaultConfig().InputSize,
	})
	if err != nil {
		return err
	}
	defer detector.Close()
	log.Info("model loaded from %s", cfg.ModelPath)

	st, err := store.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	p := pipeline.New(pipeline.Config{
		Store:    st,
		Detector: detector,
		Source: &fetch.ChannelSource{
			BaseURL: cfg.ChannelURL,
			Count:   cfg.BatchSize,
		},
		ImageDir: cfg.ImageDir,
		Log:      log,
	})

	return p.Run(context.Background())
}
