package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.ImageDir != "images" {
		t.Errorf("ImageDir = %q, want %q", cfg.ImageDir, "images")
	}
	if cfg.BatchSize != 5 {
		t.Errorf("BatchSize = %d, want 5", cfg.BatchSize)
	}
	if cfg.ModelPath != "yolov5s.onnx" {
		t.Errorf("ModelPath = %q, want %q", cfg.ModelPath, "yolov5s.onnx")
	}
	if cfg.DBPath != "detections.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "detections.db")
	}
	if cfg.ConfThreshold != 0.25 {
		t.Errorf("ConfThreshold = %v, want 0.25", cfg.ConfThreshold)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CHANNEL_URL", "http://example.com/feed")
	t.Setenv("BATCH_SIZE", "3")
	t.Setenv("CONF_THRESHOLD", "0.5")

	cfg := Load()

	if cfg.ChannelURL != "http://example.com/feed" {
		t.Errorf("ChannelURL = %q, want override", cfg.ChannelURL)
	}
	if cfg.BatchSize != 3 {
		t.Errorf("BatchSize = %d, want 3", cfg.BatchSize)
	}
	if cfg.ConfThreshold != 0.5 {
		t.Errorf("ConfThreshold = %v, want 0.5", cfg.ConfThreshold)
	}
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("BATCH_SIZE", "many")
	t.Setenv("NMS_THRESHOLD", "high")

	cfg := Load()

	if cfg.BatchSize != 5 {
		t.Errorf("BatchSize = %d, want default 5 for unparseable value", cfg.BatchSize)
	}
	if cfg.NMSThreshold != 0.45 {
		t.Errorf("NMSThreshold = %v, want default 0.45 for unparseable value", cfg.NMSThreshold)
	}
}
