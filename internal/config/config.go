// Package config loads runtime configuration from the environment.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for a single batch run.
type Config struct {
	// ChannelURL is the base URL images are fetched from.
	ChannelURL string
	// ImageDir is the local directory downloaded images are written to.
	ImageDir string
	// BatchSize is the number of images fetched per run.
	BatchSize int
	// ModelPath is the path to the detection model weights (ONNX export).
	ModelPath string
	// DBPath is the path to the SQLite database file.
	DBPath string
	// ConfThreshold is the minimum confidence for a detection to be kept.
	ConfThreshold float64
	// NMSThreshold is the IoU threshold used for non-maximum suppression.
	NMSThreshold float64
}

// Load reads configuration from a .env file (if present) and the
// environment, falling back to defaults for anything unset.
func Load() *Config {
	// A missing .env file is not an error; the environment still applies.
	_ = godotenv.Load()

	return &Config{
		ChannelURL:    getEnv("CHANNEL_URL", "https://t.me/lobelia4cosmetics"),
		ImageDir:      getEnv("IMAGE_DIR", "images"),
		BatchSize:     getEnvAsInt("BATCH_SIZE", 5),
		ModelPath:     getEnv("MODEL_PATH", "yolov5s.onnx"),
		DBPath:        getEnv("DB_PATH", "detections.db"),
		ConfThreshold: getEnvAsFloat("CONF_THRESHOLD", 0.25),
		NMSThreshold:  getEnvAsFloat("NMS_THRESHOLD", 0.45),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
