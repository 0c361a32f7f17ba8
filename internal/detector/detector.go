package detector

import "gocv.io/x/gocv"

// Detector is implemented by hand landmark sources.
type Detector interface {
	// Detect analyzes a video frame and returns the detected hand poses.
	// Returns an empty slice if no hands are visible.
	Detect(frame *gocv.Mat) ([]HandPose, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds detection options passed to the landmark service.
type Config struct {
	// MaxHands is the maximum number of hands to detect.
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with sensible default values. A single
// hand is enough for gesture classification.
func DefaultConfig() Config {
	return Config{
		MaxHands:        1,
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
	}
}
