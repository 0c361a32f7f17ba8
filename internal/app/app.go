// Package app provides the main application logic for the Mudra gesture service.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/metrics"
	"github.com/ayusman/mudra/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active detection.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds to wait before switching back to idle mode.
	IdleTimeoutMs = 2000
)

// Publisher receives classification events for broadcast to clients.
type Publisher interface {
	Publish(v any)
}

// Config holds configuration options for the application.
type Config struct {
	Store         *store.Store
	CameraID      int
	MotionThresh  float64
	MinConfidence float64
}

// App orchestrates the capture, detection, and classification pipeline.
type App struct {
	config   Config
	camera   capture.Camera
	motion   *capture.MotionDetector
	detector detector.Detector
	metrics  *metrics.Metrics

	history   *gesture.History
	historyMu sync.Mutex

	publisher Publisher
	onResult  func(gesture.Result)

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	a := &App{
		config:  config,
		camera:  capture.NewCamera(config.CameraID),
		motion:  capture.NewMotionDetector(motionThreshold),
		metrics: metrics.New(),
		history: gesture.NewHistory(),
		enabled: false,
		stopCh:  nil,
	}

	detectorConfig := detector.DefaultConfig()
	if config.MinConfidence > 0 {
		detectorConfig.MinConfidence = config.MinConfidence
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detectorConfig); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables gesture detection.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetPublisher sets the event publisher for classification broadcasts.
func (a *App) SetPublisher(p Publisher) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.publisher = p
}

// SetOnResult registers a callback invoked for every classification with a
// recognized label. The callback runs on the pipeline goroutine and must
// return quickly.
func (a *App) SetOnResult(fn func(gesture.Result)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onResult = fn
}

// Recent returns up to n recent high-confidence results, most recent first.
func (a *App) Recent(n int) []gesture.Result {
	a.historyMu.Lock()
	defer a.historyMu.Unlock()
	return a.history.Recent(n)
}

// recordResult offers the result to the history buffer and reports whether
// it was accepted.
func (a *App) recordResult(r gesture.Result) bool {
	a.historyMu.Lock()
	defer a.historyMu.Unlock()
	return a.history.Record(r)
}

// Start begins the detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Detection pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Metrics returns the pipeline metrics collectors.
func (a *App) Metrics() *metrics.Metrics {
	return a.metrics
}

// publisherSnapshot returns the current publisher and result callback.
func (a *App) publisherSnapshot() (Publisher, func(gesture.Result)) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.publisher, a.onResult
}

// ProcessHand runs the rule-based classifier on a detected hand and routes
// the result to the history buffer, metrics, callbacks, and event publisher.
// The pipeline calls this for the first hand of every active frame; other
// frame sources may call it directly.
func (a *App) ProcessHand(hand *detector.HandPose, at time.Time, handCount int) gesture.Result {
	result := gesture.Classify(hand.Points, at)
	a.metrics.Classifications.WithLabelValues(string(result.Label)).Inc()

	if a.recordResult(result) {
		a.metrics.HistoryRecorded.Inc()
	}

	publisher, onResult := a.publisherSnapshot()

	if result.Label != gesture.LabelNone && onResult != nil {
		onResult(result)
	}

	if publisher != nil {
		meta := result.Meta()
		publisher.Publish(classificationEvent{
			Label:      string(result.Label),
			Glyph:      meta.Glyph,
			Name:       meta.Name,
			Confidence: result.Confidence,
			At:         result.At.Format(time.RFC3339Nano),
			Hands:      handCount,
			Handedness: hand.Handedness,
		})
	}

	return result
}

// classificationEvent is the payload broadcast to WebSocket clients for each
// classified frame.
type classificationEvent struct {
	Label      string  `json:"label"`
	Glyph      string  `json:"glyph"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	At         string  `json:"at"`
	Hands      int     `json:"hands"`
	Handedness string  `json:"handedness,omitempty"`
}
