package app

import (
	"log"
	"time"

	"github.com/ayusman/mudra/internal/gesture"
)

// runPipeline is the main detection loop that processes frames from the camera.
// It manages the state transitions between idle and active modes based on motion detection.
//
// Pipeline logic:
// 1. Start in idle mode (IdleFPS=5)
// 2. On motion detected, switch to active mode (ActiveFPS=15)
// 3. Run hand landmark detection
// 4. Classify the first detected hand with the rule-based classifier
// 5. Record high-confidence results into the history buffer
// 6. After 2s no motion, switch back to idle mode
func (a *App) runPipeline(stopCh chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// Skip processing if detection is disabled
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}
			a.metrics.FramesProcessed.Inc()

			// Step 1: Motion detection
			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			detector := a.Detector()

			// Skip further processing if not in active mode or no detector
			if !activeMode || detector == nil {
				frame.Close()
				continue
			}

			// Step 2: Hand detection
			frameTime := time.Now()
			hands, err := detector.Detect(frame)
			frame.Close() // Done with the frame

			if err != nil {
				a.metrics.DetectErrors.Inc()
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			if len(hands) == 0 {
				continue
			}
			a.metrics.HandsDetected.Add(float64(len(hands)))

			// Step 3: Classification. Only the first hand is classified;
			// additional hands are counted but ignored.
			result := a.ProcessHand(&hands[0], frameTime, len(hands))
			if result.Label != gesture.LabelNone && result.Label != gesture.LabelUnknown {
				log.Printf("Gesture classified: %s (confidence: %.2f)", result.Label, result.Confidence)
			}
		}
	}
}
