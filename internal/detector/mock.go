package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandPose
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the poses that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandPose) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured poses or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandPose, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Preset poses below are laid out on a right hand seen palm-forward:
// wrist near the bottom of the frame, fingers pointing up (y decreases
// toward the fingertips). The coordinates are tuned so the extension
// predicates in the gesture package agree with the pose names.

// FistPose returns a preset HandPose with all fingers curled.
func FistPose() HandPose {
	pose := HandPose{
		Points:     make([]Point3D, NumLandmarks),
		Handedness: "Right",
		Score:      0.95,
	}

	pose.Points[Wrist] = Point3D{X: 0.50, Y: 0.90, Z: 0.0}

	// Thumb folded across the palm
	pose.Points[ThumbCMC] = Point3D{X: 0.58, Y: 0.80, Z: 0.0}
	pose.Points[ThumbMCP] = Point3D{X: 0.60, Y: 0.75, Z: 0.0}
	pose.Points[ThumbIP] = Point3D{X: 0.64, Y: 0.70, Z: -0.01}
	pose.Points[ThumbTip] = Point3D{X: 0.61, Y: 0.72, Z: -0.02}

	curlFinger(&pose, IndexMCP, 0.56)
	curlFinger(&pose, MiddleMCP, 0.52)
	curlFinger(&pose, RingMCP, 0.48)
	curlFinger(&pose, PinkyMCP, 0.44)

	return pose
}

// OpenHandPose returns a preset HandPose with all five fingers extended.
func OpenHandPose() HandPose {
	pose := HandPose{
		Points:     make([]Point3D, NumLandmarks),
		Handedness: "Right",
		Score:      0.95,
	}

	pose.Points[Wrist] = Point3D{X: 0.50, Y: 0.90, Z: 0.0}

	// Thumb extended to the side
	pose.Points[ThumbCMC] = Point3D{X: 0.58, Y: 0.80, Z: 0.0}
	pose.Points[ThumbMCP] = Point3D{X: 0.60, Y: 0.75, Z: 0.0}
	pose.Points[ThumbIP] = Point3D{X: 0.65, Y: 0.68, Z: 0.01}
	pose.Points[ThumbTip] = Point3D{X: 0.70, Y: 0.62, Z: 0.01}

	extendFinger(&pose, IndexMCP, 0.56)
	extendFinger(&pose, MiddleMCP, 0.52)
	extendFinger(&pose, RingMCP, 0.48)
	extendFinger(&pose, PinkyMCP, 0.44)

	return pose
}

// PointingPose returns a preset HandPose with only the index extended.
func PointingPose() HandPose {
	pose := FistPose()
	extendFinger(&pose, IndexMCP, 0.56)
	return pose
}

// extendFinger lays a straightened finger as a vertical column at x,
// starting from the MCP landmark index.
func extendFinger(pose *HandPose, mcp int, x float64) {
	pose.Points[mcp] = Point3D{X: x, Y: 0.70, Z: 0.0}
	pose.Points[mcp+1] = Point3D{X: x, Y: 0.60, Z: 0.0}
	pose.Points[mcp+2] = Point3D{X: x, Y: 0.52, Z: 0.0}
	pose.Points[mcp+3] = Point3D{X: x, Y: 0.44, Z: 0.0}
}

// curlFinger lays a folded finger at x: the tip curls back past the MCP.
func curlFinger(pose *HandPose, mcp int, x float64) {
	pose.Points[mcp] = Point3D{X: x, Y: 0.70, Z: 0.0}
	pose.Points[mcp+1] = Point3D{X: x, Y: 0.64, Z: -0.02}
	pose.Points[mcp+2] = Point3D{X: x, Y: 0.68, Z: -0.03}
	pose.Points[mcp+3] = Point3D{X: x, Y: 0.72, Z: -0.02}
}
