package detector

import (
	"errors"
	"testing"
)

func TestHandPose_Complete(t *testing.T) {
	t.Run("nil pose is not complete", func(t *testing.T) {
		var pose *HandPose
		if pose.Complete() {
			t.Error("expected nil pose to be incomplete")
		}
	})

	t.Run("full landmark set is complete", func(t *testing.T) {
		pose := FistPose()
		if !pose.Complete() {
			t.Error("expected preset pose to be complete")
		}
	})

	t.Run("short landmark set is not complete", func(t *testing.T) {
		pose := FistPose()
		pose.Points = pose.Points[:NumLandmarks-1]
		if pose.Complete() {
			t.Error("expected truncated pose to be incomplete")
		}
	})
}

func TestMockDetector(t *testing.T) {
	t.Run("returns empty hands by default", func(t *testing.T) {
		mock := NewMockDetector()

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if hands != nil {
			t.Errorf("expected nil hands, got %v", hands)
		}
	})

	t.Run("returns configured hands", func(t *testing.T) {
		mock := NewMockDetector()

		mock.SetHands([]HandPose{FistPose(), OpenHandPose()})

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(hands) != 2 {
			t.Errorf("expected 2 hands, got %d", len(hands))
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()

		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		hands, err := mock.Detect(nil)

		if err != expectedErr {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if hands != nil {
			t.Errorf("expected nil hands when error is set, got %v", hands)
		}
	})

	t.Run("implements Detector interface", func(t *testing.T) {
		var _ Detector = (*MockDetector)(nil)
	})
}

func TestPresetPoses(t *testing.T) {
	t.Run("fist fingertips curl back past their knuckles", func(t *testing.T) {
		pose := FistPose()

		tips := map[string][2]int{
			"index":  {IndexTip, IndexMCP},
			"middle": {MiddleTip, MiddleMCP},
			"ring":   {RingTip, RingMCP},
			"pinky":  {PinkyTip, PinkyMCP},
		}
		for name, pair := range tips {
			if pose.Points[pair[0]].Y <= pose.Points[pair[1]].Y {
				t.Errorf("%s tip should sit below its MCP in a fist", name)
			}
		}
	})

	t.Run("open hand fingertips rise well above their knuckles", func(t *testing.T) {
		pose := OpenHandPose()

		tips := map[string][2]int{
			"index":  {IndexTip, IndexMCP},
			"middle": {MiddleTip, MiddleMCP},
			"ring":   {RingTip, RingMCP},
			"pinky":  {PinkyTip, PinkyMCP},
		}
		for name, pair := range tips {
			rise := pose.Points[pair[1]].Y - pose.Points[pair[0]].Y
			if rise < 0.2 {
				t.Errorf("%s extension %f too small for an open hand", name, rise)
			}
		}
	})

	t.Run("pointing pose extends only the index", func(t *testing.T) {
		pose := PointingPose()

		if pose.Points[IndexTip].Y >= pose.Points[IndexMCP].Y {
			t.Error("index tip should be above its MCP when pointing")
		}
		if pose.Points[MiddleTip].Y <= pose.Points[MiddleMCP].Y {
			t.Error("middle finger should stay curled when pointing")
		}
	})

	t.Run("presets carry full landmark sets", func(t *testing.T) {
		for name, pose := range map[string]HandPose{
			"fist":      FistPose(),
			"open hand": OpenHandPose(),
			"pointing":  PointingPose(),
		} {
			if len(pose.Points) != NumLandmarks {
				t.Errorf("%s pose has %d landmarks, want %d", name, len(pose.Points), NumLandmarks)
			}
		}
	})
}
