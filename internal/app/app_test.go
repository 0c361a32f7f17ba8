package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/store"
)

// capturingPublisher records every published event.
type capturingPublisher struct {
	events []any
}

func (p *capturingPublisher) Publish(v any) {
	p.events = append(p.events, v)
}

func newTestApp(t *testing.T) *App {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping test that requires GoCV")
	}

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	a := New(Config{
		Store:        s,
		CameraID:     -1,
		MotionThresh: 0.05,
	})
	a.SetDetector(detector.NewMockDetector())
	t.Cleanup(a.Stop)

	return a
}

func TestApp_EnableDisable(t *testing.T) {
	a := newTestApp(t)

	if a.IsEnabled() {
		t.Error("detection should be disabled initially")
	}

	a.SetEnabled(true)
	if !a.IsEnabled() {
		t.Error("detection should be enabled after SetEnabled(true)")
	}

	a.SetEnabled(false)
	if a.IsEnabled() {
		t.Error("detection should be disabled after SetEnabled(false)")
	}
}

func TestApp_ClassifyHand_RecognizedGesture(t *testing.T) {
	a := newTestApp(t)

	publisher := &capturingPublisher{}
	a.SetPublisher(publisher)

	var callbackResults []gesture.Result
	a.SetOnResult(func(r gesture.Result) {
		callbackResults = append(callbackResults, r)
	})

	pose := detector.FistPose()
	at := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	result := a.ProcessHand(&pose, at, 1)

	if result.Label != gesture.LabelFist {
		t.Fatalf("Label = %s, want %s", result.Label, gesture.LabelFist)
	}
	if !result.At.Equal(at) {
		t.Errorf("At = %v, want %v", result.At, at)
	}

	// High-confidence result lands in the history.
	recent := a.Recent(1)
	if len(recent) != 1 || recent[0].Label != gesture.LabelFist {
		t.Errorf("Recent(1) = %v, want single fist entry", recent)
	}

	// Callback fires for recognized labels.
	if len(callbackResults) != 1 || callbackResults[0].Label != gesture.LabelFist {
		t.Errorf("callback results = %v, want single fist", callbackResults)
	}

	// Event is broadcast.
	if len(publisher.events) != 1 {
		t.Fatalf("published %d events, want 1", len(publisher.events))
	}
	event, ok := publisher.events[0].(classificationEvent)
	if !ok {
		t.Fatalf("unexpected event type %T", publisher.events[0])
	}
	if event.Label != "fist" || event.Glyph != "✊" || event.Hands != 1 {
		t.Errorf("unexpected event: %+v", event)
	}
}

func TestApp_ClassifyHand_InvalidPose(t *testing.T) {
	a := newTestApp(t)

	publisher := &capturingPublisher{}
	a.SetPublisher(publisher)

	callbackFired := false
	a.SetOnResult(func(gesture.Result) { callbackFired = true })

	pose := detector.HandPose{Points: nil}
	result := a.ProcessHand(&pose, time.Now(), 0)

	if result.Label != gesture.LabelNone {
		t.Errorf("Label = %s, want %s", result.Label, gesture.LabelNone)
	}
	if result.Confidence != 0 {
		t.Errorf("Confidence = %f, want 0", result.Confidence)
	}

	// Zero-confidence results never reach the history or the callback,
	// but the event is still broadcast so clients see the live state.
	if got := a.Recent(1); len(got) != 0 {
		t.Errorf("Recent(1) = %v, want empty", got)
	}
	if callbackFired {
		t.Error("callback should not fire for unrecognized poses")
	}
	if len(publisher.events) != 1 {
		t.Errorf("published %d events, want 1", len(publisher.events))
	}
}

func TestApp_Recent_MostRecentFirst(t *testing.T) {
	a := newTestApp(t)

	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	poses := []detector.HandPose{
		detector.FistPose(),
		detector.OpenHandPose(),
		detector.PointingPose(),
	}
	for i, pose := range poses {
		a.ProcessHand(&pose, base.Add(time.Duration(i)*time.Second), 1)
	}

	recent := a.Recent(3)
	if len(recent) != 3 {
		t.Fatalf("Recent(3) returned %d results", len(recent))
	}

	want := []gesture.Label{gesture.LabelPointing, gesture.LabelOpenHand, gesture.LabelFist}
	for i, label := range want {
		if recent[i].Label != label {
			t.Errorf("recent[%d].Label = %s, want %s", i, recent[i].Label, label)
		}
	}
}

func TestApp_ClassificationMetrics(t *testing.T) {
	a := newTestApp(t)

	pose := detector.OpenHandPose()
	a.ProcessHand(&pose, time.Now(), 1)

	// Counter presence is checked indirectly via a second classification:
	// WithLabelValues must not panic and the history must grow.
	a.ProcessHand(&pose, time.Now().Add(time.Second), 1)

	if got := len(a.Recent(gesture.HistoryCapacity)); got != 2 {
		t.Errorf("history length = %d, want 2", got)
	}
}
