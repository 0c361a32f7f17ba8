package gesture

import (
	"math"
	"time"

	"github.com/ayusman/mudra/internal/detector"
)

// Geometric thresholds used by the classification rules. Distances are in
// normalized image coordinates, angles in degrees.
const (
	// FingerStraightFactor is the fraction of the folded joint-chain length
	// the tip-to-base distance must exceed for a finger to count as extended.
	FingerStraightFactor = 0.8
	// ThumbStraightFactor is the equivalent factor for the thumb, whose
	// kinematic chain differs from the other fingers.
	ThumbStraightFactor = 1.2
	// PinchMaxDist is the maximum thumb-index tip distance for an OK sign.
	PinchMaxDist = 0.06
	// SpreadMinDist is the minimum thumb-index tip distance for a finger gun.
	SpreadMinDist = 0.08
	// LShapeMinAngle and LShapeMaxAngle bound the thumb/index vector angle
	// for an L shape.
	LShapeMinAngle = 70.0
	LShapeMaxAngle = 110.0
)

// Result is a single classification outcome. It is immutable once produced:
// the same landmarks and timestamp always yield the same Result.
type Result struct {
	Label      Label     `json:"label"`
	Confidence float64   `json:"confidence"`
	At         time.Time `json:"at"`
}

// Meta returns the display metadata for the result's label.
func (r Result) Meta() Meta {
	return r.Label.Metadata()
}

// features holds the geometric measurements the rule table is evaluated
// against. All of them are derived from the 21 landmarks of one pose.
type features struct {
	thumb, index, middle, ring, pinky bool

	thumbIndexDist  float64
	thumbMiddleDist float64
	gapIndexMiddle  float64
	gapMiddleRing   float64
	gapRingPinky    float64

	// thumbIndexAngle is the angle in degrees between the thumb vector
	// (tip minus base) and the index vector (tip minus base). NaN when
	// either vector is degenerate.
	thumbIndexAngle float64

	thumbPointsDown bool
}

// rule pairs a predicate with the label and fixed confidence it produces.
// Confidence is a constant per rule, not a measured certainty.
type rule struct {
	label      Label
	confidence float64
	match      func(f *features) bool
}

// rules is the ordered decision table. Evaluation is first-match-wins, so
// earlier rules take priority over later, more general ones. The table
// deliberately preserves the ordering of the original heuristics, including
// rules shadowed by earlier ones (thumbs_down behind fist, one behind
// pointing, two behind peace); see DESIGN.md before reordering anything.
var rules = []rule{
	{LabelFist, 0.95, func(f *features) bool {
		return !f.thumb && !f.index && !f.middle && !f.ring && !f.pinky
	}},
	{LabelOpenHand, 0.95, func(f *features) bool {
		return f.thumb && f.index && f.middle && f.ring && f.pinky
	}},
	{LabelThumbsUp, 0.90, func(f *features) bool {
		return f.thumb && !f.index && !f.middle && !f.ring && !f.pinky
	}},
	{LabelThumbsDown, 0.85, func(f *features) bool {
		return !f.thumb && !f.index && !f.middle && !f.ring && !f.pinky && f.thumbPointsDown
	}},
	{LabelPointing, 0.90, func(f *features) bool {
		return !f.thumb && f.index && !f.middle && !f.ring && !f.pinky
	}},
	{LabelPeace, 0.90, func(f *features) bool {
		return !f.thumb && f.index && f.middle && !f.ring && !f.pinky
	}},
	{LabelOK, 0.90, func(f *features) bool {
		return f.thumb && f.index && !f.middle && !f.ring && !f.pinky &&
			f.thumbIndexDist < PinchMaxDist
	}},
	{LabelRockOn, 0.90, func(f *features) bool {
		return !f.thumb && f.index && !f.middle && !f.ring && f.pinky
	}},
	{LabelCallMe, 0.85, func(f *features) bool {
		return f.thumb && !f.index && !f.middle && !f.ring && f.pinky
	}},
	{LabelGun, 0.80, func(f *features) bool {
		return f.thumb && f.index && !f.middle && !f.ring && !f.pinky &&
			f.thumbIndexDist > SpreadMinDist
	}},
	{LabelSpock, 0.85, func(f *features) bool {
		return !f.thumb && f.index && f.middle && f.ring && f.pinky &&
			f.gapMiddleRing > f.gapIndexMiddle && f.gapMiddleRing > f.gapRingPinky
	}},
	{LabelLShape, 0.80, func(f *features) bool {
		return f.thumb && f.index && !f.middle && !f.ring && !f.pinky &&
			f.thumbIndexAngle > LShapeMinAngle && f.thumbIndexAngle < LShapeMaxAngle
	}},
	{LabelThree, 0.85, func(f *features) bool {
		return f.thumb && f.index && f.middle && !f.ring && !f.pinky
	}},
	{LabelFour, 0.85, func(f *features) bool {
		return !f.thumb && f.index && f.middle && f.ring && f.pinky
	}},
	{LabelOne, 0.80, func(f *features) bool {
		return !f.thumb && f.index && !f.middle && !f.ring && !f.pinky
	}},
	{LabelTwo, 0.80, func(f *features) bool {
		return !f.thumb && f.index && f.middle && !f.ring && !f.pinky
	}},
}

// unknownConfidence is assigned when a valid pose matches no rule.
const unknownConfidence = 0.60

// Classify maps a 21-landmark hand pose to a gesture label with a fixed
// confidence. The timestamp is supplied by the caller (normally the frame
// time) so the function stays deterministic in its arguments.
//
// Invalid input (wrong landmark count, non-finite coordinates, degenerate
// geometry that breaks feature computation) yields {none, 0} rather than
// an error: a missing or malformed pose is an expected per-frame condition,
// not a failure of the caller's loop.
func Classify(points []detector.Point3D, at time.Time) Result {
	none := Result{Label: LabelNone, Confidence: 0, At: at}

	if len(points) != detector.NumLandmarks {
		return none
	}
	for i := range points {
		if !finite(points[i].X) || !finite(points[i].Y) {
			return none
		}
	}

	f, ok := computeFeatures(points)
	if !ok {
		return none
	}

	for i := range rules {
		if rules[i].match(f) {
			return Result{Label: rules[i].label, Confidence: rules[i].confidence, At: at}
		}
	}

	return Result{Label: LabelUnknown, Confidence: unknownConfidence, At: at}
}

// computeFeatures derives the extension booleans and auxiliary measurements
// for one pose. It returns ok=false when a distance comes out non-finite,
// which downgrades the classification to none at the boundary. The angle is
// allowed to be NaN (degenerate thumb or index vector): it only disables
// the L-shape rule instead of discarding the whole pose.
func computeFeatures(p []detector.Point3D) (*features, bool) {
	f := &features{
		thumb:  thumbExtended(p[detector.ThumbTip], p[detector.ThumbIP], p[detector.ThumbMCP]),
		index:  fingerExtended(p[detector.IndexTip], p[detector.IndexPIP], p[detector.IndexMCP]),
		middle: fingerExtended(p[detector.MiddleTip], p[detector.MiddlePIP], p[detector.MiddleMCP]),
		ring:   fingerExtended(p[detector.RingTip], p[detector.RingPIP], p[detector.RingMCP]),
		pinky:  fingerExtended(p[detector.PinkyTip], p[detector.PinkyPIP], p[detector.PinkyMCP]),

		thumbIndexDist:  planarDist(p[detector.ThumbTip], p[detector.IndexTip]),
		thumbMiddleDist: planarDist(p[detector.ThumbTip], p[detector.MiddleTip]),
		gapIndexMiddle:  planarDist(p[detector.IndexTip], p[detector.MiddleTip]),
		gapMiddleRing:   planarDist(p[detector.MiddleTip], p[detector.RingTip]),
		gapRingPinky:    planarDist(p[detector.RingTip], p[detector.PinkyTip]),

		// Normalized image coordinates grow downward, so a thumb tip below
		// its base has the larger Y.
		thumbPointsDown: p[detector.ThumbTip].Y > p[detector.ThumbMCP].Y,
	}

	f.thumbIndexAngle = vectorAngleDeg(
		p[detector.ThumbTip], p[detector.ThumbMCP],
		p[detector.IndexTip], p[detector.IndexMCP],
	)

	if !finite(f.thumbIndexDist) || !finite(f.thumbMiddleDist) ||
		!finite(f.gapIndexMiddle) || !finite(f.gapMiddleRing) || !finite(f.gapRingPinky) {
		return nil, false
	}

	return f, true
}

// fingerExtended reports whether a finger is straightened: the tip-to-base
// distance must be close to the length of the folded path through the
// middle joint.
func fingerExtended(tip, mid, base detector.Point3D) bool {
	return planarDist(tip, base) > FingerStraightFactor*(planarDist(tip, mid)+planarDist(mid, base))
}

// thumbExtended is the thumb variant of the extension test. The thumb's
// joint chain is shorter, so it compares tip-to-base against the
// mid-to-base distance instead.
func thumbExtended(tip, mid, base detector.Point3D) bool {
	return planarDist(tip, base) > ThumbStraightFactor*planarDist(mid, base)
}

// planarDist is the Euclidean distance in the x,y plane. The z coordinate
// carries depth from the landmark model and is ignored throughout.
func planarDist(a, b detector.Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// vectorAngleDeg returns the angle in degrees between the vectors
// (aTip - aBase) and (bTip - bBase), via the dot-product formula.
// Returns NaN when either vector has zero length.
func vectorAngleDeg(aTip, aBase, bTip, bBase detector.Point3D) float64 {
	ax := aTip.X - aBase.X
	ay := aTip.Y - aBase.Y
	bx := bTip.X - bBase.X
	by := bTip.Y - bBase.Y

	normProduct := math.Sqrt(ax*ax+ay*ay) * math.Sqrt(bx*bx+by*by)
	if normProduct == 0 {
		return math.NaN()
	}

	cos := (ax*bx + ay*by) / normProduct
	// Clamp against floating-point drift before the arc cosine.
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}

	return math.Acos(cos) * 180 / math.Pi
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
