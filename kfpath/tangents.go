package kfpath

import (
	"github.com/npillmayer/motion"
	"gonum.org/v1/gonum/spatial/r3"
)

// updateValuesFromFrame re-samples position and orientation from the live
// source frame, if the keyframe tracks one.
func (kf *KeyFrame) updateValuesFromFrame() {
	if kf.frame == nil {
		return
	}
	kf.p = kf.frame.Position()
	kf.q = kf.frame.Orientation().Normalized()
}

// flipOrientationIfNeeded replaces the orientation with its antipodal
// quaternion when that is the representation continuous with prev.
// Without this, a pair of neighboring quaternions on opposite hemispheres
// makes the interpolated orientation visibly snap by 180°.
func (kf *KeyFrame) flipOrientationIfNeeded(prev motion.Rotation) {
	if kf.q.Dot(prev) < 0 {
		kf.q = kf.q.Flipped()
	}
}

// computeTangents derives the keyframe's tangents from its path neighbors.
//
// The positional tangent is the Catmull-Rom finite difference
// (next.p - prev.p) / (next.t - prev.t), i.e. a velocity. Scaling by the
// actual time interval (rather than assuming uniform knot spacing) keeps
// unevenly spaced keyframes from causing overshoot. For boundary keyframes
// the caller passes the keyframe itself as the missing neighbor, which
// degrades the rule to the one-sided estimate.
//
// The orientation tangent is the squad inner control point derived from
// the log of the relative rotations towards both neighbors.
func (kf *KeyFrame) computeTangents(prev, next *KeyFrame) {
	dt := next.t - prev.t
	if motion.Is0(dt) {
		kf.tgP = r3.Vec{}
	} else {
		kf.tgP = next.p.Sub(prev.p).Scale(1 / dt)
	}
	kf.tgQ = motion.SquadTangent(prev.q, kf.q, next.q)
}

// updateValues brings all keyframe values and tangents up to date:
// re-samples live sources, runs the front-to-back antipodal flip pass and
// recomputes every tangent. Pure recomputation over the current keyframe
// sequence; runs at most once per batch of mutations (guarded by the
// valuesValid flag).
func (ip *Interpolator) updateValues() {
	n := len(ip.keyframes)
	if n == 0 {
		ip.valuesValid = true
		return
	}
	for _, kf := range ip.keyframes {
		kf.updateValuesFromFrame()
	}
	for i := 1; i < n; i++ {
		ip.keyframes[i].flipOrientationIfNeeded(ip.keyframes[i-1].q)
	}
	for i, kf := range ip.keyframes {
		prev, next := kf, kf
		if i > 0 {
			prev = ip.keyframes[i-1]
		}
		if i < n-1 {
			next = ip.keyframes[i+1]
		}
		kf.computeTangents(prev, next)
	}
	ip.valuesValid = true
	ip.splineValid = false
	tracer().Debugf("recomputed tangents for %d keyframes", n)
}
