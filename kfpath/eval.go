package kfpath

import (
	"github.com/npillmayer/motion"
	"gonum.org/v1/gonum/spatial/r3"
)

// InterpolateAt sets the interpolation time to the given time (in seconds)
// and evaluates the path there: the result is written into the driven
// frame (if one is set), returned, and announced to the interpolated
// observers. Evaluating an empty path is an error; the driven frame is
// then left untouched.
//
// Times outside FirstTime()..LastTime() clamp to the respective boundary
// keyframe, and a single-keyframe path yields that keyframe's transform
// for all times.
func (ip *Interpolator) InterpolateAt(time float64) (r3.Vec, motion.Rotation, error) {
	pos, rot, err := ip.evaluate(time)
	if err != nil {
		return pos, rot, err
	}
	ip.time = time
	ip.apply(pos, rot)
	return pos, rot, nil
}

// Time returns the current interpolation time, in seconds. It is advanced
// by playback ticks and set directly by InterpolateAt and SetTime.
func (ip *Interpolator) Time() float64 {
	return ip.time
}

// SetTime sets the interpolation time without evaluating the path. The
// driven frame is unaffected; use this to define the starting point of a
// future playback, or InterpolateAt to evaluate immediately.
func (ip *Interpolator) SetTime(time float64) {
	ip.time = time
	ip.windowValid = false
}

// evaluate computes the interpolated transform at a query time. It is the
// read path of the lazy caches: stale tangents, segment window and spline
// coefficients are recomputed here, valid ones are reused.
func (ip *Interpolator) evaluate(time float64) (r3.Vec, motion.Rotation, error) {
	if len(ip.keyframes) == 0 {
		return r3.Vec{}, motion.Identity, ErrNoKeyFrames
	}
	if !ip.valuesValid {
		ip.updateValues()
	}
	ip.updateWindowForTime(time)
	if !ip.splineValid {
		ip.updateSplineCache()
	}
	k1 := ip.keyframes[ip.window[1]]
	k2 := ip.keyframes[ip.window[2]]

	u := 0.0
	if dt := k2.t - k1.t; dt > 0 {
		u = (time - k1.t) / dt
		if u < 0 {
			u = 0
		} else if u > 1 {
			u = 1
		}
	}

	pos := k1.p.Add(ip.sv0.Add(ip.sv1.Add(ip.sv2.Scale(u)).Scale(u)).Scale(u))
	rot := motion.Squad(k1.q, k1.tgQ, k2.tgQ, k2.q, u).Normalized()
	return pos, rot, nil
}

// apply writes an evaluation result into the driven frame and notifies
// the interpolated observers.
func (ip *Interpolator) apply(pos r3.Vec, rot motion.Rotation) {
	if ip.frame != nil {
		ip.frame.Set(pos, rot)
	}
	for _, cb := range ip.interpolated {
		cb()
	}
}

// OnInterpolated registers a callback invoked once per successful
// evaluation, whether from a playback tick or a direct InterpolateAt call.
// Typically used to trigger a display update.
func (ip *Interpolator) OnInterpolated(callback func()) {
	ip.interpolated = append(ip.interpolated, callback)
}

// OnEndReached registers a callback invoked once per path-boundary
// crossing during playback (see Tick).
func (ip *Interpolator) OnEndReached(callback func()) {
	ip.endReached = append(ip.endReached, callback)
}

func (ip *Interpolator) notifyEndReached() {
	for _, cb := range ip.endReached {
		cb()
	}
}
