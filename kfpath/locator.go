package kfpath

// The segment locator maintains the 4-index keyframe window needed for
// local cubic evaluation: window[1] and window[2] bracket the query time,
// window[0] and window[3] are their clamped outer neighbors.
//
// Playback queries advance time in small monotonic steps, so the locator
// keeps a persistent cursor and walks it by at most a few keyframes per
// call. A seek outside the cursor's neighborhood degrades to a linear
// rescan, which is what the cursor saves in the common case.

// updateWindowForTime repositions the segment window for a query time.
// Callers guarantee at least one keyframe. Boundary policy: times before
// the first keyframe clamp to the first segment, times at or after the
// last keyframe clamp to the last; evaluation there degenerates to the
// boundary keyframe's exact transform.
func (ip *Interpolator) updateWindowForTime(time float64) {
	n := len(ip.keyframes)
	lo := 0
	if ip.windowValid {
		// walk the cursor from its previous position, either direction
		lo = ip.window[1]
		for lo > 0 && ip.keyframes[lo].t > time {
			lo--
		}
	}
	for lo < n-1 && ip.keyframes[lo+1].t <= time {
		lo++
	}
	window := [4]int{max(lo-1, 0), lo, min(lo+1, n-1), min(lo+2, n-1)}
	if window != ip.window {
		ip.splineValid = false
		tracer().Debugf("segment window moved to %v for t=%g", window, time)
	}
	ip.window = window
	ip.windowValid = true
}

// updateSplineCache recomputes the Hermite coefficients of the current
// segment, in horner form: p(u) = p1 + u*(sv0 + u*(sv1 + u*sv2)) with u
// the normalized local parameter. The per-keyframe velocity tangents are
// scaled by the segment duration here, completing the non-uniform
// parametrization.
func (ip *Interpolator) updateSplineCache() {
	k1 := ip.keyframes[ip.window[1]]
	k2 := ip.keyframes[ip.window[2]]
	delta := k2.p.Sub(k1.p)
	dt := k2.t - k1.t
	h1 := k1.tgP.Scale(dt)
	h2 := k2.tgP.Scale(dt)
	ip.sv0 = h1
	ip.sv1 = delta.Scale(3).Sub(h1.Scale(2)).Sub(h2)
	ip.sv2 = h1.Add(h2).Sub(delta.Scale(2))
	ip.splineValid = true
}
