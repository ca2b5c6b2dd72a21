package kfpath

import "github.com/npillmayer/motion"

// SampledPath returns the path evaluated at a fixed number of samples per
// segment, plus the final keyframe — a densely sampled polyline of frames
// for display purposes (drawing the flight path, axes at intervals, and
// the like). It never affects evaluation correctness.
//
// stepsPerSegment <= 0 selects the default of 30. The returned slice is
// the caller's; the underlying cache is rebuilt lazily whenever the
// keyframe sequence or a tracked live frame has changed, or a different
// sample density is requested.
func (ip *Interpolator) SampledPath(stepsPerSegment int) ([]motion.Frame, error) {
	if len(ip.keyframes) == 0 {
		return nil, ErrNoKeyFrames
	}
	if stepsPerSegment <= 0 {
		stepsPerSegment = defaultPathSteps
	}
	if !ip.pathValid || stepsPerSegment != ip.pathSteps {
		if err := ip.updatePath(stepsPerSegment); err != nil {
			ip.pathValid = false
			return nil, err
		}
	}
	out := make([]motion.Frame, len(ip.path))
	copy(out, ip.path)
	return out, nil
}

// updatePath rebuilds the sampled display path.
func (ip *Interpolator) updatePath(stepsPerSegment int) error {
	n := len(ip.keyframes)
	ip.path = ip.path[:0]
	if !ip.valuesValid {
		ip.updateValues()
	}
	if n == 1 {
		kf := ip.keyframes[0]
		ip.path = append(ip.path, motion.NewFrame(kf.p, kf.q))
	} else {
		for i := 0; i < n-1; i++ {
			t1, t2 := ip.keyframes[i].t, ip.keyframes[i+1].t
			for step := 0; step < stepsPerSegment; step++ {
				t := t1 + float64(step)/float64(stepsPerSegment)*(t2-t1)
				pos, rot, err := ip.evaluate(t)
				if err != nil {
					return err
				}
				ip.path = append(ip.path, motion.NewFrame(pos, rot))
			}
		}
		last := ip.keyframes[n-1]
		ip.path = append(ip.path, motion.NewFrame(last.p, last.q))
	}
	ip.pathSteps = stepsPerSegment
	ip.pathValid = true
	tracer().Debugf("rebuilt path cache: %d sampled frames", len(ip.path))
	return nil
}
