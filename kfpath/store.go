package kfpath

import (
	"fmt"

	"github.com/npillmayer/motion"
)

// AddKeyFrame appends a snapshot of fr to the path. The keyframe time is
// one second after the last keyframe's time, or 0 for the first keyframe,
// so appending in order always preserves the monotonic-time invariant.
func (ip *Interpolator) AddKeyFrame(fr motion.Frame) {
	// the auto-incremented time cannot violate monotonicity
	_ = ip.AddKeyFrameAt(fr, ip.nextTime())
}

// AddKeyFrameAt appends a snapshot of fr with an explicit time, in seconds.
// The time must be strictly greater than the last keyframe's time;
// otherwise the path is left unchanged and ErrNonMonotonicTime is returned.
func (ip *Interpolator) AddKeyFrameAt(fr motion.Frame, time float64) error {
	if err := ip.checkMonotonic(time); err != nil {
		return err
	}
	ip.appendKeyFrame(&KeyFrame{
		p: fr.Position(),
		q: fr.Orientation().Normalized(),
		t: time,
	})
	return nil
}

// AddKeyFrameRef appends a keyframe tracking the live frame fr, with an
// auto-incremented time (see AddKeyFrame). The interpolator does not own
// fr; it samples position and orientation from it lazily before each use
// and subscribes to its modified-hook to invalidate derived caches.
func (ip *Interpolator) AddKeyFrameRef(fr *motion.Frame) error {
	return ip.AddKeyFrameRefAt(fr, ip.nextTime())
}

// AddKeyFrameRefAt is AddKeyFrameRef with an explicit time, in seconds.
func (ip *Interpolator) AddKeyFrameRefAt(fr *motion.Frame, time float64) error {
	if fr == nil {
		return ErrNilFrame
	}
	if err := ip.checkMonotonic(time); err != nil {
		return err
	}
	fr.OnModified(ip.invalidateValues)
	ip.appendKeyFrame(&KeyFrame{
		p:     fr.Position(),
		q:     fr.Orientation().Normalized(),
		t:     time,
		frame: fr,
	})
	return nil
}

func (ip *Interpolator) nextTime() float64 {
	if len(ip.keyframes) == 0 {
		return 0
	}
	return ip.keyframes[len(ip.keyframes)-1].t + 1
}

func (ip *Interpolator) checkMonotonic(time float64) error {
	if n := len(ip.keyframes); n > 0 && time <= ip.keyframes[n-1].t {
		return fmt.Errorf("%w: %g after %g", ErrNonMonotonicTime, time, ip.keyframes[n-1].t)
	}
	return nil
}

func (ip *Interpolator) appendKeyFrame(kf *KeyFrame) {
	ip.keyframes = append(ip.keyframes, kf)
	ip.invalidate()
	tracer().Debugf("added keyframe %d at t=%g", len(ip.keyframes)-1, kf.t)
}

// DeleteAllKeyFrames empties the path, resets the interpolation time to 0
// and invalidates all derived data. Playback is stopped. Idempotent on an
// empty path.
//
// Modified-hooks registered on live keyframe sources remain registered;
// they only re-clear already-clear cache flags once the keyframes are gone.
func (ip *Interpolator) DeleteAllKeyFrames() {
	ip.keyframes = nil
	ip.time = 0
	ip.running = false
	ip.invalidate()
}

// Count returns the number of keyframes on the path.
func (ip *Interpolator) Count() int {
	return len(ip.keyframes)
}

// FirstTime returns the time of the first keyframe, in seconds,
// or 0 for an empty path. Callers gate on Count() > 0.
func (ip *Interpolator) FirstTime() float64 {
	if len(ip.keyframes) == 0 {
		return 0
	}
	return ip.keyframes[0].t
}

// LastTime returns the time of the last keyframe, in seconds,
// or 0 for an empty path. Callers gate on Count() > 0.
func (ip *Interpolator) LastTime() float64 {
	if len(ip.keyframes) == 0 {
		return 0
	}
	return ip.keyframes[len(ip.keyframes)-1].t
}

// Duration returns LastTime() - FirstTime().
func (ip *Interpolator) Duration() float64 {
	return ip.LastTime() - ip.FirstTime()
}

// KeyFrameAt returns a frame snapshot of keyframe index (0-based). Values
// of live keyframes are refreshed first.
func (ip *Interpolator) KeyFrameAt(index int) (motion.Frame, error) {
	if index < 0 || index >= len(ip.keyframes) {
		return motion.Frame{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(ip.keyframes))
	}
	if !ip.valuesValid {
		ip.updateValues()
	}
	kf := ip.keyframes[index]
	return motion.NewFrame(kf.p, kf.q), nil
}

// KeyFrameTime returns the time tag of keyframe index, in seconds.
func (ip *Interpolator) KeyFrameTime(index int) (float64, error) {
	if index < 0 || index >= len(ip.keyframes) {
		return 0, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(ip.keyframes))
	}
	return ip.keyframes[index].t, nil
}

// Frame returns the driven frame, or nil if none is set.
func (ip *Interpolator) Frame() *motion.Frame {
	return ip.frame
}

// SetFrame exchanges the driven frame. The keyframe sequence is untouched;
// passing nil detaches the interpolator from any frame.
func (ip *Interpolator) SetFrame(fr *motion.Frame) {
	ip.frame = fr
}
