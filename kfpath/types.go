package kfpath

import (
	"errors"

	"github.com/npillmayer/motion"
	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r3"
)

// tracer writes to trace with key 'motion.kfpath'
func tracer() tracing.Trace {
	return tracing.Select("motion.kfpath")
}

// Default tick period in milliseconds, matching a 25 Hz update rate.
const defaultPeriod = 40

// Default number of sampled frames per segment in the display path cache.
const defaultPathSteps = 30

var (
	// ErrNoKeyFrames indicates an evaluation or playback request on an empty path.
	ErrNoKeyFrames = errors.New("path has no keyframes")
	// ErrIndexOutOfRange indicates a keyframe index outside 0..Count()-1.
	ErrIndexOutOfRange = errors.New("keyframe index out of range")
	// ErrNonMonotonicTime indicates a keyframe time not greater than the last stored time.
	ErrNonMonotonicTime = errors.New("keyframe times must be strictly increasing")
	// ErrInvalidPeriod indicates a non-positive interpolation period.
	ErrInvalidPeriod = errors.New("interpolation period must be positive")
	// ErrNilFrame indicates a nil frame reference.
	ErrNilFrame = errors.New("frame reference must not be nil")
	// ErrNotRunning indicates a tick delivered to a stopped interpolator.
	ErrNotRunning = errors.New("interpolation is not running")
)

// A KeyFrame is one control point of a path: a transform snapshot tagged
// with a time. Tangents are derived by the interpolator, not supplied by
// callers (see computeTangents).
type KeyFrame struct {
	p     r3.Vec          // position
	q     motion.Rotation // orientation
	tgP   r3.Vec          // positional tangent: velocity, position units per second
	tgQ   motion.Rotation // orientation tangent quaternion (squad inner control point)
	t     float64         // keyframe time, seconds
	frame *motion.Frame   // optional live source, non-owning; may be nil
}

// Position returns the keyframe's (last sampled) position.
func (kf *KeyFrame) Position() r3.Vec {
	return kf.p
}

// Orientation returns the keyframe's (last sampled) orientation.
func (kf *KeyFrame) Orientation() motion.Rotation {
	return kf.q
}

// Time returns the keyframe's time tag, in seconds.
func (kf *KeyFrame) Time() float64 {
	return kf.t
}

// TickResult reports what a playback tick did, so that callers can react
// to path ends without registering callbacks.
type TickResult int

const (
	// TickAdvanced: time advanced and the path was evaluated, nothing special.
	TickAdvanced TickResult = iota
	// TickEndReached: this tick crossed a path boundary. Playback either
	// stopped or, with looping enabled, wrapped around.
	TickEndReached
	// TickStopped: the tick was refused, see the accompanying error.
	TickStopped
)

func (tr TickResult) String() string {
	switch tr {
	case TickAdvanced:
		return "advanced"
	case TickEndReached:
		return "end-reached"
	case TickStopped:
		return "stopped"
	}
	return "unknown"
}

// An Interpolator holds keyframes defining a path, and drives a frame of
// the caller's application along it over time. See the package documentation
// for the full contract.
//
// Interpolators are not safe for concurrent use; all mutation and
// evaluation is expected on one goroutine (typically the host's event or
// render loop).
type Interpolator struct {
	keyframes []*KeyFrame
	frame     *motion.Frame // driven frame, non-owning; may be nil

	// rhythm
	period  int     // tick period, milliseconds
	time    float64 // current interpolation time, seconds
	speed   float64 // time multiplier per tick; negative plays in reverse
	loop    bool
	closed  bool // placeholder: closed-path continuity is not implemented
	running bool

	// current segment window: 4 keyframe indices, time lies between
	// window[1] and window[2]
	window [4]int

	// Hermite coefficients of the current segment (horner form)
	sv0, sv1, sv2 r3.Vec

	// cached sampled path, for display purposes only
	path      []motion.Frame
	pathSteps int

	// cache-validity flags; each guards a distinct derived artifact
	valuesValid bool // keyframe values refreshed and tangents computed
	pathValid   bool // sampled display path current
	windowValid bool // current segment window brackets the current time
	splineValid bool // Hermite coefficients match the current window

	// observers
	interpolated []func()
	endReached   []func()
}

// New creates an interpolator driving the given frame. The frame may be
// nil; evaluation results are then only observable through return values
// and callbacks. The path starts out empty; use the AddKeyFrame variants
// to define it.
func New(frame *motion.Frame) *Interpolator {
	return &Interpolator{
		frame:  frame,
		period: defaultPeriod,
		speed:  1.0,
	}
}

// invalidate clears every derived-data flag. Called on store mutations.
func (ip *Interpolator) invalidate() {
	ip.valuesValid = false
	ip.pathValid = false
	ip.windowValid = false
	ip.splineValid = false
}

// invalidateValues clears the flags guarding data derived from keyframe
// values. Registered as the modified-hook on live keyframe sources: a moved
// source changes values and tangents but not keyframe times, so the segment
// window stays valid.
func (ip *Interpolator) invalidateValues() {
	ip.valuesValid = false
	ip.pathValid = false
	ip.splineValid = false
}
