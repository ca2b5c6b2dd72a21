package motion

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// === Frame Data Type =======================================================

// A Frame is a rigid-body transform: a position plus an orientation.
// Frames are the currency of this module: keyframe paths are built from
// frame snapshots, and an interpolation engine writes its results into a
// "driven" frame owned by the caller.
//
// A Frame used as a value is a plain snapshot. A Frame shared by pointer
// can additionally be observed: every mutation through one of the setters
// notifies the callbacks registered with OnModified. Interpolation engines
// rely on this to invalidate caches when a tracked frame moves.
type Frame struct {
	position    r3.Vec
	orientation Rotation
	modified    []func()
}

// NewFrame creates a frame at the given position and orientation.
func NewFrame(position r3.Vec, orientation Rotation) Frame {
	return Frame{position: position, orientation: orientation.Normalized()}
}

// Pretty Stringer for frames.
func (f Frame) String() string {
	return fmt.Sprintf("[(%g,%g,%g) %s]", f.position.X, f.position.Y, f.position.Z,
		f.orientation)
}

// Position returns the frame's position.
func (f Frame) Position() r3.Vec {
	return f.position
}

// Orientation returns the frame's orientation.
func (f Frame) Orientation() Rotation {
	return f.orientation
}

// SetPosition moves the frame, notifying observers.
func (f *Frame) SetPosition(p r3.Vec) {
	f.position = p
	f.notifyModified()
}

// SetOrientation rotates the frame, notifying observers. The orientation
// is normalized on the way in.
func (f *Frame) SetOrientation(rot Rotation) {
	f.orientation = rot.Normalized()
	f.notifyModified()
}

// Set assigns position and orientation at once, with a single notification.
func (f *Frame) Set(p r3.Vec, rot Rotation) {
	f.position = p
	f.orientation = rot.Normalized()
	f.notifyModified()
}

// OnModified registers a callback to be invoked after every mutation of
// the frame. Callbacks cannot be unregistered; observers which may outlive
// their interest should make their callback cheap and idempotent.
func (f *Frame) OnModified(callback func()) {
	f.modified = append(f.modified, callback)
}

func (f *Frame) notifyModified() {
	for _, cb := range f.modified {
		cb()
	}
}
