// Package kfpath animates a frame along a smooth path defined by
// time-tagged keyframes.
/*

An Interpolator holds keyframes (that define a path) and a pointer to a
Frame of your application, which it drives over time: a caller supplies N
keyframes (position, orientation, time) and the engine produces a
continuously varying transform as a function of time, suitable for
sampling once per animation tick. Typical uses are scripted camera flights
and object motion.

Positions are interpolated with a Catmull-Rom/Hermite cubic whose tangents
respect the actual time intervals between keyframes (non-uniform
parametrization), so unevenly spaced keyframes do not cause overshoot.
Orientations are interpolated with the spherical cubic (squad), the
quaternion analogue of the Hermite cubic, with tangent quaternions derived
from the logs of the relative rotations between neighbors. Antipodal
quaternion representations are reconciled front-to-back before tangents are
computed, so interpolation always takes the shortest arc.

Usage

Build a path from frame snapshots, then either play it back tick by tick
or sample it at arbitrary times:

   driven := motion.NewFrame(motion.VOrigin, motion.Identity)
   ip := kfpath.New(&driven)
   ip.AddKeyFrame(motion.NewFrame(motion.V(1, 0, 0), motion.Identity))
   ip.AddKeyFrame(motion.NewFrame(motion.V(2, 1, 0), motion.Identity))
   ip.OnInterpolated(func() { redraw() })
   if err := ip.Start(); err != nil { ... }

The host arranges for ip.Tick() to be called every ip.Period()
milliseconds while ip.Running() — the engine holds no timer of its own.
Each tick advances the interpolation time by Period()*Speed() and updates
the driven frame. Time advances by the fixed logical step regardless of
wall-clock jitter, which keeps the number of ticks over a full playback
constant (useful for movie capture or benchmarking).

Sampling without playback works through InterpolateAt:

   for t := ip.FirstTime(); t <= ip.LastTime(); t += 0.04 {
       pos, rot, err := ip.InterpolateAt(t)
       ...
   }

Keyframes added without an explicit time are placed one second apart.
Explicit times must be strictly increasing; violating times are refused
with ErrNonMonotonicTime. A keyframe added by reference (AddKeyFrameRef)
tracks its source frame: the path follows later modifications of the
frame, with all derived data recomputed lazily on the next evaluation.

Derived data — keyframe tangents, the current segment window, the Hermite
coefficients of the current segment, and the sampled display path — is
cached under independent validity flags and recomputed at most once per
batch of mutations.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package kfpath
