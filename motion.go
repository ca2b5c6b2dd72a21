/*
Package motion implements rigid-body transforms ("frames") and the
quaternion algebra needed for animating them along smooth paths.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package motion

import (
	"math"

	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r3"
)

// tracer writes to trace with key 'motion'
func tracer() tracing.Trace {
	return tracing.Select("motion")
}

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = 0.01745329251

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Is1 is a predicate: is n = 1.0 ?
func Is1(n float64) bool {
	return math.Abs(1-n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// Round to ε.
func Round(n float64) float64 {
	return math.Round(n/Epsilon) * Epsilon
}

// === Vectors ===============================================================

// Positions and positional tangents are gonum 3-space vectors (r3.Vec).
// This package only adds notational sugar and a couple of predicates.

// V is a quick notation for constructing a 3D vector from floats.
func V(x, y, z float64) r3.Vec {
	return r3.Vec{X: x, Y: y, Z: z}
}

// VOrigin represents the frequently used constant (0,0,0).
var VOrigin = V(0, 0, 0)

// VEqual compares two vectors componentwise, up to ε.
func VEqual(v, w r3.Vec) bool {
	return Is0(v.X-w.X) && Is0(v.Y-w.Y) && Is0(v.Z-w.Z)
}

// VZap rounds all components of v to ε.
func VZap(v r3.Vec) r3.Vec {
	return V(Zap(v.X), Zap(v.Y), Zap(v.Z))
}
