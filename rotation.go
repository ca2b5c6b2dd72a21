package motion

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// === Rotation Data Type ====================================================

// Rotation is a 3D orientation, represented as a unit quaternion. The zero
// value is not a valid rotation; use Identity or one of the constructors.
//
// Conventions follow the usual (x,y,z,w) layout: the vector part is
// (Imag,Jmag,Kmag) and w is the real part.
type Rotation quat.Number

// Identity is the rotation that maps every vector onto itself.
var Identity = Rotation{Real: 1}

// Q returns a Rotation as a gonum quaternion.
func (rot Rotation) Q() quat.Number {
	return quat.Number(rot)
}

// Q2R returns a Rotation from a gonum quaternion.
func Q2R(q quat.Number) Rotation {
	if quat.IsNaN(q) || quat.IsInf(q) {
		tracer().Errorf("created rotation from quaternion NaN/Inf")
		return Identity
	}
	return Rotation(q)
}

// R is a quick notation for constructing a rotation from an axis and an
// angle (counterclockwise, in radians). The axis need not be normalized.
// A zero axis yields the identity rotation.
func R(axis r3.Vec, theta float64) Rotation {
	n := r3.Norm(axis)
	if Is0(n) {
		tracer().Errorf("created rotation for zero axis")
		return Identity
	}
	s := math.Sin(theta/2) / n
	return Rotation{
		Real: math.Cos(theta / 2),
		Imag: axis.X * s,
		Jmag: axis.Y * s,
		Kmag: axis.Z * s,
	}
}

// Pretty Stringer for rotations.
func (rot Rotation) String() string {
	return fmt.Sprintf("(%g,%g,%g|%g)", rot.Imag, rot.Jmag, rot.Kmag, rot.Real)
}

// X is the x-part (i-component) of the rotation quaternion.
func (rot Rotation) X() float64 { return rot.Imag }

// Y is the y-part (j-component) of the rotation quaternion.
func (rot Rotation) Y() float64 { return rot.Jmag }

// Z is the z-part (k-component) of the rotation quaternion.
func (rot Rotation) Z() float64 { return rot.Kmag }

// W is the real part of the rotation quaternion.
func (rot Rotation) W() float64 { return rot.Real }

// Norm returns the quaternion magnitude. Valid rotations have norm 1.
func (rot Rotation) Norm() float64 {
	return quat.Abs(rot.Q())
}

// Normalized returns rot scaled to unit magnitude. A (numerically) zero
// quaternion normalizes to the identity.
func (rot Rotation) Normalized() Rotation {
	n := rot.Norm()
	if Is0(n) {
		return Identity
	}
	return Rotation(quat.Scale(1/n, rot.Q()))
}

// Mul composes two rotations: the result rotates by rot2 first, then by rot.
func (rot Rotation) Mul(rot2 Rotation) Rotation {
	return Rotation(quat.Mul(rot.Q(), rot2.Q()))
}

// Inverse returns the rotation undoing rot.
func (rot Rotation) Inverse() Rotation {
	return Rotation(quat.Inv(rot.Q()))
}

// Flipped returns the antipodal quaternion -rot, which represents the same
// rotation.
func (rot Rotation) Flipped() Rotation {
	return Rotation(quat.Scale(-1, rot.Q()))
}

// Dot returns the 4-component dot product of two rotation quaternions.
// A negative dot product indicates the two lie on opposite hemispheres,
// i.e. interpolating between them takes the long way around.
func (rot Rotation) Dot(rot2 Rotation) float64 {
	return rot.Real*rot2.Real + rot.Imag*rot2.Imag + rot.Jmag*rot2.Jmag + rot.Kmag*rot2.Kmag
}

// Equal compares two rotations, up to ε. Antipodal quaternions represent
// the same rotation and compare equal.
func (rot Rotation) Equal(rot2 Rotation) bool {
	return Is1(math.Abs(rot.Dot(rot2)))
}

// Rotate applies the rotation to a vector.
func (rot Rotation) Rotate(v r3.Vec) r3.Vec {
	vq := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	w := quat.Mul(quat.Mul(rot.Q(), vq), quat.Conj(rot.Q()))
	return V(w.Imag, w.Jmag, w.Kmag)
}

// AxisAngle returns an axis and angle (in radians, within 0..2π)
// reproducing the rotation. The identity yields a zero axis.
func (rot Rotation) AxisAngle() (r3.Vec, float64) {
	q := rot.Normalized()
	s := math.Sqrt(1 - q.Real*q.Real)
	theta := 2 * math.Acos(math.Min(1, math.Max(-1, q.Real)))
	if Is0(s) {
		return VOrigin, 0
	}
	return V(q.Imag/s, q.Jmag/s, q.Kmag/s), theta
}

// === Spherical Interpolation ===============================================

// Slerp interpolates on the unit sphere between rot (t=0) and rot2 (t=1).
// No shortest-arc correction is applied: if rot and rot2 lie on opposite
// hemispheres the interpolation takes the long way around. Callers wanting
// shortest-arc behavior flip one operand first (see Dot and Flipped).
func (rot Rotation) Slerp(rot2 Rotation, t float64) Rotation {
	rel := quat.Mul(quat.Inv(rot.Q()), rot2.Q())
	return Rotation(quat.Mul(rot.Q(), quat.Exp(quat.Scale(t, quat.Log(rel)))))
}

// SquadTangent computes the tangent quaternion at cur, derived from the
// logs of the relative rotations towards its path neighbors prev and next.
// It is used as an inner control point for spherical cubic interpolation
// (see Squad). For a boundary keyframe, pass cur itself as the missing
// neighbor.
func SquadTangent(prev, cur, next Rotation) Rotation {
	inv := quat.Inv(cur.Q())
	l1 := quat.Log(quat.Mul(inv, next.Q()))
	l2 := quat.Log(quat.Mul(inv, prev.Q()))
	e := quat.Scale(-0.25, quat.Add(l1, l2))
	return Rotation(quat.Mul(cur.Q(), quat.Exp(e)))
}

// Squad performs spherical cubic interpolation between rot1 (t=0) and
// rot2 (t=1) with inner control quaternions a and b (usually computed by
// SquadTangent):
//
//	squad(q1,a,b,q2,t) = slerp( slerp(q1,q2,t), slerp(a,b,t), 2t(1-t) )
//
// The result is not normalized; interpolation loops should normalize
// after every blend to preserve the unit invariant.
func Squad(rot1, a, b, rot2 Rotation, t float64) Rotation {
	outer := rot1.Slerp(rot2, t)
	inner := a.Slerp(b, t)
	return outer.Slerp(inner, 2*t*(1-t))
}
