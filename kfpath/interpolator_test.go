package kfpath

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/motion"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"gonum.org/v1/gonum/spatial/r3"
)

// The three-keyframe test path: (0,0,0) @ 0, (2,1,0) @ 1, (4,0,0) @ 2,
// identity orientation throughout.
func testpath() *Interpolator {
	ip := New(nil)
	ip.AddKeyFrame(motion.NewFrame(motion.V(0, 0, 0), motion.Identity))
	ip.AddKeyFrame(motion.NewFrame(motion.V(2, 1, 0), motion.Identity))
	ip.AddKeyFrame(motion.NewFrame(motion.V(4, 0, 0), motion.Identity))
	return ip
}

func mustInterpolateAt(t *testing.T, ip *Interpolator, time float64) (r3.Vec, motion.Rotation) {
	t.Helper()
	pos, rot, err := ip.InterpolateAt(time)
	if err != nil {
		t.Fatalf("InterpolateAt(%g) failed: %v", time, err)
	}
	return pos, rot
}

func TestAddKeyFrameDefaultTimes(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ip := testpath()
	if ip.Count() != 3 {
		t.Fatalf("Expected 3 keyframes, got %d", ip.Count())
	}
	for i := 0; i < ip.Count(); i++ {
		kt, err := ip.KeyFrameTime(i)
		if err != nil {
			t.Fatalf("KeyFrameTime(%d) failed: %v", i, err)
		}
		if kt != float64(i) {
			t.Errorf("Expected auto time %d for keyframe %d, got %g", i, i, kt)
		}
	}
	if ip.FirstTime() != 0 || ip.LastTime() != 2 || ip.Duration() != 2 {
		t.Errorf("Unexpected time range: first %g, last %g, duration %g",
			ip.FirstTime(), ip.LastTime(), ip.Duration())
	}
}

func TestAddKeyFrameAtRejectsNonMonotonicTime(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ip := testpath()
	err := ip.AddKeyFrameAt(motion.NewFrame(motion.V(9, 9, 9), motion.Identity), 2.0)
	if !errors.Is(err, ErrNonMonotonicTime) {
		t.Fatalf("Expected ErrNonMonotonicTime for equal time, got %v", err)
	}
	err = ip.AddKeyFrameAt(motion.NewFrame(motion.V(9, 9, 9), motion.Identity), 1.5)
	if !errors.Is(err, ErrNonMonotonicTime) {
		t.Fatalf("Expected ErrNonMonotonicTime for decreasing time, got %v", err)
	}
	if ip.Count() != 3 {
		t.Errorf("Expected the path to be unchanged after refused adds, has %d keyframes", ip.Count())
	}
}

func TestKeyFrameAccessorsOutOfRange(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ip := testpath()
	if _, err := ip.KeyFrameAt(3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange for index 3, got %v", err)
	}
	if _, err := ip.KeyFrameAt(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange for index -1, got %v", err)
	}
	if _, err := ip.KeyFrameTime(7); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange for index 7, got %v", err)
	}
	fr, err := ip.KeyFrameAt(1)
	if err != nil {
		t.Fatalf("KeyFrameAt(1) failed: %v", err)
	}
	if !motion.VEqual(fr.Position(), motion.V(2, 1, 0)) {
		t.Errorf("Expected keyframe 1 at (2,1,0), got %v", fr.Position())
	}
}

func TestEvaluateEmptyPathFails(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	driven := motion.NewFrame(motion.V(7, 7, 7), motion.Identity)
	ip := New(&driven)
	_, _, err := ip.InterpolateAt(0)
	if !errors.Is(err, ErrNoKeyFrames) {
		t.Fatalf("Expected ErrNoKeyFrames, got %v", err)
	}
	if !motion.VEqual(driven.Position(), motion.V(7, 7, 7)) {
		t.Errorf("Expected the driven frame to be untouched after a failed evaluation")
	}
}

func TestEndpointExactness(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ip := testpath()
	want := []r3.Vec{motion.V(0, 0, 0), motion.V(2, 1, 0), motion.V(4, 0, 0)}
	for j, w := range want {
		kt, _ := ip.KeyFrameTime(j)
		pos, rot := mustInterpolateAt(t, ip, kt)
		if !motion.VEqual(pos, w) {
			t.Errorf("Expected exact keyframe position %v at t=%g, got %v", w, kt, pos)
		}
		if !rot.Equal(motion.Identity) {
			t.Errorf("Expected exact keyframe orientation at t=%g, got %s", kt, rot)
		}
	}
}

func TestMidSegmentStaysInConvexRegion(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ip := testpath()
	pos, _ := mustInterpolateAt(t, ip, 0.5)
	if pos.X <= 0 || pos.X >= 2 {
		t.Errorf("Expected x strictly between keyframes 0 and 1, got %g", pos.X)
	}
	if pos.Y <= 0 || pos.Y >= 1 {
		t.Errorf("Expected y strictly between keyframes 0 and 1, got %g", pos.Y)
	}
	// for this symmetric configuration the value is known in closed form
	if !motion.VEqual(pos, motion.V(1, 0.625, 0)) {
		t.Errorf("Expected (1,0.625,0) at t=0.5, got %v", pos)
	}
}

func TestSingleKeyFrameDegeneracy(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ip := New(nil)
	rot := motion.R(motion.V(0, 0, 1), 0.7)
	if err := ip.AddKeyFrameAt(motion.NewFrame(motion.V(1, 2, 3), rot), 5.0); err != nil {
		t.Fatalf("AddKeyFrameAt failed: %v", err)
	}
	for _, time := range []float64{-10, 0, 5, 42} {
		pos, got := mustInterpolateAt(t, ip, time)
		if !motion.VEqual(pos, motion.V(1, 2, 3)) {
			t.Errorf("Expected the single keyframe's position at t=%g, got %v", time, pos)
		}
		if !got.Equal(rot) {
			t.Errorf("Expected the single keyframe's orientation at t=%g, got %s", time, got)
		}
	}
	if ip.Duration() != 0 {
		t.Errorf("Expected duration 0 for a single keyframe, got %g", ip.Duration())
	}
}

func TestClampAtBoundaries(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ip := testpath()
	before, _ := mustInterpolateAt(t, ip, ip.FirstTime()-0.125)
	first, _ := mustInterpolateAt(t, ip, ip.FirstTime())
	if !motion.VEqual(before, first) {
		t.Errorf("Expected clamped evaluation before firstTime, got %v vs %v", before, first)
	}
	after, _ := mustInterpolateAt(t, ip, ip.LastTime()+0.125)
	last, _ := mustInterpolateAt(t, ip, ip.LastTime())
	if !motion.VEqual(after, last) {
		t.Errorf("Expected clamped evaluation after lastTime, got %v vs %v", after, last)
	}
}

func TestQuaternionUnitInvariant(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ip := New(nil)
	ip.AddKeyFrame(motion.NewFrame(motion.V(0, 0, 0), motion.R(motion.V(1, 0, 0), 0.4)))
	ip.AddKeyFrame(motion.NewFrame(motion.V(1, 1, 0), motion.R(motion.V(0, 1, 0), 1.9)))
	ip.AddKeyFrame(motion.NewFrame(motion.V(2, 0, 1), motion.R(motion.V(1, 1, 1), 2.8)))
	ip.AddKeyFrame(motion.NewFrame(motion.V(3, 2, 2), motion.R(motion.V(0, 0, 1), -1.2)))
	for time := -0.5; time <= 3.5; time += 0.25 {
		_, rot := mustInterpolateAt(t, ip, time)
		if !motion.Is1(rot.Norm()) {
			t.Errorf("Expected unit quaternion at t=%g, norm is %.9g", time, rot.Norm())
		}
	}
}

func TestShortestArcFlipCorrection(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ip := New(nil)
	target := motion.R(motion.V(0, 0, 1), 0.2)
	ip.AddKeyFrame(motion.NewFrame(motion.V(0, 0, 0), motion.Identity))
	// antipodal representation of a small rotation: without flip
	// correction, interpolation would swing 180° through the sphere
	ip.AddKeyFrame(motion.NewFrame(motion.V(1, 0, 0), target.Flipped()))
	_, mid := mustInterpolateAt(t, ip, 0.5)
	want := motion.R(motion.V(0, 0, 1), 0.1)
	if !mid.Equal(want) {
		t.Errorf("Expected the halfway orientation on the short arc %s, got %s", want, mid)
	}
}

func TestDrivenFrameWriteAndSwap(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	driven := motion.NewFrame(motion.VOrigin, motion.Identity)
	ip := testpath()
	ip.SetFrame(&driven)
	mustInterpolateAt(t, ip, 1)
	if !motion.VEqual(driven.Position(), motion.V(2, 1, 0)) {
		t.Errorf("Expected the driven frame at keyframe 1, got %v", driven.Position())
	}
	other := motion.NewFrame(motion.VOrigin, motion.Identity)
	ip.SetFrame(&other)
	mustInterpolateAt(t, ip, 2)
	if !motion.VEqual(other.Position(), motion.V(4, 0, 0)) {
		t.Errorf("Expected the swapped-in frame at keyframe 2, got %v", other.Position())
	}
	if !motion.VEqual(driven.Position(), motion.V(2, 1, 0)) {
		t.Errorf("Expected the swapped-out frame to be left alone, got %v", driven.Position())
	}
	ip.SetFrame(nil) // evaluation without a driven frame stays legal
	mustInterpolateAt(t, ip, 0)
}

func TestLiveKeyFrameRefresh(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := motion.NewFrame(motion.V(0, 0, 0), motion.Identity)
	b := motion.NewFrame(motion.V(2, 0, 0), motion.Identity)
	ip := New(nil)
	if err := ip.AddKeyFrameRef(&a); err != nil {
		t.Fatalf("AddKeyFrameRef failed: %v", err)
	}
	if err := ip.AddKeyFrameRef(&b); err != nil {
		t.Fatalf("AddKeyFrameRef failed: %v", err)
	}
	pos, _ := mustInterpolateAt(t, ip, 1)
	if !motion.VEqual(pos, motion.V(2, 0, 0)) {
		t.Fatalf("Expected endpoint (2,0,0) before moving the source, got %v", pos)
	}
	b.SetPosition(motion.V(4, 0, 0)) // path must follow the live frame
	pos, _ = mustInterpolateAt(t, ip, 1)
	if !motion.VEqual(pos, motion.V(4, 0, 0)) {
		t.Errorf("Expected the path to follow the moved source to (4,0,0), got %v", pos)
	}
}

func TestAddKeyFrameRefRejectsNil(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ip := New(nil)
	if err := ip.AddKeyFrameRef(nil); !errors.Is(err, ErrNilFrame) {
		t.Errorf("Expected ErrNilFrame, got %v", err)
	}
}

func TestDeleteAllKeyFramesThenReAdd(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ip := testpath()
	ip.SetTime(1.5)
	ip.DeleteAllKeyFrames()
	if ip.Count() != 0 || ip.Duration() != 0 || ip.Time() != 0 {
		t.Fatalf("Expected an empty, reset path after delete")
	}
	ip.DeleteAllKeyFrames() // idempotent on empty
	ip.AddKeyFrame(motion.NewFrame(motion.V(5, 5, 5), motion.Identity))
	if ip.Duration() != 0 {
		t.Errorf("Expected duration 0 after re-adding one keyframe, got %g", ip.Duration())
	}
	pos, _ := mustInterpolateAt(t, ip, 99)
	if !motion.VEqual(pos, motion.V(5, 5, 5)) {
		t.Errorf("Expected single-keyframe degeneracy after re-add, got %v", pos)
	}
}

func TestSampledPath(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ip := testpath()
	path, err := ip.SampledPath(10)
	if err != nil {
		t.Fatalf("SampledPath failed: %v", err)
	}
	if len(path) != 2*10+1 {
		t.Fatalf("Expected 21 sampled frames for 2 segments à 10 steps, got %d", len(path))
	}
	if !motion.VEqual(path[0].Position(), motion.V(0, 0, 0)) {
		t.Errorf("Expected the sampled path to start at the first keyframe, got %v", path[0].Position())
	}
	if !motion.VEqual(path[len(path)-1].Position(), motion.V(4, 0, 0)) {
		t.Errorf("Expected the sampled path to end at the last keyframe, got %v",
			path[len(path)-1].Position())
	}
	for i := 1; i < len(path); i++ {
		step := math.Abs(path[i].Position().X - path[i-1].Position().X)
		if step > 1 {
			t.Errorf("Unexpected jump in sampled path at %d: %g", i, step)
		}
	}
}

func TestSampledPathEmptyAndSingle(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ip := New(nil)
	if _, err := ip.SampledPath(0); !errors.Is(err, ErrNoKeyFrames) {
		t.Errorf("Expected ErrNoKeyFrames for an empty path, got %v", err)
	}
	ip.AddKeyFrame(motion.NewFrame(motion.V(1, 1, 1), motion.Identity))
	path, err := ip.SampledPath(0)
	if err != nil {
		t.Fatalf("SampledPath failed: %v", err)
	}
	if len(path) != 1 || !motion.VEqual(path[0].Position(), motion.V(1, 1, 1)) {
		t.Errorf("Expected a one-frame path for a single keyframe, got %d frames", len(path))
	}
}

func TestSegmentWindowCursorFollowsTime(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ip := testpath()
	mustInterpolateAt(t, ip, 0.25)
	if ip.window != [4]int{0, 0, 1, 2} {
		t.Errorf("Unexpected window for t=0.25: %v", ip.window)
	}
	mustInterpolateAt(t, ip, 1.25) // small monotonic advance
	if ip.window != [4]int{0, 1, 2, 2} {
		t.Errorf("Unexpected window for t=1.25: %v", ip.window)
	}
	mustInterpolateAt(t, ip, 0.25) // seek backwards
	if ip.window != [4]int{0, 0, 1, 2} {
		t.Errorf("Unexpected window after backward seek: %v", ip.window)
	}
	mustInterpolateAt(t, ip, 99) // clamped past the end
	if ip.window != [4]int{1, 2, 2, 2} {
		t.Errorf("Unexpected window past lastTime: %v", ip.window)
	}
}
