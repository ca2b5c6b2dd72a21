package kfpath

import "fmt"

// The playback driver is a two-state machine (stopped / running) fed by a
// host-provided periodic tick. The driver holds no timer and spawns
// nothing: the host arranges for Tick to be called every Period()
// milliseconds while Running() — from a render loop, a time.Ticker, or a
// test calling Tick directly. Logical time advances by a fixed
// Period()*Speed() per tick regardless of wall-clock jitter, so a full
// non-looping playback always takes Duration()/(Period()*|Speed()|) ticks;
// useful for frame-accurate capture.

// Start begins playback from the current interpolation time: the
// interpolator enters the running state and expects Tick calls every
// Period() milliseconds. Starting an already running interpolator re-arms
// it without changing the interpolation time. An empty path refuses to
// start.
func (ip *Interpolator) Start() error {
	if len(ip.keyframes) == 0 {
		return ErrNoKeyFrames
	}
	if ip.period <= 0 {
		return fmt.Errorf("%w: %d ms", ErrInvalidPeriod, ip.period)
	}
	ip.windowValid = false // first tick relocates from the current time
	ip.running = true
	tracer().Debugf("playback started at t=%g, period %d ms", ip.time, ip.period)
	return nil
}

// StartWithPeriod overrides the interpolation period (in milliseconds)
// and starts playback.
func (ip *Interpolator) StartWithPeriod(period int) error {
	if err := ip.SetPeriod(period); err != nil {
		return err
	}
	return ip.Start()
}

// Stop halts playback; the interpolation time keeps its last value. Ticks
// arriving while stopped are refused by Tick.
func (ip *Interpolator) Stop() {
	ip.running = false
}

// Toggle starts or stops playback, depending on Running(). A failing
// start (empty path) leaves the interpolator stopped.
func (ip *Interpolator) Toggle() {
	if ip.running {
		ip.Stop()
	} else if err := ip.Start(); err != nil {
		tracer().Errorf("toggle could not start playback: %v", err)
	}
}

// Running reports whether playback is active, i.e. ticks are expected.
func (ip *Interpolator) Running() bool {
	return ip.running
}

// Reset moves the interpolation time to the start of the path — the first
// keyframe's time, or the last one's when playing in reverse — without
// evaluating. Valid in either state.
func (ip *Interpolator) Reset() {
	if ip.speed < 0 {
		ip.SetTime(ip.LastTime())
	} else {
		ip.SetTime(ip.FirstTime())
	}
}

// Tick is the playback heartbeat, called by the host every Period()
// milliseconds while Running(). It advances the interpolation time by
// Period()*Speed(), evaluates the path at the new time (clamped at the
// boundary, so the final keyframe is hit exactly) and applies the
// end-of-path policy:
//
// A path end is reached when time passes the last keyframe's time playing
// forward, or the first one's playing in reverse; zero speed never
// reaches an end. On reaching an end the endReached observers are
// notified once per boundary crossing, and playback either stops (loop
// disabled) or wraps the overshoot back into the path's time range and
// keeps running.
func (ip *Interpolator) Tick() (TickResult, error) {
	if !ip.running {
		return TickStopped, ErrNotRunning
	}
	ip.time += float64(ip.period) * ip.speed / 1000.0

	pos, rot, err := ip.evaluate(ip.time)
	if err != nil {
		return TickStopped, err
	}
	ip.apply(pos, rot)

	switch {
	case ip.speed > 0 && ip.time >= ip.LastTime():
		return ip.endOfPath(true), nil
	case ip.speed < 0 && ip.time <= ip.FirstTime():
		return ip.endOfPath(false), nil
	}
	return TickAdvanced, nil
}

// endOfPath applies the loop/stop policy after a boundary crossing.
func (ip *Interpolator) endOfPath(forward bool) TickResult {
	if !ip.loop {
		ip.notifyEndReached()
		if forward {
			ip.time = ip.LastTime()
		} else {
			ip.time = ip.FirstTime()
		}
		ip.Stop()
		return TickEndReached
	}
	d := ip.Duration()
	if d <= 0 {
		// single keyframe (or all at one time): wrap in place
		ip.notifyEndReached()
		ip.time = ip.FirstTime()
		return TickEndReached
	}
	// one notification per duration crossed; a tick landing exactly on
	// the boundary counts as a crossing
	if forward {
		for ip.time >= ip.LastTime() {
			ip.notifyEndReached()
			ip.time -= d
		}
	} else {
		for ip.time <= ip.FirstTime() {
			ip.notifyEndReached()
			ip.time += d
		}
	}
	return TickEndReached
}

// Period returns the tick period, in milliseconds. Default is 40 ms.
func (ip *Interpolator) Period() int {
	return ip.period
}

// SetPeriod sets the tick period, in milliseconds. Non-positive periods
// are refused with ErrInvalidPeriod.
func (ip *Interpolator) SetPeriod(period int) error {
	if period <= 0 {
		return fmt.Errorf("%w: %d ms", ErrInvalidPeriod, period)
	}
	ip.period = period
	return nil
}

// Speed returns the interpolation speed. Default is 1.0, which makes
// keyframe times correspond to playback seconds (given timely ticks).
func (ip *Interpolator) Speed() float64 {
	return ip.speed
}

// SetSpeed sets the interpolation speed. Negative values play the path in
// reverse; zero freezes playback (ticks still fire, time never advances).
func (ip *Interpolator) SetSpeed(speed float64) {
	ip.speed = speed
}

// Loop reports whether playback wraps around at path ends.
func (ip *Interpolator) Loop() bool {
	return ip.loop
}

// SetLoop sets the looping behavior; see Tick.
func (ip *Interpolator) SetLoop(loop bool) {
	ip.loop = loop
}

// ClosedPath reports whether the path is flagged as a closed loop.
//
// The flag is stored for a future wrap-around spline segment between the
// last and first keyframe; no such segment is generated yet, the flag has
// no effect on evaluation.
func (ip *Interpolator) ClosedPath() bool {
	return ip.closed
}

// SetClosedPath sets the closed-path flag; see ClosedPath.
func (ip *Interpolator) SetClosedPath(closed bool) {
	ip.closed = closed
}
