package mot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKalmanStationaryConvergence(t *testing.T) {
	box := Rect{X: 95, Y: 45, W: 10, H: 10} // Center (100, 50)
	kf := NewKalmanFilter(box, 0.4, 0.2, false)

	var est Rect
	for i := 0; i < 30; i++ {
		est = kf.Update(box, true)
	}

	c := est.Center()
	assert.InDelta(t, 100, c.X, 0.1)
	assert.InDelta(t, 50, c.Y, 0.1)
	assert.InDelta(t, 10, est.W, 0.1)
	assert.InDelta(t, 10, est.H, 0.1)

	vx, vy := kf.Velocity()
	assert.InDelta(t, 0, vx, 0.1)
	assert.InDelta(t, 0, vy, 0.1)
}

func TestKalmanVelocityEstimation(t *testing.T) {
	const dt = 0.4
	const step = 10.0 // Pixels per frame along +X

	box := Rect{X: 0, Y: 0, W: 20, H: 20}
	kf := NewKalmanFilter(box, dt, 0.2, false)

	for i := 1; i <= 40; i++ {
		box.X += step
		kf.Update(box, true)
	}

	// vx is in pixels per filter step: displacement per frame is vx*dt.
	vx, vy := kf.Velocity()
	assert.InDelta(t, step, vx*dt, 1.5)
	assert.InDelta(t, 0, vy, 1)

	c := kf.Center()
	assert.InDelta(t, box.Center().X, c.X, 5)
}

func TestKalmanCoasting(t *testing.T) {
	const dt = 0.4
	box := Rect{X: 0, Y: 0, W: 20, H: 20}
	kf := NewKalmanFilter(box, dt, 0.2, false)

	for i := 1; i <= 40; i++ {
		box.X += 10
		kf.Update(box, true)
	}

	// Without observations the filter keeps extrapolating along the
	// learned velocity.
	before := kf.Center().X
	kf.Update(Rect{}, false)
	after := kf.Center().X
	assert.Greater(t, after, before+5)
}

func TestKalmanWithAcceleration(t *testing.T) {
	box := Rect{X: 95, Y: 45, W: 10, H: 10}
	kf := NewKalmanFilter(box, 0.4, 0.2, true)

	var est Rect
	for i := 0; i < 30; i++ {
		est = kf.Update(box, true)
	}

	c := est.Center()
	assert.InDelta(t, 100, c.X, 0.5)
	assert.InDelta(t, 50, c.Y, 0.5)
}

func TestKalmanSizeNeverNegative(t *testing.T) {
	box := Rect{X: 0, Y: 0, W: 10, H: 10}
	kf := NewKalmanFilter(box, 0.4, 0.2, false)

	// Shrinking observations drive a negative size velocity; coasting must
	// still clamp the estimate at zero.
	for i := 0; i < 10; i++ {
		box.W -= 1
		box.H -= 1
		kf.Update(box, true)
	}
	var est Rect
	for i := 0; i < 50; i++ {
		est = kf.Update(Rect{}, false)
	}

	require.GreaterOrEqual(t, est.W, 0.0)
	require.GreaterOrEqual(t, est.H, 0.0)
}
