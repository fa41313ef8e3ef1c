package mot

import "gonum.org/v1/gonum/mat"

// MotionFilter is the per-track motion model boundary. The tracker drives
// it once per frame, with a matched observation or in prediction-only
// mode, and reads back the smoothed box, center and velocity for search
// ellipse construction and static/out-of-frame classification.
type MotionFilter interface {
	// Update advances the filter one time step. When observed is true the
	// box is a matched detection folded into the state; otherwise the
	// filter coasts on its own prediction. Returns the current estimate.
	Update(box Rect, observed bool) Rect

	// Center returns the current filtered box center.
	Center() Point

	// Velocity returns the filtered center velocity in pixels per step.
	Velocity() (vx, vy float64)
}

// KalmanFilter tracks an axis-aligned box with a linear constant-velocity
// model over the measurement vector [cx, cy, w, h]. With acceleration
// enabled the state gains four acceleration components.
//
// State layout: [cx, cy, w, h, vcx, vcy, vw, vh (, acx, acy, aw, ah)].
type KalmanFilter struct {
	x *mat.VecDense // State
	p *mat.Dense    // State covariance
	f *mat.Dense    // Transition
	q *mat.Dense    // Process noise
	h *mat.Dense    // Measurement
	r *mat.Dense    // Measurement noise
}

const kalmanMeasureDim = 4

// Initial covariance and measurement noise scales. Position components
// start certain (seeded from the founding detection); derivatives start
// loose so the first few observations set the velocity.
const (
	kalmanInitPosVar   = 1.0
	kalmanInitDerivVar = 10.0
	kalmanMeasureVar   = 0.1
)

// NewKalmanFilter seeds a filter from a track's founding box.
// dt is the time step between frames; accelNoiseMag scales process noise.
func NewKalmanFilter(initial Rect, dt, accelNoiseMag float64, useAcceleration bool) *KalmanFilter {
	n := 8
	if useAcceleration {
		n = 12
	}

	kf := &KalmanFilter{
		x: mat.NewVecDense(n, nil),
		p: mat.NewDense(n, n, nil),
		f: mat.NewDense(n, n, nil),
		q: mat.NewDense(n, n, nil),
		h: mat.NewDense(kalmanMeasureDim, n, nil),
		r: mat.NewDense(kalmanMeasureDim, kalmanMeasureDim, nil),
	}

	c := initial.Center()
	kf.x.SetVec(0, c.X)
	kf.x.SetVec(1, c.Y)
	kf.x.SetVec(2, initial.W)
	kf.x.SetVec(3, initial.H)

	// F: block upper-triangular integrator chain; each measured component
	// is advanced by its velocity (and acceleration when modeled).
	for i := 0; i < n; i++ {
		kf.f.Set(i, i, 1)
	}
	for i := 0; i < kalmanMeasureDim; i++ {
		kf.f.Set(i, i+4, dt)
		if useAcceleration {
			kf.f.Set(i, i+8, dt*dt/2)
			kf.f.Set(i+4, i+8, dt)
		}
	}

	for i := 0; i < kalmanMeasureDim; i++ {
		kf.h.Set(i, i, 1)
		kf.r.Set(i, i, kalmanMeasureVar)
		kf.p.Set(i, i, kalmanInitPosVar)
	}
	for i := kalmanMeasureDim; i < n; i++ {
		kf.p.Set(i, i, kalmanInitDerivVar)
	}

	// Q from the piecewise-constant acceleration model: position noise
	// grows with dt²/2, derivative noise with dt.
	g1 := dt * dt / 2 * accelNoiseMag
	g2 := dt * accelNoiseMag
	for i := 0; i < kalmanMeasureDim; i++ {
		kf.q.Set(i, i, g1*g1)
		kf.q.Set(i+4, i+4, g2*g2)
		if useAcceleration {
			kf.q.Set(i+8, i+8, accelNoiseMag*accelNoiseMag)
		}
	}

	return kf
}

// Update advances the filter one step, folding in the observation when
// observed is true. A singular innovation covariance skips the correction
// and keeps the prediction.
func (kf *KalmanFilter) Update(box Rect, observed bool) Rect {
	kf.predict()
	if observed {
		kf.correct(box)
	}
	return kf.estimate()
}

// predict: x = F·x, P = F·P·Fᵀ + Q.
func (kf *KalmanFilter) predict() {
	var x mat.VecDense
	x.MulVec(kf.f, kf.x)
	kf.x.CopyVec(&x)

	var fp, fpft mat.Dense
	fp.Mul(kf.f, kf.p)
	fpft.Mul(&fp, kf.f.T())
	fpft.Add(&fpft, kf.q)
	kf.p.Copy(&fpft)
}

// correct folds a measurement into the state.
func (kf *KalmanFilter) correct(box Rect) {
	c := box.Center()
	z := mat.NewVecDense(kalmanMeasureDim, []float64{c.X, c.Y, box.W, box.H})

	// Innovation y = z − H·x.
	var hx, y mat.VecDense
	hx.MulVec(kf.h, kf.x)
	y.SubVec(z, &hx)

	// S = H·P·Hᵀ + R.
	var hp, s mat.Dense
	hp.Mul(kf.h, kf.p)
	s.Mul(&hp, kf.h.T())
	s.Add(&s, kf.r)

	var sInv mat.Dense
	if err := sInv.Inverse(&s); err != nil {
		return // Singular innovation covariance: keep the prediction
	}

	// K = P·Hᵀ·S⁻¹.
	var pht, k mat.Dense
	pht.Mul(kf.p, kf.h.T())
	k.Mul(&pht, &sInv)

	// x += K·y.
	var ky mat.VecDense
	ky.MulVec(&k, &y)
	kf.x.AddVec(kf.x, &ky)

	// P = (I − K·H)·P.
	n, _ := kf.p.Dims()
	var kh mat.Dense
	kh.Mul(&k, kf.h)
	ikh := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		ikh.Set(i, i, 1)
	}
	ikh.Sub(ikh, &kh)
	var newP mat.Dense
	newP.Mul(ikh, kf.p)
	kf.p.Copy(&newP)
}

// estimate returns the current box; sizes are clamped non-negative.
func (kf *KalmanFilter) estimate() Rect {
	w := kf.x.AtVec(2)
	h := kf.x.AtVec(3)
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{
		X: kf.x.AtVec(0) - w/2,
		Y: kf.x.AtVec(1) - h/2,
		W: w,
		H: h,
	}
}

// Center returns the current filtered box center.
func (kf *KalmanFilter) Center() Point {
	return Point{X: kf.x.AtVec(0), Y: kf.x.AtVec(1)}
}

// Velocity returns the filtered center velocity in pixels per step.
func (kf *KalmanFilter) Velocity() (vx, vy float64) {
	return kf.x.AtVec(4), kf.x.AtVec(5)
}

// Compile-time interface check.
var _ MotionFilter = (*KalmanFilter)(nil)
