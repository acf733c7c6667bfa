package gaussfit

import (
	"errors"
	"fmt"
	"math"

	"github.com/maorshutman/lm"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-nmr/dsp/signal"
)

// Errors returned by Fit.
var (
	ErrConvergence = errors.New("gaussfit: least-squares fit did not converge")
	ErrDegenerate  = errors.New("gaussfit: degenerate data")
	ErrNoFreeParam = errors.New("gaussfit: mask selects no free parameter")
)

const (
	defaultTolerance = 1.49012e-8 // sqrt of machine epsilon, as MINPACK
	initialDamping   = 1e-3       // mu0 = tau * max(diag(J^T J))
	objectiveTol     = 1e-16
	exactFitRatio    = 1e-6 // residual norm relative to the data norm
	gradientTol      = 1e-4 // cosine between a Jacobian column and the residual
)

// Config describes one fit: the starting point, which parameters are free and
// the solver limits.
type Config struct {
	// Initial is the starting guess for free parameters and the fixed value
	// of every other parameter.
	Initial Params
	Free    Mask

	// MaxIterations bounds the solver iterations. Zero selects
	// 200*(free+1), the MINPACK default.
	MaxIterations int
	// Tolerance is the gradient and relative step-size threshold at which
	// the solver stops. Zero selects sqrt(machine epsilon).
	Tolerance float64
}

// Free fits amplitude, mean and sigma.
func Free(amplitude, mean, sigma float64) Config {
	return Config{
		Initial: Params{Amplitude: amplitude, Mean: mean, Sigma: sigma},
		Free:    FitAll,
	}
}

// MeanFixed fits amplitude and sigma of a bell curve centred at zero.
func MeanFixed(amplitude, sigma float64) Config {
	return Config{
		Initial: Params{Amplitude: amplitude, Sigma: sigma},
		Free:    FitAmplitude | FitSigma,
	}
}

// AmplitudeFixed fits sigma alone for a bell curve centred at zero with the
// given amplitude.
func AmplitudeFixed(amplitude, sigma float64) Config {
	return Config{
		Initial: Params{Amplitude: amplitude, Sigma: sigma},
		Free:    FitSigma,
	}
}

// Result holds the fitted parameters.
type Result struct {
	// Params holds the fitted values merged with the fixed ones. Sigma is
	// reported as a positive width.
	Params Params
	Free   Mask
	// Values lists the free parameters in mask order (amplitude, mean, sigma).
	Values []float64
	// Covariance of Values estimated as s^2 * (J^T J)^-1. Nil when J^T J is
	// singular or there are no residual degrees of freedom.
	Covariance *mat.SymDense
	// Cost is the residual sum of squares at the solution.
	Cost float64
	// Evaluations counts residual evaluations made by the solver.
	Evaluations int
}

// Fit minimises sum((g(x_i) - y_i)^2) over the free parameters of cfg.
//
// A solution is accepted only when the residual vanishes or every Jacobian
// column is orthogonal to the residual vector; anything else, including a
// solver that stalls at the initial guess, yields ErrConvergence.
func Fit(x, y []float64, cfg Config) (Result, error) {
	if len(x) != len(y) {
		return Result{}, fmt.Errorf("gaussfit: %w: x=%d y=%d", signal.ErrShape, len(x), len(y))
	}
	p := cfg.Free.Count()
	if p == 0 {
		return Result{}, ErrNoFreeParam
	}
	if len(x) < p {
		return Result{}, fmt.Errorf("%w: %w: %d points for %d parameters", ErrConvergence, ErrDegenerate, len(x), p)
	}
	if floats.Norm(y, math.Inf(1)) == 0 {
		return Result{}, fmt.Errorf("%w: %w: all observations are zero", ErrConvergence, ErrDegenerate)
	}
	if !(cfg.Initial.Sigma != 0) || math.IsNaN(cfg.Initial.Sigma) {
		return Result{}, fmt.Errorf("%w: initial sigma must be non-zero", ErrConvergence)
	}

	s := newSolver(x, y, cfg)
	if err := s.run(); err != nil {
		return Result{}, err
	}
	return s.result(), nil
}

type solver struct {
	x, y []float64
	cfg  Config
	m, p int

	theta []float64
	resid []float64
	cost  float64
	jac   *mat.Dense
	evals int
}

func newSolver(x, y []float64, cfg Config) *solver {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = 200 * (cfg.Free.Count() + 1)
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = defaultTolerance
	}
	s := &solver{
		x:   x,
		y:   y,
		cfg: cfg,
		m:   len(x),
		p:   cfg.Free.Count(),
	}
	s.theta = cfg.Free.pack(cfg.Initial)
	s.resid = make([]float64, s.m)
	s.jac = mat.NewDense(s.m, s.p, nil)
	s.cost = s.residuals(s.resid, s.theta)
	return s
}

func (s *solver) params(theta []float64) Params {
	return s.cfg.Free.unpack(s.cfg.Initial, theta)
}

// residuals fills dst with g(x_i)-y_i and returns the sum of squares.
func (s *solver) residuals(dst, theta []float64) float64 {
	p := s.params(theta)
	for i, xi := range s.x {
		dst[i] = p.At(xi) - s.y[i]
	}
	return floats.Dot(dst, dst)
}

// fn is the residual callback handed to the solver.
func (s *solver) fn(dst, theta []float64) {
	s.evals++
	s.residuals(dst, theta)
}

// jacobianTo fills dst (m x p) with the analytic partial derivatives.
func (s *solver) jacobianTo(dst *mat.Dense, theta []float64) {
	p := s.params(theta)
	row := make([]float64, s.p)
	for i, xi := range s.x {
		s.cfg.Free.partials(row, p, xi)
		dst.SetRow(i, row)
	}
}

func (s *solver) run() error {
	if !isFinite(s.cost) {
		return fmt.Errorf("%w: non-finite residuals at initial guess", ErrConvergence)
	}
	if s.exact() {
		return nil
	}
	s.jacobianTo(s.jac, s.theta)
	if j := s.insensitive(); j >= 0 {
		return fmt.Errorf("%w: model is insensitive to parameter %d at %v", ErrConvergence, j, s.theta)
	}

	problem := lm.LMProblem{
		Dim:        s.p,
		Size:       s.m,
		Func:       s.fn,
		Jac:        s.jacobianTo,
		InitParams: append([]float64(nil), s.theta...),
		Tau:        initialDamping,
		Eps1:       s.cfg.Tolerance,
		Eps2:       s.cfg.Tolerance,
	}
	sol, err := lm.LM(problem, &lm.Settings{Iterations: s.cfg.MaxIterations, ObjectiveTol: objectiveTol})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConvergence, err)
	}
	if sol == nil || len(sol.X) != s.p || !allFinite(sol.X) {
		return fmt.Errorf("%w: solver returned no finite solution", ErrConvergence)
	}

	copy(s.theta, sol.X)
	s.cost = s.residuals(s.resid, s.theta)
	if !isFinite(s.cost) {
		return fmt.Errorf("%w: non-finite residuals at %v", ErrConvergence, s.theta)
	}
	if s.exact() {
		return nil
	}
	s.jacobianTo(s.jac, s.theta)
	if j := s.insensitive(); j >= 0 {
		return fmt.Errorf("%w: model is insensitive to parameter %d at %v", ErrConvergence, j, s.theta)
	}
	if c := s.gradientCosine(); c > gradientTol {
		return fmt.Errorf("%w: gradient test failed (cosine %.3g, cost %g) after %d evaluations", ErrConvergence, c, s.cost, s.evals)
	}
	return nil
}

// exact reports whether the residual vanishes to working precision.
func (s *solver) exact() bool {
	return s.cost <= exactFitRatio*exactFitRatio*floats.Dot(s.y, s.y)
}

// insensitive returns the index of the first all-zero Jacobian column, or -1.
func (s *solver) insensitive() int {
	for j := 0; j < s.p; j++ {
		if floats.Norm(mat.Col(nil, j, s.jac), 2) == 0 {
			return j
		}
	}
	return -1
}

// gradientCosine is the largest cosine between a Jacobian column and the
// residual vector (the MINPACK gtol measure).
func (s *solver) gradientCosine() float64 {
	rNorm := math.Sqrt(s.cost)
	worst := 0.0
	for j := 0; j < s.p; j++ {
		col := mat.Col(nil, j, s.jac)
		c := math.Abs(floats.Dot(col, s.resid)) / (floats.Norm(col, 2) * rNorm)
		worst = math.Max(worst, c)
	}
	return worst
}

func (s *solver) result() Result {
	params := s.params(s.theta)
	params.Sigma = math.Abs(params.Sigma)
	values := s.cfg.Free.pack(params)

	res := Result{
		Params:      params,
		Free:        s.cfg.Free,
		Values:      values,
		Cost:        s.cost,
		Evaluations: s.evals,
	}
	res.Covariance = s.covariance(values)
	return res
}

// covariance estimates the parameter covariance at theta (with sigma made
// positive, which leaves J^T J unchanged up to the sign of its sigma row).
func (s *solver) covariance(theta []float64) *mat.SymDense {
	dof := s.m - s.p
	if dof <= 0 {
		return nil
	}
	s.jacobianTo(s.jac, theta)
	var jtj mat.SymDense
	jtj.SymOuterK(1, s.jac.T())

	var chol mat.Cholesky
	if ok := chol.Factorize(&jtj); !ok {
		return nil
	}
	var cov mat.SymDense
	if err := chol.InverseTo(&cov); err != nil {
		return nil
	}
	cov.ScaleSym(s.cost/float64(dof), &cov)
	return &cov
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if !isFinite(x) {
			return false
		}
	}
	return true
}
