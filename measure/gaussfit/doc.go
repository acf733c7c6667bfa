// Package gaussfit fits the bell curve
//
//	g(x) = A * exp(-(x-mu)^2 / (2*sigma^2))
//
// to sampled data by nonlinear least squares.
//
// Which of A, mu and sigma are optimised is selected by a [Mask]; parameters
// outside the mask keep the value given in [Config.Initial]. The three forms
// used by the analysis have constructors:
//
//   - [Free]: fit A, mu and sigma
//   - [MeanFixed]: fit A and sigma with mu = 0
//   - [AmplitudeFixed]: fit sigma alone with A supplied and mu = 0
//
// # Usage
//
//	res, err := gaussfit.Fit(echoTimes, maxima, gaussfit.MeanFixed(10, 6))
//	extrapolated := res.Params.At(0)
//
// Minimisation runs through the Levenberg-Marquardt solver of
// github.com/maorshutman/lm with an analytic Jacobian. A result is accepted
// only if the residual vanishes or passes the gradient-orthogonality test;
// otherwise Fit reports [ErrConvergence].
package gaussfit
