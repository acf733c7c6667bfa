package analysis

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-nmr/dsp/core"
	"github.com/cwbudde/algo-nmr/dsp/signal"
	"github.com/cwbudde/algo-nmr/measure/buildup"
	"github.com/cwbudde/algo-nmr/measure/density"
	"github.com/cwbudde/algo-nmr/measure/echo"
	"github.com/cwbudde/algo-nmr/measure/gaussfit"
	stattime "github.com/cwbudde/algo-nmr/stats/time"
)

var errFlatModel = errors.New("analysis: FID model has no positive maximum")

// Run evaluates one acquisition. It stops at the first failing stage and
// returns no partial report.
func Run(in Inputs, opts ...Option) (Report, error) {
	cfg := ApplyOptions(opts...)
	log := cfg.Logger
	var r Report
	var err error

	for _, step := range []struct {
		dst *Prepared
		src signal.Labeled
	}{
		{&r.FID, in.FID},
		{&r.FIDEmpty, in.FIDEmpty},
		{&r.FIDWater, in.FIDWater},
	} {
		if *step.dst, err = Prepare(step.src.Signal); err != nil {
			return Report{}, stageError(StagePrepare, inputName(step.src), err)
		}
		log.Debug("signal prepared",
			zap.String("input", inputName(step.src)),
			zap.Int("phase", step.dst.Phase.Angle),
			zap.Int("peak", step.dst.Align.PeakIndex),
			zap.Int("zero", step.dst.Align.ZeroIndex),
			zap.Int("shift", step.dst.Align.Shift),
		)
	}

	if r.FIDCurve, err = subtractEmpty(r.FID, r.FIDEmpty, signal.RoleFID); err != nil {
		return Report{}, stageError(StageBaseline, inputName(in.FID), err)
	}
	if r.WaterCurve, err = subtractEmpty(r.FIDWater, r.FIDEmpty, signal.RoleFIDWater); err != nil {
		return Report{}, stageError(StageBaseline, inputName(in.FIDWater), err)
	}

	if err := runEcho(&r, in, cfg); err != nil {
		return Report{}, err
	}
	if err := runFID(&r, cfg); err != nil {
		return Report{}, err
	}

	if w, a, err := stattime.Window(r.WaterCurve.Time, r.WaterCurve.Amp, cfg.WaterFrom, cfg.WaterTo); err != nil {
		log.Warn("water display window empty",
			zap.Float64("from", cfg.WaterFrom),
			zap.Float64("to", cfg.WaterTo),
			zap.Error(err),
		)
	} else {
		r.WaterWindow = Trace{Time: w, Amp: a}
		ws := stattime.Calculate(a)
		log.Debug("water display window",
			zap.Int("samples", ws.Length),
			zap.Float64("mean", ws.Mean),
			zap.Float64("stddev", ws.StdDev),
		)
	}
	r.WaterMean = stattime.Mean(r.WaterCurve.Amp)
	r.MaterialAmplitude = r.SEFit.Params.Amplitude

	if r.Density, err = density.Compute(r.WaterMean, r.MaterialAmplitude, cfg.Water, cfg.Material); err != nil {
		return Report{}, stageError(StageDensity, "", err)
	}
	log.Info("proton densities computed",
		zap.Float64("water_amplitude", r.WaterMean),
		zap.Float64("material_amplitude", r.MaterialAmplitude),
		zap.Float64("water", r.Density.Water),
		zap.Float64("material", r.Density.Material),
	)
	return r, nil
}

func runEcho(r *Report, in Inputs, cfg Config) error {
	meas, err := curves(in.SE)
	if err != nil {
		return err
	}
	base, err := curves(in.SEEmpty)
	if err != nil {
		return err
	}
	pairs, err := echo.Join(meas, base)
	if err != nil {
		return stageError(StageEcho, "", err)
	}
	if r.Echo, err = echo.Aggregate(pairs); err != nil {
		return stageError(StageEcho, "", err)
	}
	r.Tails = make([]signal.Curve, len(r.Echo.Curves))
	for i, d := range r.Echo.Curves {
		r.Tails[i] = d.Tail()
	}
	cfg.Logger.Debug("solid echoes paired",
		zap.Int("pairs", len(pairs)),
		zap.Float64s("echo_times", r.Echo.EchoTimes),
		zap.Float64s("maxima", r.Echo.Maxima),
	)

	guess := gaussfit.MeanFixed(cfg.SEGuess.Amplitude, cfg.SEGuess.Sigma)
	if r.SEFit, err = gaussfit.Fit(r.Echo.EchoTimes, r.Echo.Maxima, guess); err != nil {
		return stageError(StageSEFit, "", err)
	}
	grid := core.Arange(0, cfg.SEGridEnd, cfg.SEGridStep)
	r.SEFitTrace = Trace{Time: grid, Amp: r.SEFit.Params.Eval(grid)}
	if len(grid) > 0 {
		r.Extrapolation = r.SEFitTrace.Amp[0]
	} else {
		r.Extrapolation = r.SEFit.Params.At(0)
	}
	cfg.Logger.Info("solid echo maxima fitted",
		zap.Float64("amplitude", r.SEFit.Params.Amplitude),
		zap.Float64("sigma", r.SEFit.Params.Sigma),
		zap.Float64("extrapolation", r.Extrapolation),
		zap.Int("evaluations", r.SEFit.Evaluations),
	)
	return nil
}

func runFID(r *Report, cfg Config) error {
	fid := r.FIDCurve
	wt, wa, err := stattime.Window(fid.Time, fid.Amp, cfg.FIDFrom, cfg.FIDTo)
	if err != nil {
		return stageError(StageFIDFit, fid.Label(), err)
	}
	r.FIDWindow = Trace{Time: wt, Amp: wa}

	peak, _ := stattime.Peak(wa)
	if r.FIDFit, err = gaussfit.Fit(wt, wa, gaussfit.MeanFixed(peak, cfg.FIDSigmaGuess)); err != nil {
		return stageError(StageFIDFit, fid.Label(), err)
	}
	grid := core.Arange(0, cfg.ModelGridEnd, cfg.ModelGridStep)
	model := r.FIDFit.Params.Eval(grid)
	top, _ := stattime.Peak(model)
	if !(top > 0) {
		return stageError(StageFIDFit, fid.Label(), fmt.Errorf("%w: max=%g", errFlatModel, top))
	}
	r.Coeff = r.Extrapolation / top
	r.Normalized = Trace{Time: grid, Amp: make([]float64, len(model))}
	vecmath.ScaleBlock(r.Normalized.Amp, model, r.Coeff)

	fixed := gaussfit.AmplitudeFixed(r.Extrapolation, cfg.BuildSigmaGuess)
	if r.BuildFit, err = gaussfit.Fit(wt, wa, fixed); err != nil {
		return stageError(StageFIDFit, fid.Label(), err)
	}
	cfg.Logger.Info("FID window fitted",
		zap.Float64("free_amplitude", r.FIDFit.Params.Amplitude),
		zap.Float64("free_sigma", r.FIDFit.Params.Sigma),
		zap.Float64("coeff", r.Coeff),
		zap.Float64("sigma", r.BuildFit.Params.Sigma),
	)

	r.Model = Trace{Time: fid.Time, Amp: r.BuildFit.Params.Eval(fid.Time)}
	if r.Built, err = buildup.Build(fid.Time, fid.Amp, r.BuildFit.Params, cfg.HeadStep); err != nil {
		return stageError(StageBuild, fid.Label(), err)
	}
	cfg.Logger.Info("FID built up",
		zap.Float64("stitch_time", r.Built.Stitch.Time),
		zap.Float64("stitch_amplitude", r.Built.Stitch.Amp),
		zap.Int("intersections", len(r.Built.Intersections)),
		zap.Int("samples", len(r.Built.Time)),
	)
	return nil
}

func subtractEmpty(p, empty Prepared, role signal.Role) (signal.Curve, error) {
	amp := echo.Subtract(p.Amp, empty.Amp)
	if len(amp) < 2 {
		return signal.Curve{}, fmt.Errorf("%w: %d common samples", signal.ErrTooShort, len(amp))
	}
	return signal.Curve{Role: role, Time: p.Time[:len(amp)], Amp: amp}, nil
}

func curves(set []signal.Labeled) ([]signal.Curve, error) {
	out := make([]signal.Curve, len(set))
	for i, l := range set {
		c, err := l.Curve()
		if err != nil {
			return nil, stageError(StageEcho, inputName(l), err)
		}
		out[i] = c
	}
	return out, nil
}

func inputName(l signal.Labeled) string {
	if l.Source != "" {
		return l.Source
	}
	return l.Label()
}
