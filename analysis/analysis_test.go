package analysis

import (
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cwbudde/algo-nmr/dataset"
	"github.com/cwbudde/algo-nmr/dsp/signal"
	"github.com/cwbudde/algo-nmr/internal/testutil"
	"github.com/cwbudde/algo-nmr/measure/density"
	"github.com/cwbudde/algo-nmr/measure/echo"
	"github.com/cwbudde/algo-nmr/measure/gaussfit"
)

func synthetic(t *testing.T) (dataset.Synthetic, []signal.Labeled) {
	t.Helper()
	p := dataset.DefaultSynthetic()
	set, err := dataset.Synthesize(p)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	return p, set
}

func collect(t *testing.T, set []signal.Labeled) Inputs {
	t.Helper()
	in, err := Collect(set)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	return in
}

func TestCollect(t *testing.T) {
	p, set := synthetic(t)
	in := collect(t, set)
	if in.FID.Role != signal.RoleFID || in.FIDEmpty.Role != signal.RoleFIDEmpty || in.FIDWater.Role != signal.RoleFIDWater {
		t.Fatalf("roles=%s %s %s", in.FID.Role, in.FIDEmpty.Role, in.FIDWater.Role)
	}
	if len(in.SE) != len(p.EchoTimes) || len(in.SEEmpty) != len(p.EchoTimes) {
		t.Fatalf("SE=%d SEEmpty=%d want=%d", len(in.SE), len(in.SEEmpty), len(p.EchoTimes))
	}
}

func TestCollectErrors(t *testing.T) {
	_, set := synthetic(t)

	_, err := Collect(set[1:])
	if !errors.Is(err, ErrMissingRole) {
		t.Fatalf("missing FID: err=%v want ErrMissingRole", err)
	}

	dup := append([]signal.Labeled{set[0]}, set...)
	if _, err := Collect(dup); !errors.Is(err, ErrDuplicateRole) {
		t.Fatalf("duplicate FID: err=%v want ErrDuplicateRole", err)
	}

	if _, err := Collect(set[:3]); !errors.Is(err, ErrMissingRole) {
		t.Fatalf("no echoes: err=%v want ErrMissingRole", err)
	}
}

func TestPrepareCentredGaussian(t *testing.T) {
	g := signal.NewGenerator(signal.WithStart(-50), signal.WithStep(0.5))
	raw, err := g.Gaussian(100, 0, 15, 0, 0, 201)
	if err != nil {
		t.Fatalf("Gaussian() error = %v", err)
	}
	p, err := Prepare(raw)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if p.Phase.Angle != 0 {
		t.Fatalf("phase=%d want=0", p.Phase.Angle)
	}
	if p.Align.Shift != 0 {
		t.Fatalf("shift=%d want=0", p.Align.Shift)
	}
	testutil.RequireSliceNearlyEqual(t, p.Re, raw.Re, 1e-9)
	testutil.RequireSliceNearlyEqual(t, p.Im, raw.Im, 1e-9)

	res, err := gaussfit.Fit(p.Time, p.Amp, gaussfit.Free(90, 1, 10))
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	testutil.RequireRelative(t, "amplitude", res.Params.Amplitude, 100, 0.01)
	testutil.RequireRelative(t, "sigma", res.Params.Sigma, 15, 0.01)
}

func TestPreparePreservesAmplitude(t *testing.T) {
	_, set := synthetic(t)
	fid := set[0]
	p, err := Prepare(fid.Signal)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	want, err := fid.Amplitude()
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, p.Amp, want, 1e-9)
	if p.Align.Shift == 0 {
		t.Fatal("expected a frequency shift for an offset signal")
	}
	if len(p.Frequency) != fid.Len() {
		t.Fatalf("len(freq)=%d want=%d", len(p.Frequency), fid.Len())
	}
}

func TestPrepareRejectsBadShape(t *testing.T) {
	s := signal.Signal{Time: []float64{0, 1, 2}, Re: []float64{1, 2, 3}, Im: []float64{0, 0}}
	if _, err := Prepare(s); !errors.Is(err, signal.ErrShape) {
		t.Fatalf("err=%v want ErrShape", err)
	}
}

func TestRunSynthetic(t *testing.T) {
	p, set := synthetic(t)
	r, err := Run(collect(t, set))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(r.Echo.Maxima) != len(p.EchoTimes) {
		t.Fatalf("len(maxima)=%d want=%d", len(r.Echo.Maxima), len(p.EchoTimes))
	}
	for i, et := range p.EchoTimes {
		if r.Echo.EchoTimes[i] != float64(et) {
			t.Fatalf("echo time[%d]=%f want=%d", i, r.Echo.EchoTimes[i], et)
		}
		testutil.RequireRelative(t, "maximum", r.Echo.Maxima[i], p.Echo.At(float64(et)), 1e-9)
	}
	if len(r.Tails) != len(p.EchoTimes) || r.Tails[0].Amp[0] != r.Echo.Maxima[0] {
		t.Fatalf("tails do not start at the echo maxima")
	}

	testutil.RequireRelative(t, "extrapolation", r.Extrapolation, p.Echo.Amplitude, 1e-6)
	testutil.RequireRelative(t, "SE sigma", r.SEFit.Params.Sigma, p.Echo.Sigma, 1e-6)
	if r.SEFitTrace.Time[0] != 0 || len(r.SEFitTrace.Time) != 25000 {
		t.Fatalf("SE fit grid starts %f with %d samples", r.SEFitTrace.Time[0], len(r.SEFitTrace.Time))
	}

	if r.FIDWindow.Time[0] != 10 || r.FIDWindow.Time[len(r.FIDWindow.Time)-1] != 17.5 {
		t.Fatalf("FID window [%f, %f]", r.FIDWindow.Time[0], r.FIDWindow.Time[len(r.FIDWindow.Time)-1])
	}
	peak := 0.0
	for _, v := range r.Normalized.Amp {
		peak = math.Max(peak, v)
	}
	testutil.RequireRelative(t, "normalized peak", peak, r.Extrapolation, 1e-12)
	if r.BuildFit.Params.Amplitude != r.Extrapolation {
		t.Fatalf("build amplitude=%f want=%f", r.BuildFit.Params.Amplitude, r.Extrapolation)
	}

	b := r.Built
	if !(b.Stitch.Time > 10 && b.Stitch.Time < 18) {
		t.Fatalf("stitch time=%f want within the fit window", b.Stitch.Time)
	}
	if b.Time[0] != 0 || b.Amp[b.Head-1] != b.Stitch.Amp {
		t.Fatalf("head runs from %f to amplitude %f, stitch %f", b.Time[0], b.Amp[b.Head-1], b.Stitch.Amp)
	}
	for i := 1; i < len(b.Time); i++ {
		if !(b.Time[i] > b.Time[i-1]) {
			t.Fatalf("built time not increasing at %d: %f <= %f", i, b.Time[i], b.Time[i-1])
		}
	}
	if jump := math.Abs(b.Amp[b.Head] - b.Amp[b.Head-1]); jump > 2.5 {
		t.Fatalf("jump at stitch=%f", jump)
	}
	testutil.RequireRelative(t, "model at zero", b.Amp[0], r.Extrapolation, 1e-12)

	if len(r.WaterWindow.Time) == 0 || r.WaterWindow.Time[0] != 30 {
		t.Fatalf("water window=%v", r.WaterWindow.Time)
	}
	wantWater := 0.0
	for _, tt := range r.WaterCurve.Time {
		wantWater += p.WaterAmp * math.Exp(-tt/p.WaterT2)
	}
	wantWater /= float64(r.WaterCurve.Len())
	testutil.RequireRelative(t, "water mean", r.WaterMean, wantWater, 1e-9)

	pw, _ := density.Water.Protons()
	pc, _ := density.Cellulose.Protons()
	testutil.RequireRelative(t, "water density", r.Density.Water, wantWater/pw, 1e-9)
	testutil.RequireRelative(t, "material density", r.Density.Material, p.Echo.Amplitude/pc, 1e-6)
}

func TestRunStageErrors(t *testing.T) {
	_, set := synthetic(t)

	in := collect(t, set)
	in.FID.Im = in.FID.Im[:10]
	_, err := Run(in)
	var se *StageError
	if !errors.As(err, &se) || se.Stage != StagePrepare || se.Input != "FID_Cellulose.dat" {
		t.Fatalf("err=%v want prepare stage error", err)
	}
	if !errors.Is(err, signal.ErrShape) {
		t.Fatalf("err=%v want ErrShape", err)
	}

	in = collect(t, set)
	in.SEEmpty = in.SEEmpty[1:]
	_, err = Run(in)
	if !errors.As(err, &se) || se.Stage != StageEcho || !errors.Is(err, echo.ErrUnpaired) {
		t.Fatalf("err=%v want unpaired echo stage error", err)
	}

	in = collect(t, set)
	for i := range in.SE {
		in.SE[i].Signal = in.SEEmpty[i].Signal
	}
	_, err = Run(in)
	if !errors.As(err, &se) || se.Stage != StageSEFit || !errors.Is(err, gaussfit.ErrConvergence) {
		t.Fatalf("err=%v want SE fit convergence error", err)
	}
}

func TestRunLogs(t *testing.T) {
	_, set := synthetic(t)
	core, logs := observer.New(zapcore.DebugLevel)
	if _, err := Run(collect(t, set), WithLogger(zap.New(core))); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if n := logs.FilterMessage("signal prepared").Len(); n != 3 {
		t.Fatalf("prepared entries=%d want=3", n)
	}
	final := logs.FilterMessage("proton densities computed").All()
	if len(final) != 1 || final[0].Level != zapcore.InfoLevel {
		t.Fatalf("density entries=%v", final)
	}
	fields := final[0].ContextMap()
	if _, ok := fields["water"]; !ok {
		t.Fatalf("fields=%v missing water", fields)
	}
	if logs.FilterLevelExact(zapcore.WarnLevel).Len() != 0 {
		t.Fatalf("unexpected warnings: %v", logs.FilterLevelExact(zapcore.WarnLevel).All())
	}
}

func TestOptions(t *testing.T) {
	cfg := ApplyOptions(
		WithFIDWindow(12, 20),
		WithFIDWindow(5, 5),
		WithHeadStep(-1),
		WithWaterWindow(40, 30),
		WithSamples(density.Cellulose, density.Water),
		WithLogger(nil),
		nil,
	)
	if cfg.FIDFrom != 12 || cfg.FIDTo != 20 {
		t.Fatalf("FID window=[%f, %f] want=[12, 20]", cfg.FIDFrom, cfg.FIDTo)
	}
	if cfg.HeadStep != 0.1 || cfg.WaterFrom != 30 || cfg.WaterTo != 40 {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.Water.Name != "cellulose" || cfg.Logger == nil {
		t.Fatalf("samples or logger not applied: %+v", cfg)
	}
}
