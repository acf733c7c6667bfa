package analysis

import (
	"github.com/cwbudde/algo-nmr/dsp/signal"
	"github.com/cwbudde/algo-nmr/measure/buildup"
	"github.com/cwbudde/algo-nmr/measure/density"
	"github.com/cwbudde/algo-nmr/measure/echo"
	"github.com/cwbudde/algo-nmr/measure/gaussfit"
)

// Trace is a sampled model or display curve.
type Trace struct {
	Time []float64
	Amp  []float64
}

// Report holds every result of a run.
type Report struct {
	FID, FIDEmpty, FIDWater Prepared

	// FIDCurve and WaterCurve are the FID and water amplitudes with the
	// empty-probe FID amplitude subtracted.
	FIDCurve   signal.Curve
	WaterCurve signal.Curve

	// Echo holds the baseline-subtracted solid echoes and their maxima.
	Echo echo.Series
	// Tails are the solid echo curves cut at their maxima.
	Tails []signal.Curve

	// SEFit is the zero-centred Gaussian fitted to the echo maxima and
	// SEFitTrace its evaluation on the echo-time grid.
	SEFit      gaussfit.Result
	SEFitTrace Trace
	// Extrapolation is SEFitTrace at echo time 0.
	Extrapolation float64

	// FIDWindow is the FID slice both FID fits use.
	FIDWindow Trace
	// FIDFit is the free-amplitude Gaussian of the FID window.
	FIDFit gaussfit.Result
	// Normalized is FIDFit scaled so its maximum equals Extrapolation;
	// Coeff is the scale factor.
	Normalized Trace
	Coeff      float64

	// BuildFit fits only sigma with the amplitude fixed to Extrapolation.
	BuildFit gaussfit.Result
	// Model is BuildFit evaluated on the FID time grid.
	Model Trace
	Built buildup.Curve

	// WaterWindow is the display slice of the water curve; WaterMean is
	// the mean of the full water curve.
	WaterWindow Trace
	WaterMean   float64

	// MaterialAmplitude is the echo fit amplitude used for the material density.
	MaterialAmplitude float64
	Density           density.Result
}
