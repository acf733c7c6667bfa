// Package analysis runs the proton density evaluation of one acquisition
// directory.
//
// [Run] takes the FID, empty-probe FID, water FID and the solid echo series,
// and produces a [Report]:
//
//  1. every FID-role signal is phase corrected, recentred in frequency and
//     reduced to its amplitude ([Prepare]); the empty-probe amplitude is
//     subtracted from the sample and the water curve;
//  2. the solid echoes are paired with their empty baselines by echo time and
//     the maxima of the difference curves are fitted with a zero-centred
//     Gaussian whose value at echo time 0 is the extrapolated amplitude;
//  3. a Gaussian with that amplitude is fitted to the 10-18 μs FID window and
//     spliced onto the measured FID at their first crossing;
//  4. the extrapolated amplitude and the mean water amplitude are normalized
//     by the proton counts of the two samples.
//
// Any failing stage aborts the run with a [*StageError] naming the stage and
// the input that failed.
package analysis
