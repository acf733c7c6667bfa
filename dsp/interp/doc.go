// Package interp provides the piecewise-linear primitives used to locate
// curve crossings between two samples.
//
//   - [Linear]: value at a fraction of the way between two samples
//   - [Root]:   fraction at which a linear segment crosses zero
package interp
