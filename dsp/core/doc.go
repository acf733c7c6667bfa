// Package core holds small numeric helpers shared by the signal, spectrum and
// measurement packages, such as tolerant comparison, nearest-index lookup and
// half-open ranges.
package core
