// Package echo reduces a solid-echo acquisition series to the echo-time
// versus maximum-amplitude series used for extrapolation to t=0.
//
// Each measurement curve is joined with the empty-probe baseline recorded at
// the same echo time ([Join]), the baseline is subtracted ([Subtract]) and the
// maximum of every difference curve is collected ([Aggregate]).
package echo
