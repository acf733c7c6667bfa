// Package chart renders the figures of an evaluation report as PNG files
// using gonum/plot.
package chart
