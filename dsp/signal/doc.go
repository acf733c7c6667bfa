// Package signal defines the sampled NMR signal types shared by every stage of
// the analysis: complex time-domain signals, amplitude curves tagged by
// acquisition role, and a deterministic generator for synthetic FID and solid
// echo data.
package signal
