// Package dataset reads and writes the plain-text acquisition files of a
// solid echo / FID experiment.
//
// Each file holds one whitespace-delimited row of time, real and imaginary
// part per sample. The role of a file follows from its name:
//
//	FID_C*.dat         sample FID          (signal.RoleFID)
//	FID_Empty*.dat     empty-probe FID     (signal.RoleFIDEmpty)
//	FID_Water*.dat     water reference FID (signal.RoleFIDWater)
//	Cellulose*_<n>_c.dat  sample solid echo at echo time n (signal.RoleSE)
//	Empty*_<n>_c.dat      empty-probe solid echo at echo time n (signal.RoleSEEmpty)
//
// Files matching no pattern are ignored.
package dataset
