// Package analysis measures the shape of a generated galaxy.
//
//   - [Compute]: radial histogram, radius and thickness moments, branch occupancy
//   - [Compute] also recovers the arm count from the angular power spectrum
//   - [Chart]: asciigraph plot of the radial density
//   - [TopDown]: ASCII density map of the disc seen from above
//
// # Arm Detection
//
// Each particle's polar angle is unwound by its spin offset and binned; the
// strongest non-zero harmonic of that histogram is the number of arms:
//
//	prof, _ := analysis.Compute(buf, params, 32)
//	fmt.Println(prof.DominantArms) // params.Branches for low randomness
package analysis
