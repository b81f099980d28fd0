package kpi

// DSCRStatus is the solvency judgment derived from a debt service coverage ratio.
type DSCRStatus string

const (
	DSCRInsufficient DSCRStatus = "insufficient"
	DSCRMarginal     DSCRStatus = "marginal"
	DSCRSound        DSCRStatus = "sound"
)

// Coverage thresholds. A DSCR below DSCRMarginalThreshold does not cover the
// debt service; at or above DSCRSoundThreshold it is considered safe.
const (
	DSCRMarginalThreshold = 1.0
	DSCRSoundThreshold    = 1.2
)

// ClassifyDSCR maps a DSCR onto its status band.
func ClassifyDSCR(dscr float64) DSCRStatus {
	switch {
	case dscr < DSCRMarginalThreshold:
		return DSCRInsufficient
	case dscr < DSCRSoundThreshold:
		return DSCRMarginal
	default:
		return DSCRSound
	}
}
