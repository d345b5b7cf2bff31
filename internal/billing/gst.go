package billing

import "math"

// DefaultGSTRate is the standard GST percentage applied to promotion packages.
const DefaultGSTRate = 18.0

// Breakdown is a derived tax split, recomputed on demand. All amounts are
// major currency units rounded to two decimals.
type Breakdown struct {
	BaseAmount  float64 `json:"baseAmount"`
	GSTRate     float64 `json:"gstRate"`
	GSTAmount   float64 `json:"gstAmount"`
	TotalAmount float64 `json:"totalAmount"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalculateGST splits a base amount into its GST components. Pure, no I/O.
func CalculateGST(baseAmount, gstRate float64) Breakdown {
	gstAmount := round2(baseAmount * gstRate / 100)
	return Breakdown{
		BaseAmount:  round2(baseAmount),
		GSTRate:     gstRate,
		GSTAmount:   gstAmount,
		TotalAmount: round2(baseAmount + gstAmount),
	}
}
