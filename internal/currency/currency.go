// Package currency provides the fixed display-currency conversion table.
package currency

// Conversion multipliers applied to the provider's raw USD figures.
// The table is static; there is no live FX lookup.
var multipliers = map[string]float64{
	"USD": 1.0,
	"INR": 84.3,
	"EUR": 0.93,
}

// codes preserves the selector display order.
var codes = []string{"USD", "INR", "EUR"}

// Multiplier returns the conversion factor for a currency code.
func Multiplier(code string) (float64, bool) {
	m, ok := multipliers[code]
	return m, ok
}

// Convert applies the conversion factor for code to v. Unknown codes leave
// the value unchanged.
func Convert(v float64, code string) float64 {
	if m, ok := multipliers[code]; ok {
		return v * m
	}
	return v
}

// Supported returns the selectable currency codes in display order.
func Supported() []string {
	out := make([]string, len(codes))
	copy(out, codes)
	return out
}

// IsSupported reports whether code is in the conversion table.
func IsSupported(code string) bool {
	_, ok := multipliers[code]
	return ok
}
