// Package format provides display formatting helpers.
package format

import "fmt"

// Large renders a magnitude as an abbreviated human-readable string:
// trillions, billions and millions get a T/B/M suffix, anything smaller
// is printed plain with 2 decimals.
func Large(v float64) string {
	switch {
	case v >= 1e12:
		return fmt.Sprintf("%.2fT", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// LargeAny is Large for loosely-typed inputs: non-numeric values render
// as "N/A". Used where provider payload values may not be numbers.
func LargeAny(v any) string {
	switch n := v.(type) {
	case float64:
		return Large(n)
	case float32:
		return Large(float64(n))
	case int:
		return Large(float64(n))
	case int64:
		return Large(float64(n))
	default:
		return "N/A"
	}
}
