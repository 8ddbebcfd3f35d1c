package analysis

import (
	"fmt"
	"math"
)

const rankTolerance = 1e-9

// Ordinal renders 1 as 1st, 12 as 12th, 23 as 23rd.
func Ordinal(n int) string {
	rem := n % 100
	if rem >= 10 && rem <= 20 {
		return fmt.Sprintf("%dth", n)
	}
	switch n % 10 {
	case 1:
		return fmt.Sprintf("%dst", n)
	case 2:
		return fmt.Sprintf("%dnd", n)
	case 3:
		return fmt.Sprintf("%drd", n)
	default:
		return fmt.Sprintf("%dth", n)
	}
}

// ComputeRank places value among values. rank is 1 + the number of strictly better values,
// tied counts values equal to value (itself included when present). Empty input ranks 0.
func ComputeRank(value float64, values []float64, higherIsBetter bool) (rank, tied, total int) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	better := 0
	for _, v := range values {
		if higherIsBetter && v > value+rankTolerance {
			better++
		}
		if !higherIsBetter && v < value-rankTolerance {
			better++
		}
		if math.Abs(v-value) <= rankTolerance {
			tied++
		}
	}
	return better + 1, tied, len(values)
}

// TopRankAnnotation describes value's all-time placing when it is inside the top n,
// for example "3rd all-time" or "tied for 1st all-time".
func TopRankAnnotation(value float64, values []float64, higherIsBetter bool, topN int) (string, bool) {
	rank, tied, _ := ComputeRank(value, values, higherIsBetter)
	if rank == 0 || rank > topN {
		return "", false
	}
	if tied > 1 {
		return fmt.Sprintf("tied for %s all-time", Ordinal(rank)), true
	}
	return fmt.Sprintf("%s all-time", Ordinal(rank)), true
}

// PercentileRank is the share of data at or below value, in percent.
func PercentileRank(value float64, data []float64) (float64, bool) {
	if len(data) == 0 {
		return 0, false
	}
	count := 0
	for _, v := range data {
		if v <= value {
			count++
		}
	}
	return float64(count) / float64(len(data)) * 100, true
}

func formatPercentile(p float64, ok bool) string {
	if !ok {
		return "percentile unavailable"
	}
	return fmt.Sprintf("%.1f percentile", p)
}
