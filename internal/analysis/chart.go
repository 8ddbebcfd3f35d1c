package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Highlight marks one value on a distribution chart.
type Highlight struct {
	Value float64
	Label string
	// Percentile is shown next to the marker when HasPercentile is set.
	Percentile    float64
	HasPercentile bool
}

// ChartOptions controls chart layout. Zero values use defaults.
type ChartOptions struct {
	Width          int
	MaxBins        int
	PreferDiscrete bool
}

const (
	defaultChartWidth = 30
	defaultMaxBins    = 10
)

// DistributionChart renders values as horizontal ASCII bars. Integer data with few distinct
// values (or PreferDiscrete) gets one bar per value, everything else is binned.
func DistributionChart(values []float64, hl *Highlight, opts ChartOptions) []string {
	if len(values) == 0 {
		return nil
	}
	width := opts.Width
	if width <= 0 {
		width = defaultChartWidth
	}
	maxBins := opts.MaxBins
	if maxBins <= 0 {
		maxBins = defaultMaxBins
	}

	minV, maxV := values[0], values[0]
	asInt := true
	unique := make(map[float64]int)
	for _, v := range values {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
		if math.Abs(v-math.Round(v)) >= 1e-9 {
			asInt = false
		}
		unique[v]++
	}

	if maxV == minV {
		marker := ""
		if hl != nil {
			marker = fmt.Sprintf(" <-- %s %s", hl.Label, formatSingle(hl.Value, asInt))
		}
		return []string{
			fmt.Sprintf("%12s | Bar (count)", "Value"),
			fmt.Sprintf("%12s | %s (%d)%s", formatSingle(minV, asInt), strings.Repeat("#", width), len(values), marker),
		}
	}

	if asInt && (opts.PreferDiscrete || len(unique) <= maxBins) {
		return discreteChart(unique, hl, width, asInt)
	}
	return binnedChart(values, minV, maxV, min(maxBins, len(unique)), hl, width, asInt)
}

func discreteChart(counts map[float64]int, hl *Highlight, width int, asInt bool) []string {
	keys := make([]float64, 0, len(counts))
	maxCount := 0
	for v, c := range counts {
		keys = append(keys, v)
		maxCount = max(maxCount, c)
	}
	sort.Float64s(keys)

	lines := []string{fmt.Sprintf("%12s | Bar (count)", "Value")}
	for _, v := range keys {
		c := counts[v]
		marker := ""
		if hl != nil && math.Abs(hl.Value-v) < 1e-9 {
			marker = highlightMarker(hl, asInt)
		}
		lines = append(lines, fmt.Sprintf("%12.1f | %s (%d)%s", v, bar(c, maxCount, width), c, marker))
	}
	return lines
}

func binnedChart(values []float64, minV, maxV float64, bins int, hl *Highlight, width int, asInt bool) []string {
	if bins <= 0 {
		bins = 1
	}
	step := (maxV - minV) / float64(bins)
	if step == 0 {
		step = 1
	}

	counts := make([]int, bins)
	for _, v := range values {
		counts[clampIndex(int((v-minV)/step), bins)]++
	}
	maxCount := 0
	for _, c := range counts {
		maxCount = max(maxCount, c)
	}

	hlIndex := -1
	if hl != nil {
		idx := int((hl.Value - minV) / step)
		switch {
		case idx >= 0 && idx < bins:
			hlIndex = idx
		case hl.Value >= maxV:
			hlIndex = bins - 1
		}
	}

	lines := []string{fmt.Sprintf("%12s | Bar (count)", "Range")}
	for i := 0; i < bins; i++ {
		start := minV + float64(i)*step
		end := maxV
		if i < bins-1 {
			end = minV + float64(i+1)*step
		}
		marker := ""
		if i == hlIndex {
			marker = highlightMarker(hl, asInt)
		}
		label := fmt.Sprintf("%.1f-%.1f", start, end)
		lines = append(lines, fmt.Sprintf("%12s | %s (%d)%s", label, bar(counts[i], maxCount, width), counts[i], marker))
	}
	return lines
}

func highlightMarker(hl *Highlight, asInt bool) string {
	marker := fmt.Sprintf(" <-- %s %s", hl.Label, formatSingle(hl.Value, asInt))
	if hl.HasPercentile {
		marker += fmt.Sprintf(" (%s)", formatPercentile(hl.Percentile, true))
	}
	return marker
}

// bar scales count against maxCount; any non-zero count gets at least one mark.
func bar(count, maxCount, width int) string {
	if maxCount == 0 {
		return ""
	}
	n := int(math.RoundToEven(float64(count) / float64(maxCount) * float64(width)))
	if count > 0 && n == 0 {
		n = 1
	}
	return strings.Repeat("#", n)
}

func clampIndex(i, n int) int {
	if i >= n {
		return n - 1
	}
	if i < 0 {
		return 0
	}
	return i
}

func formatSingle(v float64, asInt bool) string {
	if asInt {
		return fmt.Sprintf("%d", int(math.Round(v)))
	}
	return fmt.Sprintf("%.1f", v)
}
