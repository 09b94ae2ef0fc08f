package widgets

import "strings"

var sparks = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws values as a row of block characters scaled between the
// smallest and the largest value.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	minVal, maxVal := values[0], values[0]
	for _, v := range values {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	rangeVal := maxVal - minVal
	if rangeVal == 0 {
		rangeVal = 1
	}

	var result strings.Builder
	for _, v := range values {
		pos := int(((v - minVal) / rangeVal) * float64(len(sparks)-1))
		if pos < 0 {
			pos = 0
		}
		if pos >= len(sparks) {
			pos = len(sparks) - 1
		}
		result.WriteRune(sparks[pos])
	}
	return result.String()
}

// Histogram counts timestamps into n equal buckets spanning [start, end].
// Timestamps outside the span are ignored.
func Histogram(timestamps []int64, start, end int64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	span := end - start
	for _, ts := range timestamps {
		if ts < start || ts > end {
			continue
		}
		i := 0
		if span > 0 {
			i = int((ts - start) * int64(n) / (span + 1))
		}
		out[i]++
	}
	return out
}
