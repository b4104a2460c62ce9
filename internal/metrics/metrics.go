package metrics

import (
	"fmt"
	"math"
	"sort"
)

// MeanSeries computes the element-wise mean across per-fold series. All
// series must share length; a mismatch is rejected rather than silently
// truncated.
func MeanSeries(series [][]float64) ([]float64, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("no series to average")
	}
	n := len(series[0])
	for i, s := range series {
		if len(s) != n {
			return nil, fmt.Errorf("series length mismatch: fold 0 has %d checkpoints, fold %d has %d", n, i, len(s))
		}
	}

	mean := make([]float64, n)
	for _, s := range series {
		for j, v := range s {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(len(series))
	}
	return mean, nil
}

// TrailingStats returns the mean, max and min over the last n checkpoints
// of every fold's series, flattened across folds. n clamps to the series
// length.
func TrailingStats(series [][]float64, n int) (mean, max, min float64) {
	var vals []float64
	for _, s := range series {
		start := len(s) - n
		if start < 0 {
			start = 0
		}
		vals = append(vals, s[start:]...)
	}
	if len(vals) == 0 {
		return 0, 0, 0
	}

	min = vals[0]
	max = vals[0]
	sum := 0.0
	for _, v := range vals {
		sum += v
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	return sum / float64(len(vals)), max, min
}

// FilterActive keeps the values at indices where the parallel mask is
// nonzero.
func FilterActive(values, mask []float64) []float64 {
	filtered := make([]float64, 0, len(values))
	for i, v := range values {
		if i < len(mask) && mask[i] != 0 {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// DistinctCount returns the number of distinct values in labels.
func DistinctCount(labels []float64) int {
	seen := make(map[float64]bool, len(labels))
	for _, v := range labels {
		seen[v] = true
	}
	return len(seen)
}

// RMSD is the root mean squared deviation between predictions and labels.
func RMSD(preds, labels []float64) float64 {
	if len(preds) == 0 || len(preds) != len(labels) {
		return 0
	}
	sum := 0.0
	for i := range preds {
		d := preds[i] - labels[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(preds)))
}

// RSquared is the coefficient of determination of est against the
// reference sequence ref.
func RSquared(ref, est []float64) float64 {
	if len(ref) == 0 || len(ref) != len(est) {
		return 0
	}

	refMean := 0.0
	for _, v := range ref {
		refMean += v
	}
	refMean /= float64(len(ref))

	ssRes := 0.0
	ssTot := 0.0
	for i := range ref {
		d := ref[i] - est[i]
		ssRes += d * d
		m := ref[i] - refMean
		ssTot += m * m
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

// ROCCurve sweeps a threshold over the scores in descending order and
// returns the false and true positive rates at every distinct score,
// starting from (0, 0). Labels are binary: nonzero means positive.
func ROCCurve(labels, scores []float64) (fpr, tpr []float64) {
	type scored struct {
		score float64
		pos   bool
	}

	pairs := make([]scored, len(scores))
	pos := 0.0
	neg := 0.0
	for i, s := range scores {
		pairs[i] = scored{score: s, pos: labels[i] != 0}
		if pairs[i].pos {
			pos++
		} else {
			neg++
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].score > pairs[j].score
	})

	fpr = []float64{0}
	tpr = []float64{0}
	tp := 0.0
	fp := 0.0
	for i, p := range pairs {
		if p.pos {
			tp++
		} else {
			fp++
		}
		// ties share one threshold
		if i+1 < len(pairs) && pairs[i+1].score == p.score {
			continue
		}
		fpr = append(fpr, safeDivide(fp, neg))
		tpr = append(tpr, safeDivide(tp, pos))
	}
	return fpr, tpr
}

// AUC is the area under the ROC curve, integrated trapezoidally.
func AUC(labels, scores []float64) float64 {
	fpr, tpr := ROCCurve(labels, scores)
	area := 0.0
	for i := 1; i < len(fpr); i++ {
		area += (fpr[i] - fpr[i-1]) * (tpr[i] + tpr[i-1]) / 2
	}
	return area
}

func safeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0.0
	}
	result := numerator / denominator
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0.0
	}
	return result
}
