// Package combine merges per-fold cross-validation results into combined
// tables, final-iteration metrics and diagnostic plots.
package combine

import (
	"fmt"

	"cvcombine/internal/folds"
	"cvcombine/internal/metrics"
	"cvcombine/internal/resultsio"
)

// lastIters is the trailing iteration window summarized on ROC plots.
const lastIters = 1000

// Renderer draws the diagnostic plots. plotting.Plotter is the production
// implementation.
type Renderer interface {
	TrainingCurve(path string, train, test []float64) error
	ROC(path string, fpr, tpr []float64, auc float64, note string) error
	Correlation(path string, labels, preds []float64, rmsd, r2 float64) error
}

// Input carries the accumulated cross-fold data for one metric family and
// one data source: per-fold per-checkpoint series plus the pooled final
// labels and predictions of every fold concatenated.
type Input struct {
	TestSeries  [][]float64
	TrainSeries [][]float64
	TestLabels  []float64
	TestPreds   []float64
	TrainLabels []float64
	TrainPreds  []float64

	// Optional parallel masks restricting affinity scoring to active
	// compounds.
	ActiveTest  []float64
	ActiveTrain []float64
}

type Combiner struct {
	Config   folds.Config
	Renderer Renderer
}

// Combine writes the combined tables and plots for one metric family and
// one data source.
func (c *Combiner) Combine(in Input, affinity, second bool) error {
	metric := "auc"
	if affinity {
		metric = "rmsd"
	}
	two := ""
	if second {
		two = "2"
	}

	meanTest, err := metrics.MeanSeries(in.TestSeries)
	if err != nil {
		return fmt.Errorf("test %s series: %w", metric, err)
	}
	meanTrain, err := metrics.MeanSeries(in.TrainSeries)
	if err != nil {
		return fmt.Errorf("train %s series: %w", metric, err)
	}

	testTable := append([][]float64{meanTest}, in.TestSeries...)
	if err := resultsio.WriteTable(fmt.Sprintf("%s.%s.test%s", c.Config.Prefix, metric, two), testTable, ""); err != nil {
		return err
	}
	trainTable := append([][]float64{meanTrain}, in.TrainSeries...)
	if err := resultsio.WriteTable(fmt.Sprintf("%s.%s.train%s", c.Config.Prefix, metric, two), trainTable, ""); err != nil {
		return err
	}

	plotFile := fmt.Sprintf("%s_%s_train%s.pdf", c.Config.Prefix, metric, two)
	if err := c.Renderer.TrainingCurve(plotFile, meanTrain, meanTest); err != nil {
		return fmt.Errorf("training plot: %w", err)
	}

	if affinity {
		if err := c.affinitySplit("test", in.TestPreds, in.TestLabels, in.ActiveTest, two); err != nil {
			return err
		}
		return c.affinitySplit("train", in.TrainPreds, in.TrainLabels, in.ActiveTrain, two)
	}

	if err := c.classificationSplit("test", in.TestSeries, in.TestLabels, in.TestPreds, two); err != nil {
		return err
	}
	return c.classificationSplit("train", in.TrainSeries, in.TrainLabels, in.TrainPreds, two)
}

// affinitySplit scores the pooled final affinities of one split, filtered
// to active compounds when a mask is supplied.
func (c *Combiner) affinitySplit(split string, preds, labels, active []float64, two string) error {
	if len(active) > 0 {
		preds = metrics.FilterActive(preds, active)
		labels = metrics.FilterActive(labels, active)
	}

	rmsd := metrics.RMSD(preds, labels)
	r2 := metrics.RSquared(preds, labels)

	table := fmt.Sprintf("%s.rmsd.final%s%s", c.Config.Prefix, split, two)
	footer := fmt.Sprintf("RMSD,R^2 %f %f", rmsd, r2)
	if err := resultsio.WriteTable(table, [][]float64{preds, labels}, footer); err != nil {
		return err
	}

	plotFile := fmt.Sprintf("%s_corr_%s%s.pdf", c.Config.Prefix, split, two)
	if err := c.Renderer.Correlation(plotFile, labels, preds, rmsd, r2); err != nil {
		return fmt.Errorf("correlation plot: %w", err)
	}
	return nil
}

// classificationSplit scores the pooled final predictions of one split. A
// single-class label pool cannot define an ROC curve, so such splits are
// skipped without error.
func (c *Combiner) classificationSplit(split string, series [][]float64, labels, preds []float64, two string) error {
	if metrics.DistinctCount(labels) < 2 {
		return nil
	}

	window := lastIters / c.Config.TestInterval
	meanAUC, maxAUC, minAUC := metrics.TrailingStats(series, window)
	note := fmt.Sprintf("For the last %d iterations:\nmean AUC=%.2f  max AUC=%.2f  min AUC=%.2f",
		lastIters, meanAUC, maxAUC, minAUC)

	fpr, tpr := metrics.ROCCurve(labels, preds)
	auc := metrics.AUC(labels, preds)

	table := fmt.Sprintf("%s.auc.final%s%s", c.Config.Prefix, split, two)
	if err := resultsio.WriteTable(table, [][]float64{labels, preds}, fmt.Sprintf("AUC %f", auc)); err != nil {
		return err
	}

	plotFile := fmt.Sprintf("%s_roc_%s%s.pdf", c.Config.Prefix, split, two)
	if err := c.Renderer.ROC(plotFile, fpr, tpr, auc, note); err != nil {
		return fmt.Errorf("roc plot: %w", err)
	}
	return nil
}
