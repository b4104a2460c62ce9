// Package plotting renders the diagnostic plots for combined fold results
// as vector PDF files.
package plotting

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	trainColor = color.RGBA{R: 20, G: 80, B: 200, A: 255}
	testColor  = color.RGBA{R: 200, G: 30, B: 30, A: 255}
)

type Plotter struct{}

func New() *Plotter {
	return &Plotter{}
}

// TrainingCurve plots the mean train and test metric over checkpoint index.
func (*Plotter) TrainingCurve(path string, train, test []float64) error {
	p := plot.New()
	p.X.Label.Text = "Checkpoint"
	p.Y.Label.Text = "Metric"

	trainLine, err := plotter.NewLine(seriesXYs(train))
	if err != nil {
		return err
	}
	trainLine.Color = trainColor
	p.Add(trainLine)
	p.Legend.Add("Train", trainLine)

	testLine, err := plotter.NewLine(seriesXYs(test))
	if err != nil {
		return err
	}
	testLine.Color = testColor
	p.Add(testLine)
	p.Legend.Add("Test", testLine)

	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p.Save(8*vg.Inch, 6*vg.Inch, path)
}

// ROC plots a ROC curve with the trailing-window summary as the title.
func (*Plotter) ROC(path string, fpr, tpr []float64, auc float64, note string) error {
	p := plot.New()
	p.Title.Text = note
	p.X.Label.Text = "False Positive Rate"
	p.Y.Label.Text = "True Positive Rate"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	line, err := plotter.NewLine(pairXYs(fpr, tpr))
	if err != nil {
		return err
	}
	line.Width = vg.Points(4)
	line.Color = trainColor
	p.Add(line)
	p.Legend.Add(fmt.Sprintf("CNN (AUC=%.2f)", auc), line)
	p.Legend.Top = false
	p.Legend.Left = false

	p.Add(plotter.NewGrid())
	return p.Save(8*vg.Inch, 8*vg.Inch, path)
}

// Correlation plots predicted against experimental affinity with matched
// axis ranges spanning the joint min/max of both sequences.
func (*Plotter) Correlation(path string, labels, preds []float64, rmsd, r2 float64) error {
	p := plot.New()
	p.X.Label.Text = "Experimental Affinity"
	p.Y.Label.Text = "Predicted Affinity"

	scatter, err := plotter.NewScatter(pairXYs(labels, preds))
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Color = trainColor
	scatter.GlyphStyle.Radius = vg.Points(2.8)
	p.Add(scatter)
	p.Legend.Add(fmt.Sprintf("RMSD=%.2f, R^2=%.3f (Pos)", rmsd, r2), scatter)

	lo, hi := jointRange(labels, preds)
	p.X.Min, p.X.Max = lo, hi
	p.Y.Min, p.Y.Max = lo, hi

	p.Add(plotter.NewGrid())
	return p.Save(8*vg.Inch, 8*vg.Inch, path)
}

func seriesXYs(series []float64) plotter.XYs {
	xys := make(plotter.XYs, len(series))
	for i, v := range series {
		xys[i] = plotter.XY{X: float64(i), Y: v}
	}
	return xys
}

func pairXYs(xs, ys []float64) plotter.XYs {
	xys := make(plotter.XYs, len(xs))
	for i := range xs {
		xys[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	return xys
}

func jointRange(a, b []float64) (lo, hi float64) {
	if len(a) == 0 && len(b) == 0 {
		return 0, 1
	}
	first := true
	for _, vals := range [][]float64{a, b} {
		for _, v := range vals {
			if first {
				lo, hi = v, v
				first = false
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return lo, hi
}
