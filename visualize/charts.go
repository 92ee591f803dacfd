// Package visualize renders fitted models and evaluation results with
// gonum/plot. The output format follows the file extension (.png, .svg,
// .pdf, ...).
package visualize

import (
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/pointml/dataset"
	"github.com/YuminosukeSato/pointml/linear"
	"github.com/YuminosukeSato/pointml/metrics"
	"github.com/YuminosukeSato/pointml/neighbors"
	"github.com/YuminosukeSato/pointml/pkg/errors"
	"github.com/YuminosukeSato/pointml/preprocessing"
	"gonum.org/v1/gonum/mat"
)

// Size is the width and height of every chart.
const Size = 5 * vg.Inch

var clusterColors = []color.RGBA{
	{R: 220, G: 50, B: 50, A: 255},
	{R: 50, G: 90, B: 220, A: 255},
	{R: 40, G: 160, B: 70, A: 255},
	{R: 230, G: 150, B: 20, A: 255},
	{R: 140, G: 60, B: 180, A: 255},
}

// RegressionChart plots actual against predicted values with the identity
// line for reference.
func RegressionChart(residuals []metrics.Residual, path string) error {
	if len(residuals) == 0 {
		return errors.NewModelError("visualize.RegressionChart", "empty data", errors.ErrEmptyData)
	}

	p := plot.New()
	p.Title.Text = "Predicted vs actual"
	p.X.Label.Text = "actual"
	p.Y.Label.Text = "predicted"

	pts := make(plotter.XYs, len(residuals))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, r := range residuals {
		pts[i] = plotter.XY{X: r.Actual, Y: r.Predicted}
		lo = math.Min(lo, math.Min(r.Actual, r.Predicted))
		hi = math.Max(hi, math.Max(r.Actual, r.Predicted))
	}

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "scatter")
	}
	s.Color = clusterColors[1]

	identity, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return errors.Wrap(err, "identity line")
	}
	identity.Color = color.Gray{Y: 128}
	identity.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(plotter.NewGrid(), identity, s)
	return save(p, path)
}

// SweepChart plots leave-one-out successes against k.
func SweepChart(results []neighbors.SweepResult, path string) error {
	if len(results) == 0 {
		return errors.NewModelError("visualize.SweepChart", "empty data", errors.ErrEmptyData)
	}

	p := plot.New()
	p.Title.Text = "Leave-one-out successes"
	p.X.Label.Text = "k"
	p.Y.Label.Text = "successes"

	pts := make(plotter.XYs, len(results))
	for i, r := range results {
		pts[i] = plotter.XY{X: float64(r.K), Y: float64(r.Successes)}
	}
	l, s, err := plotter.NewLinePoints(pts)
	if err != nil {
		return errors.Wrap(err, "line")
	}
	l.Color = clusterColors[1]
	s.Color = clusterColors[1]
	p.Add(plotter.NewGrid(), l, s)

	if best, err := neighbors.Best(results); err == nil {
		marker, err := plotter.NewScatter(plotter.XYs{{X: float64(best.K), Y: float64(best.Successes)}})
		if err != nil {
			return errors.Wrap(err, "best k")
		}
		marker.Shape = draw.CircleGlyph{}
		marker.Radius = vg.Points(5)
		marker.Color = clusterColors[0]
		p.Add(marker)
		p.Legend.Add("best k", marker)
	}
	return save(p, path)
}

// ClusterChart plots labeled points, one color per cluster.
func ClusterChart(points []dataset.LabeledPoint, path string) error {
	if len(points) == 0 {
		return errors.NewModelError("visualize.ClusterChart", "empty data", errors.ErrEmptyData)
	}

	p := plot.New()
	p.Title.Text = "Clusters"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	// Group by label in first-seen order so colors are stable.
	var order []int
	groups := make(map[int]plotter.XYs)
	for _, pt := range points {
		if _, ok := groups[pt.Cluster]; !ok {
			order = append(order, pt.Cluster)
		}
		groups[pt.Cluster] = append(groups[pt.Cluster], plotter.XY{X: pt.X, Y: pt.Y})
	}

	for i, label := range order {
		s, err := plotter.NewScatter(groups[label])
		if err != nil {
			return errors.Wrapf(err, "cluster %d", label)
		}
		s.Color = clusterColors[i%len(clusterColors)]
		p.Add(s)
		p.Legend.Add(labelName(label), s)
	}
	return save(p, path)
}

// DecisionChart plots samples colored by their ±1 class, marks the ones the
// classifier gets wrong, and draws the zero level of its decision function.
func DecisionChart(ds dataset.Dataset, clf *linear.LogisticRegression, path string) error {
	F, y, err := preprocessing.QuadraticDesign(ds)
	if err != nil {
		return err
	}
	pred, err := clf.Predict(F)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = "Logistic decision boundary"
	p.X.Label.Text = "x1"
	p.Y.Label.Text = "x2"

	var pos, neg, wrong plotter.XYs
	for i, s := range ds {
		xy := plotter.XY{X: s.X1, Y: s.X2}
		if y.AtVec(i) > 0 {
			pos = append(pos, xy)
		} else {
			neg = append(neg, xy)
		}
		if pred.AtVec(i) != y.AtVec(i) {
			wrong = append(wrong, xy)
		}
	}

	edge, err := boundaryPoints(ds, clf, 200)
	if err != nil {
		return err
	}
	if len(edge) > 0 {
		b, err := plotter.NewScatter(edge)
		if err != nil {
			return errors.Wrap(err, "boundary")
		}
		b.Shape = draw.CircleGlyph{}
		b.Radius = vg.Points(0.8)
		b.Color = color.Gray{Y: 90}
		p.Add(b)
	}

	for i, group := range []struct {
		name string
		pts  plotter.XYs
	}{{"+1", pos}, {"-1", neg}} {
		if len(group.pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(group.pts)
		if err != nil {
			return errors.Wrap(err, "class scatter")
		}
		s.Color = clusterColors[i]
		p.Add(s)
		p.Legend.Add(group.name, s)
	}
	if len(wrong) > 0 {
		s, err := plotter.NewScatter(wrong)
		if err != nil {
			return errors.Wrap(err, "misclassified")
		}
		s.Shape = draw.CrossGlyph{}
		s.Radius = vg.Points(5)
		p.Add(s)
		p.Legend.Add("misclassified", s)
	}
	return save(p, path)
}

// boundaryPoints traces the zero level of the decision function. For each
// of steps x values it scans steps y values and linearly interpolates every
// sign change.
func boundaryPoints(ds dataset.Dataset, clf *linear.LogisticRegression, steps int) (plotter.XYs, error) {
	x1, x2, _ := ds.Columns()
	xs := span(x1, steps)
	ys := span(x2, steps)

	F := mat.NewDense(len(xs)*len(ys), len(preprocessing.QuadraticColumns), nil)
	for c, xv := range xs {
		for r, yv := range ys {
			F.SetRow(c*len(ys)+r, preprocessing.QuadraticRow(xv, yv))
		}
	}
	scores, err := clf.DecisionFunction(F)
	if err != nil {
		return nil, err
	}

	var edge plotter.XYs
	for c, xv := range xs {
		for r := 1; r < len(ys); r++ {
			z0 := scores.AtVec(c*len(ys) + r - 1)
			z1 := scores.AtVec(c*len(ys) + r)
			if (z0 < 0) == (z1 < 0) {
				continue
			}
			t := z0 / (z0 - z1)
			edge = append(edge, plotter.XY{X: xv, Y: ys[r-1] + t*(ys[r]-ys[r-1])})
		}
	}
	return edge, nil
}

// span returns steps evenly spaced values covering vals with a 5% margin.
func span(vals []float64, steps int) []float64 {
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	pad := 0.05 * (hi - lo)
	if pad == 0 {
		pad = 1
	}
	lo, hi = lo-pad, hi+pad

	out := make([]float64, steps)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(steps-1)
	}
	return out
}

func labelName(label int) string {
	return "cluster " + strconv.Itoa(label)
}

func save(p *plot.Plot, path string) error {
	if err := p.Save(Size, Size, path); err != nil {
		return errors.Wrapf(err, "save chart %s", path)
	}
	return nil
}
