package main

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/urfave/cli/v2"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goregress/core/matrix"
	"github.com/YuminosukeSato/goregress/datasets"
	"github.com/YuminosukeSato/goregress/linear"
	"github.com/YuminosukeSato/goregress/metrics"
	"github.com/YuminosukeSato/goregress/neighbors"
	"github.com/YuminosukeSato/goregress/pkg/errors"
	"github.com/YuminosukeSato/goregress/pkg/log"
	"github.com/YuminosukeSato/goregress/plotting"
	"github.com/YuminosukeSato/goregress/preprocessing"
	"github.com/YuminosukeSato/goregress/rbf"
)

// predictor は Predict が列行列を返すモデル
type predictor interface {
	Fit(X, y mat.Matrix) error
	Predict(X mat.Matrix) (mat.Matrix, error)
}

func loadTable(c *cli.Context) (*datasets.Table, error) {
	if c.NArg() != 1 {
		return nil, errors.NewValidationError("args", fmt.Sprintf("usage: %s %s %s", c.App.Name, c.Command.Name, c.Command.ArgsUsage), c.Args().Slice())
	}
	return datasets.ReadFile(c.Args().First())
}

func loadXY(c *cli.Context) (*mat.Dense, *mat.Dense, error) {
	t, err := loadTable(c)
	if err != nil {
		return nil, nil, err
	}
	return t.SplitLastColumn()
}

// seed は --seed が 0 のとき現在時刻を返す
func seed(c *cli.Context) int64 {
	if s := c.Int64(flagSeed); s != 0 {
		return s
	}
	return time.Now().UnixNano()
}

// rowIndex はプロットの x 軸に使う 0..n-1
func rowIndex(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}

func fitPredict(m predictor, x, y *mat.Dense) ([]float64, error) {
	if err := m.Fit(x, y); err != nil {
		return nil, err
	}
	yHat, err := m.Predict(x)
	if err != nil {
		return nil, err
	}
	return matrix.Column(yHat, 0), nil
}

// addSeries は予測値をプロット対象に加える。発散して有限でない系列は描画できないため除外する。
func addSeries(chart *plotting.Chart, name string, ys []float64) {
	for _, v := range ys {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			log.GetLogger().Warn("series dropped from plot", "series", name, "reason", "non-finite predictions")
			return
		}
	}
	chart.Series = append(chart.Series, ys)
	chart.Names = append(chart.Names, name)
}

func savePlot(c *cli.Context, chart plotting.Chart) error {
	out := c.String(flagOut)
	if err := chart.Save(out); err != nil {
		return err
	}
	log.GetLogger().Info("plot saved", "path", out, "format", plotting.Format(out))
	fmt.Fprintf(c.App.Writer, "wrote %s\n", out)
	return nil
}

func printScore(c *cli.Context, name string, yTrue, yHat []float64) error {
	mse, err := metrics.MSE(yTrue, yHat)
	if err != nil {
		return err
	}
	r2, err := metrics.R2Score(yTrue, yHat)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%-8s MSE=%.6g R2=%.6g\n", name, mse, r2)
	return nil
}

func runSimple(c *cli.Context) error {
	t, err := loadTable(c)
	if err != nil {
		return err
	}
	if t.Cols < 2 {
		return errors.NewDimensionError("simple", 2, t.Cols, 1)
	}
	x, y := t.Column(0), t.Column(1)

	m := linear.NewSimpleLinearRegression()
	if err := m.Fit(x, y); err != nil {
		return err
	}
	yHat, err := m.PredictList(x)
	if err != nil {
		return err
	}
	b0, b1 := m.Coefficients()
	fmt.Fprintf(c.App.Writer, "y = %.6g + %.6g x\n", b0, b1)
	if err := printScore(c, "simple", y, yHat); err != nil {
		return err
	}

	return savePlot(c, plotting.Chart{
		Title:  "simple linear regression",
		X:      x,
		Series: [][]float64{y, yHat},
		Names:  []string{"original", "predicted"},
	})
}

func runLinear(c *cli.Context) error {
	x, y, err := loadXY(c)
	if err != nil {
		return err
	}
	yTrue := matrix.Column(y, 0)

	m := linear.NewLinearRegression()
	yHat, err := fitPredict(m, x, y)
	if err != nil {
		return err
	}
	if err := printScore(c, "linear", yTrue, yHat); err != nil {
		return err
	}

	return savePlot(c, plotting.Chart{
		Title:  "linear regression",
		X:      rowIndex(len(yTrue)),
		Series: [][]float64{yTrue, yHat},
		Names:  []string{"original", "predicted"},
	})
}

func runPoly(c *cli.Context) error {
	x, y, err := loadXY(c)
	if err != nil {
		return err
	}
	yTrue := matrix.Column(y, 0)
	s := seed(c)
	degree := c.Int(flagDegree)
	epochs := c.Int(flagEpochs)
	lr := c.Float64(flagLearningRate)

	chart := plotting.Chart{
		Title:  "polynomial regression",
		X:      rowIndex(len(yTrue)),
		Series: [][]float64{yTrue},
		Names:  []string{"original"},
	}
	for _, run := range []struct {
		kind   linear.LossKind
		epochs int
	}{
		{linear.MSE, epochs},
		{linear.MAE, epochs},
		{linear.Huber, 3 * epochs},
	} {
		m, err := linear.NewPolynomialRegression(degree, run.kind,
			linear.WithEpochs(run.epochs),
			linear.WithLearningRate(lr),
			linear.WithRandomState(s),
		)
		if err != nil {
			return err
		}
		yHat, err := fitPredict(m, x, y)
		if err != nil {
			return errors.Wrapf(err, "%s", run.kind)
		}
		if err := printScore(c, run.kind.String(), yTrue, yHat); err != nil {
			return err
		}
		addSeries(&chart, run.kind.String(), yHat)
	}

	m, err := rbf.NewRBFRegression(c.Float64(flagBeta), c.Int(flagCenters), degree, rbf.WithRandomState(s))
	if err != nil {
		return err
	}
	yHat, err := fitPredict(m, x, y)
	if err != nil {
		return errors.Wrap(err, "RBF")
	}
	if err := printScore(c, "RBF", yTrue, yHat); err != nil {
		return err
	}
	addSeries(&chart, "RBF", yHat)

	return savePlot(c, chart)
}

func runRBF(c *cli.Context) error {
	x, y, err := loadXY(c)
	if err != nil {
		return err
	}
	yTrue := matrix.Column(y, 0)
	s := seed(c)

	chart := plotting.Chart{
		Title:  "RBF regression",
		X:      rowIndex(len(yTrue)),
		Series: [][]float64{yTrue},
		Names:  []string{"original"},
	}
	for _, name := range c.StringSlice(flagFactorization) {
		f, err := rbf.ParseFactorization(name)
		if err != nil {
			return err
		}
		m, err := rbf.NewRBFRegression(c.Float64(flagBeta), c.Int(flagCenters), c.Int(flagWidth),
			rbf.WithFactorization(f),
			rbf.WithRandomState(s),
		)
		if err != nil {
			return err
		}
		yHat, err := fitPredict(m, x, y)
		if err != nil {
			return errors.Wrapf(err, "%s", f)
		}
		if err := printScore(c, f.String(), yTrue, yHat); err != nil {
			return err
		}
		addSeries(&chart, f.String(), yHat)
	}

	return savePlot(c, chart)
}

func runKNN(c *cli.Context) error {
	x, y, err := loadXY(c)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(seed(c)))
	split, err := matrix.TrainTestSplit(x, y, c.Float64(flagTestSize), !c.Bool(flagNoShuffle), rng)
	if err != nil {
		return err
	}

	if c.Bool(flagStandardize) {
		scaler := preprocessing.NewStandardScaler()
		if split.XTrain, err = scaler.FitTransform(split.XTrain); err != nil {
			return err
		}
		if split.XTest, err = scaler.Transform(split.XTest); err != nil {
			return err
		}
	}

	m, err := neighbors.NewKNeighborsClassifier(c.Int(flagK))
	if err != nil {
		return err
	}
	if err := m.Fit(split.XTrain, split.YTrain); err != nil {
		return err
	}
	labels, err := m.Predict(split.XTest)
	if err != nil {
		return err
	}
	yHat, err := neighbors.ParseLabels(labels)
	if err != nil {
		return err
	}
	acc, err := metrics.Accuracy(yHat, matrix.Column(split.YTest, 0))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Accuracy: %g\n", acc)
	return nil
}
