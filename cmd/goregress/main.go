// Command goregress は CSV データに対して回帰モデルと k 近傍分類器を実行し、
// 結果をプロットするコマンドラインツールです。
//
//	goregress simple datasets/simple_linear_regression.csv
//	goregress poly --out poly.png datasets/polynomial_regression_data.csv
//	goregress knn --k 5 datasets/knn.csv
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/YuminosukeSato/goregress/pkg/log"
)

const (
	flagLogLevel      = "log-level"
	flagConsole       = "console"
	flagSeed          = "seed"
	flagOut           = "out"
	flagEpochs        = "epochs"
	flagLearningRate  = "lr"
	flagDegree        = "degree"
	flagBeta          = "beta"
	flagCenters       = "centers"
	flagWidth         = "width"
	flagFactorization = "factorization"
	flagK             = "k"
	flagTestSize      = "test-size"
	flagNoShuffle     = "no-shuffle"
	flagStandardize   = "standardize"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	seedFlag := &cli.Int64Flag{
		Name:  flagSeed,
		Usage: "random seed; 0 uses the current time",
	}
	outFlag := func(def string) *cli.StringFlag {
		return &cli.StringFlag{
			Name:    flagOut,
			Aliases: []string{"o"},
			Value:   def,
			Usage:   "write the plot to `FILE` (png, svg or pdf)",
		}
	}

	return &cli.App{
		Name:  "goregress",
		Usage: "fit regression models and a k-nearest-neighbours classifier on CSV data",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagLogLevel,
				Value:   "warn",
				Usage:   "debug, info, warn or error",
				EnvVars: []string{"GOREGRESS_LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:  flagConsole,
				Usage: "human readable logs instead of JSON",
			},
		},
		Before: func(c *cli.Context) error {
			return log.SetupLogger(c.String(flagLogLevel), c.Bool(flagConsole))
		},
		Commands: []*cli.Command{
			{
				Name:      "simple",
				Usage:     "simple linear regression on the first two columns",
				ArgsUsage: "<csv>",
				Flags:     []cli.Flag{outFlag("simple.png")},
				Action:    runSimple,
			},
			{
				Name:      "linear",
				Usage:     "least squares regression; the last column is the target",
				ArgsUsage: "<csv>",
				Flags:     []cli.Flag{outFlag("linear.png")},
				Action:    runLinear,
			},
			{
				Name:      "poly",
				Usage:     "polynomial regression with MSE, MAE and HUBER losses compared with RBF",
				ArgsUsage: "<csv>",
				Flags: []cli.Flag{
					outFlag("poly.png"),
					seedFlag,
					&cli.IntFlag{Name: flagDegree, Value: 8, Usage: "expanded feature count"},
					&cli.IntFlag{Name: flagEpochs, Value: 1000, Usage: "gradient descent epochs (HUBER runs three times as many)"},
					&cli.Float64Flag{Name: flagLearningRate, Value: 0.7, Usage: "learning rate"},
					&cli.Float64Flag{Name: flagBeta, Value: 4, Usage: "RBF kernel width"},
					&cli.IntFlag{Name: flagCenters, Value: 22, Usage: "RBF center count"},
				},
				Action: runPoly,
			},
			{
				Name:      "rbf",
				Usage:     "RBF regression solved with LU, QR and SVD",
				ArgsUsage: "<csv>",
				Flags: []cli.Flag{
					outFlag("rbf.png"),
					seedFlag,
					&cli.Float64Flag{Name: flagBeta, Value: 4, Usage: "kernel width"},
					&cli.IntFlag{Name: flagCenters, Value: 24, Usage: "center count"},
					&cli.IntFlag{Name: flagWidth, Value: 12, Usage: "expanded feature count"},
					&cli.StringSliceFlag{
						Name:  flagFactorization,
						Value: cli.NewStringSlice("LU", "QR", "SVD"),
						Usage: "factorizations to compare",
					},
				},
				Action: runRBF,
			},
			{
				Name:      "knn",
				Usage:     "k-nearest-neighbours classification accuracy on a train/test split",
				ArgsUsage: "<csv>",
				Flags: []cli.Flag{
					seedFlag,
					&cli.IntFlag{Name: flagK, Value: 5, Usage: "neighbourhood size"},
					&cli.Float64Flag{Name: flagTestSize, Value: 0.5, Usage: "fraction of rows held out, in (0, 1]"},
					&cli.BoolFlag{Name: flagNoShuffle, Usage: "split without shuffling"},
					&cli.BoolFlag{Name: flagStandardize, Usage: "scale features with statistics of the training rows"},
				},
				Action: runKNN,
			},
		},
	}
}
