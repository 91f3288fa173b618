// Package goregress は gonum の行列の上に構築された、小さな回帰と分類のライブラリです。
//
// # Models
//
//   - linear.LinearRegression: 切片付きの最小二乗回帰 (SVD による最小ノルム解)
//   - linear.SimpleLinearRegression: 1変数の閉形式回帰
//   - linear.PolynomialRegression: べき乗展開した特徴量に対する勾配降下 (MSE, MAE, HUBER)
//   - rbf.RBFRegression: ガウス基底関数による回帰 (LU, QR, SVD で正規方程式を解く)
//   - neighbors.KNeighborsClassifier: 総当たりの k 近傍分類
//
// 補助パッケージとして、core/matrix (展開、行の抽出、train/test 分割)、
// core/stats (平均、分散、共分散、勾配更新)、metrics (MSE, MAE, R², 正解率)、
// datasets (CSV 読み込み)、preprocessing (標準化)、plotting (gonum/plot による描画) があります。
//
// # Quick Start
//
//	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
//	y := mat.NewDense(4, 1, []float64{5, 7, 9, 11})
//
//	model := linear.NewLinearRegression()
//	if err := model.Fit(X, y); err != nil {
//	    log.Fatal(err)
//	}
//	pred, err := model.Predict(mat.NewDense(1, 1, []float64{5}))
//
// # Errors and logging
//
// すべての失敗は pkg/errors の型付きエラー (DimensionError, ShapeError,
// ValidationError, NotFittedError, ModelError) として返り、errors.As で判別できます。
// 数値的な求解失敗は errors.Is(err, errors.ErrSingularMatrix) で判定できます。
// 発散や条件数の悪化は ConvergenceWarning として errors.Warn に送られ、
// log.SetupLogger を呼ぶと zerolog の構造化ログとして出力されます。
//
// コマンドラインからは cmd/goregress を使います。
package goregress
