package linear

import (
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goregress/core/stats"
	"github.com/YuminosukeSato/goregress/pkg/errors"
)

// LossKind は多項式回帰の損失関数の種類
type LossKind int

const (
	MSE LossKind = iota
	MAE
	Huber
)

func (k LossKind) String() string {
	switch k {
	case MSE:
		return "MSE"
	case MAE:
		return "MAE"
	case Huber:
		return "HUBER"
	default:
		return "UNKNOWN"
	}
}

// ParseLossKind は "mse" / "mae" / "huber" を LossKind に変換する（大文字小文字は区別しない）
func ParseLossKind(s string) (LossKind, error) {
	switch strings.ToUpper(s) {
	case "MSE":
		return MSE, nil
	case "MAE":
		return MAE, nil
	case "HUBER":
		return Huber, nil
	}
	return 0, errors.NewValidationError("loss", "must be one of MSE, MAE, HUBER", s)
}

// Loss は1エポック分の更新量 (Δw, Δb) を計算する
type Loss interface {
	Update(x mat.Matrix, y, yHat []float64, lr float64) (stats.Update, error)
}

// MSELoss は二乗誤差
type MSELoss struct{}

func (MSELoss) Update(x mat.Matrix, y, yHat []float64, lr float64) (stats.Update, error) {
	return stats.UpdateWeightsMSE(x, y, yHat, lr)
}

// MAELoss は絶対誤差
type MAELoss struct{}

func (MAELoss) Update(x mat.Matrix, y, yHat []float64, lr float64) (stats.Update, error) {
	return stats.UpdateWeightsMAE(x, y, yHat, lr)
}

// HuberLoss は残差の絶対値の総和で MAE と MSE を切り替える近似版の Huber 損失
type HuberLoss struct {
	Delta float64
}

func (h HuberLoss) Update(x mat.Matrix, y, yHat []float64, lr float64) (stats.Update, error) {
	return stats.UpdateWeightsHuber(x, y, yHat, lr, h.Delta)
}

func newLoss(kind LossKind, delta float64) (Loss, error) {
	switch kind {
	case MSE:
		return MSELoss{}, nil
	case MAE:
		return MAELoss{}, nil
	case Huber:
		return HuberLoss{Delta: delta}, nil
	}
	return nil, errors.NewValidationError("loss", "unknown loss kind", int(kind))
}
