// Package datasets は CSV ファイルから特徴量行列と目的変数を読み込みます。
package datasets

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goregress/pkg/errors"
)

// Table は CSV を読み込んだ結果で、Values は行優先で平坦化された値
type Table struct {
	Rows   int
	Cols   int
	Values []float64
}

// ParseCSV は数値の CSV を読み込む。先頭行が数値として解釈できない場合はヘッダとして読み飛ばす。
// すべての行は同じ列数でなければならない。
func ParseCSV(r io.Reader) (*Table, error) {
	const op = "ParseCSV"
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	if len(records) > 0 && !isNumericRow(records[0]) {
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}

	t := &Table{Rows: len(records), Cols: len(records[0])}
	t.Values = make([]float64, 0, t.Rows*t.Cols)
	for i, rec := range records {
		if len(rec) != t.Cols {
			return nil, errors.NewDimensionError(op, t.Cols, len(rec), 1)
		}
		for j, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, errors.NewValueError(op, "row "+strconv.Itoa(i)+" column "+strconv.Itoa(j)+": "+err.Error())
			}
			t.Values = append(t.Values, v)
		}
	}
	return t, nil
}

// ReadFile は path の CSV を読み込む
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return ParseCSV(f)
}

func isNumericRow(rec []string) bool {
	for _, field := range rec {
		if _, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err != nil {
			return false
		}
	}
	return true
}

// Dense は表全体を Rows×Cols の行列として返す
func (t *Table) Dense() *mat.Dense {
	return mat.NewDense(t.Rows, t.Cols, append([]float64(nil), t.Values...))
}

// Column は j 列目の値を返す
func (t *Table) Column(j int) []float64 {
	out := make([]float64, t.Rows)
	for i := range out {
		out[i] = t.Values[i*t.Cols+j]
	}
	return out
}

// SplitLastColumn は最後の列を目的変数 y、残りを特徴量 X として返す
func (t *Table) SplitLastColumn() (X, y *mat.Dense, err error) {
	if t.Cols < 2 {
		return nil, nil, errors.NewValidationError("columns", "need at least one feature and one target column", t.Cols)
	}
	X = mat.NewDense(t.Rows, t.Cols-1, nil)
	y = mat.NewDense(t.Rows, 1, nil)
	for i := 0; i < t.Rows; i++ {
		row := t.Values[i*t.Cols : (i+1)*t.Cols]
		X.SetRow(i, row[:t.Cols-1])
		y.Set(i, 0, row[t.Cols-1])
	}
	return X, y, nil
}
