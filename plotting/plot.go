// Package plotting は学習結果を gonum/plot で画像に描画します。
package plotting

import (
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/goregress/pkg/errors"
)

// Size は出力画像の大きさ
var Size = struct{ Width, Height vg.Length }{6 * vg.Inch, 4 * vg.Inch}

// Chart は x 軸を共有する複数の系列。先頭の系列は元データとして散布図で、
// 残りは予測値として折れ線で描画される。
type Chart struct {
	Title  string
	X      []float64
	Series [][]float64
	Names  []string
}

func (c Chart) build() (*plot.Plot, error) {
	if len(c.Series) == 0 {
		return nil, errors.NewValueError("plotting", "no series to plot")
	}
	if len(c.Names) != len(c.Series) {
		return nil, errors.NewDimensionError("plotting", len(c.Series), len(c.Names), 0)
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Legend.Top = true

	for i, ys := range c.Series {
		if len(ys) != len(c.X) {
			return nil, errors.NewDimensionError("plotting", len(c.X), len(ys), 0)
		}
		pts := make(plotter.XYs, len(ys))
		for j := range ys {
			pts[j] = plotter.XY{X: c.X[j], Y: ys[j]}
		}

		if i == 0 {
			s, err := plotter.NewScatter(pts)
			if err != nil {
				return nil, errors.Wrap(err, "scatter")
			}
			s.GlyphStyle.Color = plotutil.Color(0)
			s.GlyphStyle.Shape = draw.CircleGlyph{}
			s.GlyphStyle.Radius = vg.Points(2)
			p.Add(s)
			p.Legend.Add(c.Names[i], s)
			continue
		}

		l, err := plotter.NewLine(pts)
		if err != nil {
			return nil, errors.Wrapf(err, "line %q", c.Names[i])
		}
		l.LineStyle.Color = plotutil.Color(i)
		l.LineStyle.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add(c.Names[i], l)
	}
	return p, nil
}

// Save は拡張子 (png, svg, pdf など) に応じた形式で path に保存する
func (c Chart) Save(path string) error {
	p, err := c.build()
	if err != nil {
		return err
	}
	if err := p.Save(Size.Width, Size.Height, path); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	return nil
}

// WriteTo は format で指定した形式で w に書き出す
func (c Chart) WriteTo(w io.Writer, format string) error {
	p, err := c.build()
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(Size.Width, Size.Height, format)
	if err != nil {
		return errors.Wrapf(err, "format %s", format)
	}
	_, err = wt.WriteTo(w)
	return err
}

// Format はファイル名の拡張子から出力形式を返す。拡張子がなければ png。
func Format(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "png"
	}
	return ext
}
