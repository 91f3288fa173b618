package plotting

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chart() Chart {
	return Chart{
		Title:  "poly",
		X:      []float64{0, 1, 2, 3},
		Series: [][]float64{{0, 1, 4, 9}, {0.1, 1.2, 3.9, 9.1}},
		Names:  []string{"original", "MSE"},
	}
}

func TestChart_WriteTo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, chart().WriteTo(&buf, "svg"))
	assert.Contains(t, buf.String(), "<svg")
}

func TestChart_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, chart().Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestChart_Errors(t *testing.T) {
	c := chart()
	c.Names = c.Names[:1]
	assert.Error(t, c.Save(filepath.Join(t.TempDir(), "x.png")))

	c = chart()
	c.Series[1] = c.Series[1][:2]
	assert.Error(t, c.WriteTo(&bytes.Buffer{}, "svg"))

	assert.Error(t, Chart{}.WriteTo(&bytes.Buffer{}, "svg"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "svg", Format("a/b.SVG"))
	assert.Equal(t, "png", Format("plot"))
}
