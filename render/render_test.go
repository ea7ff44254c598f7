package render

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vencsim/calculator"
)

func TestNewPanels(t *testing.T) {
	res, err := calculator.Calculate(calculator.DefaultConfig())
	require.NoError(t, err)

	venc, velocity, err := NewPanels(res)
	require.NoError(t, err)

	assert.Equal(t, "Spatially Varying Effective VENC", venc.Title.Text)
	assert.InDelta(t, -20, venc.X.Min, 1e-9)
	assert.InDelta(t, 20, venc.X.Max, 1e-9)
	assert.InDelta(t, 1.0, venc.Y.Min, 1e-12)
	assert.InDelta(t, 1/0.9, venc.Y.Max, 1e-9)

	assert.Equal(t, "Velocity Error and Correction", velocity.Title.Text)
	assert.Equal(t, VelocityMin, velocity.Y.Min)
	assert.Equal(t, VelocityMax, velocity.Y.Max)
}

func TestNewPanelsRejectsNonFinite(t *testing.T) {
	res, err := calculator.Calculate(calculator.DefaultConfig())
	require.NoError(t, err)
	res.VMeasured[3] = math.NaN()

	_, _, err = NewPanels(res)
	assert.Error(t, err)
}

func TestPNGRenderer(t *testing.T) {
	res, err := calculator.Calculate(calculator.DefaultConfig())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "venc.png")
	r := NewPNGRenderer(path)
	r.Width, r.Height = 400, 400
	require.NoError(t, r.Render(res))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))
}

func TestTextRenderer(t *testing.T) {
	res, err := calculator.Calculate(calculator.DefaultConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, TextRenderer{W: &buf}.Render(res))
	assert.Equal(t, "Max Error at edges: 0.0500 m/s\n", buf.String())
}
