package render

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"vencsim/calculator"
	"vencsim/model"
)

// 速度面板的纵轴显示范围
const (
	VelocityMin = 0.3
	VelocityMax = 0.7
)

var (
	black = color.RGBA{A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 128, A: 255}

	dashed = []vg.Length{vg.Points(6), vg.Points(4)}
	dotted = []vg.Length{vg.Points(1), vg.Points(5)}
)

// Renderer 负责结果的展示，计算部分不依赖它
type Renderer interface {
	Render(res *model.Result) error
}

// 两个面板上下排列，输出为 PNG
type PNGRenderer struct {
	Path   string
	Width  vg.Length
	Height vg.Length
	DPI    int
}

func NewPNGRenderer(path string) *PNGRenderer {
	return &PNGRenderer{
		Path:   path,
		Width:  10 * vg.Inch,
		Height: 10 * vg.Inch,
		DPI:    100,
	}
}

func (r *PNGRenderer) Render(res *model.Result) error {
	venc, velocity, err := NewPanels(res)
	if err != nil {
		return err
	}

	img := vgimg.NewWith(vgimg.UseWH(r.Width, r.Height), vgimg.UseDPI(r.DPI))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      2,
		Cols:      1,
		PadTop:    vg.Points(10),
		PadBottom: vg.Points(10),
		PadLeft:   vg.Points(10),
		PadRight:  vg.Points(10),
		PadY:      vg.Points(20),
	}
	canvases := plot.Align([][]*plot.Plot{{venc}, {velocity}}, tiles, dc)
	venc.Draw(canvases[0][0])
	velocity.Draw(canvases[1][0])

	if dir := filepath.Dir(r.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create directory: %w", err)
		}
	}
	f, err := os.Create(r.Path)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(bw); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}

	log.WithFields(log.Fields{
		"path": r.Path,
	}).Info("图表已保存")
	return nil
}

// NewPanels 构建两个面板：有效 VENC 与位置的关系，测量/校正流速与位置的关系。
// 横轴单位为 cm。
func NewPanels(res *model.Result) (*plot.Plot, *plot.Plot, error) {
	n := len(res.Position)
	cfg := res.Config

	venc := plot.New()
	venc.Title.Text = "Spatially Varying Effective VENC"
	venc.X.Label.Text = "Position from Isocenter (cm)"
	venc.Y.Label.Text = "VENC (m/s)"
	venc.Add(plotter.NewGrid())
	if err := addLine(venc, xys(res.Position, calculator.Filled(n, cfg.VencNominal)),
		fmt.Sprintf("Nominal VENC (%.1f m/s)", cfg.VencNominal), black, dashed, 1); err != nil {
		return nil, nil, err
	}
	if err := addLine(venc, xys(res.Position, res.VencEffective),
		"Effective VENC (Actual)", blue, nil, 1.5); err != nil {
		return nil, nil, err
	}

	velocity := plot.New()
	velocity.Title.Text = "Velocity Error and Correction"
	velocity.X.Label.Text = "Position from Isocenter (cm)"
	velocity.Y.Label.Text = "Velocity (m/s)"
	velocity.Add(plotter.NewGrid())
	if err := addLine(velocity, xys(res.Position, calculator.Filled(n, cfg.VTrue)),
		fmt.Sprintf("True Velocity (%.1f m/s)", cfg.VTrue), black, dashed, 1); err != nil {
		return nil, nil, err
	}
	if err := addLine(velocity, xys(res.Position, res.VMeasured),
		"Measured Velocity (With Nonlinearity)", red, nil, 1.5); err != nil {
		return nil, nil, err
	}
	if err := addLine(velocity, xys(res.Position, res.VCorrected),
		"Corrected Velocity", green, dotted, 3); err != nil {
		return nil, nil, err
	}
	velocity.Y.Min = VelocityMin
	velocity.Y.Max = VelocityMax

	return venc, velocity, nil
}

func addLine(p *plot.Plot, pts plotter.XYs, label string, c color.Color, dashes []vg.Length, width float64) error {
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}
	line.LineStyle.Color = c
	line.LineStyle.Width = vg.Points(width)
	line.LineStyle.Dashes = dashes
	p.Add(line)
	p.Legend.Add(label, line)
	return nil
}

// 位置换算为 cm
func xys(position, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(position))
	for i := range position {
		pts[i].X = position[i] * 100
		pts[i].Y = ys[i]
	}
	return pts
}

// 文本汇总，对应终端输出的一行
type TextRenderer struct {
	W io.Writer
}

func (r TextRenderer) Render(res *model.Result) error {
	_, err := fmt.Fprintln(r.W, res.Summary.String())
	return err
}
