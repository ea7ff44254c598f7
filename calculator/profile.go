package calculator

import (
	"gonum.org/v1/gonum/floats"

	"vencsim/model"
)

// 采样网格，首尾两点精确等于 XMin 和 XMax
func Grid(cfg model.Config) []float64 {
	grid := floats.Span(make([]float64, cfg.NSamples), cfg.XMin, cfg.XMax)
	grid[len(grid)-1] = cfg.XMax
	return grid
}

// GradientError 返回位置 x 处的梯度误差因子 G_actual / G_nominal。
// 中心处恒为 1，随距离二次变化，关于 x 对称。
func GradientError(x, alpha, l float64) float64 {
	r := x / l
	return 1 + alpha*r*r
}

func ErrorProfile(grid []float64, alpha, l float64) []float64 {
	profile := make([]float64, len(grid))
	for i, x := range grid {
		profile[i] = GradientError(x, alpha, l)
	}
	return profile
}
