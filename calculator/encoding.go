package calculator

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Filled 返回长度为 n、元素均为 v 的序列
func Filled(n int, v float64) []float64 {
	s := make([]float64, n)
	floats.AddConst(v, s)
	return s
}

// 有效 VENC：梯度变弱时需要更大的流速才能产生 180 度相移
func EffectiveVenc(nominal float64, profile []float64) []float64 {
	effective := Filled(len(profile), nominal)
	floats.Div(effective, profile)
	return effective
}

// 扫描仪实际得到的相位 (v / venc_eff) * pi
func Phase(vTrue float64, effective []float64) []float64 {
	phase := Filled(len(effective), vTrue)
	floats.Div(phase, effective)
	floats.Scale(math.Pi, phase)
	return phase
}

// 重建时假设梯度处处理想，按名义 VENC 换算流速
func MeasuredFromPhase(phase []float64, nominal float64) []float64 {
	return floats.ScaleTo(make([]float64, len(phase)), nominal/math.Pi, phase)
}

// Measured 是 MeasuredFromPhase 的化简形式 v_true * error(x)。
func Measured(vTrue float64, profile []float64) []float64 {
	return floats.ScaleTo(make([]float64, len(profile)), vTrue, profile)
}

// 用校准图中的误差因子逐点校正测量流速
func Correct(measured, calibration []float64) []float64 {
	return floats.DivTo(make([]float64, len(measured)), measured, calibration)
}
