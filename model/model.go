package model

import "fmt"

// 仿真参数配置
// 1. 位置单位 m，流速单位 m/s
// 2. 采样网格从 XMin 到 XMax 均匀分布，共 NSamples 个点
type Config struct {
	VTrue            float64  `json:"v_true"`       // 真实流速
	VencNominal      float64  `json:"venc_nominal"` // 扫描仪设定的 VENC
	Alpha            float64  `json:"alpha"`        // 视野边缘处梯度强度的相对偏差
	L                float64  `json:"L"`            // 特征长度
	XMin             float64  `json:"x_min"`
	XMax             float64  `json:"x_max"`
	NSamples         int      `json:"n_samples"`
	CalibrationAlpha *float64 `json:"calibration_alpha,omitempty"` // 校准图系数，nil 表示校准准确
}

// 校准图实际使用的系数
func (c Config) CalibrationCoefficient() float64 {
	if c.CalibrationAlpha == nil {
		return c.Alpha
	}
	return *c.CalibrationAlpha
}

// 一次仿真的全部结果，所有序列与 Position 等长
type Result struct {
	Config        Config    `json:"config"`
	Position      []float64 `json:"position"`       // 采样位置
	GError        []float64 `json:"g_error"`        // G_actual / G_nominal
	Calibration   []float64 `json:"calibration"`    // 用于校正的误差因子
	VencEffective []float64 `json:"venc_effective"` // 有效 VENC
	Phase         []float64 `json:"phase"`          // 实际相位 rad
	VMeasured     []float64 `json:"v_measured"`
	VCorrected    []float64 `json:"v_corrected"`
	Summary       Summary   `json:"summary"`
}

type Summary struct {
	EdgePosition float64 `json:"edge_position"`
	// |measured(edge) - v_true|
	EdgeError float64 `json:"edge_error"`
	// 全视野最大测量误差
	MaxError float64 `json:"max_error"`
	// 校正后最大残差
	MaxResidual float64 `json:"max_residual"`
	// 最接近中心处的测量值
	CenterMeasured float64 `json:"center_measured"`
	// |phase| > pi 的采样点数
	AliasedSamples int `json:"aliased_samples"`
}

func (s Summary) String() string {
	return fmt.Sprintf("Max Error at edges: %.4f m/s", s.EdgeError)
}

// 前后端通信消息结构
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}
