package calculator

import (
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats/scalar"

	"vencsim/model"
)

const (
	// 相位换算与化简形式之间允许的相对误差
	relTolerance = 1e-9
	absTolerance = 1e-12
)

// Calculate 完成一次仿真：
// 误差因子 -> 有效 VENC -> 相位 -> 测量流速 -> 校正流速 -> 汇总。
// 相同配置总是得到相同结果。
func Calculate(cfg model.Config) (*model.Result, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	start := time.Now()
	grid := Grid(cfg)
	gError := ErrorProfile(grid, cfg.Alpha, cfg.L)
	calibration := append([]float64(nil), gError...)
	if cfg.CalibrationAlpha != nil {
		calibration = ErrorProfile(grid, *cfg.CalibrationAlpha, cfg.L)
	}

	effective := EffectiveVenc(cfg.VencNominal, gError)
	phase := Phase(cfg.VTrue, effective)
	measured := Measured(cfg.VTrue, gError)
	if i := divergence(measured, MeasuredFromPhase(phase, cfg.VencNominal)); i >= 0 {
		log.WithFields(log.Fields{
			"position": grid[i],
			"measured": measured[i],
		}).Warn("相位换算结果与化简形式不一致")
	}
	corrected := Correct(measured, calibration)

	res := &model.Result{
		Config:        cfg,
		Position:      grid,
		GError:        gError,
		Calibration:   calibration,
		VencEffective: effective,
		Phase:         phase,
		VMeasured:     measured,
		VCorrected:    corrected,
	}
	if err := checkFinite(res); err != nil {
		return nil, err
	}
	res.Summary = Summarize(res)

	if res.Summary.AliasedSamples > 0 {
		log.WithFields(log.Fields{
			"aliased": res.Summary.AliasedSamples,
			"v_true":  cfg.VTrue,
		}).Warn("流速超过有效 VENC，实际扫描会发生相位卷绕")
	}
	log.WithFields(log.Fields{
		"samples":    cfg.NSamples,
		"edge_error": res.Summary.EdgeError,
		"residual":   res.Summary.MaxResidual,
		"cost":       time.Since(start),
	}).Info("计算完成")
	return res, nil
}

// 返回第一个不一致的下标，全部一致时返回 -1
func divergence(a, b []float64) int {
	for i := range a {
		if !scalar.EqualWithinAbsOrRel(a[i], b[i], absTolerance, relTolerance) {
			return i
		}
	}
	return -1
}

func checkFinite(res *model.Result) error {
	series := []struct {
		name   string
		values []float64
	}{
		{"venc_effective", res.VencEffective},
		{"phase", res.Phase},
		{"v_measured", res.VMeasured},
		{"v_corrected", res.VCorrected},
	}
	for _, s := range series {
		for i, v := range s.values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%s is not finite at x=%g: %v", s.name, res.Position[i], v)
			}
		}
	}
	return nil
}
