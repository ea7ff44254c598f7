package calculator

import (
	"errors"
	"fmt"
	"math"

	"vencsim/model"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// 采样点数上限，超过时直接拒绝，避免分配过大的网格
const maxSamples = 1 << 20

// ConfigError 描述一次被拒绝的配置。
// Position/Factor 仅在误差因子不为正时有意义。
type ConfigError struct {
	Field    string
	Reason   string
	Position float64
	Factor   float64
	Config   model.Config
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: factor %g at x=%g (alpha=%g, L=%g, x=[%g, %g], n=%d): %s",
			ErrInvalidConfig, e.Factor, e.Position, e.Config.Alpha, e.Config.L,
			e.Config.XMin, e.Config.XMax, e.Config.NSamples, e.Reason)
	}
	return fmt.Sprintf("%v: %s: %s", ErrInvalidConfig, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// Validate 在计算之前检查配置，误差因子在任一采样点不为正时直接拒绝，
// 避免有效 VENC 出现除零或非有限值。
func Validate(cfg model.Config) error {
	scalars := []struct {
		name  string
		value float64
	}{
		{"v_true", cfg.VTrue},
		{"venc_nominal", cfg.VencNominal},
		{"alpha", cfg.Alpha},
		{"L", cfg.L},
		{"x_min", cfg.XMin},
		{"x_max", cfg.XMax},
		{"calibration_alpha", cfg.CalibrationCoefficient()},
	}
	for _, s := range scalars {
		if math.IsNaN(s.value) || math.IsInf(s.value, 0) {
			return &ConfigError{Field: s.name, Reason: "must be finite", Config: cfg}
		}
	}

	switch {
	case cfg.VencNominal <= 0:
		return &ConfigError{Field: "venc_nominal", Reason: "must be positive", Config: cfg}
	case cfg.L <= 0:
		return &ConfigError{Field: "L", Reason: "must be positive", Config: cfg}
	case cfg.NSamples < 2:
		return &ConfigError{Field: "n_samples", Reason: "at least 2 samples required", Config: cfg}
	case cfg.NSamples > maxSamples:
		return &ConfigError{Field: "n_samples", Reason: fmt.Sprintf("at most %d samples allowed", maxSamples), Config: cfg}
	case cfg.XMin >= cfg.XMax:
		return &ConfigError{Field: "x_min", Reason: "must be less than x_max", Config: cfg}
	case math.IsInf(cfg.XMax-cfg.XMin, 0):
		return &ConfigError{Field: "x_range", Reason: "x_max - x_min must be finite", Config: cfg}
	}

	grid := Grid(cfg)
	if err := checkProfile(cfg, grid, cfg.Alpha, "gradient"); err != nil {
		return err
	}
	if cfg.CalibrationAlpha != nil {
		return checkProfile(cfg, grid, *cfg.CalibrationAlpha, "calibration")
	}
	return nil
}

func checkProfile(cfg model.Config, grid []float64, alpha float64, name string) error {
	for _, x := range grid {
		g := GradientError(x, alpha, cfg.L)
		if !(g > 0) || math.IsInf(g, 0) {
			return &ConfigError{
				Reason:   name + " error factor must stay positive",
				Position: x,
				Factor:   g,
				Config:   cfg,
			}
		}
	}
	return nil
}
