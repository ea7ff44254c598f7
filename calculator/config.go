package calculator

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"

	"vencsim/model"
)

const (
	defaultVTrue       = 0.5
	defaultVencNominal = 1.0
	defaultAlpha       = -0.1 // 多数梯度在视野边缘衰减，-0.1 表示边缘处强度下降 10%
	defaultL           = 0.2
	defaultXMin        = -0.2 // 40cm 视野
	defaultXMax        = 0.2
	defaultNSamples    = 500
)

func DefaultConfig() model.Config {
	return model.Config{
		VTrue:       defaultVTrue,
		VencNominal: defaultVencNominal,
		Alpha:       defaultAlpha,
		L:           defaultL,
		XMin:        defaultXMin,
		XMax:        defaultXMax,
		NSamples:    defaultNSamples,
	}
}

// LoadConfig 读取 ini 配置，source 可以是文件路径或 []byte。
// 缺省的键使用默认值。
func LoadConfig(source interface{}) (model.Config, log.Level, error) {
	file, err := ini.Load(source)
	if err != nil {
		return model.Config{}, log.InfoLevel, fmt.Errorf("配置文件读取错误，请检查文件路径: %w", err)
	}

	level, err := log.ParseLevel(file.Section("app").Key("LogLevel").MustString("info"))
	if err != nil {
		return model.Config{}, log.InfoLevel, fmt.Errorf("日志级别配置错误: %w", err)
	}

	return loadCfg(file), level, nil
}

func loadCfg(file *ini.File) model.Config {
	section := file.Section("venc")
	cfg := model.Config{
		VTrue:       section.Key("VTrue").MustFloat64(defaultVTrue),
		VencNominal: section.Key("VencNominal").MustFloat64(defaultVencNominal),
		Alpha:       section.Key("Alpha").MustFloat64(defaultAlpha),
		L:           section.Key("L").MustFloat64(defaultL),
		XMin:        section.Key("XMin").MustFloat64(defaultXMin),
		XMax:        section.Key("XMax").MustFloat64(defaultXMax),
		NSamples:    section.Key("NSamples").MustInt(defaultNSamples),
	}
	if section.HasKey("CalibrationAlpha") {
		calibration := section.Key("CalibrationAlpha").MustFloat64(cfg.Alpha)
		cfg.CalibrationAlpha = &calibration
	}

	log.WithFields(log.Fields{
		"VTrue":       cfg.VTrue,
		"VencNominal": cfg.VencNominal,
		"Alpha":       cfg.Alpha,
		"L":           cfg.L,
		"XMin":        cfg.XMin,
		"XMax":        cfg.XMax,
		"NSamples":    cfg.NSamples,
		"Calibration": cfg.CalibrationCoefficient(),
	}).Debug("读取仿真参数")
	return cfg
}
