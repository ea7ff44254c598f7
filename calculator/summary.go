package calculator

import (
	"math"

	"vencsim/model"
)

// Summarize 以第一个采样点作为视野边缘
func Summarize(res *model.Result) model.Summary {
	v := res.Config.VTrue
	s := model.Summary{
		EdgePosition: res.Position[0],
		EdgeError:    math.Abs(res.VMeasured[0] - v),
	}

	center := 0
	for i, x := range res.Position {
		if math.Abs(x) < math.Abs(res.Position[center]) {
			center = i
		}
		s.MaxError = math.Max(s.MaxError, math.Abs(res.VMeasured[i]-v))
		s.MaxResidual = math.Max(s.MaxResidual, math.Abs(res.VCorrected[i]-v))
		if math.Abs(res.Phase[i]) > math.Pi {
			s.AliasedSamples++
		}
	}
	s.CenterMeasured = res.VMeasured[center]
	return s
}
