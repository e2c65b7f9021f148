package analysis

import (
	"math"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/economy"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/galaxy"
)

// 100-point colonization rubric weights.
const (
	temperatureScoreMax = 40.0
	gravityScoreMax     = 20.0
	metalScoreMax       = 25.0
	populationScoreMax  = 15.0

	// metalPerPoint converts remaining reserves into rubric points.
	metalPerPoint = 200.0

	// populationForFullBonus is the native population granting the full bonus.
	populationForFullBonus = 1_000_000.0

	// CaptureValueMultiplier weights opportunities on opponent-owned planets.
	CaptureValueMultiplier = 1.5
)

// ScorePlanet rates a planet's settlement value on the 100-point rubric:
// temperature proximity to the ideal (40), gravity proximity to 1.0g (20),
// metal abundance capped at 25, population bonus up to 15.
func ScorePlanet(p *galaxy.Planet) float64 {
	tempScore := temperatureScoreMax * clamp01(1-math.Abs(p.CurrentTemperature-economy.IdealTemperature)/economy.TemperatureTolerance)
	gravScore := gravityScoreMax * clamp01(1-math.Abs(p.Gravity-economy.IdealGravity)/economy.GravityTolerance)

	metalScore := float64(p.MetalRemaining) / metalPerPoint
	if metalScore > metalScoreMax {
		metalScore = metalScoreMax
	}

	popScore := populationScoreMax * clamp01(float64(p.Population)/populationForFullBonus)

	return tempScore + gravScore + metalScore + popScore
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
