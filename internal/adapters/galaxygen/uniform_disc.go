// Package galaxygen provides the default procedural galaxy generator. The
// production generator is an external system; this adapter produces the same
// output contract so games can be started self-contained.
package galaxygen

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/galaxy"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// Physical trait ranges for generated planets.
const (
	minTemperature = -40.0
	maxTemperature = 60.0
	minGravity     = 0.4
	maxGravity     = 2.2
	minMetal       = 400
	maxMetal       = 4000
)

// UniformDiscGenerator implements galaxy.Generator by scattering planets
// uniformly over a disc. Seeded generation is reproducible.
type UniformDiscGenerator struct{}

// NewUniformDiscGenerator creates the default generator
func NewUniformDiscGenerator() *UniformDiscGenerator {
	return &UniformDiscGenerator{}
}

// Generate produces spec.PlanetCount unexplored planets inside a disc of
// spec.Radius centered on the origin.
func (g *UniformDiscGenerator) Generate(spec galaxy.GeneratorSpec) []*galaxy.Planet {
	rng := rand.New(rand.NewSource(spec.Seed))

	planets := make([]*galaxy.Planet, 0, spec.PlanetCount)
	for i := 0; i < spec.PlanetCount; i++ {
		// sqrt keeps the area density uniform instead of clustering at
		// the center
		radius := spec.Radius * math.Sqrt(rng.Float64())
		angle := rng.Float64() * 2 * math.Pi
		pos := shared.Position{
			X: radius * math.Cos(angle),
			Y: radius * math.Sin(angle),
		}

		temperature := minTemperature + rng.Float64()*(maxTemperature-minTemperature)
		gravity := minGravity + rng.Float64()*(maxGravity-minGravity)
		metal := minMetal + rng.Intn(maxMetal-minMetal+1)

		name := fmt.Sprintf("%s-%03d", sectorNames[rng.Intn(len(sectorNames))], i+1)
		planets = append(planets, galaxy.NewPlanet(spec.GameID, name, pos, temperature, gravity, metal))
	}
	return planets
}

var sectorNames = []string{
	"Altair", "Bellatrix", "Capella", "Deneb", "Electra", "Fomalhaut",
	"Gacrux", "Hadar", "Izar", "Kochab", "Lesath", "Mizar",
	"Naos", "Okul", "Polaris", "Rigel", "Sadr", "Thuban",
	"Unukalhai", "Vega", "Wezen", "Yildun", "Zosma",
}
