package location

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const earthRadiusKm = 6371.0

// Place is one named location in a gazetteer file
type Place struct {
	Name      string  `yaml:"name"`
	City      string  `yaml:"city"`
	Region    string  `yaml:"region"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

type gazetteerFile struct {
	Places []Place `yaml:"places"`
}

// Gazetteer resolves coordinates against a fixed list of named places,
// returning the nearest place within the configured radius. It is the
// offline stand-in for a reverse-geocoding service.
type Gazetteer struct {
	places   []Place
	radiusKm float64
}

// NewGazetteer builds a gazetteer over the given places. A radius of zero
// or less disables the distance cut-off.
func NewGazetteer(places []Place, radiusKm float64) *Gazetteer {
	return &Gazetteer{places: places, radiusKm: radiusKm}
}

// LoadGazetteer reads a YAML gazetteer file
func LoadGazetteer(path string, radiusKm float64) (*Gazetteer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gazetteer: %w", err)
	}

	var file gazetteerFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse gazetteer: %w", err)
	}

	return NewGazetteer(file.Places, radiusKm), nil
}

// Resolve returns the description of the nearest place within the radius,
// or ErrNoMatch when nothing qualifies
func (g *Gazetteer) Resolve(ctx context.Context, c Coordinates) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	best := -1
	bestDist := math.Inf(1)
	for i, p := range g.places {
		d := haversineKm(c, Coordinates{Latitude: p.Latitude, Longitude: p.Longitude})
		if d < bestDist {
			best = i
			bestDist = d
		}
	}

	if best < 0 {
		return "", ErrNoMatch
	}
	if g.radiusKm > 0 && bestDist > g.radiusKm {
		return "", ErrNoMatch
	}

	return g.places[best].Description(), nil
}

var _ Resolver = (*Gazetteer)(nil)

// Description joins the place's name, city and region, skipping blanks
func (p Place) Description() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{p.Name, p.City, p.Region} {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

// haversineKm computes the great-circle distance between two points
func haversineKm(a, b Coordinates) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
