package corpus

import "strings"

// Level is a HighwaySystem's visibility tier.
type Level int

const (
	LevelActive Level = iota
	LevelPreview
	LevelDevel
)

// ParseLevel parses the systems.csv level field.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return LevelActive, true
	case "preview":
		return LevelPreview, true
	case "devel":
		return LevelDevel, true
	default:
		return 0, false
	}
}

func (l Level) String() string {
	switch l {
	case LevelActive:
		return "active"
	case LevelPreview:
		return "preview"
	case LevelDevel:
		return "devel"
	default:
		return "unknown"
	}
}

// Clinchable reports whether routes in a system of this level accept user
// clinches at all: preview and active are, devel is not.
func (l Level) Clinchable() bool {
	return l == LevelActive || l == LevelPreview
}

// ActiveOnly reports whether this level counts toward active-only stats.
func (l Level) ActiveOnly() bool {
	return l == LevelActive
}

// HighwaySystem is a collection of Routes sharing one display identity.
type HighwaySystem struct {
	SystemName  string
	CountryCode string
	FullName    string
	Color       string
	Tier        int
	Level       Level

	Routes          []*Route
	ConnectedRoutes []*ConnectedRoute

	// MileageByRegion is the system's own concurrency-adjusted mileage
	// total per region, keyed by region code.
	MileageByRegion map[string]float64
}

// NewHighwaySystem constructs an empty HighwaySystem.
func NewHighwaySystem(name, countryCode, fullName, color string, tier int, level Level) *HighwaySystem {
	return &HighwaySystem{
		SystemName:      name,
		CountryCode:     countryCode,
		FullName:        fullName,
		Color:           color,
		Tier:            tier,
		Level:           level,
		MileageByRegion: make(map[string]float64),
	}
}

// AddMileage accumulates s miles into the system's per-region bucket.
func (h *HighwaySystem) AddMileage(region string, miles float64) {
	h.MileageByRegion[region] += miles
}

// HiddenFromGraphs reports whether this system's routes never become graph
// vertices/edges (devel systems are excluded).
func (h *HighwaySystem) HiddenFromGraphs() bool {
	return h.Level == LevelDevel
}
