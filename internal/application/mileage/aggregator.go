// Package mileage implements MileageAggregator: applying
// concurrency-adjusted mileage per user, per system, and per region in a
// single pass over every segment of every route.
package mileage

import (
	"github.com/teresco/tm-dataproc/internal/domain/corpus"
	"github.com/teresco/tm-dataproc/internal/domain/traveler"
)

// RegionTotals accumulates the three system-independent region bucket
// names: overall, active-or-preview, and active-only.
type RegionTotals struct {
	Overall       map[string]float64
	ActivePreview map[string]float64
	ActiveOnly    map[string]float64
}

// NewRegionTotals creates empty totals.
func NewRegionTotals() *RegionTotals {
	return &RegionTotals{
		Overall:       make(map[string]float64),
		ActivePreview: make(map[string]float64),
		ActiveOnly:    make(map[string]float64),
	}
}

// Aggregator runs the concurrency-adjusted mileage pass over every system,
// route, and segment, in a fixed order.
type Aggregator struct {
	Totals *RegionTotals
}

// NewAggregator creates an Aggregator with fresh totals.
func NewAggregator() *Aggregator {
	return &Aggregator{Totals: NewRegionTotals()}
}

// Run walks systems -> routes -> segments, accumulating every region and
// per-traveler mileage bucket, then computes each ConnectedRoute's mileage
// as the sum of its member routes (run after the per-route pass completes).
func (a *Aggregator) Run(systems []*corpus.HighwaySystem) {
	for _, sys := range systems {
		for _, r := range sys.Routes {
			for _, s := range r.Segments {
				a.applySegment(sys, r, s)
			}
		}
	}
	for _, sys := range systems {
		for _, cr := range sys.ConnectedRoutes {
			cr.ComputeMileage()
		}
	}
}

func (a *Aggregator) applySegment(sys *corpus.HighwaySystem, r *corpus.Route, s *corpus.HighwaySegment) {
	group := s.ConcurrencyGroup()

	var sysC, apC, aoC, allC int
	for _, other := range group {
		allC++
		if other.Route == nil || other.Route.System == nil {
			continue
		}
		if other.Route.System == sys {
			sysC++
		}
		if other.Route.System.Level.Clinchable() {
			apC++
		}
		if other.Route.System.Level.ActiveOnly() {
			aoC++
		}
	}
	if sysC == 0 {
		sysC = 1
	}
	if apC == 0 {
		apC = 1
	}
	if aoC == 0 {
		aoC = 1
	}

	a.Totals.Overall[r.Region] += s.Length / float64(allC)
	if sys.Level.Clinchable() {
		a.Totals.ActivePreview[r.Region] += s.Length / float64(apC)
	}
	if sys.Level.ActiveOnly() {
		a.Totals.ActiveOnly[r.Region] += s.Length / float64(aoC)
	}

	sys.AddMileage(r.Region, s.Length/float64(sysC))

	apMiles := s.Length / float64(apC)
	var aoMiles float64
	if sys.Level.ActiveOnly() {
		aoMiles = s.Length / float64(aoC)
	}
	sysMiles := s.Length / float64(sysC)

	for clincher := range s.ClinchedBy {
		t, ok := clincher.(*traveler.List)
		if !ok {
			continue
		}
		t.AddRegionMileage(r.Region, apMiles, aoMiles)
		t.AddSystemMileage(sys.SystemName, r.Region, sysMiles)
	}
}
