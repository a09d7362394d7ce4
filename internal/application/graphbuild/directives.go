// Package graphbuild turns a built graph.HighwayGraph into the family of
// named subgraph files a run produces: one master graph plus
// directive-driven area/region/system/multisystem/multiregion subgraphs.
package graphbuild

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/teresco/tm-dataproc/internal/domain/corpus"
	"github.com/teresco/tm-dataproc/internal/domain/graph"
)

func toSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

// Directive names one subgraph to emit: a filename stem, a human
// description (unused beyond bookkeeping — no catalog page is written by
// this module), and the graph.Filter that selects its vertices and edges.
type Directive struct {
	Name   string
	Descr  string
	Filter graph.Filter
}

// Plan assembles every directive a run should emit: the unfiltered master
// graph, one graph per region carrying active-or-preview mileage, and the
// area/system/multisystem/multiregion directives read from graphsDir
// (four CSV files). Parse failures on an optional directive
// file are non-fatal — that category of subgraph is just skipped.
func Plan(systems []*corpus.HighwaySystem, graphsDir string) []Directive {
	var plan []Directive
	plan = append(plan, Directive{Name: "master", Descr: "All Travel Mapping Data"})
	plan = append(plan, regionDirectives(systems)...)
	plan = append(plan, areaDirectives(graphsDir)...)
	plan = append(plan, systemDirectives(systems, graphsDir)...)
	plan = append(plan, multiSystemDirectives(systems, graphsDir)...)
	plan = append(plan, multiRegionDirectives(systems, graphsDir)...)
	return plan
}

func regionDirectives(systems []*corpus.HighwaySystem) []Directive {
	active := make(map[string]bool)
	for _, sys := range systems {
		for region, mi := range sys.MileageByRegion {
			if mi > 0 {
				active[region] = true
			}
		}
	}
	regions := make([]string, 0, len(active))
	for r := range active {
		regions = append(regions, r)
	}
	sort.Strings(regions)

	out := make([]Directive, 0, len(regions))
	for _, r := range regions {
		out = append(out, Directive{
			Name:   r + "-region",
			Descr:  r,
			Filter: graph.Filter{Regions: toSet([]string{r})},
		})
	}
	return out
}

func areaDirectives(graphsDir string) []Directive {
	lines, err := readDirectiveLines(filepath.Join(graphsDir, "areagraphs.csv"))
	if err != nil {
		return nil
	}
	var out []Directive
	for _, line := range lines {
		fields := strings.Split(line, ";")
		if len(fields) != 5 {
			continue
		}
		descr := strings.TrimSpace(fields[0])
		title := strings.TrimSpace(fields[1])
		lat, errLat := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
		lng, errLng := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
		radius, errRad := strconv.Atoi(strings.TrimSpace(fields[4]))
		if errLat != nil || errLng != nil || errRad != nil || radius <= 0 {
			continue
		}
		out = append(out, Directive{
			Name:  fmt.Sprintf("%s%d-area", title, radius),
			Descr: fmt.Sprintf("%s (%d mi radius)", descr, radius),
			Filter: graph.Filter{
				HasDisk:   true,
				CenterLat: lat,
				CenterLng: lng,
				RadiusMi:  float64(radius),
			},
		})
	}
	return out
}

func systemDirectives(systems []*corpus.HighwaySystem, graphsDir string) []Directive {
	lines, err := readDirectiveLines(filepath.Join(graphsDir, "systemgraphs.csv"))
	if err != nil {
		return nil
	}
	byName := make(map[string]*corpus.HighwaySystem, len(systems))
	for _, s := range systems {
		byName[s.SystemName] = s
	}

	var out []Directive
	for _, line := range lines {
		name := strings.TrimSpace(line)
		sys, ok := byName[name]
		if !ok {
			continue
		}
		out = append(out, Directive{
			Name:   sys.SystemName + "-system",
			Descr:  fmt.Sprintf("%s (%s)", sys.SystemName, sys.FullName),
			Filter: graph.Filter{Systems: toSet([]string{sys.SystemName})},
		})
	}
	return out
}

func multiSystemDirectives(systems []*corpus.HighwaySystem, graphsDir string) []Directive {
	lines, err := readDirectiveLines(filepath.Join(graphsDir, "multisystem.csv"))
	if err != nil {
		return nil
	}
	known := make(map[string]bool, len(systems))
	for _, s := range systems {
		known[s.SystemName] = true
	}

	var out []Directive
	for _, line := range lines {
		fields := strings.Split(line, ";")
		if len(fields) != 3 {
			continue
		}
		descr := strings.TrimSpace(fields[0])
		title := strings.TrimSpace(fields[1])
		var selected []string
		for _, name := range strings.Split(fields[2], ",") {
			name = strings.TrimSpace(name)
			if known[name] {
				selected = append(selected, name)
			}
		}
		if len(selected) == 0 {
			continue
		}
		out = append(out, Directive{Name: title, Descr: descr, Filter: graph.Filter{Systems: toSet(selected)}})
	}
	return out
}

func multiRegionDirectives(systems []*corpus.HighwaySystem, graphsDir string) []Directive {
	lines, err := readDirectiveLines(filepath.Join(graphsDir, "multiregion.csv"))
	if err != nil {
		return nil
	}
	active := make(map[string]bool)
	for _, sys := range systems {
		for region, mi := range sys.MileageByRegion {
			if mi > 0 {
				active[region] = true
			}
		}
	}

	var out []Directive
	for _, line := range lines {
		fields := strings.Split(line, ";")
		if len(fields) != 3 {
			continue
		}
		descr := strings.TrimSpace(fields[0])
		title := strings.TrimSpace(fields[1])
		var selected []string
		for _, region := range strings.Split(fields[2], ",") {
			region = strings.TrimSpace(region)
			if active[region] {
				selected = append(selected, region)
			}
		}
		if len(selected) == 0 {
			continue
		}
		out = append(out, Directive{Name: title, Descr: descr, Filter: graph.Filter{Regions: toSet(selected)}})
	}
	return out
}

func readDirectiveLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	header := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if header {
			header = false
			continue
		}
		out = append(out, line)
	}
	return out, scanner.Err()
}
