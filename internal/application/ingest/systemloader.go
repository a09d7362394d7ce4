package ingest

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/teresco/tm-dataproc/internal/domain/corpus"
	"github.com/teresco/tm-dataproc/internal/domain/shared"
)

// SystemLoader reads systems.csv, each system's route-listing CSV, and each
// system's connected-route CSV. The per-.wpt parsing itself is delegated to
// a caller-supplied RouteLoader, which is what actually owns the shared
// quadtree and its mutex.
type SystemLoader struct {
	dataRoot string
	errs     *shared.ErrorList
}

// NewSystemLoader builds a loader rooted at dataRoot, the highway data path.
func NewSystemLoader(dataRoot string, errs *shared.ErrorList) *SystemLoader {
	return &SystemLoader{dataRoot: dataRoot, errs: errs}
}

// LoadSystems parses systemsFile (6 `;`-separated fields,
// header + N lines) into empty HighwaySystem shells, not yet populated
// with routes.
func (l *SystemLoader) LoadSystems(systemsFile string) ([]*corpus.HighwaySystem, error) {
	f, err := os.Open(filepath.Join(l.dataRoot, systemsFile))
	if err != nil {
		return nil, fmt.Errorf("opening systems file: %w", err)
	}
	defer f.Close()

	var systems []*corpus.HighwaySystem
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
		fields := strings.Split(line, ";")
		if len(fields) < 6 {
			l.errs.Addf("MALFORMED_SYSTEMS_LINE", "systems.csv: expected 6 fields, got %d: %q", len(fields), line)
			continue
		}
		tier, err := strconv.Atoi(strings.TrimSpace(fields[4]))
		if err != nil {
			l.errs.Addf("MALFORMED_SYSTEMS_LINE", "systems.csv: non-integer tier %q for system %s", fields[4], fields[0])
			continue
		}
		level, ok := corpus.ParseLevel(fields[5])
		if !ok {
			l.errs.Addf("MALFORMED_SYSTEMS_LINE", "systems.csv: unknown level %q for system %s", fields[5], fields[0])
			continue
		}
		sys := corpus.NewHighwaySystem(
			strings.TrimSpace(fields[0]),
			strings.TrimSpace(fields[1]),
			strings.TrimSpace(fields[2]),
			strings.TrimSpace(fields[3]),
			tier, level,
		)
		systems = append(systems, sys)
	}
	return systems, scanner.Err()
}

// LoadRoutes parses <sys>.csv (8 fields) into sys.Routes, and
// for each route opens its .wpt file at
// <dataRoot>/<region>/<system>/<root>.wpt and runs it through loader.
func (l *SystemLoader) LoadRoutes(sys *corpus.HighwaySystem, loader *RouteLoader) error {
	path := filepath.Join(l.dataRoot, sys.SystemName+".csv")
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s.csv: %w", sys.SystemName, err)
	}
	defer f.Close()

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
		fields := strings.Split(line, ";")
		if len(fields) < 8 {
			l.errs.Addf("MALFORMED_ROUTE_LINE", "%s.csv: expected 8 fields, got %d: %q", sys.SystemName, len(fields), line)
			continue
		}
		region := strings.TrimSpace(fields[1])
		routeName := strings.TrimSpace(fields[2])
		banner := strings.TrimSpace(fields[3])
		abbrev := strings.TrimSpace(fields[4])
		city := strings.TrimSpace(fields[5])
		root := strings.TrimSpace(fields[6])
		var altNames []string
		if alt := strings.TrimSpace(fields[7]); alt != "" {
			altNames = strings.Split(alt, ",")
		}

		route := corpus.NewRoute(sys, region, routeName, banner, abbrev, city, root, altNames)
		sys.Routes = append(sys.Routes, route)

		if err := l.loadWpt(route, region, loader); err != nil {
			l.errs.Addf("UNREADABLE_WPT", "%s: %v", route.Root, err)
			continue
		}
		route.BuildLabelHashes()
	}
	return scanner.Err()
}

func (l *SystemLoader) loadWpt(route *corpus.Route, region string, loader *RouteLoader) error {
	path := filepath.Join(l.dataRoot, region, route.System.SystemName, route.Root+".wpt")
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return loader.Load(route, f)
}

// LoadConnectedRoutes parses <sys>_con.csv (5 fields — system,
// route, banner, groupName, comma-separated roots) into sys.ConnectedRoutes,
// resolving each listed root against the routes already loaded by LoadRoutes.
func (l *SystemLoader) LoadConnectedRoutes(sys *corpus.HighwaySystem) error {
	path := filepath.Join(l.dataRoot, sys.SystemName+"_con.csv")
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening %s_con.csv: %w", sys.SystemName, err)
	}
	defer f.Close()

	byRoot := make(map[string]*corpus.Route, len(sys.Routes))
	for _, r := range sys.Routes {
		byRoot[r.Root] = r
	}

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
		if err := l.loadConnectedLine(sys, line, byRoot); err != nil {
			l.errs.Addf("MALFORMED_CON_LINE", "%s_con.csv: %v", sys.SystemName, err)
		}
	}
	return scanner.Err()
}

func (l *SystemLoader) loadConnectedLine(sys *corpus.HighwaySystem, line string, byRoot map[string]*corpus.Route) error {
	fields := strings.Split(line, ";")
	if len(fields) < 5 {
		return fmt.Errorf("expected 5 fields, got %d: %q", len(fields), line)
	}
	routeName := strings.TrimSpace(fields[1])
	banner := strings.TrimSpace(fields[2])
	groupName := strings.TrimSpace(fields[3])
	roots := strings.Split(fields[4], ",")

	cr := corpus.NewConnectedRoute(sys, routeName, banner, "")
	cr.DisplayName = groupName
	for _, rootName := range roots {
		rootName = strings.TrimSpace(rootName)
		r, ok := byRoot[strings.ToLower(rootName)]
		if !ok {
			l.errs.Addf("CONNECTED_ROUTE_ROOT_MISSING", "%s: %s references unknown root %s", sys.SystemName, groupName, rootName)
			continue
		}
		cr.AddRoute(r)
	}
	sys.ConnectedRoutes = append(sys.ConnectedRoutes, cr)
	return nil
}
