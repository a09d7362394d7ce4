// Package pipeline wires every application-layer stage — ingestion,
// concurrency detection, travel-list resolution, mileage aggregation,
// datachecking, and graph construction — into a single end-to-end run, in
// a fixed phase order: parallel ingestion, then a sequence of
// single-threaded passes over the fully constructed data structures.
// Persistence and graph-file writing are left to the caller (cmd/tmbuild).
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/teresco/tm-dataproc/internal/application/common"
	"github.com/teresco/tm-dataproc/internal/application/concurrency"
	"github.com/teresco/tm-dataproc/internal/application/ingest"
	"github.com/teresco/tm-dataproc/internal/application/mileage"
	"github.com/teresco/tm-dataproc/internal/application/travel"
	"github.com/teresco/tm-dataproc/internal/domain/corpus"
	"github.com/teresco/tm-dataproc/internal/domain/datacheck"
	"github.com/teresco/tm-dataproc/internal/domain/graph"
	"github.com/teresco/tm-dataproc/internal/domain/quadtree"
	"github.com/teresco/tm-dataproc/internal/domain/shared"
	"github.com/teresco/tm-dataproc/internal/domain/traveler"
	"github.com/teresco/tm-dataproc/internal/infrastructure/config"
	"github.com/teresco/tm-dataproc/internal/infrastructure/metrics"
	"github.com/teresco/tm-dataproc/internal/infrastructure/workerpool"
)

// Result is everything a completed run produced, handed off to the
// persistence and graph-emission stages of cmd/tmbuild.
type Result struct {
	Systems       []*corpus.HighwaySystem
	Travelers     []*traveler.List
	Tree          *quadtree.Tree
	Datacheck     *shared.DatacheckLog
	Errors        *shared.ErrorList
	Graph         *graph.HighwayGraph
	TravelerNames []string
}

// Pipeline runs one tmbuild batch over cfg.
type Pipeline struct {
	cfg *config.Config
}

// New builds a Pipeline over cfg.
func New(cfg *config.Config) *Pipeline {
	return &Pipeline{cfg: cfg}
}

// Run executes every phase in order and returns the assembled Result, or
// the first fatal error if the corpus could not be ingested at all.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	logger := common.LoggerFromContext(ctx)
	m := metrics.FromContext(ctx)

	tree := quadtree.New()
	errs := shared.NewErrorList(func(e *shared.DataError) {
		logger.Log("ERROR", e.Error(), map[string]interface{}{"code": e.Code})
	})

	systems, err := p.ingest(ctx, tree, errs, m)
	if err != nil {
		return nil, fmt.Errorf("ingestion failed: %w", err)
	}
	tree.Sort()

	if p.cfg.Run.ErrorCheckOnly {
		return &Result{Systems: systems, Tree: tree, Errors: errs}, nil
	}

	checker, fpRejected := p.newChecker(errs)
	for _, rej := range fpRejected {
		logger.Log("WARN", "rejected always-error false positive", map[string]interface{}{
			"code": rej.Code, "root": rej.Root,
		})
	}

	p.reconcileConnectedRoutes(systems, checker)

	concurrency.NewDetector().Run(systems)

	for _, sys := range systems {
		for _, r := range sys.Routes {
			checker.CheckRoute(r)
		}
	}

	lists := p.resolveTravelers(systems)

	mileage.NewAggregator().Run(systems)

	travelerNames := traveler.SortedNames(lists)
	hg := graph.Build(tree, systems, travelerNames, checker.Checker)
	if m != nil {
		m.DatacheckErrors.Add(float64(len(checker.log().Unsuppressed())))
	}

	return &Result{
		Systems:       systems,
		Travelers:     lists,
		Tree:          tree,
		Datacheck:     checker.log(),
		Errors:        errs,
		Graph:         hg,
		TravelerNames: travelerNames,
	}, nil
}

func (p *Pipeline) ingest(ctx context.Context, tree *quadtree.Tree, errs *shared.ErrorList, m *metrics.Registry) ([]*corpus.HighwaySystem, error) {
	sysLoader := ingest.NewSystemLoader(p.cfg.Paths.HighwayData, errs)
	systems, err := sysLoader.LoadSystems(p.cfg.Paths.SystemsFile)
	if err != nil {
		return nil, err
	}

	var treeMu sync.Mutex
	pool := workerpool.New(p.cfg.Threads.Count)

	err = workerpool.Run(ctx, pool, systems, func(_ context.Context, sys *corpus.HighwaySystem) error {
		routeLoader := ingest.NewRouteLoader(tree, &treeMu, errs)
		if err := sysLoader.LoadRoutes(sys, routeLoader); err != nil {
			return fmt.Errorf("system %s: %w", sys.SystemName, err)
		}
		if err := sysLoader.LoadConnectedRoutes(sys); err != nil {
			return fmt.Errorf("system %s connected routes: %w", sys.SystemName, err)
		}
		if m != nil {
			m.SystemsLoaded.Inc()
			m.RoutesLoaded.Add(float64(len(sys.Routes)))
			for _, r := range sys.Routes {
				m.WaypointsLoaded.Add(float64(len(r.Waypoints)))
				m.SegmentsLoaded.Add(float64(len(r.Segments)))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return systems, nil
}

func (p *Pipeline) newChecker(errs *shared.ErrorList) (*checker, []*datacheck.FalsePositive) {
	dlog := shared.NewDatacheckLog()
	fpPath := filepath.Join(p.cfg.Paths.HighwayData, "datacheckfps.csv")
	fps, err := datacheck.LoadFalsePositives(fpPath)
	if err != nil {
		errs.Addf("UNREADABLE_FP_FILE", "%v", err)
	}
	c, rejected := datacheck.NewChecker(dlog, fps)
	return &checker{Checker: c, dlog: dlog}, rejected
}

// checker wraps datacheck.Checker so Run can hand back the accumulated log
// alongside the rule-check API, without exporting a getter on the
// datacheck package itself for a value it already owns privately.
type checker struct {
	*datacheck.Checker
	dlog *shared.DatacheckLog
}

func (c *checker) log() *shared.DatacheckLog { return c.dlog }

func (p *Pipeline) reconcileConnectedRoutes(systems []*corpus.HighwaySystem, checker *checker) {
	for _, sys := range systems {
		for _, cr := range sys.ConnectedRoutes {
			if ok, _, failedAt := cr.Reconcile(); !ok {
				checker.CheckConnectedRouteReconcile(cr, failedAt)
			}
		}
	}
}

func (p *Pipeline) resolveTravelers(systems []*corpus.HighwaySystem) []*traveler.List {
	lists, err := travel.LoadLists(p.cfg.Paths.UserLists)
	if err != nil {
		return nil
	}
	if p.cfg.Run.UserListRestriction != "" {
		lists = filterLists(lists, p.cfg.Run.UserListRestriction)
	}

	idx := travel.NewRouteIndex(systems)
	resolver := travel.NewResolver(idx)
	for _, l := range lists {
		resolver.ResolveAll(l)
	}
	return lists
}

func filterLists(lists []*traveler.List, name string) []*traveler.List {
	for _, l := range lists {
		if l.UserName == name {
			return []*traveler.List{l}
		}
	}
	return nil
}
