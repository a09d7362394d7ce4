package graphbuild

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/teresco/tm-dataproc/internal/domain/graph"
)

const tmgVersion = "1.0"

var kinds = []struct {
	kind   graph.Kind
	suffix string
}{
	{graph.KindSimple, "simple"},
	{graph.KindCollapsed, "collapsed"},
	{graph.KindTraveled, "traveled"},
}

// Write emits every directive in plan against hg, three .tmg files each
// (simple/collapsed/traveled), into outDir.
func Write(hg *graph.HighwayGraph, plan []Directive, outDir string) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating graph output dir: %w", err)
	}
	for _, d := range plan {
		for _, k := range kinds {
			sub := hg.Emit(k.kind, d.Filter)
			path := filepath.Join(outDir, fmt.Sprintf("%s-%s.tmg", d.Name, k.suffix))
			if err := writeOne(sub, path); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
		}
	}
	return nil
}

func writeOne(sub *graph.Subgraph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return graph.WriteTMG(sub, tmgVersion, f)
}
