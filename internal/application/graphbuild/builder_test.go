package graphbuild

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teresco/tm-dataproc/internal/domain/corpus"
	"github.com/teresco/tm-dataproc/internal/domain/graph"
	"github.com/teresco/tm-dataproc/internal/domain/quadtree"
)

func TestWriteEmitsThreeFilesPerDirective(t *testing.T) {
	tree := quadtree.New()
	sys := corpus.NewHighwaySystem("ncn", "USA", "National Connections Network", "black", 1, corpus.LevelActive)
	r := corpus.NewRoute(sys, "nh", "20", "", "", "", "r1", nil)
	w1 := corpus.NewWaypoint("A", nil, 0, 0, nil)
	w2 := corpus.NewWaypoint("B", nil, 1, 1, nil)
	tree.Insert(w1, true)
	tree.Insert(w2, true)
	r.AddWaypoint(w1)
	r.AddWaypoint(w2)
	sys.Routes = []*corpus.Route{r}

	hg := graph.Build(tree, []*corpus.HighwaySystem{sys}, nil, nil)
	plan := []Directive{{Name: "master", Filter: graph.Filter{}}}

	outDir := filepath.Join(t.TempDir(), "graphs")
	require.NoError(t, Write(hg, plan, outDir))

	for _, suffix := range []string{"simple", "collapsed", "traveled"} {
		path := filepath.Join(outDir, "master-"+suffix+".tmg")
		data, err := os.ReadFile(path)
		require.NoError(t, err, "expected %s to exist", path)
		assert.Contains(t, string(data), "TMG 1.0 "+suffix)
	}
}
