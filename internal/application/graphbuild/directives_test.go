package graphbuild

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teresco/tm-dataproc/internal/domain/corpus"
)

func TestPlanAlwaysIncludesMaster(t *testing.T) {
	dir := t.TempDir()
	plan := Plan(nil, dir)
	require.NotEmpty(t, plan)
	assert.Equal(t, "master", plan[0].Name)
}

func TestRegionDirectivesOnlyIncludeActiveRegions(t *testing.T) {
	sys := corpus.NewHighwaySystem("ncn", "USA", "National Connections Network", "black", 1, corpus.LevelActive)
	sys.MileageByRegion = map[string]float64{"nh": 10, "vt": 0}

	plan := Plan([]*corpus.HighwaySystem{sys}, t.TempDir())
	var names []string
	for _, d := range plan {
		names = append(names, d.Name)
	}
	assert.Contains(t, names, "nh-region")
	assert.NotContains(t, names, "vt-region")
}

func TestSystemDirectivesResolveFromCSV(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "systemgraphs.csv"),
		[]byte("system\nncn\nunknown\n"), 0o644))

	sys := corpus.NewHighwaySystem("ncn", "USA", "National Connections Network", "black", 1, corpus.LevelActive)
	plan := Plan([]*corpus.HighwaySystem{sys}, dir)

	var found *Directive
	for i := range plan {
		if plan[i].Name == "ncn-system" {
			found = &plan[i]
		}
	}
	require.NotNil(t, found)
	assert.True(t, found.Filter.Systems["ncn"])
}

func TestAreaDirectivesParseRadius(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "areagraphs.csv"),
		[]byte("descr;title;lat;lng;radius\nBoston area;boston;42.36;-71.06;50\n"), 0o644))

	plan := Plan(nil, dir)
	var found *Directive
	for i := range plan {
		if plan[i].Name == "boston50-area" {
			found = &plan[i]
		}
	}
	require.NotNil(t, found)
	assert.True(t, found.Filter.HasDisk)
	assert.Equal(t, 50.0, found.Filter.RadiusMi)
}

func TestMultiSystemDirectivesSkipUnknownSystems(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "multisystem.csv"),
		[]byte("descr;title;systems\nUSA routes;usa-multi;ncn,ghost\n"), 0o644))

	sys := corpus.NewHighwaySystem("ncn", "USA", "National Connections Network", "black", 1, corpus.LevelActive)
	plan := Plan([]*corpus.HighwaySystem{sys}, dir)

	var found *Directive
	for i := range plan {
		if plan[i].Name == "usa-multi" {
			found = &plan[i]
		}
	}
	require.NotNil(t, found)
	assert.True(t, found.Filter.Systems["ncn"])
	assert.False(t, found.Filter.Systems["ghost"])
}

func TestMultiRegionDirectivesSkipInactiveRegions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "multiregion.csv"),
		[]byte("descr;title;regions\nNew England;ne-multi;nh,vt\n"), 0o644))

	sys := corpus.NewHighwaySystem("ncn", "USA", "National Connections Network", "black", 1, corpus.LevelActive)
	sys.MileageByRegion = map[string]float64{"nh": 10}
	plan := Plan([]*corpus.HighwaySystem{sys}, dir)

	var found *Directive
	for i := range plan {
		if plan[i].Name == "ne-multi" {
			found = &plan[i]
		}
	}
	require.NotNil(t, found)
	assert.True(t, found.Filter.Regions["nh"])
	assert.False(t, found.Filter.Regions["vt"])
}

func TestDirectiveFilesOptionalWhenMissing(t *testing.T) {
	plan := Plan(nil, t.TempDir())
	assert.Len(t, plan, 1, "only the master directive is produced absent any CSV")
}
