package shared

// FieldLimits names the maximum byte length of every string column that
// will appear in the SQL dump, so loaders can enforce them
// at parse time rather than discovering an overflow at dump time. These
// mirror the gorm `size:N` tags on the persistence models in
// internal/adapters/persistence, which is the single source of truth the
// GORM schema is generated from; this table exists so ingestion-time code
// that never touches GORM (RouteLoader, TravelListResolver) can still
// enforce the same limits without importing the persistence package.
var FieldLimits = map[string]int{
	"waypoint.label":       45,
	"route.system":         10,
	"route.region":         8,
	"route.route":          16,
	"route.banner":         6,
	"route.abbrev":         3,
	"route.city":           64,
	"route.root":           32,
	"route.alt_route_name": 16,
	"system.system_name":   10,
	"system.country_code":  3,
	"system.full_name":     60,
	"system.color":         16,
	"traveler.name":        48,
	"datacheck.code":       32,
	"datacheck.info":       256,
}

// Truncate cuts s to at most n bytes, returning the kept prefix and the
// discarded tail. Byte-oriented (not rune-aware) truncation matches the
// original program's behavior on the rare multi-byte label overflow.
func Truncate(s string, n int) (kept, tail string) {
	if len(s) <= n {
		return s, ""
	}
	return s[:n], s[n:]
}
