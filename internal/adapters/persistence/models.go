// Package persistence stages the relational dataset that an
// externally-owned SQL text formatter turns into the published TravelMapping
// dump. Models mirror the tables that formatter expects; conversion to and
// from the in-memory corpus/traveler domain types happens at the repository
// boundary, never inside the domain packages themselves.
package persistence

// SystemModel represents the systems table.
type SystemModel struct {
	SystemName  string `gorm:"column:system_name;primaryKey;size:10"`
	CountryCode string `gorm:"column:country_code;size:3"`
	FullName    string `gorm:"column:full_name;size:60"`
	Color       string `gorm:"column:color;size:16"`
	Tier        int    `gorm:"column:tier"`
	Level       string `gorm:"column:level;size:10"`
}

func (SystemModel) TableName() string { return "systems" }

// RouteModel represents the routes table (one row per chopped route).
type RouteModel struct {
	Root          string `gorm:"column:root;primaryKey;size:32"`
	SystemName    string `gorm:"column:system_name;size:10;index"`
	Region        string `gorm:"column:region;size:8"`
	RouteName     string `gorm:"column:route;size:16"`
	Banner        string `gorm:"column:banner;size:6"`
	Abbrev        string `gorm:"column:abbrev;size:3"`
	City          string `gorm:"column:city;size:64"`
	ConnectedRoot string `gorm:"column:connected_root;size:32;index"`
	Mileage       float64 `gorm:"column:mileage"`
	Reversed      bool    `gorm:"column:reversed"`
}

func (RouteModel) TableName() string { return "routes" }

// ConnectedRouteModel represents the connected_routes table.
type ConnectedRouteModel struct {
	ID         string  `gorm:"column:id;primaryKey;size:48"`
	SystemName string  `gorm:"column:system_name;size:10;index"`
	RouteName  string  `gorm:"column:route;size:16"`
	Banner     string  `gorm:"column:banner;size:6"`
	Abbrev     string  `gorm:"column:abbrev;size:3"`
	Name       string  `gorm:"column:name;size:80"`
	Mileage    float64 `gorm:"column:mileage"`
}

func (ConnectedRouteModel) TableName() string { return "connected_routes" }

// WaypointModel represents the waypoints table.
type WaypointModel struct {
	ID             uint    `gorm:"column:id;primaryKey;autoIncrement"`
	RouteRoot      string  `gorm:"column:route_root;size:32;index"`
	Sequence       int     `gorm:"column:sequence"`
	Label          string  `gorm:"column:label;size:45"`
	Lat            float64 `gorm:"column:lat"`
	Lng            float64 `gorm:"column:lng"`
	ColocationHash string  `gorm:"column:colocation_hash;size:64;index"`
}

func (WaypointModel) TableName() string { return "waypoints" }

// SegmentModel represents the segments table.
type SegmentModel struct {
	ID              uint    `gorm:"column:id;primaryKey;autoIncrement"`
	RouteRoot       string  `gorm:"column:route_root;size:32;index"`
	Waypoint1ID     uint    `gorm:"column:waypoint1_id;index"`
	Waypoint2ID     uint    `gorm:"column:waypoint2_id;index"`
	Length          float64 `gorm:"column:length"`
	ConcurrencyHash string  `gorm:"column:concurrency_hash;size:64;index"`
}

func (SegmentModel) TableName() string { return "segments" }

// TravelerModel represents the travelers table.
type TravelerModel struct {
	Name string `gorm:"column:name;primaryKey;size:48"`
}

func (TravelerModel) TableName() string { return "travelers" }

// ClinchedSegmentModel represents the clinched table (traveler x segment).
type ClinchedSegmentModel struct {
	TravelerName string `gorm:"column:traveler_name;primaryKey;size:48"`
	SegmentID    uint   `gorm:"column:segment_id;primaryKey"`
}

func (ClinchedSegmentModel) TableName() string { return "clinched" }

// DatacheckModel represents the datacheck table.
type DatacheckModel struct {
	ID       uint   `gorm:"column:id;primaryKey;autoIncrement"`
	Root     string `gorm:"column:root;size:32;index"`
	Label1   string `gorm:"column:label1;size:45"`
	Label2   string `gorm:"column:label2;size:45"`
	Label3   string `gorm:"column:label3;size:45"`
	Code     string `gorm:"column:code;size:32;index"`
	Info     string `gorm:"column:info;size:256"`
	FPMatch  bool   `gorm:"column:fp_match"`
	NearOnly bool   `gorm:"column:near_only"`
}

func (DatacheckModel) TableName() string { return "datacheck" }
