package corpus

// ConnectedRoute is a logical end-to-end route composed of one or more
// chopped Routes in order.
type ConnectedRoute struct {
	System    *HighwaySystem
	RouteName string
	Banner    string
	Abbrev    string
	Roots     []*Route // in connection order

	DisplayName string
	Mileage     float64
}

// NewConnectedRoute constructs an empty ConnectedRoute owned by system.
func NewConnectedRoute(system *HighwaySystem, routeName, banner, abbrev string) *ConnectedRoute {
	return &ConnectedRoute{
		System:    system,
		RouteName: routeName,
		Banner:    banner,
		Abbrev:    abbrev,
	}
}

// AddRoute appends r to the connected route's member list at the next
// order index and wires r back to this ConnectedRoute.
func (c *ConnectedRoute) AddRoute(r *Route) {
	r.Connected = c
	r.ConnectedIndex = len(c.Roots)
	c.Roots = append(c.Roots, r)
}

// Reconcile checks, for every adjacent pair of member routes, that the end
// endpoint of roots[i-1] coincides with the begin endpoint of roots[i]
// (connectivity invariant). When a mismatch admits a fix by
// reversing one or both neighbors, it performs the reversal and reports
// reversed=true; otherwise it reports ok=false and failedAt=i so the
// caller can emit a datacheck entry for the Root pair that failed to
// reconcile.
func (c *ConnectedRoute) Reconcile() (ok bool, reversed bool, failedAt int) {
	for i := 1; i < len(c.Roots); i++ {
		prev := c.Roots[i-1]
		cur := c.Roots[i]

		if sameWaypoint(prev.End(), cur.Begin()) {
			continue
		}
		if sameWaypoint(prev.End(), cur.End()) {
			cur.Reverse()
			reversed = true
			continue
		}
		if sameWaypoint(prev.Begin(), cur.Begin()) {
			prev.Reverse()
			reversed = true
			continue
		}
		if sameWaypoint(prev.Begin(), cur.End()) {
			prev.Reverse()
			cur.Reverse()
			reversed = true
			continue
		}
		return false, reversed, i
	}
	return true, reversed, 0
}

// sameWaypoint compares by colocation group rather than pointer identity,
// since two chopped routes meeting "at the same place" are rarely the same
// Waypoint value but are always members of one colocation group.
func sameWaypoint(a, b *Waypoint) bool {
	if a == nil || b == nil {
		return false
	}
	if a == b {
		return true
	}
	if len(a.Colocated) == 0 || len(b.Colocated) == 0 {
		return false
	}
	return a.Colocated[0] == b.Colocated[0]
}

// ComputeMileage sums member-route mileages, run after the per-route
// mileage pass has populated each Route.Mileage.
func (c *ConnectedRoute) ComputeMileage() {
	c.Mileage = 0
	for _, r := range c.Roots {
		c.Mileage += r.Mileage
	}
}
