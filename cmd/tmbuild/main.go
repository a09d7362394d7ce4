// Command tmbuild ingests a highway-route data corpus (systems, routes,
// waypoints, and user travel lists) and produces the derived relational
// dump, graph files, and datacheck diagnostics described by the project
// this module implements.
package main

func main() {
	execute()
}
