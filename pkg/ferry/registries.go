package ferry

import "github.com/travigo/nextferry/pkg/ferrytime"

// Registries is the full in-memory ferry model. Build one per process (or per test) with NewRegistries.
type Registries struct {
	Clock     ferrytime.Clock
	Routes    *RouteRegistry
	Terminals *TerminalRegistry
	Alerts    *AlertRegistry
}

func NewRegistries(clock ferrytime.Clock) *Registries {
	terminals := NewTerminalRegistry(defaultTerminals())
	alerts := NewAlertRegistry()

	return &Registries{
		Clock:     clock,
		Routes:    NewRouteRegistry(defaultRoutes(), clock, terminals, alerts),
		Terminals: terminals,
		Alerts:    alerts,
	}
}
