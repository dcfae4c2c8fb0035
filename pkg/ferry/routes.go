package ferry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/travigo/nextferry/pkg/ferrytime"
	"github.com/travigo/nextferry/pkg/util"
)

var (
	ErrRouteNotFound     = errors.New("route not found")
	ErrMalformedSchedule = errors.New("malformed schedule line")
)

type RouteRegistry struct {
	mu     sync.RWMutex
	routes []*Route

	clock        ferrytime.Clock
	scheduleType *ferrytime.ScheduleTypeCache

	terminals *TerminalRegistry
	alerts    *AlertRegistry
}

func NewRouteRegistry(routes []*Route, clock ferrytime.Clock, terminals *TerminalRegistry, alerts *AlertRegistry) *RouteRegistry {
	return &RouteRegistry{
		routes:       routes,
		clock:        clock,
		scheduleType: ferrytime.NewScheduleTypeCache(clock),
		terminals:    terminals,
		alerts:       alerts,
	}
}

// All returns the live routes in catalogue order. Their timetables must only be read through the registry.
func (r *RouteRegistry) All() []*Route {
	return r.routes
}

// Find returns the first route with name as either of its display names
func (r *RouteRegistry) Find(name string) (*Route, bool) {
	for _, route := range r.routes {
		if route.DisplayName[DirectionWest] == name || route.DisplayName[DirectionEast] == name {
			return route, true
		}
	}

	return nil, false
}

func (r *RouteRegistry) ByCode(code RouteCode) (*Route, bool) {
	for _, route := range r.routes {
		if route.Code == code {
			return route, true
		}
	}

	return nil, false
}

func (r *RouteRegistry) Snapshot(route *Route) *Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return route.snapshot()
}

// LoadTimes reads a "<route name>,<key>,<time>,<time>..." line and replaces that timetable.
// The first key character picks the direction (w or e), the second the schedule type (e weekend, s special, otherwise weekday).
func (r *RouteRegistry) LoadTimes(line string) error {
	tokens := strings.Split(strings.TrimSpace(line), ",")
	if len(tokens) < 2 || tokens[1] == "" {
		return fmt.Errorf("%w: %q", ErrMalformedSchedule, line)
	}

	route, ok := r.Find(tokens[0])
	if !ok {
		return fmt.Errorf("%w: %q", ErrRouteNotFound, tokens[0])
	}

	direction, scheduleType := parseScheduleKey(tokens[1])

	times := make([]ferrytime.ServiceTime, 0, len(tokens)-2)
	for _, token := range tokens[2:] {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		minutes, err := strconv.Atoi(token)
		if err != nil {
			return fmt.Errorf("%w: route %s: %w", ErrMalformedSchedule, tokens[0], err)
		}

		times = append(times, ferrytime.ServiceTime(minutes))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	route.Times[direction][scheduleType] = times

	return nil
}

func parseScheduleKey(key string) (Direction, ferrytime.ScheduleType) {
	direction := DirectionEast
	if key[0] == 'w' {
		direction = DirectionWest
	}

	scheduleType := ferrytime.ScheduleTypeWeekday
	if len(key) > 1 {
		switch key[1] {
		case 'e':
			scheduleType = ferrytime.ScheduleTypeWeekend
		case 's':
			scheduleType = ferrytime.ScheduleTypeSpecial
		}
	}

	return direction, scheduleType
}

func (r *RouteRegistry) ClearAllTimes() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, route := range r.routes {
		route.Times[DirectionWest] = Timetable{}
		route.Times[DirectionEast] = Timetable{}
	}
}

// ResetScheduleType forgets the memoised schedule type, call it when the service day may have changed
func (r *RouteRegistry) ResetScheduleType() {
	r.scheduleType.Reset()
}

func (r *RouteRegistry) Now() ferrytime.ServiceTime {
	return ferrytime.Now(r.clock)
}

// TodaysSchedule uses the special schedule if one is loaded, otherwise weekday or weekend.
// Only the westbound special table is checked.
func (r *RouteRegistry) TodaysSchedule(route *Route) ferrytime.ScheduleType {
	r.mu.RLock()
	hasSpecial := len(route.Times[DirectionWest][ferrytime.ScheduleTypeSpecial]) > 0
	r.mu.RUnlock()

	if hasSpecial {
		return ferrytime.ScheduleTypeSpecial
	}

	return r.scheduleType.Get()
}

// Departures is the whole timetable for a direction. An empty scheduleType means today's schedule.
func (r *RouteRegistry) Departures(route *Route, direction Direction, scheduleType ferrytime.ScheduleType) []ferrytime.ServiceTime {
	return r.filter(route, direction, scheduleType, func(ferrytime.ServiceTime) bool { return true })
}

// FutureDepartures are the departures strictly after now
func (r *RouteRegistry) FutureDepartures(route *Route, direction Direction, scheduleType ferrytime.ScheduleType) []ferrytime.ServiceTime {
	now := r.Now()

	return r.filter(route, direction, scheduleType, func(t ferrytime.ServiceTime) bool { return t > now })
}

func (r *RouteRegistry) NextDeparture(route *Route, direction Direction) (ferrytime.ServiceTime, bool) {
	departures := r.FutureDepartures(route, direction, "")
	if len(departures) == 0 {
		return 0, false
	}

	return departures[0], true
}

func (r *RouteRegistry) BeforeNoon(route *Route, direction Direction, scheduleType ferrytime.ScheduleType) []ferrytime.ServiceTime {
	return r.filter(route, direction, scheduleType, func(t ferrytime.ServiceTime) bool { return t < ferrytime.Noon })
}

func (r *RouteRegistry) AfterNoon(route *Route, direction Direction, scheduleType ferrytime.ScheduleType) []ferrytime.ServiceTime {
	return r.filter(route, direction, scheduleType, func(t ferrytime.ServiceTime) bool { return t >= ferrytime.Noon })
}

func (r *RouteRegistry) filter(route *Route, direction Direction, scheduleType ferrytime.ScheduleType, keep func(ferrytime.ServiceTime) bool) []ferrytime.ServiceTime {
	if scheduleType == "" {
		scheduleType = r.TodaysSchedule(route)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return util.Filter(route.Times[direction][scheduleType], keep)
}

// TerminalName is the name of the terminal at the given end of the route
func (r *RouteRegistry) TerminalName(route *Route, direction Direction) string {
	terminal, ok := r.terminals.Get(route.Terminals[direction])
	if !ok {
		return ""
	}

	return terminal.Name
}

// DepartureTerminal is where a sailing in the given direction leaves from, westbound boats leave the east terminal
func (r *RouteRegistry) DepartureTerminal(route *Route, direction Direction) (Terminal, bool) {
	return r.terminals.Get(route.Terminals[direction.Opposite()])
}

func (r *RouteRegistry) HasNewAlerts(route *Route) bool {
	return r.alerts.HasAlerts(route, true)
}
