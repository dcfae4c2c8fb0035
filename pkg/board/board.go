package board

import (
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/nextferry/pkg/ferry"
	"github.com/travigo/nextferry/pkg/ferrytime"
	"golang.org/x/exp/slices"
)

type Departure struct {
	Route     string                 `csv:"route" json:"-"`
	Direction ferry.Direction        `csv:"direction" json:"-"`
	Terminal  string                 `csv:"terminal" json:"-"`
	Schedule  ferrytime.ScheduleType `csv:"schedule" json:"-"`

	Time     string                `csv:"time"`
	Minutes  ferrytime.ServiceTime `csv:"minutes"`
	Goodness ferry.Goodness        `csv:"goodness" json:",omitempty"`
}

// Row is one line of the departure board: a route in one direction
type Row struct {
	Route       string
	Code        ferry.RouteCode
	Direction   ferry.Direction
	Terminal    string
	Destination string
	Schedule    ferrytime.ScheduleType
	TravelTime  ferry.TravelTime
	NewAlerts   bool

	Departures []Departure
}

type Options struct {
	Formatter     *ferrytime.Formatter
	BufferMinutes int

	// Limit caps the departures per row, 0 for all of today's remaining sailings
	Limit int
}

// Build computes a row for every route and direction, sorted by route code with westbound first
func Build(registries *ferry.Registries, options Options) []Row {
	routes := registries.Routes
	now := routes.Now()

	p := pool.NewWithResults[Row]()
	p.WithMaxGoroutines(8)

	for _, route := range routes.All() {
		for _, direction := range ferry.Directions {
			p.Go(func() Row {
				return buildRow(registries, options, now, route, direction)
			})
		}
	}

	rows := p.Wait()

	directionOrder := map[ferry.Direction]int{ferry.DirectionWest: 0, ferry.DirectionEast: 1}
	slices.SortFunc(rows, func(a, b Row) int {
		if a.Code != b.Code {
			if a.Code < b.Code {
				return -1
			}
			return 1
		}

		return directionOrder[a.Direction] - directionOrder[b.Direction]
	})

	return rows
}

func newRow(registries *ferry.Registries, route *ferry.Route, direction ferry.Direction, scheduleType ferrytime.ScheduleType) Row {
	routes := registries.Routes

	row := Row{
		Route:       route.Name(),
		Code:        route.Code,
		Direction:   direction,
		Destination: routes.TerminalName(route, direction),
		Schedule:    scheduleType,
		TravelTime:  ferry.UnknownTravelTime,
		NewAlerts:   routes.HasNewAlerts(route),
		Departures:  []Departure{},
	}

	if terminal, ok := routes.DepartureTerminal(route, direction); ok {
		row.Terminal = terminal.Name
		row.TravelTime = terminal.TravelTime
	}

	return row
}

func buildRow(registries *ferry.Registries, options Options, now ferrytime.ServiceTime, route *ferry.Route, direction ferry.Direction) Row {
	routes := registries.Routes
	row := newRow(registries, route, direction, routes.TodaysSchedule(route))

	for _, departure := range routes.FutureDepartures(route, direction, row.Schedule) {
		if options.Limit > 0 && len(row.Departures) >= options.Limit {
			break
		}

		row.Departures = append(row.Departures, Departure{
			Route:     row.Route,
			Direction: direction,
			Terminal:  row.Terminal,
			Schedule:  row.Schedule,
			Time:      options.Formatter.TimeString(departure),
			Minutes:   departure,
			Goodness:  ferry.Classify(now, row.TravelTime, options.BufferMinutes, departure),
		})
	}

	return row
}

// BuildRow is the board row for one route and direction as of now
func BuildRow(registries *ferry.Registries, options Options, route *ferry.Route, direction ferry.Direction) Row {
	return buildRow(registries, options, registries.Routes.Now(), route, direction)
}

// Timetable is a row holding every departure of scheduleType, past or future, without goodness
func Timetable(registries *ferry.Registries, formatter *ferrytime.Formatter, route *ferry.Route, direction ferry.Direction, scheduleType ferrytime.ScheduleType) Row {
	routes := registries.Routes
	row := newRow(registries, route, direction, scheduleType)

	for _, departure := range routes.Departures(route, direction, scheduleType) {
		row.Departures = append(row.Departures, Departure{
			Route:     row.Route,
			Direction: direction,
			Terminal:  row.Terminal,
			Schedule:  scheduleType,
			Time:      formatter.TimeString(departure),
			Minutes:   departure,
		})
	}

	return row
}

// Flatten lists every departure on the board, in board order
func Flatten(rows []Row) []*Departure {
	departures := []*Departure{}

	for _, row := range rows {
		for i := range row.Departures {
			departures = append(departures, &row.Departures[i])
		}
	}

	return departures
}
