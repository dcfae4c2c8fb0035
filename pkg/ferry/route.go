package ferry

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/travigo/nextferry/pkg/ferrytime"
)

// RouteCode is a single power of two flag identifying a route
type RouteCode uint32

// RouteMask is an OR of RouteCodes, used by alerts to target several routes at once
type RouteMask uint32

func MaskOf(codes ...RouteCode) RouteMask {
	var mask RouteMask

	for _, code := range codes {
		mask |= RouteMask(code)
	}

	return mask
}

func (m RouteMask) Intersects(code RouteCode) bool {
	return uint32(m)&uint32(code) != 0
}

type Direction string

const (
	DirectionWest Direction = "west"
	DirectionEast Direction = "east"
)

var Directions = []Direction{DirectionWest, DirectionEast}

func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionWest, DirectionEast:
		return Direction(s), nil
	}

	return "", fmt.Errorf("unknown direction %q", s)
}

// Opposite is the other end of the route
func (d Direction) Opposite() Direction {
	if d == DirectionWest {
		return DirectionEast
	}

	return DirectionWest
}

type Timetable map[ferrytime.ScheduleType][]ferrytime.ServiceTime

type Route struct {
	Code        RouteCode            `groups:"basic,detailed"`
	Terminals   map[Direction]int    `groups:"basic,detailed"`
	DisplayName map[Direction]string `groups:"basic,detailed"`

	Times map[Direction]Timetable `groups:"detailed"`
}

func NewRoute(code RouteCode, eastCode int, westCode int, westName string, eastName string) *Route {
	return &Route{
		Code: code,
		Terminals: map[Direction]int{
			DirectionWest: westCode,
			DirectionEast: eastCode,
		},
		DisplayName: map[Direction]string{
			DirectionWest: westName,
			DirectionEast: eastName,
		},
		Times: map[Direction]Timetable{
			DirectionWest: {},
			DirectionEast: {},
		},
	}
}

func (r *Route) Name() string {
	return r.DisplayName[DirectionWest]
}

// snapshot deep copies the route so callers can read it without holding the registry lock
func (r *Route) snapshot() *Route {
	var copied Route

	if err := copier.CopyWithOption(&copied, r, copier.Option{DeepCopy: true}); err != nil {
		log.Error().Err(err).Str("route", r.Name()).Msg("Failed to copy route")
	}

	return &copied
}
