package ferry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

var ErrTerminalNotFound = errors.New("terminal not found")

type Location struct {
	Latitude  float64 `groups:"basic"`
	Longitude float64 `groups:"basic"`
}

// ParseLocation reads a "lat, lon" pair
func ParseLocation(s string) (Location, error) {
	latitude, longitude, found := strings.Cut(s, ",")
	if !found {
		return Location{}, fmt.Errorf("location %q is not a lat,lon pair", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latitude), 64)
	if err != nil {
		return Location{}, fmt.Errorf("location %q latitude: %w", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(longitude), 64)
	if err != nil {
		return Location{}, fmt.Errorf("location %q longitude: %w", s, err)
	}

	return Location{Latitude: lat, Longitude: lon}, nil
}

// TravelTime is how long it takes to reach a terminal. The zero value is unknown, which is not the same as 0 minutes.
type TravelTime struct {
	Minutes int  `groups:"basic"`
	Known   bool `groups:"basic"`
}

var UnknownTravelTime = TravelTime{}

func KnownTravelTime(minutes int) TravelTime {
	return TravelTime{Minutes: minutes, Known: true}
}

type Terminal struct {
	Code       int        `groups:"basic"`
	Name       string     `groups:"basic"`
	Location   Location   `groups:"basic"`
	TravelTime TravelTime `groups:"basic"`
}

func NewTerminal(code int, name string, location string) *Terminal {
	loc, err := ParseLocation(location)
	if err != nil {
		log.Error().Err(err).Int("terminal", code).Msg("Invalid terminal location")
	}

	return &Terminal{
		Code:     code,
		Name:     name,
		Location: loc,
	}
}

type TerminalRegistry struct {
	mu        sync.RWMutex
	terminals map[int]*Terminal
}

func NewTerminalRegistry(terminals []*Terminal) *TerminalRegistry {
	registry := &TerminalRegistry{
		terminals: map[int]*Terminal{},
	}

	for _, terminal := range terminals {
		registry.terminals[terminal.Code] = terminal
	}

	return registry
}

func (r *TerminalRegistry) Get(code int) (Terminal, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	terminal, ok := r.terminals[code]
	if !ok {
		return Terminal{}, false
	}

	return *terminal, true
}

// All returns a copy of every terminal ordered by code
func (r *TerminalRegistry) All() []Terminal {
	r.mu.RLock()
	defer r.mu.RUnlock()

	terminals := make([]Terminal, 0, len(r.terminals))
	for _, terminal := range r.terminals {
		terminals = append(terminals, *terminal)
	}

	slices.SortFunc(terminals, func(a, b Terminal) int {
		return a.Code - b.Code
	})

	return terminals
}

func (r *TerminalRegistry) TravelTime(code int) TravelTime {
	terminal, ok := r.Get(code)
	if !ok {
		return UnknownTravelTime
	}

	return terminal.TravelTime
}

func (r *TerminalRegistry) ClearAllTravelTimes() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, terminal := range r.terminals {
		terminal.TravelTime = UnknownTravelTime
	}
}

func (r *TerminalRegistry) SetTravelTime(code int, minutes int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	terminal, ok := r.terminals[code]
	if !ok {
		return fmt.Errorf("%w: %d", ErrTerminalNotFound, code)
	}

	terminal.TravelTime = KnownTravelTime(minutes)

	return nil
}

// LoadTravelTimes replaces every travel time with the given terminal code to minutes mapping.
// Codes we don't know about are logged and ignored.
func (r *TerminalRegistry) LoadTravelTimes(travelTimes map[int]int) {
	r.ClearAllTravelTimes()

	for code, minutes := range travelTimes {
		if err := r.SetTravelTime(code, minutes); err != nil {
			log.Debug().Err(err).Msg("Skipping travel time")
		}
	}
}
