package ferrytime

import (
	"fmt"
	"sync"
)

// Formatter turns ServiceTimes into clock text.
// The 12 and 24 hour caches are both keyed on the raw minute value so they must stay separate.
type Formatter struct {
	mu         sync.Mutex
	twelveHour bool
	cache12    map[ServiceTime]string
	cache24    map[ServiceTime]string
}

func NewFormatter(twelveHour bool) *Formatter {
	return &Formatter{
		twelveHour: twelveHour,
		cache12:    map[ServiceTime]string{},
		cache24:    map[ServiceTime]string{},
	}
}

func (f *Formatter) SetTimeFormat(as12 bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.twelveHour = as12
}

func (f *Formatter) TwelveHour() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.twelveHour
}

func (f *Formatter) TimeString(t ServiceTime) string {
	if f.TwelveHour() {
		return f.DisplayTwelveHour(t)
	}

	return f.DisplayTwentyFourHour(t)
}

func (f *Formatter) TimeStrings(times []ServiceTime) []string {
	formatted := make([]string, 0, len(times))

	for _, t := range times {
		formatted = append(formatted, f.TimeString(t))
	}

	return formatted
}

func (f *Formatter) DisplayTwelveHour(t ServiceTime) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if cached, ok := f.cache12[t]; ok {
		return cached
	}

	hours := int(t) / 60
	minutes := int(t) % 60

	if hours >= 24 {
		hours -= 24
	}
	if hours > 12 {
		hours -= 12
	}
	if hours == 0 {
		hours = 12
	}

	f.cache12[t] = fmt.Sprintf("%d:%02d", hours, minutes)

	return f.cache12[t]
}

func (f *Formatter) DisplayTwentyFourHour(t ServiceTime) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if cached, ok := f.cache24[t]; ok {
		return cached
	}

	hours := int(t) / 60
	minutes := int(t) % 60

	if hours >= 24 {
		hours -= 24
	}

	f.cache24[t] = fmt.Sprintf("%02d:%02d", hours, minutes)

	return f.cache24[t]
}
