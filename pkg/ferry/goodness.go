package ferry

import "github.com/travigo/nextferry/pkg/ferrytime"

type Goodness string

const (
	GoodnessUnknown     Goodness = "Unknown"
	GoodnessTooLate     Goodness = "TooLate"
	GoodnessRisky       Goodness = "Risky"
	GoodnessIndifferent Goodness = "Indifferent"
	GoodnessGood        Goodness = "Good"
)

// IndifferentMargin is two hours, the most spare time a rider cares about
const IndifferentMargin = 120

// Classify says whether a rider who is travelTime away, and wants buffer minutes spare, can make departure
func Classify(now ferrytime.ServiceTime, travelTime TravelTime, buffer int, departure ferrytime.ServiceTime) Goodness {
	if !travelTime.Known {
		return GoodnessUnknown
	}

	margin := travelTime.Minutes + buffer

	switch {
	case float64(now)+0.95*float64(margin) > float64(departure):
		return GoodnessTooLate
	case int(now)+margin > int(departure):
		return GoodnessRisky
	case int(now)+margin+IndifferentMargin < int(departure):
		return GoodnessIndifferent
	default:
		return GoodnessGood
	}
}
