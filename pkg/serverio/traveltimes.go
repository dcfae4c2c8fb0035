package serverio

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// ParseTravelTimes reads "<terminal code>:<minutes>" lines. A comma works as the separator too.
func ParseTravelTimes(text string) map[int]int {
	travelTimes := map[int]int{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "/") {
			continue
		}

		code, minutes, found := strings.Cut(line, ":")
		if !found {
			code, minutes, found = strings.Cut(line, ",")
		}
		if !found {
			log.Warn().Str("line", line).Msg("Skipping malformed travel time")
			continue
		}

		terminalCode, err := strconv.Atoi(strings.TrimSpace(code))
		if err != nil {
			log.Warn().Str("line", line).Msg("Skipping malformed travel time")
			continue
		}
		travelMinutes, err := strconv.Atoi(strings.TrimSpace(minutes))
		if err != nil || travelMinutes < 0 {
			log.Warn().Str("line", line).Msg("Skipping malformed travel time")
			continue
		}

		travelTimes[terminalCode] = travelMinutes
	}

	return travelTimes
}
