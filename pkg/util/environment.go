package util

import (
	"os"
	"strings"
)

const EnvironmentPrefix = "NEXTFERRY_"

// GetEnvironmentVariables returns every NEXTFERRY_ variable with the prefix stripped
func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)

		if !strings.HasPrefix(pair[0], EnvironmentPrefix) || len(pair) != 2 {
			continue
		}

		environmentVariables[strings.TrimPrefix(pair[0], EnvironmentPrefix)] = pair[1]
	}

	return environmentVariables
}
