package board

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/travigo/nextferry/pkg/ferry"
)

// AlertEnv is what an alert filter expression can see, e.g. `Unread && "edmonds" in Routes`
type AlertEnv struct {
	ID     string
	Body   string
	Unread bool
	Routes []string
}

type AlertFilter struct {
	RouteName string
	Where     string

	program *vm.Program
}

func (f *AlertFilter) compile() error {
	if f.program != nil || strings.TrimSpace(f.Where) == "" {
		return nil
	}

	program, err := expr.Compile(f.Where, expr.Env(AlertEnv{}), expr.AsBool())
	if err != nil {
		return fmt.Errorf("alert filter %q: %w", f.Where, err)
	}
	f.program = program

	return nil
}

// FilterAlerts returns the current alerts for RouteName (all routes if empty) that match Where (everything if empty)
func FilterAlerts(registries *ferry.Registries, filter AlertFilter) ([]ferry.Alert, error) {
	alerts := registries.Alerts.All()

	if filter.RouteName != "" {
		route, ok := registries.Routes.Find(filter.RouteName)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ferry.ErrRouteNotFound, filter.RouteName)
		}
		alerts = registries.Alerts.AlertsFor(route)
	}

	if err := filter.compile(); err != nil {
		return nil, err
	}
	if filter.program == nil {
		return alerts, nil
	}

	matched := []ferry.Alert{}
	for _, alert := range alerts {
		env := AlertEnv{
			ID:     alert.ID,
			Body:   alert.Body,
			Unread: alert.Unread,
			Routes: []string{},
		}
		for _, route := range registries.Routes.All() {
			if alert.Matches(route) {
				env.Routes = append(env.Routes, route.Name())
			}
		}

		output, err := expr.Run(filter.program, env)
		if err != nil {
			return nil, err
		}
		if keep, _ := output.(bool); keep {
			matched = append(matched, alert)
		}
	}

	return matched, nil
}
