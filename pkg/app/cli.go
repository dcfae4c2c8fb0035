package app

import (
	"github.com/travigo/nextferry/pkg/config"
	"github.com/urfave/cli/v2"
)

// FromCLI loads the config named by the global --config flag and builds the application
func FromCLI(c *cli.Context) (*Application, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	return New(c.Context, cfg, nil)
}
