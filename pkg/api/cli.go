package api

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/travigo/nextferry/pkg/app"
	"github.com/travigo/nextferry/pkg/syncer"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the ferry web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.BoolFlag{
						Name:  "no-sync",
						Usage: "serve cached data only, without polling the server",
					},
				},
				Action: func(c *cli.Context) error {
					application, err := app.FromCLI(c)
					if err != nil {
						return err
					}

					ctx, cancel := context.WithCancel(c.Context)
					defer cancel()

					if !c.Bool("no-sync") {
						refreshRate, err := application.Config.SyncIntervalDuration()
						if err != nil {
							return err
						}

						go syncer.New(application, refreshRate).Run(ctx)
					}

					log.Info().Str("listen", c.String("listen")).Msg("Starting web api")

					return SetupServer(c.String("listen"), application)
				},
			},
		},
	}
}
