package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/nextferry/pkg/api"
	"github.com/travigo/nextferry/pkg/board"
	"github.com/travigo/nextferry/pkg/events"
	"github.com/travigo/nextferry/pkg/syncer"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("NEXTFERRY_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if os.Getenv("NEXTFERRY_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "nextferry",
		Description: "Washington State ferry schedules, alerts and departure board",

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file",
				EnvVars: []string{"NEXTFERRY_CONFIG"},
			},
		},

		Commands: []*cli.Command{
			api.RegisterCLI(),
			syncer.RegisterCLI(),
			board.RegisterCLI(),
			board.RegisterAlertsCLI(),
			events.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
