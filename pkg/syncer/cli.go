package syncer

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kr/pretty"
	"github.com/travigo/nextferry/pkg/app"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Downloads schedules, alerts and travel times from the NextFerry server",
		Subcommands: []*cli.Command{
			{
				Name:  "once",
				Usage: "run a single sync",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "dump",
						Usage: "print the loaded routes and alerts",
					},
				},
				Action: func(c *cli.Context) error {
					application, err := app.FromCLI(c)
					if err != nil {
						return err
					}

					refreshRate, err := application.Config.SyncIntervalDuration()
					if err != nil {
						return err
					}

					if err := New(application, refreshRate).RunOnce(c.Context); err != nil {
						return err
					}

					if c.Bool("dump") {
						for _, route := range application.Registries.Routes.All() {
							pretty.Println(application.Registries.Routes.Snapshot(route))
						}
						pretty.Println(application.Registries.Alerts.All())
					}

					return nil
				},
			},
			{
				Name:  "run",
				Usage: "keep syncing every sync_interval",
				Action: func(c *cli.Context) error {
					application, err := app.FromCLI(c)
					if err != nil {
						return err
					}

					refreshRate, err := application.Config.SyncIntervalDuration()
					if err != nil {
						return err
					}

					ctx, cancel := context.WithCancel(c.Context)
					defer cancel()

					done := make(chan struct{})
					go func() {
						New(application, refreshRate).Run(ctx)
						close(done)
					}()

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
					defer signal.Stop(signals)

					<-signals // wait for signal
					go func() {
						<-signals // hard exit on second signal (in case shutdown gets stuck)
						os.Exit(1)
					}()

					cancel()
					<-done

					return nil
				},
			},
		},
	}
}
