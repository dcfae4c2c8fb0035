package board

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/nextferry/pkg/app"
	"github.com/travigo/nextferry/pkg/config"
	"github.com/travigo/nextferry/pkg/ferry"
	"github.com/travigo/nextferry/pkg/ferrytime"
	"github.com/travigo/nextferry/pkg/util"
	"github.com/urfave/cli/v2"
)

func loadApplication(c *cli.Context) (*app.Application, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	var clock ferrytime.Clock
	if at := c.String("at"); at != "" {
		location, err := cfg.TimeLocation()
		if err != nil {
			return nil, err
		}

		atTime, err := clockTimeOnServiceDay(time.Now().In(location), at)
		if err != nil {
			return nil, err
		}
		clock = ferrytime.NewFixedClock(atTime)
	}

	application, err := app.New(c.Context, cfg, clock)
	if err != nil {
		return nil, err
	}

	if !c.Bool("offline") {
		syncNow(c.Context, application)
	}

	return application, nil
}

// clockTimeOnServiceDay places an HH:MM time on the service day of now.
// Times before the morning cutoff fall on the following calendar day.
func clockTimeOnServiceDay(now time.Time, clockTime string) (time.Time, error) {
	atTime, err := util.AddClockTimeToDate(ferrytime.ServiceDay(now), clockTime)
	if err != nil {
		return time.Time{}, err
	}

	if atTime.Hour()*60+atTime.Minute() < ferrytime.MorningCutoff {
		atTime = atTime.AddDate(0, 0, 1)
	}

	return atTime, nil
}

func syncNow(ctx context.Context, application *app.Application) {
	if err := application.Sync.RequestUpdate(ctx); err != nil {
		log.Warn().Err(err).Msg("Could not reach the server, using cached data")
	}
	if err := application.RequestTravelTimes(ctx); err != nil {
		log.Debug().Err(err).Msg("No travel times")
	}
}

var commonFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:  "offline",
		Usage: "only use locally cached data",
	},
}

func boardOptions(application *app.Application, limit int) Options {
	return Options{
		Formatter:     application.Formatter,
		BufferMinutes: application.BufferMinutes,
		Limit:         limit,
	}
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "board",
		Usage: "Shows the departure board",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "print upcoming departures for every route",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "at",
						Usage: "show the board as of HH:MM today",
					},
					&cli.IntFlag{
						Name:  "limit",
						Value: 5,
						Usage: "departures per route and direction",
					},
					&cli.BoolFlag{
						Name:  "dump",
						Usage: "pretty print the raw board rows",
					},
				}, commonFlags...),
				Action: func(c *cli.Context) error {
					application, err := loadApplication(c)
					if err != nil {
						return err
					}

					rows := Build(application.Registries, boardOptions(application, c.Int("limit")))

					if c.Bool("dump") {
						pretty.Println(rows)
						return nil
					}

					for _, row := range rows {
						times := make([]string, 0, len(row.Departures))
						for _, departure := range row.Departures {
							times = append(times, fmt.Sprintf("%s (%s)", departure.Time, departure.Goodness))
						}

						alertMarker := ""
						if row.NewAlerts {
							alertMarker = " [!]"
						}

						fmt.Printf("%-16s %-4s %-20s %s%s\n", row.Route, row.Direction, row.Terminal, strings.Join(times, "  "), alertMarker)
					}

					return nil
				},
			},
			{
				Name:  "export",
				Usage: "write today's remaining departures to a CSV file",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "output",
						Usage:    "CSV file to write",
						Required: true,
					},
				}, commonFlags...),
				Action: func(c *cli.Context) error {
					application, err := loadApplication(c)
					if err != nil {
						return err
					}

					file, err := os.Create(c.String("output"))
					if err != nil {
						return err
					}
					defer file.Close()

					departures := Flatten(Build(application.Registries, boardOptions(application, 0)))
					if err := gocsv.MarshalFile(&departures, file); err != nil {
						return err
					}

					log.Info().Int("departures", len(departures)).Str("file", c.String("output")).Msg("Exported departures")

					return nil
				},
			},
		},
	}
}

func RegisterAlertsCLI() *cli.Command {
	return &cli.Command{
		Name:  "alerts",
		Usage: "Lists and reads ferry alerts",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "print current alerts",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "route",
						Usage: "only alerts for this route",
					},
					&cli.StringFlag{
						Name:  "where",
						Usage: "filter expression over ID, Body, Unread and Routes",
					},
				}, commonFlags...),
				Action: func(c *cli.Context) error {
					application, err := loadApplication(c)
					if err != nil {
						return err
					}

					alerts, err := FilterAlerts(application.Registries, AlertFilter{
						RouteName: c.String("route"),
						Where:     c.String("where"),
					})
					if err != nil {
						return err
					}

					for _, alert := range alerts {
						printAlert(application.Registries, alert)
					}

					return nil
				},
			},
			{
				Name:      "read",
				Usage:     "mark an alert as read",
				ArgsUsage: "<alert id>",
				Flags:     commonFlags,
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return cli.Exit("alert id is required", 1)
					}

					application, err := loadApplication(c)
					if err != nil {
						return err
					}

					found, err := application.Sync.MarkAlertRead(c.Context, id)
					if err != nil {
						return err
					}
					if !found {
						return cli.Exit(fmt.Sprintf("no alert %q", id), 1)
					}

					log.Info().Str("id", id).Msg("Marked alert read")

					return nil
				},
			},
		},
	}
}

func printAlert(registries *ferry.Registries, alert ferry.Alert) {
	notification := registries.AlertNotificationData(alert)

	status := "read"
	if alert.Unread {
		status = "unread"
	}

	fmt.Printf("[%s] %s (%s)\n%s\n\n", alert.ID, notification.Title, status, notification.Message)
}
