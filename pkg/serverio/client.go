package serverio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/travigo/nextferry/pkg/ferry"
	"github.com/travigo/nextferry/pkg/localstore"
	"golang.org/x/net/html/charset"
)

const (
	defaultTravelTimeThrottle = 20 * time.Second
	defaultMaxRetries         = 3
)

var ErrTravelTimesSkipped = errors.New("travel time request skipped")

// Client talks to the NextFerry server and feeds its replies into the registries.
// Only one update per resource should be in flight at a time.
type Client struct {
	ServerURL  string
	AppVersion string
	HTTPClient *http.Client

	Registries *ferry.Registries
	Store      localstore.Store

	ScheduleListeners   Listeners
	AlertListeners      Listeners
	TravelTimeListeners Listeners

	// NewAlertHandler is called for every alert id not seen in the previous alert list
	NewAlertHandler func(ferry.Alert)

	TravelTimeThrottle time.Duration
	MaxRetries         uint64
	BackOff            func() backoff.BackOff

	travelTimeMutex       sync.Mutex
	lastTravelTimeRequest time.Time
}

func NewClient(serverURL string, appVersion string, registries *ferry.Registries, store localstore.Store) *Client {
	return &Client{
		ServerURL:          strings.TrimRight(serverURL, "/"),
		AppVersion:         appVersion,
		HTTPClient:         &http.Client{Timeout: 30 * time.Second},
		Registries:         registries,
		Store:              store,
		TravelTimeThrottle: defaultTravelTimeThrottle,
		MaxRetries:         defaultMaxRetries,
	}
}

func (c *Client) initURL(cacheDate string) string {
	return fmt.Sprintf("%s/init/%s/%s", c.ServerURL, c.AppVersion, cacheDate)
}

func (c *Client) travelURL(location ferry.Location) string {
	return fmt.Sprintf("%s/traveltimes/%s/%s,%s",
		c.ServerURL, c.AppVersion,
		strconv.FormatFloat(location.Latitude, 'f', -1, 64),
		strconv.FormatFloat(location.Longitude, 'f', -1, 64),
	)
}

// RequestUpdate asks the server for anything newer than our cached schedule and processes the reply
func (c *Client) RequestUpdate(ctx context.Context) error {
	cacheDate, _, err := c.Store.Get(ctx, localstore.KeyCacheDate)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read cache date")
	}

	reply, err := c.get(ctx, c.initURL(cacheDate))
	if err != nil {
		return err
	}

	c.ProcessReply(ctx, reply)

	return nil
}

// RequestTravelTimes asks for travel times from location to each terminal.
// It does nothing if the rider has not allowed location use, or if it was called in the last TravelTimeThrottle.
func (c *Client) RequestTravelTimes(ctx context.Context, location ferry.Location) error {
	useLocation, err := localstore.GetBool(ctx, c.Store, localstore.KeyUseLocation)
	if err != nil {
		return err
	}
	if !useLocation {
		return fmt.Errorf("%w: location use is off", ErrTravelTimesSkipped)
	}

	c.travelTimeMutex.Lock()
	if !c.lastTravelTimeRequest.IsZero() && time.Since(c.lastTravelTimeRequest) < c.TravelTimeThrottle {
		c.travelTimeMutex.Unlock()
		return fmt.Errorf("%w: requested too recently", ErrTravelTimesSkipped)
	}
	c.lastTravelTimeRequest = time.Now()
	c.travelTimeMutex.Unlock()

	reply, err := c.get(ctx, c.travelURL(location))
	if err != nil {
		return err
	}

	c.ProcessReply(ctx, reply)

	return nil
}

func (c *Client) newBackOff(ctx context.Context) backoff.BackOff {
	var b backoff.BackOff
	if c.BackOff != nil {
		b = c.BackOff()
	} else {
		b = backoff.NewExponentialBackOff()
	}

	return backoff.WithContext(backoff.WithMaxRetries(b, c.MaxRetries), ctx)
}

func (c *Client) get(ctx context.Context, url string) (string, error) {
	var reply string

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("%s returned %s", url, resp.Status)
		} else if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("%s returned %s", url, resp.Status))
		}

		body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
		if err != nil {
			return backoff.Permanent(err)
		}

		replyBytes, err := io.ReadAll(body)
		if err != nil {
			return err
		}

		reply = string(replyBytes)

		return nil
	}

	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("url", url).Str("retry", wait.String()).Msg("Server request failed")
	}

	if err := backoff.RetryNotify(operation, c.newBackOff(ctx), notify); err != nil {
		return "", err
	}

	log.Debug().Str("url", url).Int("bytes", len(reply)).Msg("Received server reply")

	return reply, nil
}

// MarkAlertRead marks an alert read and saves the read list
func (c *Client) MarkAlertRead(ctx context.Context, id string) (bool, error) {
	if !c.Registries.Alerts.MarkRead(id) {
		return false, nil
	}

	return true, c.saveReadList(ctx)
}

func (c *Client) saveReadList(ctx context.Context) error {
	return localstore.SetStringList(ctx, c.Store, localstore.KeyReadList, c.Registries.Alerts.ReadIDs())
}

// RestoreFromCache loads whatever the last successful sync saved, so there is a schedule before the network answers
func (c *Client) RestoreFromCache(ctx context.Context) error {
	readIDs, err := localstore.GetStringList(ctx, c.Store, localstore.KeyReadList)
	if err != nil {
		return err
	}
	c.Registries.Alerts.RestoreReadIDs(readIDs)

	cached, found, err := c.Store.Get(ctx, localstore.KeyCache)
	if err != nil {
		return err
	}
	if found {
		c.LoadSchedule(cached, true)
	}

	log.Info().Bool("schedule", found).Int("readAlerts", len(readIDs)).Msg("Restored from local cache")

	return nil
}
