package serverio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/nextferry/pkg/ferry"
	"github.com/travigo/nextferry/pkg/ferrytime"
	"github.com/travigo/nextferry/pkg/localstore"
)

const initReply = `#schedule 2026.10.19
// generated for testing
bainbridge,wd,500,700,800
bainbridge,ee,550,750
edmonds,wd,600
nowhere,wd,100
#special
orcas,ws,900
#allalerts
42 4
Edmonds/Kingston is running one boat.
__
43 2048
Orcas terminal closed.
#motd
Have a nice day
`

// Tuesday 20th October 2026, 10:50
func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()

	clock := ferrytime.NewFixedClock(time.Date(2026, time.October, 20, 10, 50, 0, 0, time.UTC))
	client := NewClient(serverURL, "4.0", ferry.NewRegistries(clock), localstore.NewMemoryStore())
	client.BackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }

	return client
}

func mustFind(t *testing.T, client *Client, name string) *ferry.Route {
	t.Helper()

	route, ok := client.Registries.Routes.Find(name)
	require.True(t, ok, "route %s", name)

	return route
}

func TestSplitSections(t *testing.T) {
	sections := splitSections("#schedule 2026.10.19\r\na,b\n#special\nc\n#empty")
	require.Len(t, sections, 3)

	assert.Equal(t, section{Header: "schedule 2026.10.19", Body: "a,b"}, sections[0])
	assert.Equal(t, section{Header: "special", Body: "c"}, sections[1])
	assert.Equal(t, section{Header: "empty", Body: ""}, sections[2])
}

func TestProcessReply(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, "")

	var scheduleLoads, alertLoads int
	client.ScheduleListeners.Add(func() { scheduleLoads++ })
	client.AlertListeners.Add(func() { alertLoads++ })

	var newAlerts []string
	client.NewAlertHandler = func(alert ferry.Alert) { newAlerts = append(newAlerts, alert.ID) }

	client.ProcessReply(ctx, initReply)

	assert.Equal(t, 2, scheduleLoads, "schedule and special sections")
	assert.Equal(t, 1, alertLoads)
	assert.Equal(t, []string{"42", "43"}, newAlerts)

	routes := client.Registries.Routes
	bainbridge := mustFind(t, client, "bainbridge")
	assert.Equal(t, []ferrytime.ServiceTime{700, 800}, routes.FutureDepartures(bainbridge, ferry.DirectionWest, ""))
	assert.Equal(t, []ferrytime.ServiceTime{550, 750}, routes.Departures(bainbridge, ferry.DirectionEast, ferrytime.ScheduleTypeWeekend))

	orcas := mustFind(t, client, "orcas")
	assert.Equal(t, ferrytime.ScheduleTypeSpecial, routes.TodaysSchedule(orcas))

	cacheDate, found, err := client.Store.Get(ctx, localstore.KeyCacheDate)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "2026.10.19", cacheDate)

	cache, _, err := client.Store.Get(ctx, localstore.KeyCache)
	require.NoError(t, err)
	assert.Contains(t, cache, "bainbridge,wd,500,700,800")
	assert.NotContains(t, cache, "orcas", "special sections are not cached")

	// a second reply with the same alerts reports nothing new
	newAlerts = nil
	client.ProcessReply(ctx, "#allalerts\n42 4\nStill one boat.\n__\n43 2048\nOrcas terminal closed.")
	assert.Empty(t, newAlerts)
}

func TestLoadScheduleFull(t *testing.T) {
	client := newTestClient(t, "")
	routes := client.Registries.Routes

	client.LoadSchedule("bainbridge,wd,500,700\nedmonds,wd,600", true)
	client.LoadSchedule("bainbridge,wd,900", false)

	edmonds := mustFind(t, client, "edmonds")
	bainbridge := mustFind(t, client, "bainbridge")
	assert.Equal(t, []ferrytime.ServiceTime{600}, routes.Departures(edmonds, ferry.DirectionWest, ferrytime.ScheduleTypeWeekday))
	assert.Equal(t, []ferrytime.ServiceTime{900}, routes.Departures(bainbridge, ferry.DirectionWest, ferrytime.ScheduleTypeWeekday))

	client.LoadSchedule("bainbridge,wd,1000\n/edmonds,wd,600\nx", true)
	assert.Empty(t, routes.Departures(edmonds, ferry.DirectionWest, ferrytime.ScheduleTypeWeekday), "full load clears other routes")
	assert.Equal(t, []ferrytime.ServiceTime{1000}, routes.Departures(bainbridge, ferry.DirectionWest, ferrytime.ScheduleTypeWeekday))
}

func TestTravelTimesNeedLocation(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, "")
	reply := "#traveltimes\n7:25\n3:40\n"

	client.ProcessReply(ctx, reply)
	assert.Equal(t, ferry.UnknownTravelTime, client.Registries.Terminals.TravelTime(7))

	require.NoError(t, localstore.SetBool(ctx, client.Store, localstore.KeyUseLocation, true))
	client.ProcessReply(ctx, reply)
	assert.Equal(t, ferry.KnownTravelTime(25), client.Registries.Terminals.TravelTime(7))
	assert.Equal(t, ferry.KnownTravelTime(40), client.Registries.Terminals.TravelTime(3))
}

func TestParseTravelTimes(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected map[int]int
	}{
		{"colon", "7:25\n3:40", map[int]int{7: 25, 3: 40}},
		{"comma", "7,25\n", map[int]int{7: 25}},
		{"spaces and blank lines", "\n 7 : 25 \r\n\n", map[int]int{7: 25}},
		{"zero minutes", "7:0", map[int]int{7: 0}},
		{"malformed lines skipped", "7\nseattle:25\n3:soon\n8:-4\n9:12", map[int]int{9: 12}},
		{"empty", "", map[int]int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseTravelTimes(tt.text))
		})
	}
}

func TestRequestUpdate(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(initReply))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL+"/")

	require.NoError(t, client.RequestUpdate(context.Background()))
	require.NoError(t, client.RequestUpdate(context.Background()))

	assert.Equal(t, []string{"/init/4.0/", "/init/4.0/2026.10.19"}, paths)
	assert.Len(t, client.Registries.Alerts.All(), 2)
}

func TestRequestUpdateDecodesCharset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=iso-8859-1")
		w.Write([]byte("#allalerts\n50 1\nCaf\xe9 closed on the boat."))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	require.NoError(t, client.RequestUpdate(context.Background()))

	alerts := client.Registries.Alerts.All()
	require.Len(t, alerts, 1)
	assert.Equal(t, "Café closed on the boat.", alerts[0].Body)
}

func TestRequestUpdateRetries(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(initReply))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	require.NoError(t, client.RequestUpdate(context.Background()))
	assert.Equal(t, int32(2), requests.Load())
}

func TestRequestUpdateGivesUp(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		requests int32
	}{
		{"not found is permanent", http.StatusNotFound, 1},
		{"server errors are retried", http.StatusInternalServerError, defaultMaxRetries + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requests atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requests.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)
			assert.Error(t, client.RequestUpdate(context.Background()))
			assert.Equal(t, tt.requests, requests.Load())
		})
	}
}

func TestRequestTravelTimes(t *testing.T) {
	ctx := context.Background()

	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Write([]byte("#traveltimes\n7:15\n"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	location := ferry.Location{Latitude: 47.6, Longitude: -122.3}

	assert.ErrorIs(t, client.RequestTravelTimes(ctx, location), ErrTravelTimesSkipped)
	assert.Empty(t, paths)

	require.NoError(t, localstore.SetBool(ctx, client.Store, localstore.KeyUseLocation, true))
	require.NoError(t, client.RequestTravelTimes(ctx, location))
	assert.Equal(t, []string{"/traveltimes/4.0/47.6,-122.3"}, paths)
	assert.Equal(t, ferry.KnownTravelTime(15), client.Registries.Terminals.TravelTime(7))

	assert.ErrorIs(t, client.RequestTravelTimes(ctx, location), ErrTravelTimesSkipped, "throttled")
	assert.Len(t, paths, 1)

	client.TravelTimeThrottle = 0
	require.NoError(t, client.RequestTravelTimes(ctx, location))
	assert.Len(t, paths, 2)
}

func TestReadStateSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemoryStore()

	first := newTestClient(t, "")
	first.Store = store
	first.ProcessReply(ctx, initReply)

	found, err := first.MarkAlertRead(ctx, "43")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = first.MarkAlertRead(ctx, "99")
	require.NoError(t, err)
	assert.False(t, found)

	second := newTestClient(t, "")
	second.Store = store
	require.NoError(t, second.RestoreFromCache(ctx))

	bainbridge := mustFind(t, second, "bainbridge")
	assert.Equal(t, []ferrytime.ServiceTime{700, 800}, second.Registries.Routes.FutureDepartures(bainbridge, ferry.DirectionWest, ""))

	second.LoadAlerts(ctx, "42 4\nOne boat.\n__\n43 2048\nOrcas terminal closed.")
	for _, alert := range second.Registries.Alerts.All() {
		assert.Equal(t, alert.ID != "43", alert.Unread, alert.ID)
	}
}
