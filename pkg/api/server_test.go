package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/nextferry/pkg/app"
	"github.com/travigo/nextferry/pkg/config"
	"github.com/travigo/nextferry/pkg/ferrytime"
)

func newTestApplication(t *testing.T) *app.Application {
	t.Helper()

	// Tuesday 20th October 2026, 10:50
	clock := ferrytime.NewFixedClock(time.Date(2026, time.October, 20, 10, 50, 0, 0, time.UTC))

	application, err := app.New(context.Background(), config.Default(), clock)
	require.NoError(t, err)

	application.Sync.LoadSchedule("bainbridge,wd,500,700,800\nbainbridge,ed,720\npt townsend,we,600", true)
	application.Sync.LoadAlerts(context.Background(), "42 4\nEdmonds running one boat\n__\n43 1\nSeattle terminal busy")

	return application
}

func request(t *testing.T, application *app.Application, method string, target string, response interface{}) int {
	t.Helper()

	resp, err := NewServer(application).Test(httptest.NewRequest(method, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if response != nil {
		require.NoError(t, json.Unmarshal(body, response), string(body))
	}

	return resp.StatusCode
}

func TestVersion(t *testing.T) {
	var version map[string]string
	status := request(t, newTestApplication(t), http.MethodGet, "/core/version", &version)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "4.0", version["appversion"])
}

func TestRoutes(t *testing.T) {
	application := newTestApplication(t)

	var routes []map[string]interface{}
	assert.Equal(t, http.StatusOK, request(t, application, http.MethodGet, "/core/routes", &routes))
	require.Len(t, routes, 11)
	assert.NotContains(t, routes[0], "Times", "timetables are only in the detailed view")

	var route map[string]interface{}
	assert.Equal(t, http.StatusOK, request(t, application, http.MethodGet, "/core/routes/pt%20townsend", &route))
	assert.Equal(t, float64(16), route["Code"])
	assert.Contains(t, route, "Times")

	var notFound map[string]string
	assert.Equal(t, http.StatusNotFound, request(t, application, http.MethodGet, "/core/routes/atlantis", &notFound))
	assert.NotEmpty(t, notFound["error"])
}

type departureRow struct {
	Route      string
	Direction  string
	Schedule   string
	Terminal   string
	Departures []struct {
		Time     string
		Minutes  int
		Goodness string
	}
}

func TestRouteDepartures(t *testing.T) {
	application := newTestApplication(t)

	var rows []departureRow
	assert.Equal(t, http.StatusOK, request(t, application, http.MethodGet, "/core/routes/bainbridge/departures?direction=west", &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "weekday", rows[0].Schedule)
	assert.Equal(t, "Seattle", rows[0].Terminal)
	require.Len(t, rows[0].Departures, 2)
	assert.Equal(t, "11:40", rows[0].Departures[0].Time)
	assert.Equal(t, "Unknown", rows[0].Departures[0].Goodness)

	rows = nil
	assert.Equal(t, http.StatusOK, request(t, application, http.MethodGet, "/core/routes/bainbridge/departures", &rows))
	assert.Len(t, rows, 2)

	rows = nil
	assert.Equal(t, http.StatusOK, request(t, application, http.MethodGet, "/core/routes/pt%20townsend/departures?schedule=weekend&direction=west", &rows))
	require.Len(t, rows, 1)
	require.Len(t, rows[0].Departures, 1)
	assert.Equal(t, 600, rows[0].Departures[0].Minutes)
	assert.Empty(t, rows[0].Departures[0].Goodness)

	assert.Equal(t, http.StatusBadRequest, request(t, application, http.MethodGet, "/core/routes/bainbridge/departures?direction=north", nil))
	assert.Equal(t, http.StatusBadRequest, request(t, application, http.MethodGet, "/core/routes/bainbridge/departures?schedule=holiday", nil))
}

func TestAlerts(t *testing.T) {
	application := newTestApplication(t)

	var alerts []map[string]interface{}
	assert.Equal(t, http.StatusOK, request(t, application, http.MethodGet, "/core/routes/edmonds/alerts", &alerts))
	require.Len(t, alerts, 1)
	assert.Equal(t, "42", alerts[0]["ID"])

	assert.Equal(t, http.StatusOK, request(t, application, http.MethodPost, "/core/alerts/42/read", nil))
	assert.Equal(t, http.StatusNotFound, request(t, application, http.MethodPost, "/core/alerts/99/read", nil))

	alerts = nil
	assert.Equal(t, http.StatusOK, request(t, application, http.MethodGet, "/core/alerts?where=Unread", &alerts))
	require.Len(t, alerts, 1)
	assert.Equal(t, "43", alerts[0]["ID"])

	assert.Equal(t, http.StatusBadRequest, request(t, application, http.MethodGet, "/core/alerts?where=Unread%20%2B", nil))
}

func TestTerminalsAndBoard(t *testing.T) {
	application := newTestApplication(t)

	var terminals []map[string]interface{}
	assert.Equal(t, http.StatusOK, request(t, application, http.MethodGet, "/core/terminals", &terminals))
	assert.Len(t, terminals, 19)

	var terminal map[string]interface{}
	assert.Equal(t, http.StatusOK, request(t, application, http.MethodGet, "/core/terminals/7", &terminal))
	assert.Equal(t, "Seattle", terminal["Name"])

	assert.Equal(t, http.StatusNotFound, request(t, application, http.MethodGet, "/core/terminals/2", nil))
	assert.Equal(t, http.StatusBadRequest, request(t, application, http.MethodGet, "/core/terminals/seattle", nil))

	var rows []departureRow
	assert.Equal(t, http.StatusOK, request(t, application, http.MethodGet, "/core/board?limit=1", &rows))
	require.Len(t, rows, 22)
	assert.Equal(t, "bainbridge", rows[0].Route)
	assert.Len(t, rows[0].Departures, 1)
}
