package ferry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const alertText = `
42 4
Edmonds/Kingston is running one boat.
Expect delays.
__
43 2048
Orcas terminal closed for maintenance.
__
`

func TestRouteMaskIntersects(t *testing.T) {
	route := RouteCode(1 << 2)

	assert.True(t, RouteMask((1<<2)|(1<<5)).Intersects(route))
	assert.False(t, RouteMask(1<<5).Intersects(route))
	assert.Equal(t, RouteMask(36), MaskOf(RouteEdmonds, RouteFauntleroySouth))
}

func TestParseAlerts(t *testing.T) {
	alerts := ParseAlerts(alertText)
	require.Len(t, alerts, 2)

	assert.Equal(t, "42", alerts[0].ID)
	assert.Equal(t, MaskOf(RouteEdmonds), alerts[0].Codes)
	assert.Equal(t, "Edmonds/Kingston is running one boat.\nExpect delays.", alerts[0].Body)
	assert.True(t, alerts[0].Unread)

	assert.Equal(t, "43", alerts[1].ID)
	assert.Equal(t, MaskOf(RouteOrcas), alerts[1].Codes)
	assert.Equal(t, "Orcas terminal closed for maintenance.", alerts[1].Body)
}

func TestParseAlertsOddInput(t *testing.T) {
	assert.Empty(t, ParseAlerts(""))
	assert.Empty(t, ParseAlerts("\n__\n__\n"))

	alerts := ParseAlerts("9 banana\nbody")
	require.Len(t, alerts, 1)
	assert.Equal(t, RouteMask(0), alerts[0].Codes)

	alerts = ParseAlerts("10")
	require.Len(t, alerts, 1)
	assert.Equal(t, "10", alerts[0].ID)
	assert.Equal(t, "", alerts[0].Body)
}

func TestAlertsFor(t *testing.T) {
	registries, _ := newTestRegistries(t, tuesdayAt(10, 50))
	registries.Alerts.LoadAll(alertText)

	edmonds := mustFind(t, registries, "edmonds")
	alerts := registries.Alerts.AlertsFor(edmonds)
	require.Len(t, alerts, 1)
	assert.Equal(t, "42", alerts[0].ID)

	bremerton := mustFind(t, registries, "bremerton")
	assert.Equal(t, []Alert{}, registries.Alerts.AlertsFor(bremerton))
}

func TestHasAlerts(t *testing.T) {
	registries, _ := newTestRegistries(t, tuesdayAt(10, 50))
	registries.Alerts.LoadAll(alertText)
	orcas := mustFind(t, registries, "orcas")

	assert.True(t, registries.Alerts.HasAlerts(orcas, true))
	assert.True(t, registries.Alerts.HasAlerts(orcas, false))

	require.True(t, registries.Alerts.MarkRead("43"))
	assert.False(t, registries.Alerts.HasAlerts(orcas, true))
	assert.True(t, registries.Alerts.HasAlerts(orcas, false))

	assert.False(t, registries.Alerts.MarkRead("999"))
}

func TestLoadAllKeepsReadState(t *testing.T) {
	alerts := NewAlertRegistry()

	newAlerts := alerts.LoadAll(alertText)
	assert.Len(t, newAlerts, 2)
	require.True(t, alerts.MarkRead("42"))
	require.True(t, alerts.MarkRead("43"))

	newAlerts = alerts.LoadAll("42 4\nStill one boat.\n__\n44 1\nBainbridge delays")
	require.Len(t, newAlerts, 1)
	assert.Equal(t, "44", newAlerts[0].ID)

	all := alerts.All()
	require.Len(t, all, 2)
	assert.False(t, all[0].Unread, "42 was read before the reload")
	assert.True(t, all[1].Unread)
	assert.Equal(t, []string{"42"}, alerts.ReadIDs(), "43 no longer exists so it is forgotten")

	alerts.LoadAll("43 2048\nOrcas closed again")
	assert.True(t, alerts.All()[0].Unread)
	assert.Empty(t, alerts.ReadIDs())
}

func TestRestoreReadIDs(t *testing.T) {
	alerts := NewAlertRegistry()
	alerts.RestoreReadIDs([]string{"42", "42", "", "77"})

	assert.Equal(t, []string{"42", "77"}, alerts.ReadIDs())

	alerts.LoadAll(alertText)

	all := alerts.All()
	assert.False(t, all[0].Unread)
	assert.True(t, all[1].Unread)
	assert.Equal(t, []string{"42"}, alerts.ReadIDs())
}

func TestAlertNotificationData(t *testing.T) {
	registries, _ := newTestRegistries(t, tuesdayAt(10, 50))

	data := registries.AlertNotificationData(Alert{ID: "1", Codes: 36, Body: "Delays"})
	assert.Equal(t, "Alert for edmonds, fauntleroy-southworth", data.Title)
	assert.Equal(t, "Delays", data.Message)

	data = registries.AlertNotificationData(Alert{ID: "2", Codes: 0, Body: "General"})
	assert.Equal(t, "Ferry alert", data.Title)
}
