package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	treedomain "treemap-backend/internal/tree/domain"
	"treemap-backend/pkg/nocodb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, status int, response string) (*nocodb.Client, *url.Values) {
	t.Helper()
	captured := &url.Values{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	return nocodb.NewClient(server.URL, "test-token"), captured
}

func searchCriteria(species, healthStatus string, age int) treedomain.TreeSearch {
	return treedomain.TreeSearch{
		Species:      species,
		HealthStatus: healthStatus,
		Age:          age,
	}
}

func TestSearchBuildsCombinedWhereClause(t *testing.T) {
	client, captured := newTestClient(t, http.StatusOK, `{"list": [], "pageInfo": {"totalRows": 0}}`)
	repo := NewTreeRepository(client, "tbl_trees")

	_, err := repo.Search(context.Background(), searchCriteria("oak", "healthy", 12))
	require.NoError(t, err)

	where := captured.Get("where")
	assert.Equal(t, "(Species,like,%oak%)~and(Health_status,like,%healthy%)~and(Age,eq,12)", where)
}

func TestSearchWithoutCriteriaListsAll(t *testing.T) {
	client, captured := newTestClient(t, http.StatusOK, `{"list": [], "pageInfo": {"totalRows": 0}}`)
	repo := NewTreeRepository(client, "tbl_trees")

	_, err := repo.Search(context.Background(), searchCriteria("", "", 0))
	require.NoError(t, err)

	assert.Empty(t, captured.Get("where"))
}

func TestByTreeIDNoMatchesYieldsEmptySlice(t *testing.T) {
	client, captured := newTestClient(t, http.StatusOK, `{"list": [], "pageInfo": {"totalRows": 0}}`)
	repo := NewLocationRepository(client, "tbl_locations", "vw_map")

	locations := repo.ByTreeID(context.Background(), "9")

	require.NotNil(t, locations)
	assert.Empty(t, locations)
	assert.Equal(t, "(Tree_id,eq,9)", captured.Get("where"))
	assert.Equal(t, "vw_map", captured.Get("viewId"))
}

func TestByTreeIDSwallowsBackendErrors(t *testing.T) {
	client, _ := newTestClient(t, http.StatusBadGateway, `{"error": "upstream"}`)
	repo := NewLocationRepository(client, "tbl_locations", "vw_map")

	locations := repo.ByTreeID(context.Background(), "9")

	require.NotNil(t, locations)
	assert.Empty(t, locations)
}

func TestByTreeIDParsesCoordinates(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, `{
		"list": [
			{"Id": 1, "Name": "Central Park", "GeoLocation": "40.78;-73.97"},
			{"Id": 2, "Name": "Broken", "GeoLocation": "garbage"}
		],
		"pageInfo": {"totalRows": 2}
	}`)
	repo := NewLocationRepository(client, "tbl_locations", "vw_map")

	locations := repo.ByTreeID(context.Background(), "9")
	require.Len(t, locations, 2)

	assert.InDelta(t, 40.78, locations[0].Latitude, 0.001)
	assert.InDelta(t, -73.97, locations[0].Longitude, 0.001)

	// A malformed geo string keeps the record with zero coordinates.
	assert.Equal(t, "Broken", locations[1].Name)
	assert.Zero(t, locations[1].Latitude)
}
