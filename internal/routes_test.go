package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"wallfeed/internal/controllers"
	"wallfeed/internal/services"
	"wallfeed/internal/storage"
	"wallfeed/internal/structures"
	"wallfeed/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouteTestController() *controllers.TimelineController {
	store := storage.NewMemoryStore()
	store.Load(testutil.Fixture())
	conf := &structures.Config{Timeline: structures.TimelineConfig{ItemsPerPage: 20, ItemsPerPageMobile: 10}}
	svc := services.NewTimelineService(conf, store, testutil.NewMockLastSeenStore(), &testutil.MockLogger{}, &testutil.MockMetrics{})
	return controllers.NewTimelineController(&testutil.MockLogger{}, svc)
}

func TestInitRoutes_RegistersRoutes(t *testing.T) {
	router := InitRoutes(newRouteTestController())
	routes := router.GetRoutes()

	require.Len(t, routes, 2)

	urls := make([]string, len(routes))
	for i, r := range routes {
		urls[i] = r.Url
	}

	assert.Contains(t, urls, "/profile/")
	assert.Contains(t, urls, "/update/")
}

func TestInitRoutes_Serve(t *testing.T) {
	router := InitRoutes(newRouteTestController())

	mux := router.Mux()

	req := httptest.NewRequest(http.MethodGet, "/profile/alice/status/funny", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/update/alice", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodPost, "/profile/alice/status", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
