package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(r.URL.Path))
	})
}

func TestRouterProvider_GetAddsRoute(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/profile/", pathEcho())
	rp.Get("/update/", pathEcho())

	routes := rp.GetRoutes()
	require.Len(t, routes, 2)
	assert.Equal(t, "/profile/", routes[0].Url)
	assert.Equal(t, "/update/", routes[1].Url)
}

func TestRouterProvider_MuxServesSubtree(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/profile/", pathEcho())
	mux := rp.Mux()

	req := httptest.NewRequest(http.MethodGet, "/profile/alice/status/2024-01-01", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "/profile/alice/status/2024-01-01", rr.Body.String())

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/elsewhere", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMethodHandler_AllowsGetAndHead(t *testing.T) {
	handler := methodHandler(pathEcho(), http.MethodGet, http.MethodHead)

	for _, m := range []string{http.MethodGet, http.MethodHead} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(m, "/profile/alice/status", nil))
		assert.Equal(t, http.StatusOK, rr.Code, m)
	}
}

func TestMethodHandler_RejectsWrites(t *testing.T) {
	handler := methodHandler(pathEcho(), http.MethodGet, http.MethodHead)

	for _, m := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(m, "/profile/alice/status", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code, m)
		assert.Equal(t, "GET, HEAD", rr.Header().Get("Allow"), m)
	}
}
