package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dummyHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestRouterProvider_GetAddsRoute(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/test", dummyHandler())

	routes := rp.GetRoutes()
	require.Len(t, routes, 1)
	assert.Equal(t, "/test", routes[0].Url)
}

func TestRouterProvider_PostAddsRoute(t *testing.T) {
	rp := NewRouterProvider()
	rp.Post("/submit", dummyHandler())

	routes := rp.GetRoutes()
	require.Len(t, routes, 1)
	assert.Equal(t, "/submit", routes[0].Url)
}

func TestRouterProvider_MultipleRoutes(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/a", dummyHandler())
	rp.Post("/b", dummyHandler())
	rp.Get("/c", dummyHandler())

	routes := rp.GetRoutes()
	assert.Len(t, routes, 3)
}

func TestMethodHandler_CorrectMethod(t *testing.T) {
	handler := methodHandler(map[string]http.Handler{http.MethodGet: dummyHandler()})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestMethodHandler_WrongMethod(t *testing.T) {
	handler := methodHandler(map[string]http.Handler{http.MethodGet: dummyHandler()})

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, http.MethodGet, rr.Header().Get("Allow"))
}

func TestRouterProvider_GetRouteRejectsPost(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/test", dummyHandler())

	route := rp.GetRoutes()[0]
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	rr := httptest.NewRecorder()
	route.Handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRouterProvider_PostRouteRejectsGet(t *testing.T) {
	rp := NewRouterProvider()
	rp.Post("/submit", dummyHandler())

	route := rp.GetRoutes()[0]
	req := httptest.NewRequest(http.MethodGet, "/submit", nil)
	rr := httptest.NewRecorder()
	route.Handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRouterProvider_SameUrlDispatchesOnMethod(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/runs", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("list"))
	}))
	rp.Post("/runs", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("add"))
	}))

	routes := rp.GetRoutes()
	require.Len(t, routes, 1)

	rr := httptest.NewRecorder()
	routes[0].Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/runs", nil))
	assert.Equal(t, "list", rr.Body.String())

	rr = httptest.NewRecorder()
	routes[0].Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/runs", nil))
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "add", rr.Body.String())

	rr = httptest.NewRecorder()
	routes[0].Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/runs", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET, POST", rr.Header().Get("Allow"))
}

func TestRouterProvider_KeepsRegistrationOrder(t *testing.T) {
	rp := NewRouterProvider()
	rp.Post("/b", dummyHandler())
	rp.Get("/a", dummyHandler())
	rp.Get("/b", dummyHandler())

	routes := rp.GetRoutes()
	require.Len(t, routes, 2)
	assert.Equal(t, "/b", routes[0].Url)
	assert.Equal(t, "/a", routes[1].Url)
}
