package gateway

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MhasnainGIT/e-commerce/internal/store"
	"github.com/MhasnainGIT/e-commerce/pkg/config"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(config.APIConfig{
		BaseURL: srv.URL + "/api",
		Timeout: 5 * time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return client
}

func respond(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func Test_Client_Product(t *testing.T) {
	// given
	r := chi.NewRouter()
	r.Get("/api/product/{id}", func(w http.ResponseWriter, req *http.Request) {
		if chi.URLParam(req, "id") != "p1" {
			respond(w, http.StatusNotFound, map[string]string{"err": "This product does not exist."})
			return
		}
		respond(w, http.StatusOK, map[string]any{
			"product": store.Product{ID: "p1", Title: "Toy", InStock: 5},
		})
	})
	client := newTestClient(t, r)

	// when: existing product
	resp, err := client.Product(context.Background(), "p1")
	// then
	require.NoError(t, err)
	assert.Empty(t, resp.Err)
	assert.Equal(t, "Toy", resp.Product.Title)
	assert.Equal(t, 5, resp.Product.InStock)

	// when: missing product, non-2xx with err payload
	resp, err = client.Product(context.Background(), "p9")
	// then: business failure, not a transport error
	require.NoError(t, err)
	assert.Equal(t, "This product does not exist.", resp.Err)
}

func Test_Client_TransportFailure(t *testing.T) {
	// given: a server that is already gone
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client, err := NewClient(config.APIConfig{
		BaseURL: srv.URL + "/api",
		Timeout: time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	// when
	_, err = client.Product(context.Background(), "p1")
	// then
	assert.Error(t, err)
}

func Test_Client_CreateOrder(t *testing.T) {
	// given
	var gotAuth string
	var gotBody OrderRequest
	r := chi.NewRouter()
	r.Post("/api/order", func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(req.Body).Decode(&gotBody))
		respond(w, http.StatusOK, map[string]any{
			"msg":      "Order success! We will contact you to confirm the order.",
			"newOrder": store.Order{ID: "o1", Total: gotBody.Total},
		})
	})
	client := newTestClient(t, r)

	order := OrderRequest{
		Address: "12 Main St",
		Mobile:  "0123456789",
		Cart:    []store.CartLine{{ProductID: "p1", Price: 10, Quantity: 2, InStock: 5}},
		Total:   20,
	}

	// when
	resp, err := client.CreateOrder(context.Background(), order, "access-token")
	// then
	require.NoError(t, err)
	assert.Empty(t, resp.Err)
	assert.Equal(t, "o1", resp.NewOrder.ID)
	assert.Equal(t, "Bearer access-token", gotAuth)
	assert.Equal(t, order, gotBody)
}

func Test_Client_ProductsQuery(t *testing.T) {
	// given
	var gotQuery map[string]string
	r := chi.NewRouter()
	r.Get("/api/product", func(w http.ResponseWriter, req *http.Request) {
		gotQuery = map[string]string{
			"page":     req.URL.Query().Get("page"),
			"category": req.URL.Query().Get("category"),
			"sort":     req.URL.Query().Get("sort"),
			"title":    req.URL.Query().Get("title"),
		}
		respond(w, http.StatusOK, map[string]any{
			"products": []store.Product{{ID: "p1"}},
			"result":   1,
		})
	})
	client := newTestClient(t, r)

	// when
	resp, err := client.Products(context.Background(), ProductQuery{
		Page: 2, Category: "toys", Sort: "-price", Search: "car",
	})
	// then
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Result)
	assert.Equal(t, map[string]string{
		"page": "2", "category": "toys", "sort": "-price", "title": "car",
	}, gotQuery)
}

func Test_Client_RefreshUsesSessionCookie(t *testing.T) {
	// given: login sets a refresh cookie, the refresh endpoint requires it
	r := chi.NewRouter()
	r.Post("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "refreshtoken", Value: "rt-1", Path: "/"})
		respond(w, http.StatusOK, map[string]any{
			"msg":          "Login Success!",
			"access_token": "at-1",
			"user":         store.User{ID: "u1", Name: "Ann"},
		})
	})
	r.Get("/api/auth/accessToken", func(w http.ResponseWriter, req *http.Request) {
		cookie, err := req.Cookie("refreshtoken")
		if err != nil || cookie.Value != "rt-1" {
			respond(w, http.StatusBadRequest, map[string]string{"err": "Please login now!"})
			return
		}
		respond(w, http.StatusOK, map[string]any{
			"access_token": "at-2",
			"user":         store.User{ID: "u1", Name: "Ann"},
		})
	})
	client := newTestClient(t, r)

	// when: before login the refresh exchange is rejected
	resp, err := client.RefreshAccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Please login now!", resp.Err)

	// and after login the cookie jar carries the refresh cookie
	login, err := client.Login(context.Background(), Credentials{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)
	require.Empty(t, login.Err)

	resp, err = client.RefreshAccessToken(context.Background())
	// then
	require.NoError(t, err)
	assert.Empty(t, resp.Err)
	assert.Equal(t, "at-2", resp.AccessToken)

	// and ClearSession drops it again
	client.ClearSession()
	resp, err = client.RefreshAccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Please login now!", resp.Err)
}
