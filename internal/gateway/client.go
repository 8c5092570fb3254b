// Package gateway is the REST client for the storefront backend. Business
// failures travel inside response payloads as an "err" field and are never
// Go errors; methods return an error only for transport-level failure
// (unreachable host, timeout, unparseable body).
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/MhasnainGIT/e-commerce/internal/store"
	"github.com/MhasnainGIT/e-commerce/pkg/config"
)

// Client talks to the storefront REST API. The embedded cookie jar carries
// the http-only refresh cookie set by the login endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a gateway client for the configured API.
func NewClient(cfg config.APIConfig, logger *slog.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Jar:     jar,
		},
		logger: logger.With("component", "gateway"),
	}, nil
}

// ClearSession drops all session cookies, including the refresh cookie.
func (c *Client) ClearSession() {
	jar, err := cookiejar.New(nil)
	if err != nil {
		// cookiejar.New with default options cannot fail
		panic(fmt.Sprintf("gateway: failed to reset cookie jar: %v", err))
	}
	c.httpClient.Jar = jar
}

// ProductResponse is the single-product payload.
type ProductResponse struct {
	Product store.Product `json:"product"`
	Err     string        `json:"err"`
}

// ProductsResponse is the product listing payload.
type ProductsResponse struct {
	Products []store.Product `json:"products"`
	Result   int             `json:"result"`
	Err      string          `json:"err"`
}

// CategoriesResponse is the category listing payload.
type CategoriesResponse struct {
	Categories []store.Category `json:"categories"`
	Err        string           `json:"err"`
}

// OrdersResponse is the order listing payload.
type OrdersResponse struct {
	Orders []store.Order `json:"orders"`
	Err    string        `json:"err"`
}

// UsersResponse is the user listing payload.
type UsersResponse struct {
	Users []store.User `json:"users"`
	Err   string       `json:"err"`
}

// MsgResponse is the generic mutation payload.
type MsgResponse struct {
	Msg string `json:"msg"`
	Err string `json:"err"`
}

// OrderCreateResponse is the order submission payload.
type OrderCreateResponse struct {
	Msg      string      `json:"msg"`
	NewOrder store.Order `json:"newOrder"`
	Err      string      `json:"err"`
}

// AuthResponse is the payload of login, register and token refresh.
type AuthResponse struct {
	Msg         string     `json:"msg"`
	AccessToken string     `json:"access_token"`
	User        store.User `json:"user"`
	Err         string     `json:"err"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the register request body.
type Registration struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	CfPassword string `json:"cf_password"`
}

// OrderRequest is the order submission body.
type OrderRequest struct {
	Address string           `json:"address"`
	Mobile  string           `json:"mobile"`
	Cart    []store.CartLine `json:"cart"`
	Total   float64          `json:"total"`
}

// ProductQuery narrows the product listing.
type ProductQuery struct {
	Page     int
	Category string
	Sort     string
	Search   string
}

func (q ProductQuery) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Search != "" {
		v.Set("title", q.Search)
	}
	return v
}

// Product fetches a single product by id.
func (c *Client) Product(ctx context.Context, id string) (*ProductResponse, error) {
	var resp ProductResponse
	if err := c.do(ctx, http.MethodGet, "product/"+id, nil, "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Products fetches a product listing page.
func (c *Client) Products(ctx context.Context, query ProductQuery) (*ProductsResponse, error) {
	path := "product"
	if qs := query.values().Encode(); qs != "" {
		path += "?" + qs
	}
	var resp ProductsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Categories fetches all categories.
func (c *Client) Categories(ctx context.Context) (*CategoriesResponse, error) {
	var resp CategoriesResponse
	if err := c.do(ctx, http.MethodGet, "categories", nil, "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Orders fetches the caller's orders.
func (c *Client) Orders(ctx context.Context, token string) (*OrdersResponse, error) {
	var resp OrdersResponse
	if err := c.do(ctx, http.MethodGet, "order", nil, token, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Users fetches all users (admin only).
func (c *Client) Users(ctx context.Context, token string) (*UsersResponse, error) {
	var resp UsersResponse
	if err := c.do(ctx, http.MethodGet, "user", nil, token, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateOrder submits a new order.
func (c *Client) CreateOrder(ctx context.Context, order OrderRequest, token string) (*OrderCreateResponse, error) {
	var resp OrderCreateResponse
	if err := c.do(ctx, http.MethodPost, "order", order, token, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteUser removes a user (admin only).
func (c *Client) DeleteUser(ctx context.Context, id, token string) (*MsgResponse, error) {
	return c.delete(ctx, "user/"+id, token)
}

// DeleteCategory removes a category (admin only).
func (c *Client) DeleteCategory(ctx context.Context, id, token string) (*MsgResponse, error) {
	return c.delete(ctx, "categories/"+id, token)
}

// DeleteProduct removes a product (admin only).
func (c *Client) DeleteProduct(ctx context.Context, id, token string) (*MsgResponse, error) {
	return c.delete(ctx, "product/"+id, token)
}

// Login exchanges credentials for an access token. The refresh cookie set
// by the endpoint lands in the client's cookie jar.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "auth/login", creds, "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, reg Registration) (*MsgResponse, error) {
	var resp MsgResponse
	if err := c.do(ctx, http.MethodPost, "auth/register", reg, "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RefreshAccessToken exchanges the refresh cookie for a fresh access token.
func (c *Client) RefreshAccessToken(ctx context.Context) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodGet, "auth/accessToken", nil, "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) delete(ctx context.Context, path, token string) (*MsgResponse, error) {
	var resp MsgResponse
	if err := c.do(ctx, http.MethodDelete, path, nil, token, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do executes one API call. The response body is decoded into out whatever
// the status code, so business errors surface through the payload's err
// field rather than as Go errors.
func (c *Client) do(ctx context.Context, method, path string, body any, token string, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	reqURL := fmt.Sprintf("%s/%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request %s %s: %w", method, path, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer func() { _ = res.Body.Close() }()

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response of %s %s: %w", method, path, err)
	}
	c.logger.DebugContext(ctx, "api call completed",
		"method", method, "path", path, "status", res.StatusCode, "request_id", reqID)
	return nil
}
