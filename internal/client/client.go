// Package client talks to the storefront HTTP API on behalf of a shopper.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pariney/saree-storefront/internal/aggregator"
	"github.com/pariney/saree-storefront/pkg/db/models"
	pkgerrors "github.com/pariney/saree-storefront/pkg/errors"
	"github.com/pariney/saree-storefront/pkg/types"
)

const (
	defaultTimeout       = 10 * time.Second
	errorBodyReadLimit   = 4096
	idempotencyKeyHeader = "Idempotency-Key"
)

var errBaseURLRequired = errors.New("storefront base url is required")

// Client is safe for sequential use. The access token is set by Login or
// WithToken.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithToken presets the bearer token, e.g. one saved from an earlier login.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// New builds a client for the API rooted at baseURL (without /api).
func New(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}
	if _, err := url.ParseRequestURI(trimmed); err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	c := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Token returns the bearer token currently in use.
func (c *Client) Token() string {
	return c.token
}

// Session mirrors the bearer material returned by login.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
}

// Login exchanges credentials for a session and keeps its access token.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	payload := map[string]string{"email": email, "password": password}
	var out struct {
		Session Session `json:"session"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", payload, nil, &out); err != nil {
		return nil, err
	}
	c.token = out.Session.AccessToken
	return &out.Session, nil
}

// ProductFilter narrows Products; empty fields are ignored.
type ProductFilter struct {
	Category string
	Query    string
}

func (c *Client) Products(ctx context.Context, filter ProductFilter) ([]aggregator.Product, error) {
	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Query != "" {
		query.Set("q", filter.Query)
	}
	path := "/api/products"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var out struct {
		Products []models.Product `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	products := make([]aggregator.Product, 0, len(out.Products))
	for _, p := range out.Products {
		products = append(products, Snapshot(p))
	}
	return products, nil
}

// Product fetches one catalog entry as a cart snapshot.
func (c *Client) Product(ctx context.Context, id int64) (aggregator.Product, error) {
	var out struct {
		Product models.Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, nil, &out); err != nil {
		return aggregator.Product{}, err
	}
	return Snapshot(out.Product), nil
}

// Cart returns the server-side cart of the logged-in shopper.
func (c *Client) Cart(ctx context.Context) ([]models.CartItem, error) {
	var out struct {
		Cart []models.CartItem `json:"cart"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Cart, nil
}

type cartLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  *int  `json:"quantity,omitempty"`
}

// AddToCart creates a line or grows an existing one by quantity.
func (c *Client) AddToCart(ctx context.Context, productID int64, quantity int) error {
	return c.do(ctx, http.MethodPost, "/api/cart", cartLine{ProductID: productID, Quantity: &quantity}, nil, nil)
}

// SetCartQuantity overwrites a line's quantity; zero or less removes it.
func (c *Client) SetCartQuantity(ctx context.Context, productID int64, quantity int) error {
	return c.do(ctx, http.MethodPut, "/api/cart", cartLine{ProductID: productID, Quantity: &quantity}, nil, nil)
}

func (c *Client) RemoveFromCart(ctx context.Context, productID int64) error {
	return c.do(ctx, http.MethodDelete, "/api/cart", cartLine{ProductID: productID}, nil, nil)
}

// Checkout places an order from the server cart. Replaying the same
// idempotencyKey returns the original order.
func (c *Client) Checkout(ctx context.Context, idempotencyKey string) (*models.Order, error) {
	headers := http.Header{}
	if key := strings.TrimSpace(idempotencyKey); key != "" {
		headers.Set(idempotencyKeyHeader, key)
	}
	var out struct {
		Order models.Order `json:"order"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/orders", nil, headers, &out); err != nil {
		return nil, err
	}
	return &out.Order, nil
}

func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var out struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any, headers http.Header, out any) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal request")
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("%s %s", method, path))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode response")
	}
	return nil
}

// responseError turns the {"error": "..."} body into a typed error whose
// code matches the status.
func responseError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
	var envelope types.ErrorEnvelope
	message := strings.TrimSpace(string(raw))
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != "" {
		message = envelope.Error
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	return pkgerrors.New(codeForStatus(resp.StatusCode), message)
}

func codeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusBadRequest:
		return pkgerrors.CodeValidation
	case http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		return pkgerrors.CodeForbidden
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusConflict:
		return pkgerrors.CodeConflict
	case http.StatusTooManyRequests:
		return pkgerrors.CodeRateLimit
	case http.StatusServiceUnavailable:
		return pkgerrors.CodeDependency
	default:
		return pkgerrors.CodeInternal
	}
}

// Snapshot converts a catalog row into the product a cart line carries.
func Snapshot(p models.Product) aggregator.Product {
	out := aggregator.Product{
		ID:            p.ID,
		Name:          p.Name,
		Brand:         p.Brand,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Discount:      p.Discount,
		Image:         p.Image,
		Rating:        p.Rating.InexactFloat64(),
		Reviews:       p.Reviews,
		Sizes:         append([]string(nil), p.Sizes...),
		Colors:        append([]string(nil), p.Colors...),
		Category:      p.Category,
	}
	if p.Tag != nil {
		out.Tag = *p.Tag
	}
	return out
}
