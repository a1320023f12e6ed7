// Package api implements the remote resource client: plain JSON calls
// against the storefront's REST backend for user, product and order data.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	"github.com/dnminh/vshop/config"
	"github.com/dnminh/vshop/internal/app/model"
)

var (
	// ErrNotFound is returned when the backend has no matching resource
	ErrNotFound = errors.New("resource not found")

	// ErrRequestFailed is returned for network failures and non-2xx replies
	ErrRequestFailed = errors.New("request failed")
)

// Client talks to the resource endpoints. All methods take a context; the
// underlying http.Client carries no timeout unless one is configured, so
// cancellation is the caller's responsibility.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a resource client for the given API base URL
func NewClient(cfg config.ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("invalid config: base URL is required")
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// GetUser fetches a user record by id
func (c *Client) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByEmail looks a user up through the email query filter.
// Returns ErrNotFound when no user matches.
func (c *Client) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return c.findUser(ctx, "email", email)
}

// FindUserByUsername looks a user up through the username query filter.
// Returns ErrNotFound when no user matches.
func (c *Client) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return c.findUser(ctx, "username", username)
}

func (c *Client) findUser(ctx context.Context, field, value string) (*model.User, error) {
	var users []model.User
	path := fmt.Sprintf("/users?%s=%s", field, url.QueryEscape(value))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrNotFound
	}
	return &users[0], nil
}

// CreateUser registers a new user record
func (c *Client) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	var created model.User
	if err := c.doJSON(ctx, http.MethodPost, "/users", user, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateUser writes the whole user record back. This is the only update
// pattern the backend supports; concurrent writers race on last-write-wins.
func (c *Client) UpdateUser(ctx context.Context, user *model.User) (*model.User, error) {
	var updated model.User
	path := fmt.Sprintf("/users/%d", user.ID)
	if err := c.doJSON(ctx, http.MethodPut, path, user, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// PatchUser applies a partial update to a user record
func (c *Client) PatchUser(ctx context.Context, id uint, fields map[string]interface{}) (*model.User, error) {
	var updated model.User
	path := fmt.Sprintf("/users/%d", id)
	if err := c.doJSON(ctx, http.MethodPatch, path, fields, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ListProducts fetches the whole product catalog
func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.doJSON(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product by id
func (c *Client) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ProductsByCategory fetches products filtered by category
func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	var products []model.Product
	path := "/products?category=" + url.QueryEscape(category)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FeaturedProducts fetches the home page product strip
func (c *Client) FeaturedProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.doJSON(ctx, http.MethodGet, "/featured_products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct creates a product (admin back-office)
func (c *Client) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	var created model.Product
	if err := c.doJSON(ctx, http.MethodPost, "/products", product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct overwrites a product (admin back-office)
func (c *Client) UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	var updated model.Product
	path := fmt.Sprintf("/products/%d", product.ID)
	if err := c.doJSON(ctx, http.MethodPut, path, product, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct removes a product (admin back-office)
func (c *Client) DeleteProduct(ctx context.Context, id uint) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}

// UploadResult is the upload endpoint's reply
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// UploadImage sends a product image to the file-upload endpoint
func (c *Client) UploadImage(ctx context.Context, filename, contentType string, r io.Reader) (*UploadResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to buffer upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result UploadResult
	if err := c.send(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// doJSON performs a JSON request against the API and decodes the reply into
// out when out is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: unexpected status %d: %s", ErrRequestFailed, resp.StatusCode, string(data))
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
