package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Client is the sole channel between the dashboard and the food-ordering
// backend. Every operation is one HTTP request and one parsed response;
// there are no retries and no caching at this layer.
type Client struct {
	httpClient *http.Client
	baseURL    string
	uploadsURL string

	mu    sync.RWMutex
	token string
}

// NewClient creates a Client for the given API base URL and uploads host.
// Trailing slashes on either are tolerated.
func NewClient(baseURL, uploadsURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		uploadsURL: strings.TrimRight(uploadsURL, "/"),
	}
}

// SetToken sets the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the bearer token.
func (c *Client) ClearToken() { c.SetToken("") }

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// ImageURL builds the display URL for a server-assigned upload path.
func (c *Client) ImageURL(path string) string {
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.uploadsURL + path
}

// --- Auth ---

// Login exchanges credentials for a bearer token. Any failure, transport or
// HTTP, comes back as *AuthError; the caller stays unauthenticated.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return LoginResult{}, &AuthError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/admin/login", bytes.NewReader(body))
	if err != nil {
		return LoginResult{}, &AuthError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return LoginResult{}, &AuthError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The login endpoint is the one place server error bodies are
		// parsed: surface its message field when present.
		var errBody struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		if errBody.Message == "" {
			errBody.Message = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return LoginResult{}, &AuthError{Message: errBody.Message}
	}

	var result LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return LoginResult{}, &AuthError{Err: fmt.Errorf("decode login response: %w", err)}
	}
	if result.Token == "" {
		return LoginResult{}, &AuthError{Message: "no token in response"}
	}
	return result, nil
}

// --- List operations ---

// ListUsers returns all registered customers.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.getJSON(ctx, "list users", "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListCategories returns all menu categories.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.getJSON(ctx, "list categories", "/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListMenu returns all menu items with their categories embedded.
func (c *Client) ListMenu(ctx context.Context) ([]MenuItem, error) {
	var items []MenuItem
	if err := c.getJSON(ctx, "list menu", "/menu", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListOrders returns all orders with user and menu items embedded.
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.getJSON(ctx, "list orders", "/orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListPaymentMethods returns all configured bank accounts.
func (c *Client) ListPaymentMethods(ctx context.Context) ([]PaymentMethod, error) {
	var methods []PaymentMethod
	if err := c.getJSON(ctx, "list payment methods", "/payment-methods", &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

// --- Mutations ---
//
// Mutations return only success or failure. The created/updated entity is
// never consumed from the response; the caller observes the effect by
// re-listing (refresh-on-success).

func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) error {
	return c.sendJSON(ctx, "create category", http.MethodPost, "/categories", in)
}

func (c *Client) UpdateCategory(ctx context.Context, id string, in CategoryInput) error {
	return c.sendJSON(ctx, "update category", http.MethodPut, "/categories/"+id, in)
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.sendJSON(ctx, "delete category", http.MethodDelete, "/categories/"+id, nil)
}

func (c *Client) CreateMenuItem(ctx context.Context, in MenuItemInput) error {
	return c.sendJSON(ctx, "create menu item", http.MethodPost, "/menu", in)
}

func (c *Client) UpdateMenuItem(ctx context.Context, id string, in MenuItemInput) error {
	return c.sendJSON(ctx, "update menu item", http.MethodPut, "/menu/"+id, in)
}

func (c *Client) DeleteMenuItem(ctx context.Context, id string) error {
	return c.sendJSON(ctx, "delete menu item", http.MethodDelete, "/menu/"+id, nil)
}

// SetOrderStatus forwards a new status for the order verbatim. The status
// must be one of the enumerated values; transition legality is left to the
// backend.
func (c *Client) SetOrderStatus(ctx context.Context, id, status string) error {
	if !ValidOrderStatus(status) {
		return &RequestError{Op: "update order status", Method: http.MethodPut,
			Err: fmt.Errorf("unknown status %q", status)}
	}
	return c.sendJSON(ctx, "update order status", http.MethodPut, "/orders/"+id+"/status",
		map[string]string{"status": status})
}

func (c *Client) CreatePaymentMethod(ctx context.Context, in PaymentMethodInput) error {
	return c.sendJSON(ctx, "create payment method", http.MethodPost, "/payment-methods", in)
}

func (c *Client) DeletePaymentMethod(ctx context.Context, id string) error {
	return c.sendJSON(ctx, "delete payment method", http.MethodDelete, "/payment-methods/"+id, nil)
}

// UploadImage posts the file as multipart field "image" and returns the
// server-assigned relative path. No client-side validation of type or size;
// the backend's response is the only gate.
func (c *Client) UploadImage(ctx context.Context, filename string, file io.Reader) (string, error) {
	const op = "upload image"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", &RequestError{Op: op, Method: http.MethodPost, Err: err}
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", &RequestError{Op: op, Method: http.MethodPost, Err: err}
	}
	if err := mw.Close(); err != nil {
		return "", &RequestError{Op: op, Method: http.MethodPost, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/menu/upload", &buf)
	if err != nil {
		return "", &RequestError{Op: op, Method: http.MethodPost, Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &RequestError{Op: op, Method: http.MethodPost, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &RequestError{Op: op, Method: http.MethodPost, Status: resp.StatusCode}
	}

	var result struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &RequestError{Op: op, Method: http.MethodPost, Err: fmt.Errorf("decode upload response: %w", err)}
	}
	return result.Path, nil
}

// --- Request plumbing ---

func (c *Client) authorize(req *http.Request) {
	if tok := c.bearer(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}

func (c *Client) getJSON(ctx context.Context, op, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &RequestError{Op: op, Method: http.MethodGet, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Op: op, Method: http.MethodGet, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Op: op, Method: http.MethodGet, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Op: op, Method: http.MethodGet, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) sendJSON(ctx context.Context, op, method, path string, body interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Op: op, Method: method, Err: err}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &RequestError{Op: op, Method: method, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Op: op, Method: method, Err: err}
	}
	defer resp.Body.Close()
	// Response bodies of mutations are never consumed; drain for reuse.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Op: op, Method: method, Status: resp.StatusCode}
	}
	return nil
}
