// Package client is a Go client for the envelope budget API.
//
// The Client holds the session of one user: it stores the bearer token,
// attaches it to all requests that need it and caches the current user.
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
	"reflect"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Client is safe for concurrent use.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	store    TokenStore
	validate *validator.Validate

	mu    sync.RWMutex
	token string
	user  *User
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.http = c
	}
}

// WithTokenStore sets where the token is persisted.
func WithTokenStore(s TokenStore) Option {
	return func(client *Client) {
		client.store = s
	}
}

// New creates a client for the API at baseURL, e.g. https://example.com/api.
//
// A token saved in the TokenStore by a previous session is used.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("base URL must be absolute, got '%s'", baseURL)
	}

	c := &Client{
		baseURL:  u,
		http:     &http.Client{Timeout: 30 * time.Second},
		store:    &MemoryStore{},
		validate: validator.New(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.validate.RegisterTagNameFunc(fieldName)

	c.token, err = c.store.Load()
	if err != nil {
		return nil, err
	}

	return c, nil
}

// fieldName returns the name of a form field as the API calls it.
func fieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name != "" && name != "-" {
		return name
	}

	r := []rune(f.Name)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// LoggedIn reports if the client holds a token.
//
// The token can still be expired, this is only known after the next
// request that needs authentication.
func (c *Client) LoggedIn() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

// Token returns the current session token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) validateForm(form any) error {
	err := c.validate.Struct(form)

	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return newFormError(errs)
	}

	return err
}

// Register creates a new user. It does not log the user in.
func (c *Client) Register(ctx context.Context, form RegisterForm) (UserCreated, error) {
	if err := c.validateForm(form); err != nil {
		return UserCreated{}, err
	}

	var user UserCreated
	err := c.do(ctx, http.MethodPost, "/auth/register", form, &user, false)
	return user, err
}

// Login verifies the credentials and stores the session token.
func (c *Client) Login(ctx context.Context, form LoginForm) error {
	if err := c.validateForm(form); err != nil {
		return err
	}

	var res struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", form, &res, false); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Save(res.Token); err != nil {
		return err
	}
	c.token = res.Token
	c.user = nil

	return nil
}

// Logout drops the session token and the cached user.
func (c *Client) Logout() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clearLocked()
}

func (c *Client) clearLocked() error {
	c.token = ""
	c.user = nil
	return c.store.Clear()
}

// CurrentUser returns the authenticated user with all envelopes and expenses.
//
// The user is cached until the next mutation through this client.
func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	c.mu.RLock()
	cached := c.user
	c.mu.RUnlock()

	if cached != nil {
		return *cached, nil
	}

	return c.Refresh(ctx)
}

// Refresh fetches the current user from the API and updates the cache.
func (c *Client) Refresh(ctx context.Context) (User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/user/me", nil, &user, true); err != nil {
		return User{}, err
	}

	c.mu.Lock()
	c.user = &user
	c.mu.Unlock()

	return user, nil
}

func (c *Client) invalidate() {
	c.mu.Lock()
	c.user = nil
	c.mu.Unlock()
}

func (c *Client) Envelopes(ctx context.Context) ([]Envelope, error) {
	var envelopes []Envelope
	err := c.do(ctx, http.MethodGet, "/envelopes", nil, &envelopes, true)
	return envelopes, err
}

func (c *Client) CreateEnvelope(ctx context.Context, form EnvelopeForm) (Envelope, error) {
	if err := c.validateForm(form); err != nil {
		return Envelope{}, err
	}

	var envelope Envelope
	err := c.mutate(ctx, http.MethodPost, "/envelopes", form, &envelope)
	return envelope, err
}

func (c *Client) UpdateEnvelope(ctx context.Context, id uint, update EnvelopeUpdate) (Envelope, error) {
	var envelope Envelope
	err := c.mutate(ctx, http.MethodPut, fmt.Sprintf("/envelopes/%d", id), update, &envelope)
	return envelope, err
}

func (c *Client) DeleteEnvelope(ctx context.Context, id uint) error {
	return c.mutate(ctx, http.MethodDelete, fmt.Sprintf("/envelopes/%d", id), nil, nil)
}

func (c *Client) Expenses(ctx context.Context) ([]Expense, error) {
	var expenses []Expense
	err := c.do(ctx, http.MethodGet, "/expenses", nil, &expenses, true)
	return expenses, err
}

func (c *Client) CreateExpense(ctx context.Context, form ExpenseForm) (Expense, error) {
	if err := c.validateForm(form); err != nil {
		return Expense{}, err
	}

	var expense Expense
	err := c.mutate(ctx, http.MethodPost, "/expenses", form, &expense)
	return expense, err
}

func (c *Client) UpdateExpense(ctx context.Context, id uint, update ExpenseUpdate) (Expense, error) {
	var expense Expense
	err := c.mutate(ctx, http.MethodPut, fmt.Sprintf("/expenses/%d", id), update, &expense)
	return expense, err
}

func (c *Client) DeleteExpense(ctx context.Context, id uint) error {
	return c.mutate(ctx, http.MethodDelete, fmt.Sprintf("/expenses/%d", id), nil, nil)
}

// mutate sends an authenticated request that changes data. The cached
// user is dropped afterwards, even if the request failed.
func (c *Client) mutate(ctx context.Context, method, path string, body, out any) error {
	defer c.invalidate()
	return c.do(ctx, method, path, body, out, true)
}

// do sends a request to the API and decodes the response into out.
//
// For authenticated requests, a 401 response ends the session.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authenticated bool) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("could not encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authenticated {
		token := c.Token()
		if token == "" {
			return ErrNotLoggedIn
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: res.StatusCode, Message: http.StatusText(res.StatusCode)}

		var e struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(res.Body).Decode(&e) == nil && e.Error != "" {
			apiErr.Message = e.Error
		}

		if authenticated && res.StatusCode == http.StatusUnauthorized {
			c.mu.Lock()
			clearErr := c.clearLocked()
			c.mu.Unlock()

			if clearErr != nil {
				return errors.Join(apiErr, clearErr)
			}
		}

		return apiErr
	}

	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}

	return nil
}
