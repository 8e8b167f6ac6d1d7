package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrymomot/authkit/pkg/apierr"
	"github.com/dmitrymomot/authkit/pkg/permissions"
)

// maxErrorBody caps how much of an error response body is read for
// normalization.
const maxErrorBody = 64 << 10

// Client talks to the auth API. All bearer-authenticated calls go through
// the BearerTransport, which injects the credential; the client itself only
// checks that a credential exists before issuing bearer-only requests.
type Client struct {
	baseURL   string
	endpoints Endpoints
	http      *http.Client
	creds     *Credential
	transport *BearerTransport
	validate  *validator.Validate
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The caller is then
// responsible for wiring a BearerTransport into it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithEndpoints overrides the default API paths.
func WithEndpoints(e Endpoints) Option {
	return func(c *Client) {
		c.endpoints = e
	}
}

// WithTimeout sets the HTTP timeout for the default client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if c.http != nil && d > 0 {
			c.http.Timeout = d
		}
	}
}

// New creates a Client for the given API base URL. The client owns a
// Credential and a BearerTransport; the session manager installs and clears
// the credential, and registers the unauthorized hook on Transport().
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrMissingBaseURL
	}

	creds := NewCredential()
	transport := NewBearerTransport(nil, creds)

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		endpoints: DefaultEndpoints(),
		http: &http.Client{
			Transport: transport,
			Timeout:   15 * time.Second,
		},
		creds:     creds,
		transport: transport,
		validate:  validator.New(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Credential returns the bearer credential holder this client reads from.
func (c *Client) Credential() *Credential {
	return c.creds
}

// Transport returns the bearer transport so the session layer can register
// its unauthorized hook.
func (c *Client) Transport() *BearerTransport {
	return c.transport
}

// Login exchanges credentials for a session token. The payload is validated
// locally first: exactly one credential kind, with the fields that kind
// requires.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	if err := c.validateCredentials(creds); err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := c.post(ctx, c.endpoints.Login, creds, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, ErrEmptyToken
	}
	return &out, nil
}

// RequestOTP asks the server to send a one-time code to the given mobile
// number.
func (c *Client) RequestOTP(ctx context.Context, mobile, countryCode string) error {
	if mobile == "" || countryCode == "" {
		return fmt.Errorf("%w: mobile and country code are required", ErrInvalidCredentials)
	}
	return c.post(ctx, c.endpoints.OTPSend, otpRequest{Mobile: mobile, CountryCode: countryCode}, nil)
}

// VerifyOTP completes the mobile login handshake, exchanging the one-time
// code for a session token.
func (c *Client) VerifyOTP(ctx context.Context, mobile, countryCode, code string) (*LoginResponse, error) {
	if mobile == "" || countryCode == "" || code == "" {
		return nil, fmt.Errorf("%w: mobile, country code and code are required", ErrInvalidCredentials)
	}

	var out LoginResponse
	if err := c.post(ctx, c.endpoints.OTPVerify, otpVerifyRequest{
		Mobile:      mobile,
		CountryCode: countryCode,
		Code:        code,
	}, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, ErrEmptyToken
	}
	return &out, nil
}

// Logout notifies the server that the current session is over. Callers
// treat failures as non-fatal; an empty success body is tolerated.
func (c *Client) Logout(ctx context.Context) error {
	if c.creds.Token() == "" {
		return ErrNotAuthenticated
	}
	return c.post(ctx, c.endpoints.Logout, nil, nil)
}

// Refresh exchanges the current token for a fresh one.
func (c *Client) Refresh(ctx context.Context) (*RefreshResponse, error) {
	if c.creds.Token() == "" {
		return nil, ErrNotAuthenticated
	}

	var out RefreshResponse
	if err := c.post(ctx, c.endpoints.Refresh, nil, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, ErrEmptyToken
	}
	return &out, nil
}

// Permissions fetches the capability grants for the current session.
func (c *Client) Permissions(ctx context.Context) ([]permissions.Grant, error) {
	if c.creds.Token() == "" {
		return nil, ErrNotAuthenticated
	}

	var out permissionsResponse
	if err := c.get(ctx, c.endpoints.Permissions, &out); err != nil {
		return nil, err
	}
	return out.Permissions, nil
}

func (c *Client) validateCredentials(creds Credentials) error {
	switch {
	case creds.isEmail() && creds.isMobile():
		return fmt.Errorf("%w: provide either email or mobile credentials, not both", ErrInvalidCredentials)
	case creds.isEmail():
		if creds.Email == "" || creds.Password == "" {
			return fmt.Errorf("%w: email and password are required", ErrInvalidCredentials)
		}
	case creds.isMobile():
		if creds.Mobile == "" || creds.CountryCode == "" {
			return fmt.Errorf("%w: mobile and country code are required", ErrInvalidCredentials)
		}
	default:
		return fmt.Errorf("%w: no credentials provided", ErrInvalidCredentials)
	}

	if err := c.validate.Struct(creds); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("authclient: encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("authclient: building request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("authclient: building request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", apierr.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return apierr.Decode(resp.StatusCode, body)
	}

	if out == nil {
		// Empty or unparseable success bodies are tolerated.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("authclient: decoding response: %w", err)
	}
	return nil
}
