// Package authprovider is a thin client for the hosted auth provider's
// GoTrue-compatible REST API (signup, password grant, refresh grant, user).
package authprovider

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	http *resty.Client
}

// NewClient builds a client for baseURL (e.g. https://<project>.supabase.co).
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")+"/auth/v1").
		SetHeader("apikey", apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &Client{http: c}
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

// SignUpResult carries the session when the provider auto-confirms the
// account, and only the user otherwise.
type SignUpResult struct {
	User    *User
	Session *Session
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signUpResponse covers both shapes the provider answers with.
type signUpResponse struct {
	Session
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Error is a non-2xx answer from the provider.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("auth provider: status %d: %s", e.Status, e.Message)
}

// IsClientError reports whether the provider rejected the request itself
// (bad credentials, invalid token) rather than failing.
func (e *Error) IsClientError() bool {
	return e.Status >= 400 && e.Status < 500
}

type errorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorCode        string `json:"error_code"`
}

func toError(resp *resty.Response, body *errorBody) error {
	msg := body.ErrorDescription
	if msg == "" {
		msg = body.Msg
	}
	if msg == "" {
		msg = body.Message
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode())
	}
	code := body.ErrorCode
	if code == "" {
		code = body.Error
	}
	return &Error{Status: resp.StatusCode(), Code: code, Message: msg}
}

func (c *Client) SignUp(ctx context.Context, email, password string) (*SignUpResult, error) {
	var out signUpResponse
	var apiErr errorBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(credentials{Email: email, Password: password}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/signup")
	if err != nil {
		return nil, fmt.Errorf("auth provider signup: %w", err)
	}
	if resp.IsError() {
		return nil, toError(resp, &apiErr)
	}

	if out.AccessToken != "" {
		session := out.Session
		return &SignUpResult{User: session.User, Session: &session}, nil
	}
	return &SignUpResult{User: &User{ID: out.ID, Email: out.Email, Role: out.Role}}, nil
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	return c.token(ctx, "password", credentials{Email: email, Password: password})
}

func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	return c.token(ctx, "refresh_token", map[string]string{"refresh_token": refreshToken})
}

func (c *Client) token(ctx context.Context, grant string, body interface{}) (*Session, error) {
	var out Session
	var apiErr errorBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("grant_type", grant).
		SetBody(body).
		SetResult(&out).
		SetError(&apiErr).
		Post("/token")
	if err != nil {
		return nil, fmt.Errorf("auth provider %s grant: %w", grant, err)
	}
	if resp.IsError() {
		return nil, toError(resp, &apiErr)
	}
	return &out, nil
}

// GetUser resolves an access token to its user.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*User, error) {
	var out User
	var apiErr errorBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&out).
		SetError(&apiErr).
		Get("/user")
	if err != nil {
		return nil, fmt.Errorf("auth provider get user: %w", err)
	}
	if resp.IsError() {
		return nil, toError(resp, &apiErr)
	}
	return &out, nil
}
