package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/siteauth/internal/common"
)

// maxResponseBody caps how much of a response is read.
const maxResponseBody = 1 << 20

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userEnvelope struct {
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
	User    User   `json:"user"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

func (c *HTTPClient) Signup(ctx context.Context, username, email string, password []byte) (*User, error) {
	var out userEnvelope
	err := c.do(ctx, http.MethodPost, "/api/auth/signup", "",
		signupRequest{Username: username, Email: email, Password: string(password)}, &out)
	if err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (string, *User, error) {
	var out userEnvelope
	err := c.do(ctx, http.MethodPost, "/api/auth/login", "",
		loginRequest{Email: email, Password: string(password)}, &out)
	if err != nil {
		return "", nil, err
	}
	if out.Token == "" {
		return "", nil, errors.New("server returned no token")
	}
	return out.Token, &out.User, nil
}

func (c *HTTPClient) Me(ctx context.Context, token string) (*User, error) {
	var out userEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", "", nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		return json.Unmarshal(data, out)
	}

	var e errorEnvelope
	_ = json.Unmarshal(data, &e)
	if e.Error == "" {
		e.Error = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrValidation, e.Error)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, e.Error)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, e.Error)
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %s", ErrUnavailable, e.Error)
	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, e.Error)
	}
}
