package utils

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:133.0) Gecko/20100101 Firefox/133.0"

// NewClient returns a resty client that retries throttled and failed
// requests.
func NewClient() *resty.Client {
	return resty.New().
		SetTimeout(30*time.Second).
		SetHeader("User-Agent", userAgent).
		SetRetryCount(3).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(5*time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return r == nil || r.Request == nil || r.Request.Context().Err() == nil
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= 500
		})
}

type API struct {
	client  *resty.Client
	baseURL string
}

func NewAPI(baseURL string) *API {
	return NewAPIWithClient(NewClient(), baseURL)
}

func NewAPIWithClient(client *resty.Client, baseURL string) *API {
	return &API{client: client, baseURL: baseURL}
}

func (a *API) resolve(path string) string {
	if u, err := url.Parse(path); err == nil && u.IsAbs() {
		return path
	}
	return a.baseURL + path
}

// PostJSON sends body as JSON and decodes the JSON response into v.
func (a *API) PostJSON(ctx context.Context, path string, body, v any) error {
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(v).
		Post(a.resolve(path))
	return check(resp, err)
}

// GetBytes returns the raw response body of path.
func (a *API) GetBytes(ctx context.Context, path string) ([]byte, error) {
	resp, err := a.client.R().SetContext(ctx).Get(a.resolve(path))
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		return &StatusError{Method: resp.Request.Method, URL: resp.Request.URL, StatusCode: resp.StatusCode()}
	}
	return nil
}
