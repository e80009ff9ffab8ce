package quiz

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var (
	defaultHTTPOnce sync.Once
	defaultHTTP     *http.Client

	json = jsoniter.ConfigCompatibleWithStandardLibrary
)

// DefaultHTTPClient returns the shared client used when none is supplied.
func DefaultHTTPClient() *http.Client {
	defaultHTTPOnce.Do(func() {
		defaultHTTP = &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        16,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				ResponseHeaderTimeout: 5 * time.Second,
			},
		}
	})
	return defaultHTTP
}

// Client talks to a remote quiz API over HTTP.
type Client struct {
	base string
	http *http.Client
}

// NewClient creates a client for the API rooted at baseURL.
// A nil httpClient uses DefaultHTTPClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = DefaultHTTPClient()
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: httpClient,
	}
}

// RandomQuestion fetches a question. Returns ErrNoQuestion when the bank
// is empty.
func (c *Client) RandomQuestion(ctx context.Context) (Question, error) {
	var resp QuestionResponse
	status, err := c.do(ctx, http.MethodGet, "/api/question/random", nil, &resp)
	if err != nil {
		return Question{}, err
	}
	if status == http.StatusNotFound {
		return Question{}, ErrNoQuestion
	}
	if status != http.StatusOK || resp.Error != "" {
		return Question{}, &APIError{Op: "random question", Status: status, Msg: resp.Error}
	}
	if resp.ID == 0 || resp.Prompt == "" {
		return Question{}, &APIError{Op: "random question", Status: status, Msg: "incomplete question"}
	}
	return resp.Question, nil
}

// Validate submits a query for the given question.
func (c *Client) Validate(ctx context.Context, query string, questionID int64) (Verdict, error) {
	var resp ValidateResponse
	status, err := c.do(ctx, http.MethodPost, "/api/validate",
		ValidateRequest{Query: query, QuestionID: questionID}, &resp)
	if err != nil {
		return Verdict{}, err
	}
	if status != http.StatusOK || resp.Error != "" {
		return Verdict{}, &APIError{Op: "validate", Status: status, Msg: resp.Error}
	}
	return Verdict{Valid: resp.Valid, Expected: resp.Expected}, nil
}

// UpdateStats reports a finished round.
func (c *Client) UpdateStats(ctx context.Context, stats Stats) error {
	var resp StatusResponse
	status, err := c.do(ctx, http.MethodPost, "/api/stats", stats, &resp)
	if err != nil {
		return err
	}
	if status != http.StatusOK || resp.Status != "success" {
		return &APIError{Op: "stats", Status: status, Msg: resp.Message}
	}
	return nil
}

// do sends a JSON request and decodes the JSON body into out, whatever the
// status. Only transport and decode failures are returned as errors.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var bodyReader io.Reader
	if body != nil {
		buf := &bytes.Buffer{}
		if err := jsoniter.NewEncoder(buf).Encode(body); err != nil {
			return 0, fmt.Errorf("quiz: encode %s: %w", path, err)
		}
		bodyReader = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, bodyReader)
	if err != nil {
		return 0, fmt.Errorf("quiz: build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("quiz: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("quiz: read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		if resp.StatusCode == http.StatusOK {
			return resp.StatusCode, &APIError{Op: path, Status: resp.StatusCode, Msg: "empty body"}
		}
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return resp.StatusCode, &APIError{Op: path, Status: resp.StatusCode, Msg: http.StatusText(resp.StatusCode)}
		}
		return resp.StatusCode, fmt.Errorf("quiz: decode %s: %w", path, err)
	}
	return resp.StatusCode, nil
}

// IsAPIError reports whether err came from a non-success API answer.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
