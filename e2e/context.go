package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// TestContext carries the HTTP client and the last response across steps.
type TestContext struct {
	BaseURL    string
	client     *http.Client
	status     int
	body       []byte
	remembered map[string]int
}

func NewTestContext(baseURL string) *TestContext {
	return &TestContext{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		client:     &http.Client{Timeout: 10 * time.Second},
		remembered: make(map[string]int),
	}
}

// Reset clears per-scenario state.
func (tc *TestContext) Reset() {
	tc.status = 0
	tc.body = nil
	tc.remembered = make(map[string]int)
}

func (tc *TestContext) GET(path string) error {
	return tc.do(http.MethodGet, path, nil)
}

func (tc *TestContext) POST(path string, body []byte) error {
	return tc.do(http.MethodPost, path, body)
}

func (tc *TestContext) PUT(path string, body []byte) error {
	return tc.do(http.MethodPut, path, body)
}

func (tc *TestContext) do(method, path string, body []byte) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, tc.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := tc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tc.status = resp.StatusCode
	tc.body, err = io.ReadAll(resp.Body)
	return err
}

func (tc *TestContext) StatusCode() int {
	return tc.status
}

// DecodeBody unmarshals the last response body into v.
func (tc *TestContext) DecodeBody(v any) error {
	if err := json.Unmarshal(tc.body, v); err != nil {
		return fmt.Errorf("decode response %q: %w", tc.body, err)
	}
	return nil
}

// GetResponseField walks a dotted path ("err.title") through the last
// response object.
func (tc *TestContext) GetResponseField(path string) (any, error) {
	var cur any
	if err := tc.DecodeBody(&cur); err != nil {
		return nil, err
	}
	for _, part := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field %q not found in %s", path, tc.body)
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil, fmt.Errorf("index %q out of range in %s", part, tc.body)
			}
			cur = node[i]
		default:
			return nil, fmt.Errorf("field %q not found in %s", path, tc.body)
		}
	}
	return cur, nil
}

func (tc *TestContext) Remember(key string, n int) {
	tc.remembered[key] = n
}

func (tc *TestContext) Recall(key string) (int, bool) {
	n, ok := tc.remembered[key]
	return n, ok
}
