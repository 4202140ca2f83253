package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const DefaultEndpoint = "https://api.github.com/graphql"

// Client talks to the GitHub GraphQL API. Independent partial queries are
// combined into a single wire call, which is what keeps a digest run down
// to a handful of round trips.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	userAgent  string
}

func NewClient(httpClient *http.Client, endpoint, token, userAgent string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
		token:      token,
		userAgent:  userAgent,
	}
}

// Result maps fragment aliases to their undecoded response objects.
type Result map[string]json.RawMessage

// Decode unmarshals the response for one fragment alias. A missing alias
// is a protocol-level defect and reported as such.
func (r Result) Decode(alias string, v any) error {
	raw, ok := r[alias]
	if !ok {
		return &ProtocolError{Messages: []string{fmt.Sprintf("response is missing alias %q", alias)}}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &TransportError{Err: fmt.Errorf("failed to decode alias %q: %w", alias, err)}
	}
	return nil
}

type graphqlError struct {
	Message string `json:"message"`
}

type envelope struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []graphqlError             `json:"errors"`
}

// RunQueries submits all fragments as one query round trip.
func (c *Client) RunQueries(ctx context.Context, fragments []Fragment) (Result, error) {
	return c.post(ctx, "", fragments)
}

// RunMutations submits all fragments as one mutation round trip.
func (c *Client) RunMutations(ctx context.Context, fragments []Fragment) (Result, error) {
	return c.post(ctx, "mutation ", fragments)
}

func (c *Client) post(ctx context.Context, operation string, fragments []Fragment) (Result, error) {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		parts = append(parts, f.String())
	}
	query := fmt.Sprintf("%s{%s}", operation, strings.Join(parts, ","))

	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status: %s", resp.Status)}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("malformed envelope: %w", err)}
	}

	if len(env.Errors) > 0 {
		messages := make([]string, 0, len(env.Errors))
		for _, e := range env.Errors {
			messages = append(messages, e.Message)
		}
		return nil, &ProtocolError{Messages: messages}
	}
	if env.Data == nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("envelope has no data object")}
	}

	return Result(env.Data), nil
}
