package career

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip"
	userAgent       = "spigell/career-navigator"
	defaultTimeout  = 10 * time.Second
)

// Client performs the HTTP calls shared by the remote and fixture sources.
type Client struct {
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
}

func NewClient(logger *zap.Logger, timeout time.Duration) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		logger: logger,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		UserAgent: userAgent,
	}
}

// RemoteSource posts the profile to a scoring endpoint.
type RemoteSource struct {
	client *Client
	URL    string
}

func NewRemoteSource(client *Client, url string) *RemoteSource {
	return &RemoteSource{client: client, URL: url}
}

func (s *RemoteSource) Fetch(ctx context.Context, req Request) ([]Path, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", contentType)

	return s.client.getPaths(httpReq)
}

// FixtureSource reads a static document with the scoring response shape.
// Location is either an http(s) URL fetched without a body or a file path.
type FixtureSource struct {
	client   *Client
	Location string
}

func NewFixtureSource(client *Client, location string) *FixtureSource {
	return &FixtureSource{client: client, Location: location}
}

func (s *FixtureSource) Fetch(ctx context.Context, _ Request) ([]Path, error) {
	if !strings.HasPrefix(s.Location, "http://") && !strings.HasPrefix(s.Location, "https://") {
		s.client.logger.Debug("reading fixture file", zap.String("path", s.Location))

		data, err := os.ReadFile(s.Location)
		if err != nil {
			return nil, fmt.Errorf("reading fixture: %w", err)
		}
		return DecodePaths(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Location, nil)
	if err != nil {
		return nil, err
	}

	return s.client.getPaths(req)
}

func (c *Client) getPaths(req *http.Request) ([]Path, error) {
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", contentType)
	req.Header.Set("Accept-Encoding", contentEncoding)

	c.logger.Debug("make request", zap.String("method", req.Method), zap.String("url", req.URL.String()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	paths, err := DecodePaths(data)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("got career paths", zap.Int("count", len(paths)))

	return paths, nil
}

// DecodePaths parses a JSON array of career paths. A null body or a null
// entry is malformed; missing skill gaps become an empty list.
func DecodePaths(data []byte) ([]Path, error) {
	var items *[]*Path
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if items == nil {
		return nil, fmt.Errorf("%w: body is null", ErrMalformed)
	}

	paths := make([]Path, 0, len(*items))
	for i, item := range *items {
		if item == nil {
			return nil, fmt.Errorf("%w: entry %d is null", ErrMalformed, i)
		}
		item.SkillGaps = item.Gaps()
		paths = append(paths, *item)
	}

	return paths, nil
}
