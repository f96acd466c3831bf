package luckyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds JSON requests. Streaming requests are bounded only by
// their context because a fortune can take a while to finish generating.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of a failed response is read looking for an
// "error" field.
const maxErrorBody = 64 * 1024

// Client talks to the fortune service over plain HTTP/JSON.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
}

// NewClient returns a client rooted at baseURL. A nil httpClient uses
// http.DefaultClient; timeout <= 0 uses DefaultTimeout.
func NewClient(httpClient *http.Client, baseURL string, timeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
	}
}

// BaseURL returns the service root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// Evaluate prices a 4-digit number suffix.
func (c *Client) Evaluate(ctx context.Context, number string) (EvaluationResult, error) {
	var out EvaluationResult
	if err := ValidateNumber(number); err != nil {
		return out, err
	}
	err := c.postJSON(ctx, "evaluate", "/evaluate", map[string]string{"number": number}, &out)
	return out, err
}

// Fortune opens the streamed fortune reading for a birthdate. The caller must
// close the returned reader.
func (c *Client) Fortune(ctx context.Context, birthdate string) (io.ReadCloser, error) {
	if err := ValidateBirthdate(birthdate); err != nil {
		return nil, err
	}
	return c.postStream(ctx, "fortune", "/fortune", map[string]string{"birthdate": birthdate})
}

// NameAnalysis opens the streamed name analysis. The caller must close the
// returned reader.
func (c *Client) NameAnalysis(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	return c.postStream(ctx, "name_analysis", "/name_analysis", map[string]string{"name": name})
}

// LuckyDraw spins the wheel for a number. The server picks the prize.
func (c *Client) LuckyDraw(ctx context.Context, number string) (DrawResult, error) {
	var out DrawResult
	if err := ValidateNumber(number); err != nil {
		return out, err
	}
	err := c.postJSON(ctx, "lucky_draw", "/lucky_draw", map[string]string{"number": number}, &out)
	return out, err
}

// GenerateShareCard renders a share image and returns it as a data URI.
func (c *Client) GenerateShareCard(ctx context.Context, req ShareCardRequest) (ShareCard, error) {
	var out ShareCard
	err := c.postJSON(ctx, "generate_share_card", "/generate_share_card", req, &out)
	if err == nil && out.Image == "" {
		err = fmt.Errorf("luckyapi: generate_share_card: empty image")
	}
	return out, err
}

// Rankings fetches the current leaderboard snapshot.
func (c *Client) Rankings(ctx context.Context) (RankingSnapshot, error) {
	var out RankingSnapshot
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rankings", nil)
	if err != nil {
		return out, fmt.Errorf("luckyapi: rankings: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return out, fmt.Errorf("luckyapi: rankings: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus("rankings", resp); err != nil {
		return out, err
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("luckyapi: rankings: decode: %w", err)
	}
	return out, nil
}

// AddToRanking records an evaluation on the leaderboard. The response body is
// not consumed beyond its status.
func (c *Client) AddToRanking(ctx context.Context, sub RankingSubmission) error {
	return c.postJSON(ctx, "add_to_ranking", "/add_to_ranking", sub, nil)
}

func (c *Client) newPost(ctx context.Context, op, path string, body any) (*http.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("luckyapi: %s: marshal: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("luckyapi: %s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) postJSON(ctx context.Context, op, path string, body, dest any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.newPost(ctx, op, path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("luckyapi: %s: %w", op, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(op, resp); err != nil {
		return err
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("luckyapi: %s: decode: %w", op, err)
	}
	return nil
}

func (c *Client) postStream(ctx context.Context, op, path string, body any) (io.ReadCloser, error) {
	req, err := c.newPost(ctx, op, path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/plain, text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("luckyapi: %s: %w", op, err)
	}
	if err := checkStatus(op, resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return &streamBody{op: op, rc: resp.Body}, nil
}

// checkStatus turns a non-2xx response into an *APIError, pulling the
// "error" field out of a JSON body when there is one.
func checkStatus(op string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	apiErr := &APIError{Op: op, StatusCode: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil {
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			apiErr.Message = strings.TrimSpace(eb.Error)
		}
	}
	return apiErr
}

// streamBody tags read failures with ErrStream so callers can tell a broken
// stream from a failed request.
type streamBody struct {
	op string
	rc io.ReadCloser
}

func (s *streamBody) Read(p []byte) (int, error) {
	n, err := s.rc.Read(p)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w: %s: %w", ErrStream, s.op, err)
	}
	return n, err
}

func (s *streamBody) Close() error {
	return s.rc.Close()
}
