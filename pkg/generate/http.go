package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// maxImageBytes caps how much of a response body is read when decoding.
// A 768x768 PNG is well under 4 MB; anything larger is not an image we
// asked for.
const maxImageBytes = 16 << 20

// Client calls a remote inference endpoint over HTTP. The endpoint
// accepts a JSON body {prompt, width, height, seed?} and responds with
// raw PNG (or JPEG) bytes.
type Client struct {
	URL     string
	Token   string
	Timeout time.Duration
	HTTP    *http.Client
	Log     *slog.Logger
}

// NewClient creates a Client for the given endpoint. timeout bounds each
// individual generation call, including server-side cold starts.
func NewClient(url, token string, timeout time.Duration) *Client {
	return &Client{
		URL:     url,
		Token:   token,
		Timeout: timeout,
		HTTP:    &http.Client{},
		Log:     slog.Default(),
	}
}

// generateRequest is the wire format of a generation call.
type generateRequest struct {
	Prompt string `json:"prompt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Seed   *int64 `json:"seed,omitempty"`
}

// Generate posts the request and decodes the returned image bytes.
// All failures come back as *Error.
func (c *Client) Generate(ctx context.Context, req Request) (image.Image, error) {
	start := time.Now()

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	body, err := json.Marshal(generateRequest{
		Prompt: req.Prompt,
		Width:  req.Width,
		Height: req.Height,
		Seed:   req.Seed,
	})
	if err != nil {
		return nil, &Error{Prompt: req.Prompt, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Prompt: req.Prompt, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, &Error{Prompt: req.Prompt, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Read a little of the body for the error message, then drain.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, &Error{
			Prompt: req.Prompt,
			Err:    fmt.Errorf("backend returned %s: %s", resp.Status, bytes.TrimSpace(snippet)),
		}
	}

	img, format, err := image.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, &Error{Prompt: req.Prompt, Err: fmt.Errorf("decode image: %w", err)}
	}

	c.Log.Debug("generated image",
		"prompt", req.Prompt,
		"format", format,
		"size", fmt.Sprintf("%dx%d", req.Width, req.Height),
		"elapsed", time.Since(start))

	return img, nil
}
