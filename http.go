package pocketbuddy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerUserAgent     = "User-Agent"
	contentTypeJSON     = "application/json"
	clientUserAgent     = "pocketbuddy-go/1.0.0"
)

// doRequest performs an HTTP request and handles common error cases.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	// Prepare request body
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	contentType := ""
	if body != nil {
		contentType = contentTypeJSON
	}
	return c.send(ctx, method, path, bodyReader, contentType, result)
}

// doMultipart performs a multipart/form-data upload with a single "file" field
// plus optional extra form fields.
func (c *Client) doMultipart(ctx context.Context, path, fileName string, file io.Reader, fields map[string]string, result interface{}) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to read upload file: %w", err)
	}
	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("failed to build multipart body: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}

	return c.send(ctx, http.MethodPost, path, &buf, mw.FormDataContentType(), result)
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string, result interface{}) error {
	// Build URL
	reqURL, err := url.JoinPath(c.baseURL, apiPrefix, path)
	if err != nil {
		return fmt.Errorf("failed to build URL: %w", err)
	}

	// Handle query params if path contains them
	if strings.Contains(path, "?") {
		reqURL = c.baseURL + apiPrefix + path
	}

	// Create request
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers
	req.Header.Set(headerUserAgent, clientUserAgent)
	if token := c.Token(); token != "" {
		req.Header.Set(headerAuthorization, "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set(headerContentType, contentType)
	}

	start := time.Now()

	// Execute request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logRequest(method, path, 0, time.Since(start))
		return transportError(err)
	}
	defer resp.Body.Close()

	c.logRequest(method, path, resp.StatusCode, time.Since(start))

	// Read response body
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(err)
	}

	// Check for errors
	if resp.StatusCode >= 400 {
		apiErr := parseError(resp.StatusCode, respBody)
		if apiErr.IsUnauthorized() {
			c.authFailed()
		}
		return apiErr
	}

	// Parse successful response
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

func (c *Client) logRequest(method, path string, status int, d time.Duration) {
	if c.logger == nil {
		return
	}
	c.logger.Debug("request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Duration("duration", d),
	)
}

// get performs a GET request.
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, result)
}

// post performs a POST request.
func (c *Client) post(ctx context.Context, path string, body interface{}, result interface{}) error {
	return c.doRequest(ctx, http.MethodPost, path, body, result)
}

// put performs a PUT request.
func (c *Client) put(ctx context.Context, path string, body interface{}, result interface{}) error {
	return c.doRequest(ctx, http.MethodPut, path, body, result)
}

// delete performs a DELETE request.
func (c *Client) delete(ctx context.Context, path string, result interface{}) error {
	return c.doRequest(ctx, http.MethodDelete, path, nil, result)
}
