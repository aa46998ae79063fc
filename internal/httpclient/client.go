package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/you/tutorportal/domain"
	"github.com/you/tutorportal/internal/logger"
)

const RequestIDHeader = "X-Request-ID"

// Client is a JSON REST client bound to one base URL
type Client struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
}

// Options configures a Client. Zero values pick sane defaults.
type Options struct {
	Transport http.RoundTripper
	Jar       http.CookieJar
	Timeout   time.Duration
	Logger    logger.Logger
}

func New(baseURL string, opts Options) *Client {
	if opts.Transport == nil {
		opts.Transport = http.DefaultTransport
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: opts.Transport,
			Jar:       opts.Jar,
			Timeout:   opts.Timeout,
		},
		log: opts.Logger,
	}
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}

// Do sends a JSON request and decodes a 2xx JSON response into out (when non-nil).
// Non-2xx responses are returned as *domain.APIError.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s body: %w", method, path, err)
		}
	}
	contentType := ""
	if payload != nil {
		contentType = "application/json"
	}
	return c.send(ctx, method, path, query, payload, contentType, out)
}

// Multipart sends fields and files as multipart/form-data
func (c *Client) Multipart(ctx context.Context, method, path string, fields map[string]string, files []domain.FileUpload, out interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("failed to write field %s: %w", k, err)
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.FieldName, f.FileName))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return fmt.Errorf("failed to create part %s: %w", f.FieldName, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return fmt.Errorf("failed to write part %s: %w", f.FieldName, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close multipart body: %w", err)
	}

	return c.send(ctx, method, path, nil, buf.Bytes(), w.FormDataContentType(), out)
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte, contentType string, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("failed to build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp.StatusCode, data)
		c.log.Debug("backend rejected request", map[string]interface{}{
			"method": method, "path": path, "status": resp.StatusCode, "request_id": req.Header.Get(RequestIDHeader),
		})
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

type errorBody struct {
	Message      string `json:"message"`
	Error        string `json:"error"`
	IsRegistered *bool  `json:"isRegistered"`
}

func decodeError(status int, data []byte) *domain.APIError {
	apiErr := &domain.APIError{StatusCode: status, Body: data}
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err == nil {
		apiErr.Message = eb.Message
		if apiErr.Message == "" {
			apiErr.Message = eb.Error
		}
		apiErr.IsRegistered = eb.IsRegistered
	}
	return apiErr
}

// PageValues renders a page query; zero fields are omitted
func PageValues(q domain.PageQuery) url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	return v
}

// PathID joins a route prefix and an escaped id
func PathID(prefix string, id domain.ID, suffix ...string) string {
	p := prefix + "/" + url.PathEscape(id.String())
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}
