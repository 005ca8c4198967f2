package rfsapi

import (
	"compress/gzip"
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/studiowebux/doh/internal/logging"
	"github.com/studiowebux/doh/internal/types"
	"github.com/studiowebux/doh/internal/version"
)

// DefaultTimeout bounds connecting and waiting for response headers
const DefaultTimeout = 30 * time.Second

// Config holds client configuration.
type Config struct {
	// Timeout bounds dialing and the wait for response headers.
	// Bodies are never cut off, so long downloads survive.
	Timeout            time.Duration
	UserAgent          string
	InsecureSkipVerify bool
	CAFile             string
}

// Client talks to a raw filesystem API server
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// Status is the outcome of a write request
type Status struct {
	Code int
	// Text is the full status line, e.g. "201 Created"
	Text string
}

// Success reports whether the status is 2xx
func (s Status) Success() bool {
	return IsSuccessStatus(s.Code)
}

func (s Status) String() string {
	return s.Text
}

// RawResponse is the body of a raw GET
type RawResponse struct {
	Body io.ReadCloser
	// Size is the decoded length when known, -1 otherwise
	Size   int64
	Status Status
}

// New creates a client
func New(cfg Config) (*Client, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = version.UserAgent()
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   cfg.Timeout,
		ResponseHeaderTimeout: cfg.Timeout,
		// Accept-Encoding is set by hand so raw bodies can report whether
		// their Content-Length is the decoded size
		DisableCompression: true,
	}

	if cfg.InsecureSkipVerify || cfg.CAFile != "" {
		tlsCfg := &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify,
		}

		if cfg.CAFile != "" {
			caCert, err := os.ReadFile(cfg.CAFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read CA certificate: %w", err)
			}
			caCertPool := x509.NewCertPool()
			if !caCertPool.AppendCertsFromPEM(caCert) {
				return nil, fmt.Errorf("failed to parse CA certificate")
			}
			tlsCfg.RootCAs = caCertPool
		}

		transport.TLSClientConfig = tlsCfg
	}

	return &Client{
		httpClient: &http.Client{Transport: transport},
		userAgent:  cfg.UserAgent,
	}, nil
}

// FetchListing GETs the structured description of u
func (c *Client) FetchListing(ctx context.Context, u *url.URL) (*types.Listing, error) {
	resp, err := c.get(ctx, u, true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: u.String(), Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	listing, err := DecodeListing(body)
	if err != nil {
		logging.Debug("unparsable listing",
			logging.String("url", u.String()),
			logging.Int("bytes", len(body)),
			logging.Err(err))
		return nil, &ProtocolError{URL: u.String(), Err: err}
	}

	logging.Debug("listing fetched",
		logging.String("url", u.String()),
		logging.Int("entries", len(listing.Files)),
		logging.Bool("is_file", listing.IsFile),
		logging.Bool("writes_supported", listing.WritesSupported))
	return listing, nil
}

// FetchRaw GETs the bytes of u. The caller closes the body.
func (c *Client) FetchRaw(ctx context.Context, u *url.URL) (*RawResponse, error) {
	resp, err := c.get(ctx, u, false)
	if err != nil {
		return nil, err
	}

	raw := &RawResponse{
		Body:   resp.Body,
		Size:   resp.ContentLength,
		Status: Status{Code: resp.StatusCode, Text: resp.Status},
	}
	if _, ok := resp.Body.(*gzipReadCloser); ok {
		raw.Size = -1
	}
	return raw, nil
}

// Upload PUTs size bytes from body to u. size may be -1 when unknown.
func (c *Client) Upload(ctx context.Context, u *url.URL, body io.Reader, size int64) (Status, error) {
	req, err := c.newRequest(ctx, http.MethodPut, u, body)
	if err != nil {
		return Status{}, err
	}
	req.ContentLength = size
	if size == 0 {
		req.Body = http.NoBody
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	return c.write(req)
}

// Delete removes u
func (c *Client) Delete(ctx context.Context, u *url.URL) (Status, error) {
	req, err := c.newRequest(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return Status{}, err
	}
	return c.write(req)
}

func (c *Client) newRequest(ctx context.Context, method string, u *url.URL, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	return req, nil
}

func (c *Client) get(ctx context.Context, u *url.URL, structured bool) (*http.Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(HeaderName, Header(structured).String())
	req.Header.Set("Accept-Encoding", "gzip")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Debug("request failed", logging.String("url", u.String()), logging.Err(err))
		return nil, &TransportError{URL: u.String(), Err: err}
	}

	logging.Debug("response",
		logging.String("method", req.Method),
		logging.String("url", u.String()),
		logging.Int("status", resp.StatusCode),
		logging.Bool("structured", structured),
		logging.Duration("elapsed", time.Since(start)))

	if !IsSuccessStatus(resp.StatusCode) {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		resp.Body.Close()
		return nil, &StatusError{URL: u.String(), Code: resp.StatusCode, Text: resp.Status}
	}

	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gr, err := gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, &TransportError{URL: u.String(), Err: fmt.Errorf("gzip decode: %w", err)}
		}
		resp.Body = &gzipReadCloser{gr: gr, body: resp.Body}
	}

	return resp, nil
}

func (c *Client) write(req *http.Request) (Status, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Debug("request failed", logging.String("method", req.Method), logging.String("url", req.URL.String()), logging.Err(err))
		return Status{}, &TransportError{URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	logging.Debug("response",
		logging.String("method", req.Method),
		logging.String("url", req.URL.String()),
		logging.Int("status", resp.StatusCode))

	return Status{Code: resp.StatusCode, Text: resp.Status}, nil
}

// IsSuccessStatus checks if HTTP status is successful (2xx)
func IsSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}

type gzipReadCloser struct {
	gr   *gzip.Reader
	body io.ReadCloser
}

func (g *gzipReadCloser) Read(p []byte) (int, error) {
	return g.gr.Read(p)
}

func (g *gzipReadCloser) Close() error {
	g.gr.Close()
	return g.body.Close()
}
