// Package ssc is an HTTP client for the Satellite Situation Center web
// service. Request and response bodies are SSC XML documents.
package ssc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/signalsfoundry/ssc-conjunctions/internal/logging"
	"github.com/signalsfoundry/ssc-conjunctions/internal/observability"
	"github.com/signalsfoundry/ssc-conjunctions/internal/sscxml"
	"github.com/signalsfoundry/ssc-conjunctions/model"
)

const (
	// DefaultEndpoint is the public SSC REST service.
	DefaultEndpoint = "https://sscweb.gsfc.nasa.gov/WS/sscr/2"
	// UserAgent is sent on every request.
	UserAgent = "ConjunctionExample"

	contentTypeXML = "application/xml"
	// maxErrorBody bounds how much of a failed response is kept.
	maxErrorBody = 64 << 10
)

// HTTPDoer is the subset of *http.Client the client needs.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client calls one SSC endpoint. It holds no mutable state after
// construction and is safe for concurrent use.
type Client struct {
	endpoint  string
	userAgent string
	http      HTTPDoer
	log       logging.Logger
	collector *observability.ClientCollector
	diag      io.Writer
	enc       *sscxml.Encoder
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default instrumented *http.Client.
func WithHTTPClient(h HTTPDoer) Option { return func(c *Client) { c.http = h } }

// WithLogger sets the logger used for call and diagnostic messages.
func WithLogger(l logging.Logger) Option { return func(c *Client) { c.log = l } }

// WithCollector records per-operation metrics.
func WithCollector(col *observability.ClientCollector) Option {
	return func(c *Client) { c.collector = col }
}

// WithDiagnostics writes every POSTed request document and its response to w
// as indented XML.
func WithDiagnostics(w io.Writer) Option { return func(c *Client) { c.diag = w } }

// WithUserAgent overrides UserAgent.
func WithUserAgent(ua string) Option { return func(c *Client) { c.userAgent = ua } }

// NewClient returns a client for endpoint, e.g. DefaultEndpoint.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return nil, errors.New("ssc: endpoint is required")
	}
	c := &Client{endpoint: endpoint, userAgent: UserAgent}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logging.Noop()
	}
	if c.userAgent == "" {
		c.userAgent = UserAgent
	}
	if c.http == nil {
		c.http = &http.Client{Transport: observability.NewInstrumentedTransport(nil, c.collector)}
	}
	c.enc = sscxml.NewEncoder(c.log)
	return c, nil
}

// Endpoint returns the base URL without a trailing slash.
func (c *Client) Endpoint() string { return c.endpoint }

// GetObservatories lists the observatories the service has ephemeris for, in
// the order the service returns them.
func (c *Client) GetObservatories(ctx context.Context) ([]model.ObservatoryDescription, error) {
	var resp model.ObservatoryResponse
	if err := c.get(ctx, "observatories", "/observatories/", &resp); err != nil {
		return nil, err
	}
	c.collector.SetResultItems("observatories", len(resp.Observatories))
	return resp.Observatories, nil
}

// GetGroundStations lists the ground stations known to the service.
func (c *Client) GetGroundStations(ctx context.Context) ([]model.GroundStation, error) {
	var resp model.GroundStationResponse
	if err := c.get(ctx, "groundStations", "/groundStations/", &resp); err != nil {
		return nil, err
	}
	c.collector.SetResultItems("groundStations", len(resp.GroundStations))
	return resp.GroundStations, nil
}

// GetConjunctions submits req and returns the result portion of the
// response. A failed diagnostic dump yields a nil result and a
// *DiagnosticError.
func (c *Client) GetConjunctions(ctx context.Context, req *model.QueryRequest) (*model.QueryResult, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: nil query request", ErrEncode)
	}
	var resp model.QueryResponse
	if err := c.post(ctx, "conjunctions", "/conjunctions/", req, &resp); err != nil {
		return nil, err
	}
	if resp.Result == nil {
		return nil, fmt.Errorf("%w: response has no QueryResult", ErrDecode)
	}
	c.collector.SetResultItems("conjunctions", len(resp.Result.Conjunctions))
	return resp.Result, nil
}

// GetLocations submits a location data request.
func (c *Client) GetLocations(ctx context.Context, req *model.DataRequest) (*model.DataResult, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: nil data request", ErrEncode)
	}
	var resp model.DataResponse
	if err := c.post(ctx, "locations", "/locations", req, &resp); err != nil {
		return nil, err
	}
	if resp.Result == nil {
		return nil, fmt.Errorf("%w: response has no DataResult", ErrDecode)
	}
	c.collector.SetResultItems("locations", len(resp.Result.Data))
	return resp.Result, nil
}

// GetGraphs submits a graph request and returns the generated file list.
func (c *Client) GetGraphs(ctx context.Context, req *model.GraphRequest) (*model.FileResult, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: nil graph request", ErrEncode)
	}
	var resp model.FileResponse
	if err := c.post(ctx, "graphs", "/graphs", req, &resp); err != nil {
		return nil, err
	}
	if resp.Result == nil {
		return nil, fmt.Errorf("%w: response has no FileResult", ErrDecode)
	}
	c.collector.SetResultItems("graphs", len(resp.Result.Files))
	return resp.Result, nil
}

func (c *Client) get(ctx context.Context, op, path string, out any) error {
	ctx, log := c.begin(ctx, op)
	body, err := c.do(ctx, log, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := sscxml.Unmarshal(body, out); err != nil {
		log.Warn(ctx, "undecodable response", logging.Err(err))
		return fmt.Errorf("%w: %s: %v", ErrDecode, op, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, op, path string, doc, out any) error {
	ctx, log := c.begin(ctx, op)
	payload, err := sscxml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncode, op, err)
	}
	if err := c.dump(doc); err != nil {
		log.Error(ctx, "request dump failed; call aborted", logging.Err(err))
		return &DiagnosticError{Stage: StageRequest, Err: err}
	}

	body, err := c.do(ctx, log, http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	if err := sscxml.Unmarshal(body, out); err != nil {
		log.Warn(ctx, "undecodable response", logging.Err(err))
		return fmt.Errorf("%w: %s: %v", ErrDecode, op, err)
	}
	if err := c.dump(out); err != nil {
		log.Error(ctx, "response dump failed; result discarded", logging.Err(err))
		return &DiagnosticError{Stage: StageResponse, RemoteCompleted: true, Err: err}
	}
	return nil
}

func (c *Client) begin(ctx context.Context, op string) (context.Context, logging.Logger) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, _ = logging.EnsureRequestID(ctx)
	ctx = observability.WithOperation(ctx, op)
	return ctx, c.log.With(logging.String("operation", op))
}

func (c *Client) dump(doc any) error {
	if c.diag == nil {
		return nil
	}
	return c.enc.Encode(c.diag, doc)
}

// do performs one HTTP exchange and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, log logging.Logger, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", contentTypeXML)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", logging.RequestIDFromContext(ctx))
	if payload != nil {
		req.Header.Set("Content-Type", contentTypeXML)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Error(ctx, "ssc call failed", logging.String("url", req.URL.String()), logging.Err(err))
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, req.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		serr := &StatusError{StatusCode: resp.StatusCode, Body: raw, Title: pageTitle(raw)}
		log.Warn(ctx, "ssc call rejected",
			logging.Int("status", resp.StatusCode),
			logging.String("title", serr.Title),
			logging.Duration("elapsed", time.Since(start)),
		)
		return nil, serr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}
	log.Debug(ctx, "ssc call completed",
		logging.Int("status", resp.StatusCode),
		logging.Int("bytes", len(body)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return body, nil
}

func pageTitle(body []byte) string {
	if !sscxml.IsXHTML(body) {
		return ""
	}
	var page model.HTML
	if err := sscxml.Unmarshal(body, &page); err != nil {
		return ""
	}
	return page.Summary()
}
