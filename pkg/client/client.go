// Package client provides the paginated Ilios API client with token
// validation, filter/sort query construction, and response
// classification.
package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/stopfstedt/local-iliosapiclient/pkg/apierr"
	"github.com/stopfstedt/local-iliosapiclient/pkg/query"
	"github.com/stopfstedt/local-iliosapiclient/pkg/response"
	"github.com/stopfstedt/local-iliosapiclient/pkg/token"
	"github.com/stopfstedt/local-iliosapiclient/pkg/transport"
)

// Prometheus metrics for API client operations.
var (
	iliosRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ilios_requests_total",
		Help: "Total API requests by entity and outcome",
	}, []string{"entity", "outcome"})

	iliosRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ilios_request_duration_seconds",
		Help:    "API request duration in seconds by entity",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"entity"})

	iliosErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ilios_errors_total",
		Help: "Total classified failures by kind",
	}, []string{"kind"})

	iliosPagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ilios_pages_fetched_total",
		Help: "Total pages fetched by entity",
	}, []string{"entity"})

	iliosBatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ilios_id_batches_total",
		Help: "Total ID lookup batches issued by entity",
	}, []string{"entity"})
)

// DefaultBatchSize is the page size used when none is configured.
const DefaultBatchSize = 1000

// Client fetches entity records from a paginated REST API. Calls are
// strictly sequential and stateless; the supplied token is validated
// locally before any network traffic and never stored.
type Client struct {
	transport transport.Transport
	config    Config
	logger    zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the API root, without a trailing slash.
	BaseURL string

	// Transport issues the HTTP requests. Defaults to transport.NewHTTP.
	Transport transport.Transport

	// BatchSize is the default page size for List and GetByIDs.
	BatchSize int
}

// DefaultConfig returns a safe default configuration for the given API
// root.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:   baseURL,
		BatchSize: DefaultBatchSize,
	}
}

// New creates a new API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.BatchSize < 0 {
		return nil, fmt.Errorf("batch size must be >= 0 (got %d)", cfg.BatchSize)
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Transport == nil {
		cfg.Transport = transport.NewHTTP(transport.DefaultHTTPConfig())
	}

	return &Client{
		transport: cfg.Transport,
		config:    cfg,
		logger:    log.With().Str("component", "ilios-client").Logger(),
	}, nil
}

// ListOptions narrows and orders a List call. The zero value lists
// everything with the client's default page size.
type ListOptions struct {
	// Filters narrows the result set, rendered in insertion order.
	Filters *query.Filters

	// Sort orders the result set, rendered in insertion order.
	Sort *query.Sort

	// BatchSize overrides the page size for this call.
	BatchSize int
}

// List fetches every record of an entity type matching the given
// filters, paging through the result set until a short or empty page.
// Records are returned in server order across pages. Any failure aborts
// the call; partial pages are discarded.
func (c *Client) List(ctx context.Context, jwt, entityType string, opts ListOptions) ([]response.Record, error) {
	if err := token.Validate(jwt); err != nil {
		return nil, c.fail(err)
	}

	entity := strings.ToLower(entityType)
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = c.config.BatchSize
	}
	suffix := opts.Filters.Encode() + opts.Sort.Encode()

	c.logger.Debug().
		Str("entity", entity).
		Int("batch_size", batchSize).
		Msg("Starting paged list")

	start := time.Now()
	var records []response.Record
	pages := 0

	for offset := 0; ; offset += batchSize {
		// The URL is rebuilt from scratch every iteration so limit,
		// offset, and filter parameters appear exactly once per request.
		url := fmt.Sprintf("%s/%s?limit=%d&offset=%d%s",
			c.config.BaseURL, entity, batchSize, offset, suffix)

		env, err := c.get(ctx, jwt, entity, url)
		if err != nil {
			return nil, err
		}

		page, ok := env.Records(entity)
		if !ok {
			return nil, c.fail(classify(env, entity))
		}

		pages++
		iliosPagesTotal.WithLabelValues(entity).Inc()

		if len(page) == 0 {
			break
		}

		records = append(records, page...)

		c.logger.Debug().
			Str("entity", entity).
			Int("offset", offset).
			Int("page_records", len(page)).
			Msg("Fetched page")

		if len(page) < batchSize {
			break
		}
	}

	c.logger.Info().
		Str("entity", entity).
		Int("pages", pages).
		Int("records", len(records)).
		Dur("duration", time.Since(start)).
		Msg("List complete")

	return records, nil
}

// GetByID fetches a single record by ID. A non-numeric ID is not an
// error: it returns absent without any network call. An ID the server
// does not know also returns absent.
func (c *Client) GetByID(ctx context.Context, jwt, entityType, id string) (response.Record, bool, error) {
	if !query.IsNumeric(id) {
		return nil, false, nil
	}

	records, err := c.GetByIDs(ctx, jwt, entityType, query.OneID(id), 1)
	if err != nil {
		return nil, false, err
	}
	if len(records) == 0 {
		return nil, false, nil
	}
	return records[0], true, nil
}

// GetByIDs fetches the records selected by ids, issuing one request per
// slice of at most batchSize IDs. Records accumulate in request order,
// then in-page order. An empty selection (empty collection or
// non-numeric scalar) returns an empty result with zero network calls.
// An empty page contributes nothing; a missing entity key aborts the
// whole call.
func (c *Client) GetByIDs(ctx context.Context, jwt, entityType string, ids query.IDSet, batchSize int) ([]response.Record, error) {
	if err := token.Validate(jwt); err != nil {
		return nil, c.fail(err)
	}
	if ids.Empty() {
		return nil, nil
	}

	entity := strings.ToLower(entityType)
	if batchSize <= 0 {
		batchSize = c.config.BatchSize
	}

	var urls []string
	if id, ok := ids.Scalar(); ok {
		urls = append(urls, fmt.Sprintf("%s/%s?filters[id]=%s", c.config.BaseURL, entity, id))
	} else {
		list, _ := ids.IDs()
		for _, chunk := range query.Chunk(list, batchSize) {
			var b strings.Builder
			fmt.Fprintf(&b, "%s/%s?limit=%d", c.config.BaseURL, entity, len(chunk))
			for _, id := range chunk {
				fmt.Fprintf(&b, "&filters[id][]=%d", id)
			}
			urls = append(urls, b.String())
		}
	}

	start := time.Now()
	var records []response.Record

	for _, url := range urls {
		env, err := c.get(ctx, jwt, entity, url)
		if err != nil {
			return nil, err
		}

		batch, ok := env.Records(entity)
		if !ok {
			return nil, c.fail(classify(env, entity))
		}

		iliosBatchesTotal.WithLabelValues(entity).Inc()
		records = append(records, batch...)
	}

	c.logger.Info().
		Str("entity", entity).
		Int("batches", len(urls)).
		Int("records", len(records)).
		Dur("duration", time.Since(start)).
		Msg("ID lookup complete")

	return records, nil
}

// get issues one authorized GET and parses the body. Headers are reset
// and set fresh on the transport before every request.
func (c *Client) get(ctx context.Context, jwt, entity, url string) (response.Envelope, error) {
	c.transport.ResetHeaders()
	c.transport.SetHeaders([]string{"X-JWT-Authorization: Token " + jwt})

	start := time.Now()
	body, err := c.transport.Get(ctx, url)
	iliosRequestDuration.WithLabelValues(entity).Observe(time.Since(start).Seconds())

	if err != nil {
		iliosRequestsTotal.WithLabelValues(entity, "transport_error").Inc()
		c.logger.Error().Err(err).Str("entity", entity).Str("url", url).Msg("Request failed")
		return nil, fmt.Errorf("fetch %s: %w", entity, err)
	}

	env, err := response.Parse(body)
	if err != nil {
		iliosRequestsTotal.WithLabelValues(entity, "error").Inc()
		return nil, c.fail(err)
	}

	iliosRequestsTotal.WithLabelValues(entity, "ok").Inc()
	return env, nil
}

// fail records a classified failure and returns it unchanged.
func (c *Client) fail(err error) error {
	if kind := apierr.KindOf(err); kind != "" {
		iliosErrorsTotal.WithLabelValues(string(kind)).Inc()
		c.logger.Warn().Str("kind", string(kind)).Err(err).Msg("Classified failure")
	}
	return err
}

// classify explains an envelope that lacks the expected entity key:
// code/message envelopes are server-reported errors, anything else
// means the entity collection is missing from the response.
func classify(env response.Envelope, entity string) error {
	if code, message, ok := env.ErrorCode(); ok {
		return &apierr.Error{
			Kind:    apierr.KindAPIErrorWithCode,
			Entity:  entity,
			Code:    code,
			Message: message,
		}
	}
	return &apierr.Error{
		Kind:   apierr.KindEntityNotFound,
		Entity: entity,
	}
}
