package wiki

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/asep96/OSRS-GrandExchange-App/internal/config"
	"github.com/asep96/OSRS-GrandExchange-App/internal/domain/apperr"
	feed "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/feed"
	history "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/history"
	interfaces "github.com/asep96/OSRS-GrandExchange-App/internal/domain/interfaces"
)

const maxErrorBody = 512

var (
	_ interfaces.QuoteSource      = (*Client)(nil)
	_ interfaces.TimeseriesSource = (*Client)(nil)
)

// Client talks to the OSRS wiki real-time prices API. It never retries; the
// caller decides what a failed fetch means.
type Client struct {
	http    *resty.Client
	metrics interfaces.FetchMetrics
}

type Option func(*Client)

func WithMetrics(m interfaces.FetchMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func NewClient(cfg config.WikiConfig, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.UserAgent) == "" {
		return nil, errors.New("wiki client: user agent is required")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("wiki client: base url is required")
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		httpClient.SetTimeout(cfg.Timeout)
	}

	c := &Client{http: httpClient}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Fetch retrieves a quote feed such as "latest", "5m", "1h" or "24h".
func (c *Client) Fetch(ctx context.Context, name string) (*feed.Document, error) {
	var payload struct {
		Data      map[string]json.RawMessage `json:"data"`
		Timestamp json.RawMessage            `json:"timestamp"`
	}
	if err := c.get(ctx, name, "/"+name, nil, decodeJSON(&payload)); err != nil {
		return nil, err
	}

	doc := &feed.Document{
		Name:      name,
		Items:     make(map[string]feed.Quote, len(payload.Data)),
		Timestamp: coerceInt(payload.Timestamp),
	}
	for key, raw := range payload.Data {
		doc.Items[key] = quoteFrom(decodeFields(raw))
	}
	return doc, nil
}

// FetchMapping retrieves the catalog mapping. Records without an integer id
// are dropped.
func (c *Client) FetchMapping(ctx context.Context) ([]feed.MappingRecord, error) {
	var raw []json.RawMessage
	if err := c.get(ctx, feed.Mapping, "/"+feed.Mapping, nil, decodeJSON(&raw)); err != nil {
		return nil, err
	}

	records := make([]feed.MappingRecord, 0, len(raw))
	for _, item := range raw {
		f := decodeFields(item)
		id := f.int("id")
		if !id.Valid {
			continue
		}
		records = append(records, feed.MappingRecord{
			ID:       id.Int64,
			Name:     f.string("name").ValueOrZero(),
			Members:  f.truthy("members"),
			Examine:  f.string("examine"),
			HighAlch: f.int("highalch"),
			LowAlch:  f.int("lowalch"),
			Limit:    f.int("limit"),
		})
	}
	return records, nil
}

// FetchTimeseries retrieves the bucketed history of one item. The upstream
// answers either with a bare array or with a {"data": [...]} wrapper; bucket
// order is preserved.
func (c *Client) FetchTimeseries(ctx context.Context, itemID int64, step history.Timestep) ([]history.Bucket, error) {
	query := map[string]string{
		"id":       strconv.FormatInt(itemID, 10),
		"timestep": step.String(),
	}
	var raw []json.RawMessage
	err := c.get(ctx, feed.Timeseries, "/"+feed.Timeseries, query, func(body []byte) error {
		entries, err := timeseriesEntries(body)
		raw = entries
		return err
	})
	if err != nil {
		return nil, err
	}

	buckets := make([]history.Bucket, 0, len(raw))
	for _, entry := range raw {
		f := decodeFields(entry)
		buckets = append(buckets, history.Bucket{
			Timestamp:       f.float("timestamp"),
			AvgHighPrice:    f.float("avgHighPrice"),
			AvgLowPrice:     f.float("avgLowPrice"),
			HighPriceVolume: f.float("highPriceVolume"),
			LowPriceVolume:  f.float("lowPriceVolume"),
		})
	}
	return buckets, nil
}

func timeseriesEntries(body []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.New("decode body: empty response")
	}
	switch trimmed[0] {
	case '[':
		var entries []json.RawMessage
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("decode body: %w", err)
		}
		return entries, nil
	case '{':
		var wrapped struct {
			Data []json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, fmt.Errorf("decode body: %w", err)
		}
		return wrapped.Data, nil
	default:
		return nil, errors.New("decode body: expected a JSON array or object")
	}
}

func quoteFrom(f fields) feed.Quote {
	return feed.Quote{
		High:            f.float("high"),
		Low:             f.float("low"),
		HighTime:        f.int("highTime"),
		LowTime:         f.int("lowTime"),
		AvgHighPrice:    f.float("avgHighPrice"),
		AvgLowPrice:     f.float("avgLowPrice"),
		HighPriceVolume: f.int("highPriceVolume"),
		LowPriceVolume:  f.int("lowPriceVolume"),
	}
}

// get fetches path and hands the body to decode. The fetch is observed once
// decoding is done, so a 2xx response with an unreadable body counts as failed.
func (c *Client) get(ctx context.Context, feedName, path string, query map[string]string, decode func([]byte) error) (err error) {
	started := time.Now()
	defer func() {
		if c.metrics != nil {
			c.metrics.FetchObserved(feedName, time.Since(started), err)
		}
	}()

	body, err := c.do(ctx, feedName, path, query)
	if err != nil {
		return err
	}
	if err := decode(body); err != nil {
		return &apperr.UpstreamError{Feed: feedName, Err: err}
	}
	return nil
}

func decodeJSON(v any) func([]byte) error {
	return func(body []byte) error {
		if err := json.Unmarshal(body, v); err != nil {
			return fmt.Errorf("decode body: %w", err)
		}
		return nil
	}
}

func (c *Client) do(ctx context.Context, feedName, path string, query map[string]string) ([]byte, error) {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	resp, err := req.Get(path)
	if err != nil {
		return nil, &apperr.UpstreamError{Feed: feedName, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &apperr.UpstreamError{
			Feed:   feedName,
			Status: resp.StatusCode(),
			Body:   truncate(resp.String(), maxErrorBody),
		}
	}
	return resp.Body(), nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
