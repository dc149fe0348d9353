package ingest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	feed "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/feed"
	prices "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/prices"
	interfaces "github.com/asep96/OSRS-GrandExchange-App/internal/domain/interfaces"
)

// Service runs the refresh operations. Each refresh either commits every row
// it produced or nothing; a failed fetch of any feed it needs aborts it before
// the store is touched.
type Service struct {
	source   interfaces.QuoteSource
	prices   interfaces.PriceRepository
	catalog  interfaces.CatalogRepository
	notifier interfaces.RefreshNotifier
	metrics  interfaces.RefreshMetrics
	log      logrus.FieldLogger
	now      func() time.Time
}

type Option func(*Service)

func WithNotifier(n interfaces.RefreshNotifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

func WithMetrics(m interfaces.RefreshMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Service) {
		s.log = log
	}
}

func NewService(source interfaces.QuoteSource, priceRepo interfaces.PriceRepository, catalogRepo interfaces.CatalogRepository, opts ...Option) *Service {
	s := &Service{
		source:  source,
		prices:  priceRepo,
		catalog: catalogRepo,
		metrics: nopMetrics{},
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		s.log = discard
	}
	s.log = s.log.WithField("component", "ingest")
	return s
}

// MarketRefresh reports the committed row counts of RefreshMarket.
type MarketRefresh struct {
	Prices    int `json:"prices"`
	Snapshots int `json:"snapshots"`
}

// RefreshLatestPrices replaces the cached latest quote of every item listed in
// the latest feed and returns the number of rows committed.
func (s *Service) RefreshLatestPrices(ctx context.Context) (int, error) {
	return s.run(ctx, feed.KindLatestPrices, func(ctx context.Context, log logrus.FieldLogger) (int, error) {
		doc, err := s.source.Fetch(ctx, feed.Latest)
		if err != nil {
			return 0, fmt.Errorf("fetch %s: %w", feed.Latest, err)
		}
		rows := LatestRows(doc)
		log.WithField("rows", len(rows)).Debug("latest feed decoded")
		return s.prices.UpsertLatest(ctx, rows)
	})
}

// RefreshIntervalSnapshots fetches the 5m, 1h and 24h feeds concurrently and
// writes the merged rows. If any feed fails nothing is written.
func (s *Service) RefreshIntervalSnapshots(ctx context.Context) (int, error) {
	return s.run(ctx, feed.KindIntervalSnapshots, func(ctx context.Context, log logrus.FieldLogger) (int, error) {
		docs, err := s.fetchWindows(ctx)
		if err != nil {
			return 0, err
		}
		rows := MergeSnapshots(docs)
		log.WithField("rows", len(rows)).Debug("window feeds merged")
		return s.prices.UpsertSnapshots(ctx, rows)
	})
}

// RefreshMapping replaces every catalog entry listed in the mapping feed.
// Entries missing from the feed are left untouched.
func (s *Service) RefreshMapping(ctx context.Context) (int, error) {
	return s.run(ctx, feed.KindMapping, func(ctx context.Context, log logrus.FieldLogger) (int, error) {
		records, err := s.source.FetchMapping(ctx)
		if err != nil {
			return 0, fmt.Errorf("fetch %s: %w", feed.Mapping, err)
		}
		entries := CatalogEntries(records)
		log.WithField("rows", len(entries)).Debug("mapping decoded")
		return s.catalog.UpsertEntries(ctx, entries)
	})
}

// RefreshMarket refreshes latest prices, then interval snapshots. A snapshot
// failure does not undo the already committed price refresh; the returned
// counts always match committed state.
func (s *Service) RefreshMarket(ctx context.Context) (MarketRefresh, error) {
	var result MarketRefresh

	n, err := s.RefreshLatestPrices(ctx)
	if err != nil {
		return result, err
	}
	result.Prices = n

	n, err = s.RefreshIntervalSnapshots(ctx)
	if err != nil {
		return result, err
	}
	result.Snapshots = n
	return result, nil
}

func (s *Service) fetchWindows(ctx context.Context) (map[prices.Window]*feed.Document, error) {
	fetched := make([]*feed.Document, len(prices.SnapshotWindows))
	g, gctx := errgroup.WithContext(ctx)
	for i, w := range prices.SnapshotWindows {
		g.Go(func() error {
			doc, err := s.source.Fetch(gctx, w.String())
			if err != nil {
				return fmt.Errorf("fetch %s: %w", w, err)
			}
			fetched[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	docs := make(map[prices.Window]*feed.Document, len(fetched))
	for i, w := range prices.SnapshotWindows {
		docs[w] = fetched[i]
	}
	return docs, nil
}

func (s *Service) run(ctx context.Context, kind feed.RefreshKind, fn func(context.Context, logrus.FieldLogger) (int, error)) (int, error) {
	runID := uuid.New()
	log := s.log.WithFields(logrus.Fields{"run_id": runID.String(), "kind": kind.String()})
	started := s.now()

	count, err := fn(ctx, log)
	if err != nil {
		s.metrics.RefreshFailed(kind.String())
		log.WithError(err).Error("refresh failed")
		return 0, err
	}

	finished := s.now()
	s.metrics.RefreshCompleted(kind.String(), count)
	log.WithFields(logrus.Fields{
		"count": count,
		"took":  finished.Sub(started).String(),
	}).Info("refresh committed")

	if s.notifier != nil {
		event := feed.RefreshEvent{
			ID:         runID,
			Kind:       kind,
			Count:      count,
			StartedAt:  started,
			FinishedAt: finished,
		}
		if err := s.notifier.PublishRefresh(ctx, event); err != nil {
			log.WithError(err).Warn("publish refresh event")
		}
	}
	return count, nil
}

type nopMetrics struct{}

func (nopMetrics) RefreshCompleted(string, int) {}
func (nopMetrics) RefreshFailed(string)         {}
