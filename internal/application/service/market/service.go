package market

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/asep96/OSRS-GrandExchange-App/internal/domain/apperr"
	catalog "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/catalog"
	prices "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/prices"
	interfaces "github.com/asep96/OSRS-GrandExchange-App/internal/domain/interfaces"
)

const (
	SearchLimit    = 25
	MaxQueryLength = 64
	RankingLimit   = 10
)

var unsafeQueryChars = regexp.MustCompile(`[^\p{L}\p{N}\s'(),\-:]`)

// SanitizeQuery strips everything except letters, digits, whitespace and
// '(),-: so the result is safe to embed in a LIKE pattern.
func SanitizeQuery(q string) string {
	return unsafeQueryChars.ReplaceAllString(q, "")
}

// RuneCost names the two reference items whose cached high prices make up the
// cost of one high-alchemy cast.
type RuneCost struct {
	NatureName  string
	FireName    string
	FirePerCast int
}

// LatestQuote is a cached latest price plus its freshness at read time.
type LatestQuote struct {
	prices.Latest
	IsFresh bool `json:"isFresh"`
}

type Service struct {
	catalog interfaces.CatalogRepository
	prices  interfaces.PriceRepository
	runes   RuneCost
	maxAge  time.Duration
	now     func() time.Time
}

func NewService(catalogRepo interfaces.CatalogRepository, priceRepo interfaces.PriceRepository, runes RuneCost, maxAge time.Duration) *Service {
	return &Service{
		catalog: catalogRepo,
		prices:  priceRepo,
		runes:   runes,
		maxAge:  maxAge,
		now:     time.Now,
	}
}

// Search returns up to SearchLimit catalog entries whose name contains the
// query, alphabetically. It returns the trimmed query it searched for.
func (s *Service) Search(ctx context.Context, query string) ([]catalog.Entry, string, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, "", apperr.Validation("query", "is required")
	}
	if utf8.RuneCountInString(trimmed) > MaxQueryLength {
		return nil, trimmed, apperr.Validation("query", "too long (max 64 chars)")
	}

	entries, err := s.catalog.SearchByName(ctx, SanitizeQuery(trimmed), SearchLimit)
	if err != nil {
		return nil, trimmed, err
	}
	return entries, trimmed, nil
}

func (s *Service) LatestPrice(ctx context.Context, itemID int64) (*LatestQuote, error) {
	if err := validateID(itemID); err != nil {
		return nil, err
	}
	latest, err := s.prices.GetLatest(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return &LatestQuote{
		Latest:  *latest,
		IsFresh: prices.IsFresh(latest.UpdatedAt, s.maxAge, s.now()),
	}, nil
}

func (s *Service) Profile(ctx context.Context, itemID int64) (*catalog.Profile, error) {
	if err := validateID(itemID); err != nil {
		return nil, err
	}
	return s.catalog.GetProfile(ctx, itemID)
}

func (s *Service) TopExpensive(ctx context.Context) ([]prices.ExpensiveItem, error) {
	return s.prices.TopExpensive(ctx, RankingLimit)
}

func (s *Service) TopSpread(ctx context.Context) ([]prices.SpreadItem, error) {
	return s.prices.TopSpread(ctx, RankingLimit)
}

// TopAlchProfit ranks items by high-alchemy profit. When either reference
// rune has no cached high price the cast cost is unknown and the ranking is
// empty.
func (s *Service) TopAlchProfit(ctx context.Context) ([]prices.AlchItem, error) {
	runeCost, ok, err := s.runeCost(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []prices.AlchItem{}, nil
	}
	return s.prices.TopAlchProfit(ctx, runeCost, RankingLimit)
}

func (s *Service) runeCost(ctx context.Context) (float64, bool, error) {
	nature, err := s.prices.HighByName(ctx, s.runes.NatureName)
	if err != nil {
		return 0, false, err
	}
	fire, err := s.prices.HighByName(ctx, s.runes.FireName)
	if err != nil {
		return 0, false, err
	}
	if !nature.Valid || !fire.Valid {
		return 0, false, nil
	}
	return nature.Float64 + float64(s.runes.FirePerCast)*fire.Float64, true, nil
}

func validateID(itemID int64) error {
	if itemID < 0 {
		return apperr.Validation("id", "must be a non-negative integer")
	}
	return nil
}
