package ingest

import (
	"cmp"
	"slices"
	"strconv"

	catalog "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/catalog"
	feed "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/feed"
	prices "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/prices"
)

// MergeSnapshots folds the averaged window feeds into one IntervalSnapshot per
// item seen in any of them. A window whose feed is missing, or whose feed does
// not list the item, stays null on that row. Keys that are not integers are
// dropped. Rows come back ordered by item id.
func MergeSnapshots(docs map[prices.Window]*feed.Document) []prices.IntervalSnapshot {
	rows := make(map[int64]*prices.IntervalSnapshot)
	for _, w := range prices.SnapshotWindows {
		doc := docs[w]
		if doc == nil {
			continue
		}
		for key, quote := range doc.Items {
			id, ok := parseItemID(key)
			if !ok {
				continue
			}
			row, seen := rows[id]
			if !seen {
				row = &prices.IntervalSnapshot{ItemID: id}
				rows[id] = row
			}
			*row.Window(w) = prices.WindowQuote{
				AvgHighPrice:    quote.AvgHighPrice,
				HighPriceVolume: quote.HighPriceVolume,
				AvgLowPrice:     quote.AvgLowPrice,
				LowPriceVolume:  quote.LowPriceVolume,
			}
		}
	}

	out := make([]prices.IntervalSnapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	slices.SortFunc(out, func(a, b prices.IntervalSnapshot) int {
		return cmp.Compare(a.ItemID, b.ItemID)
	})
	return out
}

// LatestRows turns the latest feed into cache rows, ordered by item id.
func LatestRows(doc *feed.Document) []prices.Latest {
	if doc == nil {
		return nil
	}
	out := make([]prices.Latest, 0, len(doc.Items))
	seen := make(map[int64]int, len(doc.Items))
	for key, quote := range doc.Items {
		id, ok := parseItemID(key)
		if !ok {
			continue
		}
		row := prices.Latest{
			ItemID:   id,
			High:     quote.High,
			Low:      quote.Low,
			HighTime: quote.HighTime,
			LowTime:  quote.LowTime,
		}
		if i, dup := seen[id]; dup {
			out[i] = row
			continue
		}
		seen[id] = len(out)
		out = append(out, row)
	}
	slices.SortFunc(out, func(a, b prices.Latest) int {
		return cmp.Compare(a.ItemID, b.ItemID)
	})
	return out
}

// CatalogEntries converts mapping records into catalog entries. A later record
// for the same id replaces an earlier one.
func CatalogEntries(records []feed.MappingRecord) []catalog.Entry {
	out := make([]catalog.Entry, 0, len(records))
	seen := make(map[int64]int, len(records))
	for _, r := range records {
		entry := catalog.Entry{
			ID:       r.ID,
			Name:     r.Name,
			Members:  r.Members,
			Examine:  r.Examine,
			HighAlch: r.HighAlch,
			LowAlch:  r.LowAlch,
			Limit:    r.Limit,
		}
		if i, dup := seen[r.ID]; dup {
			out[i] = entry
			continue
		}
		seen[r.ID] = len(out)
		out = append(out, entry)
	}
	slices.SortFunc(out, func(a, b catalog.Entry) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

func parseItemID(key string) (int64, bool) {
	id, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
