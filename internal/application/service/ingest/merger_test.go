package ingest

import (
	"testing"

	"github.com/guregu/null/v6"

	feed "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/feed"
	prices "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/prices"
)

func windowDoc(name string, items map[string]feed.Quote) *feed.Document {
	return &feed.Document{Name: name, Items: items}
}

func TestMergeSnapshotsIsUnionOfFeeds(t *testing.T) {
	docs := map[prices.Window]*feed.Document{
		prices.Window5m: windowDoc("5m", map[string]feed.Quote{
			"2":   {AvgHighPrice: null.FloatFrom(180), HighPriceVolume: null.IntFrom(1000)},
			"561": {AvgLowPrice: null.FloatFrom(105), LowPriceVolume: null.IntFrom(40)},
		}),
		prices.Window1h: windowDoc("1h", map[string]feed.Quote{
			"2":    {AvgHighPrice: null.FloatFrom(179)},
			"4151": {AvgHighPrice: null.FloatFrom(1500000), AvgLowPrice: null.FloatFrom(1490000)},
		}),
		prices.Window24h: windowDoc("24h", map[string]feed.Quote{
			"abc":  {AvgHighPrice: null.FloatFrom(1)},
			"12.5": {AvgHighPrice: null.FloatFrom(1)},
		}),
	}

	rows := MergeSnapshots(docs)
	if len(rows) != 3 {
		t.Fatalf("expected union of 3 valid ids, got %d: %+v", len(rows), rows)
	}
	wantIDs := []int64{2, 561, 4151}
	for i, id := range wantIDs {
		if rows[i].ItemID != id {
			t.Fatalf("row %d: expected id %d, got %d", i, id, rows[i].ItemID)
		}
	}

	cannonball := rows[0]
	if cannonball.FiveMin.AvgHighPrice.Float64 != 180 || cannonball.FiveMin.HighPriceVolume.Int64 != 1000 {
		t.Fatalf("5m fields not copied: %+v", cannonball.FiveMin)
	}
	if cannonball.OneHour.AvgHighPrice.Float64 != 179 {
		t.Fatalf("1h fields not copied: %+v", cannonball.OneHour)
	}
	if cannonball.OneDay != (prices.WindowQuote{}) {
		t.Fatalf("absent 24h window must be all null: %+v", cannonball.OneDay)
	}

	whip := rows[2]
	if whip.FiveMin != (prices.WindowQuote{}) || whip.OneDay != (prices.WindowQuote{}) {
		t.Fatalf("whip only appears in 1h: %+v", whip)
	}
}

func TestMergeSnapshotsMissingFeed(t *testing.T) {
	docs := map[prices.Window]*feed.Document{
		prices.Window24h: windowDoc("24h", map[string]feed.Quote{
			"2": {AvgLowPrice: null.FloatFrom(160)},
		}),
	}

	rows := MergeSnapshots(docs)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].FiveMin != (prices.WindowQuote{}) || rows[0].OneHour != (prices.WindowQuote{}) {
		t.Fatalf("windows without a feed must be null: %+v", rows[0])
	}
	if rows[0].OneDay.AvgLowPrice.Float64 != 160 {
		t.Fatalf("unexpected 24h window %+v", rows[0].OneDay)
	}
}

func TestMergeSnapshotsEmpty(t *testing.T) {
	if rows := MergeSnapshots(nil); len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestLatestRowsDropsBadKeys(t *testing.T) {
	doc := windowDoc("latest", map[string]feed.Quote{
		"4151": {High: null.FloatFrom(1500000), HighTime: null.IntFrom(1700000000)},
		"2":    {Low: null.FloatFrom(165)},
		"-":    {High: null.FloatFrom(1)},
	})

	rows := LatestRows(doc)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ItemID != 2 || rows[0].High.Valid || rows[0].Low.Float64 != 165 {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if rows[1].ItemID != 4151 || rows[1].HighTime.Int64 != 1700000000 {
		t.Fatalf("unexpected second row %+v", rows[1])
	}
	if !rows[1].UpdatedAt.IsZero() {
		t.Fatalf("updatedAt is assigned by the store, not the merger")
	}
}

func TestCatalogEntriesLastRecordWins(t *testing.T) {
	records := []feed.MappingRecord{
		{ID: 4151, Name: "Abyssal whip"},
		{ID: 2, Name: "Cannonball", Members: true},
		{ID: 4151, Name: "Abyssal whip", Members: true, Limit: null.IntFrom(70)},
	}

	entries := CatalogEntries(records)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != 2 || entries[1].ID != 4151 {
		t.Fatalf("entries not ordered by id: %+v", entries)
	}
	if !entries[1].Members || entries[1].Limit.Int64 != 70 {
		t.Fatalf("later record must replace earlier: %+v", entries[1])
	}
}
