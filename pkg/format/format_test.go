package format

import (
	"strings"
	"testing"
	"time"

	"github.com/Algovate/crypto-fetcher/pkg/model"
)

func testTicker() *model.Ticker {
	return &model.Ticker{
		Exchange:    "binance",
		Symbol:      "BTC/USDT",
		Last:        65000.5,
		Bid:         64999.9,
		Ask:         65001.1,
		High:        66000,
		Low:         64000,
		Volume:      1234.5,
		QuoteVolume: 80000000,
		Change:      -100,
		Percentage:  -0.15,
		Time:        time.Unix(1700000000, 0).UTC(),
	}
}

func testCandles() []*model.Candle {
	return []*model.Candle{
		{Start: 1700000000, Open: 100, High: 110, Low: 90, Close: 105, Volume: 42, QuoteVolume: 4300},
		{Start: 1700003600, Open: 105, High: 112, Low: 101, Close: 108, Volume: 10, QuoteVolume: 1070},
	}
}

func TestNew(t *testing.T) {
	for _, kind := range []string{Table, JSON, CSV, ""} {
		if _, err := New(kind); err != nil {
			t.Fatalf("New(%q) failed: %s", kind, err.Error())
		}
	}
	if _, err := New("xml"); err == nil {
		t.Fatal("unknown format should fail")
	}
}

func TestTableTicker(t *testing.T) {
	f, _ := New(Table)
	out, err := f.Ticker(testTicker())
	if err != nil {
		t.Fatal(err.Error())
	}
	for _, want := range []string{"BTC/USDT", "65000.50000000", "1234.50"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestTableTickerMissingFields(t *testing.T) {
	f, _ := New(Table)
	ticker := testTicker()
	ticker.Bid = 0
	ticker.Ask = 0
	out, err := f.Ticker(ticker)
	if err != nil {
		t.Fatal(err.Error())
	}
	if !strings.Contains(out, "n/a") {
		t.Fatalf("zero fields should render as n/a:\n%s", out)
	}
}

func TestTableTickersWithError(t *testing.T) {
	f, _ := New(Table)
	entries := []model.TickerEntry{
		{Symbol: "BTC/USDT", Ticker: testTicker()},
		{Symbol: "NOPE/USDT", Error: "symbol not found"},
	}
	out, err := f.Tickers(entries)
	if err != nil {
		t.Fatal(err.Error())
	}
	if !strings.Contains(out, "ERROR: symbol not found") {
		t.Fatalf("per-symbol error missing:\n%s", out)
	}
}

func TestJSONCandles(t *testing.T) {
	f, _ := New(JSON)
	out, err := f.Candles(testCandles())
	if err != nil {
		t.Fatal(err.Error())
	}
	for _, want := range []string{`"start": 1700000000`, `"close": 105`, `"quoteVolume": 4300`} {
		if !strings.Contains(out, want) {
			t.Fatalf("json output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, `"id"`) {
		t.Fatal("internal id must not leak into json output")
	}
}

func TestCSVCandles(t *testing.T) {
	f, _ := New(CSV)
	out, err := f.Candles(testCandles())
	if err != nil {
		t.Fatal(err.Error())
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expect header + 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if lines[0] != "time,open,high,low,close,volume,quote_volume" {
		t.Fatalf("bad header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2023-11-14T22:13:20Z,100,110,90,105,42,4300") {
		t.Fatalf("bad row: %s", lines[1])
	}
}

func TestCSVTickersError(t *testing.T) {
	f, _ := New(CSV)
	out, err := f.Tickers([]model.TickerEntry{{Symbol: "X/Y", Error: "boom"}})
	if err != nil {
		t.Fatal(err.Error())
	}
	if !strings.Contains(out, "X/Y") || !strings.Contains(out, "boom") {
		t.Fatalf("error entry missing:\n%s", out)
	}
}

func TestCSVSymbols(t *testing.T) {
	f, _ := New(CSV)
	out, err := f.Symbols([]model.SymbolInfo{
		{Exchange: "gateio", Symbol: "BTC/USDT", Base: "BTC", Quote: "USDT", Pricescale: 2},
	})
	if err != nil {
		t.Fatal(err.Error())
	}
	if !strings.Contains(out, "gateio,BTC/USDT,BTC,USDT,2") {
		t.Fatalf("bad symbols csv:\n%s", out)
	}
}
