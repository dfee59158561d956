package bybit

import (
	"testing"
	"time"

	"github.com/Algovate/crypto-fetcher/pkg/model"
)

// the endpoint returns only the newest rows of a requested range, so
// a range wider than one response must be walked in windows without
// losing its head
func TestKlineChanLongRange(t *testing.T) {
	const limit = 100
	const total = 250
	base := int64(1700000000)
	step := int64(3600)
	series := make([]*model.Candle, total)
	for i := range series {
		series[i] = &model.Candle{Start: base + int64(i)*step, Close: float64(i)}
	}
	b := &Bybit{name: "bybit", klineLimit: limit}
	b.klines = func(symbol, interval string, startMs, endMs int64) ([]*model.Candle, error) {
		var in []*model.Candle
		for _, c := range series {
			ms := c.Start * 1000
			if ms >= startMs && ms <= endMs {
				in = append(in, c)
			}
		}
		if len(in) > limit {
			in = in[len(in)-limit:]
		}
		return in, nil
	}
	data, errCh := b.KlineChan("BTC/USDT", "1h", time.Unix(base, 0), time.Unix(base+int64(total-1)*step, 0))
	var got []*model.Candle
	for c := range data {
		got = append(got, c)
	}
	if err := <-errCh; err != nil {
		t.Fatal(err.Error())
	}
	if len(got) != total {
		t.Fatalf("expect %d candles, got %d", total, len(got))
	}
	for i, c := range got {
		if c.Start != base+int64(i)*step {
			t.Fatalf("candle %d out of order: %d", i, c.Start)
		}
	}
}

var tickerPayload = []byte(`{
  "category": "spot",
  "list": [{
    "symbol": "BTCUSDT",
    "bid1Price": "64999.9",
    "ask1Price": "65000.1",
    "lastPrice": "65000",
    "prevPrice24h": "66000",
    "price24hPcnt": "-0.0152",
    "highPrice24h": "66500",
    "lowPrice24h": "64000",
    "turnover24h": "80000000",
    "volume24h": "1234.5"
  }]
}`)

var klinePayload = []byte(`{
  "category": "spot",
  "symbol": "BTCUSDT",
  "list": [
    ["1700003600000", "105", "112", "101", "108", "10", "1070"],
    ["1700000000000", "100", "110", "90", "105", "42", "4300"]
  ]
}`)

var instrumentPayload = []byte(`{
  "category": "spot",
  "list": [
    {"symbol": "BTCUSDT", "baseCoin": "BTC", "quoteCoin": "USDT", "status": "Trading",
     "priceFilter": {"tickSize": "0.01"}},
    {"symbol": "OLDUSDT", "baseCoin": "OLD", "quoteCoin": "USDT", "status": "Closed",
     "priceFilter": {"tickSize": "0.0001"}}
  ]
}`)

func TestParseTickerResult(t *testing.T) {
	ticker, err := parseTickerResult(tickerPayload)
	if err != nil {
		t.Fatal(err.Error())
	}
	if ticker.Last != 65000 || ticker.Bid != 64999.9 || ticker.Ask != 65000.1 {
		t.Fatalf("prices wrong: %+v", ticker)
	}
	if ticker.Change != -1000 {
		t.Fatalf("change should be last-prev, got %g", ticker.Change)
	}
	if ticker.Percentage != -1.52 {
		t.Fatalf("percentage wrong: %g", ticker.Percentage)
	}

	if _, err = parseTickerResult([]byte(`{"list": []}`)); err == nil {
		t.Fatal("empty list should fail")
	}
}

func TestParseKlineResult(t *testing.T) {
	candles := parseKlineResult(klinePayload)
	if len(candles) != 2 {
		t.Fatalf("expect 2 candles, got %d", len(candles))
	}
	// rows come newest first, output must be oldest first
	if candles[0].Start != 1700000000 || candles[1].Start != 1700003600 {
		t.Fatalf("order wrong: %d %d", candles[0].Start, candles[1].Start)
	}
	if candles[0].Open != 100 || candles[0].High != 110 || candles[0].Low != 90 || candles[0].Close != 105 {
		t.Fatalf("ohlc wrong: %+v", candles[0])
	}
}

func TestParseInstrumentResult(t *testing.T) {
	symbols := parseInstrumentResult(instrumentPayload)
	if len(symbols) != 1 {
		t.Fatalf("non-trading symbols must be skipped, got %d", len(symbols))
	}
	if symbols[0].Symbol != "BTC/USDT" || symbols[0].Pricescale != 2 {
		t.Fatalf("symbol info wrong: %+v", symbols[0])
	}
}

func TestNormSymbol(t *testing.T) {
	if normSymbol("btc/usdt") != "BTCUSDT" {
		t.Fatal("normSymbol failed")
	}
}
