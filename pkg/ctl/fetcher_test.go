package ctl

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/Algovate/crypto-fetcher/pkg/core"
	"github.com/Algovate/crypto-fetcher/pkg/model"
)

type fakeExchange struct {
	tickerErr error
	klineErr  error
	candles   []*model.Candle
	symbols   []model.SymbolInfo
}

func (f *fakeExchange) Name() string { return "fake" }

func (f *fakeExchange) FetchTicker(symbol string) (*model.Ticker, error) {
	if f.tickerErr != nil {
		return nil, f.tickerErr
	}
	return &model.Ticker{Exchange: "fake", Symbol: symbol, Last: 100}, nil
}

func (f *fakeExchange) KlineChan(symbol, binSize string, start, end time.Time) (chan *model.Candle, chan error) {
	data := make(chan *model.Candle, len(f.candles)+1)
	errCh := make(chan error, 1)
	for _, c := range f.candles {
		data <- c
	}
	if f.klineErr != nil {
		errCh <- f.klineErr
	}
	close(data)
	close(errCh)
	return data, errCh
}

func (f *fakeExchange) GetSymbols() ([]model.SymbolInfo, error) {
	return f.symbols, nil
}

var testExchange = &fakeExchange{}

func init() {
	core.RegisterExchange("fake", func(cfg *viper.Viper, cltName string) (core.Exchange, error) {
		return testExchange, nil
	})
}

func newTestFetcher() *Fetcher {
	cfg := viper.New()
	cfg.Set("rate.requests_per_second", 1000)
	return NewFetcher(cfg)
}

func TestFetchTicker(t *testing.T) {
	testExchange.tickerErr = nil
	f := newTestFetcher()
	ticker, err := f.FetchTicker("fake", "BTC/USDT")
	if err != nil {
		t.Fatal(err.Error())
	}
	if ticker.Symbol != "BTC/USDT" || ticker.Last != 100 {
		t.Fatal("unexpected ticker:", ticker)
	}
	_, err = f.FetchTicker("nosuch", "BTC/USDT")
	if !errors.Is(err, core.ErrExchangeNotSupported) {
		t.Fatal("expect ErrExchangeNotSupported, got:", err)
	}
}

func TestFetchTickers(t *testing.T) {
	testExchange.tickerErr = nil
	f := newTestFetcher()
	entries, err := f.FetchTickers("fake", []string{"BTC/USDT", "ETH/USDT"})
	if err != nil {
		t.Fatal(err.Error())
	}
	if len(entries) != 2 {
		t.Fatal("expect 2 entries, got:", len(entries))
	}
	for _, e := range entries {
		if e.Error != "" || e.Ticker == nil {
			t.Fatal("unexpected entry:", e)
		}
	}

	testExchange.tickerErr = errors.New("symbol not found")
	defer func() { testExchange.tickerErr = nil }()
	entries, err = f.FetchTickers("fake", []string{"NOPE/USDT"})
	if err != nil {
		t.Fatal(err.Error())
	}
	if len(entries) != 1 || entries[0].Error == "" || entries[0].Ticker != nil {
		t.Fatal("expect error entry, got:", entries)
	}
}

func TestFetchOHLCV(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var candles []*model.Candle
	for i := 0; i < 5; i++ {
		candles = append(candles, &model.Candle{
			Start: start.Add(time.Duration(i) * time.Hour).Unix(),
			Open:  float64(100 + i),
			Close: float64(101 + i),
		})
	}
	testExchange.candles = candles
	defer func() { testExchange.candles = nil }()

	f := newTestFetcher()
	got, err := f.FetchOHLCV("fake", "BTC/USDT", "1h", 3)
	if err != nil {
		t.Fatal(err.Error())
	}
	if len(got) != 3 {
		t.Fatal("expect 3 candles, got:", len(got))
	}
	if got[0].Open != 102 || got[2].Close != 105 {
		t.Fatal("expect the most recent candles, got:", got[0], got[2])
	}

	_, err = f.FetchOHLCV("fake", "BTC/USDT", "2x", 3)
	if err == nil {
		t.Fatal("expect error on bad timeframe")
	}
}

func TestSymbols(t *testing.T) {
	testExchange.symbols = []model.SymbolInfo{
		{Exchange: "fake", Symbol: "BTC/USDT", Base: "BTC", Quote: "USDT"},
		{Exchange: "fake", Symbol: "ETH/USDT", Base: "ETH", Quote: "USDT"},
		{Exchange: "fake", Symbol: "ETH/BTC", Base: "ETH", Quote: "BTC"},
	}
	defer func() { testExchange.symbols = nil }()

	f := newTestFetcher()
	symbols, total, err := f.Symbols("fake", "eth", 0)
	if err != nil {
		t.Fatal(err.Error())
	}
	if total != 2 || len(symbols) != 2 {
		t.Fatal("expect 2 matches, got:", total, len(symbols))
	}
	for _, s := range symbols {
		if !strings.Contains(s.Symbol, "ETH") {
			t.Fatal("unexpected match:", s.Symbol)
		}
	}

	symbols, total, err = f.Symbols("fake", "", 1)
	if err != nil {
		t.Fatal(err.Error())
	}
	if total != 3 || len(symbols) != 1 {
		t.Fatal("expect capped result, got:", total, len(symbols))
	}
}

func TestValidate(t *testing.T) {
	testExchange.symbols = []model.SymbolInfo{
		{Exchange: "fake", Symbol: "BTC/USDT", Base: "BTC", Quote: "USDT"},
	}
	defer func() { testExchange.symbols = nil }()

	f := newTestFetcher()
	for _, symbol := range []string{"BTC/USDT", "BTC-USDT", "BTCUSDT", "btc_usdt"} {
		ok, err := f.Validate("fake", symbol)
		if err != nil {
			t.Fatal(err.Error())
		}
		if !ok {
			t.Fatal("expect valid:", symbol)
		}
	}
	ok, err := f.Validate("fake", "DOGE/USDT")
	if err != nil {
		t.Fatal(err.Error())
	}
	if ok {
		t.Fatal("expect invalid symbol")
	}
}
