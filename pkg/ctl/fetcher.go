package ctl

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/Algovate/crypto-fetcher/pkg/common"
	"github.com/Algovate/crypto-fetcher/pkg/core"
	"github.com/Algovate/crypto-fetcher/pkg/model"
)

// Fetcher is the glue between the CLI commands and the exchange
// drivers. Drivers are created lazily and cached per name, REST calls
// are paced with a shared rate limiter.
type Fetcher struct {
	cfg     *viper.Viper
	limiter *rate.Limiter

	mu        sync.Mutex
	exchanges map[string]core.Exchange
}

func NewFetcher(cfg *viper.Viper) *Fetcher {
	rps := cfg.GetFloat64("rate.requests_per_second")
	if rps <= 0 {
		rps = 5
	}
	burst := cfg.GetInt("rate.burst")
	if burst <= 0 {
		burst = 1
	}
	return &Fetcher{
		cfg:       cfg,
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
		exchanges: make(map[string]core.Exchange),
	}
}

func (f *Fetcher) exchange(name string) (ex core.Exchange, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ex, ok := f.exchanges[name]
	if ok {
		return
	}
	ex, err = core.NewExchange(name, f.cfg, name)
	if err != nil {
		return
	}
	f.exchanges[name] = ex
	return
}

func (f *Fetcher) wait() {
	if err := f.limiter.Wait(context.Background()); err != nil {
		log.Error("rate limiter wait failed:", err.Error())
	}
}

// FetchTicker current ticker of one symbol
func (f *Fetcher) FetchTicker(exName, symbol string) (ticker *model.Ticker, err error) {
	ex, err := f.exchange(exName)
	if err != nil {
		return
	}
	f.wait()
	ticker, err = ex.FetchTicker(symbol)
	if err != nil {
		err = fmt.Errorf("fetch ticker %s on %s: %w", symbol, exName, err)
	}
	return
}

// FetchTickers tickers of multiple symbols, per-symbol errors are
// captured in the entries instead of aborting the batch
func (f *Fetcher) FetchTickers(exName string, symbols []string) (entries []model.TickerEntry, err error) {
	if _, err = f.exchange(exName); err != nil {
		return
	}
	for _, symbol := range symbols {
		ticker, err1 := f.FetchTicker(exName, symbol)
		if err1 != nil {
			log.Debugf("fetch %s failed: %s", symbol, err1.Error())
			entries = append(entries, model.TickerEntry{Symbol: symbol, Error: core.FriendlyMessage(err1, exName, symbol)})
			continue
		}
		entries = append(entries, model.TickerEntry{Symbol: symbol, Ticker: ticker})
	}
	return
}

// FetchOHLCV the most recent limit candles of one timeframe
func (f *Fetcher) FetchOHLCV(exName, symbol, binSize string, limit int) (candles []*model.Candle, err error) {
	ex, err := f.exchange(exName)
	if err != nil {
		return
	}
	dur, err := common.GetBinSizeDuration(binSize)
	if err != nil {
		return
	}
	if limit <= 0 {
		limit = 100
	}
	end := time.Now()
	start := end.Add(-time.Duration(limit) * dur)
	f.wait()
	data, errCh := ex.KlineChan(symbol, binSize, start, end)
	for v := range data {
		candles = append(candles, v)
	}
	if err = <-errCh; err != nil {
		err = fmt.Errorf("fetch ohlcv %s %s on %s: %w", symbol, binSize, exName, err)
		return
	}
	if len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}
	return
}

// Symbols list the symbols of an exchange. search filters by
// case-insensitive substring, limit caps the returned slice and total
// reports the match count before capping.
func (f *Fetcher) Symbols(exName, search string, limit int) (symbols []model.SymbolInfo, total int, err error) {
	ex, err := f.exchange(exName)
	if err != nil {
		return
	}
	f.wait()
	all, err := ex.GetSymbols()
	if err != nil {
		err = fmt.Errorf("load symbols of %s: %w", exName, err)
		return
	}
	var matched []model.SymbolInfo
	needle := strings.ToUpper(search)
	for _, s := range all {
		if search != "" && !strings.Contains(strings.ToUpper(s.Symbol), needle) {
			continue
		}
		matched = append(matched, s)
	}
	total = len(matched)
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	symbols = matched
	return
}

// Validate report whether the symbol exists on the exchange
func (f *Fetcher) Validate(exName, symbol string) (ok bool, err error) {
	symbols, _, err := f.Symbols(exName, "", 0)
	if err != nil {
		return
	}
	want := canonSymbol(symbol)
	for _, s := range symbols {
		if canonSymbol(s.Symbol) == want {
			ok = true
			return
		}
	}
	return
}

// canonSymbol strip pair separators so BTC/USDT, BTC-USDT and BTCUSDT
// compare equal
func canonSymbol(symbol string) string {
	symbol = strings.ToUpper(symbol)
	for _, sep := range []string{"/", "-", "_"} {
		symbol = strings.ReplaceAll(symbol, sep, "")
	}
	return symbol
}
