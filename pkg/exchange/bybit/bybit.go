package bybit

import (
	"context"
	"fmt"
	"strings"
	"time"

	bybitapi "github.com/bybit-exchange/bybit.go.api"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/viper"
	"github.com/tidwall/gjson"

	"github.com/Algovate/crypto-fetcher/pkg/common"
	"github.com/Algovate/crypto-fetcher/pkg/core"
	"github.com/Algovate/crypto-fetcher/pkg/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var _ core.Exchange = &Bybit{}

func init() {
	core.RegisterExchange("bybit", NewBybitExchange)
}

var intervalMap = map[string]string{
	"1m": "1", "5m": "5", "15m": "15", "30m": "30",
	"1h": "60", "4h": "240", "1d": "D", "1w": "W",
}

// Bybit v5 unified trading API client, spot category only.
type Bybit struct {
	name       string
	api        *bybitapi.Client
	klineLimit int

	// klines is swappable so the paging loop can be exercised
	// without the live endpoint
	klines func(symbol, interval string, startMs, endMs int64) ([]*model.Candle, error)
}

func NewBybitExchange(cfg *viper.Viper, cltName string) (e core.Exchange, err error) {
	b, err := NewBybit(cfg, cltName)
	if err != nil {
		return
	}
	e = b
	return
}

func NewBybit(cfg *viper.Viper, cltName string) (b *Bybit, err error) {
	b = new(Bybit)
	b.name = "bybit"
	if cltName == "" {
		cltName = "bybit"
	}
	b.klineLimit = 1000
	key := cfg.GetString(fmt.Sprintf("exchanges.%s.key", cltName))
	secret := cfg.GetString(fmt.Sprintf("exchanges.%s.secret", cltName))
	baseURL := cfg.GetString(fmt.Sprintf("exchanges.%s.endpoint", cltName))
	if baseURL == "" {
		baseURL = "https://api.bybit.com"
	}
	b.api = bybitapi.NewBybitHttpClient(key, secret, bybitapi.WithBaseURL(baseURL))
	b.klines = b.fetchKlines
	return
}

func (b *Bybit) Name() string {
	return b.name
}

// resultBytes unwrap the dynamic Result payload of a v5 response
func resultBytes(resp *bybitapi.ServerResponse, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	if resp.RetCode != 0 {
		return nil, fmt.Errorf("bybit: %s (code %d)", resp.RetMsg, resp.RetCode)
	}
	return json.Marshal(resp.Result)
}

func (b *Bybit) FetchTicker(symbol string) (ticker *model.Ticker, err error) {
	params := map[string]interface{}{
		"category": "spot",
		"symbol":   normSymbol(symbol),
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	payload, err := resultBytes(b.api.NewUtaBybitServiceWithParams(params).GetMarketTickers(ctx))
	if err != nil {
		return
	}
	ticker, err = parseTickerResult(payload)
	if err != nil {
		return
	}
	ticker.Symbol = symbol
	return
}

func (b *Bybit) KlineChan(symbol, binSize string, start, end time.Time) (data chan *model.Candle, errCh chan error) {
	data = make(chan *model.Candle, 1024)
	errCh = make(chan error, 1)
	interval, ok := intervalMap[binSize]
	if !ok {
		errCh <- fmt.Errorf("unsupport binsize: %s", binSize)
		close(data)
		close(errCh)
		return
	}
	dur, err := common.GetBinSizeDuration(binSize)
	if err != nil {
		errCh <- err
		close(data)
		close(errCh)
		return
	}
	go func() {
		defer func() {
			close(data)
			close(errCh)
		}()
		nStart := start.Unix() * 1000
		nEnd := end.Unix() * 1000
		// one request only returns the newest rows of its range, so
		// the range is walked in windows no larger than one response
		window := int64(b.klineLimit-1) * dur.Milliseconds()
		var nPrev int64
		for {
			nTo := nStart + window
			if nTo > nEnd {
				nTo = nEnd
			}
			candles, err := b.klines(normSymbol(symbol), interval, nStart, nTo)
			if err != nil {
				errCh <- err
				return
			}
			var wrote bool
			for _, temp := range candles {
				ms := temp.Start * 1000
				if nPrev != 0 && ms <= nPrev {
					continue
				}
				data <- temp
				nPrev = ms
				wrote = true
			}
			if nTo >= nEnd {
				return
			}
			if wrote {
				nStart = nPrev
			} else {
				// empty window, skip ahead
				nStart = nTo
			}
		}
	}()
	return
}

// fetchKlines one REST page, candles sorted oldest first
func (b *Bybit) fetchKlines(symbol, interval string, startMs, endMs int64) ([]*model.Candle, error) {
	params := map[string]interface{}{
		"category": "spot",
		"symbol":   symbol,
		"interval": interval,
		"start":    startMs,
		"end":      endMs,
		"limit":    b.klineLimit,
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	payload, err := resultBytes(b.api.NewUtaBybitServiceWithParams(params).GetMarketKline(ctx))
	if err != nil {
		return nil, err
	}
	return parseKlineResult(payload), nil
}

func (b *Bybit) GetSymbols() (symbols []model.SymbolInfo, err error) {
	params := map[string]interface{}{
		"category": "spot",
		"limit":    1000,
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	payload, err := resultBytes(b.api.NewUtaBybitServiceWithParams(params).GetInstrumentInfo(ctx))
	if err != nil {
		return
	}
	symbols = parseInstrumentResult(payload)
	return
}

// normSymbol BTC/USDT -> BTCUSDT
func normSymbol(symbol string) string {
	symbol = strings.ReplaceAll(symbol, "/", "")
	symbol = strings.ReplaceAll(symbol, "-", "")
	return strings.ToUpper(symbol)
}

func parseTickerResult(payload []byte) (ticker *model.Ticker, err error) {
	list := gjson.GetBytes(payload, "list")
	if !list.Exists() || len(list.Array()) == 0 {
		err = core.ErrNoData
		return
	}
	v := list.Array()[0]
	last := v.Get("lastPrice").Float()
	prev := v.Get("prevPrice24h").Float()
	ticker = &model.Ticker{
		Exchange:    "bybit",
		Symbol:      v.Get("symbol").String(),
		Last:        last,
		Bid:         v.Get("bid1Price").Float(),
		Ask:         v.Get("ask1Price").Float(),
		High:        v.Get("highPrice24h").Float(),
		Low:         v.Get("lowPrice24h").Float(),
		Volume:      v.Get("volume24h").Float(),
		QuoteVolume: v.Get("turnover24h").Float(),
		Change:      last - prev,
		Percentage:  v.Get("price24hPcnt").Float() * 100,
		Time:        time.Now(),
	}
	return
}

// parseKlineResult bybit kline rows are newest first:
// [startMs, open, high, low, close, volume, turnover]
func parseKlineResult(payload []byte) (candles []*model.Candle) {
	rows := gjson.GetBytes(payload, "list").Array()
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i].Array()
		if len(row) < 7 {
			continue
		}
		candles = append(candles, &model.Candle{
			Start:       row[0].Int() / 1000,
			Open:        row[1].Float(),
			High:        row[2].Float(),
			Low:         row[3].Float(),
			Close:       row[4].Float(),
			Volume:      row[5].Float(),
			QuoteVolume: row[6].Float(),
		})
	}
	return
}

func parseInstrumentResult(payload []byte) (symbols []model.SymbolInfo) {
	for _, v := range gjson.GetBytes(payload, "list").Array() {
		if v.Get("status").String() != "Trading" {
			continue
		}
		base := v.Get("baseCoin").String()
		quote := v.Get("quoteCoin").String()
		tick := v.Get("priceFilter.tickSize").String()
		symbols = append(symbols, model.SymbolInfo{
			Exchange:   "bybit",
			Symbol:     fmt.Sprintf("%s/%s", base, quote),
			Base:       base,
			Quote:      quote,
			Pricescale: priceScale(tick),
		})
	}
	return
}

// priceScale decimals of the tick size, e.g. 0.01 -> 2
func priceScale(tick string) int {
	n := strings.Index(tick, ".")
	if n < 0 {
		return 0
	}
	return len(strings.TrimRight(tick[n+1:], "0"))
}
