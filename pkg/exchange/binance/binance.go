package binance

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	gobinance "github.com/adshao/go-binance/v2"
	"github.com/spf13/viper"

	"github.com/Algovate/crypto-fetcher/pkg/core"
	"github.com/Algovate/crypto-fetcher/pkg/model"
)

var background = context.Background()

var _ core.Exchange = &BinanceSpot{}

func init() {
	core.RegisterExchange("binance", NewBinanceExchange)
}

// BinanceSpot binance spot market data client
type BinanceSpot struct {
	name       string
	api        *gobinance.Client
	klineLimit int
	timeout    time.Duration
}

func NewBinanceExchange(cfg *viper.Viper, cltName string) (e core.Exchange, err error) {
	b, err := NewBinanceSpot(cfg, cltName)
	if err != nil {
		return
	}
	e = b
	return
}

func NewBinanceSpot(cfg *viper.Viper, cltName string) (b *BinanceSpot, err error) {
	b = new(BinanceSpot)
	b.name = "binance"
	if cltName == "" {
		cltName = "binance"
	}
	b.klineLimit = 1000
	b.timeout = time.Second * 10
	apiKey := cfg.GetString(fmt.Sprintf("exchanges.%s.key", cltName))
	apiSecret := cfg.GetString(fmt.Sprintf("exchanges.%s.secret", cltName))
	b.api = gobinance.NewClient(apiKey, apiSecret)
	clientProxy := cfg.GetString("proxy")
	if clientProxy != "" {
		var proxyURL *url.URL
		proxyURL, err = url.Parse(clientProxy)
		if err != nil {
			return
		}
		b.api.HTTPClient = &http.Client{Transport: &http.Transport{Proxy: http.ProxyURL(proxyURL)}}
	}
	return
}

func (b *BinanceSpot) Name() string {
	return b.name
}

func (b *BinanceSpot) FetchTicker(symbol string) (ticker *model.Ticker, err error) {
	ctx, cancel := context.WithTimeout(background, b.timeout)
	defer cancel()
	stats, err := b.api.NewListPriceChangeStatsService().Symbol(normSymbol(symbol)).Do(ctx)
	if err != nil {
		return
	}
	if len(stats) == 0 {
		err = fmt.Errorf("%w: %s", core.ErrNoData, symbol)
		return
	}
	ticker = transTicker(stats[0])
	ticker.Symbol = symbol
	return
}

// KlineChan page klines oldest first, advancing the window on the
// last open time.
func (b *BinanceSpot) KlineChan(symbol, binSize string, start, end time.Time) (data chan *model.Candle, errCh chan error) {
	data = make(chan *model.Candle, 1024)
	errCh = make(chan error, 1)
	go func() {
		defer func() {
			close(data)
			close(errCh)
		}()
		var temp *model.Candle
		nStart := start.Unix() * 1000
		nEnd := end.Unix() * 1000
		var nPrevStart int64
		for {
			klines, err := b.api.NewKlinesService().
				Symbol(normSymbol(symbol)).
				Interval(binSize).
				StartTime(nStart).
				EndTime(nEnd).
				Limit(b.klineLimit).
				Do(background)
			if err != nil {
				errCh <- err
				return
			}
			sort.Slice(klines, func(i, j int) bool {
				return klines[i].OpenTime < klines[j].OpenTime
			})
			for _, v := range klines {
				if v.OpenTime <= nPrevStart {
					continue
				}
				temp = transCandle(v)
				data <- temp
				nStart = temp.Start * 1000
			}
			if nStart >= nEnd || nStart <= nPrevStart || len(klines) == 0 {
				break
			}
			nPrevStart = nStart
		}
	}()
	return
}

func (b *BinanceSpot) GetSymbols() (symbols []model.SymbolInfo, err error) {
	ctx, cancel := context.WithTimeout(background, b.timeout)
	defer cancel()
	resp, err := b.api.NewExchangeInfoService().Do(ctx)
	if err != nil {
		return
	}
	symbols = make([]model.SymbolInfo, 0, len(resp.Symbols))
	for _, v := range resp.Symbols {
		if v.Status != "TRADING" {
			continue
		}
		symbols = append(symbols, model.SymbolInfo{
			Exchange:   b.name,
			Symbol:     fmt.Sprintf("%s/%s", v.BaseAsset, v.QuoteAsset),
			Base:       v.BaseAsset,
			Quote:      v.QuoteAsset,
			Pricescale: v.QuotePrecision,
		})
	}
	return
}

// normSymbol BTC/USDT -> BTCUSDT
func normSymbol(symbol string) string {
	symbol = strings.ReplaceAll(symbol, "/", "")
	symbol = strings.ReplaceAll(symbol, "-", "")
	return strings.ToUpper(symbol)
}

func transTicker(st *gobinance.PriceChangeStats) (t *model.Ticker) {
	t = &model.Ticker{
		Exchange:    "binance",
		Symbol:      st.Symbol,
		Last:        parseFloat(st.LastPrice),
		Bid:         parseFloat(st.BidPrice),
		Ask:         parseFloat(st.AskPrice),
		High:        parseFloat(st.HighPrice),
		Low:         parseFloat(st.LowPrice),
		Volume:      parseFloat(st.Volume),
		QuoteVolume: parseFloat(st.QuoteVolume),
		Change:      parseFloat(st.PriceChange),
		Percentage:  parseFloat(st.PriceChangePercent),
		Time:        time.Unix(st.CloseTime/1000, (st.CloseTime%1000)*int64(time.Millisecond)),
	}
	return
}

func transCandle(k *gobinance.Kline) (ret *model.Candle) {
	ret = &model.Candle{
		Start:       k.OpenTime / 1000,
		Open:        parseFloat(k.Open),
		High:        parseFloat(k.High),
		Low:         parseFloat(k.Low),
		Close:       parseFloat(k.Close),
		Volume:      parseFloat(k.Volume),
		QuoteVolume: parseFloat(k.QuoteAssetVolume),
		Trades:      k.TradeNum,
	}
	return
}

func parseFloat(str string) float64 {
	if str == "" {
		return 0
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0
	}
	return f
}
