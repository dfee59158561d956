package kucoin

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	api "github.com/Kucoin/kucoin-universal-sdk/sdk/golang/pkg/api"
	spotmarket "github.com/Kucoin/kucoin-universal-sdk/sdk/golang/pkg/generate/spot/market"
	sdktype "github.com/Kucoin/kucoin-universal-sdk/sdk/golang/pkg/types"
	"github.com/spf13/viper"

	"github.com/Algovate/crypto-fetcher/pkg/common"
	"github.com/Algovate/crypto-fetcher/pkg/core"
	"github.com/Algovate/crypto-fetcher/pkg/model"
)

var _ core.Exchange = &Kucoin{}

func init() {
	core.RegisterExchange("kucoin", NewKucoinExchange)
}

var intervalMap = map[string]string{
	"1m": "1min", "5m": "5min", "15m": "15min", "30m": "30min",
	"1h": "1hour", "4h": "4hour", "1d": "1day", "1w": "1week",
}

type Kucoin struct {
	name       string
	marketAPI  spotmarket.MarketAPI
	timeout    time.Duration
	klineLimit int

	// klines is swappable so the paging loop can be exercised
	// without the live endpoint
	klines func(symbol, interval string, startAt, endAt int64) ([]*model.Candle, error)
}

func NewKucoinExchange(cfg *viper.Viper, cltName string) (e core.Exchange, err error) {
	k, err := NewKucoin(cfg, cltName)
	if err != nil {
		return
	}
	e = k
	return
}

func NewKucoin(cfg *viper.Viper, cltName string) (k *Kucoin, err error) {
	k = new(Kucoin)
	k.name = "kucoin"
	if cltName == "" {
		cltName = "kucoin"
	}
	k.timeout = time.Second * 10

	baseURL := cfg.GetString(fmt.Sprintf("exchanges.%s.endpoint", cltName))
	if baseURL == "" {
		baseURL = "https://api.kucoin.com"
	}
	transportOpt := sdktype.NewTransportOptionBuilder().
		SetTimeout(k.timeout).
		Build()
	option := sdktype.NewClientOptionBuilder().
		WithKey(cfg.GetString(fmt.Sprintf("exchanges.%s.key", cltName))).
		WithSecret(cfg.GetString(fmt.Sprintf("exchanges.%s.secret", cltName))).
		WithPassphrase(cfg.GetString(fmt.Sprintf("exchanges.%s.passphrase", cltName))).
		WithSpotEndpoint(baseURL).
		WithTransportOption(transportOpt).
		Build()
	client := api.NewClient(option)
	k.marketAPI = client.RestService().GetSpotService().GetMarketAPI()
	k.klineLimit = 1500
	k.klines = k.fetchKlines
	return
}

func (k *Kucoin) Name() string {
	return k.name
}

func (k *Kucoin) FetchTicker(symbol string) (ticker *model.Ticker, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), k.timeout)
	defer cancel()
	req := spotmarket.NewGet24hrStatsReqBuilder().SetSymbol(normSymbol(symbol)).Build()
	resp, err := k.marketAPI.Get24hrStats(req, ctx)
	if err != nil {
		return
	}
	if resp == nil || resp.Last == "" {
		err = fmt.Errorf("%w: %s", core.ErrSymbolNotFound, symbol)
		return
	}
	ticker = &model.Ticker{
		Exchange:    k.name,
		Symbol:      symbol,
		Last:        parseFloat(resp.Last),
		Bid:         parseFloat(resp.Buy),
		Ask:         parseFloat(resp.Sell),
		High:        parseFloat(resp.High),
		Low:         parseFloat(resp.Low),
		Volume:      parseFloat(resp.Vol),
		QuoteVolume: parseFloat(resp.VolValue),
		Change:      parseFloat(resp.ChangePrice),
		Percentage:  parseFloat(resp.ChangeRate) * 100,
		Time:        time.Unix(resp.Time/1000, (resp.Time%1000)*int64(time.Millisecond)),
	}
	return
}

// fetchKlines one REST page, candles sorted oldest first
func (k *Kucoin) fetchKlines(symbol, interval string, startAt, endAt int64) (candles []*model.Candle, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), k.timeout)
	defer cancel()
	req := spotmarket.NewGetKlinesReqBuilder().
		SetSymbol(symbol).
		SetType(interval).
		SetStartAt(startAt).
		SetEndAt(endAt).
		Build()
	resp, err := k.marketAPI.GetKlines(req, ctx)
	if err != nil {
		return
	}
	if resp == nil {
		return
	}
	for _, row := range resp.Data {
		var temp *model.Candle
		temp, err = transCandle(row)
		if err != nil {
			return
		}
		candles = append(candles, temp)
	}
	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Start < candles[j].Start
	})
	return
}

// KlineChan page candles oldest first. One request only returns the
// newest rows of its range, so the range is walked in windows no
// larger than one response.
func (k *Kucoin) KlineChan(symbol, binSize string, start, end time.Time) (data chan *model.Candle, errCh chan error) {
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
		pair := normSymbol(symbol)
		nStart := start.Unix()
		nEnd := end.Unix()
		window := int64(k.klineLimit-1) * int64(dur/time.Second)
		var nPrev int64
		for {
			nTo := nStart + window
			if nTo > nEnd {
				nTo = nEnd
			}
			candles, err := k.klines(pair, interval, nStart, nTo)
			if err != nil {
				errCh <- err
				return
			}
			var wrote bool
			for _, temp := range candles {
				if nPrev != 0 && temp.Start <= nPrev {
					continue
				}
				data <- temp
				nPrev = temp.Start
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

func (k *Kucoin) GetSymbols() (symbols []model.SymbolInfo, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), k.timeout)
	defer cancel()
	req := spotmarket.NewGetAllSymbolsReqBuilder().Build()
	resp, err := k.marketAPI.GetAllSymbols(req, ctx)
	if err != nil {
		return
	}
	if resp == nil {
		err = core.ErrNoData
		return
	}
	for _, v := range resp.Data {
		if !v.EnableTrading {
			continue
		}
		symbols = append(symbols, model.SymbolInfo{
			Exchange:   k.name,
			Symbol:     fmt.Sprintf("%s/%s", v.BaseCurrency, v.QuoteCurrency),
			Base:       v.BaseCurrency,
			Quote:      v.QuoteCurrency,
			Pricescale: priceScale(v.PriceIncrement),
		})
	}
	return
}

// normSymbol BTC/USDT -> BTC-USDT
func normSymbol(symbol string) string {
	symbol = strings.ReplaceAll(symbol, "/", "-")
	symbol = strings.ReplaceAll(symbol, "_", "-")
	return strings.ToUpper(symbol)
}

// transCandle kucoin kline row: [time, open, close, high, low, volume, turnover]
func transCandle(row []string) (ret *model.Candle, err error) {
	if len(row) < 7 {
		err = fmt.Errorf("kucoin: bad kline row %v", row)
		return
	}
	start, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		err = fmt.Errorf("kucoin: bad kline time %q: %w", row[0], err)
		return
	}
	ret = &model.Candle{
		Start:       start,
		Open:        parseFloat(row[1]),
		Close:       parseFloat(row[2]),
		High:        parseFloat(row[3]),
		Low:         parseFloat(row[4]),
		Volume:      parseFloat(row[5]),
		QuoteVolume: parseFloat(row[6]),
	}
	return
}

// priceScale count of decimals of the price increment, e.g. 0.0001 -> 4
func priceScale(increment string) int {
	n := strings.Index(increment, ".")
	if n < 0 {
		return 0
	}
	return len(strings.TrimRight(increment[n+1:], "0"))
}

func parseFloat(str string) float64 {
	f, _ := strconv.ParseFloat(str, 64)
	return f
}
