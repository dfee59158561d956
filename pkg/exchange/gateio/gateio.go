package gateio

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/antihax/optional"
	"github.com/gateio/gateapi-go/v6"
	"github.com/spf13/viper"

	"github.com/Algovate/crypto-fetcher/pkg/common"
	"github.com/Algovate/crypto-fetcher/pkg/core"
	"github.com/Algovate/crypto-fetcher/pkg/model"
)

var _ core.Exchange = &GateIO{}

func init() {
	core.RegisterExchange("gateio", NewGateIOExchange)
}

// gate has no 1w candle, the closest supported interval is 7d
var intervalMap = map[string]string{
	"1m": "1m", "5m": "5m", "15m": "15m", "30m": "30m",
	"1h": "1h", "4h": "4h", "1d": "1d", "1w": "7d",
}

type GateIO struct {
	name       string
	api        *gateapi.APIClient
	klineLimit int32
}

func NewGateIOExchange(cfg *viper.Viper, cltName string) (e core.Exchange, err error) {
	g, err := NewGateIO(cfg, cltName)
	if err != nil {
		return nil, err
	}
	e = g
	return
}

func NewGateIO(cfg *viper.Viper, cltName string) (g *GateIO, err error) {
	g = new(GateIO)
	g.name = "gateio"
	if cltName == "" {
		cltName = "gateio"
	}
	g.klineLimit = 1000
	apiCfg := gateapi.NewConfiguration()
	apiCfg.Key = cfg.GetString(fmt.Sprintf("exchanges.%s.key", cltName))
	apiCfg.Secret = cfg.GetString(fmt.Sprintf("exchanges.%s.secret", cltName))
	clientProxy := cfg.GetString("proxy")
	if clientProxy != "" {
		var proxyURL *url.URL
		proxyURL, err = url.Parse(clientProxy)
		if err != nil {
			return
		}
		apiCfg.HTTPClient = &http.Client{Transport: &http.Transport{Proxy: http.ProxyURL(proxyURL)}}
	}
	g.api = gateapi.NewAPIClient(apiCfg)
	return
}

func (g *GateIO) Name() string {
	return g.name
}

func (g *GateIO) FetchTicker(symbol string) (ticker *model.Ticker, err error) {
	ctx := context.Background()
	opt := gateapi.ListTickersOpts{CurrencyPair: optional.NewString(normSymbol(symbol))}
	tickers, resp, err := g.api.SpotApi.ListTickers(ctx, &opt)
	if err != nil {
		return
	}
	resp.Body.Close()
	if len(tickers) == 0 {
		err = fmt.Errorf("%w: %s", core.ErrNoData, symbol)
		return
	}
	ticker = transTicker(&tickers[0])
	ticker.Symbol = symbol
	return
}

func (g *GateIO) KlineChan(symbol, binSize string, start, end time.Time) (data chan *model.Candle, errCh chan error) {
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
		ctx := context.Background()
		pair := normSymbol(symbol)
		nStart := start.Unix()
		nEnd := end.Unix()
		// gate caps one query at 1000 points and rejects limit
		// combined with from/to, so the range is paged in windows
		window := int64(g.klineLimit-1) * int64(dur/time.Second)
		var nPrevStart int64
		opt := gateapi.ListCandlesticksOpts{
			Interval: optional.NewString(interval),
		}
		for {
			nTo := nStart + window
			if nTo > nEnd {
				nTo = nEnd
			}
			opt.From = optional.NewInt64(nStart)
			opt.To = optional.NewInt64(nTo)
			klines, resp, err := g.api.SpotApi.ListCandlesticks(ctx, pair, &opt)
			if err != nil {
				errCh <- err
				return
			}
			resp.Body.Close()
			sort.Slice(klines, func(i, j int) bool {
				return klines[i][0] < klines[j][0]
			})
			var wrote bool
			for _, row := range klines {
				temp, err1 := transCandle(row)
				if err1 != nil {
					errCh <- err1
					return
				}
				if temp.Start <= nPrevStart {
					continue
				}
				data <- temp
				nStart = temp.Start
				wrote = true
			}
			if nTo >= nEnd {
				break
			}
			if !wrote {
				// empty window, skip ahead
				nStart = nTo
				continue
			}
			nPrevStart = nStart
		}
	}()
	return
}

func (g *GateIO) GetSymbols() (symbols []model.SymbolInfo, err error) {
	pairs, resp, err := g.api.SpotApi.ListCurrencyPairs(context.Background())
	if err != nil {
		return nil, err
	}
	resp.Body.Close()
	for _, v := range pairs {
		if v.TradeStatus != "tradable" {
			continue
		}
		symbols = append(symbols, model.SymbolInfo{
			Exchange:   g.name,
			Symbol:     fmt.Sprintf("%s/%s", v.Base, v.Quote),
			Base:       v.Base,
			Quote:      v.Quote,
			Pricescale: int(v.Precision),
		})
	}
	return
}

// normSymbol BTC/USDT -> BTC_USDT
func normSymbol(symbol string) string {
	symbol = strings.ReplaceAll(symbol, "/", "_")
	symbol = strings.ReplaceAll(symbol, "-", "_")
	return strings.ToUpper(symbol)
}

func transTicker(t *gateapi.Ticker) (ret *model.Ticker) {
	last := parseFloat(t.Last)
	pct := parseFloat(t.ChangePercentage)
	// pct is relative to the previous price, so with last = prev*(1+pct/100)
	// the absolute change is last*pct/(100+pct)
	var change float64
	if pct != -100 {
		change = common.FloatDiv(common.FloatMul(last, pct), common.FloatAdd(100, pct))
	}
	ret = &model.Ticker{
		Exchange:    "gateio",
		Symbol:      t.CurrencyPair,
		Last:        last,
		Bid:         parseFloat(t.HighestBid),
		Ask:         parseFloat(t.LowestAsk),
		High:        parseFloat(t.High24h),
		Low:         parseFloat(t.Low24h),
		Volume:      parseFloat(t.BaseVolume),
		QuoteVolume: parseFloat(t.QuoteVolume),
		Percentage:  pct,
		Change:      change,
		Time:        time.Now(),
	}
	return
}

// transCandle gate spot candlestick row:
// [t, quote volume, close, high, low, open, base volume, finished]
func transCandle(row []string) (ret *model.Candle, err error) {
	if len(row) < 6 {
		err = fmt.Errorf("gateio: bad candlestick row %v", row)
		return
	}
	start, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		err = fmt.Errorf("gateio: bad candlestick time %q: %w", row[0], err)
		return
	}
	ret = &model.Candle{
		Start:       start,
		QuoteVolume: parseFloat(row[1]),
		Close:       parseFloat(row[2]),
		High:        parseFloat(row[3]),
		Low:         parseFloat(row[4]),
		Open:        parseFloat(row[5]),
	}
	if len(row) > 6 {
		ret.Volume = parseFloat(row[6])
	}
	return
}

func parseFloat(str string) float64 {
	f, _ := strconv.ParseFloat(str, 64)
	return f
}
