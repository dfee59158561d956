package format

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/Algovate/crypto-fetcher/pkg/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type jsonFormatter struct{}

func (f *jsonFormatter) marshal(v interface{}) (string, error) {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(buf) + "\n", nil
}

func (f *jsonFormatter) Ticker(t *model.Ticker) (string, error) {
	return f.marshal(t)
}

func (f *jsonFormatter) Tickers(entries []model.TickerEntry) (string, error) {
	return f.marshal(entries)
}

func (f *jsonFormatter) Candles(candles []*model.Candle) (string, error) {
	return f.marshal(candles)
}

func (f *jsonFormatter) Symbols(symbols []model.SymbolInfo) (string, error) {
	return f.marshal(symbols)
}

func (f *jsonFormatter) Stats(stats *model.CandleStats) (string, error) {
	return f.marshal(stats)
}
