// Package format renders fetched market data as a terminal table,
// JSON, or CSV.
package format

import (
	"fmt"

	"github.com/Algovate/crypto-fetcher/pkg/model"
)

const (
	Table = "table"
	JSON  = "json"
	CSV   = "csv"
)

// Formatter renders one kind of payload to a string ready for the
// terminal or an output file.
type Formatter interface {
	Ticker(t *model.Ticker) (string, error)
	Tickers(entries []model.TickerEntry) (string, error)
	Candles(candles []*model.Candle) (string, error)
	Symbols(symbols []model.SymbolInfo) (string, error)
	Stats(stats *model.CandleStats) (string, error)
}

// New return the formatter for the given kind
func New(kind string) (f Formatter, err error) {
	switch kind {
	case Table, "":
		f = &tableFormatter{}
	case JSON:
		f = &jsonFormatter{}
	case CSV:
		f = &csvFormatter{}
	default:
		err = fmt.Errorf("unsupported format: %s (supported: table, json, csv)", kind)
	}
	return
}
