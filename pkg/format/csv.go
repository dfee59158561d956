package format

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/Algovate/crypto-fetcher/pkg/model"
)

type csvFormatter struct{}

func writeCSV(header []string, rows [][]string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return "", err
	}
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	w.Flush()
	return buf.String(), w.Error()
}

func tickerRow(t *model.Ticker) []string {
	return []string{
		t.Exchange,
		t.Symbol,
		fnum(t.Last),
		fnum(t.Bid),
		fnum(t.Ask),
		fnum(t.High),
		fnum(t.Low),
		fnum(t.Volume),
		fnum(t.QuoteVolume),
		fnum(t.Change),
		fnum(t.Percentage),
		t.Time.UTC().Format(time.RFC3339),
	}
}

var tickerHeader = []string{
	"exchange", "symbol", "last", "bid", "ask", "high", "low",
	"volume", "quote_volume", "change", "percentage", "time",
}

func (f *csvFormatter) Ticker(t *model.Ticker) (string, error) {
	return writeCSV(tickerHeader, [][]string{tickerRow(t)})
}

func (f *csvFormatter) Tickers(entries []model.TickerEntry) (string, error) {
	header := append(tickerHeader, "error")
	var rows [][]string
	for _, e := range entries {
		if e.Error != "" {
			row := make([]string, len(tickerHeader))
			row[1] = e.Symbol
			rows = append(rows, append(row, e.Error))
			continue
		}
		rows = append(rows, append(tickerRow(e.Ticker), ""))
	}
	return writeCSV(header, rows)
}

func (f *csvFormatter) Candles(candles []*model.Candle) (string, error) {
	header := []string{"time", "open", "high", "low", "close", "volume", "quote_volume"}
	var rows [][]string
	for _, c := range candles {
		rows = append(rows, []string{
			c.Time().UTC().Format(time.RFC3339),
			fnum(c.Open),
			fnum(c.High),
			fnum(c.Low),
			fnum(c.Close),
			fnum(c.Volume),
			fnum(c.QuoteVolume),
		})
	}
	return writeCSV(header, rows)
}

func (f *csvFormatter) Symbols(symbols []model.SymbolInfo) (string, error) {
	header := []string{"exchange", "symbol", "base", "quote", "pricescale"}
	var rows [][]string
	for _, s := range symbols {
		rows = append(rows, []string{s.Exchange, s.Symbol, s.Base, s.Quote, strconv.Itoa(s.Pricescale)})
	}
	return writeCSV(header, rows)
}

func (f *csvFormatter) Stats(stats *model.CandleStats) (string, error) {
	header := []string{"count", "high", "low", "mean_close", "stdev_close", "total_volume", "change", "percentage"}
	row := []string{
		strconv.Itoa(stats.Count),
		fnum(stats.High),
		fnum(stats.Low),
		fnum(stats.MeanClose),
		fnum(stats.StdevClose),
		fnum(stats.TotalVolume),
		fnum(stats.Change),
		fnum(stats.Percentage),
	}
	return writeCSV(header, [][]string{row})
}

func fnum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
