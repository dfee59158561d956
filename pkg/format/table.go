package format

import (
	"bytes"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/Algovate/crypto-fetcher/pkg/common"
	"github.com/Algovate/crypto-fetcher/pkg/model"
)

const timeLayout = "2006-01-02 15:04:05"

type tableFormatter struct{}

func (f *tableFormatter) Ticker(t *model.Ticker) (string, error) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Field", "Value"})
	table.Append([]string{"Exchange", t.Exchange})
	table.Append([]string{"Symbol", t.Symbol})
	table.Append([]string{"Last", num(t.Last, 8)})
	table.Append([]string{"Bid", num(t.Bid, 8)})
	table.Append([]string{"Ask", num(t.Ask, 8)})
	table.Append([]string{"High", num(t.High, 8)})
	table.Append([]string{"Low", num(t.Low, 8)})
	table.Append([]string{"Volume", num(t.Volume, 2)})
	table.Append([]string{"Quote Volume", num(t.QuoteVolume, 2)})
	table.Append([]string{"Change", num(t.Change, 8)})
	table.Append([]string{"Change %", num(t.Percentage, 2)})
	table.Append([]string{"Time", t.Time.Format(timeLayout)})
	table.Render()
	return buf.String(), nil
}

func (f *tableFormatter) Tickers(entries []model.TickerEntry) (string, error) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Symbol", "Last", "Volume", "Change %", "High", "Low"})
	for _, e := range entries {
		if e.Error != "" {
			table.Append([]string{e.Symbol, "ERROR: " + e.Error, "-", "-", "-", "-"})
			continue
		}
		t := e.Ticker
		table.Append([]string{
			e.Symbol,
			num(t.Last, 8),
			num(t.Volume, 2),
			num(t.Percentage, 2),
			num(t.High, 8),
			num(t.Low, 8),
		})
	}
	table.Render()
	return buf.String(), nil
}

func (f *tableFormatter) Candles(candles []*model.Candle) (string, error) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Time", "Open", "High", "Low", "Close", "Volume"})
	for _, c := range candles {
		table.Append([]string{
			c.Time().UTC().Format(timeLayout),
			num(c.Open, 8),
			num(c.High, 8),
			num(c.Low, 8),
			num(c.Close, 8),
			num(c.Volume, 2),
		})
	}
	table.Render()
	return buf.String(), nil
}

func (f *tableFormatter) Symbols(symbols []model.SymbolInfo) (string, error) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Symbol", "Base", "Quote", "Pricescale"})
	for _, s := range symbols {
		table.Append([]string{s.Symbol, s.Base, s.Quote, strconv.Itoa(s.Pricescale)})
	}
	table.Render()
	return buf.String(), nil
}

func (f *tableFormatter) Stats(stats *model.CandleStats) (string, error) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Field", "Value"})
	table.Append([]string{"Candles", strconv.Itoa(stats.Count)})
	table.Append([]string{"High", num(stats.High, 8)})
	table.Append([]string{"Low", num(stats.Low, 8)})
	table.Append([]string{"Mean Close", num(stats.MeanClose, 8)})
	table.Append([]string{"Stdev Close", num(stats.StdevClose, 8)})
	table.Append([]string{"Total Volume", num(stats.TotalVolume, 2)})
	table.Append([]string{"Change", num(stats.Change, 8)})
	table.Append([]string{"Change %", num(stats.Percentage, 2)})
	table.Render()
	return buf.String(), nil
}

// num render a value, zero means the exchange did not report the field
func num(f float64, precision int32) string {
	if f == 0 {
		return "n/a"
	}
	return common.FormatFloat(f, precision)
}
