package model

import "time"

// Ticker is a snapshot of the current market state of one trading pair.
type Ticker struct {
	Exchange    string    `json:"exchange"`
	Symbol      string    `json:"symbol"`
	Last        float64   `json:"last"`
	Bid         float64   `json:"bid"`
	Ask         float64   `json:"ask"`
	High        float64   `json:"high"`
	Low         float64   `json:"low"`
	Volume      float64   `json:"volume"`
	QuoteVolume float64   `json:"quoteVolume"`
	Change      float64   `json:"change"`
	Percentage  float64   `json:"percentage"`
	Time        time.Time `json:"time"`
}

// TickerEntry is the result of one symbol of a multi-ticker request.
// Either Ticker or Error is set, a failed symbol never aborts the batch.
type TickerEntry struct {
	Symbol string  `json:"symbol"`
	Ticker *Ticker `json:"ticker,omitempty"`
	Error  string  `json:"error,omitempty"`
}
