package model

// SymbolInfo describes one trading pair of an exchange.
type SymbolInfo struct {
	Exchange   string `json:"exchange"`
	Symbol     string `json:"symbol"`
	Base       string `json:"base"`
	Quote      string `json:"quote"`
	Pricescale int    `json:"pricescale"`
}

// CandleStats is a summary over a window of candles.
type CandleStats struct {
	Count       int     `json:"count"`
	High        float64 `json:"high"`
	Low         float64 `json:"low"`
	MeanClose   float64 `json:"meanClose"`
	StdevClose  float64 `json:"stdevClose"`
	TotalVolume float64 `json:"totalVolume"`
	Change      float64 `json:"change"`
	Percentage  float64 `json:"percentage"`
}
