package model

import (
	"fmt"
	"time"
)

// Candle is a single OHLCV record. The xorm tags let the local kline
// store persist candles in per-market tables.
type Candle struct {
	ID          int64   `xorm:"pk autoincr null 'id'" json:"-" csv:"-"`
	Start       int64   `xorm:"unique index 'start'" json:"start"`
	Open        float64 `xorm:"notnull 'open'" json:"open"`
	High        float64 `xorm:"notnull 'high'" json:"high"`
	Low         float64 `xorm:"notnull 'low'" json:"low"`
	Close       float64 `xorm:"notnull 'close'" json:"close"`
	Volume      float64 `xorm:"notnull 'volume'" json:"volume"`
	QuoteVolume float64 `xorm:"'quote_volume'" json:"quoteVolume"`
	Trades      int64   `xorm:"'trades'" json:"trades"`

	table string `xorm:"-"`
}

// Time return the candle open time
func (c *Candle) Time() time.Time {
	return time.Unix(c.Start, 0)
}

func (c *Candle) GetStart() int64 {
	return c.Start
}

func (c *Candle) GetTable() string {
	return c.table
}

func (c *Candle) SetTable(tbl string) {
	c.table = tbl
}

// TableName xorm table name, set per market by the kline store
func (c *Candle) TableName() string {
	if c.table == "" {
		return "candle"
	}
	return c.table
}

func (c *Candle) String() string {
	return fmt.Sprintf("%s o:%g h:%g l:%g c:%g v:%g", c.Time().Format(time.RFC3339), c.Open, c.High, c.Low, c.Close, c.Volume)
}
