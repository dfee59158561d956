package dbstore

import (
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"xorm.io/xorm"

	"github.com/Algovate/crypto-fetcher/pkg/model"
)

// KlineTbl candles of one exchange/symbol/binSize
type KlineTbl struct {
	db       *DBStore
	exchange string
	symbol   string
	binSize  string
	table    string
}

func NewKlineTbl(db *DBStore, exchange, symbol, binSize string) (t *KlineTbl) {
	t = new(KlineTbl)
	t.db = db
	t.exchange = exchange
	t.symbol = symbol
	t.binSize = binSize
	t.table = strings.Join([]string{exchange, cleanSymbol(symbol), binSize}, "_")
	return
}

// cleanSymbol table names only keep the alphanumeric part of a symbol
func cleanSymbol(symbol string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return -1
	}, symbol)
}

func (t *KlineTbl) Table() string {
	return t.table
}

func (t *KlineTbl) getSession() (sess *xorm.Session) {
	bExist, err := t.db.engine.IsTableExist(t.table)
	t.db.logError("check table", err)
	if !bExist {
		data := new(model.Candle)
		data.SetTable(t.table)
		err = t.db.engine.Sync2(data)
		t.db.logError("create table", err)
	}
	sess = t.db.engine.NewSession()
	sess = sess.Table(t.table)
	return
}

// WriteCandles insert candles, duplicate start times are skipped
func (t *KlineTbl) WriteCandles(candles []*model.Candle) (err error) {
	sess := t.getSession()
	defer sess.Close()
	err = sess.Begin()
	if err != nil {
		return
	}
	for _, c := range candles {
		c.SetTable(t.table)
		_, err = sess.Insert(c)
		if err != nil {
			if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "Duplicate entry") {
				log.Debugf("KlineTbl insert %s exists", c)
			} else {
				log.Errorf("KlineTbl insert %s error:%s", c, err.Error())
			}
			err = nil
		}
	}
	return sess.Commit()
}

// ReadCandles candles of [since, end), oldest first
func (t *KlineTbl) ReadCandles(since, end time.Time, limit, offset int) (candles []*model.Candle, err error) {
	sess := t.getSession()
	defer sess.Close()
	err = sess.Asc("start").Where("start>=? and start<?", since.Unix(), end.Unix()).Limit(limit, offset).Find(&candles)
	return
}

// CandleChan page all candles of [start, end) through a channel
func (t *KlineTbl) CandleChan(start, end time.Time) (candles chan []*model.Candle, err error) {
	candles = make(chan []*model.Candle, 10)
	go func() {
		defer close(candles)
		nOffset := 0
		once := 500
		for {
			data, err1 := t.ReadCandles(start, end, once, nOffset)
			if err1 != nil {
				log.Error("KlineTbl CandleChan read failed:", err1.Error())
				return
			}
			if len(data) == 0 {
				return
			}
			nOffset += len(data)
			candles <- data
			if len(data) < once {
				return
			}
		}
	}()
	return
}

func (t *KlineTbl) Count() (n int64, err error) {
	sess := t.getSession()
	defer sess.Close()
	n, err = sess.Count()
	return
}

// GetNewest open time of the newest candle, zero time when empty
func (t *KlineTbl) GetNewest() (tm time.Time) {
	return t.edge(false)
}

// GetOldest open time of the oldest candle, zero time when empty
func (t *KlineTbl) GetOldest() (tm time.Time) {
	return t.edge(true)
}

func (t *KlineTbl) edge(oldest bool) (tm time.Time) {
	sess := t.getSession()
	defer sess.Close()
	if oldest {
		sess = sess.Asc("start")
	} else {
		sess = sess.Desc("start")
	}
	var c model.Candle
	has, err := sess.Limit(1, 0).Get(&c)
	if err != nil {
		log.Errorf("KlineTbl get edge of %s failed:%s", t.table, err.Error())
		return
	}
	if !has {
		return
	}
	tm = c.Time()
	return
}
