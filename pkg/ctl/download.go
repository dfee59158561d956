package ctl

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/Algovate/crypto-fetcher/pkg/core"
	"github.com/Algovate/crypto-fetcher/pkg/dbstore"
	"github.com/Algovate/crypto-fetcher/pkg/model"
)

const writeBatch = 500

// DataDownload pages candles from an exchange into the local store.
type DataDownload struct {
	cfg      *viper.Viper
	db       *dbstore.DBStore
	exchange string
	symbol   string
	binSize  string
	start    time.Time
	end      time.Time
}

// NewDataDownload constructor of DataDownload
func NewDataDownload(cfg *viper.Viper, db *dbstore.DBStore, exchange, symbol, binSize string, start, end time.Time) (d *DataDownload) {
	d = new(DataDownload)
	d.cfg = cfg
	d.db = db
	d.exchange = exchange
	d.symbol = symbol
	d.binSize = binSize
	d.start = start
	d.end = end
	return
}

// Run download the configured range and wait for finish
func (d *DataDownload) Run() (err error) {
	return d.download(d.start, d.end)
}

// AutoRun resume from the newest candle in the store to now
func (d *DataDownload) AutoRun() (err error) {
	tbl := d.db.GetKlineTbl(d.exchange, d.symbol, d.binSize)
	var invalidTime time.Time
	start := tbl.GetNewest()
	if start == invalidTime {
		err = fmt.Errorf("no local data for %s %s %s, set a start time", d.exchange, d.symbol, d.binSize)
		return
	}
	end := time.Now()
	log.Debugf("autorun start:%s, end:%s", start, end)
	return d.download(start, end)
}

func (d *DataDownload) download(start, end time.Time) (err error) {
	log.Infof("begin download candles: %s %s %s %s-%s", d.exchange, d.symbol, d.binSize,
		start.Format(time.RFC3339), end.Format(time.RFC3339))
	ex, err := core.NewExchange(d.exchange, d.cfg, d.exchange)
	if err != nil {
		return
	}
	tbl := d.db.GetKlineTbl(d.exchange, d.symbol, d.binSize)
	klines, errCh := ex.KlineChan(d.symbol, d.binSize, start, end)
	var batch []*model.Candle
	var total int
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		t := time.Now()
		err1 := tbl.WriteCandles(batch)
		if err1 != nil {
			log.Errorf("write %d candles failed after %s: %s", len(batch), time.Since(t), err1.Error())
			return err1
		}
		total += len(batch)
		log.Infof("download %s - %s, wrote %d candles in %s",
			batch[0].Time().Format(time.RFC3339),
			batch[len(batch)-1].Time().Format(time.RFC3339),
			len(batch), time.Since(t))
		batch = batch[:0]
		return nil
	}
	for v := range klines {
		batch = append(batch, v)
		if len(batch) >= writeBatch {
			if err = flush(); err != nil {
				return
			}
		}
	}
	if err = flush(); err != nil {
		return
	}
	err = <-errCh
	if err == nil {
		log.Infof("download finished, %d candles total", total)
	}
	return
}
