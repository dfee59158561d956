package ctl

import (
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Algovate/crypto-fetcher/pkg/common"
	"github.com/Algovate/crypto-fetcher/pkg/dbstore"
)

// LocalDataInfo one contiguous candle range of a local table
type LocalDataInfo struct {
	dbstore.TableInfo

	Start time.Time
	End   time.Time
}

type LocalData struct {
	db *dbstore.DBStore
}

func NewLocalData(db *dbstore.DBStore) (l *LocalData, err error) {
	l = new(LocalData)
	l.db = db
	return
}

func (l *LocalData) ListAll() (infos []LocalDataInfo, err error) {
	tbls, err := l.db.GetKlineTables()
	if err != nil {
		return
	}
	var temp []LocalDataInfo
	for _, v := range tbls {
		temp, err = l.checkOne(v)
		if err != nil {
			log.Errorf("check table %s_%s_%s failed", v.Exchange, v.Symbol, v.BinSize)
			continue
		}
		infos = append(infos, temp...)
	}
	sort.Slice(infos, func(i, j int) bool {
		infoA := infos[i]
		infoB := infos[j]
		if infoA.Exchange == infoB.Exchange {
			if infoA.Symbol == infoB.Symbol {
				tA, _ := common.GetBinSizeDuration(infoA.BinSize)
				tB, _ := common.GetBinSizeDuration(infoB.BinSize)
				return tA < tB
			}
			return infoA.Symbol < infoB.Symbol
		}
		return infoA.Exchange < infoB.Exchange
	})
	err = nil
	return
}

func (l *LocalData) checkOne(tbl dbstore.TableInfo) (infos []LocalDataInfo, err error) {
	ktbl := l.db.GetKlineTbl(tbl.Exchange, tbl.Symbol, tbl.BinSize)
	tEnd := ktbl.GetNewest()
	tStart := ktbl.GetOldest()
	nCount, _ := ktbl.Count()
	dur, err := common.GetBinSizeDuration(tbl.BinSize)
	if err != nil {
		return
	}
	if nCount == 0 {
		return
	}
	nDur := int64(tEnd.Sub(tStart)/dur) + 1
	if nDur == nCount {
		infos = []LocalDataInfo{{Start: tStart, End: tEnd, TableInfo: tbl}}
		return
	}
	return l.checkOneRaw(ktbl, tStart, tEnd, dur, tbl)
}

func (l *LocalData) checkOneRaw(ktbl *dbstore.KlineTbl, tStart, tEnd time.Time, dur time.Duration, tbl dbstore.TableInfo) (infos []LocalDataInfo, err error) {
	datas, err := ktbl.CandleChan(tStart, tEnd.Add(dur))
	if err != nil {
		return
	}
	var tempStart, prev time.Time
	for d := range datas {
		for _, c := range d {
			ct := c.Time()
			if tempStart.IsZero() {
				tempStart = ct
			} else if ct.Sub(prev) != dur {
				// gap: close the range and start the next one here
				infos = append(infos, LocalDataInfo{Start: tempStart, End: prev, TableInfo: tbl})
				tempStart = ct
			}
			prev = ct
		}
	}
	if !tempStart.IsZero() {
		infos = append(infos, LocalDataInfo{Start: tempStart, End: prev, TableInfo: tbl})
	}
	return
}
