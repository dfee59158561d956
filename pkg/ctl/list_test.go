package ctl

import (
	"path/filepath"
	"testing"

	"github.com/Algovate/crypto-fetcher/pkg/dbstore"
	"github.com/Algovate/crypto-fetcher/pkg/model"
)

func testLocalStore(t *testing.T, starts []int64) *LocalData {
	t.Helper()
	db, err := dbstore.NewDBStore("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal("open store failed:", err.Error())
	}
	t.Cleanup(func() { db.Close() })
	var candles []*model.Candle
	for _, s := range starts {
		candles = append(candles, &model.Candle{Start: s, Open: 1, High: 1, Low: 1, Close: 1, Volume: 1})
	}
	if err = db.GetKlineTbl("binance", "BTC/USDT", "1h").WriteCandles(candles); err != nil {
		t.Fatal("write failed:", err.Error())
	}
	l, err := NewLocalData(db)
	if err != nil {
		t.Fatal(err.Error())
	}
	return l
}

func TestLocalDataContiguous(t *testing.T) {
	base := int64(1700000000)
	l := testLocalStore(t, []int64{base, base + 3600, base + 2*3600})
	infos, err := l.ListAll()
	if err != nil {
		t.Fatal(err.Error())
	}
	if len(infos) != 1 {
		t.Fatalf("expect 1 range, got %d", len(infos))
	}
	if infos[0].Start.Unix() != base || infos[0].End.Unix() != base+2*3600 {
		t.Fatalf("range wrong: %s - %s", infos[0].Start, infos[0].End)
	}
}

func TestLocalDataGaps(t *testing.T) {
	base := int64(1700000000)
	hour := int64(3600)
	// hours 0,1,2 then a gap, hour 4, another gap, hour 6
	l := testLocalStore(t, []int64{base, base + hour, base + 2*hour, base + 4*hour, base + 6*hour})
	infos, err := l.ListAll()
	if err != nil {
		t.Fatal(err.Error())
	}
	want := [][2]int64{{0, 2}, {4, 4}, {6, 6}}
	if len(infos) != len(want) {
		t.Fatalf("expect %d ranges, got %d: %+v", len(want), len(infos), infos)
	}
	for k, w := range want {
		if infos[k].Start.Unix() != base+w[0]*hour || infos[k].End.Unix() != base+w[1]*hour {
			t.Fatalf("range %d wrong: %s - %s", k, infos[k].Start, infos[k].End)
		}
	}
}
