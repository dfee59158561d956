package ctl

import (
	"errors"
	"math"
	"testing"

	"github.com/Algovate/crypto-fetcher/pkg/core"
	"github.com/Algovate/crypto-fetcher/pkg/model"
)

func TestComputeStats(t *testing.T) {
	candles := []*model.Candle{
		{Open: 100, High: 110, Low: 95, Close: 105, Volume: 10},
		{Open: 105, High: 120, Low: 100, Close: 115, Volume: 20},
		{Open: 115, High: 118, Low: 108, Close: 110, Volume: 30},
	}
	st, err := ComputeStats(candles)
	if err != nil {
		t.Fatal(err.Error())
	}
	if st.Count != 3 {
		t.Fatal("count:", st.Count)
	}
	if st.High != 120 || st.Low != 95 {
		t.Fatal("high/low:", st.High, st.Low)
	}
	if st.MeanClose != 110 {
		t.Fatal("mean close:", st.MeanClose)
	}
	if st.TotalVolume != 60 {
		t.Fatal("total volume:", st.TotalVolume)
	}
	if st.Change != 10 || st.Percentage != 10 {
		t.Fatal("change:", st.Change, st.Percentage)
	}
	// sample stdev of 105,115,110 is 5
	if math.Abs(st.StdevClose-5) > 1e-9 {
		t.Fatal("stdev close:", st.StdevClose)
	}
}

func TestComputeStatsSingle(t *testing.T) {
	st, err := ComputeStats([]*model.Candle{{Open: 100, High: 101, Low: 99, Close: 100, Volume: 1}})
	if err != nil {
		t.Fatal(err.Error())
	}
	if st.StdevClose != 0 {
		t.Fatal("stdev of one candle:", st.StdevClose)
	}
	if st.Change != 0 || st.Percentage != 0 {
		t.Fatal("change of one candle:", st.Change, st.Percentage)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	_, err := ComputeStats(nil)
	if !errors.Is(err, core.ErrNoData) {
		t.Fatal("expect ErrNoData, got:", err)
	}
}
