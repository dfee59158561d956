package ctl

import (
	"github.com/montanaflynn/stats"

	"github.com/Algovate/crypto-fetcher/pkg/common"
	"github.com/Algovate/crypto-fetcher/pkg/core"
	"github.com/Algovate/crypto-fetcher/pkg/model"
)

// ComputeStats summary over a candle window
func ComputeStats(candles []*model.Candle) (ret *model.CandleStats, err error) {
	if len(candles) == 0 {
		err = core.ErrNoData
		return
	}
	highs := make(stats.Float64Data, len(candles))
	lows := make(stats.Float64Data, len(candles))
	closes := make(stats.Float64Data, len(candles))
	var volume float64
	for k, c := range candles {
		highs[k] = c.High
		lows[k] = c.Low
		closes[k] = c.Close
		volume = common.FloatAdd(volume, c.Volume)
	}
	high, err := stats.Max(highs)
	if err != nil {
		return
	}
	low, err := stats.Min(lows)
	if err != nil {
		return
	}
	mean, err := stats.Mean(closes)
	if err != nil {
		return
	}
	var stdev float64
	if len(candles) > 1 {
		stdev, err = stats.StandardDeviationSample(closes)
		if err != nil {
			return
		}
	}
	first := candles[0].Open
	last := candles[len(candles)-1].Close
	change := common.FloatSub(last, first)
	var pct float64
	if first != 0 {
		pct = common.FloatMul(common.FloatDiv(change, first), 100)
	}
	ret = &model.CandleStats{
		Count:       len(candles),
		High:        high,
		Low:         low,
		MeanClose:   mean,
		StdevClose:  stdev,
		TotalVolume: volume,
		Change:      change,
		Percentage:  pct,
	}
	return
}
