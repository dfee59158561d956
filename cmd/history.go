package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Algovate/crypto-fetcher/pkg/common"
	"github.com/Algovate/crypto-fetcher/pkg/core"
	"github.com/Algovate/crypto-fetcher/pkg/ctl"
)

var (
	binSize   string
	limit     int
	showStats bool
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "fetch historical OHLCV candles",
	Long:  `fetch historical OHLCV candles of one symbol and timeframe`,
	Run:   runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	initMarket(historyCmd)
	initOutput(historyCmd)
	historyCmd.Flags().StringVarP(&binSize, "timeframe", "t", "1h", "timeframe: "+common.DefaultBinSizes)
	historyCmd.Flags().IntVarP(&limit, "limit", "l", 100, "number of candles")
	historyCmd.Flags().BoolVar(&showStats, "stats", false, "append summary statistics of the window")
}

func runHistory(cmd *cobra.Command, args []string) {
	if symbol == "" {
		fmt.Println("symbol can't be empty")
		os.Exit(1)
	}
	if !common.ValidBinSize(binSize) {
		fmt.Printf("unsupported timeframe %q, supported: %s\n", binSize, common.DefaultBinSizes)
		os.Exit(1)
	}
	f := ctl.NewFetcher(viper.GetViper())
	candles, err := f.FetchOHLCV(exchangeName, symbol, binSize, limit)
	if err != nil {
		fmt.Println(core.FriendlyMessage(err, exchangeName, symbol))
		log.Error("fetch ohlcv failed:", err.Error())
		os.Exit(1)
	}
	if len(candles) == 0 {
		fmt.Printf("no candles returned for %s %s on %s\n", symbol, binSize, exchangeName)
		os.Exit(1)
	}
	fm := newFormatter()
	out, err := fm.Candles(candles)
	if err != nil {
		fmt.Println("render candles failed:", err.Error())
		log.Fatal("render candles failed:", err.Error())
	}
	if showStats {
		st, err1 := ctl.ComputeStats(candles)
		if err1 != nil {
			fmt.Println("compute stats failed:", err1.Error())
			log.Fatal("compute stats failed:", err1.Error())
		}
		statsOut, err1 := fm.Stats(st)
		if err1 != nil {
			fmt.Println("render stats failed:", err1.Error())
			log.Fatal("render stats failed:", err1.Error())
		}
		out += "\n" + statsOut
	}
	emit(out)
}
