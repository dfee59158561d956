package cmd

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Algovate/crypto-fetcher/pkg/ctl"
)

var symbolsStr string

// tickersCmd represents the tickers command
var tickersCmd = &cobra.Command{
	Use:   "tickers",
	Short: "fetch tickers of multiple symbols",
	Long:  `fetch tickers of multiple symbols, comma separated. A failed symbol is reported inline and does not abort the run.`,
	Run:   runTickers,
}

func init() {
	rootCmd.AddCommand(tickersCmd)
	initOutput(tickersCmd)
	tickersCmd.Flags().StringVarP(&exchangeName, "exchange", "e", "binance", "exchange name: binance, gateio, kucoin, bybit")
	tickersCmd.Flags().StringVarP(&symbolsStr, "symbols", "s", "", "symbols, eg. BTC/USDT,ETH/USDT")
}

func runTickers(cmd *cobra.Command, args []string) {
	var symbols []string
	for _, s := range strings.Split(symbolsStr, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			symbols = append(symbols, s)
		}
	}
	if len(symbols) == 0 {
		fmt.Println("symbols can't be empty")
		os.Exit(1)
	}
	f := ctl.NewFetcher(viper.GetViper())
	entries, err := f.FetchTickers(exchangeName, symbols)
	if err != nil {
		fmt.Println("fetch tickers failed:", err.Error())
		log.Fatal("fetch tickers failed:", err.Error())
	}
	out, err := newFormatter().Tickers(entries)
	if err != nil {
		fmt.Println("render tickers failed:", err.Error())
		log.Fatal("render tickers failed:", err.Error())
	}
	emit(out)
}
