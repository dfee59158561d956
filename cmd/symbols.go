package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Algovate/crypto-fetcher/pkg/core"
	"github.com/Algovate/crypto-fetcher/pkg/ctl"
)

var (
	searchStr    string
	symbolsLimit int
)

// symbolsCmd represents the symbols command
var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "list trading symbols of an exchange",
	Long:  `list trading symbols of an exchange`,
	Run:   runSymbols,
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
	initOutput(symbolsCmd)
	symbolsCmd.Flags().StringVarP(&exchangeName, "exchange", "e", "binance", "exchange name: binance, gateio, kucoin, bybit")
	symbolsCmd.Flags().StringVar(&searchStr, "search", "", "filter symbols by substring, case-insensitive")
	symbolsCmd.Flags().IntVarP(&symbolsLimit, "limit", "l", 50, "max symbols to show")
}

func runSymbols(cmd *cobra.Command, args []string) {
	f := ctl.NewFetcher(viper.GetViper())
	symbols, total, err := f.Symbols(exchangeName, searchStr, symbolsLimit)
	if err != nil {
		fmt.Println(core.FriendlyMessage(err, exchangeName, ""))
		log.Error("load symbols failed:", err.Error())
		os.Exit(1)
	}
	if total == 0 {
		if searchStr != "" {
			fmt.Printf("no symbols matching %q on %s\n", searchStr, exchangeName)
		} else {
			fmt.Printf("no symbols on %s\n", exchangeName)
		}
		return
	}
	out, err := newFormatter().Symbols(symbols)
	if err != nil {
		fmt.Println("render symbols failed:", err.Error())
		log.Fatal("render symbols failed:", err.Error())
	}
	if total > len(symbols) {
		out += fmt.Sprintf("... and %d more (raise --limit to show them)\n", total-len(symbols))
	}
	emit(out)
}
