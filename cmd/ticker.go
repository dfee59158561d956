/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Algovate/crypto-fetcher/pkg/core"
	"github.com/Algovate/crypto-fetcher/pkg/ctl"
)

var (
	watchMode     bool
	watchInterval int
)

// tickerCmd represents the ticker command
var tickerCmd = &cobra.Command{
	Use:   "ticker",
	Short: "fetch the current ticker of one symbol",
	Long:  `fetch the current ticker of one symbol`,
	Run:   runTicker,
}

func init() {
	rootCmd.AddCommand(tickerCmd)
	initMarket(tickerCmd)
	initOutput(tickerCmd)
	tickerCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "re-fetch and re-render until interrupted")
	tickerCmd.Flags().IntVarP(&watchInterval, "interval", "i", 5, "watch refresh interval in seconds")
}

func runTicker(cmd *cobra.Command, args []string) {
	if symbol == "" {
		fmt.Println("symbol can't be empty")
		os.Exit(1)
	}
	f := ctl.NewFetcher(viper.GetViper())
	fm := newFormatter()
	render := func() (string, error) {
		ticker, err := f.FetchTicker(exchangeName, symbol)
		if err != nil {
			return "", err
		}
		return fm.Ticker(ticker)
	}
	if watchMode {
		runWatch(render)
		return
	}
	out, err := render()
	if err != nil {
		fmt.Println(core.FriendlyMessage(err, exchangeName, symbol))
		log.Error("fetch ticker failed:", err.Error())
		os.Exit(1)
	}
	emit(out)
}

func runWatch(render func() (string, error)) {
	var gracefulStop = make(chan os.Signal, 1)
	signal.Notify(gracefulStop, syscall.SIGTERM)
	signal.Notify(gracefulStop, syscall.SIGINT)
	w := ctl.NewWatcher(time.Duration(watchInterval)*time.Second, os.Stdout, render)
	w.Clear = true
	w.Exchange = exchangeName
	w.Symbol = symbol
	w.OutputFile = outputFile
	go func() {
		<-gracefulStop
		w.Stop()
	}()
	w.Run()
	fmt.Println("\nstopped")
}
