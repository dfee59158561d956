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
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Algovate/crypto-fetcher/pkg/common"
	"github.com/Algovate/crypto-fetcher/pkg/ctl"
)

var (
	startStr string
	endStr   string
	auto     bool
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "download candles into the local store",
	Long:  `download candles from an exchange into the local store`,
	Run:   runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	initMarket(downloadCmd)
	downloadCmd.Flags().StringVarP(&binSize, "timeframe", "t", "1h", "timeframe: "+common.DefaultBinSizes)
	downloadCmd.Flags().StringVar(&startStr, "start", "", "start time, eg. 2024-01-01 00:00:00")
	downloadCmd.Flags().StringVar(&endStr, "end", "", "end time, defaults to now")
	downloadCmd.Flags().BoolVar(&auto, "auto", false, "resume from the newest local candle")
}

func parseTimerange() (startTime, endTime time.Time, err error) {
	if startStr == "" {
		err = errors.New("start time can't be empty")
		return
	}
	startTime, err = time.Parse("2006-01-02 15:04:05", startStr)
	if err != nil {
		err = errors.New("parse start time error")
		return
	}
	if endStr == "" {
		endTime = time.Now()
		return
	}
	endTime, err = time.Parse("2006-01-02 15:04:05", endStr)
	if err != nil {
		err = errors.New("parse end time error")
		return
	}
	return
}

func runDownload(cmd *cobra.Command, args []string) {
	cfg := viper.GetViper()
	if symbol == "" {
		fmt.Println("symbol can't be empty")
		log.Fatal("symbol can't be empty")
	}
	if !common.ValidBinSize(binSize) {
		fmt.Printf("unsupported timeframe %q, supported: %s\n", binSize, common.DefaultBinSizes)
		log.Fatalf("unsupported timeframe %q", binSize)
	}
	db, err := initDB(cfg)
	if err != nil {
		fmt.Println("init db failed:", err.Error())
		log.Fatal("init db failed:", err.Error())
	}
	var startTime, endTime time.Time
	if !auto {
		startTime, endTime, err = parseTimerange()
		if err != nil {
			fmt.Println(err.Error())
			log.Fatal(err.Error())
		}
	}
	down := ctl.NewDataDownload(cfg, db, exchangeName, symbol, binSize, startTime, endTime)
	if auto {
		err = down.AutoRun()
	} else {
		err = down.Run()
	}
	if err != nil {
		fmt.Println("download data error:", err.Error())
		log.Fatal("download data error:", err.Error())
	}
}
