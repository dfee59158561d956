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
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Algovate/crypto-fetcher/pkg/common"
	"github.com/Algovate/crypto-fetcher/pkg/dbstore"
	"github.com/Algovate/crypto-fetcher/pkg/format"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	cfgFile string
	logFile string
	debug   bool

	exchangeName string
	symbol       string
	formatStr    string
	outputFile   string
)

var Version = "0.1.0"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "crypto-fetcher",
	Short:   "fetch market data from cryptocurrency exchanges",
	Version: Version,
	Long: `Fetch market data from cryptocurrency exchanges.
Tickers, historical OHLCV candles and symbol listings,
rendered as table, JSON or CSV.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("run command error:", err.Error())
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.configs/crypto-fetcher.yaml or ./configs/crypto-fetcher.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "P", false, "run debug mode")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "crypto-fetcher.log", "log file")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// data output goes to stdout, logs go to the rotated file
		if logFile != "" {
			log.SetOutput(&lumberjack.Logger{
				Filename:   logFile,
				MaxSize:    10,
				MaxBackups: 3,
				MaxAge:     28,
			})
		}
		if debug {
			log.SetLevel(log.DebugLevel)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		viper.AddConfigPath(filepath.Join(home, ".configs"))
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(filepath.Join(common.GetExecDir(), "configs"))
		viper.SetConfigName("crypto-fetcher")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Debug("using config file:", viper.ConfigFileUsed())
	}
}

func initMarket(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&exchangeName, "exchange", "e", "binance", "exchange name: binance, gateio, kucoin, bybit")
	cmd.PersistentFlags().StringVarP(&symbol, "symbol", "s", "", "symbol, eg. BTC/USDT")
}

func initOutput(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&formatStr, "format", "f", "table", "output format: table, json, csv")
	cmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
}

func newFormatter() format.Formatter {
	fm, err := format.New(formatStr)
	if err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
	return fm
}

// emit print the rendered payload, or write it to the output file when
// -o is set
func emit(payload string) {
	if outputFile == "" {
		fmt.Print(payload)
		return
	}
	err := os.WriteFile(outputFile, []byte(payload), 0644)
	if err != nil {
		fmt.Println("write output failed:", err.Error())
		log.Fatal("write output failed:", err.Error())
	}
	fmt.Printf("saved to %s\n", outputFile)
}

func initDB(cfg *viper.Viper) (db *dbstore.DBStore, err error) {
	db, err = dbstore.LoadDB(cfg)
	return
}
