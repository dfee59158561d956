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

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "check whether a symbol exists on an exchange",
	Long:  `check whether a symbol exists on an exchange, exit code 1 when it does not`,
	Run:   runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	initMarket(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) {
	if symbol == "" {
		fmt.Println("symbol can't be empty")
		os.Exit(1)
	}
	f := ctl.NewFetcher(viper.GetViper())
	ok, err := f.Validate(exchangeName, symbol)
	if err != nil {
		fmt.Println(core.FriendlyMessage(err, exchangeName, symbol))
		log.Error("validate failed:", err.Error())
		os.Exit(1)
	}
	if !ok {
		fmt.Printf("%s is not listed on %s\n", symbol, exchangeName)
		os.Exit(1)
	}
	fmt.Printf("%s is valid on %s\n", symbol, exchangeName)
}
