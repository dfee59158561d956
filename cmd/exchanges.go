package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Algovate/crypto-fetcher/pkg/core"
)

// exchangesCmd represents the exchanges command
var exchangesCmd = &cobra.Command{
	Use:   "exchanges",
	Short: "list the supported exchanges",
	Long:  `list the supported exchanges`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range core.Exchanges() {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(exchangesCmd)
}
