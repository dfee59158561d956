package main

import (
	"github.com/Algovate/crypto-fetcher/cmd"

	_ "github.com/Algovate/crypto-fetcher/pkg/exchange"
)

func main() {
	cmd.Execute()
}
