// Package exchange pulls in all exchange drivers so that importing it
// registers every driver with the core factory.
package exchange

import (
	_ "github.com/Algovate/crypto-fetcher/pkg/exchange/binance"
	_ "github.com/Algovate/crypto-fetcher/pkg/exchange/bybit"
	_ "github.com/Algovate/crypto-fetcher/pkg/exchange/gateio"
	_ "github.com/Algovate/crypto-fetcher/pkg/exchange/kucoin"
)
