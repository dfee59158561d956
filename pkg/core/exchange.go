package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/viper"

	"github.com/Algovate/crypto-fetcher/pkg/model"
)

var (
	exchangeFactory = map[string]NewExchangeFn{}
)

type NewExchangeFn func(cfg *viper.Viper, cltName string) (t Exchange, err error)

func RegisterExchange(name string, fn NewExchangeFn) {
	exchangeFactory[name] = fn
}

func NewExchange(name string, cfg *viper.Viper, cltName string) (ex Exchange, err error) {
	fn, ok := exchangeFactory[name]
	if !ok {
		err = fmt.Errorf("%w: %s", ErrExchangeNotSupported, name)
		return
	}
	ex, err = fn(cfg, cltName)
	return
}

// Exchanges return the registered exchange names, sorted
func Exchanges() (names []string) {
	for k := range exchangeFactory {
		names = append(names, k)
	}
	sort.Strings(names)
	return
}

// Exchange is one exchange driver. All methods are read-only market
// data calls, order handling is out of scope for this tool.
type Exchange interface {
	Name() string

	// FetchTicker get the current ticker of one symbol
	FetchTicker(symbol string) (*model.Ticker, error)

	// KlineChan page candles of [start, end), oldest first. The error
	// channel carries at most one error and both channels are closed
	// when the range is drained.
	KlineChan(symbol, binSize string, start, end time.Time) (chan *model.Candle, chan error)

	// GetSymbols list the symbols tradable on the exchange
	GetSymbols() ([]model.SymbolInfo, error)
}
