package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExchangeNotSupported = errors.New("no such exchange")
	ErrSymbolNotFound       = errors.New("symbol not found")
	ErrNoData               = errors.New("no data returned")
)

// ErrKind is a coarse category used to turn library and transport
// errors into actionable messages.
type ErrKind int

const (
	KindUnknown ErrKind = iota
	KindNetwork
	KindSymbolNotFound
	KindRateLimit
	KindAuth
	KindGeoRestricted
	KindMaintenance
)

// Classify map an error onto an ErrKind. The underlying SDKs surface
// exchange errors as plain text, so matching is substring based.
func Classify(err error) ErrKind {
	if err == nil {
		return KindUnknown
	}
	if errors.Is(err, ErrSymbolNotFound) {
		return KindSymbolNotFound
	}
	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "connection refused", "no such host", "network", "timeout", "deadline exceeded", "eof"):
		return KindNetwork
	case containsAny(msg, "invalid symbol", "not found", "does not exist", "unknown symbol", "instrument"):
		return KindSymbolNotFound
	case containsAny(msg, "rate limit", "too many requests", "429"):
		return KindRateLimit
	case containsAny(msg, "api key", "api-key", "signature", "authentication", "unauthorized", "401"):
		return KindAuth
	case containsAny(msg, "restricted location", "geographic", "service unavailable from a restricted"):
		return KindGeoRestricted
	case containsAny(msg, "maintenance", "temporarily unavailable", "system busy"):
		return KindMaintenance
	}
	return KindUnknown
}

// FriendlyMessage build the user facing message for an error.
func FriendlyMessage(err error, exchange, symbol string) string {
	switch Classify(err) {
	case KindNetwork:
		return "network error: check your internet connection and try again"
	case KindSymbolNotFound:
		return fmt.Sprintf("symbol %q not found on %s, try: crypto-fetcher symbols -e %s --search %s",
			symbol, exchange, exchange, baseOf(symbol))
	case KindRateLimit:
		return fmt.Sprintf("%s rate limit exceeded, wait a moment and try again", exchange)
	case KindAuth:
		return fmt.Sprintf("authentication error: %s may require API credentials, see exchanges.%s in the config file", exchange, exchange)
	case KindGeoRestricted:
		return fmt.Sprintf("%s is not available in your region", exchange)
	case KindMaintenance:
		return fmt.Sprintf("%s is temporarily unavailable, try again later", exchange)
	}
	return fmt.Sprintf("%s: %s", exchange, err.Error())
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func baseOf(symbol string) string {
	for _, sep := range []string{"/", "-", "_"} {
		if n := strings.Index(symbol, sep); n > 0 {
			return symbol[:n]
		}
	}
	return symbol
}
