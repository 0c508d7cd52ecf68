// market/instruments.go
package market

// Exchanges lists the venues the desk can be labeled with. The label is
// cosmetic in paper mode; no connectivity is implied.
var Exchanges = []string{
	"Binance",
	"Coinbase",
	"Deribit",
	"Delta Exchange",
	"MetaTrader 4",
	"MetaTrader 5",
}

// Symbols lists the instruments the desk knows how to simulate.
var Symbols = []string{
	"BTCUSD",
	"ETHUSD",
	"EURUSD",
	"GBPUSD",
	"XAUUSD",
	"USDJPY",
}

func KnownExchange(name string) bool {
	for _, e := range Exchanges {
		if e == name {
			return true
		}
	}
	return false
}

func KnownSymbol(name string) bool {
	for _, s := range Symbols {
		if s == name {
			return true
		}
	}
	return false
}
