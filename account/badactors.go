package account

// badActors are account names registered to impersonate exchanges and
// well-known services. Mentions of them are never linked.
var badActors = map[string]struct{}{
	"aalpha":            {},
	"bilttrex":          {},
	"binanace":          {},
	"binance-deposit":   {},
	"binnance":          {},
	"bitrex":            {},
	"bitrexx":           {},
	"bittex":            {},
	"bittrex-deposit":   {},
	"bittrex-wallet":    {},
	"bittrexx":          {},
	"bittrrex":          {},
	"blocktades":        {},
	"blocktrade":        {},
	"blocktrades-dep":   {},
	"blocktradess":      {},
	"blocktrads":        {},
	"bloctrades":        {},
	"blocktrades-us":    {},
	"coinbase-deposit":  {},
	"coinbasse":         {},
	"deepcrypto-8":      {},
	"gate-io-deposit":   {},
	"hive-airdrop":      {},
	"hive-giveaway":     {},
	"hive-support":      {},
	"hive-wallet":       {},
	"hiveio-support":    {},
	"hivesigner-app":    {},
	"huobi-deposit":     {},
	"huobi-pro-wallet":  {},
	"ionomy-deposit":    {},
	"keychain-support":  {},
	"kucoin-deposit":    {},
	"mexc-deposit":      {},
	"peakd-support":     {},
	"poloniex-deposit":  {},
	"poloniex-wallet":   {},
	"polonex":           {},
	"polloniex":         {},
	"upbit-deposit":     {},
	"upbitt":            {},
}
