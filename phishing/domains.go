package phishing

// builtinDomains are known phishing hosts. Entries are lower-case and
// match the host itself and every subdomain of it.
var builtinDomains = []string{
	"stemit.com",
	"steemiit.com",
	"steemitt.com",
	"steemmit.com",
	"steemmitt.com",
	"steeemit.com",
	"steemit.co",
	"steemit.cc",
	"steemit.ru",
	"steemlt.com",
	"steemti.com",
	"steewit.com",
	"steamit.com",
	"staemit.com",
	"stteemit.com",
	"stelmit.com",
	"streemit.com",
	"steemitwallet.com",
	"steemit-wallet.com",
	"steemconnect.co",
	"steemconect.com",
	"hive-blog.com",
	"hive-blog.net",
	"hiveblog.io",
	"hive.blogs.com",
	"hive-wallet.com",
	"hivewallet.io",
	"hive-signer.com",
	"hivesigner.net",
	"hivesiigner.com",
	"hiveesigner.com",
	"hlve.blog",
	"hiive.blog",
	"hive.bl0g",
	"hive-keychain.com",
	"hivekeychain.net",
	"hive-keychain.net",
	"peaked.com",
	"peakd.co",
	"peakd.net",
	"peakkd.com",
	"peakd-wallet.com",
	"ecency.co",
	"ecency.net",
	"ecencyy.com",
	"ecency-wallet.com",
	"blocktrades.net",
	"blocktrade.us",
	"bl0cktrades.us",
	"blocktrades-exchange.com",
	"hive-airdrop.com",
	"hiveairdrop.io",
	"hive-giveaway.com",
	"hivepower-claim.com",
	"hive-rewards.com",
	"claim-hive.com",
	"wallet-hive.com",
	"wallet.hive-blog.com",
	"hivedao.net",
	"hive-dao.com",
}
