package embed

import "regexp"

// WhitelistEntry allows iframes whose src matches Pattern. Normalize
// returns the canonical src to use, or false to reject it.
type WhitelistEntry struct {
	Name      string
	Pattern   *regexp.Regexp
	Normalize func(src string) (string, bool)
}

var (
	soundCloudPattern = regexp.MustCompile(`(?i)^(?:https?:)?//w\.soundcloud\.com/player/`)
	soundCloudURL     = regexp.MustCompile(`url=([A-Za-z0-9%._~/:-]+)`)
)

// SoundCloudWhitelist allows SoundCloud player iframes, rebuilt with fixed
// player parameters.
func SoundCloudWhitelist() WhitelistEntry {
	return WhitelistEntry{
		Name:    "soundcloud",
		Pattern: soundCloudPattern,
		Normalize: func(src string) (string, bool) {
			m := soundCloudURL.FindStringSubmatch(src)
			if m == nil {
				return "", false
			}
			return "https://w.soundcloud.com/player/?url=" + m[1] +
				"&auto_play=false&hide_related=false&show_comments=true&show_user=true&show_reposts=false&visual=true", true
		},
	}
}

// submatchRule builds a rule whose canonical URL is derived from the
// submatches of pattern.
func submatchRule(name string, pattern *regexp.Regexp, build func(m []string) string) WhitelistEntry {
	return WhitelistEntry{
		Name:    name,
		Pattern: pattern,
		Normalize: func(src string) (string, bool) {
			m := pattern.FindStringSubmatch(src)
			if m == nil {
				return "", false
			}
			return build(m), true
		},
	}
}
