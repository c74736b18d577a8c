package embed

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Compile-time interface checks.
var (
	_ Embedder = YouTube{}
	_ Embedder = Vimeo{}
	_ Embedder = Twitch{}
	_ Embedder = Spotify{}
	_ Embedder = ThreeSpeak{}
	_ Embedder = Twitter{}
)

// ---------------------------------------------------------------------------
// YouTube
// ---------------------------------------------------------------------------

var (
	youtubeText   = regexp.MustCompile(`(?i)https?://(?:www\.|m\.)?(?:youtube\.com/(?:watch\?(?:\S*?&)?v=|embed/|shorts/|live/)|youtu\.be/)([A-Za-z0-9_-]{11})\S*`)
	youtubeIframe = regexp.MustCompile(`(?i)^(?:https?:)?//(?:www\.)?youtube(?:-nocookie)?\.com/embed/([A-Za-z0-9_-]+)`)
)

// YouTube handles watch, short-link, shorts and embed URLs.
type YouTube struct{}

func (YouTube) Type() string { return "youtube" }

func (YouTube) Metadata(text string) (*Metadata, bool) {
	m := youtubeText.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	id := m[1]
	return &Metadata{
		ID:    id,
		URL:   m[0],
		Type:  "youtube",
		Image: "https://img.youtube.com/vi/" + id + "/0.jpg",
		Link:  "https://www.youtube.com/watch?v=" + id,
	}, true
}

func (YouTube) Embed(id string, size Size) string {
	return videoWrapper("https://www.youtube.com/embed/"+html.EscapeString(id), size, "")
}

func (YouTube) Whitelist() WhitelistEntry {
	return submatchRule("youtube", youtubeIframe, func(m []string) string {
		return "https://www.youtube.com/embed/" + m[1]
	})
}

// ---------------------------------------------------------------------------
// Vimeo
// ---------------------------------------------------------------------------

var (
	vimeoText   = regexp.MustCompile(`(?i)https?://(?:www\.)?(?:vimeo\.com/|player\.vimeo\.com/video/)(\d+)\S*`)
	vimeoIframe = regexp.MustCompile(`(?i)^(?:https?:)?//player\.vimeo\.com/video/(\d+)`)
)

// Vimeo handles numeric video URLs.
type Vimeo struct{}

func (Vimeo) Type() string { return "vimeo" }

func (Vimeo) Metadata(text string) (*Metadata, bool) {
	m := vimeoText.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return &Metadata{
		ID:   m[1],
		URL:  m[0],
		Type: "vimeo",
		Link: "https://vimeo.com/" + m[1],
	}, true
}

func (Vimeo) Embed(id string, size Size) string {
	return videoWrapper("https://player.vimeo.com/video/"+html.EscapeString(id), size, "")
}

func (Vimeo) Whitelist() WhitelistEntry {
	return submatchRule("vimeo", vimeoIframe, func(m []string) string {
		return "https://player.vimeo.com/video/" + m[1]
	})
}

// ---------------------------------------------------------------------------
// Twitch
// ---------------------------------------------------------------------------

var (
	twitchText   = regexp.MustCompile(`(?i)https?://(?:www\.|m\.)?twitch\.tv/(?:videos/(\d+)|([A-Za-z0-9][A-Za-z0-9_]{2,24}))\S*`)
	twitchIframe = regexp.MustCompile(`(?i)^(?:https?:)?//(?:player\.)?twitch\.tv/\?(channel|video)=([A-Za-z0-9_]+)`)
)

// Twitch handles channel and video URLs. The player refuses to load
// unless ParentDomain names the embedding page's host.
type Twitch struct {
	ParentDomain string
}

func (Twitch) Type() string { return "twitch" }

func (Twitch) Metadata(text string) (*Metadata, bool) {
	m := twitchText.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	if m[1] != "" {
		return &Metadata{
			ID:   "?video=" + m[1],
			URL:  m[0],
			Type: "twitch",
			Link: "https://www.twitch.tv/videos/" + m[1],
		}, true
	}
	return &Metadata{
		ID:   "?channel=" + m[2],
		URL:  m[0],
		Type: "twitch",
		Link: "https://www.twitch.tv/" + m[2],
	}, true
}

func (t Twitch) Embed(id string, size Size) string {
	return videoWrapper(html.EscapeString(t.src(id)), size, "")
}

func (t Twitch) Whitelist() WhitelistEntry {
	return submatchRule("twitch", twitchIframe, func(m []string) string {
		return t.src("?" + strings.ToLower(m[1]) + "=" + m[2])
	})
}

func (t Twitch) src(id string) string {
	return "https://player.twitch.tv/" + id + "&parent=" + t.ParentDomain
}

// ---------------------------------------------------------------------------
// Spotify
// ---------------------------------------------------------------------------

var (
	spotifyText   = regexp.MustCompile(`(?i)https?://open\.spotify\.com/(?:embed/|embed-podcast/)?(playlist|show|episode|album|track|artist)/([A-Za-z0-9]+)\S*`)
	spotifyIframe = regexp.MustCompile(`(?i)^(?:https?:)?//open\.spotify\.com/(?:embed|embed-podcast)/(playlist|show|episode|album|track|artist)/([A-Za-z0-9]+)`)
)

// Spotify handles playlists, albums, tracks, artists and podcasts.
type Spotify struct{}

func (Spotify) Type() string { return "spotify" }

func (Spotify) Metadata(text string) (*Metadata, bool) {
	m := spotifyText.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	kind := strings.ToLower(m[1])
	return &Metadata{
		ID:   spotifyID(kind, m[2]),
		URL:  m[0],
		Type: "spotify",
		Link: "https://open.spotify.com/" + kind + "/" + m[2],
	}, true
}

func (Spotify) Embed(id string, size Size) string {
	return videoWrapper("https://open.spotify.com/"+html.EscapeString(id), size,
		` allow="encrypted-media"`)
}

func (Spotify) Whitelist() WhitelistEntry {
	return submatchRule("spotify", spotifyIframe, func(m []string) string {
		return "https://open.spotify.com/" + spotifyID(strings.ToLower(m[1]), m[2])
	})
}

// spotifyID picks the podcast player for shows and episodes.
func spotifyID(kind, id string) string {
	prefix := "embed"
	if kind == "show" || kind == "episode" {
		prefix = "embed-podcast"
	}
	return prefix + "/" + kind + "/" + id
}

// ---------------------------------------------------------------------------
// 3Speak
// ---------------------------------------------------------------------------

var (
	threeSpeakText   = regexp.MustCompile(`(?i)https?://(?:www\.)?3speak\.(?:tv|co|online)/(?:watch|embed)\?v=([A-Za-z0-9._-]+/[A-Za-z0-9_-]+)\S*`)
	threeSpeakIframe = regexp.MustCompile(`(?i)^(?:https?:)?//(?:www\.)?3speak\.(?:tv|co|online)/embed\?v=([A-Za-z0-9._-]+/[A-Za-z0-9_-]+)`)
)

// ThreeSpeak handles watch and embed URLs on every 3Speak domain. The id
// is "<author>/<permlink>".
type ThreeSpeak struct{}

func (ThreeSpeak) Type() string { return "threespeak" }

func (ThreeSpeak) Metadata(text string) (*Metadata, bool) {
	m := threeSpeakText.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return &Metadata{
		ID:   m[1],
		URL:  m[0],
		Type: "threespeak",
		Link: "https://3speak.tv/watch?v=" + m[1],
	}, true
}

func (ThreeSpeak) Embed(id string, size Size) string {
	return videoWrapper("https://3speak.tv/embed?v="+html.EscapeString(id), size, "")
}

func (ThreeSpeak) Whitelist() WhitelistEntry {
	return submatchRule("threespeak", threeSpeakIframe, func(m []string) string {
		return "https://3speak.tv/embed?v=" + m[1]
	})
}

// ---------------------------------------------------------------------------
// Twitter / X
// ---------------------------------------------------------------------------

var (
	twitterText   = regexp.MustCompile(`(?i)https?://(?:www\.|mobile\.)?(?:twitter|x)\.com/([A-Za-z0-9_]{1,15})/status(?:es)?/(\d+)\S*`)
	twitterIframe = regexp.MustCompile(`(?i)^(?:https?:)?//platform\.twitter\.com/embed/Tweet\.html\?id=(\d+)`)
)

// Twitter handles status URLs on twitter.com and x.com.
type Twitter struct{}

func (Twitter) Type() string { return "twitter" }

func (Twitter) Metadata(text string) (*Metadata, bool) {
	m := twitterText.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return &Metadata{
		ID:   m[2],
		URL:  m[0],
		Type: "twitter",
		Link: "https://twitter.com/" + m[1] + "/status/" + m[2],
	}, true
}

func (Twitter) Embed(id string, size Size) string {
	return fmt.Sprintf(
		`<div class="twitter-embed"><iframe width="%d" height="%d" src="https://platform.twitter.com/embed/Tweet.html?id=%s" frameborder="0" allowfullscreen="allowfullscreen"></iframe></div>`,
		size.Width, size.Height, html.EscapeString(id),
	)
}

func (Twitter) Whitelist() WhitelistEntry {
	return submatchRule("twitter", twitterIframe, func(m []string) string {
		return "https://platform.twitter.com/embed/Tweet.html?id=" + m[1]
	})
}
