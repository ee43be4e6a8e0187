// Package ratelimit implements REST rate limiting: classifying outbound
// calls into route "buckets", serializing each bucket's requests through an
// ordered ticket queue, learning bucket parameters from response headers,
// and honouring a global cooldown that preempts every bucket.
package ratelimit

import "fmt"

// Path is a structured route template, not a concrete URL — fetching
// messages in channel A and channel B are different Paths, and so
// different local buckets. The limiter keys buckets by Path alone; a
// shared x-ratelimit-bucket id reported for two Paths does not merge them.
type Path struct {
	Method  string
	Route   string
	GuildID uint64
	ChannelID uint64
	WebhookID uint64
}

// String renders the stable key the limiter's bucket registry is indexed
// by.
func (p Path) String() string {
	return fmt.Sprintf("%s:%s:%d:%d:%d", p.Method, p.Route, p.GuildID, p.ChannelID, p.WebhookID)
}

// Route template constructors mirror veteran-software-discord-api-wrapper's
// routes.go: one constructor per distinct rate-limit-relevant endpoint
// shape, keyed by method + templated path with the concrete ids folded in
// as classification fields rather than interpolated into a URL string.
func GetChannelMessages(channelID uint64) Path {
	return Path{Method: "GET", Route: "/channels/:id/messages", ChannelID: channelID}
}

func PostChannelMessages(channelID uint64) Path {
	return Path{Method: "POST", Route: "/channels/:id/messages", ChannelID: channelID}
}

func DeleteChannelMessage(channelID uint64) Path {
	return Path{Method: "DELETE", Route: "/channels/:id/messages/:id", ChannelID: channelID}
}

func GetGuild(guildID uint64) Path {
	return Path{Method: "GET", Route: "/guilds/:id", GuildID: guildID}
}

func PatchGuildChannel(guildID uint64) Path {
	return Path{Method: "PATCH", Route: "/guilds/:id/channels", GuildID: guildID}
}

func PostWebhookExecute(webhookID uint64) Path {
	return Path{Method: "POST", Route: "/webhooks/:id/:token", WebhookID: webhookID}
}

func GetGatewayBot() Path {
	return Path{Method: "GET", Route: "/gateway/bot"}
}
