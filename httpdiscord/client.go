// Package httpdiscord is the minimal REST client used to discover the
// gateway URL and recommended shard count before a cluster starts
// shards. Grounded on client/client.go's NewClient/HandleRequest (host,
// scheme, auth, User-Agent defaulting) and manager.go's Gateway() response
// shape.
package httpdiscord

import (
	"context"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/sandwich-go/corrivalry/errs"
	"github.com/sandwich-go/corrivalry/ratelimit"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client is a tiny authenticated REST client. It exists purely to back
// gateway discovery; the rate-limited bulk of REST traffic is a caller
// concern the core does not prescribe (spec §1 scopes the exhaustive REST
// surface out). When Limiter is set, every request it issues goes through
// a Limiter ticket, the same admission/report handshake a full REST
// surface built atop this package would use for every route; with a nil
// Limiter, requests are sent unthrottled.
type Client struct {
	Token string

	HTTP      *http.Client
	URLHost   string
	URLScheme string
	UserAgent string
	Limiter   *ratelimit.Limiter
}

// New builds a Client. token is normalized to carry the "Bot " prefix,
// matching client/client.go's own `"Bot " + c.Token` call site. limiter may
// be nil, in which case requests are sent unthrottled (tests, or a caller
// managing its own rate limiting upstream).
func New(token string, httpClient *http.Client, limiter *ratelimit.Limiter) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		Token:     BotToken(token),
		HTTP:      httpClient,
		URLHost:   "discord.com",
		URLScheme: "https",
		UserAgent: "corrivalry (https://github.com/sandwich-go/corrivalry)",
		Limiter:   limiter,
	}
}

// BotToken prefixes token with "Bot " if it isn't already, per spec §6.
func BotToken(token string) string {
	if len(token) >= 4 && token[:4] == "Bot " {
		return token
	}
	return "Bot " + token
}

// SessionStartLimit is the session_start_limit sub-object of the gateway
// bot response, matching structs.go's SessionLimits.
type SessionStartLimit struct {
	Total          int `json:"total"`
	Remaining      int `json:"remaining"`
	ResetAfterMS   int `json:"reset_after"`
	MaxConcurrency int `json:"max_concurrency"`
}

// GatewayBotResponse is the `GET /gateway/bot` response body, matching
// structs.go's GatewayBotResponse.
type GatewayBotResponse struct {
	URL               string            `json:"url"`
	Shards            int               `json:"shards"`
	SessionStartLimit SessionStartLimit `json:"session_start_limit"`
}

// GatewayBot performs the single authed HTTP GET spec §6's "Gateway URL
// discovery" describes, returning the url, recommended shard count, and
// session start limit it yields.
func (c *Client) GatewayBot(ctx context.Context) (*GatewayBotResponse, error) {
	url := fmt.Sprintf("%s://%s/api/v8/gateway/bot", c.URLScheme, c.URLHost)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.New(errs.KindStartup, "httpdiscord.GatewayBot", err)
	}
	req.Header.Set("Authorization", c.Token)
	req.Header.Set("User-Agent", c.UserAgent)

	var tk *ratelimit.Ticket
	if c.Limiter != nil {
		tk = c.Limiter.Ticket(ratelimit.GetGatewayBot())
		if err := tk.Wait(ctx); err != nil {
			return nil, errs.New(errs.KindStartup, "httpdiscord.GatewayBot", err)
		}
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, errs.New(errs.KindStartup, "httpdiscord.GatewayBot", err)
	}
	defer res.Body.Close()

	if tk != nil {
		if h, parseErr := ratelimit.ParseHeaders(res.Header); parseErr == nil {
			tk.Report(h)
		}
	}

	if res.StatusCode == http.StatusUnauthorized {
		return nil, errs.New(errs.KindStartup, "httpdiscord.GatewayBot", fmt.Errorf("credential rejected"))
	}
	if res.StatusCode != http.StatusOK {
		return nil, errs.New(errs.KindStartup, "httpdiscord.GatewayBot", fmt.Errorf("unexpected status %d", res.StatusCode))
	}

	var body GatewayBotResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, errs.New(errs.KindStartup, "httpdiscord.GatewayBot", err)
	}
	return &body, nil
}
