package model

// Guild is a single platform "server". Member, Channel, Role, Emoji,
// Presence and VoiceState rows reference a Guild by ID rather than
// embedding inside it, so the cache can update each table independently.
type Guild struct {
	ID                          Snowflake   `json:"id"`
	Name                        string      `json:"name"`
	Icon                        string      `json:"icon"`
	Splash                      string      `json:"splash"`
	OwnerID                     Snowflake   `json:"owner_id"`
	Region                      string      `json:"region"`
	AFKChannelID                Snowflake   `json:"afk_channel_id,omitempty"`
	AFKTimeout                  int         `json:"afk_timeout"`
	VerificationLevel           int         `json:"verification_level"`
	DefaultMessageNotifications int         `json:"default_message_notifications"`
	ExplicitContentFilter       int         `json:"explicit_content_filter"`
	Roles                       []Snowflake `json:"-"`
	Emojis                      []Snowflake `json:"-"`
	Features                    []string    `json:"features"`
	MFALevel                   int          `json:"mfa_level"`
	ApplicationID               Snowflake   `json:"application_id,omitempty"`
	WidgetEnabled               bool        `json:"widget_enabled,omitempty"`
	WidgetChannelID              Snowflake   `json:"widget_channel_id,omitempty"`
	SystemChannelID              Snowflake   `json:"system_channel_id,omitempty"`
	JoinedAt                    string      `json:"joined_at,omitempty"`
	Large                       bool        `json:"large,omitempty"`
	Unavailable                 bool        `json:"unavailable,omitempty"`
	MemberCount                 int         `json:"member_count,omitempty"`
	MaxPresences                int         `json:"max_presences,omitempty"`
	MaxMembers                  int         `json:"max_members,omitempty"`
	VanityURLCode                string      `json:"vanity_url_code,omitempty"`
	Description                 string      `json:"description,omitempty"`
	Banner                      string      `json:"banner,omitempty"`
	PremiumTier                 int         `json:"premium_tier"`
	PremiumSubscriptionCount    int         `json:"premium_subscription_count,omitempty"`
	PreferredLocale              string      `json:"preferred_locale,omitempty"`
}

// UnavailableGuild is the minimal row the cache keeps for a guild that
// appeared in Ready's guilds list flagged unavailable, or that went
// unavailable via a GuildDelete carrying unavailable:true. It is tracked in
// its own set, never promoted into the Guild table until a matching
// GuildCreate arrives.
type UnavailableGuild struct {
	ID          Snowflake `json:"id"`
	Unavailable bool      `json:"unavailable"`
}
