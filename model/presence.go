package model

// Status is the coarse online/idle/dnd/offline/invisible enumeration a
// Presence carries.
type Status string

const (
	StatusOnline       Status = "online"
	StatusIdle         Status = "idle"
	StatusDoNotDisturb Status = "dnd"
	StatusInvisible    Status = "invisible"
	StatusOffline      Status = "offline"
)

// Activity is one entry of a Presence's activity list (playing/streaming/
// listening/custom-status).
type Activity struct {
	Name string `json:"name"`
	Type int    `json:"type"`
	URL  string `json:"url,omitempty"`
}

// Presence is keyed by (GuildID, UserID), same composite as Member. A
// presence update stores only the Presence row: it is applied whether or
// not a Member row exists for the user, and it never creates one.
type Presence struct {
	GuildID    Snowflake  `json:"guild_id"`
	UserID     Snowflake  `json:"-"`
	Status     Status     `json:"status"`
	Activities []Activity `json:"activities"`
}

// VoiceState is keyed by (GuildID, UserID). A nil/zero ChannelID means the
// user left voice entirely, which the cache treats as a row delete rather
// than an upsert with a zero channel.
type VoiceState struct {
	GuildID   Snowflake `json:"guild_id"`
	ChannelID Snowflake `json:"channel_id"`
	UserID    Snowflake `json:"user_id"`
	SessionID string    `json:"session_id"`
	Deaf      bool      `json:"deaf"`
	Mute      bool      `json:"mute"`
	SelfDeaf  bool      `json:"self_deaf"`
	SelfMute  bool      `json:"self_mute"`
}
