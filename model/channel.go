package model

// ChannelType distinguishes the guild/private/group channel variants spec §3
// describes. It is carried as a plain int on the wire.
type ChannelType int

const (
	ChannelTypeGuildText ChannelType = iota
	ChannelTypeDM
	ChannelTypeGuildVoice
	ChannelTypeGroupDM
	ChannelTypeGuildCategory
	ChannelTypeGuildNews
	ChannelTypeGuildStore
)

// Channel is the union of the platform's channel variants. GuildID is zero
// for PrivateChannel/GroupChannel rows. LastPinTimestamp is only ever set
// on text-capable channels (guild text and news channels, private and
// group channels); the cache leaves it untouched for any other type.
type Channel struct {
	ID               Snowflake   `json:"id"`
	Type             ChannelType `json:"type"`
	GuildID          Snowflake   `json:"guild_id,omitempty"`
	Position         int         `json:"position,omitempty"`
	Name             string      `json:"name,omitempty"`
	Topic            string      `json:"topic,omitempty"`
	NSFW             bool        `json:"nsfw,omitempty"`
	LastMessageID    Snowflake   `json:"last_message_id,omitempty"`
	Bitrate          int         `json:"bitrate,omitempty"`
	UserLimit        int         `json:"user_limit,omitempty"`
	RateLimitPerUser int         `json:"rate_limit_per_user,omitempty"`
	Recipients       []Snowflake `json:"-"`
	Icon             string      `json:"icon,omitempty"`
	OwnerID          Snowflake   `json:"owner_id,omitempty"`
	ApplicationID    Snowflake   `json:"application_id,omitempty"`
	ParentID         Snowflake   `json:"parent_id,omitempty"`
	LastPinTimestamp string      `json:"last_pin_timestamp,omitempty"`
	PermissionOverwrites []PermissionOverwrite `json:"permission_overwrites,omitempty"`
}

// PermissionOverwrite holds a per-role or per-member permission override
// attached to a Channel.
type PermissionOverwrite struct {
	ID    Snowflake `json:"id"`
	Type  string    `json:"type"`
	Deny  int64     `json:"deny"`
	Allow int64     `json:"allow"`
}

// IsText reports whether pin timestamps are meaningful for this channel
// type. Used to decide whether a ChannelPinsUpdate event should be applied.
func (c ChannelType) IsText() bool {
	switch c {
	case ChannelTypeGuildText, ChannelTypeDM, ChannelTypeGroupDM, ChannelTypeGuildNews:
		return true
	default:
		return false
	}
}
