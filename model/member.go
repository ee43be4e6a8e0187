package model

// Member is keyed by the composite (GuildID, UserID) pair: the same user
// can be a member of many guilds with different nicknames/roles in each.
// The User row it points at is interned once in the User table.
type Member struct {
	GuildID     Snowflake   `json:"guild_id"`
	UserID      Snowflake   `json:"-"`
	User        *User       `json:"user,omitempty"`
	Nick        string      `json:"nick,omitempty"`
	Roles       []Snowflake `json:"roles"`
	JoinedAt    string      `json:"joined_at"`
	PremiumSince string     `json:"premium_since,omitempty"`
	Deaf        bool        `json:"deaf"`
	Mute        bool        `json:"mute"`
	Pending     bool        `json:"pending,omitempty"`
}

// PartialMember is the trimmed member payload the gateway embeds inline on
// events like MESSAGE_CREATE: every field a full Member carries except
// User (the sibling Author field already supplies it) and PremiumSince.
// It must never replace a cached Member wholesale — only its fields are
// merged onto whatever row (if any) already exists for that user.
type PartialMember struct {
	Nick     string      `json:"nick,omitempty"`
	Roles    []Snowflake `json:"roles"`
	JoinedAt string      `json:"joined_at"`
	Deaf     bool        `json:"deaf"`
	Mute     bool        `json:"mute"`
	Pending  bool        `json:"pending,omitempty"`
}
