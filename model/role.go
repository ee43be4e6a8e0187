package model

// Role belongs to exactly one Guild. The cache keys roles by ID and keeps
// a separate guild-to-role-ids index in lockstep with the Role table;
// Guild.Roles holds the role ids as received in GuildCreate.
type Role struct {
	ID          Snowflake `json:"id"`
	GuildID     Snowflake `json:"guild_id"`
	Name        string    `json:"name"`
	Color       int       `json:"color"`
	Hoist       bool      `json:"hoist"`
	Position    int       `json:"position"`
	Permissions int64     `json:"permissions"`
	Managed     bool      `json:"managed"`
	Mentionable bool      `json:"mentionable"`
}

// Emoji belongs to exactly one Guild, same storage shape as Role.
type Emoji struct {
	ID            Snowflake   `json:"id"`
	GuildID       Snowflake   `json:"guild_id"`
	Name          string      `json:"name"`
	Roles         []Snowflake `json:"-"`
	RequireColons bool        `json:"require_colons"`
	Managed       bool        `json:"managed"`
	Animated      bool        `json:"animated"`
	Available     bool        `json:"available"`
}
