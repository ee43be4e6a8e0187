package model

// User is a platform account. The cache keeps exactly one User row per ID
// in its user table; Member.User and Message.Author still carry their own
// copies of the user as received.
type User struct {
	ID            Snowflake `json:"id"`
	Username      string    `json:"username"`
	Discriminator string    `json:"discriminator"`
	Avatar        string    `json:"avatar"`
	Bot           bool      `json:"bot"`
	System        bool      `json:"system"`
	MFAEnabled    bool      `json:"mfa_enabled,omitempty"`
	Locale        string    `json:"locale,omitempty"`
	Verified      bool      `json:"verified,omitempty"`
	Email         string    `json:"email,omitempty"`
	Flags         int       `json:"flags,omitempty"`
	PremiumType   int       `json:"premium_type,omitempty"`
	PublicFlags   int       `json:"public_flags,omitempty"`
}

// CurrentUser is the Ready payload's "user" field: the identity the cache
// was authenticated as. The cache keeps exactly one of these, separately
// from the User table.
type CurrentUser struct {
	User
}
