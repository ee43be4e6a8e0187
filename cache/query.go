package cache

import "github.com/sandwich-go/corrivalry/model"

// Guild returns a snapshot copy of the guild, or false if absent.
func (c *Cache) Guild(id model.Snowflake) (model.Guild, bool) {
	c.guildsMu.RLock()
	defer c.guildsMu.RUnlock()
	g, ok := c.guilds[id]
	if !ok {
		return model.Guild{}, false
	}
	return *g, true
}

// Channel returns a guild channel snapshot by id.
func (c *Cache) Channel(id model.Snowflake) (model.Channel, bool) {
	c.guildChannelsMu.RLock()
	defer c.guildChannelsMu.RUnlock()
	ch, ok := c.guildChannels[id]
	if !ok {
		return model.Channel{}, false
	}
	return *ch, true
}

// PrivateChannel returns a one-to-one DM channel snapshot by id.
func (c *Cache) PrivateChannel(id model.Snowflake) (model.Channel, bool) {
	c.privateChannelsMu.RLock()
	defer c.privateChannelsMu.RUnlock()
	ch, ok := c.privateChannels[id]
	if !ok {
		return model.Channel{}, false
	}
	return *ch, true
}

// Group returns a multi-party DM channel snapshot by id.
func (c *Cache) Group(id model.Snowflake) (model.Channel, bool) {
	c.groupChannelsMu.RLock()
	defer c.groupChannelsMu.RUnlock()
	ch, ok := c.groupChannels[id]
	if !ok {
		return model.Channel{}, false
	}
	return *ch, true
}

// Role returns a role snapshot by id.
func (c *Cache) Role(id model.Snowflake) (model.Role, bool) {
	c.rolesMu.RLock()
	defer c.rolesMu.RUnlock()
	r, ok := c.roles[id]
	if !ok {
		return model.Role{}, false
	}
	return *r, true
}

// Emoji returns an emoji snapshot by id.
func (c *Cache) Emoji(id model.Snowflake) (model.Emoji, bool) {
	c.emojisMu.RLock()
	defer c.emojisMu.RUnlock()
	e, ok := c.emojis[id]
	if !ok {
		return model.Emoji{}, false
	}
	return *e, true
}

// Member returns a member snapshot by (guild id, user id).
func (c *Cache) Member(guildID, userID model.Snowflake) (model.Member, bool) {
	c.membersMu.RLock()
	defer c.membersMu.RUnlock()
	m, ok := c.members[memberKey{guildID, userID}]
	if !ok {
		return model.Member{}, false
	}
	return *m, true
}

// Members returns the user ids of every member currently cached for guildID.
func (c *Cache) Members(guildID model.Snowflake) []model.Snowflake {
	return c.guildMemberIDs.list(guildID)
}

// VoiceState returns a voice state snapshot by (guild id, user id).
func (c *Cache) VoiceState(guildID, userID model.Snowflake) (model.VoiceState, bool) {
	c.voiceStatesMu.RLock()
	defer c.voiceStatesMu.RUnlock()
	v, ok := c.voiceStates[voiceKey{guildID, userID}]
	if !ok {
		return model.VoiceState{}, false
	}
	return *v, true
}

// VoiceStates returns the user ids with a cached voice state in guildID.
func (c *Cache) VoiceStates(guildID model.Snowflake) []model.Snowflake {
	return c.guildVoiceStateIDs.list(guildID)
}

// Presence returns a presence snapshot by (guild id, user id).
func (c *Cache) Presence(guildID, userID model.Snowflake) (model.Presence, bool) {
	c.presencesMu.RLock()
	defer c.presencesMu.RUnlock()
	p, ok := c.presences[presenceKey{guildID, userID}]
	if !ok {
		return model.Presence{}, false
	}
	return *p, true
}

// CurrentUser returns the authenticated identity's snapshot, if known.
func (c *Cache) CurrentUser() (model.CurrentUser, bool) {
	c.currentUserMu.RLock()
	defer c.currentUserMu.RUnlock()
	if c.currentUser == nil {
		return model.CurrentUser{}, false
	}
	return *c.currentUser, true
}

// Message returns a message snapshot by (channel id, message id).
func (c *Cache) Message(channelID, messageID model.Snowflake) (model.Message, bool) {
	c.messagesMu.RLock()
	cm, ok := c.messages[channelID]
	c.messagesMu.RUnlock()
	if !ok {
		return model.Message{}, false
	}
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	m, ok := cm.byID[messageID]
	if !ok {
		return model.Message{}, false
	}
	return *m, true
}

// User returns a user snapshot by id, along with the guild ids it is
// currently known in (as a member or as the author of a cached message).
func (c *Cache) User(id model.Snowflake) (model.User, []model.Snowflake, bool) {
	c.usersMu.RLock()
	defer c.usersMu.RUnlock()
	row, ok := c.users[id]
	if !ok {
		return model.User{}, nil, false
	}
	guilds := make([]model.Snowflake, 0, len(row.guilds))
	for g := range row.guilds {
		guilds = append(guilds, g)
	}
	return row.user, guilds, true
}

// IsUnavailable reports whether id is currently in the unavailable-guild
// set (invariant 5: this set and Guild are always disjoint).
func (c *Cache) IsUnavailable(id model.Snowflake) bool {
	c.unavailableMu.RLock()
	defer c.unavailableMu.RUnlock()
	_, ok := c.unavailable[id]
	return ok
}
