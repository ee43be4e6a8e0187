package cache

import (
	"github.com/sandwich-go/corrivalry/gatewayevent"
	"github.com/sandwich-go/corrivalry/model"
)

// applyGuildCreate inserts the guild row and splits its embedded arrays
// into their owning tables — matching state.go's GuildAdd, which iterates
// g.Channels/Roles/Emojis/Members/Presences/VoiceStates individually. The
// guild→channels, guild→roles and guild→emojis indices are replaced with
// the payload's ids; the guild→members, guild→presences and
// guild→voice-states indices are only added to, so ids indexed for this
// guild before the GuildCreate stay in them.
func (c *Cache) applyGuildCreate(p *gatewayevent.GuildCreate) {
	g := *p.Guild

	c.unavailableMu.Lock()
	delete(c.unavailable, g.ID)
	c.unavailableMu.Unlock()

	var channelIDs, roleIDs, emojiIDs []model.Snowflake

	for _, ch := range p.Channels {
		cp := *ch
		cp.GuildID = g.ID
		c.guildChannelsMu.Lock()
		c.guildChannels[cp.ID] = &cp
		c.guildChannelsMu.Unlock()
		channelIDs = append(channelIDs, cp.ID)
	}
	for _, r := range p.Roles {
		rp := *r
		rp.GuildID = g.ID
		c.rolesMu.Lock()
		c.roles[rp.ID] = &rp
		c.rolesMu.Unlock()
		roleIDs = append(roleIDs, rp.ID)
	}
	for _, e := range p.Emojis {
		ep := *e
		ep.GuildID = g.ID
		c.emojisMu.Lock()
		c.emojis[ep.ID] = &ep
		c.emojisMu.Unlock()
		emojiIDs = append(emojiIDs, ep.ID)
	}
	for _, m := range p.Members {
		c.upsertMember(g.ID, m)
	}
	for _, pr := range p.Presences {
		prc := *pr
		prc.GuildID = g.ID
		c.presencesMu.Lock()
		c.presences[presenceKey{g.ID, pr.UserID}] = &prc
		c.presencesMu.Unlock()
		c.guildPresenceIDs.add(g.ID, pr.UserID)
	}
	for _, v := range p.VoiceStates {
		vc := *v
		vc.GuildID = g.ID
		c.voiceStatesMu.Lock()
		c.voiceStates[voiceKey{g.ID, v.UserID}] = &vc
		c.voiceStatesMu.Unlock()
		c.guildVoiceStateIDs.add(g.ID, v.UserID)
	}

	c.guildChannelIDs.replaceGuild(g.ID, channelIDs)
	c.guildRoleIDs.replaceGuild(g.ID, roleIDs)
	c.guildEmojiIDs.replaceGuild(g.ID, emojiIDs)

	g.Roles = roleIDs
	g.Emojis = emojiIDs
	c.guildsMu.Lock()
	c.guilds[g.ID] = &g
	c.guildsMu.Unlock()
}

// applyGuildUpdate merges the listed fields into the existing row; an
// absent guild is a no-op. max_presences/premium_subscription_count
// default per the field-level rules spec §4.1.3 names explicitly.
func (c *Cache) applyGuildUpdate(g *model.Guild) {
	c.guildsMu.Lock()
	defer c.guildsMu.Unlock()
	existing, ok := c.guilds[g.ID]
	if !ok {
		return
	}
	cp := *existing
	cp.Name = g.Name
	cp.Icon = g.Icon
	cp.Splash = g.Splash
	cp.OwnerID = g.OwnerID
	cp.Region = g.Region
	cp.AFKChannelID = g.AFKChannelID
	cp.AFKTimeout = g.AFKTimeout
	cp.VerificationLevel = g.VerificationLevel
	cp.DefaultMessageNotifications = g.DefaultMessageNotifications
	cp.ExplicitContentFilter = g.ExplicitContentFilter
	cp.Features = g.Features
	cp.MFALevel = g.MFALevel
	cp.ApplicationID = g.ApplicationID
	cp.WidgetEnabled = g.WidgetEnabled
	cp.WidgetChannelID = g.WidgetChannelID
	cp.SystemChannelID = g.SystemChannelID
	cp.VanityURLCode = g.VanityURLCode
	cp.Description = g.Description
	cp.Banner = g.Banner
	cp.PremiumTier = g.PremiumTier
	cp.PreferredLocale = g.PreferredLocale

	cp.MaxPresences = g.MaxPresences
	if cp.MaxPresences == 0 {
		cp.MaxPresences = 25000
	}
	cp.PremiumSubscriptionCount = g.PremiumSubscriptionCount
	cp.MaxMembers = g.MaxMembers

	c.guilds[g.ID] = &cp
}

// applyGuildDelete cascades: remove the guild row, then for every
// auxiliary index remove each referenced base row and the index entry
// itself, matching original_source's updates.rs GuildDelete handler
// (remove_ids over channels/emojis/roles/members/presences/voice_states).
func (c *Cache) applyGuildDelete(p *gatewayevent.GuildDelete) {
	c.guildsMu.Lock()
	delete(c.guilds, p.ID)
	c.guildsMu.Unlock()

	if p.Unavailable {
		c.unavailableMu.Lock()
		c.unavailable[p.ID] = struct{}{}
		c.unavailableMu.Unlock()
	}

	for _, id := range c.guildChannelIDs.removeGuild(p.ID) {
		c.guildChannelsMu.Lock()
		delete(c.guildChannels, id)
		c.guildChannelsMu.Unlock()
	}
	for _, id := range c.guildEmojiIDs.removeGuild(p.ID) {
		c.emojisMu.Lock()
		delete(c.emojis, id)
		c.emojisMu.Unlock()
	}
	for _, id := range c.guildRoleIDs.removeGuild(p.ID) {
		c.rolesMu.Lock()
		delete(c.roles, id)
		c.rolesMu.Unlock()
	}
	for _, userID := range c.guildMemberIDs.removeGuild(p.ID) {
		c.membersMu.Lock()
		delete(c.members, memberKey{p.ID, userID})
		c.membersMu.Unlock()
		c.uninternUser(p.ID, userID)
	}
	for _, userID := range c.guildPresenceIDs.removeGuild(p.ID) {
		c.presencesMu.Lock()
		delete(c.presences, presenceKey{p.ID, userID})
		c.presencesMu.Unlock()
	}
	for _, userID := range c.guildVoiceStateIDs.removeGuild(p.ID) {
		c.voiceStatesMu.Lock()
		delete(c.voiceStates, voiceKey{p.ID, userID})
		c.voiceStatesMu.Unlock()
	}
}

// applyGuildEmojisUpdate replaces the guild's whole emoji set with the
// payload, rather than merging field-by-field.
func (c *Cache) applyGuildEmojisUpdate(p *gatewayevent.GuildEmojisUpdate) {
	old := c.guildEmojiIDs.list(p.GuildID)
	for _, id := range old {
		c.emojisMu.Lock()
		delete(c.emojis, id)
		c.emojisMu.Unlock()
	}
	ids := make([]model.Snowflake, 0, len(p.Emojis))
	for _, e := range p.Emojis {
		ep := *e
		ep.GuildID = p.GuildID
		c.emojisMu.Lock()
		c.emojis[ep.ID] = &ep
		c.emojisMu.Unlock()
		ids = append(ids, ep.ID)
	}
	c.guildEmojiIDs.replaceGuild(p.GuildID, ids)
}

func (c *Cache) applyRoleUpsert(guildID model.Snowflake, r *model.Role) {
	rp := *r
	rp.GuildID = guildID
	c.rolesMu.Lock()
	c.roles[rp.ID] = &rp
	c.rolesMu.Unlock()
	c.guildRoleIDs.add(guildID, rp.ID)
}

func (c *Cache) applyRoleDelete(guildID, roleID model.Snowflake) {
	c.rolesMu.Lock()
	delete(c.roles, roleID)
	c.rolesMu.Unlock()
	c.guildRoleIDs.remove(guildID, roleID)
}
