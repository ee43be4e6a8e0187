package cache

import (
	"github.com/sandwich-go/corrivalry/gatewayevent"
	"github.com/sandwich-go/corrivalry/model"
)

var json = gatewayevent.JSON

// Apply decodes env's payload against the concrete type its Kind maps to
// and applies it to the cache. It never fails: a decode error or a
// structurally impossible update (spec's KindEventApplication) is a silent
// no-op, matching state.go's OnInterface, which never returns an error
// either.
func (c *Cache) Apply(env *gatewayevent.Envelope) {
	kind := gatewayevent.Kind(env.Type)
	bit, known := kindBit[kind]
	if !known {
		return
	}
	if !c.eventTypes.Has(bit) {
		return
	}

	switch kind {
	case gatewayevent.KindReady:
		var p gatewayevent.Ready
		if json.Unmarshal(env.RawData, &p) == nil {
			c.applyReady(&p)
		}
	case gatewayevent.KindChannelCreate, gatewayevent.KindChannelUpdate:
		var p gatewayevent.ChannelCreate
		if json.Unmarshal(env.RawData, &p) == nil && p.Channel != nil {
			c.applyChannelUpsert(p.Channel)
		}
	case gatewayevent.KindChannelDelete:
		var p gatewayevent.ChannelDelete
		if json.Unmarshal(env.RawData, &p) == nil && p.Channel != nil {
			c.applyChannelDelete(p.Channel)
		}
	case gatewayevent.KindChannelPinsUpdate:
		var p gatewayevent.ChannelPinsUpdate
		if json.Unmarshal(env.RawData, &p) == nil {
			c.applyChannelPinsUpdate(&p)
		}
	case gatewayevent.KindGuildCreate:
		var p gatewayevent.GuildCreate
		if json.Unmarshal(env.RawData, &p) == nil && p.Guild != nil {
			c.applyGuildCreate(&p)
		}
	case gatewayevent.KindGuildUpdate:
		var p gatewayevent.GuildUpdate
		if json.Unmarshal(env.RawData, &p) == nil && p.Guild != nil {
			c.applyGuildUpdate(p.Guild)
		}
	case gatewayevent.KindGuildDelete:
		var p gatewayevent.GuildDelete
		if json.Unmarshal(env.RawData, &p) == nil {
			c.applyGuildDelete(&p)
		}
	case gatewayevent.KindGuildEmojisUpdate:
		var p gatewayevent.GuildEmojisUpdate
		if json.Unmarshal(env.RawData, &p) == nil {
			c.applyGuildEmojisUpdate(&p)
		}
	case gatewayevent.KindGuildMemberAdd:
		var p gatewayevent.GuildMemberAdd
		if json.Unmarshal(env.RawData, &p) == nil && p.Member != nil {
			c.applyMemberAdd(p.GuildID, p.Member)
		}
	case gatewayevent.KindGuildMemberUpdate:
		var p gatewayevent.GuildMemberUpdate
		if json.Unmarshal(env.RawData, &p) == nil {
			c.applyMemberUpdate(&p)
		}
	case gatewayevent.KindGuildMemberRemove:
		var p gatewayevent.GuildMemberRemove
		if json.Unmarshal(env.RawData, &p) == nil && p.User != nil {
			c.applyMemberRemove(p.GuildID, p.User.ID)
		}
	case gatewayevent.KindGuildMembersChunk:
		var p gatewayevent.GuildMembersChunk
		if json.Unmarshal(env.RawData, &p) == nil {
			c.applyMemberChunk(&p)
		}
	case gatewayevent.KindGuildRoleCreate, gatewayevent.KindGuildRoleUpdate:
		var p gatewayevent.GuildRoleCreate
		if json.Unmarshal(env.RawData, &p) == nil && p.Role != nil {
			c.applyRoleUpsert(p.GuildID, p.Role)
		}
	case gatewayevent.KindGuildRoleDelete:
		var p gatewayevent.GuildRoleDelete
		if json.Unmarshal(env.RawData, &p) == nil {
			c.applyRoleDelete(p.GuildID, p.RoleID)
		}
	case gatewayevent.KindMessageCreate:
		var p gatewayevent.MessageCreate
		if json.Unmarshal(env.RawData, &p) == nil && p.Message != nil {
			c.applyMessageCreate(p.Message)
		}
	case gatewayevent.KindMessageUpdate:
		var p gatewayevent.MessageUpdate
		if json.Unmarshal(env.RawData, &p) == nil && p.Message != nil {
			c.applyMessageUpdate(p.Message)
		}
	case gatewayevent.KindMessageDelete:
		var p gatewayevent.MessageDelete
		if json.Unmarshal(env.RawData, &p) == nil {
			c.applyMessageDelete(p.ChannelID, p.ID)
		}
	case gatewayevent.KindMessageDeleteBulk:
		var p gatewayevent.MessageDeleteBulk
		if json.Unmarshal(env.RawData, &p) == nil {
			for _, id := range p.IDs {
				c.applyMessageDelete(p.ChannelID, id)
			}
		}
	case gatewayevent.KindPresenceUpdate:
		var p gatewayevent.PresenceUpdate
		if json.Unmarshal(env.RawData, &p) == nil && p.User != nil {
			c.applyPresenceUpdate(&p)
		}
	case gatewayevent.KindMessageReactionAdd:
		var p gatewayevent.MessageReactionAdd
		if json.Unmarshal(env.RawData, &p) == nil {
			c.applyReactionAdd(&p)
		}
	case gatewayevent.KindMessageReactionRemove:
		var p gatewayevent.MessageReactionRemove
		if json.Unmarshal(env.RawData, &p) == nil {
			c.applyReactionRemove(&p)
		}
	case gatewayevent.KindMessageReactionRemoveAll:
		var p gatewayevent.MessageReactionRemoveAll
		if json.Unmarshal(env.RawData, &p) == nil {
			c.applyReactionRemoveAll(p.ChannelID, p.MessageID)
		}
	case gatewayevent.KindUserUpdate:
		var p gatewayevent.UserUpdate
		if json.Unmarshal(env.RawData, &p) == nil && p.User != nil {
			c.applyUserUpdate(p.User)
		}
	case gatewayevent.KindVoiceStateUpdate:
		var p gatewayevent.VoiceStateUpdate
		if json.Unmarshal(env.RawData, &p) == nil && p.VoiceState != nil {
			c.applyVoiceStateUpdate(p.VoiceState)
		}
	}
}

func (c *Cache) applyReady(p *gatewayevent.Ready) {
	if p.User != nil {
		c.currentUserMu.Lock()
		cu := *p.User
		c.currentUser = &cu
		c.currentUserMu.Unlock()
	}
	for _, g := range p.Guilds {
		switch {
		case g.Unavailable:
			c.guildsMu.Lock()
			delete(c.guilds, g.ID)
			c.guildsMu.Unlock()
			c.unavailableMu.Lock()
			c.unavailable[g.ID] = struct{}{}
			c.unavailableMu.Unlock()
		case g.Guild != nil && g.Guild.Guild != nil:
			c.applyGuildCreate(g.Guild)
		}
	}
}

func (c *Cache) applyChannelUpsert(ch *model.Channel) {
	cp := *ch
	switch {
	case ch.GuildID != 0:
		c.guildChannelsMu.Lock()
		c.guildChannels[ch.ID] = &cp
		c.guildChannelsMu.Unlock()
		c.guildChannelIDs.add(ch.GuildID, ch.ID)
	case ch.Type == model.ChannelTypeGroupDM:
		c.groupChannelsMu.Lock()
		c.groupChannels[ch.ID] = &cp
		c.groupChannelsMu.Unlock()
	default:
		c.privateChannelsMu.Lock()
		c.privateChannels[ch.ID] = &cp
		c.privateChannelsMu.Unlock()
	}
}

func (c *Cache) applyChannelDelete(ch *model.Channel) {
	switch {
	case ch.GuildID != 0:
		c.guildChannelsMu.Lock()
		delete(c.guildChannels, ch.ID)
		c.guildChannelsMu.Unlock()
		c.guildChannelIDs.remove(ch.GuildID, ch.ID)
	case ch.Type == model.ChannelTypeGroupDM:
		c.groupChannelsMu.Lock()
		delete(c.groupChannels, ch.ID)
		c.groupChannelsMu.Unlock()
	default:
		c.privateChannelsMu.Lock()
		delete(c.privateChannels, ch.ID)
		c.privateChannelsMu.Unlock()
	}
}

// applyChannelPinsUpdate patches last_pin_timestamp on whichever variant
// owns the channel id, but only if that variant is text-capable. This
// preserves the documented (and possibly surprising) behavior of silently
// ignoring pins on voice/category channels — see the open question in
// DESIGN.md.
func (c *Cache) applyChannelPinsUpdate(p *gatewayevent.ChannelPinsUpdate) {
	if p.GuildID != 0 {
		c.guildChannelsMu.Lock()
		if ch, ok := c.guildChannels[p.ChannelID]; ok && ch.Type.IsText() {
			cp := *ch
			cp.LastPinTimestamp = p.LastPinTimestamp
			c.guildChannels[p.ChannelID] = &cp
		}
		c.guildChannelsMu.Unlock()
		return
	}
	c.privateChannelsMu.Lock()
	if ch, ok := c.privateChannels[p.ChannelID]; ok {
		cp := *ch
		cp.LastPinTimestamp = p.LastPinTimestamp
		c.privateChannels[p.ChannelID] = &cp
	}
	c.privateChannelsMu.Unlock()

	c.groupChannelsMu.Lock()
	if ch, ok := c.groupChannels[p.ChannelID]; ok {
		cp := *ch
		cp.LastPinTimestamp = p.LastPinTimestamp
		c.groupChannels[p.ChannelID] = &cp
	}
	c.groupChannelsMu.Unlock()
}
