package model

// Permission bit flags, matching the platform's documented permission
// bitset. Only a few commonly used bits are named; the rest pass through
// untouched as part of the int64 bitmask.
const (
	PermissionCreateInstantInvite int64 = 1 << 0
	PermissionKickMembers         int64 = 1 << 1
	PermissionBanMembers          int64 = 1 << 2
	PermissionAdministrator       int64 = 1 << 3
	PermissionManageChannels      int64 = 1 << 4
	PermissionManageGuild         int64 = 1 << 5
	PermissionViewChannel         int64 = 1 << 10
	PermissionSendMessages        int64 = 1 << 11

	PermissionAll int64 = -1
)

// MemberPermissions computes a member's effective permission bitset for a
// channel: guild-level role bits overlaid with the channel's per-role and
// per-member overwrites, short-circuiting to PermissionAll for
// administrators. The guild owner is handled by the caller, which knows the
// guild's OwnerID without needing a Role lookup.
func MemberPermissions(guildRoles []Role, channel *Channel, member *Member) int64 {
	var everyone Role
	roleSet := make(map[Snowflake]Role, len(guildRoles))
	for _, r := range guildRoles {
		roleSet[r.ID] = r
		if r.ID == 0 || r.Name == "@everyone" {
			everyone = r
		}
	}

	perms := everyone.Permissions
	for _, roleID := range member.Roles {
		if r, ok := roleSet[roleID]; ok {
			perms |= r.Permissions
		}
	}

	if perms&PermissionAdministrator == PermissionAdministrator {
		return PermissionAll
	}

	if channel == nil {
		return perms
	}

	var allow, deny int64
	for _, ow := range channel.PermissionOverwrites {
		if ow.Type == "role" && (ow.ID == everyone.ID) {
			perms &^= ow.Deny
			perms |= ow.Allow
		}
	}
	for _, ow := range channel.PermissionOverwrites {
		if ow.Type != "role" {
			continue
		}
		for _, roleID := range member.Roles {
			if ow.ID == roleID {
				allow |= ow.Allow
				deny |= ow.Deny
			}
		}
	}
	perms &^= deny
	perms |= allow

	id := member.UserID
	if id == 0 && member.User != nil {
		id = member.User.ID
	}
	for _, ow := range channel.PermissionOverwrites {
		if ow.Type == "member" && ow.ID == id {
			perms &^= ow.Deny
			perms |= ow.Allow
		}
	}

	return perms
}
