package helpers

import (
	"github.com/bwmarrin/discordgo"
	"github.com/prismbot/prism/cache"
	"github.com/prismbot/prism/models"
)

// Capability levels as consumed by the message pipeline
const (
	PermLevelBlacklisted = -1
	PermLevelMember      = 0
	PermLevelHelper      = 1
	PermLevelModerator   = 2
	PermLevelAdmin       = 3
	PermLevelOwner       = 4
)

var botAdmins = []string{
	"116620585638821891",
}

// IsBotAdmin checks if $id is in $botAdmins
func IsBotAdmin(id string) bool {
	for _, s := range botAdmins {
		if s == id {
			return true
		}
	}

	return false
}

// GetPermLevel resolves the capability level of $member in the guild owning $msg
func GetPermLevel(msg *discordgo.Message, member *discordgo.Member, settings models.GuildConfig) int {
	for _, blacklisted := range settings.BlacklistedUserIDs {
		if blacklisted == msg.Author.ID {
			return PermLevelBlacklisted
		}
	}

	if IsBotAdmin(msg.Author.ID) {
		return PermLevelOwner
	}

	guild, err := cache.GetSession().State.Guild(msg.GuildID)
	if err == nil && guild.OwnerID == msg.Author.ID {
		return PermLevelOwner
	}

	if member == nil {
		return PermLevelMember
	}

	level := PermLevelMember
	for _, roleID := range member.Roles {
		if level < PermLevelAdmin && containsString(settings.AdminRoleIDs, roleID) {
			level = PermLevelAdmin
		}
		if level < PermLevelModerator && containsString(settings.ModeratorRoleIDs, roleID) {
			level = PermLevelModerator
		}
		if level < PermLevelHelper && containsString(settings.HelperRoleIDs, roleID) {
			level = PermLevelHelper
		}
	}

	return level
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func IsAdmin(msg *discordgo.Message) bool {
	channel, e := cache.GetSession().State.Channel(msg.ChannelID)
	if e != nil {
		return false
	}

	guild, e := cache.GetSession().State.Guild(channel.GuildID)
	if e != nil {
		return false
	}

	if msg.Author.ID == guild.OwnerID || IsBotAdmin(msg.Author.ID) {
		return true
	}

	guildMember, e := cache.GetSession().GuildMember(guild.ID, msg.Author.ID)
	if e != nil {
		return false
	}
	// Check if role may manage server
	for _, role := range guild.Roles {
		for _, userRole := range guildMember.Roles {
			if userRole == role.ID && role.Permissions&discordgo.PermissionManageServer == discordgo.PermissionManageServer {
				return true
			}
		}
	}

	return false
}

// RequireAdmin only calls $cb if the author is an admin or has MANAGE_SERVER permission
func RequireAdmin(msg *discordgo.Message, cb Callback) {
	if !IsAdmin(msg) {
		cache.GetSession().ChannelMessageSend(msg.ChannelID, "You are not allowed to do this.")
		return
	}

	cb()
}

// SendMessage sends $content to $channelID
func SendMessage(channelID string, content string) (message *discordgo.Message, err error) {
	return cache.GetSession().ChannelMessageSend(channelID, content)
}

// SendComplexMessage sends $data to $channelID
func SendComplexMessage(channelID string, data *discordgo.MessageSend) (message *discordgo.Message, err error) {
	return cache.GetSession().ChannelMessageSendComplex(channelID, data)
}

// SendEmbed sends $embed to $channelID
func SendEmbed(channelID string, embed *discordgo.MessageEmbed) (message *discordgo.Message, err error) {
	return cache.GetSession().ChannelMessageSendEmbed(channelID, embed)
}
