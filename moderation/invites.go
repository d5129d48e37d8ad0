package moderation

import (
	"regexp"
	"time"

	"github.com/bwmarrin/discordgo"
	rediscache "github.com/go-redis/cache"
	"github.com/prismbot/prism/cache"
	"github.com/prismbot/prism/helpers"
	"github.com/prismbot/prism/metrics"
)

const (
	embedColorSuccess = 0x57f287
	embedColorError   = 0xed4245

	inviteCacheExpiration = 10 * time.Minute
)

var invitePattern = regexp.MustCompile(`discord\.gg/([a-zA-Z0-9]+)`)

// InviteResolver looks up invite codes posted in chat and replies with
// what they point at
type InviteResolver struct{}

// ExtractInviteCodes returns all invite codes found in $text
func ExtractInviteCodes(text string) (codes []string) {
	for _, match := range invitePattern.FindAllStringSubmatch(text, -1) {
		codes = append(codes, match[1])
	}
	return codes
}

type resolvedInvite struct {
	GuildName string
	NSFWLevel int
	IconURL   string
}

// Resolve spawns one detached lookup per invite code in $msg. Lookups are
// independent: one failing does not block the others, and nothing waits
// for them.
func (r *InviteResolver) Resolve(msg *discordgo.Message) {
	for _, code := range ExtractInviteCodes(msg.Content) {
		go func(code string) {
			defer helpers.Recover()

			r.resolveOne(msg, code)
		}(code)
	}
}

func (r *InviteResolver) resolveOne(msg *discordgo.Message, code string) {
	cacheKey := "prism:invite:" + code

	var resolved resolvedInvite
	if cache.HasRedisClient() {
		if err := cache.GetRedisCacheCodec().Get(cacheKey, &resolved); err == nil {
			r.replyResolved(msg, resolved)
			return
		}
	}

	invite, err := cache.GetSession().Invite(code)
	if err != nil || invite.Guild == nil {
		helpers.SendComplexMessage(msg.ChannelID, &discordgo.MessageSend{
			Embed: &discordgo.MessageEmbed{
				Title:       "Failed to resolve guild",
				Description: "Guild may be banned, deleted, or the invite expired.",
				Color:       embedColorError,
			},
			Reference: msg.Reference(),
		})
		return
	}

	resolved = resolvedInvite{
		GuildName: invite.Guild.Name,
		NSFWLevel: int(invite.Guild.NSFWLevel),
		IconURL:   invite.Guild.IconURL(""),
	}

	if cache.HasRedisClient() {
		err = cache.GetRedisCacheCodec().Set(&rediscache.Item{
			Key:        cacheKey,
			Object:     resolved,
			Expiration: inviteCacheExpiration,
		})
		if err != nil {
			cache.GetLogger().WithField("module", "moderation").Debug(
				"failed to cache resolved invite: " + err.Error())
		}
	}

	r.replyResolved(msg, resolved)
}

func (r *InviteResolver) replyResolved(msg *discordgo.Message, resolved resolvedInvite) {
	sent, err := helpers.SendComplexMessage(msg.ChannelID, &discordgo.MessageSend{
		Embed: &discordgo.MessageEmbed{
			Title:       "Resolved guild",
			Description: "Name: " + resolved.GuildName,
			Color:       embedColorSuccess,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "NSFW Level", Value: nsfwLevelName(resolved.NSFWLevel)},
			},
		},
		Reference: msg.Reference(),
	})
	if err != nil {
		return
	}

	metrics.InvitesResolved.Add(1)

	if resolved.IconURL != "" {
		helpers.SendComplexMessage(sent.ChannelID, &discordgo.MessageSend{
			Content:   "Server avatar: ||" + resolved.IconURL + "||",
			Reference: sent.Reference(),
		})
	}
}

func nsfwLevelName(level int) string {
	switch discordgo.GuildNSFWLevel(level) {
	case discordgo.GuildNSFWLevelExplicit:
		return "Explicit"
	case discordgo.GuildNSFWLevelSafe:
		return "Safe"
	case discordgo.GuildNSFWLevelAgeRestricted:
		return "AgeRestricted"
	default:
		return "Default"
	}
}
