package moderation

import (
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/globalsign/mgo/bson"
	"github.com/prismbot/prism/helpers"
	"github.com/prismbot/prism/metrics"
	"github.com/prismbot/prism/models"
)

const embedColorWarning = 0xe67e22

// custom emoji references look like <:name:id> or <a:name:id>; their names
// would otherwise count as keyword hits
var customEmojiPattern = regexp.MustCompile(`<a?:.+?:\d+>`)

// TriggerEngine evaluates keyword triggers against messages and sends the
// configured reminder reply for the first full match
type TriggerEngine struct {
	cooldowns *CooldownCache
}

func NewTriggerEngine(cooldowns *CooldownCache) *TriggerEngine {
	return &TriggerEngine{cooldowns: cooldowns}
}

// CooldownKey returns the cooldown cache key for $triggerID. The same key
// is used as the opt-out button id.
func CooldownKey(triggerID string) string {
	return "trigger-" + triggerID
}

// MatchTrigger reports whether $content satisfies every keyword group of
// $trigger. Groups AND together, alternatives within a group OR together.
// Returns the alternatives that matched, one per group.
func MatchTrigger(content string, trigger models.Trigger) (matched []string, ok bool) {
	if len(trigger.Keywords) == 0 {
		return nil, false
	}

	if customEmojiPattern.MatchString(content) {
		return nil, false
	}

	for _, group := range trigger.Keywords {
		groupMatched := false
		for _, alternative := range group {
			pattern, err := regexp.Compile("(?i)" + regexp.QuoteMeta(alternative))
			if err != nil {
				continue
			}
			if pattern.MatchString(content) {
				matched = append(matched, alternative)
				groupMatched = true
				break
			}
		}
		if !groupMatched {
			return nil, false
		}
	}

	return matched, true
}

// IsOptedOut checks whether $userID dismissed $triggerID on $guildID
func (e *TriggerEngine) IsOptedOut(guildID string, userID string, triggerID string) (bool, error) {
	count, err := helpers.MdbCount(models.TriggerOptOutTable, bson.M{
		"guildid":   guildID,
		"userid":    userID,
		"triggerid": triggerID,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// OptOut records that $userID does not want to see $triggerID again
func (e *TriggerEngine) OptOut(guildID string, userID string, triggerID string) error {
	return helpers.MDbUpsert(
		models.TriggerOptOutTable,
		bson.M{"guildid": guildID, "userid": userID, "triggerid": triggerID},
		models.TriggerOptOutEntry{
			GuildID:   guildID,
			UserID:    userID,
			TriggerID: triggerID,
		},
	)
}

// Evaluate runs $ctx's message against the guild's enabled triggers. The
// first full match from an armed trigger fires a reply; a successful send
// seeds the trigger's cooldown window. At most one trigger fires per
// message.
func (e *TriggerEngine) Evaluate(ctx *Context) {
	msg := ctx.Message

	for _, trigger := range ctx.Settings.Triggers {
		if !trigger.Enabled {
			continue
		}

		id := CooldownKey(trigger.TriggerID)

		optedOut, err := e.IsOptedOut(msg.GuildID, msg.Author.ID, id)
		if err != nil {
			helpers.RelaxLog(err)
			continue
		}
		if optedOut {
			continue
		}

		// the cooldown entry doubles as the arm flag: unknown keys never
		// fire, live windows suppress repeats
		if !e.cooldowns.Armed(id) {
			continue
		}

		matched, ok := MatchTrigger(msg.Content, trigger)
		if !ok {
			continue
		}

		reply := buildTriggerReply(trigger, id, matched)
		reply.Reference = msg.Reference()

		if _, err := helpers.SendComplexMessage(msg.ChannelID, reply); err == nil {
			e.cooldowns.Set(id, time.Duration(trigger.Cooldown)*time.Second)
			metrics.TriggersFired.Add(1)
		}

		// one trigger per message
		break
	}
}

func buildTriggerReply(trigger models.Trigger, customID string, matched []string) *discordgo.MessageSend {
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					CustomID: customID,
					Label:    "Don't remind me again",
					Style:    discordgo.PrimaryButton,
				},
			},
		},
	}

	if !trigger.Message.Embed {
		return &discordgo.MessageSend{
			Content:    trigger.Message.Content,
			Components: components,
		}
	}

	color, ok := helpers.ParseColor(trigger.Message.Color)
	if !ok {
		color = embedColorWarning
	}

	quoted := make([]string, 0, len(matched))
	for _, m := range matched {
		quoted = append(quoted, `"`+m+`"`)
	}

	return &discordgo.MessageSend{
		Embed: &discordgo.MessageEmbed{
			Title:       trigger.Message.Title,
			Description: trigger.Message.Description,
			Color:       color,
			Footer: &discordgo.MessageEmbedFooter{
				Text: "Matched: " + strings.Join(quoted, ", "),
			},
		},
		Components: components,
	}
}
