package moderation

import (
	"fmt"
	"math"

	"github.com/bwmarrin/discordgo"
	"github.com/prismbot/prism/cache"
	"github.com/prismbot/prism/helpers"
	"github.com/prismbot/prism/metrics"
	"github.com/prismbot/prism/models"
)

const (
	embedColorMatchExact = 0x57f287
	embedColorMatchFuzzy = 0xfee75c
)

// PhraseMatch is one phrase that cleared its threshold against a message
type PhraseMatch struct {
	Phrase       models.Phrase
	LogChannelID string
	Score        float64
}

// PhraseEngine scans messages against the configured phrase rules and
// reports hits to the rules' log channels
type PhraseEngine struct{}

// LoadRules reads all phrase matcher documents. Rules are loaded fresh on
// every scan so edits take effect without a restart.
func (e *PhraseEngine) LoadRules() (rules []models.PhraseMatcherEntry, err error) {
	err = helpers.MDbIter(helpers.MdbCollection(models.PhraseMatcherTable).Find(nil)).All(&rules)
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// Scan returns every phrase whose similarity to $content clears its threshold
func (e *PhraseEngine) Scan(content string, rules []models.PhraseMatcherEntry) (matches []PhraseMatch) {
	for _, rule := range rules {
		for _, phrase := range rule.Phrases {
			score := Similarity(content, phrase.Content)
			if score >= phrase.MatchThreshold {
				matches = append(matches, PhraseMatch{
					Phrase:       phrase,
					LogChannelID: rule.LogChannelID,
					Score:        score,
				})
			}
		}
	}
	return matches
}

// LogMatch posts the match report to the rule's log channel, best effort
func (e *PhraseEngine) LogMatch(msg *discordgo.Message, match PhraseMatch) {
	color := embedColorMatchFuzzy
	if match.Score == 100 {
		color = embedColorMatchExact
	}

	embed := &discordgo.MessageEmbed{
		Title: "Matched message",
		Color: color,
		Description: fmt.Sprintf("[Jump to message](https://discord.com/channels/%s/%s/%s)",
			msg.GuildID, msg.ChannelID, msg.ID),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Message", Value: msg.Content},
			{Name: "Phrase", Value: match.Phrase.Content},
			{Name: "Author", Value: msg.Author.ID},
			{Name: "Threshold match (%)", Value: fmt.Sprintf("%d%%", int(math.Round(match.Score)))},
		},
	}

	_, err := helpers.SendEmbed(match.LogChannelID, embed)
	if err != nil {
		cache.GetLogger().WithField("module", "moderation").Debug(
			"failed to deliver phrase match log: " + err.Error())
		return
	}

	metrics.PhraseMatches.Add(1)
}
