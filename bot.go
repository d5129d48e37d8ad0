package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/karrick/tparse/v2"
	"github.com/prismbot/prism/cache"
	"github.com/prismbot/prism/helpers"
	"github.com/prismbot/prism/moderation"
	"github.com/prismbot/prism/models"
)

// pipeline is constructed in the launcher before the gateway connects
var pipeline *moderation.Pipeline

// BotOnReady gets called after the gateway connected
func BotOnReady(session *discordgo.Session, event *discordgo.Ready) {
	log := cache.GetLogger()

	log.WithField("module", "bot").Info("Connected to discord!")

	// Cache the session
	cache.SetSession(session)
}

// BotOnMessageCreate gets called after a new message was sent
// This will be called after *every* message on *every* server so it should die as soon as possible
// or spawn costly work inside of coroutines.
func BotOnMessageCreate(session *discordgo.Session, message *discordgo.MessageCreate) {
	// Ignore other bots
	if message.Author == nil || message.Author.Bot {
		return
	}

	// Ignore DMs
	if message.GuildID == "" {
		return
	}

	// Check if the message contains @mentions for us
	if isMentionCommand(message.Message, session.State.User.ID) {
		go func() {
			defer helpers.RecoverDiscord(message.Message)

			handleMentionCommand(message.Message)
		}()
		return
	}

	go func() {
		defer helpers.Recover()

		pipeline.Process(message.Message, message.Member)
	}()
}

// BotOnInteractionCreate completes the trigger opt-out flow when a
// "Don't remind me again" button gets clicked
func BotOnInteractionCreate(session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	if interaction.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := interaction.MessageComponentData().CustomID
	if !strings.HasPrefix(customID, "trigger-") {
		return
	}

	if interaction.GuildID == "" || interaction.Member == nil {
		return
	}

	err := pipeline.Triggers.OptOut(interaction.GuildID, interaction.Member.User.ID, customID)
	if err != nil {
		helpers.RelaxLog(err)
		return
	}

	session.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "Alright, I won't remind you about this again.",
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// isMentionCommand reports whether $msg addresses us directly. Mass pings
// never count as commands; they stay ordinary pipeline traffic.
func isMentionCommand(msg *discordgo.Message, botUserID string) bool {
	if msg.MentionEveryone {
		return false
	}

	return strings.HasPrefix(msg.Content, "<@") && len(msg.Mentions) > 0 && msg.Mentions[0].ID == botUserID
}

// handleMentionCommand matches @mention messages against the small admin
// command surface
func handleMentionCommand(msg *discordgo.Message) {
	content := strings.TrimSpace(strings.Replace(msg.Content, "<@"+cache.GetSession().State.User.ID+">", "", -1))
	args := strings.Fields(content)
	if len(args) == 0 {
		return
	}

	switch strings.ToUpper(args[0]) {
	case "PING":
		helpers.SendMessage(msg.ChannelID, "pong")

	case "AUTOSLOW":
		handleAutoSlowCommand(msg, args[1:])

	case "SLOWMODE":
		// SLOWMODE <duration>, e.g. SLOWMODE 2m30s
		if len(args) < 2 {
			helpers.SendMessage(msg.ChannelID, "Usage: SLOWMODE <duration>")
			return
		}
		helpers.RequireAdmin(msg, func() {
			until, err := tparse.AddDuration(time.Now(), args[1])
			if err != nil {
				helpers.SendMessage(msg.ChannelID, "I don't understand that duration.")
				return
			}

			seconds := int(time.Until(until).Round(time.Second).Seconds())
			if seconds < 0 {
				seconds = 0
			}

			_, err = cache.GetSession().ChannelEdit(msg.ChannelID, &discordgo.ChannelEdit{
				RateLimitPerUser: &seconds,
			})
			if err != nil {
				helpers.SendMessage(msg.ChannelID, "Failed to set the slow-mode delay.")
				return
			}
			helpers.SendMessage(msg.ChannelID, fmt.Sprintf("Slow-mode delay set to %ds.", seconds))
		})

	case "ARM":
		// ARM TRIGGER <id> seeds the cooldown window so the trigger can fire
		if len(args) < 3 || strings.ToUpper(args[1]) != "TRIGGER" {
			return
		}
		helpers.RequireAdmin(msg, func() {
			pipeline.Cooldowns.Arm(moderation.CooldownKey(args[2]))
			helpers.SendMessage(msg.ChannelID, "Trigger armed.")
		})

	case "SET":
		if len(args) >= 3 && strings.ToUpper(args[1]) == "NAME" {
			name := strings.Join(args[2:], " ")
			err := helpers.SetNameOverride(msg.Author.ID, msg.GuildID, name)
			if err != nil {
				helpers.SendError(msg, err)
				return
			}
			helpers.SendMessage(msg.ChannelID, "Saved your name.")
		}

	case "GET":
		if len(args) >= 2 && strings.ToUpper(args[1]) == "NAME" {
			name, err := helpers.GetNameOverride(msg.Author.ID, msg.GuildID)
			if err != nil {
				helpers.SendError(msg, err)
				return
			}
			if name == "" {
				helpers.SendMessage(msg.ChannelID, "I have no name stored for you.")
				return
			}
			helpers.SendMessage(msg.ChannelID, "Stored name: "+name)
		}
	}
}

func handleAutoSlowCommand(msg *discordgo.Message, args []string) {
	if len(args) == 0 {
		helpers.SendMessage(msg.ChannelID, "Usage: AUTOSLOW SET <min> <max> <target msgs/s> <min change> <min change rate> | AUTOSLOW OFF | AUTOSLOW STATUS")
		return
	}

	switch strings.ToUpper(args[0]) {
	case "SET":
		if len(args) < 6 {
			helpers.SendMessage(msg.ChannelID, "Usage: AUTOSLOW SET <min> <max> <target msgs/s> <min change> <min change rate>")
			return
		}
		helpers.RequireAdmin(msg, func() {
			min, err1 := strconv.Atoi(args[1])
			max, err2 := strconv.Atoi(args[2])
			target, err3 := strconv.ParseFloat(args[3], 64)
			minChange, err4 := strconv.ParseFloat(args[4], 64)
			minChangeRate, err5 := strconv.ParseFloat(args[5], 64)
			if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil || min > max {
				helpers.SendMessage(msg.ChannelID, "Those parameters don't look right.")
				return
			}

			err := pipeline.AutoSlow.Add(msg.ChannelID, models.AutoSlowEntry{
				Min:              min,
				Max:              max,
				TargetMsgsPerSec: target,
				MinChange:        minChange,
				MinChangeRate:    minChangeRate,
				Enabled:          true,
			})
			if err != nil {
				helpers.SendError(msg, err)
				return
			}
			helpers.SendMessage(msg.ChannelID, "Auto slow-mode enabled for this channel.")
		})

	case "OFF":
		helpers.RequireAdmin(msg, func() {
			err := pipeline.AutoSlow.Remove(msg.ChannelID)
			if err != nil {
				helpers.SendError(msg, err)
				return
			}
			helpers.SendMessage(msg.ChannelID, "Auto slow-mode disabled for this channel.")
		})

	case "STATUS":
		state, err := pipeline.AutoSlow.Get(msg.ChannelID)
		if err != nil {
			helpers.SendError(msg, err)
			return
		}
		if state == nil {
			helpers.SendMessage(msg.ChannelID, "No auto slow-mode config for this channel.")
			return
		}

		config, lastDelay, rate := state.Snapshot()
		helpers.SendMessage(msg.ChannelID, fmt.Sprintf(
			"enabled: %t, bounds: [%d, %d]s, target: %.2f msgs/s, current rate: %.2f msgs/s, applied delay: %ds",
			config.Enabled, config.Min, config.Max, config.TargetMsgsPerSec, rate, lastDelay,
		))
	}
}
