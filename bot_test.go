package main

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestIsMentionCommand(t *testing.T) {
	msg := &discordgo.Message{
		Content:  "<@bot-id> PING",
		Mentions: []*discordgo.User{{ID: "bot-id"}},
	}
	if !isMentionCommand(msg, "bot-id") {
		t.Fatal("a message starting with our mention should be a command")
	}

	if isMentionCommand(msg, "someone-else") {
		t.Fatal("a mention of another user must not be a command")
	}

	plain := &discordgo.Message{Content: "hello world"}
	if isMentionCommand(plain, "bot-id") {
		t.Fatal("a plain message must not be a command")
	}
}

func TestIsMentionCommandMassPing(t *testing.T) {
	// @everyone spam stays ordinary traffic so the moderation stages
	// (link gate, phrase scan, autoslow, triggers) still see it
	msg := &discordgo.Message{
		Content:         "<@bot-id> @everyone https://discord.gg/evil",
		Mentions:        []*discordgo.User{{ID: "bot-id"}},
		MentionEveryone: true,
	}
	if isMentionCommand(msg, "bot-id") {
		t.Fatal("a mass ping must not be treated as a command")
	}
}
