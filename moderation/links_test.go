package moderation

import (
	"testing"

	"github.com/prismbot/prism/models"
)

func TestLinkGateHasURLs(t *testing.T) {
	gate := NewLinkPolicyGate()

	for _, text := range []string{
		"check out https://example.com",
		"join discord.gg/abc123",
		"www.example.org is down",
	} {
		if !gate.HasURLs(text) {
			t.Fatalf("expected a URL to be detected in %q", text)
		}
	}

	for _, text := range []string{
		"hello world",
		"no links here, promise",
	} {
		if gate.HasURLs(text) {
			t.Fatalf("did not expect a URL in %q", text)
		}
	}
}

func TestLinkGatePermitted(t *testing.T) {
	gate := NewLinkPolicyGate()
	settings := models.GuildConfig{
		LinkRoleWhitelist:    []string{"role-a"},
		LinkUserWhitelist:    []string{"user-a"},
		LinkChannelWhitelist: []string{"channel-a"},
	}

	if !gate.Permitted(settings, "channel-x", "user-x", []string{"role-a", "role-b"}) {
		t.Fatal("a whitelisted role should permit links")
	}
	if !gate.Permitted(settings, "channel-x", "user-a", nil) {
		t.Fatal("a whitelisted user should permit links")
	}
	if !gate.Permitted(settings, "channel-a", "user-x", nil) {
		t.Fatal("an exempt channel should permit links")
	}
	if gate.Permitted(settings, "channel-x", "user-x", []string{"role-b"}) {
		t.Fatal("no whitelist hit should deny links")
	}
	if gate.Permitted(models.GuildConfig{}, "channel-x", "user-x", nil) {
		t.Fatal("an empty allow-list should deny links")
	}
}
