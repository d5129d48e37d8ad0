package moderation

import "testing"

func TestExtractInviteCodes(t *testing.T) {
	codes := ExtractInviteCodes("join discord.gg/abc123 or discord.gg/XYZ")
	if len(codes) != 2 || codes[0] != "abc123" || codes[1] != "XYZ" {
		t.Fatalf("unexpected invite codes: %v", codes)
	}

	codes = ExtractInviteCodes("https://discord.gg/qwerty come hang out")
	if len(codes) != 1 || codes[0] != "qwerty" {
		t.Fatalf("unexpected invite codes: %v", codes)
	}

	if codes = ExtractInviteCodes("no invites here"); len(codes) != 0 {
		t.Fatalf("expected no invite codes, got %v", codes)
	}
}
