package moderation

import (
	"testing"

	"github.com/prismbot/prism/models"
)

func phraseRule(content string, threshold float64) models.PhraseMatcherEntry {
	return models.PhraseMatcherEntry{
		LogChannelID: "log-channel",
		Phrases: []models.Phrase{
			{Content: content, MatchThreshold: threshold},
		},
	}
}

func TestPhraseScanExactThreshold(t *testing.T) {
	engine := &PhraseEngine{}
	rules := []models.PhraseMatcherEntry{phraseRule("scam", 100)}

	if matches := engine.Scan("SCAM", rules); len(matches) != 1 {
		t.Fatal("a threshold of 100 should fire on an exact case-insensitive match")
	}

	// embedded occurrences score len(phrase)/len(message)*100 via the
	// substring shortcut, below 100
	if matches := engine.Scan("that is a scam", rules); len(matches) != 0 {
		t.Fatal("a threshold of 100 must not fire on an embedded occurrence")
	}

	if matches := engine.Scan("sham", rules); len(matches) != 0 {
		t.Fatal("a threshold of 100 must not fire on a near miss")
	}
}

func TestPhraseScanZeroThreshold(t *testing.T) {
	engine := &PhraseEngine{}
	rules := []models.PhraseMatcherEntry{phraseRule("anything", 0)}

	if matches := engine.Scan("completely unrelated text", rules); len(matches) != 1 {
		t.Fatal("a threshold of 0 should fire on every non-empty message")
	}
}

func TestPhraseScanReportsScore(t *testing.T) {
	engine := &PhraseEngine{}
	rules := []models.PhraseMatcherEntry{phraseRule("hello", 40)}

	matches := engine.Scan("hello world", rules)
	if len(matches) != 1 {
		t.Fatal("expected the phrase to clear its threshold")
	}

	expected := 5.0 / 11.0 * 100
	if matches[0].Score != expected {
		t.Fatalf("unexpected score: %f, expected %f", matches[0].Score, expected)
	}
	if matches[0].LogChannelID != "log-channel" {
		t.Fatalf("match should carry the rule's log channel, got %s", matches[0].LogChannelID)
	}
}

func TestPhraseScanMultipleRules(t *testing.T) {
	engine := &PhraseEngine{}
	rules := []models.PhraseMatcherEntry{
		phraseRule("free nitro", 30),
		phraseRule("skam", 80),
	}

	matches := engine.Scan("free nitro at discord.gg/evil", rules)
	if len(matches) != 1 {
		t.Fatalf("expected exactly one phrase hit, got %d", len(matches))
	}
}
