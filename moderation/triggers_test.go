package moderation

import (
	"testing"

	"github.com/prismbot/prism/models"
)

func catScamTrigger() models.Trigger {
	return models.Trigger{
		TriggerID: "cat-scam",
		Keywords:  [][]string{{"cat", "feline"}, {"scam"}},
		Enabled:   true,
	}
}

func TestMatchTriggerAllGroups(t *testing.T) {
	matched, ok := MatchTrigger("that cat is a scam", catScamTrigger())
	if !ok {
		t.Fatal("expected a match when every keyword group is satisfied")
	}
	if len(matched) != 2 || matched[0] != "cat" || matched[1] != "scam" {
		t.Fatalf("unexpected matched alternatives: %v", matched)
	}

	if _, ok := MatchTrigger("feline scam", catScamTrigger()); !ok {
		t.Fatal("expected a match via the second alternative of the first group")
	}
}

func TestMatchTriggerMissingGroup(t *testing.T) {
	if _, ok := MatchTrigger("cat", catScamTrigger()); ok {
		t.Fatal("a single group must not satisfy an AND of two groups")
	}
}

func TestMatchTriggerCaseInsensitive(t *testing.T) {
	if _, ok := MatchTrigger("that CAT is a SCAM", catScamTrigger()); !ok {
		t.Fatal("keyword matching should be case-insensitive")
	}
}

func TestMatchTriggerCustomEmojiSuppression(t *testing.T) {
	if _, ok := MatchTrigger("<:cat:123456789> scam", catScamTrigger()); ok {
		t.Fatal("custom emoji names must not count as keyword hits")
	}
	if _, ok := MatchTrigger("<a:cat:123456789> that cat is a scam", catScamTrigger()); ok {
		t.Fatal("a custom emoji suppresses textual matches in the same message")
	}
}

func TestMatchTriggerEscapesMetacharacters(t *testing.T) {
	trigger := models.Trigger{
		TriggerID: "cpp",
		Keywords:  [][]string{{"c++"}},
		Enabled:   true,
	}

	if _, ok := MatchTrigger("i like c++", trigger); !ok {
		t.Fatal("keyword metacharacters should match literally")
	}
	if _, ok := MatchTrigger("i like cpp", trigger); ok {
		t.Fatal("escaped keyword must not act as a pattern")
	}
}

func TestMatchTriggerEmptyKeywords(t *testing.T) {
	trigger := models.Trigger{TriggerID: "empty", Enabled: true}

	if _, ok := MatchTrigger("anything", trigger); ok {
		t.Fatal("a trigger without keyword groups must never match")
	}
}

func TestCooldownKey(t *testing.T) {
	if key := CooldownKey("abc"); key != "trigger-abc" {
		t.Fatalf("unexpected cooldown key: %s", key)
	}
}
