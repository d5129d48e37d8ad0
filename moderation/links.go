package moderation

import (
	"regexp"

	"github.com/prismbot/prism/models"
	"mvdan.cc/xurls/v2"
)

// LinkPolicyGate decides whether a message containing links may stay
type LinkPolicyGate struct {
	urlPattern *regexp.Regexp
}

func NewLinkPolicyGate() *LinkPolicyGate {
	return &LinkPolicyGate{
		urlPattern: xurls.Relaxed(),
	}
}

// HasURLs reports whether $text contains anything that looks like a link
func (g *LinkPolicyGate) HasURLs(text string) bool {
	return g.urlPattern.MatchString(text)
}

// Permitted consults the guild's link allow-list: a whitelisted role, a
// whitelisted user or an exempt channel all allow links
func (g *LinkPolicyGate) Permitted(settings models.GuildConfig, channelID string, userID string, roleIDs []string) bool {
	for _, exemptChannel := range settings.LinkChannelWhitelist {
		if exemptChannel == channelID {
			return true
		}
	}

	for _, allowedUser := range settings.LinkUserWhitelist {
		if allowedUser == userID {
			return true
		}
	}

	for _, allowedRole := range settings.LinkRoleWhitelist {
		for _, roleID := range roleIDs {
			if roleID == allowedRole {
				return true
			}
		}
	}

	return false
}
