package moderation

import (
	"github.com/bwmarrin/discordgo"
	"github.com/prismbot/prism/cache"
	"github.com/prismbot/prism/helpers"
	"github.com/prismbot/prism/metrics"
	"github.com/prismbot/prism/models"
)

// Context carries one message through the pipeline together with its
// resolved guild config and the author's capability level
type Context struct {
	Message   *discordgo.Message
	Member    *discordgo.Member
	Settings  models.GuildConfig
	PermLevel int
}

// Pipeline wires the moderation components together. Components are
// constructed once at process start and handed around explicitly; there is
// no lazy registry.
type Pipeline struct {
	Settings  *SettingsCache
	Cooldowns *CooldownCache
	AutoSlow  *AutoSlowController
	Phrases   *PhraseEngine
	Triggers  *TriggerEngine
	Links     *LinkPolicyGate
	Invites   *InviteResolver
}

func NewPipeline() *Pipeline {
	cooldowns := NewCooldownCache()

	return &Pipeline{
		Settings:  NewSettingsCache(),
		Cooldowns: cooldowns,
		AutoSlow:  NewAutoSlowController(),
		Phrases:   &PhraseEngine{},
		Triggers:  NewTriggerEngine(cooldowns),
		Links:     NewLinkPolicyGate(),
		Invites:   &InviteResolver{},
	}
}

// Process runs one guild message through the moderation stages, in order:
// settings, permission level, auto slow-mode, link gate, phrase scan,
// trigger scan, invite resolution. Stages may stop the pipeline early;
// failures stay local to the message being processed.
func (p *Pipeline) Process(msg *discordgo.Message, member *discordgo.Member) {
	settings, err := p.Settings.Resolve(msg.GuildID)
	if err != nil {
		cache.GetLogger().WithField("module", "moderation").Error(
			"dropping message, guild config unavailable: " + err.Error())
		return
	}

	ctx := &Context{
		Message:   msg,
		Member:    member,
		Settings:  settings,
		PermLevel: helpers.GetPermLevel(msg, member, settings),
	}

	// blacklisted authors still count towards the channel rate
	p.runAutoSlow(ctx)

	if ctx.PermLevel == helpers.PermLevelBlacklisted {
		return
	}

	if p.runLinkGate(ctx) {
		return
	}

	if !p.runPhraseScan(ctx) {
		return
	}

	p.Triggers.Evaluate(ctx)

	p.Invites.Resolve(ctx.Message)
}

func (p *Pipeline) runAutoSlow(ctx *Context) {
	if ctx.PermLevel >= helpers.PermLevelHelper {
		return
	}

	state, err := p.AutoSlow.Get(ctx.Message.ChannelID)
	if err != nil {
		helpers.RelaxLog(err)
		return
	}
	if state == nil {
		return
	}

	state.RecordMessage()
	state.RecomputeAndApply(ctx.Message.ChannelID)
}

// runLinkGate deletes link posts from authors below moderator level who
// are not on the allow-list. Returns true when the message was removed.
func (p *Pipeline) runLinkGate(ctx *Context) (deleted bool) {
	if ctx.PermLevel >= helpers.PermLevelModerator {
		return false
	}

	if !p.Links.HasURLs(ctx.Message.Content) {
		return false
	}

	var roleIDs []string
	if ctx.Member != nil {
		roleIDs = ctx.Member.Roles
	}

	if p.Links.Permitted(ctx.Settings, ctx.Message.ChannelID, ctx.Message.Author.ID, roleIDs) {
		return false
	}

	err := cache.GetSession().ChannelMessageDelete(ctx.Message.ChannelID, ctx.Message.ID)
	if err == nil {
		metrics.MessagesDeleted.Add(1)
	}

	return true
}

func (p *Pipeline) runPhraseScan(ctx *Context) (ok bool) {
	rules, err := p.Phrases.LoadRules()
	if err != nil {
		cache.GetLogger().WithField("module", "moderation").Error(
			"dropping message, phrase rules unavailable: " + err.Error())
		return false
	}

	for _, match := range p.Phrases.Scan(ctx.Message.Content, rules) {
		p.Phrases.LogMatch(ctx.Message, match)
	}

	return true
}
