package models

import "github.com/globalsign/mgo/bson"

const (
	GuildConfigTable MongoDbCollection = "guild_configs"
)

type GuildConfig struct {
	ID      bson.ObjectId `bson:"_id,omitempty"`
	GuildID string

	Prefix string

	// role ids mapped to permission levels
	HelperRoleIDs    []string
	ModeratorRoleIDs []string
	AdminRoleIDs     []string

	BlacklistedUserIDs []string

	// link posting allow-list
	LinkRoleWhitelist    []string
	LinkUserWhitelist    []string
	LinkChannelWhitelist []string

	Triggers []Trigger
}

type Trigger struct {
	TriggerID string
	// outer slice is AND, inner slice is OR
	Keywords [][]string
	Message  TriggerMessage
	// seconds
	Cooldown int
	Enabled  bool
}

type TriggerMessage struct {
	Content     string
	Embed       bool
	Title       string
	Description string
	Color       string
}

func (c GuildConfig) Default(guildID string) GuildConfig {
	return GuildConfig{
		GuildID: guildID,

		Prefix: "%",

		HelperRoleIDs:    []string{},
		ModeratorRoleIDs: []string{},
		AdminRoleIDs:     []string{},

		BlacklistedUserIDs: []string{},

		LinkRoleWhitelist:    []string{},
		LinkUserWhitelist:    []string{},
		LinkChannelWhitelist: []string{},

		Triggers: []Trigger{},
	}
}
