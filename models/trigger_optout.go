package models

import "github.com/globalsign/mgo/bson"

const (
	TriggerOptOutTable MongoDbCollection = "trigger_optouts"
)

type TriggerOptOutEntry struct {
	ID        bson.ObjectId `bson:"_id,omitempty"`
	GuildID   string
	UserID    string
	TriggerID string
}
