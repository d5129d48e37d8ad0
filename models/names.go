package models

import "github.com/globalsign/mgo/bson"

const (
	NamesTable MongoDbCollection = "names"
)

type NameEntry struct {
	ID      bson.ObjectId `bson:"_id,omitempty"`
	UserID  string
	GuildID string
	Name    string
}
