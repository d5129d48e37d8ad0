package models

import "github.com/globalsign/mgo/bson"

const (
	PhraseMatcherTable MongoDbCollection = "phrase_matchers"
)

type PhraseMatcherEntry struct {
	ID           bson.ObjectId `bson:"_id,omitempty"`
	LogChannelID string
	Phrases      []Phrase
}

type Phrase struct {
	Content string
	// minimum similarity score, 0 to 100
	MatchThreshold float64
}
