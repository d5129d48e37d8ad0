package models

import "github.com/globalsign/mgo/bson"

const (
	AutoSlowTable MongoDbCollection = "auto_slow"
)

type AutoSlowEntry struct {
	ID        bson.ObjectId `bson:"_id,omitempty"`
	ChannelID string
	// bounds on the slow-mode delay, seconds
	Min int
	Max int

	TargetMsgsPerSec float64
	// hysteresis: skip updates smaller than both of these
	MinChange     float64
	MinChangeRate float64

	Enabled bool
}
