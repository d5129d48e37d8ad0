package models

type MongoDbCollection string

func (m MongoDbCollection) String() string {
	return string(m)
}
