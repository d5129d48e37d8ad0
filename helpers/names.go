package helpers

import (
	"github.com/globalsign/mgo/bson"
	"github.com/prismbot/prism/models"
)

// GetNameOverride returns the stored display name for $userID on $guildID, or ""
func GetNameOverride(userID string, guildID string) (name string, err error) {
	var entry models.NameEntry
	err = MdbOne(
		MdbCollection(models.NamesTable).Find(bson.M{"userid": userID, "guildid": guildID}),
		&entry,
	)

	if IsMdbNotFound(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return entry.Name, nil
}

func SetNameOverride(userID string, guildID string, name string) (err error) {
	return MDbUpsert(
		models.NamesTable,
		bson.M{"userid": userID, "guildid": guildID},
		models.NameEntry{
			UserID:  userID,
			GuildID: guildID,
			Name:    name,
		},
	)
}
