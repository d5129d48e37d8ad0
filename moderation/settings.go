package moderation

import (
	"sync"

	"github.com/globalsign/mgo/bson"
	"github.com/pkg/errors"
	"github.com/prismbot/prism/cache"
	"github.com/prismbot/prism/helpers"
	"github.com/prismbot/prism/models"
	"golang.org/x/sync/singleflight"
)

// SettingsCache hands out guild configs, creating them with defaults the
// first time a guild is seen. Hits are served from memory, concurrent
// misses for the same guild collapse into a single load.
type SettingsCache struct {
	group singleflight.Group

	mutex   sync.RWMutex
	configs map[string]models.GuildConfig
}

func NewSettingsCache() *SettingsCache {
	return &SettingsCache{
		configs: make(map[string]models.GuildConfig),
	}
}

// Resolve returns the config for $guildID, loading or creating it on a miss
func (s *SettingsCache) Resolve(guildID string) (models.GuildConfig, error) {
	s.mutex.RLock()
	config, ok := s.configs[guildID]
	s.mutex.RUnlock()

	if ok {
		return config, nil
	}

	result, err, _ := s.group.Do(guildID, func() (interface{}, error) {
		var settings models.GuildConfig

		err := helpers.MdbOne(
			helpers.MdbCollection(models.GuildConfigTable).Find(bson.M{"guildid": guildID}),
			&settings,
		)
		if helpers.IsMdbNotFound(err) {
			settings = models.GuildConfig{}.Default(guildID)
			err = helpers.MDbUpsert(models.GuildConfigTable, bson.M{"guildid": guildID}, settings)
		}
		if err != nil {
			return nil, errors.Wrap(err, "guild config load")
		}

		s.mutex.Lock()
		s.configs[guildID] = settings
		s.mutex.Unlock()

		cache.GetLogger().WithField("module", "moderation").Info(
			"Setting sync: Fetch Database -> Client (" + guildID + ")")

		return settings, nil
	})
	if err != nil {
		return models.GuildConfig{}, err
	}

	return result.(models.GuildConfig), nil
}

// Update persists $config and refreshes the cached copy
func (s *SettingsCache) Update(guildID string, config models.GuildConfig) error {
	err := helpers.MDbUpsert(models.GuildConfigTable, bson.M{"guildid": guildID}, config)
	if err != nil {
		return errors.Wrap(err, "guild config update")
	}

	s.mutex.Lock()
	s.configs[guildID] = config
	s.mutex.Unlock()

	return nil
}

// Invalidate drops the cached copy, forcing a reload on the next message
func (s *SettingsCache) Invalidate(guildID string) {
	s.mutex.Lock()
	delete(s.configs, guildID)
	s.mutex.Unlock()
}
