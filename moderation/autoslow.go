package moderation

import (
	"math"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/globalsign/mgo/bson"
	"github.com/pkg/errors"
	"github.com/prismbot/prism/cache"
	"github.com/prismbot/prism/helpers"
	"github.com/prismbot/prism/metrics"
	"github.com/prismbot/prism/models"
)

// how far back message timestamps count towards the rate estimate
const slowModeWindow = 30 * time.Second

// AutoSlowState is the runtime view of one channel's auto slow-mode
// config: the persisted parameters plus a rolling window of message
// timestamps and the last delay we applied.
type AutoSlowState struct {
	sync.Mutex

	config    models.AutoSlowEntry
	window    []time.Time
	lastDelay int
}

// AutoSlowController owns the per-channel runtime states and keeps them in
// sync with the persisted configs.
type AutoSlowController struct {
	mutex  sync.RWMutex
	states map[string]*AutoSlowState
}

func NewAutoSlowController() *AutoSlowController {
	return &AutoSlowController{
		states: make(map[string]*AutoSlowState),
	}
}

// Get prefers the runtime cache and falls back to the persisted config,
// rehydrating the cache on a hit. Returns nil when no config exists.
func (c *AutoSlowController) Get(channelID string) (*AutoSlowState, error) {
	c.mutex.RLock()
	state, ok := c.states[channelID]
	c.mutex.RUnlock()

	if ok {
		return state, nil
	}

	var entry models.AutoSlowEntry
	err := helpers.MdbOne(
		helpers.MdbCollection(models.AutoSlowTable).Find(bson.M{"channelid": channelID}),
		&entry,
	)
	if helpers.IsMdbNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "auto slow config load")
	}

	state = &AutoSlowState{config: entry}

	c.mutex.Lock()
	if existing, ok := c.states[channelID]; ok {
		state = existing
	} else {
		c.states[channelID] = state
	}
	c.mutex.Unlock()

	return state, nil
}

// Add persists $entry for $channelID and mirrors it into the runtime cache
func (c *AutoSlowController) Add(channelID string, entry models.AutoSlowEntry) error {
	entry.ChannelID = channelID

	err := helpers.MDbUpsert(models.AutoSlowTable, bson.M{"channelid": channelID}, entry)
	if err != nil {
		return errors.Wrap(err, "auto slow config save")
	}

	c.mutex.Lock()
	if state, ok := c.states[channelID]; ok {
		state.Lock()
		state.config = entry
		state.Unlock()
	} else {
		c.states[channelID] = &AutoSlowState{config: entry}
	}
	c.mutex.Unlock()

	return nil
}

// Remove drops the config from the runtime cache and the store
func (c *AutoSlowController) Remove(channelID string) error {
	c.mutex.Lock()
	delete(c.states, channelID)
	c.mutex.Unlock()

	err := helpers.MdbDeleteQuery(models.AutoSlowTable, bson.M{"channelid": channelID})
	if helpers.IsMdbNotFound(err) {
		return nil
	}
	return err
}

// RecordMessage appends the current time to the rolling window. Disabled
// configs record too, so re-enabling starts from a warm window.
func (s *AutoSlowState) RecordMessage() {
	now := time.Now()

	s.Lock()
	s.window = append(s.window, now)
	s.evict(now)
	s.Unlock()
}

// evict drops timestamps older than the observation window; callers hold
// the state lock
func (s *AutoSlowState) evict(now time.Time) {
	cutoff := now.Add(-slowModeWindow)
	firstLive := 0
	for firstLive < len(s.window) && s.window[firstLive].Before(cutoff) {
		firstLive++
	}
	if firstLive > 0 {
		s.window = append([]time.Time(nil), s.window[firstLive:]...)
	}
}

// editChannelSlowMode applies a slow-mode delay, replaced in tests
var editChannelSlowMode = func(channelID string, seconds int) error {
	_, err := cache.GetSession().ChannelEdit(channelID, &discordgo.ChannelEdit{
		RateLimitPerUser: &seconds,
	})
	return err
}

// RecomputeAndApply estimates the channel's message rate and updates the
// slow-mode delay when the change clears the hysteresis thresholds
func (s *AutoSlowState) RecomputeAndApply(channelID string) {
	s.Lock()

	if !s.config.Enabled {
		s.Unlock()
		return
	}

	now := time.Now()
	s.evict(now)
	rate := float64(len(s.window)) / slowModeWindow.Seconds()

	candidate := optimalDelay(rate, s.config)
	apply := shouldApply(s.lastDelay, candidate, s.config)

	s.Unlock()

	if !apply {
		return
	}

	// the baseline only moves on a successful edit, so a failed edit
	// gets retried on the next message
	err := editChannelSlowMode(channelID, candidate)
	if err != nil {
		cache.GetLogger().WithField("module", "moderation").Debug(
			"failed to update slow-mode on #" + channelID + ": " + err.Error())
		return
	}

	s.Lock()
	s.lastDelay = candidate
	s.Unlock()

	metrics.SlowmodeUpdates.Add(1)
	cache.GetLogger().WithField("module", "moderation").Infof(
		"set slow-mode on #%s to %ds (%.2f msgs/s)", channelID, candidate, rate)
}

// Snapshot returns the current config and applied delay for status output
func (s *AutoSlowState) Snapshot() (config models.AutoSlowEntry, lastDelay int, rate float64) {
	s.Lock()
	defer s.Unlock()

	s.evict(time.Now())
	return s.config, s.lastDelay, float64(len(s.window)) / slowModeWindow.Seconds()
}

// optimalDelay maps an observed message rate to a candidate delay: the
// faster the channel runs over its target, the longer the delay. Clamped
// to the configured bounds.
func optimalDelay(rate float64, config models.AutoSlowEntry) int {
	if config.TargetMsgsPerSec <= 0 {
		return config.Min
	}

	candidate := rate / config.TargetMsgsPerSec
	if candidate <= float64(config.Min) {
		return config.Min
	}
	if candidate >= float64(config.Max) {
		return config.Max
	}
	return int(math.Round(candidate))
}

// shouldApply reports whether moving from $current to $candidate is a big
// enough change to be worth an API call. Small wiggles on a noisy rate
// would otherwise thrash the channel.
func shouldApply(current int, candidate int, config models.AutoSlowEntry) bool {
	if candidate == current {
		return false
	}

	diff := math.Abs(float64(candidate - current))
	if diff > config.MinChange {
		return true
	}
	if current == 0 {
		return true
	}
	return diff/float64(current) > config.MinChangeRate
}
