package moderation

import (
	"errors"
	"testing"

	"github.com/prismbot/prism/cache"
	"github.com/prismbot/prism/models"
	"github.com/sirupsen/logrus"
)

func autoSlowConfig() models.AutoSlowEntry {
	return models.AutoSlowEntry{
		Min:              5,
		Max:              30,
		TargetMsgsPerSec: 0.5,
		MinChange:        2,
		MinChangeRate:    0.1,
		Enabled:          true,
	}
}

func TestOptimalDelayClampsToMax(t *testing.T) {
	config := autoSlowConfig()

	for _, rate := range []float64{20, 100, 10000} {
		if delay := optimalDelay(rate, config); delay != config.Max {
			t.Fatalf("optimalDelay(%f) = %d, expected the max bound %d", rate, delay, config.Max)
		}
	}
}

func TestOptimalDelayClampsToMin(t *testing.T) {
	config := autoSlowConfig()

	for _, rate := range []float64{0, 0.01, 0.5} {
		if delay := optimalDelay(rate, config); delay != config.Min {
			t.Fatalf("optimalDelay(%f) = %d, expected the min bound %d", rate, delay, config.Min)
		}
	}
}

func TestOptimalDelayMonotonic(t *testing.T) {
	config := autoSlowConfig()

	previous := 0
	for _, rate := range []float64{0.1, 1, 3, 6, 9, 12, 15, 100} {
		delay := optimalDelay(rate, config)
		if delay < previous {
			t.Fatalf("optimalDelay must not decrease as the rate grows, got %d after %d", delay, previous)
		}
		if delay < config.Min || delay > config.Max {
			t.Fatalf("optimalDelay(%f) = %d escaped the bounds [%d, %d]", rate, delay, config.Min, config.Max)
		}
		previous = delay
	}
}

func TestShouldApplyHysteresis(t *testing.T) {
	config := autoSlowConfig()
	config.MinChange = 2
	config.MinChangeRate = 0.2

	// change below both thresholds: no API call
	if shouldApply(10, 11, config) {
		t.Fatal("a change below minChange and minChangeRate must not apply")
	}

	// absolute change clears minChange
	if !shouldApply(10, 13, config) {
		t.Fatal("a change above minChange should apply")
	}

	// relative change clears minChangeRate
	config.MinChange = 5
	config.MinChangeRate = 0.05
	if !shouldApply(10, 12, config) {
		t.Fatal("a change above minChangeRate should apply")
	}

	// no change at all
	if shouldApply(10, 10, config) {
		t.Fatal("an unchanged delay must not apply")
	}

	// first application from a cold state
	if !shouldApply(0, 5, config) {
		t.Fatal("the first delay should always apply")
	}
}

func TestRecomputeAndApplyFailedEditKeepsBaseline(t *testing.T) {
	cache.SetLogger(logrus.New())

	restore := editChannelSlowMode
	defer func() { editChannelSlowMode = restore }()

	var applied []int
	fail := true
	editChannelSlowMode = func(channelID string, seconds int) error {
		if fail {
			return errors.New("channel edit rejected")
		}
		applied = append(applied, seconds)
		return nil
	}

	state := &AutoSlowState{config: autoSlowConfig()}
	for i := 0; i < 100; i++ {
		state.RecordMessage()
	}

	state.RecomputeAndApply("channel-a")
	if _, lastDelay, _ := state.Snapshot(); lastDelay != 0 {
		t.Fatalf("a failed edit must not move the hysteresis baseline, got %d", lastDelay)
	}

	// the very next recompute retries instead of seeing its own change
	// as already applied
	fail = false
	state.RecomputeAndApply("channel-a")
	if len(applied) != 1 {
		t.Fatalf("expected exactly one applied edit after the retry, got %d", len(applied))
	}

	_, lastDelay, _ := state.Snapshot()
	if lastDelay != applied[0] {
		t.Fatalf("baseline %d should match the applied delay %d", lastDelay, applied[0])
	}
	if lastDelay == 0 {
		t.Fatal("the successful retry should have moved the baseline")
	}
}

func TestAutoSlowStateRecordsWhileDisabled(t *testing.T) {
	config := autoSlowConfig()
	config.Enabled = false

	state := &AutoSlowState{config: config}
	for i := 0; i < 10; i++ {
		state.RecordMessage()
	}

	_, _, rate := state.Snapshot()
	if rate <= 0 {
		t.Fatal("disabled configs should still record messages so re-enabling starts warm")
	}
}
