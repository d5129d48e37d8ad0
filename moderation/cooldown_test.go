package moderation

import (
	"testing"
	"time"
)

func TestCooldownCacheUnknownKey(t *testing.T) {
	c := NewCooldownCache()

	if c.Armed("trigger-1") {
		t.Fatal("unknown key must not be armed")
	}
	if c.Live("trigger-1") {
		t.Fatal("unknown key must not be live")
	}
}

func TestCooldownCacheArm(t *testing.T) {
	c := NewCooldownCache()

	c.Arm("trigger-1")
	if !c.Armed("trigger-1") {
		t.Fatal("armed key should report armed")
	}
	if c.Live("trigger-1") {
		t.Fatal("armed key should not report a live window")
	}
}

func TestCooldownCacheWindow(t *testing.T) {
	c := NewCooldownCache()

	c.Set("trigger-1", 50*time.Millisecond)
	if !c.Live("trigger-1") {
		t.Fatal("key should be inside a live window right after Set")
	}
	if c.Armed("trigger-1") {
		t.Fatal("key inside a live window must not be armed")
	}

	time.Sleep(60 * time.Millisecond)

	if c.Live("trigger-1") {
		t.Fatal("window should have elapsed")
	}
	if !c.Armed("trigger-1") {
		t.Fatal("key should re-arm once its window elapsed")
	}
}

func TestCooldownCacheRemove(t *testing.T) {
	c := NewCooldownCache()

	c.Arm("trigger-1")
	c.Remove("trigger-1")

	if c.Armed("trigger-1") {
		t.Fatal("removed key must not be armed")
	}
}
