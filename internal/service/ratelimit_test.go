package service_test

import (
	"testing"

	"github.com/penmark/penmark/internal/service"
)

func TestRateLimiter_AllowsUpToCapacity(t *testing.T) {
	rl := service.NewRateLimiter(1, 3) // rate=1/s, capacity=3

	for i := 0; i < 3; i++ {
		if !rl.Allow("addr") {
			t.Fatalf("attempt %d should be allowed (bucket not yet empty)", i+1)
		}
	}

	if rl.Allow("addr") {
		t.Fatal("4th attempt should be denied (bucket empty)")
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := service.NewRateLimiter(1, 1)

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first address should be allowed")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("second attempt from same address should be denied")
	}

	// A different address has its own bucket.
	if !rl.Allow("10.0.0.2") {
		t.Fatal("other address should be allowed")
	}
}

func TestRateLimiter_ZeroRateNeverRefills(t *testing.T) {
	rl := service.NewRateLimiter(0, 2)

	if !rl.Allow("k") {
		t.Fatal("first attempt should be allowed")
	}
	if !rl.Allow("k") {
		t.Fatal("second attempt should be allowed")
	}
	if rl.Allow("k") {
		t.Fatal("third attempt should be denied (no refill)")
	}
}
