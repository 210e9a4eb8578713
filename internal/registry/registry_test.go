package registry

import (
	"context"
	"errors"
	"testing"

	"devkit/pkg/capability"
)

type fakeProvider struct {
	name          string
	available     bool
	availableErr  error
	activateErr   error
	deactivateErr error
	restartErr    error

	availableCalls  int
	activateCalls   int
	deactivateCalls int
	restartCalls    int
}

func (f *fakeProvider) Name() string        { return f.name }
func (f *fakeProvider) DisplayName() string { return f.name }

func (f *fakeProvider) Available(_ context.Context) (bool, error) {
	f.availableCalls++
	return f.available, f.availableErr
}

func (f *fakeProvider) Activate(_ context.Context) error {
	f.activateCalls++
	return f.activateErr
}

func (f *fakeProvider) Deactivate(_ context.Context) error {
	f.deactivateCalls++
	return f.deactivateErr
}

func (f *fakeProvider) Restart(_ context.Context) error {
	f.restartCalls++
	return f.restartErr
}

func newTestRegistry(priorities map[capability.Kind][]string) *Registry {
	return New(Options{Priorities: priorities})
}

func TestActivateUnknownProviderLeavesStatusUnchanged(t *testing.T) {
	reg := newTestRegistry(nil)
	a := &fakeProvider{name: "a", available: true}
	reg.Register(capability.Language, a)
	if !reg.Activate(context.Background(), capability.Language, "a") {
		t.Fatalf("expected activation of a to succeed")
	}
	for _, kind := range capability.Kinds() {
		if reg.Activate(context.Background(), kind, "missing") {
			t.Fatalf("expected activation of unregistered provider to fail for kind %s", kind)
		}
	}
	if got := reg.Status()[capability.Language]; got != "a" {
		t.Fatalf("status changed after failed activation: %q", got)
	}
}

func TestActivateSameProviderIsIdempotent(t *testing.T) {
	reg := newTestRegistry(nil)
	a := &fakeProvider{name: "a", available: true}
	reg.Register(capability.Language, a)
	if !reg.Activate(context.Background(), capability.Language, "a") {
		t.Fatalf("first activation failed")
	}
	if !reg.Activate(context.Background(), capability.Language, "a") {
		t.Fatalf("second activation failed")
	}
	if a.activateCalls != 1 {
		t.Fatalf("expected 1 activate call, got %d", a.activateCalls)
	}
	if a.deactivateCalls != 0 {
		t.Fatalf("expected no deactivate calls, got %d", a.deactivateCalls)
	}
}

func TestAutoActivatePrefersFirstAvailable(t *testing.T) {
	reg := newTestRegistry(map[capability.Kind][]string{
		capability.Language: {"a", "b"},
	})
	a := &fakeProvider{name: "a", available: false}
	b := &fakeProvider{name: "b", available: true}
	reg.Register(capability.Language, a)
	reg.Register(capability.Language, b)
	reg.AutoActivate(context.Background())
	if got := reg.Status()[capability.Language]; got != "b" {
		t.Fatalf("expected b active, got %q", got)
	}
}

func TestAutoActivateNothingAvailableLeavesSlotEmpty(t *testing.T) {
	reg := newTestRegistry(map[capability.Kind][]string{
		capability.Language: {"a"},
	})
	reg.Register(capability.Language, &fakeProvider{name: "a", available: false})
	reg.AutoActivate(context.Background())
	if got := reg.Status()[capability.Language]; got != "" {
		t.Fatalf("expected empty slot, got %q", got)
	}
}

func TestSwitchDeactivatesPreviousAndDoesNotRevertOnFailure(t *testing.T) {
	reg := newTestRegistry(nil)
	a := &fakeProvider{name: "a", available: true}
	b := &fakeProvider{name: "b", available: false}
	reg.Register(capability.Language, a)
	reg.Register(capability.Language, b)
	if !reg.Activate(context.Background(), capability.Language, "a") {
		t.Fatalf("activation of a failed")
	}
	if reg.Activate(context.Background(), capability.Language, "b") {
		t.Fatalf("expected activation of unavailable b to fail")
	}
	if a.deactivateCalls != 1 {
		t.Fatalf("expected a deactivated exactly once, got %d", a.deactivateCalls)
	}
	if got := reg.Status()[capability.Language]; got != "" {
		t.Fatalf("expected empty slot after failed switch, got %q", got)
	}
}

func TestActivateFailureDuringActivateLeavesSlotEmpty(t *testing.T) {
	reg := newTestRegistry(nil)
	b := &fakeProvider{name: "b", available: true, activateErr: errors.New("boom")}
	reg.Register(capability.Language, b)
	if reg.Activate(context.Background(), capability.Language, "b") {
		t.Fatalf("expected activation to fail")
	}
	if got := reg.Status()[capability.Language]; got != "" {
		t.Fatalf("expected empty slot, got %q", got)
	}
}

func TestAvailabilityProbeErrorTreatedAsUnavailable(t *testing.T) {
	reg := newTestRegistry(nil)
	b := &fakeProvider{name: "b", available: true, availableErr: errors.New("probe blew up")}
	reg.Register(capability.Language, b)
	if reg.Activate(context.Background(), capability.Language, "b") {
		t.Fatalf("expected activation to fail on probe error")
	}
	if b.activateCalls != 0 {
		t.Fatalf("activate must not run after a failed probe")
	}
}

func TestDeactivateClearsSlotEvenWhenProviderFails(t *testing.T) {
	reg := newTestRegistry(nil)
	a := &fakeProvider{name: "a", available: true, deactivateErr: errors.New("teardown failed")}
	reg.Register(capability.Language, a)
	if !reg.Activate(context.Background(), capability.Language, "a") {
		t.Fatalf("activation failed")
	}
	reg.Deactivate(context.Background(), capability.Language)
	if got := reg.Status()[capability.Language]; got != "" {
		t.Fatalf("expected empty slot, got %q", got)
	}
}

func TestBuildSwitchSkipsDeactivateOnPrevious(t *testing.T) {
	reg := newTestRegistry(nil)
	a := &fakeProvider{name: "a", available: true}
	b := &fakeProvider{name: "b", available: true}
	reg.Register(capability.Build, a)
	reg.Register(capability.Build, b)
	if !reg.Activate(context.Background(), capability.Build, "a") {
		t.Fatalf("activation of a failed")
	}
	if !reg.Activate(context.Background(), capability.Build, "b") {
		t.Fatalf("activation of b failed")
	}
	if a.deactivateCalls != 0 {
		t.Fatalf("build providers are dropped without a deactivate call, got %d", a.deactivateCalls)
	}
	if got := reg.Status()[capability.Build]; got != "b" {
		t.Fatalf("expected b active, got %q", got)
	}
}

func TestRestartActiveFailureKeepsSlot(t *testing.T) {
	reg := newTestRegistry(nil)
	a := &fakeProvider{name: "a", available: true, restartErr: errors.New("restart failed")}
	reg.Register(capability.Language, a)
	if !reg.Activate(context.Background(), capability.Language, "a") {
		t.Fatalf("activation failed")
	}
	reg.RestartActive(context.Background())
	if a.restartCalls != 1 {
		t.Fatalf("expected restart call, got %d", a.restartCalls)
	}
	if got := reg.Status()[capability.Language]; got != "a" {
		t.Fatalf("restart failure must not clear the slot, got %q", got)
	}
}

func TestRestartActiveIgnoresNonLanguageKinds(t *testing.T) {
	reg := newTestRegistry(nil)
	b := &fakeProvider{name: "b", available: true}
	reg.Register(capability.Build, b)
	if !reg.Activate(context.Background(), capability.Build, "b") {
		t.Fatalf("activation failed")
	}
	reg.RestartActive(context.Background())
	if b.restartCalls != 0 {
		t.Fatalf("build providers have no restart semantics, got %d calls", b.restartCalls)
	}
}

func TestProviderCannotBeActiveForTwoKinds(t *testing.T) {
	reg := newTestRegistry(nil)
	p := &fakeProvider{name: "p", available: true}
	reg.Register(capability.Language, p)
	reg.Register(capability.Build, p)
	if !reg.Activate(context.Background(), capability.Language, "p") {
		t.Fatalf("first activation failed")
	}
	if reg.Activate(context.Background(), capability.Build, "p") {
		t.Fatalf("one provider must not serve two kinds at once")
	}
}
