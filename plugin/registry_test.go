package plugin

import (
	"context"
	"errors"
	"testing"
)

type recordingPlugin struct {
	name   string
	events []string
	fail   bool
}

func (p *recordingPlugin) Name() string { return p.name }

func (p *recordingPlugin) note(event string) error {
	p.events = append(p.events, event)
	if p.fail {
		return errors.New("hook failed")
	}
	return nil
}

func (p *recordingPlugin) OnPlanFiled(_ context.Context, _ interface{}) error {
	return p.note("plan_filed")
}

func (p *recordingPlugin) OnPlanApproved(_ context.Context, _, _ interface{}) error {
	return p.note("plan_approved")
}

func (p *recordingPlugin) OnPayoutFactorCalculated(_ context.Context, factor string) error {
	return p.note("payout:" + factor)
}

type namedPlugin struct{ name string }

func (p *namedPlugin) Name() string { return p.name }

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(&namedPlugin{name: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&namedPlugin{name: "a"}); err == nil {
		t.Fatal("duplicate registration must fail")
	}
	if err := r.Register(&namedPlugin{name: "b"}); err != nil {
		t.Fatal(err)
	}

	if r.Count() != 2 {
		t.Fatalf("count = %d, want 2", r.Count())
	}
	if r.Get("a") == nil || r.Get("b") == nil {
		t.Fatal("registered plugins must be retrievable")
	}
	if r.Get("c") != nil {
		t.Fatal("unknown name must yield nil")
	}
	if len(r.List()) != 2 {
		t.Fatalf("list = %d entries, want 2", len(r.List()))
	}
}

func TestRegistryDispatchesOnlyImplementedHooks(t *testing.T) {
	r := NewRegistry()
	p := &recordingPlugin{name: "recorder"}
	if err := r.Register(p); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	r.EmitPlanFiled(ctx, nil)
	r.EmitPlanApproved(ctx, nil, nil)
	r.EmitPayoutFactorCalculated(ctx, "0.5")
	// Not implemented by the plugin; must be silently skipped.
	r.EmitPlanRejected(ctx, nil)
	r.EmitHoursWorkedRegistered(ctx, nil)

	want := []string{"plan_filed", "plan_approved", "payout:0.5"}
	if len(p.events) != len(want) {
		t.Fatalf("events = %v, want %v", p.events, want)
	}
	for i := range want {
		if p.events[i] != want[i] {
			t.Fatalf("events[%d] = %s, want %s", i, p.events[i], want[i])
		}
	}
}

func TestRegistryToleratesFailingHooks(t *testing.T) {
	r := NewRegistry()
	failing := &recordingPlugin{name: "failing", fail: true}
	healthy := &recordingPlugin{name: "healthy"}
	if err := r.Register(failing); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(healthy); err != nil {
		t.Fatal(err)
	}

	// A failing hook is logged, never propagated: the healthy plugin
	// still sees the event.
	r.EmitPlanFiled(context.Background(), nil)

	if len(failing.events) != 1 || len(healthy.events) != 1 {
		t.Fatalf("events: failing=%v healthy=%v, want one each", failing.events, healthy.events)
	}
}
