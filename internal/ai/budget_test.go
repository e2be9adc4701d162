package ai

import "testing"

func TestSessionBudget_CheckAndRecord(t *testing.T) {
	b := NewSessionBudget(100)

	if !b.Check("s1") {
		t.Error("fresh session should have budget")
	}
	if err := b.Record("s1", 60); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if !b.Check("s1") {
		t.Error("session under the limit should have budget")
	}
	if err := b.Record("s1", 40); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if b.Check("s1") {
		t.Error("session at the limit should be exhausted")
	}
	if !b.Check("s2") {
		t.Error("other sessions must not be affected")
	}

	used, limit := b.Usage("s1")
	if used != 100 || limit != 100 {
		t.Errorf("Usage() = (%d, %d), want (100, 100)", used, limit)
	}
}

func TestSessionBudget_ZeroLimitIsUnlimited(t *testing.T) {
	b := NewSessionBudget(0)
	if err := b.Record("s1", 1_000_000); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if !b.Check("s1") {
		t.Error("zero limit should never exhaust")
	}
}

func TestSessionBudget_NegativeTokens(t *testing.T) {
	b := NewSessionBudget(10)
	if err := b.Record("s1", -5); err == nil {
		t.Error("expected error for negative tokens")
	}
}
