package match

import (
	"testing"

	"github.com/google/uuid"
)

func TestIsValidOutreachStatus(t *testing.T) {
	valid := []OutreachStatus{OutreachNotStarted, OutreachDrafted, OutreachSent, OutreachResponded, OutreachDeclined}
	for _, s := range valid {
		if !IsValidOutreachStatus(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	for _, s := range []OutreachStatus{"", "ghosted", "SENT"} {
		if IsValidOutreachStatus(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}

func TestParticipantAndCounterpart(t *testing.T) {
	investorID := uuid.New()
	founderID := uuid.New()
	m := Match{InvestorID: investorID, FounderID: founderID}

	if !m.Participant(investorID) || !m.Participant(founderID) {
		t.Fatalf("expected both sides to be participants")
	}
	if m.Participant(uuid.New()) {
		t.Fatalf("expected a stranger not to be a participant")
	}

	if m.CounterpartID(investorID) != founderID {
		t.Fatalf("expected founder as the investor's counterpart")
	}
	if m.CounterpartID(founderID) != investorID {
		t.Fatalf("expected investor as the founder's counterpart")
	}
}
