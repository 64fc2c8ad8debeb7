package domain

import "testing"

func TestInviteStatus(t *testing.T) {
	cases := []struct {
		status   InviteStatus
		valid    bool
		terminal bool
	}{
		{InvitePending, true, false},
		{InviteAccepted, true, true},
		{InviteDeclined, true, true},
		{InviteStatus("ringing"), false, false},
	}
	for _, tc := range cases {
		if got := tc.status.Valid(); got != tc.valid {
			t.Errorf("%q.Valid() = %v, want %v", tc.status, got, tc.valid)
		}
		if got := tc.status.Terminal(); got != tc.terminal {
			t.Errorf("%q.Terminal() = %v, want %v", tc.status, got, tc.terminal)
		}
	}
}

func TestCommunityRoom(t *testing.T) {
	if got := CommunityRoom("5"); got != "community-5" {
		t.Fatalf("CommunityRoom: %q", got)
	}
}

func TestIdentityIdentified(t *testing.T) {
	if (Identity{}).Identified() {
		t.Fatal("empty identity reported identified")
	}
	if !(Identity{UserID: "u1"}).Identified() {
		t.Fatal("identity with user id reported unidentified")
	}
}
