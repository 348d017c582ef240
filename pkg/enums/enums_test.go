package enums

import "testing"

func TestParseShiftStatus(t *testing.T) {
	for _, value := range []string{"OPEN", "ASSIGNED", "CANCELLED"} {
		status, err := ParseShiftStatus(value)
		if err != nil {
			t.Fatalf("ParseShiftStatus(%q) returned error: %v", value, err)
		}
		if !status.IsValid() {
			t.Fatalf("parsed status %q should be valid", value)
		}
	}

	if _, err := ParseShiftStatus("open"); err == nil {
		t.Fatal("lowercase status should be rejected")
	}
	if ShiftStatus("DONE").IsValid() {
		t.Fatal("unknown status should not be valid")
	}
}

func TestParseAssignmentStatus(t *testing.T) {
	for _, value := range []string{"ASSIGNED", "UNAVAILABLE", "COMPLETED"} {
		status, err := ParseAssignmentStatus(value)
		if err != nil {
			t.Fatalf("ParseAssignmentStatus(%q) returned error: %v", value, err)
		}
		if status.String() != value {
			t.Fatalf("round trip mismatch: %q vs %q", status, value)
		}
	}

	if _, err := ParseAssignmentStatus(""); err == nil {
		t.Fatal("empty status should be rejected")
	}
}

func TestParseUserRole(t *testing.T) {
	role, err := ParseUserRole("ADMIN")
	if err != nil || role != UserRoleAdmin {
		t.Fatalf("expected ADMIN role, got %v (%v)", role, err)
	}
	if _, err := ParseUserRole("SUPERUSER"); err == nil {
		t.Fatal("unknown role should be rejected")
	}
}
