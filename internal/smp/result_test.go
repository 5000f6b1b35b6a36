package smp

import "testing"

func TestResultCodeString(t *testing.T) {
	tests := []struct {
		code ResultCode
		want string
	}{
		{ResFunctionAccepted, "SMP function accepted"},
		{ResUnknownFunction, "unknown SMP function"},
		{ResPhyDoesNotExist, "phy does not exist"},
		{ResPhyVacant, "phy vacant"},
		{ResInvalidFieldInRequest, "invalid field in SMP request"},
		// anything outside the table renders, never panics
		{ResultCode(0x7f), "reserved [127]"},
		{ResultCode(0xff), "reserved [255]"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("ResultCode(0x%02x).String() = %q, want %q", byte(tt.code), got, tt.want)
		}
	}
}

func TestResultCodePredicates(t *testing.T) {
	if !ResFunctionAccepted.OK() {
		t.Error("ResFunctionAccepted.OK() should be true")
	}
	if ResPhyVacant.OK() {
		t.Error("ResPhyVacant.OK() should be false")
	}
	if !ResPhyVacant.Vacant() {
		t.Error("ResPhyVacant.Vacant() should be true")
	}
	if !ResPhyDoesNotExist.NoSuchPhy() {
		t.Error("ResPhyDoesNotExist.NoSuchPhy() should be true")
	}
	if ResPhyDoesNotExist.Vacant() || ResPhyVacant.NoSuchPhy() {
		t.Error("vacant and no-such-phy predicates must not overlap")
	}
}
