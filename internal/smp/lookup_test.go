package smp

import "testing"

func TestRoutingAttrLetter(t *testing.T) {
	tests := []struct {
		ra     RoutingAttr
		hasT2T bool
		want   string
	}{
		{RoutingDirect, false, "D"},
		{RoutingDirect, true, "D"},
		{RoutingSubtractive, false, "S"},
		{RoutingTable, false, "T"},
		// table routing becomes universal on a table-to-table expander
		{RoutingTable, true, "U"},
		{RoutingAttr(7), false, "R"},
		{RoutingAttr(7), true, "R"},
	}
	for _, tt := range tests {
		if got := tt.ra.Letter(tt.hasT2T); got != tt.want {
			t.Errorf("RoutingAttr(%d).Letter(%v) = %q, want %q", int(tt.ra), tt.hasT2T, got, tt.want)
		}
	}
}

func TestDeviceTypeStrings(t *testing.T) {
	if got := DeviceTypeEnd.String(); got != "SAS or SATA device" {
		t.Errorf("DeviceTypeEnd.String() = %q", got)
	}
	if got := DeviceTypeExpander.Short(); got != "exp" {
		t.Errorf("DeviceTypeExpander.Short() = %q", got)
	}
	if got := DeviceType(6).String(); got != "reserved [6]" {
		t.Errorf("DeviceType(6).String() = %q", got)
	}
	if got := DeviceType(9).Short(); got != "res" {
		t.Errorf("DeviceType(9).Short() = %q", got)
	}
}

func TestLinkRateString(t *testing.T) {
	if got := LinkRateString(0xb, false); got != "12 Gbps" {
		t.Errorf("LinkRateString(0xb) = %q", got)
	}
	if got := LinkRateString(0, true); got != "not programmable" {
		t.Errorf("LinkRateString(0, prog) = %q", got)
	}
	if got := LinkRateString(0, false); got != "reserved [0]" {
		t.Errorf("LinkRateString(0) = %q", got)
	}
	if got := LinkRateString(7, true); got != "reserved [7]" {
		t.Errorf("LinkRateString(7, prog) = %q", got)
	}
}

func TestNegotiatedStateString(t *testing.T) {
	tests := []struct {
		val  int
		want string
	}{
		{1, "phy disabled"},
		{3, "phy enabled; SATA spinup hold state"},
		{8, "phy enabled, 1.5 Gbps"},
		{0xc, "phy enabled, 22.5 Gbps"},
		{0xf, "reserved [15]"},
	}
	for _, tt := range tests {
		if got := NegotiatedStateString(tt.val); got != tt.want {
			t.Errorf("NegotiatedStateString(%d) = %q, want %q", tt.val, got, tt.want)
		}
	}
}

func TestBroadcastTypeString(t *testing.T) {
	if got := BroadcastTypeString(0); got != "Broadcast (Change)" {
		t.Errorf("BroadcastTypeString(0) = %q", got)
	}
	if got := BroadcastTypeString(3); got != "Broadcast (SES)" {
		t.Errorf("BroadcastTypeString(3) = %q", got)
	}
	if got := BroadcastTypeString(0xc); got != "Reserved [0xc]" {
		t.Errorf("BroadcastTypeString(0xc) = %q", got)
	}
}
