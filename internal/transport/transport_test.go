package transport

import "testing"

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name       string
		descriptor string
		wantDevice string
		wantSub    int
		wantErr    bool
	}{
		{
			name:       "plain device",
			descriptor: "/dev/bsg/expander-1:0",
			wantDevice: "/dev/bsg/expander-1:0",
		},
		{
			name:       "device with subvalue",
			descriptor: "/dev/bsg/expander-1:0,2",
			wantDevice: "/dev/bsg/expander-1:0",
			wantSub:    2,
		},
		{
			name:       "bad subvalue",
			descriptor: "/dev/bsg/expander-1:0,x",
			wantErr:    true,
		},
		{
			name:       "empty device",
			descriptor: "",
			wantErr:    true,
		},
		{
			name:       "only subvalue",
			descriptor: ",1",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tgt, err := ParseTarget(tt.descriptor, 0x5000c50012345678)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTarget(%q) succeeded", tt.descriptor)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTarget(%q): %v", tt.descriptor, err)
			}
			if tgt.Device != tt.wantDevice {
				t.Errorf("Device = %q, want %q", tgt.Device, tt.wantDevice)
			}
			if tgt.Subvalue != tt.wantSub {
				t.Errorf("Subvalue = %d, want %d", tgt.Subvalue, tt.wantSub)
			}
			if tgt.SASAddress != 0x5000c50012345678 {
				t.Errorf("SASAddress = %#x", tgt.SASAddress)
			}
		})
	}
}

func TestParseSASAddress(t *testing.T) {
	tests := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{in: "0x5000c50012345678", want: 0x5000c50012345678},
		{in: "0X5000C50012345678", want: 0x5000c50012345678},
		{in: "5000c50012345678h", want: 0x5000c50012345678},
		{in: "5000C50012345678H", want: 0x5000c50012345678},
		{in: "12345", want: 12345},
		{in: "  0x50  ", want: 0x50},
		{in: "", wantErr: true},
		{in: "0x", wantErr: true},
		{in: "nonsense", wantErr: true},
		{in: "5000c50012345678", wantErr: true}, // hex digits without a marker
	}

	for _, tt := range tests {
		got, err := ParseSASAddress(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseSASAddress(%q) = %#x, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSASAddress(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSASAddress(%q) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}

func TestNAAFormats(t *testing.T) {
	if !IsNAA5(0x5000c50012345678) {
		t.Error("IsNAA5 = false for NAA-5 address")
	}
	if IsNAA5(0x3000c50012345678) {
		t.Error("IsNAA5 = true for NAA-3 address")
	}
	if !IsNAA3(0x3000c50012345678) {
		t.Error("IsNAA3 = false for NAA-3 address")
	}
	if IsNAA3(0) || IsNAA5(0) {
		t.Error("zero address classified as NAA formatted")
	}
}
