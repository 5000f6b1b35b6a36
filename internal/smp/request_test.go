package smp

import "testing"

func TestAllocDwords(t *testing.T) {
	tests := []struct {
		capacity int
		want     byte
	}{
		{8, 0},
		{12, 1},
		{DiscoverResponseLen, 29},
		{ReportGeneralResponseLen, 17},
		{ReportBroadcastResponseLen, 255},
		{8 + 4*0xff, 255},
		{8 + 4*0x100, 255}, // clamped
		{0, 0},             // never negative
	}
	for _, tt := range tests {
		if got := allocDwords(tt.capacity); got != tt.want {
			t.Errorf("allocDwords(%d) = %d, want %d", tt.capacity, got, tt.want)
		}
	}
}

func TestNewReportGeneral(t *testing.T) {
	req := NewReportGeneral(false)
	if req.Function != FnReportGeneral {
		t.Errorf("Function = %#x", req.Function)
	}
	if len(req.Data) != 8 {
		t.Fatalf("frame = %d bytes", len(req.Data))
	}
	if req.Data[0] != FrameTypeRequest || req.Data[1] != FnReportGeneral {
		t.Errorf("header = % x", req.Data[:4])
	}
	if req.Data[2] != 17 {
		t.Errorf("allocated response length = %d dwords", req.Data[2])
	}
	if req.ResponseLen != ReportGeneralResponseLen {
		t.Errorf("ResponseLen = %d", req.ResponseLen)
	}

	zero := NewReportGeneral(true)
	if zero.Data[2] != 0 {
		t.Errorf("zeroed request has allocated length %d", zero.Data[2])
	}
}

func TestNewDiscover(t *testing.T) {
	req := NewDiscover(42, false, false)
	if len(req.Data) != 16 {
		t.Fatalf("frame = %d bytes", len(req.Data))
	}
	if req.Data[1] != FnDiscover {
		t.Errorf("function = %#x", req.Data[1])
	}
	if req.Data[2] != 29 {
		t.Errorf("allocated response length = %d dwords", req.Data[2])
	}
	if req.Data[3] != 2 {
		t.Errorf("request length = %d dwords", req.Data[3])
	}
	if req.Data[8]&0x1 != 0 {
		t.Error("ignore zone group bit set")
	}
	if req.Data[9] != 42 {
		t.Errorf("phy id = %d", req.Data[9])
	}
	if req.ResponseLen != DiscoverResponseLen {
		t.Errorf("ResponseLen = %d", req.ResponseLen)
	}

	izg := NewDiscover(0, true, false)
	if izg.Data[8]&0x1 == 0 {
		t.Error("ignore zone group bit not set")
	}

	zero := NewDiscover(7, false, true)
	if zero.Data[2] != 0 || zero.Data[3] != 0 {
		t.Errorf("zeroed request length fields = %d/%d", zero.Data[2], zero.Data[3])
	}
	if zero.Data[9] != 7 {
		t.Errorf("zeroed request phy id = %d", zero.Data[9])
	}
}

func TestNewReportBroadcast(t *testing.T) {
	req := NewReportBroadcast(4)
	if len(req.Data) != 12 {
		t.Fatalf("frame = %d bytes", len(req.Data))
	}
	if req.Data[1] != FnReportBroadcast || req.Data[3] != 1 {
		t.Errorf("header = % x", req.Data[:4])
	}
	if req.Data[4] != 4 {
		t.Errorf("broadcast type = %d", req.Data[4])
	}
	if req.Data[2] != 255 {
		t.Errorf("allocated response length = %d dwords", req.Data[2])
	}
}

func TestNewPhyTest(t *testing.T) {
	req := NewPhyTest(PhyTestOptions{
		ExpectedChangeCount: 0x0304,
		PhyID:               5,
		Function:            1,
		Pattern:             2,
		LinkRate:            0xa,
		SSC:                 1,
		SATA:                true,
		DwordsControl:       0xf0,
		Dwords:              0xb5b5b5b54a4a4a4a,
	})
	if len(req.Data) != 44 {
		t.Fatalf("frame = %d bytes", len(req.Data))
	}
	if req.Data[1] != FnPhyTest || req.Data[3] != 9 {
		t.Errorf("header = % x", req.Data[:4])
	}
	if req.Data[4] != 0x03 || req.Data[5] != 0x04 {
		t.Errorf("expected change count = % x", req.Data[4:6])
	}
	if req.Data[9] != 5 || req.Data[10] != 1 || req.Data[11] != 2 {
		t.Errorf("phy/function/pattern = % x", req.Data[9:12])
	}
	// SATA bit, SSC code and link rate share byte 15.
	if req.Data[15] != 0x5a {
		t.Errorf("byte 15 = %#x, want 0x5a", req.Data[15])
	}
	if req.Data[19] != 0xf0 {
		t.Errorf("dwords control = %#x", req.Data[19])
	}
	if req.Data[20] != 0xb5 || req.Data[27] != 0x4a {
		t.Errorf("pattern dwords = % x", req.Data[20:28])
	}
	if req.ResponseLen != HeaderOnlyResponseLen {
		t.Errorf("ResponseLen = %d", req.ResponseLen)
	}
}

func TestNewConfigGeneral(t *testing.T) {
	tests := []struct {
		name     string
		opt      ConfigGeneralOptions
		wantMask byte
		check    func(t *testing.T, d []byte)
	}{
		{
			name:     "no updates",
			opt:      ConfigGeneralOptions{ExpectedChangeCount: 9},
			wantMask: 0,
			check: func(t *testing.T, d []byte) {
				if d[4] != 0 || d[5] != 9 {
					t.Errorf("expected change count = % x", d[4:6])
				}
			},
		},
		{
			name:     "stp inactivity",
			opt:      ConfigGeneralOptions{UpdateSTPInactivity: true, STPInactivity: 0x0102},
			wantMask: 0x1,
			check: func(t *testing.T, d []byte) {
				if d[10] != 0x01 || d[11] != 0x02 {
					t.Errorf("stp inactivity = % x", d[10:12])
				}
			},
		},
		{
			name:     "stp connect",
			opt:      ConfigGeneralOptions{UpdateSTPConnect: true, STPConnect: 0x0203},
			wantMask: 0x2,
			check: func(t *testing.T, d []byte) {
				if d[12] != 0x02 || d[13] != 0x03 {
					t.Errorf("stp connect = % x", d[12:14])
				}
			},
		},
		{
			name:     "nexus loss",
			opt:      ConfigGeneralOptions{UpdateNexusLoss: true, NexusLoss: 2000},
			wantMask: 0x4,
			check: func(t *testing.T, d []byte) {
				if d[14] != 0x07 || d[15] != 0xd0 {
					t.Errorf("nexus loss = % x", d[14:16])
				}
			},
		},
		{
			name:     "reduced functionality",
			opt:      ConfigGeneralOptions{UpdateReducedFunc: true, ReducedFunc: 30},
			wantMask: 0x8,
			check: func(t *testing.T, d []byte) {
				if d[16] != 30 {
					t.Errorf("reduced func = %d", d[16])
				}
			},
		},
		{
			name:     "reject to open",
			opt:      ConfigGeneralOptions{UpdateRejectToOpen: true, RejectToOpen: 0x0a0b},
			wantMask: 0x10,
			check: func(t *testing.T, d []byte) {
				if d[18] != 0x0a || d[19] != 0x0b {
					t.Errorf("reject to open = % x", d[18:20])
				}
			},
		},
		{
			name:     "power done",
			opt:      ConfigGeneralOptions{UpdatePowerDone: true, PowerDone: 45},
			wantMask: 0x20,
			check: func(t *testing.T, d []byte) {
				if d[17] != 45 {
					t.Errorf("power done = %d", d[17])
				}
			},
		},
		{
			name:     "ssp close control",
			opt:      ConfigGeneralOptions{UpdateSSPCloseCtl: true, SSPCloseCtl: 0x0506},
			wantMask: 0x40,
			check: func(t *testing.T, d []byte) {
				if d[6] != 0x05 || d[7] != 0x06 {
					t.Errorf("ssp close control = % x", d[6:8])
				}
			},
		},
		{
			name:     "initial delay",
			opt:      ConfigGeneralOptions{UpdateITDelay: true, ITDelay: 200},
			wantMask: 0x80,
			check: func(t *testing.T, d []byte) {
				if d[9] != 200 {
					t.Errorf("initial delay = %d", d[9])
				}
			},
		},
		{
			name: "combined updates",
			opt: ConfigGeneralOptions{
				UpdateSTPInactivity: true,
				UpdateNexusLoss:     true,
				UpdatePowerDone:     true,
			},
			wantMask: 0x25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewConfigGeneral(tt.opt)
			if len(req.Data) != 24 {
				t.Fatalf("frame = %d bytes", len(req.Data))
			}
			if req.Data[1] != FnConfigGeneral || req.Data[3] != 4 {
				t.Errorf("header = % x", req.Data[:4])
			}
			if req.Data[8] != tt.wantMask {
				t.Errorf("update mask = %#x, want %#x", req.Data[8], tt.wantMask)
			}
			if tt.check != nil {
				tt.check(t, req.Data)
			}
		})
	}
}
