package smp

import (
	"encoding/binary"
	"fmt"
)

// GeneralInfo is a decoded REPORT GENERAL response, the same length-gated
// view style as PhyInfo. A discovery session derives it once and treats it
// as immutable afterward.
type GeneralInfo struct {
	b []byte
}

// DecodeReportGeneral wraps a validated REPORT GENERAL response.
func DecodeReportGeneral(resp *Response) (*GeneralInfo, error) {
	if resp.Function != FnReportGeneral {
		return nil, fmt.Errorf("not a REPORT GENERAL response (function 0x%02x)", resp.Function)
	}
	return &GeneralInfo{b: resp.Bytes()}, nil
}

// Len returns the resolved response length in bytes.
func (g *GeneralInfo) Len() int { return len(g.b) }

func (g *GeneralInfo) u8(off int) byte {
	if off < len(g.b) {
		return g.b[off]
	}
	return 0
}

func (g *GeneralInfo) be16(off int) (uint16, bool) {
	if off+2 > len(g.b) {
		return 0, false
	}
	return binary.BigEndian.Uint16(g.b[off:]), true
}

// SAS2 reports whether the expander declared a response length.
func (g *GeneralInfo) SAS2() bool { return g.u8(3) != 0 }

// ExpanderChangeCount increments when the expander's configuration changes.
func (g *GeneralInfo) ExpanderChangeCount() uint16 {
	v, _ := g.be16(4)
	return v
}

// ExpanderRouteIndexes is the number of route table entries per phy.
func (g *GeneralInfo) ExpanderRouteIndexes() uint16 {
	v, _ := g.be16(6)
	return v
}

// LongResponse reports SPL long response support.
func (g *GeneralInfo) LongResponse() bool { return g.u8(8)&0x80 != 0 }

// NumPhys returns the number of phys the expander implements, or 0 when the
// response is too short to say.
func (g *GeneralInfo) NumPhys() int {
	if len(g.b) <= 9 {
		return 0
	}
	return int(g.b[9])
}

// TableToTableSupported reports the table-to-table routing capability that
// upgrades a table routing phy to "universal" in summary output.
func (g *GeneralInfo) TableToTableSupported() bool {
	if len(g.b) <= 10 {
		return false
	}
	return g.b[10]&0x80 != 0
}

// Configuring/state bits (byte 10).
func (g *GeneralInfo) ZoneConfiguring() bool          { return g.u8(10)&0x40 != 0 }
func (g *GeneralInfo) SelfConfiguring() bool          { return g.u8(10)&0x20 != 0 }
func (g *GeneralInfo) STPContinueAWT() bool           { return g.u8(10)&0x10 != 0 }
func (g *GeneralInfo) OpenRejectRetrySupported() bool { return g.u8(10)&0x8 != 0 }
func (g *GeneralInfo) ConfiguresOthers() bool         { return g.u8(10)&0x4 != 0 }
func (g *GeneralInfo) Configuring() bool              { return g.u8(10)&0x2 != 0 }
func (g *GeneralInfo) ExternallyConfigurable() bool   { return g.u8(10)&0x1 != 0 }

func (g *GeneralInfo) ExtendedFairness() bool  { return g.u8(11)&0x2 != 0 }
func (g *GeneralInfo) InitiatesSSPClose() bool { return g.u8(11)&0x1 != 0 }

// EnclosureLogicalID returns the enclosure identifier bytes (12..19); ok is
// false when all zero or absent.
func (g *GeneralInfo) EnclosureLogicalID() ([8]byte, bool) {
	var id [8]byte
	if len(g.b) < 20 {
		return id, false
	}
	copy(id[:], g.b[12:20])
	for _, v := range id {
		if v != 0 {
			return id, true
		}
	}
	return id, false
}

// SSPConnectTimeLimit in 100 usec units; 0 means unlimited.
func (g *GeneralInfo) SSPConnectTimeLimit() (uint16, bool) { return g.be16(28) }

// STP timers, present from 36 bytes.
func (g *GeneralInfo) STPBusInactivityLimit() (uint16, bool) {
	if len(g.b) < 36 {
		return 0, false
	}
	return binary.BigEndian.Uint16(g.b[30:]), true
}

func (g *GeneralInfo) STPConnectTimeLimit() (uint16, bool) {
	if len(g.b) < 36 {
		return 0, false
	}
	return binary.BigEndian.Uint16(g.b[32:]), true
}

func (g *GeneralInfo) STPNexusLossTime() (uint16, bool) {
	if len(g.b) < 36 {
		return 0, false
	}
	return binary.BigEndian.Uint16(g.b[34:]), true
}

// Zoning block (bytes 36..39), present from 40 bytes.
func (g *GeneralInfo) zoningByte() (byte, bool) {
	if len(g.b) < 40 {
		return 0, false
	}
	return g.b[36], true
}

// NumZoneGroups returns the coded zone group count (0 -> 128, 1 -> 256).
func (g *GeneralInfo) NumZoneGroups() (int, bool) {
	v, ok := g.zoningByte()
	return int(v>>6) & 0x3, ok
}

func (g *GeneralInfo) ZoneLocked() (bool, bool) {
	v, ok := g.zoningByte()
	return v&0x10 != 0, ok
}

func (g *GeneralInfo) PhysicalPresenceSupported() (bool, bool) {
	v, ok := g.zoningByte()
	return v&0x8 != 0, ok
}

func (g *GeneralInfo) PhysicalPresenceAsserted() (bool, bool) {
	v, ok := g.zoningByte()
	return v&0x4 != 0, ok
}

func (g *GeneralInfo) ZoningSupported() (bool, bool) {
	v, ok := g.zoningByte()
	return v&0x2 != 0, ok
}

func (g *GeneralInfo) ZoningEnabled() (bool, bool) {
	v, ok := g.zoningByte()
	return v&0x1 != 0, ok
}

func (g *GeneralInfo) savingByte() (byte, bool) {
	if len(g.b) < 40 {
		return 0, false
	}
	return g.b[37], true
}

func (g *GeneralInfo) Saving() (bool, bool) {
	v, ok := g.savingByte()
	return v&0x10 != 0, ok
}

func (g *GeneralInfo) SavingZoneManPassSupported() (bool, bool) {
	v, ok := g.savingByte()
	return v&0x8 != 0, ok
}

func (g *GeneralInfo) SavingZonePhyInfoSupported() (bool, bool) {
	v, ok := g.savingByte()
	return v&0x4 != 0, ok
}

func (g *GeneralInfo) SavingZonePermTableSupported() (bool, bool) {
	v, ok := g.savingByte()
	return v&0x2 != 0, ok
}

func (g *GeneralInfo) SavingZoningEnabledSupported() (bool, bool) {
	v, ok := g.savingByte()
	return v&0x1 != 0, ok
}

// MaxRoutedSASAddresses is present from 40 bytes.
func (g *GeneralInfo) MaxRoutedSASAddresses() (uint16, bool) {
	if len(g.b) < 40 {
		return 0, false
	}
	return binary.BigEndian.Uint16(g.b[38:]), true
}

// ActiveZoneManagerSASAddress is present from 48 bytes.
func (g *GeneralInfo) ActiveZoneManagerSASAddress() (uint64, bool) {
	if len(g.b) < 48 {
		return 0, false
	}
	return binary.BigEndian.Uint64(g.b[40:]), true
}

// ZoneLockInactivityLimit (100ms units) is present from 50 bytes.
func (g *GeneralInfo) ZoneLockInactivityLimit() (uint16, bool) {
	if len(g.b) < 50 {
		return 0, false
	}
	return binary.BigEndian.Uint16(g.b[48:]), true
}

// Fields present from 56 bytes.
func (g *GeneralInfo) PowerDoneTimeout() (int, bool) {
	if len(g.b) < 56 {
		return 0, false
	}
	return int(g.b[52]), true
}

func (g *GeneralInfo) FirstEnclosureConnectorIndex() (int, bool) {
	if len(g.b) < 56 {
		return 0, false
	}
	return int(g.b[53]), true
}

func (g *GeneralInfo) NumEnclosureConnectorIndexes() (int, bool) {
	if len(g.b) < 56 {
		return 0, false
	}
	return int(g.b[54]), true
}

func (g *GeneralInfo) InitialDelayForwardOpen() (int, bool) {
	if len(g.b) < 56 {
		return 0, false
	}
	return int(g.b[55]), true
}

// Reduced functionality fields, present from 60 bytes.
func (g *GeneralInfo) ReducedFunctionality() (bool, bool) {
	if len(g.b) < 60 {
		return false, false
	}
	return g.b[56]&0x80 != 0, true
}

func (g *GeneralInfo) ExternalPort() (bool, bool) {
	if len(g.b) < 60 {
		return false, false
	}
	return g.b[56]&0x40 != 0, true
}

func (g *GeneralInfo) TimeToReducedFunc() (int, bool) {
	if len(g.b) < 60 {
		return 0, false
	}
	return int(g.b[57]), true
}

func (g *GeneralInfo) InitialTimeToReducedFunc() (int, bool) {
	if len(g.b) < 60 {
		return 0, false
	}
	return int(g.b[58]), true
}

func (g *GeneralInfo) MaxReducedFuncTime() (int, bool) {
	if len(g.b) < 60 {
		return 0, false
	}
	return int(g.b[59]), true
}

// Self-configuration and phy event list indexes, present from 68 bytes.
func (g *GeneralInfo) LastSelfConfigStatusIndex() (uint16, bool) {
	if len(g.b) < 68 {
		return 0, false
	}
	return binary.BigEndian.Uint16(g.b[60:]), true
}

func (g *GeneralInfo) MaxSelfConfigStatusDescriptors() (uint16, bool) {
	if len(g.b) < 68 {
		return 0, false
	}
	return binary.BigEndian.Uint16(g.b[62:]), true
}

func (g *GeneralInfo) LastPhyEventListIndex() (uint16, bool) {
	if len(g.b) < 68 {
		return 0, false
	}
	return binary.BigEndian.Uint16(g.b[64:]), true
}

func (g *GeneralInfo) MaxPhyEventListDescriptors() (uint16, bool) {
	if len(g.b) < 68 {
		return 0, false
	}
	return binary.BigEndian.Uint16(g.b[66:]), true
}

// STPRejectToOpenLimit (10us units) is present from 70 bytes.
func (g *GeneralInfo) STPRejectToOpenLimit() (uint16, bool) {
	if len(g.b) < 70 {
		return 0, false
	}
	return binary.BigEndian.Uint16(g.b[68:]), true
}
