package smp

import (
	"encoding/binary"
	"fmt"
	"io"
)

// PhyInfo is a decoded DISCOVER response for one expander phy. It is a view
// over the validated, length-resolved frame bytes; every accessor gates on
// the resolved length, so fields added by later protocol revisions read as
// absent (not zero) on older or truncated responses.
type PhyInfo struct {
	b []byte
}

// DecodeDiscover wraps a validated DISCOVER response. The response must
// have been produced by Decode; no re-validation happens here.
func DecodeDiscover(resp *Response) (*PhyInfo, error) {
	if resp.Function != FnDiscover {
		return nil, fmt.Errorf("not a DISCOVER response (function 0x%02x)", resp.Function)
	}
	if resp.Len < 16 {
		return nil, fmt.Errorf("DISCOVER response too short for fixed fields, len=%d", resp.Len)
	}
	return &PhyInfo{b: resp.Bytes()}, nil
}

// Len returns the resolved response length in bytes.
func (p *PhyInfo) Len() int { return len(p.b) }

func (p *PhyInfo) u8(off int) byte {
	if off < len(p.b) {
		return p.b[off]
	}
	return 0
}

func (p *PhyInfo) be16(off int) (uint16, bool) {
	if off+2 > len(p.b) {
		return 0, false
	}
	return binary.BigEndian.Uint16(p.b[off:]), true
}

func (p *PhyInfo) be32(off int) (uint32, bool) {
	if off+4 > len(p.b) {
		return 0, false
	}
	return binary.BigEndian.Uint32(p.b[off:]), true
}

func (p *PhyInfo) be64(off int) (uint64, bool) {
	if off+8 > len(p.b) {
		return 0, false
	}
	return binary.BigEndian.Uint64(p.b[off:]), true
}

// SAS2 reports whether the expander declared a response length, which only
// SAS-2 and later expanders do.
func (p *PhyInfo) SAS2() bool { return p.u8(3) != 0 }

// ExpanderChangeCount is from the response header (SAS-2).
func (p *PhyInfo) ExpanderChangeCount() uint16 {
	v, _ := p.be16(4)
	return v
}

// PhyID returns the phy identifier echoed in the response.
func (p *PhyInfo) PhyID() int { return int(p.u8(9)) }

// AttachedDeviceType returns the attached SAS device type.
func (p *PhyInfo) AttachedDeviceType() DeviceType {
	return DeviceType((p.u8(12) & 0x70) >> 4)
}

// AttachedReason returns the attached reason code.
func (p *PhyInfo) AttachedReason() int { return int(p.u8(12) & 0xf) }

// NegotiatedLogicalRate returns the negotiated logical link rate code.
// Codes 1..6 describe link states rather than rates; see
// NegotiatedStateString.
func (p *PhyInfo) NegotiatedLogicalRate() int { return int(p.u8(13) & 0xf) }

// Attached initiator capability bits (byte 14).
func (p *PhyInfo) AttachedSSPInitiator() bool   { return p.u8(14)&0x8 != 0 }
func (p *PhyInfo) AttachedSTPInitiator() bool   { return p.u8(14)&0x4 != 0 }
func (p *PhyInfo) AttachedSMPInitiator() bool   { return p.u8(14)&0x2 != 0 }
func (p *PhyInfo) AttachedSATAHost() bool       { return p.u8(14)&0x1 != 0 }
func (p *PhyInfo) HasInitiatorCapability() bool { return p.u8(14)&0xf != 0 }

// Attached target capability bits (byte 15).
func (p *PhyInfo) AttachedSATAPortSelector() bool { return p.u8(15)&0x80 != 0 }
func (p *PhyInfo) STPBufferTooSmall() bool        { return p.u8(15)&0x10 != 0 }
func (p *PhyInfo) AttachedSSPTarget() bool        { return p.u8(15)&0x8 != 0 }
func (p *PhyInfo) AttachedSTPTarget() bool        { return p.u8(15)&0x4 != 0 }
func (p *PhyInfo) AttachedSMPTarget() bool        { return p.u8(15)&0x2 != 0 }
func (p *PhyInfo) AttachedSATADevice() bool       { return p.u8(15)&0x1 != 0 }
func (p *PhyInfo) HasTargetCapability() bool {
	return p.u8(15)&0xf != 0 || p.AttachedSATAPortSelector()
}

// SASAddress returns this expander's SAS address as reported on this phy.
func (p *PhyInfo) SASAddress() uint64 {
	v, _ := p.be64(16)
	return v
}

// AttachedSASAddress returns the SAS address of the attached device.
func (p *PhyInfo) AttachedSASAddress() uint64 {
	v, _ := p.be64(24)
	return v
}

// AttachedPhyID returns the attached device's phy identifier.
func (p *PhyInfo) AttachedPhyID() int { return int(p.u8(32)) }

// Attached phy capability bits (bytes 33..34, SAS-2).
func (p *PhyInfo) AttachedPersistentCapable() bool     { return p.u8(33)&0x80 != 0 }
func (p *PhyInfo) AttachedPowerCapable() int           { return int(p.u8(33)>>5) & 0x3 }
func (p *PhyInfo) AttachedSlumberCapable() bool        { return p.u8(33)&0x10 != 0 }
func (p *PhyInfo) AttachedPartialCapable() bool        { return p.u8(33)&0x8 != 0 }
func (p *PhyInfo) AttachedInsideZPSDSPersistent() bool { return p.u8(33)&0x4 != 0 }
func (p *PhyInfo) AttachedRequestedInsideZPSDS() bool  { return p.u8(33)&0x2 != 0 }
func (p *PhyInfo) AttachedBreakReplyCapable() bool     { return p.u8(33)&0x1 != 0 }
func (p *PhyInfo) AttachedAPTACapable() bool           { return p.u8(34)&0x4 != 0 }
func (p *PhyInfo) AttachedSMPPriorityCapable() bool    { return p.u8(34)&0x2 != 0 }
func (p *PhyInfo) AttachedPwrDisCapable() bool         { return p.u8(34)&0x1 != 0 }

// Programmed and hardware link rate fields (bytes 40..41).
func (p *PhyInfo) ProgMinLinkRate() int { return int(p.u8(40)>>4) & 0xf }
func (p *PhyInfo) HwMinLinkRate() int   { return int(p.u8(40)) & 0xf }
func (p *PhyInfo) ProgMaxLinkRate() int { return int(p.u8(41)>>4) & 0xf }
func (p *PhyInfo) HwMaxLinkRate() int   { return int(p.u8(41)) & 0xf }

// PhyChangeCount returns the per-phy change count.
func (p *PhyInfo) PhyChangeCount() int { return int(p.u8(42)) }

// VirtualPhy reports a phy internal to the expander.
func (p *PhyInfo) VirtualPhy() bool { return p.u8(43)&0x80 != 0 }

// PartialPathwayTimeout returns the timeout value in microseconds.
func (p *PhyInfo) PartialPathwayTimeout() int { return int(p.u8(43) & 0xf) }

// Routing returns the routing attribute.
func (p *PhyInfo) Routing() RoutingAttr { return RoutingAttr(p.u8(44) & 0xf) }

// Connector fields (bytes 45..47).
func (p *PhyInfo) ConnectorType() int         { return int(p.u8(45) & 0x7f) }
func (p *PhyInfo) ConnectorElementIndex() int { return int(p.u8(46)) }
func (p *PhyInfo) ConnectorPhysicalLink() int { return int(p.u8(47)) }

// Power condition fields (bytes 48..49, SAS-2).
func (p *PhyInfo) PhyPowerCondition() int    { return int(p.u8(48)>>6) & 0x3 }
func (p *PhyInfo) SASPowerCapable() int      { return int(p.u8(48)>>4) & 0x3 }
func (p *PhyInfo) SASSlumberCapable() bool   { return p.u8(48)&0x8 != 0 }
func (p *PhyInfo) SASPartialCapable() bool   { return p.u8(48)&0x4 != 0 }
func (p *PhyInfo) SATASlumberCapable() bool  { return p.u8(48)&0x2 != 0 }
func (p *PhyInfo) SATAPartialCapable() bool  { return p.u8(48)&0x1 != 0 }
func (p *PhyInfo) PwrDisSignal() int         { return int(p.u8(49)>>6) & 0x3 }
func (p *PhyInfo) PwrDisControlCapable() int { return int(p.u8(49)>>4) & 0x3 }
func (p *PhyInfo) SASSlumberEnabled() bool   { return p.u8(49)&0x8 != 0 }
func (p *PhyInfo) SASPartialEnabled() bool   { return p.u8(49)&0x4 != 0 }
func (p *PhyInfo) SATASlumberEnabled() bool  { return p.u8(49)&0x2 != 0 }
func (p *PhyInfo) SATAPartialEnabled() bool  { return p.u8(49)&0x1 != 0 }

// Fields below are gated behind response length thresholds. Each returns
// ok=false when the response is too short for the field, which callers must
// treat as "absent", never as an error. Every gate compares the resolved
// length against the field's last byte offset (len <= last means absent).

// AttachedDeviceName is present when the response extends past 59 bytes.
func (p *PhyInfo) AttachedDeviceName() (uint64, bool) {
	if len(p.b) <= 59 {
		return 0, false
	}
	return binary.BigEndian.Uint64(p.b[52:]), true
}

// Zoning flag byte (byte 60), present past 60 bytes.
func (p *PhyInfo) zoneByte() (byte, bool) {
	if len(p.b) <= 60 {
		return 0, false
	}
	return p.b[60], true
}

func (p *PhyInfo) ReqInsideZPSDSChangedByExp() (bool, bool) {
	v, ok := p.zoneByte()
	return v&0x40 != 0, ok
}

func (p *PhyInfo) InsideZPSDSPersistent() (bool, bool) {
	v, ok := p.zoneByte()
	return v&0x20 != 0, ok
}

func (p *PhyInfo) RequestedInsideZPSDS() (bool, bool) {
	v, ok := p.zoneByte()
	return v&0x10 != 0, ok
}

func (p *PhyInfo) ZoneGroupPersistent() (bool, bool) {
	v, ok := p.zoneByte()
	return v&0x4 != 0, ok
}

func (p *PhyInfo) InsideZPSDS() (bool, bool) {
	v, ok := p.zoneByte()
	return v&0x2 != 0, ok
}

func (p *PhyInfo) ZoningEnabled() (bool, bool) {
	v, ok := p.zoneByte()
	return v&0x1 != 0, ok
}

// ZoneGroup is present when the response extends past 63 bytes.
func (p *PhyInfo) ZoneGroup() (int, bool) {
	if len(p.b) <= 63 {
		return 0, false
	}
	return int(p.b[63]), true
}

// Self-configuration fields, present from 76 bytes.
func (p *PhyInfo) SelfConfigStatus() (int, bool) {
	if len(p.b) < 76 {
		return 0, false
	}
	return int(p.b[64]), true
}

func (p *PhyInfo) SelfConfigLevelsCompleted() (int, bool) {
	if len(p.b) < 76 {
		return 0, false
	}
	return int(p.b[65]), true
}

func (p *PhyInfo) SelfConfigSASAddress() (uint64, bool) {
	if len(p.b) < 76 {
		return 0, false
	}
	return binary.BigEndian.Uint64(p.b[68:]), true
}

// Phy capability words.
func (p *PhyInfo) ProgrammedPhyCapabilities() (PhyCapability, bool) {
	v, ok := p.be32(76)
	return PhyCapability(v), ok
}

func (p *PhyInfo) CurrentPhyCapabilities() (PhyCapability, bool) {
	v, ok := p.be32(80)
	return PhyCapability(v), ok
}

func (p *PhyInfo) AttachedPhyCapabilities() (PhyCapability, bool) {
	v, ok := p.be32(84)
	return PhyCapability(v), ok
}

// Fields present past 95 bytes (SPL).
func (p *PhyInfo) Reason() (int, bool) {
	if len(p.b) <= 95 {
		return 0, false
	}
	return int(p.b[94]>>4) & 0xf, true
}

func (p *PhyInfo) NegotiatedPhysicalRate() (int, bool) {
	if len(p.b) <= 95 {
		return 0, false
	}
	return int(p.b[94]) & 0xf, true
}

func (p *PhyInfo) OpticalModeEnabled() (bool, bool) {
	if len(p.b) <= 95 {
		return false, false
	}
	return p.b[95]&0x4 != 0, true
}

func (p *PhyInfo) NegotiatedSSC() (bool, bool) {
	if len(p.b) <= 95 {
		return false, false
	}
	return p.b[95]&0x2 != 0, true
}

// HwMuxingSupported is obsolete since spl5r01 but still reported.
func (p *PhyInfo) HwMuxingSupported() (bool, bool) {
	if len(p.b) <= 95 {
		return false, false
	}
	return p.b[95]&0x1 != 0, true
}

// DefSavedShadowZoning returns the default, saved and shadow zoning
// snapshots (bytes 96..107), present past 107 bytes.
type ZoningSnapshot struct {
	InsideZPSDSPersistent bool
	RequestedInsideZPSDS  bool
	ZoneGroupPersistent   bool
	ZoningEnabled         bool
	ZoneGroup             int
}

func (p *PhyInfo) zoningSnapshot(off int) ZoningSnapshot {
	return ZoningSnapshot{
		InsideZPSDSPersistent: p.b[off]&0x20 != 0,
		RequestedInsideZPSDS:  p.b[off]&0x10 != 0,
		ZoneGroupPersistent:   p.b[off]&0x4 != 0,
		ZoningEnabled:         p.b[off]&0x1 != 0,
		ZoneGroup:             int(p.b[off+3]),
	}
}

func (p *PhyInfo) DefaultZoning() (ZoningSnapshot, bool) {
	if len(p.b) <= 107 {
		return ZoningSnapshot{}, false
	}
	return p.zoningSnapshot(96), true
}

func (p *PhyInfo) SavedZoning() (ZoningSnapshot, bool) {
	if len(p.b) <= 107 {
		return ZoningSnapshot{}, false
	}
	return p.zoningSnapshot(100), true
}

func (p *PhyInfo) ShadowZoning() (ZoningSnapshot, bool) {
	if len(p.b) <= 107 {
		return ZoningSnapshot{}, false
	}
	return p.zoningSnapshot(104), true
}

// Device slot fields, present past 109 bytes.
func (p *PhyInfo) DeviceSlotNumber() (int, bool) {
	if len(p.b) <= 109 {
		return 0, false
	}
	return int(p.b[108]), true
}

// DeviceSlotGroupNumber returns 255 for "not available".
func (p *PhyInfo) DeviceSlotGroupNumber() (int, bool) {
	if len(p.b) <= 109 {
		return 0, false
	}
	return int(p.b[109]), true
}

// DeviceSlotGroupOutputConnector is present past 115 bytes.
func (p *PhyInfo) DeviceSlotGroupOutputConnector() (string, bool) {
	if len(p.b) <= 115 {
		return "", false
	}
	return string(p.b[110:116]), true
}

// STPBufferSize is present past 117 bytes.
func (p *PhyInfo) STPBufferSize() (uint16, bool) {
	if len(p.b) <= 117 {
		return 0, false
	}
	return binary.BigEndian.Uint16(p.b[116:]), true
}

// BufferedPhyBurstSize (KiB) is present past 118 bytes.
func (p *PhyInfo) BufferedPhyBurstSize() (int, bool) {
	if len(p.b) <= 118 {
		return 0, false
	}
	return int(p.b[118]), true
}

// PhyCapability is the 32-bit phy capabilities word (SNW-3). The layout is
// from spl5r02 table 70: a Tx SSC type bit, two requested interleaved SPL
// bits, the obsolete requested logical link rate nibble, five 2-bit
// generation support fields (G1 in the highest position), and the extended
// coefficient settings bit.
type PhyCapability uint32

// Generation support field values.
const (
	GenNone       = 0
	GenWithSSC    = 1
	GenWithoutSSC = 2
	GenBothSSC    = 3
)

func (c PhyCapability) TxSSCType() int          { return int(c>>30) & 0x1 }
func (c PhyCapability) InterleavedSPL() int     { return int(c>>28) & 0x3 }
func (c PhyCapability) ReqLogicalLinkRate() int { return int(c>>24) & 0xf }

// Generation returns the 2-bit support field for generation g (1..5).
func (c PhyCapability) Generation(g int) int {
	if g < 1 || g > 5 {
		return GenNone
	}
	return int(c>>(14+2*(5-g))) & 0x3
}

// ExtendedCoefficient reports the extended coefficient settings bit.
func (c PhyCapability) ExtendedCoefficient() bool { return c&0x2 != 0 }

var genNames = [5]string{"G1", "G2", "G3", "G4", "G5"}
var genNamesLong = [5]string{
	"G1 (1.5 Gbps)", "G2 (3 Gbps)", "G3 (6 Gbps)", "G4 (12 Gbps)",
	"G5 (22.5 Gbps)",
}

// Render writes the multi-line capability summary. Generations with no
// support are skipped entirely; the remainder are grouped two per line.
func (c PhyCapability) Render(w io.Writer, long bool) {
	fmt.Fprintf(w, "    Tx SSC type: %d, Requested interleaved SPL: %d, [Req logical lr: 0x%x]\n",
		c.TxSSCType(), c.InterleavedSPL(), c.ReqLogicalLinkRate())
	prevNL := true
	skip := 0
	for g := 1; g <= 5; g++ {
		name := genNames[g-1]
		if long {
			name = genNamesLong[g-1]
		}
		switch c.Generation(g) {
		case GenNone:
			skip++
		case GenWithSSC:
			fmt.Fprintf(w, "    %s: with SSC", name)
			prevNL = false
		case GenWithoutSSC:
			fmt.Fprintf(w, "    %s: without SSC", name)
			prevNL = false
		case GenBothSSC:
			fmt.Fprintf(w, "    %s: with+without SSC", name)
			prevNL = false
		}
		if g == 2 && skip == 0 {
			fmt.Fprintln(w)
			skip = 2
			prevNL = true
		}
		if g == 4 && skip < 2 {
			fmt.Fprintln(w)
			prevNL = true
		}
	}
	if !prevNL {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "    Extended coefficient settings: %d\n", (c>>1)&0x1)
}
