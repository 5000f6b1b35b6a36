package smp

import "fmt"

// DeviceType is the attached SAS device type from a DISCOVER response.
type DeviceType int

const (
	DeviceTypeNone DeviceType = iota
	DeviceTypeEnd             // SAS or SATA device
	DeviceTypeExpander
	DeviceTypeFanoutExpander // obsolete since SAS-2
)

var attachedDeviceTypes = [8]string{
	"no device attached",
	"SAS or SATA device", // was 'end device'
	"expander device",
	"expander device (fanout)",
	"reserved [4]",
	"reserved [5]",
	"reserved [6]",
	"reserved [7]",
}

var shortAttachedDeviceTypes = [8]string{
	"", "", "exp", "fex", "res", "res", "res", "res",
}

// String returns the long form name of the attached device type.
func (dt DeviceType) String() string {
	if dt >= 0 && int(dt) < len(attachedDeviceTypes) {
		return attachedDeviceTypes[dt]
	}
	return fmt.Sprintf("reserved [%d]", int(dt))
}

// Short returns the abbreviation used in one-line-per-phy output.
func (dt DeviceType) Short() string {
	if dt >= 0 && int(dt) < len(shortAttachedDeviceTypes) {
		return shortAttachedDeviceTypes[dt]
	}
	return "res"
}

// LinkRateString renders a physical link rate code. Codes 8..0xc are the
// negotiated generations; a zero means "not programmable" for programmable
// rate fields and "reserved" everywhere else, which callers signal via prog.
func LinkRateString(val int, prog bool) string {
	switch val {
	case 8:
		return "1.5 Gbps"
	case 9:
		return "3 Gbps"
	case 0xa:
		return "6 Gbps"
	case 0xb:
		return "12 Gbps"
	case 0xc:
		return "22.5 Gbps"
	}
	if prog && val == 0 {
		return "not programmable"
	}
	return fmt.Sprintf("reserved [%d]", val)
}

// NegotiatedStateString renders a negotiated (logical or physical) link rate
// code. Despite the numeric overlap with link rate generations these are a
// distinct code space: values 0..6 describe a phy that has not reached a
// negotiated rate.
func NegotiatedStateString(val int) string {
	switch val {
	case 0:
		return "phy enabled; unknown"
	case 1:
		return "phy disabled"
	case 2:
		return "phy enabled; speed negotiation failed"
	case 3:
		return "phy enabled; SATA spinup hold state"
	case 4:
		return "phy enabled; port selector"
	case 5:
		return "phy enabled; reset in progress"
	case 6:
		return "phy enabled; unsupported phy attached"
	case 8:
		return "phy enabled, 1.5 Gbps"
	case 9:
		return "phy enabled, 3 Gbps"
	case 0xa:
		return "phy enabled, 6 Gbps"
	case 0xb:
		return "phy enabled, 12 Gbps"
	case 0xc:
		return "phy enabled, 22.5 Gbps"
	default:
		return fmt.Sprintf("reserved [%d]", val)
	}
}

// ReasonString renders an attached/loss reason code.
func ReasonString(val int) string {
	switch val {
	case 0:
		return "unknown"
	case 1:
		return "power on"
	case 2:
		return "hard reset"
	case 3:
		return "SMP phy control requested"
	case 4:
		return "loss of dword synchronization"
	case 5:
		// hardware muxing made obsolete in spl5r01
		return "error in multiplexing (MUX) sequence"
	case 6:
		return "I_T nexus loss timeout STP/SATA"
	case 7:
		return "break timeout timer expired"
	case 8:
		return "phy test function stopped"
	case 9:
		return "expander reduced functionality"
	default:
		return fmt.Sprintf("reserved [%d]", val)
	}
}

// RoutingAttr is how the expander forwards frames arriving on a phy.
type RoutingAttr int

const (
	RoutingDirect      RoutingAttr = 0
	RoutingSubtractive RoutingAttr = 1
	RoutingTable       RoutingAttr = 2
)

// String returns the full routing attribute name.
func (ra RoutingAttr) String() string {
	switch ra {
	case RoutingDirect:
		return "direct"
	case RoutingSubtractive:
		return "subtractive"
	case RoutingTable:
		return "table"
	default:
		return fmt.Sprintf("reserved [%d]", int(ra))
	}
}

// Letter returns the single-letter code used in summary output. A table
// routing phy on an expander that supports table-to-table routing is
// "universal".
func (ra RoutingAttr) Letter(hasTableToTable bool) string {
	switch ra {
	case RoutingDirect:
		return "D"
	case RoutingSubtractive:
		return "S"
	case RoutingTable:
		if hasTableToTable {
			return "U"
		}
		return "T"
	default:
		return "R"
	}
}

// ConnectorTypeString renders a connector type code from the SPL connector
// type table.
func ConnectorTypeString(val int) string {
	switch val {
	case 0x0:
		return "No information"
	case 0x1:
		return "SAS 4x receptacle (SFF-8470) [max 4 phys]"
	case 0x2:
		return "Mini SAS 4x receptacle (SFF-8088) [max 4 phys]"
	case 0x3:
		return "QSFP+ receptacle (SFF-8436) [max 4 phys]"
	case 0x4:
		return "Mini SAS 4x active receptacle (SFF-8088) [max 4 phys]"
	case 0x5:
		return "Mini SAS HD 4x receptacle (SFF-8644) [max 4 phys]"
	case 0x6:
		return "Mini SAS HD 8x receptacle (SFF-8644) [max 8 phys]"
	case 0x7:
		return "Mini SAS HD 16x receptacle (SFF-8644) [max 16 phys]"
	case 0xf:
		return "Vendor specific external connector"
	case 0x10:
		return "SAS 4i plug (SFF-8484) [max 4 phys]"
	case 0x11:
		return "Mini SAS 4i receptacle (SFF-8087) [max 4 phys]"
	case 0x12:
		return "Mini SAS HD 4i receptacle (SFF-8643) [max 4 phys]"
	case 0x13:
		return "Mini SAS HD 8i receptacle (SFF-8643) [max 8 phys]"
	case 0x20:
		return "SAS Drive backplane receptacle (SFF-8482) [max 2 phys]"
	case 0x21:
		return "SATA host plug [max 1 phy]"
	case 0x22:
		return "SAS Drive plug (SFF-8482) [max 2 phys]"
	case 0x23:
		return "SATA device plug [max 1 phy]"
	case 0x24:
		return "Micro SAS receptacle [max 2 phys]"
	case 0x25:
		return "Micro SATA device plug [max 1 phy]"
	case 0x26:
		return "Micro SAS plug (SFF-8486) [max 2 phys]"
	case 0x27:
		return "Micro SAS/SATA plug (SFF-8486) [max 2 phys]"
	case 0x28:
		return "12 Gb/s SAS Drive backplane receptacle (SFF-8680) [max 2 phys]"
	case 0x29:
		return "12 Gb/s SAS Drive plug (SFF-8680) [max 2 phys]"
	case 0x2a:
		return "Multifunction 12 Gb/s 6x Unshielded receptacle (SFF-8639)"
	case 0x2b:
		return "Multifunction 12 Gb/s 6x Unshielded plug (SFF-8639)"
	case 0x2f:
		return "SAS virtual connector [max 1 phy]"
	case 0x3f:
		return "Vendor specific internal connector"
	}
	switch {
	case val < 0x10:
		return fmt.Sprintf("unknown external connector type: 0x%x", val)
	case val < 0x20:
		return fmt.Sprintf("unknown internal wide connector type: 0x%x", val)
	case val < 0x30:
		return fmt.Sprintf("unknown internal connector to end device, type: 0x%x", val)
	case val < 0x40:
		return fmt.Sprintf("reserved for internal connector, type: 0x%x", val)
	case val < 0x70:
		return fmt.Sprintf("reserved connector type: 0x%x", val)
	default:
		return fmt.Sprintf("vendor specific connector type: 0x%x", val)
	}
}

// PhyPowerCondString renders a phy power condition code.
func PhyPowerCondString(val int) string {
	switch val {
	case 0:
		return "active"
	case 1:
		return "partial"
	case 2:
		return "slumber"
	default:
		return fmt.Sprintf("reserved [%d]", val)
	}
}

// PwrDisSignalString renders a POWER DISABLE signal code.
func PwrDisSignalString(val int) string {
	switch val {
	case 0:
		return "not capable"
	case 1:
		return "reserved [1]"
	case 2:
		return "negated"
	case 3:
		return "asserted"
	default:
		return fmt.Sprintf("reserved [%d]", val)
	}
}

var broadcastTypeNames = []string{
	"Broadcast (Change)", // 0x0
	"Broadcast (Reserved Change 0)",
	"Broadcast (Reserved Change 1)",
	"Broadcast (SES)",
	"Broadcast (Expander)",
	"Broadcast (Asynchronous event)",
	"Broadcast (Reserved 3)",
	"Broadcast (Reserved 4)",
	"Broadcast (Zone activate)", // 0x8
}

// BroadcastTypeString renders a broadcast type code.
func BroadcastTypeString(val int) string {
	if val < 0 || val >= len(broadcastTypeNames) {
		return fmt.Sprintf("Reserved [0x%x]", val)
	}
	return broadcastTypeNames[val]
}
