package smp

import "fmt"

// ResultCode is the one-byte function result from byte 2 of a response.
type ResultCode byte

// Function result codes from the SPL series.
const (
	ResFunctionAccepted         ResultCode = 0x00
	ResUnknownFunction          ResultCode = 0x01
	ResFunctionFailed           ResultCode = 0x02
	ResInvalidRequestLen        ResultCode = 0x03
	ResInvalidExpChangeCount    ResultCode = 0x04
	ResBusy                     ResultCode = 0x05
	ResIncompleteDescriptorList ResultCode = 0x06
	ResPhyDoesNotExist          ResultCode = 0x10
	ResIndexDoesNotExist        ResultCode = 0x11
	ResPhyDoesNotSupportSATA    ResultCode = 0x12
	ResUnknownPhyOperation      ResultCode = 0x13
	ResUnknownPhyTestFunction   ResultCode = 0x14
	ResPhyTestInProgress        ResultCode = 0x15
	ResPhyVacant                ResultCode = 0x16
	ResUnknownPhyEventSource    ResultCode = 0x17
	ResUnknownDescriptorType    ResultCode = 0x18
	ResUnknownPhyFilter         ResultCode = 0x19
	ResAffiliationViolation     ResultCode = 0x1a
	ResZoneViolation            ResultCode = 0x20
	ResNoManagementAccess       ResultCode = 0x21
	ResUnknownZoningValue       ResultCode = 0x22
	ResZoneLockViolation        ResultCode = 0x23
	ResNotActivated             ResultCode = 0x24
	ResZoneGroupOutOfRange      ResultCode = 0x25
	ResNoPhysicalPresence       ResultCode = 0x26
	ResSavingNotSupported       ResultCode = 0x27
	ResSourceZoneGroup          ResultCode = 0x28
	ResDisPasswordNotSupported  ResultCode = 0x29
	ResInvalidFieldInRequest    ResultCode = 0x2a
)

var resultStrings = map[ResultCode]string{
	ResFunctionAccepted:         "SMP function accepted",
	ResUnknownFunction:          "unknown SMP function",
	ResFunctionFailed:           "SMP function failed",
	ResInvalidRequestLen:        "invalid request frame length",
	ResInvalidExpChangeCount:    "invalid expander change count",
	ResBusy:                     "busy",
	ResIncompleteDescriptorList: "incomplete descriptor list",
	ResPhyDoesNotExist:          "phy does not exist",
	ResIndexDoesNotExist:        "index does not exist",
	ResPhyDoesNotSupportSATA:    "phy does not support SATA",
	ResUnknownPhyOperation:      "unknown phy operation",
	ResUnknownPhyTestFunction:   "unknown phy test function",
	ResPhyTestInProgress:        "phy test function in progress",
	ResPhyVacant:                "phy vacant",
	ResUnknownPhyEventSource:    "unknown phy event source",
	ResUnknownDescriptorType:    "unknown descriptor type",
	ResUnknownPhyFilter:         "unknown phy filter",
	ResAffiliationViolation:     "affiliation violation",
	ResZoneViolation:            "SMP zone violation",
	ResNoManagementAccess:       "no management access rights",
	ResUnknownZoningValue:       "unknown enable disable zoning value",
	ResZoneLockViolation:        "zone lock violation",
	ResNotActivated:             "zone phy information not activated",
	ResZoneGroupOutOfRange:      "zone group out of range",
	ResNoPhysicalPresence:       "no physical presence",
	ResSavingNotSupported:       "saving not supported",
	ResSourceZoneGroup:          "source zone group does not exist",
	ResDisPasswordNotSupported:  "disabled password not supported",
	ResInvalidFieldInRequest:    "invalid field in SMP request",
}

// String renders the result code for users. Every byte value maps to
// something; codes outside the table render as "reserved [N]".
func (rc ResultCode) String() string {
	if s, ok := resultStrings[rc]; ok {
		return s
	}
	return fmt.Sprintf("reserved [%d]", byte(rc))
}

// OK reports function acceptance.
func (rc ResultCode) OK() bool { return rc == ResFunctionAccepted }

// Vacant reports a phy id that is valid but unpopulated. Diagnostic, not an
// error: a multi-phy traversal emits an "inaccessible" record and moves on.
func (rc ResultCode) Vacant() bool { return rc == ResPhyVacant }

// NoSuchPhy reports a phy id beyond the implemented range. This is the
// expected end-of-range signal for an unbounded traversal.
func (rc ResultCode) NoSuchPhy() bool { return rc == ResPhyDoesNotExist }
