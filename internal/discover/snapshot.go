package discover

import (
	"errors"
	"io"

	"github.com/muurk/smpctl/internal/smp"
	"github.com/muurk/smpctl/internal/transport"
)

// PhyStatus is the decoded state of one phy, reduced to the fields a
// status display needs.
type PhyStatus struct {
	ID          int
	Vacant      bool
	Attached    smp.DeviceType
	AttachedSA  uint64
	AttachedPhy int
	Negotiated  int
	Routing     smp.RoutingAttr
	ChangeCount int
}

// Snapshot is one poll of an expander: the expander-wide counters plus
// every reachable phy.
type Snapshot struct {
	SASAddress     uint64
	ExpanderChange int
	NumPhys        int
	TableToTable   bool
	Phys           []PhyStatus
}

// Collect walks every phy once and returns the structured result instead
// of rendering it. Per-phy failures other than "phy vacant" drop the phy
// from the snapshot; transport failures abort.
func Collect(tp transport.Transport, ignoreZoneGroup bool) (*Snapshot, error) {
	s := NewSession(tp, Options{IgnoreZoneGroup: ignoreZoneGroup}, io.Discard)

	snap := &Snapshot{}
	end := smp.MaxPhyID
	if resp, err := s.transaction(smp.NewReportGeneral(false)); err == nil {
		if gen, derr := smp.DecodeReportGeneral(resp); derr == nil {
			snap.ExpanderChange = int(gen.ExpanderChangeCount())
			snap.NumPhys = gen.NumPhys()
			snap.TableToTable = gen.TableToTableSupported()
			s.hasT2T = snap.TableToTable
			if snap.NumPhys > 0 {
				end = snap.NumPhys
			}
		}
	}

	for k := 0; k < end; k++ {
		phy, code, err := s.discoverPhy(k)
		if err != nil {
			if errors.Is(err, errTransport) {
				return nil, err
			}
			continue
		}
		if code != 0 {
			if code.NoSuchPhy() {
				break
			}
			if code.Vacant() {
				snap.Phys = append(snap.Phys, PhyStatus{ID: k, Vacant: true})
			}
			continue
		}
		if snap.SASAddress == 0 {
			snap.SASAddress = phy.SASAddress()
		}
		snap.Phys = append(snap.Phys, PhyStatus{
			ID:          phy.PhyID(),
			Attached:    phy.AttachedDeviceType(),
			AttachedSA:  phy.AttachedSASAddress(),
			AttachedPhy: phy.AttachedPhyID(),
			Negotiated:  phy.NegotiatedLogicalRate(),
			Routing:     phy.Routing(),
			ChangeCount: phy.PhyChangeCount(),
		})
	}
	if snap.NumPhys == 0 {
		snap.NumPhys = len(snap.Phys)
	}
	return snap, nil
}
