package discover

import (
	"fmt"
	"io"
	"strings"

	"github.com/muurk/smpctl/internal/smp"
)

// negotiated logical link rate codes that describe a state, not a rate
const (
	negotDisabled      = 1
	negotResetProblem  = 2
	negotSpinupHold    = 3
	negotPortSelector  = 4
	negotResetProgress = 5
	negotUnsupported   = 6
)

// dsnSuffix returns the device slot number annotation for one-line output,
// or "" when unavailable.
func (s *Session) dsnSuffix(phy *smp.PhyInfo) string {
	if !s.opt.DSN {
		return ""
	}
	if slot, ok := phy.DeviceSlotNumber(); ok && slot != 0xff {
		return fmt.Sprintf("  dsn=%d", slot)
	}
	return ""
}

// protoCluster renders an initiator or target capability cluster like
// " i(SSP+STP+SMP+SATA)".
func protoCluster(prefix string, parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf(" %s(%s)", prefix, strings.Join(parts, "+"))
}

func initiatorParts(phy *smp.PhyInfo) []string {
	var parts []string
	if phy.AttachedSSPInitiator() {
		parts = append(parts, "SSP")
	}
	if phy.AttachedSTPInitiator() {
		parts = append(parts, "STP")
	}
	if phy.AttachedSMPInitiator() {
		parts = append(parts, "SMP")
	}
	if phy.AttachedSATAHost() {
		parts = append(parts, "SATA")
	}
	return parts
}

// targetParts is empty when no target protocol bit is set; a lone SATA
// port selector bit does not make a target cluster on its own.
func targetParts(phy *smp.PhyInfo) []string {
	if !phy.AttachedSSPTarget() && !phy.AttachedSTPTarget() &&
		!phy.AttachedSMPTarget() && !phy.AttachedSATADevice() {
		return nil
	}
	var parts []string
	if phy.AttachedSATAPortSelector() {
		parts = append(parts, "PORT_SEL")
	}
	if phy.AttachedSSPTarget() {
		parts = append(parts, "SSP")
	}
	if phy.AttachedSTPTarget() {
		parts = append(parts, "STP")
	}
	if phy.AttachedSMPTarget() {
		parts = append(parts, "SMP")
	}
	if phy.AttachedSATADevice() {
		parts = append(parts, "SATA")
	}
	return parts
}

// summaryRate maps a negotiated rate code to the trailing rate column.
func summaryRate(negot int) string {
	switch negot {
	case 8:
		return "  1.5 Gbps"
	case 9:
		return "  3 Gbps"
	case 0xa:
		return "  6 Gbps"
	case 0xb:
		return "  12 Gbps"
	case 0xc:
		return "  22.5 Gbps"
	default:
		return ""
	}
}

// zgSuffix returns the zone group annotation, shown only when zoning is
// enabled and the phy is outside the default group.
func zgSuffix(phy *smp.PhyInfo) string {
	zg, ok := phy.ZoneGroup()
	if !ok {
		return ""
	}
	if en, _ := phy.ZoningEnabled(); en && zg != 1 {
		return fmt.Sprintf("  ZG:%d", zg)
	}
	return ""
}

// renderSummaryLine emits the one-line-per-phy record.
func (s *Session) renderSummaryLine(k int, phy *smp.PhyInfo) {
	adt := phy.AttachedDeviceType()
	if s.opt.Brief > 1 && adt == smp.DeviceTypeNone {
		return
	}

	negot := phy.NegotiatedLogicalRate()
	rcode := phy.Routing().Letter(s.hasT2T)
	dsn := s.dsnSuffix(phy)

	switch negot {
	case negotDisabled:
		fmt.Fprintf(s.out, "  phy %3d:%s:disabled%s\n", phy.PhyID(), rcode, dsn)
		return
	case negotResetProblem:
		fmt.Fprintf(s.out, "  phy %3d:%s:reset problem%s\n", phy.PhyID(), rcode, dsn)
		return
	case negotSpinupHold:
		fmt.Fprintf(s.out, "  phy %3d:%s:spinup hold%s\n", phy.PhyID(), rcode, dsn)
		return
	case negotPortSelector:
		fmt.Fprintf(s.out, "  phy %3d:%s:port selector%s\n", phy.PhyID(), rcode, dsn)
		return
	case negotResetProgress:
		fmt.Fprintf(s.out, "  phy %3d:%s:reset in progress%s\n", phy.PhyID(), rcode, dsn)
		return
	case negotUnsupported:
		fmt.Fprintf(s.out, "  phy %3d:%s:unsupported phy attached%s\n", phy.PhyID(), rcode, dsn)
		return
	}
	if s.opt.Brief > 0 && adt == smp.DeviceTypeNone {
		return
	}

	if adt == smp.DeviceTypeNone || adt > smp.DeviceTypeFanoutExpander {
		fmt.Fprintf(s.out, "  phy %3d:%s:attached:[0000000000000000:00]", k, rcode)
		if s.opt.Brief > 1 || s.opt.ADN || phy.Len() < 64 {
			fmt.Fprintln(s.out)
			return
		}
		fmt.Fprintf(s.out, "%s%s\n", zgSuffix(phy), dsn)
		return
	}

	attSA := phy.AttachedSASAddress()
	if adn, ok := phy.AttachedDeviceName(); s.opt.ADN && ok {
		fmt.Fprintf(s.out, "  phy %3d:%s:attached:[%016x:%02d %016x %s%s", k, rcode,
			attSA, phy.AttachedPhyID(), adn, adt.Short(), virtSuffix(phy))
	} else {
		fmt.Fprintf(s.out, "  phy %3d:%s:attached:[%016x:%02d %s%s", k, rcode,
			attSA, phy.AttachedPhyID(), adt.Short(), virtSuffix(phy))
	}
	fmt.Fprint(s.out, protoCluster("i", initiatorParts(phy)))
	fmt.Fprint(s.out, protoCluster("t", targetParts(phy)))
	if s.opt.Brief > 1 || s.opt.ADN {
		fmt.Fprintf(s.out, "]%s\n", dsn)
		return
	}
	fmt.Fprintf(s.out, "]%s%s%s\n", summaryRate(negot), zgSuffix(phy), dsn)
}

func virtSuffix(phy *smp.PhyInfo) string {
	if phy.VirtualPhy() {
		return " V"
	}
	return ""
}

// renderFull emits the multi-line record for one phy, the shape of a
// DISCOVER response walked top to bottom with length-gated sections
// appearing only when present.
func (s *Session) renderFull(phy *smp.PhyInfo, just1 bool) {
	w := s.out
	brief := s.opt.Brief
	sas2 := phy.SAS2()

	if just1 {
		suffix := ""
		if brief > 0 {
			suffix = " (brief)"
		}
		fmt.Fprintf(w, "Discover response%s:\n", suffix)
	} else {
		fmt.Fprintf(w, "phy identifier: %d\n", phy.PhyID())
	}
	if (sas2 && brief == 0) || s.opt.Verbose > 3 {
		if cc := phy.ExpanderChangeCount(); s.opt.Verbose > 0 || cc > 0 {
			fmt.Fprintf(w, "  expander change count: %d\n", cc)
		}
	}
	if just1 {
		fmt.Fprintf(w, "  phy identifier: %d\n", phy.PhyID())
	}
	adt := phy.AttachedDeviceType()
	fmt.Fprintf(w, "  attached SAS device type: %s\n", adt)
	if brief > 1 && adt == smp.DeviceTypeNone {
		return
	}
	if sas2 || s.opt.Verbose > 3 {
		fmt.Fprintf(w, "  attached reason: %s\n", smp.ReasonString(phy.AttachedReason()))
	}
	fmt.Fprintf(w, "  negotiated logical link rate: %s\n",
		smp.NegotiatedStateString(phy.NegotiatedLogicalRate()))

	fmt.Fprintf(w, "  attached initiator: ssp=%d stp=%d smp=%d sata_host=%d\n",
		b2i(phy.AttachedSSPInitiator()), b2i(phy.AttachedSTPInitiator()),
		b2i(phy.AttachedSMPInitiator()), b2i(phy.AttachedSATAHost()))
	if brief == 0 {
		fmt.Fprintf(w, "  attached sata port selector: %d\n", b2i(phy.AttachedSATAPortSelector()))
		fmt.Fprintf(w, "  STP buffer too small: %d\n", b2i(phy.STPBufferTooSmall()))
	}
	fmt.Fprintf(w, "  attached target: ssp=%d stp=%d smp=%d sata_device=%d\n",
		b2i(phy.AttachedSSPTarget()), b2i(phy.AttachedSTPTarget()),
		b2i(phy.AttachedSMPTarget()), b2i(phy.AttachedSATADevice()))

	fmt.Fprintf(w, "  SAS address: 0x%x\n", phy.SASAddress())
	fmt.Fprintf(w, "  attached SAS address: 0x%x\n", phy.AttachedSASAddress())
	fmt.Fprintf(w, "  attached phy identifier: %d\n", phy.AttachedPhyID())
	if brief == 0 {
		if sas2 || s.opt.Verbose > 3 {
			fmt.Fprintf(w, "  attached persistent capable: %d\n", b2i(phy.AttachedPersistentCapable()))
			fmt.Fprintf(w, "  attached power capable: %d\n", phy.AttachedPowerCapable())
			fmt.Fprintf(w, "  attached slumber capable: %d\n", b2i(phy.AttachedSlumberCapable()))
			fmt.Fprintf(w, "  attached partial capable: %d\n", b2i(phy.AttachedPartialCapable()))
			fmt.Fprintf(w, "  attached inside ZPSDS persistent: %d\n", b2i(phy.AttachedInsideZPSDSPersistent()))
			fmt.Fprintf(w, "  attached requested inside ZPSDS: %d\n", b2i(phy.AttachedRequestedInsideZPSDS()))
			fmt.Fprintf(w, "  attached break_reply capable: %d\n", b2i(phy.AttachedBreakReplyCapable()))
			fmt.Fprintf(w, "  attached apta capable: %d\n", b2i(phy.AttachedAPTACapable()))
			fmt.Fprintf(w, "  attached smp priority capable: %d\n", b2i(phy.AttachedSMPPriorityCapable()))
			fmt.Fprintf(w, "  attached pwr_dis capable: %d\n", b2i(phy.AttachedPwrDisCapable()))
		}
		fmt.Fprintf(w, "  programmed minimum physical link rate: %s\n",
			smp.LinkRateString(phy.ProgMinLinkRate(), true))
		fmt.Fprintf(w, "  hardware minimum physical link rate: %s\n",
			smp.LinkRateString(phy.HwMinLinkRate(), false))
		fmt.Fprintf(w, "  programmed maximum physical link rate: %s\n",
			smp.LinkRateString(phy.ProgMaxLinkRate(), true))
		fmt.Fprintf(w, "  hardware maximum physical link rate: %s\n",
			smp.LinkRateString(phy.HwMaxLinkRate(), false))
		fmt.Fprintf(w, "  phy change count: %d\n", phy.PhyChangeCount())
		fmt.Fprintf(w, "  virtual phy: %d\n", b2i(phy.VirtualPhy()))
		fmt.Fprintf(w, "  partial pathway timeout value: %d microsecs\n", phy.PartialPathwayTimeout())
	}
	fmt.Fprintf(w, "  routing attribute: %s\n", phy.Routing())
	if brief > 0 {
		if zg, ok := phy.ZoneGroup(); ok {
			if en, _ := phy.ZoningEnabled(); en {
				fmt.Fprintf(w, "  zone group: %d\n", zg)
			}
		}
		return
	}
	if sas2 || phy.ConnectorType() != 0 {
		fmt.Fprintf(w, "  connector type: %s\n", smp.ConnectorTypeString(phy.ConnectorType()))
		fmt.Fprintf(w, "  connector element index: %d\n", phy.ConnectorElementIndex())
		fmt.Fprintf(w, "  connector physical link: %d\n", phy.ConnectorPhysicalLink())
		fmt.Fprintf(w, "  phy power condition: %s\n", smp.PhyPowerCondString(phy.PhyPowerCondition()))
		fmt.Fprintf(w, "  sas power capable: %d\n", phy.SASPowerCapable())
		fmt.Fprintf(w, "  sas slumber capable: %d\n", b2i(phy.SASSlumberCapable()))
		fmt.Fprintf(w, "  sas partial capable: %d\n", b2i(phy.SASPartialCapable()))
		fmt.Fprintf(w, "  sata slumber capable: %d\n", b2i(phy.SATASlumberCapable()))
		fmt.Fprintf(w, "  sata partial capable: %d\n", b2i(phy.SATAPartialCapable()))
		fmt.Fprintf(w, "  pwr_dis signal: %s\n", smp.PwrDisSignalString(phy.PwrDisSignal()))
		fmt.Fprintf(w, "  pwr_dis control capable: %d\n", phy.PwrDisControlCapable())
		fmt.Fprintf(w, "  sas slumber enabled: %d\n", b2i(phy.SASSlumberEnabled()))
		fmt.Fprintf(w, "  sas partial enabled: %d\n", b2i(phy.SASPartialEnabled()))
		fmt.Fprintf(w, "  sata slumber enabled: %d\n", b2i(phy.SATASlumberEnabled()))
		fmt.Fprintf(w, "  sata partial enabled: %d\n", b2i(phy.SATAPartialEnabled()))
	}
	if adn, ok := phy.AttachedDeviceName(); ok {
		fmt.Fprintf(w, "  attached device name: 0x%x\n", adn)
		v, _ := phy.ReqInsideZPSDSChangedByExp()
		fmt.Fprintf(w, "  requested inside ZPSDS changed by expander: %d\n", b2i(v))
		v, _ = phy.InsideZPSDSPersistent()
		fmt.Fprintf(w, "  inside ZPSDS persistent: %d\n", b2i(v))
		v, _ = phy.RequestedInsideZPSDS()
		fmt.Fprintf(w, "  requested inside ZPSDS: %d\n", b2i(v))
		v, _ = phy.ZoneGroupPersistent()
		fmt.Fprintf(w, "  zone group persistent: %d\n", b2i(v))
		v, _ = phy.InsideZPSDS()
		fmt.Fprintf(w, "  inside ZPSDS: %d\n", b2i(v))
		v, _ = phy.ZoningEnabled()
		fmt.Fprintf(w, "  zoning enabled: %d\n", b2i(v))
		if zg, ok := phy.ZoneGroup(); ok {
			fmt.Fprintf(w, "  zone group: %d\n", zg)
		}
	}
	if sc, ok := phy.SelfConfigStatus(); ok {
		fmt.Fprintf(w, "  self-configuration status: %d\n", sc)
		lv, _ := phy.SelfConfigLevelsCompleted()
		fmt.Fprintf(w, "  self-configuration levels completed: %d\n", lv)
		sa, _ := phy.SelfConfigSASAddress()
		fmt.Fprintf(w, "  self-configuration sas address: 0x%x\n", sa)
	}
	s.renderCapWord(phy.ProgrammedPhyCapabilities, "programmed phy capabilities")
	s.renderCapWord(phy.CurrentPhyCapabilities, "current phy capabilities")
	s.renderCapWord(phy.AttachedPhyCapabilities, "attached phy capabilities")
	if reason, ok := phy.Reason(); ok {
		fmt.Fprintf(w, "  reason: %s\n", smp.ReasonString(reason))
		rate, _ := phy.NegotiatedPhysicalRate()
		fmt.Fprintf(w, "  negotiated physical link rate: %s\n", smp.NegotiatedStateString(rate))
		om, _ := phy.OpticalModeEnabled()
		fmt.Fprintf(w, "  optical mode enabled: %d\n", b2i(om))
		ssc, _ := phy.NegotiatedSSC()
		fmt.Fprintf(w, "  negotiated SSC: %d\n", b2i(ssc))
		mux, _ := phy.HwMuxingSupported()
		fmt.Fprintf(w, "  hardware muxing supported: %d\n", b2i(mux))
	}
	if def, ok := phy.DefaultZoning(); ok {
		renderZoningSnapshot(w, "default", def)
		saved, _ := phy.SavedZoning()
		renderZoningSnapshot(w, "saved", saved)
		shadow, _ := phy.ShadowZoning()
		renderZoningSnapshot(w, "shadow", shadow)
	}
	if slot, ok := phy.DeviceSlotNumber(); ok {
		fmt.Fprintf(w, "  device slot number: %d\n", slot)
		grp, _ := phy.DeviceSlotGroupNumber()
		if grp == 255 {
			fmt.Fprintf(w, "  device slot group number: not available\n")
		} else {
			fmt.Fprintf(w, "  device slot group number: %d\n", grp)
		}
	}
	if conn, ok := phy.DeviceSlotGroupOutputConnector(); ok {
		fmt.Fprintf(w, "  device slot group output connector: %.6s\n", conn)
	}
	if sz, ok := phy.STPBufferSize(); ok {
		fmt.Fprintf(w, "  STP buffer size: %d\n", sz)
	}
	if bs, ok := phy.BufferedPhyBurstSize(); ok {
		fmt.Fprintf(w, "  Buffered phy burst size (KiB): %d\n", bs)
	}
}

func (s *Session) renderCapWord(get func() (smp.PhyCapability, bool), name string) {
	word, ok := get()
	if !ok {
		return
	}
	fmt.Fprintf(s.out, "  %s: 0x%x\n", name, uint32(word))
	if s.opt.CapPhy {
		word.Render(s.out, s.opt.Verbose > 0)
	}
}

func renderZoningSnapshot(w io.Writer, name string, z smp.ZoningSnapshot) {
	fmt.Fprintf(w, "  %s inside ZPSDS persistent: %d\n", name, b2i(z.InsideZPSDSPersistent))
	fmt.Fprintf(w, "  %s requested inside ZPSDS: %d\n", name, b2i(z.RequestedInsideZPSDS))
	fmt.Fprintf(w, "  %s zone group persistent: %d\n", name, b2i(z.ZoneGroupPersistent))
	fmt.Fprintf(w, "  %s zoning enabled: %d\n", name, b2i(z.ZoningEnabled))
	fmt.Fprintf(w, "  %s zone group: %d\n", name, z.ZoneGroup)
}

// renderList emits attribute=value output, inner attributes in
// alphabetical order.
func (s *Session) renderList(phy *smp.PhyInfo, showExpCC bool) {
	w := s.out
	brief := s.opt.Brief > 0
	sas2 := phy.SAS2()

	if sas2 && showExpCC && !brief {
		fmt.Fprintf(w, "expander_cc=%d\n", phy.ExpanderChangeCount())
	}
	fmt.Fprintf(w, "phy_id=%d\n", phy.PhyID())
	if !brief {
		if sas2 {
			fmt.Fprintf(w, "  att_apta_cap=%d\n", b2i(phy.AttachedAPTACapable()))
			fmt.Fprintf(w, "  att_br_cap=%d\n", b2i(phy.AttachedBreakReplyCapable()))
		}
		if adn, ok := phy.AttachedDeviceName(); ok {
			fmt.Fprintf(w, "  att_dev_name=0x%x\n", adn)
		}
	}
	fmt.Fprintf(w, "  att_dev_type=%d\n", int(phy.AttachedDeviceType()))
	if sas2 && !brief {
		fmt.Fprintf(w, "  att_iz_per=%d\n", b2i(phy.AttachedInsideZPSDSPersistent()))
		fmt.Fprintf(w, "  att_pa_cap=%d\n", b2i(phy.AttachedPartialCapable()))
		fmt.Fprintf(w, "  att_per_cap=%d\n", b2i(phy.AttachedPersistentCapable()))
	}
	fmt.Fprintf(w, "  att_phy_id=%d\n", phy.AttachedPhyID())
	if sas2 && !brief {
		fmt.Fprintf(w, "  att_pow_cap=%d\n", phy.AttachedPowerCapable())
		fmt.Fprintf(w, "  att_pwr_dis_cap=%d\n", b2i(phy.AttachedPwrDisCapable()))
		fmt.Fprintf(w, "  att_reason=%d\n", phy.AttachedReason())
		fmt.Fprintf(w, "  att_req_iz=%d\n", b2i(phy.AttachedRequestedInsideZPSDS()))
	}
	fmt.Fprintf(w, "  att_sas_addr=0x%x\n", phy.AttachedSASAddress())
	fmt.Fprintf(w, "  att_sata_dev=%d\n", b2i(phy.AttachedSATADevice()))
	fmt.Fprintf(w, "  att_sata_host=%d\n", b2i(phy.AttachedSATAHost()))
	fmt.Fprintf(w, "  att_sata_ps=%d\n", b2i(phy.AttachedSATAPortSelector()))
	if sas2 && !brief {
		fmt.Fprintf(w, "  att_sl_cap=%d\n", b2i(phy.AttachedSlumberCapable()))
	}
	fmt.Fprintf(w, "  att_smp_init=%d\n", b2i(phy.AttachedSMPInitiator()))
	if sas2 && !brief {
		fmt.Fprintf(w, "  att_smp_prior_cap=%d\n", b2i(phy.AttachedSMPPriorityCapable()))
	}
	fmt.Fprintf(w, "  att_smp_targ=%d\n", b2i(phy.AttachedSMPTarget()))
	fmt.Fprintf(w, "  att_ssp_init=%d\n", b2i(phy.AttachedSSPInitiator()))
	fmt.Fprintf(w, "  att_ssp_targ=%d\n", b2i(phy.AttachedSSPTarget()))
	fmt.Fprintf(w, "  att_stp_init=%d\n", b2i(phy.AttachedSTPInitiator()))
	fmt.Fprintf(w, "  att_stp_targ=%d\n", b2i(phy.AttachedSTPTarget()))
	if !brief {
		if bs, ok := phy.BufferedPhyBurstSize(); ok {
			fmt.Fprintf(w, "  buff_phy_bs=%d\n", bs)
		}
		if sas2 || phy.ConnectorType() != 0 {
			fmt.Fprintf(w, "  conn_elem_ind=%d\n", phy.ConnectorElementIndex())
			fmt.Fprintf(w, "  conn_p_link=%d\n", phy.ConnectorPhysicalLink())
			fmt.Fprintf(w, "  conn_type=%d\n", phy.ConnectorType())
		}
		if slot, ok := phy.DeviceSlotNumber(); ok {
			fmt.Fprintf(w, "  dev_slot_num=%d\n", slot)
			grp, _ := phy.DeviceSlotGroupNumber()
			fmt.Fprintf(w, "  dev_slot_grp_num=%d\n", grp)
		}
		fmt.Fprintf(w, "  hw_max_p_lrate=%d\n", phy.HwMaxLinkRate())
		fmt.Fprintf(w, "  hw_min_p_lrate=%d\n", phy.HwMinLinkRate())
		if mux, ok := phy.HwMuxingSupported(); ok {
			fmt.Fprintf(w, "  hw_mux_sup=%d\n", b2i(mux))
		}
		if iz, ok := phy.InsideZPSDS(); ok {
			fmt.Fprintf(w, "  iz=%d\n", b2i(iz))
		}
		if izp, ok := phy.InsideZPSDSPersistent(); ok {
			fmt.Fprintf(w, "  iz_pers=%d\n", b2i(izp))
		}
	}
	fmt.Fprintf(w, "  neg_log_lrate=%d\n", phy.NegotiatedLogicalRate())
	if !brief {
		if rate, ok := phy.NegotiatedPhysicalRate(); ok {
			fmt.Fprintf(w, "  neg_phy_lrate=%d\n", rate)
			om, _ := phy.OpticalModeEnabled()
			fmt.Fprintf(w, "  opt_m_en=%d\n", b2i(om))
		}
		fmt.Fprintf(w, "  phy_cc=%d\n", phy.PhyChangeCount())
		fmt.Fprintf(w, "  phy_power_cond=%d\n", phy.PhyPowerCondition())
		fmt.Fprintf(w, "  pp_timeout=%d\n", phy.PartialPathwayTimeout())
		fmt.Fprintf(w, "  pr_max_p_lrate=%d\n", phy.ProgMaxLinkRate())
		fmt.Fprintf(w, "  pr_min_p_lrate=%d\n", phy.ProgMinLinkRate())
		if sas2 {
			fmt.Fprintf(w, "  pwr_dis_ctl_cap=%d\n", phy.PwrDisControlCapable())
			fmt.Fprintf(w, "  pwr_dis_sig=%d\n", phy.PwrDisSignal())
		}
		if reason, ok := phy.Reason(); ok {
			fmt.Fprintf(w, "  reason=%d\n", reason)
		}
		if riz, ok := phy.RequestedInsideZPSDS(); ok {
			fmt.Fprintf(w, "  req_iz=%d\n", b2i(riz))
		}
		if rizc, ok := phy.ReqInsideZPSDSChangedByExp(); ok {
			fmt.Fprintf(w, "  req_iz_cbe=%d\n", b2i(rizc))
		}
	}
	fmt.Fprintf(w, "  routing_attr=%d\n", int(phy.Routing()))
	fmt.Fprintf(w, "  sas_addr=0x%x\n", phy.SASAddress())
	if !brief {
		fmt.Fprintf(w, "  sas_pa_cap=%d\n", b2i(phy.SASPartialCapable()))
		fmt.Fprintf(w, "  sas_pa_en=%d\n", b2i(phy.SASPartialEnabled()))
		fmt.Fprintf(w, "  sas_pow_cap=%d\n", phy.SASPowerCapable())
		fmt.Fprintf(w, "  sas_sl_cap=%d\n", b2i(phy.SASSlumberCapable()))
		fmt.Fprintf(w, "  sas_sl_en=%d\n", b2i(phy.SASSlumberEnabled()))
		fmt.Fprintf(w, "  sata_pa_cap=%d\n", b2i(phy.SATAPartialCapable()))
		fmt.Fprintf(w, "  sata_pa_en=%d\n", b2i(phy.SATAPartialEnabled()))
		fmt.Fprintf(w, "  sata_sl_cap=%d\n", b2i(phy.SATASlumberCapable()))
		fmt.Fprintf(w, "  sata_sl_en=%d\n", b2i(phy.SATASlumberEnabled()))
		fmt.Fprintf(w, "  stp_buff_tsmall=%d\n", b2i(phy.STPBufferTooSmall()))
	}
	fmt.Fprintf(w, "  virt_phy=%d\n", b2i(phy.VirtualPhy()))
	if !brief {
		if zg, ok := phy.ZoneGroup(); ok {
			fmt.Fprintf(w, "  zg=%d\n", zg)
		}
		if zgp, ok := phy.ZoneGroupPersistent(); ok {
			fmt.Fprintf(w, "  zg_pers=%d\n", b2i(zgp))
		}
		if en, ok := phy.ZoningEnabled(); ok {
			fmt.Fprintf(w, "  zoning_en=%d\n", b2i(en))
		}
	}
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
