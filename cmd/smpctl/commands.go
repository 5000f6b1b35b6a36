package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/smpctl/internal/config"
	"github.com/muurk/smpctl/internal/discover"
	"github.com/muurk/smpctl/internal/hexdump"
	"github.com/muurk/smpctl/internal/logging"
	"github.com/muurk/smpctl/internal/smp"
	"github.com/muurk/smpctl/internal/transport"
	"github.com/muurk/smpctl/internal/watch"
)

// Command flags
var (
	deviceFlag string
	saFlag     string
	logLevel   string
	verbosity  int

	// discover
	discPhyID   int
	discNumPhys int
	discFull    bool
	discBrief   int
	discADN     bool
	discDSN     bool
	discCap     bool
	discIZG     bool
	discList    bool
	discMy      bool
	discZero    bool
	discHex     bool
	discRaw     bool

	// report-general
	genBrief bool
	genCC    bool
	genZero  bool
	genHex   bool
	genRaw   bool

	// report-broadcast
	bcType int
	bcHex  bool
	bcRaw  bool

	// phy-test
	ptPhyID    int
	ptStop     bool
	ptPattern  int
	ptLinkRate int
	ptSSC      int
	ptSATA     bool
	ptControl  int
	ptDwords   string
	ptExpected int

	// configure-general
	cgExpected     int
	cgITDelay      int
	cgInactivity   int
	cgConnect      int
	cgNexusLoss    int
	cgReducedFunc  int
	cgRejectToOpen int
	cgPowerDone    int
	cgSSPClose     int

	// watch
	watchInterval int
)

func init() {
	// Common flags for all commands (persistent on root)
	rootCmd.PersistentFlags().StringVarP(&deviceFlag, "device", "d", "", "bsg device node, e.g. /dev/bsg/expander-0:0")
	rootCmd.PersistentFlags().StringVarP(&saFlag, "sa", "s", "", "target SAS address, e.g. 0x5001638001000000")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log verbosity: debug, info, warn or error (default silent)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase output verbosity")

	// Add subcommands
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(reportGeneralCmd)
	rootCmd.AddCommand(reportBroadcastCmd)
	rootCmd.AddCommand(phyTestCmd)
	rootCmd.AddCommand(configureGeneralCmd)
	rootCmd.AddCommand(watchCmd)
}

// openTarget resolves the expander target and opens its bsg node. The
// returned SAS address is zero when none was named anywhere.
func openTarget() (transport.Transport, uint64, bool, error) {
	if err := logging.Initialize(logLevel); err != nil {
		return nil, 0, false, err
	}

	reg, err := config.LoadRegistry()
	if err != nil {
		return nil, 0, false, err
	}
	device, saStr := reg.ResolveTarget(deviceFlag, saFlag)
	if device == "" {
		return nil, 0, false, fmt.Errorf("no device given (use --device, %s or the config file)", config.DeviceEnvVar)
	}

	var sa uint64
	saGiven := saStr != ""
	if saGiven {
		sa, err = transport.ParseSASAddress(saStr)
		if err != nil {
			return nil, 0, false, fmt.Errorf("invalid SAS address %q: %w", saStr, err)
		}
		if !transport.IsNAA5(sa) {
			logging.Warn("SAS address not in NAA-5 format",
				zap.String("sas_address", fmt.Sprintf("0x%x", sa)))
		}
	}

	target, err := transport.ParseTarget(device, sa)
	if err != nil {
		return nil, 0, false, err
	}
	tp, err := transport.Open(target)
	if err != nil {
		exitStatus = discover.ExitFileError
		return nil, 0, false, err
	}
	return tp, sa, saGiven, nil
}

// noteSeen records a successful transaction against the configured
// expander entry, best effort.
func noteSeen(numPhys int) {
	reg, err := config.LoadRegistry()
	if err != nil {
		return
	}
	device, _ := reg.ResolveTarget(deviceFlag, saFlag)
	name := reg.LookupByDevice(device)
	if name == "" {
		return
	}
	reg.UpdateExpanderLastSeen(name, numPhys)
	_ = reg.Save()
}

// transact issues one request and classifies the outcome into an exit
// status the way the decoders report it.
func transact(tp transport.Transport, req *smp.Request) (*smp.Response, error) {
	buf := make([]byte, req.ResponseLen)
	n, err := tp.Send(req.Data, buf)
	if err != nil {
		exitStatus = discover.ExitFileError
		return nil, err
	}
	resp, err := smp.Decode(buf, n, req.Function)
	if err != nil {
		var fe *smp.FunctionError
		if errors.As(err, &fe) {
			exitStatus = int(fe.Code)
			return resp, fmt.Errorf("%s: %s", smp.FunctionName(req.Function), fe.Code)
		}
		exitStatus = discover.ExitCatMalformed
		return resp, err
	}
	return resp, nil
}

// discoverCmd implements the 'discover' command
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover expander phys",
	Long: `Issue DISCOVER requests and decode the per-phy responses.

Without --phy, every phy is walked and a one-line summary is printed per
phy. With --phy, the full record for that phy is printed. --full prints
full records for every phy.

The exit status is the worst SMP result code seen across the traversal;
"phy vacant" and the trailing "no such phy" are not errors.`,
	Example: `  # One-line summary per phy
  smpctl discover -d /dev/bsg/expander-0:0

  # Full record for phy 4
  smpctl discover -d /dev/bsg/expander-0:0 --phy 4

  # Summary with attached device names, skipping empty phys
  smpctl discover -d /dev/bsg/expander-0:0 --adn -b -b`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVarP(&discPhyID, "phy", "p", -1, "phy identifier (default: walk all phys)")
	discoverCmd.Flags().IntVarP(&discNumPhys, "num", "n", 0, "number of phys to fetch (default: all remaining)")
	discoverCmd.Flags().BoolVar(&discFull, "full", false, "full records in walk mode")
	discoverCmd.Flags().CountVarP(&discBrief, "brief", "b", "less output; twice also skips phys with nothing attached")
	discoverCmd.Flags().BoolVar(&discADN, "adn", false, "show attached device names in summary lines")
	discoverCmd.Flags().BoolVar(&discDSN, "dsn", false, "show device slot numbers when available")
	discoverCmd.Flags().BoolVar(&discCap, "cap", false, "decode phy capabilities words")
	discoverCmd.Flags().BoolVarP(&discIZG, "ignore-zone-group", "i", false, "set the Ignore Zone Group bit")
	discoverCmd.Flags().BoolVar(&discList, "list", false, "attribute=value output, one per line")
	discoverCmd.Flags().BoolVar(&discMy, "my", false, "print this expander's SAS address and exit")
	discoverCmd.Flags().BoolVar(&discZero, "zero", false, "zero the Allocated Response Length field (pre SAS-2)")
	discoverCmd.Flags().BoolVarP(&discHex, "hex", "H", false, "dump responses in hex instead of decoding")
	discoverCmd.Flags().BoolVar(&discRaw, "raw", false, "dump raw response bytes to stdout")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	tp, sa, saGiven, err := openTarget()
	if err != nil {
		return err
	}
	defer tp.Close()

	opt := discover.Options{
		PhyID:           discPhyID,
		NumPhys:         discNumPhys,
		Brief:           discBrief,
		ADN:             discADN,
		DSN:             discDSN,
		CapPhy:          discCap,
		IgnoreZoneGroup: discIZG,
		List:            discList,
		My:              discMy,
		Zero:            discZero,
		Hex:             discHex,
		Raw:             discRaw,
		SAGiven:         saGiven,
		SA:              sa,
		Verbose:         verbosity,
	}
	if discPhyID < 0 && !discMy {
		// walk mode
		opt.PhyID = 0
		opt.Multiple = 1
		if discFull {
			opt.Multiple = 2
		}
	} else if opt.PhyID < 0 {
		opt.PhyID = 0
	}

	session := discover.NewSession(tp, opt, os.Stdout)
	st, err := session.Run()
	exitStatus = st
	if err != nil {
		return err
	}
	if opt.Multiple > 0 {
		noteSeen(0)
	}
	return nil
}

// reportGeneralCmd implements the 'report-general' command
var reportGeneralCmd = &cobra.Command{
	Use:   "report-general",
	Short: "Report expander-wide attributes",
	Long: `Issue a REPORT GENERAL request and decode the response.

The response carries the phy count, change counts, routing and zoning
capabilities and, on longer responses, STP timers and self-configuration
state. Fields beyond the response's length are simply not printed.`,
	Example: `  smpctl report-general -d /dev/bsg/expander-0:0

  # Hex dump of the response
  smpctl report-general -d /dev/bsg/expander-0:0 --hex`,
	RunE: runReportGeneral,
}

func init() {
	reportGeneralCmd.Flags().BoolVarP(&genBrief, "brief", "b", false, "print only the fixed header fields")
	reportGeneralCmd.Flags().BoolVarP(&genCC, "changecount", "c", false, "print only the expander change count")
	reportGeneralCmd.Flags().BoolVar(&genZero, "zero", false, "zero the Allocated Response Length field (pre SAS-2)")
	reportGeneralCmd.Flags().BoolVarP(&genHex, "hex", "H", false, "dump the response in hex instead of decoding")
	reportGeneralCmd.Flags().BoolVar(&genRaw, "raw", false, "dump raw response bytes to stdout")
}

func runReportGeneral(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	tp, _, _, err := openTarget()
	if err != nil {
		return err
	}
	defer tp.Close()

	resp, err := transact(tp, smp.NewReportGeneral(genZero))
	if err != nil {
		return err
	}
	if genHex || genRaw {
		if genHex {
			hexdump.Write(os.Stdout, resp.Bytes())
		} else {
			hexdump.WriteRaw(os.Stdout, resp.Bytes())
		}
		return nil
	}
	gen, err := smp.DecodeReportGeneral(resp)
	if err != nil {
		exitStatus = discover.ExitCatMalformed
		return err
	}
	if genCC {
		fmt.Printf("%d\n", gen.ExpanderChangeCount())
		return nil
	}
	renderGeneral(gen)
	noteSeen(gen.NumPhys())
	return nil
}

func renderGeneral(g *smp.GeneralInfo) {
	fmt.Printf("Report general response:\n")
	fmt.Printf("  expander change count: %d\n", g.ExpanderChangeCount())
	fmt.Printf("  expander route indexes: %d\n", g.ExpanderRouteIndexes())
	fmt.Printf("  long response: %d\n", b2i(g.LongResponse()))
	fmt.Printf("  number of phys: %d\n", g.NumPhys())
	fmt.Printf("  table to table supported: %d\n", b2i(g.TableToTableSupported()))
	fmt.Printf("  zone configuring: %d\n", b2i(g.ZoneConfiguring()))
	fmt.Printf("  self configuring: %d\n", b2i(g.SelfConfiguring()))
	fmt.Printf("  STP continue AWT: %d\n", b2i(g.STPContinueAWT()))
	fmt.Printf("  open reject retry supported: %d\n", b2i(g.OpenRejectRetrySupported()))
	fmt.Printf("  configures others: %d\n", b2i(g.ConfiguresOthers()))
	fmt.Printf("  configuring: %d\n", b2i(g.Configuring()))
	fmt.Printf("  externally configurable route table: %d\n", b2i(g.ExternallyConfigurable()))
	fmt.Printf("  extended fairness: %d\n", b2i(g.ExtendedFairness()))
	fmt.Printf("  initiates SSP close: %d\n", b2i(g.InitiatesSSPClose()))
	if id, ok := g.EnclosureLogicalID(); ok {
		fmt.Printf("  enclosure logical identifier: 0x")
		for _, b := range id {
			fmt.Printf("%02x", b)
		}
		fmt.Println()
	}
	if genBrief {
		return
	}
	if v, ok := g.SSPConnectTimeLimit(); ok {
		fmt.Printf("  SSP maximum connect time limit: %d\n", v)
	}
	if v, ok := g.STPBusInactivityLimit(); ok {
		fmt.Printf("  STP bus inactivity time limit: %d\n", v)
	}
	if v, ok := g.STPConnectTimeLimit(); ok {
		fmt.Printf("  STP maximum connect time limit: %d\n", v)
	}
	if v, ok := g.STPNexusLossTime(); ok {
		fmt.Printf("  STP SMP I_T nexus loss time: %d\n", v)
	}
	if n, ok := g.NumZoneGroups(); ok {
		fmt.Printf("  number of zone groups: %d\n", n)
		locked, _ := g.ZoneLocked()
		fmt.Printf("  zone locked: %d\n", b2i(locked))
		pps, _ := g.PhysicalPresenceSupported()
		fmt.Printf("  physical presence supported: %d\n", b2i(pps))
		ppa, _ := g.PhysicalPresenceAsserted()
		fmt.Printf("  physical presence asserted: %d\n", b2i(ppa))
		zs, _ := g.ZoningSupported()
		fmt.Printf("  zoning supported: %d\n", b2i(zs))
		ze, _ := g.ZoningEnabled()
		fmt.Printf("  zoning enabled: %d\n", b2i(ze))
		saving, _ := g.Saving()
		fmt.Printf("  saving: %d\n", b2i(saving))
		szm, _ := g.SavingZoneManPassSupported()
		fmt.Printf("  saving zone manager password supported: %d\n", b2i(szm))
		szp, _ := g.SavingZonePhyInfoSupported()
		fmt.Printf("  saving zone phy information supported: %d\n", b2i(szp))
		szt, _ := g.SavingZonePermTableSupported()
		fmt.Printf("  saving zone permission table supported: %d\n", b2i(szt))
		sze, _ := g.SavingZoningEnabledSupported()
		fmt.Printf("  saving zoning enabled supported: %d\n", b2i(sze))
	}
	if v, ok := g.MaxRoutedSASAddresses(); ok {
		fmt.Printf("  maximum number of routed SAS addresses: %d\n", v)
	}
	if v, ok := g.ActiveZoneManagerSASAddress(); ok {
		fmt.Printf("  active zone manager SAS address: 0x%016x\n", v)
	}
	if v, ok := g.ZoneLockInactivityLimit(); ok {
		fmt.Printf("  zone lock inactivity time limit: %d\n", v)
	}
	if v, ok := g.PowerDoneTimeout(); ok {
		fmt.Printf("  power done timeout: %d\n", v)
	}
	if v, ok := g.FirstEnclosureConnectorIndex(); ok {
		fmt.Printf("  first enclosure connector element index: %d\n", v)
	}
	if v, ok := g.NumEnclosureConnectorIndexes(); ok {
		fmt.Printf("  number of enclosure connector element indexes: %d\n", v)
	}
	if v, ok := g.InitialDelayForwardOpen(); ok {
		fmt.Printf("  initial time to delay expander forward open indication: %d\n", v)
	}
	if rf, ok := g.ReducedFunctionality(); ok {
		fmt.Printf("  reduced functionality: %d\n", b2i(rf))
		ep, _ := g.ExternalPort()
		fmt.Printf("  external port: %d\n", b2i(ep))
		ttr, _ := g.TimeToReducedFunc()
		fmt.Printf("  time to reduced functionality: %d\n", ttr)
		itr, _ := g.InitialTimeToReducedFunc()
		fmt.Printf("  initial time to reduced functionality: %d\n", itr)
		mrt, _ := g.MaxReducedFuncTime()
		fmt.Printf("  maximum reduced functionality time: %d\n", mrt)
	}
	if v, ok := g.LastSelfConfigStatusIndex(); ok {
		fmt.Printf("  last self-configuration status descriptor index: %d\n", v)
	}
	if v, ok := g.MaxSelfConfigStatusDescriptors(); ok {
		fmt.Printf("  maximum number of stored self-configuration status descriptors: %d\n", v)
	}
	if v, ok := g.LastPhyEventListIndex(); ok {
		fmt.Printf("  last phy event list descriptor index: %d\n", v)
	}
	if v, ok := g.MaxPhyEventListDescriptors(); ok {
		fmt.Printf("  maximum number of stored phy event list descriptors: %d\n", v)
	}
	if v, ok := g.STPRejectToOpenLimit(); ok {
		fmt.Printf("  STP reject to open limit: %d\n", v)
	}
}

// reportBroadcastCmd implements the 'report-broadcast' command
var reportBroadcastCmd = &cobra.Command{
	Use:   "report-broadcast",
	Short: "Report broadcast events",
	Long: `Issue a REPORT BROADCAST request and decode the descriptors.

Each descriptor names a broadcast type, the phy that originated it, the
reason code and an event count. The broadcast type filter selects which
events the expander reports (0 is Broadcast (Change)).`,
	Example: `  # Broadcast (Change) events
  smpctl report-broadcast -d /dev/bsg/expander-0:0

  # SES events
  smpctl report-broadcast -d /dev/bsg/expander-0:0 --broadcast 2`,
	RunE: runReportBroadcast,
}

func init() {
	reportBroadcastCmd.Flags().IntVar(&bcType, "broadcast", 0, "broadcast type to report (0..15)")
	reportBroadcastCmd.Flags().BoolVarP(&bcHex, "hex", "H", false, "dump the response in hex instead of decoding")
	reportBroadcastCmd.Flags().BoolVar(&bcRaw, "raw", false, "dump raw response bytes to stdout")
}

func runReportBroadcast(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	if bcType < 0 || bcType > 15 {
		return fmt.Errorf("broadcast type out of range: %d (expect 0..15)", bcType)
	}

	tp, _, _, err := openTarget()
	if err != nil {
		return err
	}
	defer tp.Close()

	resp, err := transact(tp, smp.NewReportBroadcast(bcType))
	if err != nil {
		return err
	}
	if bcHex || bcRaw {
		if bcHex {
			hexdump.Write(os.Stdout, resp.Bytes())
		} else {
			hexdump.WriteRaw(os.Stdout, resp.Bytes())
		}
		return nil
	}
	report, err := smp.DecodeReportBroadcast(resp)
	if err != nil {
		exitStatus = discover.ExitCatMalformed
		return err
	}

	fmt.Printf("Report broadcast response:\n")
	fmt.Printf("  expander change count: %d\n", report.ExpanderChangeCount)
	fmt.Printf("  number of broadcast descriptors: %d\n", report.DescriptorCount)
	for i, d := range report.Descriptors {
		fmt.Printf("  descriptor %d:\n", i+1)
		fmt.Printf("    broadcast type: %s\n", smp.BroadcastTypeString(d.Type))
		if d.PhyID == smp.NoSpecificPhy {
			fmt.Printf("    phy id: no specific phy\n")
		} else {
			fmt.Printf("    phy id: %d\n", d.PhyID)
		}
		fmt.Printf("    broadcast reason: %s\n", smp.ReasonString(d.Reason))
		fmt.Printf("    broadcast count: %d\n", d.Count)
	}
	return nil
}

// phyTestCmd implements the 'phy-test' command
var phyTestCmd = &cobra.Command{
	Use:   "phy-test",
	Short: "Start or stop a phy test pattern",
	Long: `Issue a PHY TEST FUNCTION request to transmit a test pattern on one
phy, or to stop a running pattern.

The phy stops carrying normal traffic while a pattern runs; use --stop
to return it to service. The expected change count guards against racing
another management client, pass --expected with the current expander
change count to arm it.`,
	Example: `  # Transmit CJTPAT at 12 Gbps on phy 4
  smpctl phy-test -d /dev/bsg/expander-0:0 --phy 4 --pattern 2 --linkrate 0xb

  # Stop the pattern
  smpctl phy-test -d /dev/bsg/expander-0:0 --phy 4 --stop`,
	RunE: runPhyTest,
}

func init() {
	phyTestCmd.Flags().IntVarP(&ptPhyID, "phy", "p", 0, "phy identifier")
	phyTestCmd.Flags().BoolVar(&ptStop, "stop", false, "stop the running test pattern")
	phyTestCmd.Flags().IntVar(&ptPattern, "pattern", 0, "test pattern code (e.g. 2 for CJTPAT)")
	phyTestCmd.Flags().IntVar(&ptLinkRate, "linkrate", 0x9, "physical link rate code (8..0xc)")
	phyTestCmd.Flags().IntVar(&ptSSC, "spread", 0, "spread spectrum clocking code")
	phyTestCmd.Flags().BoolVar(&ptSATA, "sata", false, "test a SATA pattern")
	phyTestCmd.Flags().IntVar(&ptControl, "control", 0, "phy test pattern dwords control")
	phyTestCmd.Flags().StringVar(&ptDwords, "dwords", "0", "phy test pattern dwords (hex accepted)")
	phyTestCmd.Flags().IntVar(&ptExpected, "expected", 0, "expected expander change count")
}

func runPhyTest(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	dwords, err := strconv.ParseUint(ptDwords, 0, 64)
	if err != nil {
		return fmt.Errorf("invalid --dwords value %q: %w", ptDwords, err)
	}

	fn := 1 // transmit pattern
	if ptStop {
		fn = 0
	}

	tp, _, _, err := openTarget()
	if err != nil {
		return err
	}
	defer tp.Close()

	_, err = transact(tp, smp.NewPhyTest(smp.PhyTestOptions{
		ExpectedChangeCount: ptExpected,
		PhyID:               ptPhyID,
		Function:            fn,
		Pattern:             ptPattern,
		LinkRate:            ptLinkRate,
		SSC:                 ptSSC,
		SATA:                ptSATA,
		DwordsControl:       ptControl,
		Dwords:              dwords,
	}))
	if err != nil {
		return err
	}
	if verbosity > 0 {
		if ptStop {
			fmt.Printf("Phy test pattern stopped on phy %d\n", ptPhyID)
		} else {
			fmt.Printf("Phy test pattern started on phy %d\n", ptPhyID)
		}
	}
	return nil
}

// configureGeneralCmd implements the 'configure-general' command
var configureGeneralCmd = &cobra.Command{
	Use:   "configure-general",
	Short: "Configure expander-wide attributes",
	Long: `Issue a CONFIGURE GENERAL request.

Only explicitly given flags are written; each set flag raises the
corresponding update bit, so unrelated attributes keep their values.
Pass --expected with the current expander change count to fail the
update if another client changed the expander in between.`,
	Example: `  # Set the STP maximum connect time limit to 800ms (8 x 100ms)
  smpctl configure-general -d /dev/bsg/expander-0:0 --connect 8

  # Clear the nexus loss time, guarded by the change count
  smpctl configure-general -d /dev/bsg/expander-0:0 --nexus 0 --expected 213`,
	RunE: runConfigureGeneral,
}

func init() {
	configureGeneralCmd.Flags().IntVar(&cgExpected, "expected", 0, "expected expander change count")
	configureGeneralCmd.Flags().IntVar(&cgITDelay, "open-delay", 0, "initial time to delay forward open (unit 100ns)")
	configureGeneralCmd.Flags().IntVar(&cgInactivity, "inactivity", 0, "STP bus inactivity time limit (unit 100ms)")
	configureGeneralCmd.Flags().IntVar(&cgConnect, "connect", 0, "STP maximum connect time limit (unit 100ms)")
	configureGeneralCmd.Flags().IntVar(&cgNexusLoss, "nexus", 0, "STP SMP I_T nexus loss time (unit ms)")
	configureGeneralCmd.Flags().IntVar(&cgReducedFunc, "reduced", 0, "initial time to reduced functionality (unit second)")
	configureGeneralCmd.Flags().IntVar(&cgRejectToOpen, "open-limit", 0, "STP reject to open limit (unit 10us)")
	configureGeneralCmd.Flags().IntVar(&cgPowerDone, "power-done", 0, "power done timeout (unit second)")
	configureGeneralCmd.Flags().IntVar(&cgSSPClose, "ssp-close", 0, "SSP close control")
}

func runConfigureGeneral(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	opt := smp.ConfigGeneralOptions{
		ExpectedChangeCount: cgExpected,
		UpdateITDelay:       cmd.Flags().Changed("open-delay"),
		ITDelay:             cgITDelay,
		UpdateSTPInactivity: cmd.Flags().Changed("inactivity"),
		STPInactivity:       cgInactivity,
		UpdateSTPConnect:    cmd.Flags().Changed("connect"),
		STPConnect:          cgConnect,
		UpdateNexusLoss:     cmd.Flags().Changed("nexus"),
		NexusLoss:           cgNexusLoss,
		UpdateReducedFunc:   cmd.Flags().Changed("reduced"),
		ReducedFunc:         cgReducedFunc,
		UpdateRejectToOpen:  cmd.Flags().Changed("open-limit"),
		RejectToOpen:        cgRejectToOpen,
		UpdatePowerDone:     cmd.Flags().Changed("power-done"),
		PowerDone:           cgPowerDone,
		UpdateSSPCloseCtl:   cmd.Flags().Changed("ssp-close"),
		SSPCloseCtl:         cgSSPClose,
	}
	if !opt.UpdateITDelay && !opt.UpdateSTPInactivity && !opt.UpdateSTPConnect &&
		!opt.UpdateNexusLoss && !opt.UpdateReducedFunc && !opt.UpdateRejectToOpen &&
		!opt.UpdatePowerDone && !opt.UpdateSSPCloseCtl {
		return fmt.Errorf("nothing to configure (give at least one attribute flag)")
	}

	tp, _, _, err := openTarget()
	if err != nil {
		return err
	}
	defer tp.Close()

	if _, err := transact(tp, smp.NewConfigGeneral(opt)); err != nil {
		return err
	}
	if verbosity > 0 {
		fmt.Println("Configure general: accepted")
	}
	return nil
}

// watchCmd implements the 'watch' command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live phy status monitor",
	Long: `Poll the expander and show a live per-phy status table.

The display refreshes on each poll interval with the negotiated rate,
attached address and routing attribute of every phy, highlighting phys
that changed since the previous poll. Press q to quit.`,
	Example: `  smpctl watch -d /dev/bsg/expander-0:0

  # Poll every 2 seconds
  smpctl watch -d /dev/bsg/expander-0:0 --interval 2`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchInterval, "interval", 0, "poll interval in seconds (default from config, else 5)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	tp, _, _, err := openTarget()
	if err != nil {
		return err
	}
	defer tp.Close()

	interval := watchInterval
	if interval <= 0 {
		if reg, err := config.LoadRegistry(); err == nil && reg.Preferences != nil {
			interval = reg.Preferences.WatchInterval
		}
	}
	if interval <= 0 {
		interval = 5
	}

	return watch.Run(tp, time.Duration(interval)*time.Second)
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
