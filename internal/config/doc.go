// Package config provides user configuration management for the smpctl tools.
//
// This package manages a YAML-based configuration file that stores
// user-defined metadata for SAS expanders, including nicknames, device node
// paths, target SAS addresses, and application preferences. The
// configuration follows OS-specific conventions for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/smpctl/config.yaml or $HOME/.config/smpctl/config.yaml
//   - macOS: $HOME/.config/smpctl/config.yaml
//   - Windows: %LOCALAPPDATA%\smpctl\config.yaml
//
// # Target Resolution
//
// Commands resolve their target in this order: command-line flags, then the
// SMPCTL_DEVICE and SMPCTL_SAS_ADDR environment variables, then the default
// expander named in the configuration file.
//
// # Usage Example
//
//	// Load the global registry
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Add or update expander metadata
//	exp := &config.Expander{
//	    Device:     "/dev/bsg/expander-0:0",
//	    SASAddress: "0x5001638001000000",
//	}
//	registry.Expanders["rack3-jbod"] = exp
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
