// Package inventory abstracts read-only access to local host state: accounts,
// groups, network adapters, hardware configuration, and the raw listings
// behind the report's inventory sections. Lookups report absence as data
// (found flags, empty slices), never as an error.
package inventory

import "errors"

// ErrUnsupported is returned by section listings on platforms where the
// underlying query mechanism does not exist.
var ErrUnsupported = errors.New("inventory: not supported on this platform")

// Account is a local user account.
type Account struct {
	Name     string
	FullName string
	Enabled  bool
}

// Adapter is a physical, currently connected network adapter.
type Adapter struct {
	Name       string
	InstanceID string // PnP device instance ID, stable across reboots
	MACAddress string
}

// Software is one installed-application entry from the uninstall registry.
type Software struct {
	Name        string
	Version     string
	Publisher   string
	InstallDate string
}

// Hotfix is one installed OS update.
type Hotfix struct {
	ID          string
	Description string
	InstalledOn string
}

// Service is one registered system service.
type Service struct {
	Name        string
	DisplayName string
	State       string
	StartMode   string
}

// Provider exposes the host state accessors consumed by the check engine and
// the section collectors.
//
// Failure semantics: a lookup that cannot resolve its subject returns an
// explicit not-found result (false flag or empty slice) rather than an error;
// errors are reserved for the query mechanism itself breaking.
type Provider interface {
	// LocalAccount looks up a local account by name.
	LocalAccount(name string) (Account, bool, error)
	// GroupMembers lists the members of a local group. A missing group
	// yields an empty listing.
	GroupMembers(group string) ([]string, error)
	// NetworkAdapters enumerates physical, currently connected adapters.
	NetworkAdapters() ([]Adapter, error)
	// HardwareConfigKey resolves the hardware configuration key for a
	// device instance ID.
	HardwareConfigKey(instanceID string) (string, bool, error)
	// HardwareConfigValue reads a numeric attribute from a hardware
	// configuration key.
	HardwareConfigValue(key, value string) (uint32, bool, error)

	// InstalledSoftware lists installed applications.
	InstalledSoftware() ([]Software, error)
	// Hotfixes lists installed OS updates.
	Hotfixes() ([]Hotfix, error)
	// Services lists registered system services.
	Services() ([]Service, error)
}
