package check

import (
	"fmt"
	"strings"
	"time"
)

// pnpPowerOffDisabled is the PnPCapabilities bit meaning "allow the computer
// to turn off this device to save power" is disabled.
const pnpPowerOffDisabled = 0x20

// powerCapabilityValue is the DWORD read from the adapter's driver
// configuration key.
const powerCapabilityValue = "PnPCapabilities"

// Settings selects the subjects of the built-in check catalogue.
type Settings struct {
	// AdminAccount is the local account that must be disabled.
	AdminAccount string
	// AdminGroup is the local group whose membership is verified.
	AdminGroup string
	// RequiredMember must appear among AdminGroup's members.
	RequiredMember string
	// FoldMemberCase makes the membership comparison case-insensitive.
	// The default is an exact match against the provider's own listing.
	FoldMemberCase bool
}

// DefaultSettings returns the stock DeltaV workstation audit subjects.
func DefaultSettings() Settings {
	return Settings{
		AdminAccount:   "Administrator",
		AdminGroup:     "Administrators",
		RequiredMember: "DeltaVADM",
	}
}

// Catalogue returns the fixed check sequence: account disabled, group
// membership, then one power-management sub-check per connected physical
// network adapter.
func Catalogue(s Settings) []Definition {
	return []Definition{
		AccountDisabled(s.AdminAccount),
		GroupMembership(s.AdminGroup, s.RequiredMember, s.FoldMemberCase),
		AdapterPowerManagement(),
	}
}

// AccountDisabled verifies that the named local account is disabled.
// An absent account yields the "Account not found" sentinel, which never
// equals the boolean expectation, so it reports Fail.
func AccountDisabled(name string) Definition {
	return Definition{
		RuleGroup: "Disable Administrator",
		Run: func(p Provider) []Observation {
			actual := StringValue(AccountNotFound)
			if acct, found, err := p.LocalAccount(name); err == nil && found {
				actual = BoolValue(!acct.Enabled)
			}
			return []Observation{{
				Description:     fmt.Sprintf("Verify local account %q is disabled", name),
				Expected:        BoolValue(true),
				Actual:          actual,
				PassingCriteria: "True",
			}}
		},
	}
}

// GroupMembership verifies that member appears in the local group's listing.
// A missing group or empty listing yields actual=false.
func GroupMembership(group, member string, foldCase bool) Definition {
	return Definition{
		RuleGroup: "Admin Group Membership",
		Run: func(p Provider) []Observation {
			present := false
			if members, err := p.GroupMembers(group); err == nil {
				for _, m := range members {
					if m == member || (foldCase && strings.EqualFold(m, member)) {
						present = true
						break
					}
				}
			}
			return []Observation{{
				Description:     fmt.Sprintf("Verify %q is a member of local group %q", member, group),
				Expected:        BoolValue(true),
				Actual:          BoolValue(present),
				PassingCriteria: "True",
			}}
		},
	}
}

// AdapterPowerManagement expands into one observation per connected physical
// adapter. Compliance requires the PnPCapabilities bit 0x20 to be set,
// meaning the OS may not power the device off. An adapter whose
// configuration key or capability value cannot be resolved reports the
// "Unknown" sentinel and therefore fails.
func AdapterPowerManagement() Definition {
	return Definition{
		RuleGroup: "NIC Power Management",
		Run: func(p Provider) []Observation {
			adapters, err := p.NetworkAdapters()
			if err != nil {
				return []Observation{{
					Description:     "Verify power management is disabled for connected network adapters",
					Expected:        StringValue(PowerDisabled),
					Actual:          StringValue(PowerUnknown),
					PassingCriteria: PowerDisabled,
				}}
			}

			var obs []Observation
			for _, adapter := range adapters {
				started := time.Now()
				obs = append(obs, Observation{
					Description:     fmt.Sprintf("Verify power management is disabled for adapter %q", adapter.Name),
					Expected:        StringValue(PowerDisabled),
					Actual:          StringValue(adapterPowerState(p, adapter.InstanceID)),
					PassingCriteria: PowerDisabled,
					Started:         started,
					Finished:        time.Now(),
				})
			}
			return obs
		},
	}
}

// adapterPowerState resolves one adapter's power management state from its
// hardware configuration, degrading to PowerUnknown at each step.
func adapterPowerState(p Provider, instanceID string) string {
	key, ok, err := p.HardwareConfigKey(instanceID)
	if err != nil || !ok {
		return PowerUnknown
	}
	mask, ok, err := p.HardwareConfigValue(key, powerCapabilityValue)
	if err != nil || !ok {
		return PowerUnknown
	}
	if mask&pnpPowerOffDisabled != 0 {
		return PowerDisabled
	}
	return PowerEnabled
}
