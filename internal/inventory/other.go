//go:build !windows

package inventory

import "github.com/sirupsen/logrus"

// SystemProvider is the non-Windows placeholder. Every subject lookup
// reports absence, so checks degrade to their sentinel values and section
// listings render as unavailable.
type SystemProvider struct {
	log *logrus.Logger
}

// NewSystemProvider creates the placeholder provider.
func NewSystemProvider(log *logrus.Logger) *SystemProvider {
	log.Warn("host inventory queries require Windows; audit will report absent subjects")
	return &SystemProvider{log: log}
}

func (p *SystemProvider) LocalAccount(name string) (Account, bool, error) {
	return Account{}, false, nil
}

func (p *SystemProvider) GroupMembers(group string) ([]string, error) {
	return nil, nil
}

func (p *SystemProvider) NetworkAdapters() ([]Adapter, error) {
	return nil, nil
}

func (p *SystemProvider) HardwareConfigKey(instanceID string) (string, bool, error) {
	return "", false, nil
}

func (p *SystemProvider) HardwareConfigValue(key, value string) (uint32, bool, error) {
	return 0, false, nil
}

func (p *SystemProvider) InstalledSoftware() ([]Software, error) {
	return nil, ErrUnsupported
}

func (p *SystemProvider) Hotfixes() ([]Hotfix, error) {
	return nil, ErrUnsupported
}

func (p *SystemProvider) Services() ([]Service, error) {
	return nil, ErrUnsupported
}
