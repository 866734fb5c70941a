//go:build windows

package inventory

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows/registry"
)

const queryTimeout = 15 * time.Second

const (
	enumKeyPrefix  = `SYSTEM\CurrentControlSet\Enum\`
	classKeyPrefix = `SYSTEM\CurrentControlSet\Control\Class\`
)

// uninstallKeys are the registry views listing installed applications,
// native and 32-bit-on-64-bit.
var uninstallKeys = []string{
	`SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`,
	`SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall`,
}

// SystemProvider reads host state from the live system via wmic, net.exe,
// and the registry.
type SystemProvider struct {
	log *logrus.Logger
}

// NewSystemProvider creates a Provider backed by the local machine.
func NewSystemProvider(log *logrus.Logger) *SystemProvider {
	return &SystemProvider{log: log}
}

// wmicQuery runs a wmic command with /format:list and returns the parsed
// objects. wmic exits non-zero when the query matches nothing; that case is
// reported as an empty result.
func (p *SystemProvider) wmicQuery(args ...string) ([]map[string]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	args = append(args, "/format:list")
	out, err := exec.CommandContext(ctx, "wmic", args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			p.log.WithFields(logrus.Fields{
				"args": strings.Join(args, " "),
				"code": exitErr.ExitCode(),
			}).Debug("wmic query matched nothing")
			return nil, nil
		}
		return nil, fmt.Errorf("wmic %s: %w", strings.Join(args, " "), err)
	}
	return parseWmicList(string(out)), nil
}

// LocalAccount looks up a local account via Win32_UserAccount.
func (p *SystemProvider) LocalAccount(name string) (Account, bool, error) {
	where := fmt.Sprintf("Name='%s' and LocalAccount=TRUE", escapeWmicString(name))
	objs, err := p.wmicQuery("useraccount", "where", where, "get", "Name,FullName,Disabled")
	if err != nil {
		return Account{}, false, err
	}
	if len(objs) == 0 {
		return Account{}, false, nil
	}
	obj := objs[0]
	return Account{
		Name:     obj["Name"],
		FullName: obj["FullName"],
		Enabled:  !strings.EqualFold(obj["Disabled"], "TRUE"),
	}, true, nil
}

// GroupMembers lists local group members via `net localgroup`. A missing
// group yields an empty listing, not an error.
func (p *SystemProvider) GroupMembers(group string) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "net", "localgroup", group).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// net.exe exits 2 when the group does not exist
			p.log.WithField("group", group).Debug("local group not found")
			return nil, nil
		}
		return nil, fmt.Errorf("net localgroup %s: %w", group, err)
	}
	return parseLocalGroupMembers(string(out)), nil
}

// NetworkAdapters enumerates physical adapters that are currently connected
// (Win32_NetworkAdapter NetConnectionStatus=2).
func (p *SystemProvider) NetworkAdapters() ([]Adapter, error) {
	objs, err := p.wmicQuery("nic",
		"where", "PhysicalAdapter=TRUE and NetConnectionStatus=2",
		"get", "Name,PNPDeviceID,MACAddress")
	if err != nil {
		return nil, err
	}
	var adapters []Adapter
	for _, obj := range objs {
		if obj["PNPDeviceID"] == "" {
			continue
		}
		adapters = append(adapters, Adapter{
			Name:       obj["Name"],
			InstanceID: obj["PNPDeviceID"],
			MACAddress: obj["MACAddress"],
		})
	}
	return adapters, nil
}

// HardwareConfigKey resolves a device instance ID to its driver
// configuration key under Control\Class via the Enum key's Driver value.
func (p *SystemProvider) HardwareConfigKey(instanceID string) (string, bool, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, enumKeyPrefix+instanceID, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("open enum key for %s: %w", instanceID, err)
	}
	defer key.Close()

	driver, _, err := key.GetStringValue("Driver")
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read Driver for %s: %w", instanceID, err)
	}
	return classKeyPrefix + driver, true, nil
}

// HardwareConfigValue reads a DWORD attribute from a configuration key.
func (p *SystemProvider) HardwareConfigValue(keyPath, value string) (uint32, bool, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, keyPath, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("open %s: %w", keyPath, err)
	}
	defer key.Close()

	v, _, err := key.GetIntegerValue(value)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("read %s\\%s: %w", keyPath, value, err)
	}
	return uint32(v), true, nil
}

// InstalledSoftware reads the uninstall registry views. Entries without a
// DisplayName (patch stubs, orphaned keys) are skipped.
func (p *SystemProvider) InstalledSoftware() ([]Software, error) {
	var software []Software
	for _, root := range uninstallKeys {
		key, err := registry.OpenKey(registry.LOCAL_MACHINE, root, registry.READ)
		if err != nil {
			if errors.Is(err, registry.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("open %s: %w", root, err)
		}
		names, err := key.ReadSubKeyNames(-1)
		key.Close()
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", root, err)
		}
		for _, name := range names {
			sub, err := registry.OpenKey(registry.LOCAL_MACHINE, root+`\`+name, registry.QUERY_VALUE)
			if err != nil {
				continue
			}
			display, _, err := sub.GetStringValue("DisplayName")
			if err != nil || display == "" {
				sub.Close()
				continue
			}
			ver, _, _ := sub.GetStringValue("DisplayVersion")
			pub, _, _ := sub.GetStringValue("Publisher")
			date, _, _ := sub.GetStringValue("InstallDate")
			sub.Close()
			software = append(software, Software{
				Name:        display,
				Version:     ver,
				Publisher:   pub,
				InstallDate: date,
			})
		}
	}
	return software, nil
}

// Hotfixes lists installed OS updates via Win32_QuickFixEngineering.
func (p *SystemProvider) Hotfixes() ([]Hotfix, error) {
	objs, err := p.wmicQuery("qfe", "get", "HotFixID,Description,InstalledOn")
	if err != nil {
		return nil, err
	}
	var fixes []Hotfix
	for _, obj := range objs {
		if obj["HotFixID"] == "" {
			continue
		}
		fixes = append(fixes, Hotfix{
			ID:          obj["HotFixID"],
			Description: obj["Description"],
			InstalledOn: obj["InstalledOn"],
		})
	}
	return fixes, nil
}

// Services lists registered services via Win32_Service.
func (p *SystemProvider) Services() ([]Service, error) {
	objs, err := p.wmicQuery("service", "get", "Name,DisplayName,State,StartMode")
	if err != nil {
		return nil, err
	}
	var services []Service
	for _, obj := range objs {
		if obj["Name"] == "" {
			continue
		}
		services = append(services, Service{
			Name:        obj["Name"],
			DisplayName: obj["DisplayName"],
			State:       obj["State"],
			StartMode:   obj["StartMode"],
		})
	}
	return services, nil
}

// escapeWmicString doubles single quotes for WQL string literals.
func escapeWmicString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
