package orchestrator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/dvmontools/dvaudit/internal/config"
	"github.com/dvmontools/dvaudit/internal/inventory"
)

// fakeProvider is a synthetic host for pipeline tests: admin disabled,
// required member present, one compliant and one non-compliant adapter.
type fakeProvider struct{}

func (fakeProvider) LocalAccount(name string) (inventory.Account, bool, error) {
	if name == "Administrator" {
		return inventory.Account{Name: name, Enabled: false}, true, nil
	}
	return inventory.Account{}, false, nil
}

func (fakeProvider) GroupMembers(group string) ([]string, error) {
	return []string{"Administrator", "DeltaVADM"}, nil
}

func (fakeProvider) NetworkAdapters() ([]inventory.Adapter, error) {
	return []inventory.Adapter{
		{Name: "nic0", InstanceID: `PCI\0`, MACAddress: "00:00:00:00:00:00"},
		{Name: "nic1", InstanceID: `PCI\1`, MACAddress: "00:00:00:00:00:01"},
	}, nil
}

func (fakeProvider) HardwareConfigKey(instanceID string) (string, bool, error) {
	return "class\\" + instanceID, true, nil
}

func (fakeProvider) HardwareConfigValue(key, value string) (uint32, bool, error) {
	if key == `class\PCI\0` {
		return 0x20, true, nil
	}
	return 0, true, nil
}

func (fakeProvider) InstalledSoftware() ([]inventory.Software, error) {
	return []inventory.Software{{Name: "DeltaV Operate", Version: "15.0.0", Publisher: "Emerson"}}, nil
}

func (fakeProvider) Hotfixes() ([]inventory.Hotfix, error) {
	return []inventory.Hotfix{{ID: "KB5031234", Description: "Security Update", InstalledOn: "8/1/2026"}}, nil
}

func (fakeProvider) Services() ([]inventory.Service, error) {
	return []inventory.Service{{Name: "DeltaVService", DisplayName: "DeltaV Runtime", State: "Running", StartMode: "Auto"}}, nil
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.PanicLevel)
	return l
}

func runPipeline(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()

	o := New(cfg, Options{OutputDir: dir, Version: "test"}, testLogger())
	o.SetProvider(fakeProvider{})

	if err := o.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, cfg.Output.File))
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	return string(data)
}

func TestRun_WritesFullReport(t *testing.T) {
	out := runPipeline(t)

	for _, want := range []string{
		"DeltaV Workstation Audit Report",
		"---- Network Adapters ",
		"---- Installed Software ",
		"---- Installed Hotfixes ",
		"---- Services ",
		"---- Compliance Test Cases ",
		"DeltaV Operate",
		"KB5031234",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRun_CheckRecords(t *testing.T) {
	out := runPipeline(t)

	// 2 fixed checks + 2 adapters, sequential IDs
	for _, id := range []string{"TC001", "TC002", "TC003", "TC004"} {
		if !strings.Contains(out, id) {
			t.Errorf("report missing %s", id)
		}
	}
	if strings.Contains(out, "TC005") {
		t.Error("unexpected extra check record")
	}
	if !strings.Contains(out, "4 executed, 3 passed, 1 failed") {
		t.Errorf("tally wrong:\n%s", out)
	}
}

func TestRun_OverwritesPreviousReport(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	path := filepath.Join(dir, cfg.Output.File)
	if err := os.WriteFile(path, []byte("previous run artifacts"), 0644); err != nil {
		t.Fatal(err)
	}

	o := New(cfg, Options{OutputDir: dir, Version: "test"}, testLogger())
	o.SetProvider(fakeProvider{})
	if err := o.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "previous run artifacts") {
		t.Error("report was not overwritten")
	}
}

func TestRun_UnwritableReportIsFatal(t *testing.T) {
	cfg := config.Default()
	o := New(cfg, Options{OutputDir: filepath.Join(t.TempDir(), "missing", "nested"), Version: "test"}, testLogger())
	o.SetProvider(fakeProvider{})

	if err := o.Run(); err == nil {
		t.Fatal("expected error for unwritable report path")
	}
}
