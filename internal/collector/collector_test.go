package collector

import (
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/dvmontools/dvaudit/internal/inventory"
)

// fakeProvider returns canned section data.
type fakeProvider struct {
	adapters    []inventory.Adapter
	adaptersErr error
	software    []inventory.Software
	softwareErr error
	hotfixes    []inventory.Hotfix
	services    []inventory.Service
	servicesErr error
}

func (f *fakeProvider) LocalAccount(name string) (inventory.Account, bool, error) {
	return inventory.Account{}, false, nil
}
func (f *fakeProvider) GroupMembers(group string) ([]string, error) { return nil, nil }
func (f *fakeProvider) NetworkAdapters() ([]inventory.Adapter, error) {
	return f.adapters, f.adaptersErr
}
func (f *fakeProvider) HardwareConfigKey(id string) (string, bool, error) { return "", false, nil }
func (f *fakeProvider) HardwareConfigValue(key, value string) (uint32, bool, error) {
	return 0, false, nil
}
func (f *fakeProvider) InstalledSoftware() ([]inventory.Software, error) {
	return f.software, f.softwareErr
}
func (f *fakeProvider) Hotfixes() ([]inventory.Hotfix, error)  { return f.hotfixes, nil }
func (f *fakeProvider) Services() ([]inventory.Service, error) { return f.services, f.servicesErr }

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func TestNetworkAdaptersSection(t *testing.T) {
	c := New(&fakeProvider{
		adapters: []inventory.Adapter{
			{Name: "Intel I210", InstanceID: `PCI\VEN_8086`, MACAddress: "00:11:22:33:44:55"},
		},
	}, testLogger())

	s := c.networkAdapters()
	if s.Table == nil || len(s.Table.Rows) != 1 {
		t.Fatalf("expected 1 adapter row, got %+v", s)
	}
	if s.Table.Rows[0][0] != "Intel I210" {
		t.Errorf("adapter name = %q", s.Table.Rows[0][0])
	}
}

func TestNetworkAdaptersSection_Empty(t *testing.T) {
	c := New(&fakeProvider{}, testLogger())
	s := c.networkAdapters()
	if s.Note != "No connected physical adapters found" {
		t.Errorf("note = %q", s.Note)
	}
}

func TestSectionUnavailableOnProviderError(t *testing.T) {
	c := New(&fakeProvider{
		adaptersErr: errors.New("wmi broken"),
		softwareErr: inventory.ErrUnsupported,
		servicesErr: inventory.ErrUnsupported,
	}, testLogger())

	if s := c.networkAdapters(); !strings.Contains(s.Note, "wmi broken") {
		t.Errorf("adapters note = %q", s.Note)
	}
	if s := c.installedSoftware(); !strings.Contains(s.Note, "not supported") {
		t.Errorf("software note = %q", s.Note)
	}
	if s := c.services(); !strings.Contains(s.Note, "not supported") {
		t.Errorf("services note = %q", s.Note)
	}
}

func TestDedupeSoftware(t *testing.T) {
	items := []inventory.Software{
		{Name: "DeltaV Operate", Version: "14.3.1"},
		{Name: "DeltaV Operate", Version: "15.0.0"},
		{Name: "7-Zip", Version: "23.01"},
		{Name: "Custom Tool", Version: "build-7"},
		{Name: "Custom Tool", Version: "build-9"},
	}

	got := dedupeSoftware(items)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	// sorted by name
	if got[0].Name != "7-Zip" || got[1].Name != "Custom Tool" || got[2].Name != "DeltaV Operate" {
		t.Errorf("order = %v", got)
	}
	if got[2].Version != "15.0.0" {
		t.Errorf("kept version = %q, want newest 15.0.0", got[2].Version)
	}
	// unparseable versions fall back to lexicographic
	if got[1].Version != "build-9" {
		t.Errorf("kept version = %q, want build-9", got[1].Version)
	}
}

func TestNewerVersion(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"15.0.0", "14.3.1", true},
		{"14.3.1", "15.0.0", false},
		{"1.10.0", "1.9.0", true}, // semantic, not lexicographic
		{"build-9", "build-7", true},
	}
	for _, tt := range tests {
		if got := newerVersion(tt.a, tt.b); got != tt.want {
			t.Errorf("newerVersion(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestHotfixesSection_DateReformat(t *testing.T) {
	c := New(&fakeProvider{
		hotfixes: []inventory.Hotfix{
			{ID: "KB5031234", Description: "Security Update", InstalledOn: "8/23/2026"},
			{ID: "KB5012345", Description: "Update", InstalledOn: "not-a-date"},
		},
	}, testLogger())

	s := c.hotfixes()
	if len(s.Table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(s.Table.Rows))
	}
	// sorted by ID, KB5012345 first
	if s.Table.Rows[0][2] != "not-a-date" {
		t.Errorf("unparseable date should pass through, got %q", s.Table.Rows[0][2])
	}
	if s.Table.Rows[1][2] != "23-08-2026" {
		t.Errorf("date = %q, want 23-08-2026", s.Table.Rows[1][2])
	}
}

func TestServicesSection_Sorted(t *testing.T) {
	c := New(&fakeProvider{
		services: []inventory.Service{
			{Name: "WinRM", DisplayName: "Windows Remote Management", State: "Stopped", StartMode: "Manual"},
			{Name: "DeltaVService", DisplayName: "DeltaV Runtime", State: "Running", StartMode: "Auto"},
		},
	}, testLogger())

	s := c.services()
	if s.Table.Rows[0][0] != "DeltaVService" {
		t.Errorf("services not sorted by name: %v", s.Table.Rows)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{16 * 1024 * 1024 * 1024, "16.0 GB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestGather_SectionOrder(t *testing.T) {
	c := New(&fakeProvider{}, testLogger())
	sections := c.Gather()

	want := []string{
		"Host Summary", "Hardware", "Logical Disks", "Network Adapters",
		"IP Configuration", "Installed Software", "Installed Hotfixes", "Services",
	}
	if len(sections) != len(want) {
		t.Fatalf("expected %d sections, got %d", len(want), len(sections))
	}
	for i, title := range want {
		if sections[i].Title != title {
			t.Errorf("sections[%d].Title = %q, want %q", i, sections[i].Title, title)
		}
	}
}
