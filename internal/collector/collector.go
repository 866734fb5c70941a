// Package collector gathers the inventory sections of the audit report:
// host summary, hardware, disks, network, installed software, hotfixes, and
// services. Every gatherer is best-effort; a failing source renders as an
// unavailable note instead of aborting the run.
package collector

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	gopsnet "github.com/shirou/gopsutil/v3/net"
	"github.com/sirupsen/logrus"

	"github.com/dvmontools/dvaudit/internal/inventory"
	"github.com/dvmontools/dvaudit/internal/report"
)

// Collector assembles report sections from the host inventory provider and
// local system statistics.
type Collector struct {
	provider inventory.Provider
	log      *logrus.Logger
}

// New creates a Collector over the given provider.
func New(provider inventory.Provider, log *logrus.Logger) *Collector {
	return &Collector{provider: provider, log: log}
}

// Gather collects all inventory sections in their fixed report order.
func (c *Collector) Gather() []report.Section {
	return []report.Section{
		c.hostSummary(),
		c.hardware(),
		c.logicalDisks(),
		c.networkAdapters(),
		c.ipConfiguration(),
		c.installedSoftware(),
		c.hotfixes(),
		c.services(),
	}
}

// unavailable logs the failure and returns a placeholder section.
func (c *Collector) unavailable(title string, err error) report.Section {
	c.log.WithError(err).WithField("section", title).Warn("section data unavailable")
	return report.Section{Title: title, Note: "Data unavailable: " + err.Error()}
}

func (c *Collector) hostSummary() report.Section {
	info, err := host.Info()
	if err != nil {
		return c.unavailable("Host Summary", err)
	}
	bootTime := time.Unix(int64(info.BootTime), 0)
	return report.Section{
		Title: "Host Summary",
		Fields: []report.KV{
			{Key: "Hostname", Value: info.Hostname},
			{Key: "OS", Value: strings.TrimSpace(info.Platform + " " + info.PlatformVersion)},
			{Key: "Kernel", Value: info.KernelVersion},
			{Key: "Architecture", Value: info.KernelArch},
			{Key: "Boot Time", Value: report.FormatDate(bootTime)},
			{Key: "Uptime", Value: (time.Duration(info.Uptime) * time.Second).String()},
			{Key: "Processes", Value: fmt.Sprintf("%d", info.Procs)},
		},
	}
}

func (c *Collector) hardware() report.Section {
	var fields []report.KV

	if cpus, err := cpu.Info(); err != nil {
		c.log.WithError(err).Warn("cpu info unavailable")
	} else if len(cpus) > 0 {
		cores := int32(0)
		for _, ci := range cpus {
			cores += ci.Cores
		}
		fields = append(fields,
			report.KV{Key: "Processor", Value: strings.TrimSpace(cpus[0].ModelName)},
			report.KV{Key: "Cores", Value: fmt.Sprintf("%d", cores)},
			report.KV{Key: "Clock", Value: fmt.Sprintf("%.0f MHz", cpus[0].Mhz)},
		)
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		c.log.WithError(err).Warn("memory info unavailable")
	} else {
		fields = append(fields,
			report.KV{Key: "Physical Memory", Value: formatBytes(vm.Total)},
			report.KV{Key: "Memory In Use", Value: fmt.Sprintf("%.1f%%", vm.UsedPercent)},
		)
	}

	if len(fields) == 0 {
		return report.Section{Title: "Hardware", Note: "Data unavailable"}
	}
	return report.Section{Title: "Hardware", Fields: fields}
}

func (c *Collector) logicalDisks() report.Section {
	parts, err := disk.Partitions(false)
	if err != nil {
		return c.unavailable("Logical Disks", err)
	}
	table := &report.Table{Headers: []string{"Drive", "Filesystem", "Size", "Free", "Used"}}
	for _, part := range parts {
		usage, err := disk.Usage(part.Mountpoint)
		if err != nil {
			c.log.WithError(err).WithField("mount", part.Mountpoint).Debug("disk usage unavailable")
			continue
		}
		table.Rows = append(table.Rows, []string{
			part.Mountpoint,
			part.Fstype,
			formatBytes(usage.Total),
			formatBytes(usage.Free),
			fmt.Sprintf("%.1f%%", usage.UsedPercent),
		})
	}
	return report.Section{Title: "Logical Disks", Table: table}
}

func (c *Collector) networkAdapters() report.Section {
	adapters, err := c.provider.NetworkAdapters()
	if err != nil {
		return c.unavailable("Network Adapters", err)
	}
	if len(adapters) == 0 {
		return report.Section{Title: "Network Adapters", Note: "No connected physical adapters found"}
	}
	table := &report.Table{Headers: []string{"Name", "MAC Address", "Device Instance ID"}}
	for _, a := range adapters {
		table.Rows = append(table.Rows, []string{a.Name, a.MACAddress, a.InstanceID})
	}
	return report.Section{Title: "Network Adapters", Table: table}
}

func (c *Collector) ipConfiguration() report.Section {
	ifaces, err := gopsnet.Interfaces()
	if err != nil {
		return c.unavailable("IP Configuration", err)
	}
	table := &report.Table{Headers: []string{"Interface", "MTU", "Addresses"}}
	for _, iface := range ifaces {
		addrs := make([]string, 0, len(iface.Addrs))
		for _, a := range iface.Addrs {
			addrs = append(addrs, a.Addr)
		}
		table.Rows = append(table.Rows, []string{
			iface.Name,
			fmt.Sprintf("%d", iface.MTU),
			strings.Join(addrs, ", "),
		})
	}
	return report.Section{Title: "IP Configuration", Table: table}
}

func (c *Collector) installedSoftware() report.Section {
	software, err := c.provider.InstalledSoftware()
	if err != nil {
		return c.unavailable("Installed Software", err)
	}
	software = dedupeSoftware(software)
	table := &report.Table{Headers: []string{"Name", "Version", "Publisher"}}
	for _, s := range software {
		table.Rows = append(table.Rows, []string{s.Name, s.Version, s.Publisher})
	}
	return report.Section{Title: "Installed Software", Table: table}
}

func (c *Collector) hotfixes() report.Section {
	fixes, err := c.provider.Hotfixes()
	if err != nil {
		return c.unavailable("Installed Hotfixes", err)
	}
	sort.Slice(fixes, func(i, j int) bool { return fixes[i].ID < fixes[j].ID })
	table := &report.Table{Headers: []string{"HotFix ID", "Description", "Installed On"}}
	for _, f := range fixes {
		table.Rows = append(table.Rows, []string{f.ID, f.Description, reformatDate(f.InstalledOn)})
	}
	return report.Section{Title: "Installed Hotfixes", Table: table}
}

func (c *Collector) services() report.Section {
	services, err := c.provider.Services()
	if err != nil {
		return c.unavailable("Services", err)
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Name < services[j].Name })
	table := &report.Table{Headers: []string{"Name", "Display Name", "State", "Start Mode"}}
	for _, s := range services {
		table.Rows = append(table.Rows, []string{s.Name, s.DisplayName, s.State, s.StartMode})
	}
	return report.Section{Title: "Services", Table: table}
}

// reformatDate normalizes source-specific date strings to DD-MM-YYYY,
// passing through anything it cannot parse. wmic reports US-style dates,
// the uninstall registry uses yyyymmdd.
func reformatDate(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"1/2/2006", "01/02/2006", "2006-01-02", "20060102"} {
		if t, err := time.Parse(layout, s); err == nil {
			return report.FormatDate(t)
		}
	}
	return s
}

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
