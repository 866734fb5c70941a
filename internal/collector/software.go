package collector

import (
	"sort"

	goversion "github.com/hashicorp/go-version"

	"github.com/dvmontools/dvaudit/internal/inventory"
)

// dedupeSoftware collapses duplicate display names, keeping the entry with
// the newest version. The same application commonly appears in both the
// native and WOW6432Node uninstall views. The result is sorted by name.
func dedupeSoftware(items []inventory.Software) []inventory.Software {
	byName := make(map[string]inventory.Software, len(items))
	for _, item := range items {
		existing, seen := byName[item.Name]
		if !seen || newerVersion(item.Version, existing.Version) {
			byName[item.Name] = item
		}
	}

	deduped := make([]inventory.Software, 0, len(byName))
	for _, item := range byName {
		deduped = append(deduped, item)
	}
	sort.Slice(deduped, func(i, j int) bool { return deduped[i].Name < deduped[j].Name })
	return deduped
}

// newerVersion reports whether a is a strictly newer version than b.
// Unparseable versions fall back to lexicographic comparison.
func newerVersion(a, b string) bool {
	va, errA := goversion.NewVersion(a)
	vb, errB := goversion.NewVersion(b)
	if errA != nil || errB != nil {
		return a > b
	}
	return va.GreaterThan(vb)
}
