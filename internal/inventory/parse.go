package inventory

import "strings"

// parseWmicList parses `wmic ... /format:list` output into one map per
// object. Objects are separated by blank lines; each line is Key=Value.
// wmic emits UTF-16-ish CRLF output, so lines are trimmed aggressively.
func parseWmicList(out string) []map[string]string {
	var (
		objects []map[string]string
		current map[string]string
	)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r ")
		if line == "" {
			if len(current) > 0 {
				objects = append(objects, current)
				current = nil
			}
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if current == nil {
			current = make(map[string]string)
		}
		current[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if len(current) > 0 {
		objects = append(objects, current)
	}
	return objects
}

// parseLocalGroupMembers extracts member names from `net localgroup <name>`
// output. Members appear one per line between the dashed separator and the
// trailing completion message.
func parseLocalGroupMembers(out string) []string {
	var members []string
	inList := false
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))
		switch {
		case strings.HasPrefix(line, "----"):
			inList = true
		case inList && strings.HasPrefix(line, "The command completed"):
			return members
		case inList && line != "":
			members = append(members, line)
		}
	}
	return members
}
