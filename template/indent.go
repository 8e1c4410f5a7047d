// template/indent.go
package template

import "strings"

// Indent prepends depth additional nesting markers to every non-blank line
// of tmpl, so a fragment can be embedded inside a larger template at a
// controlled nesting offset. Purely textual; no parsing is performed.
// A depth below one leaves the (trimmed) template unchanged.
func Indent(tmpl string, depth int) string {
	if depth < 1 {
		return strings.TrimSpace(tmpl)
	}
	prefix := strings.Repeat(string(NestingMarker), depth)

	lines := strings.Split(tmpl, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, prefix+strings.TrimSpace(line))
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
