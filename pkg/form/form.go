// Package form parses rendered issue-form bodies into flat field maps.
package form

import "strings"

const (
	// headerMarker starts a field header line in a rendered issue form.
	headerMarker = "### "
	// noResponse is the sentinel an unanswered optional field renders as.
	noResponse = "_no response_"
)

// Parse turns a submission body into a mapping of field name to answer.
// Each header line opens a field; the lines up to the next header form
// its value, joined by newline and trimmed. A value equal to the
// "no response" sentinel (case-insensitive) normalizes to "". Fields
// without a header are simply absent from the map, and a body with no
// headers at all yields an empty map. Pure function, never fails;
// required-field validation is the caller's job.
func Parse(body string) map[string]string {
	fields := make(map[string]string)

	var name string
	var lines []string

	flush := func() {
		if name == "" {
			return
		}
		value := strings.TrimSpace(strings.Join(lines, "\n"))
		if strings.EqualFold(value, noResponse) {
			value = ""
		}
		fields[name] = value
	}

	for _, line := range strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n") {
		if strings.HasPrefix(line, headerMarker) {
			flush()
			name = strings.TrimSpace(strings.TrimPrefix(line, headerMarker))
			lines = nil
			continue
		}
		lines = append(lines, line)
	}
	flush()

	return fields
}
