package launcher

import (
	"fmt"
	"strings"
)

// splitCommand splits a command line into argv, honoring single quotes,
// double quotes and backslash escapes. No other shell syntax is interpreted.
func splitCommand(s string) ([]string, error) {
	var out []string

	var buf strings.Builder
	inSingle := false
	inDouble := false
	escaped := false
	started := false

	flush := func() {
		if !started {
			return
		}
		out = append(out, buf.String())
		buf.Reset()
		started = false
	}

	for _, r := range s {
		if escaped {
			buf.WriteRune(r)
			escaped = false
			continue
		}

		switch {
		case !inSingle && r == '\\':
			escaped = true
			started = true
		case !inDouble && r == '\'':
			inSingle = !inSingle
			started = true
		case !inSingle && r == '"':
			inDouble = !inDouble
			started = true
		case !inSingle && !inDouble && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			flush()
		default:
			buf.WriteRune(r)
			started = true
		}
	}

	if escaped {
		return nil, fmt.Errorf("trailing backslash in startup app %q", s)
	}
	if inSingle || inDouble {
		return nil, fmt.Errorf("missing closing quote in startup app %q", s)
	}

	flush()
	return out, nil
}
