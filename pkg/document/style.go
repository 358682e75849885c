package document

import (
	"strings"
)

// StyleMap represents the parsed CSS declarations of a text node's
// style attribute, e.g. "color: #F97316; background-color: #BFDBFE;".
type StyleMap map[string]string

// styleAllowlist is the set of declarations renderers carry through.
// Anything else authored or imported is dropped at render time.
var styleAllowlist = []string{"color", "text-decoration", "background-color"}

// ParseStyle parses a semicolon-separated CSS declaration list.
func ParseStyle(styleStr string) StyleMap {
	styles := make(StyleMap)
	if styleStr == "" {
		return styles
	}

	parts := strings.Split(styleStr, ";")
	for _, part := range parts {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) == 2 {
			k := strings.TrimSpace(kv[0])
			v := strings.TrimSpace(kv[1])
			if k != "" && v != "" {
				styles[k] = v
			}
		}
	}
	return styles
}

// Relevant returns the allowlisted declarations joined back into a
// deterministic inline style string, empty when nothing survives.
func (s StyleMap) Relevant() string {
	var kept []string
	for _, k := range styleAllowlist {
		if v, ok := s[k]; ok {
			kept = append(kept, k+": "+v)
		}
	}
	return strings.Join(kept, "; ")
}
