package export

import "encoding/json"

// encodeJSON renders the sections as a pretty-printed object keyed by
// section name. List sections appear even when empty ([]); the personal
// section is a single object and is omitted entirely when the user has
// no record, matching the other formats' "nothing to show" treatment.
func encodeJSON(sections []section) ([]byte, error) {
	doc := make(map[string]any, len(sections))
	for _, s := range sections {
		if !s.list && !s.present {
			continue
		}
		doc[s.key] = s.json
	}
	return json.MarshalIndent(doc, "", "  ")
}
