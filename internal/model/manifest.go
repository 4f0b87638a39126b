package model

// Manifest is the ordered list of hooks a hook repository exports in its
// .pre-commit-hooks.yaml file.
type Manifest []Hook

// Lookup returns the manifest entry with the given id.
func (m Manifest) Lookup(id string) (Hook, bool) {
	for _, h := range m {
		if h.ID == id {
			return h, true
		}
	}

	return Hook{}, false
}

// IDs returns the exported hook ids in manifest order.
func (m Manifest) IDs() []string {
	ids := make([]string, 0, len(m))
	for _, h := range m {
		ids = append(ids, h.ID)
	}

	return ids
}
