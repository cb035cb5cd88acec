package autoextract

import "net/url"

// ResolveItems resolves each item href against the base URL and returns
// the items as a new slice. Hrefs that fail to parse are kept verbatim.
// The input slice is not modified.
func ResolveItems(baseURL string, items []Item) ([]Item, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid base url %q", baseURL)
	}

	resolved := make([]Item, len(items))
	for i, item := range items {
		resolved[i] = item
		ref, err := url.Parse(item.Href)
		if err != nil {
			continue
		}
		resolved[i].Href = base.ResolveReference(ref).String()
	}
	return resolved, nil
}
