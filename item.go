package autoextract

// Item represents a single extracted list entry: the link text and the
// link target as they appear in the source page. Href is not resolved
// against a base URL; it may be relative.
type Item struct {
	Title string `json:"title"`
	Href  string `json:"href"`
}

// Validate returns an error if the item contains invalid fields.
func (i *Item) Validate() error {
	if i.Title == "" {
		return Errorf(EINVALID, "item title required")
	}
	if i.Href == "" {
		return Errorf(EINVALID, "item href required")
	}
	return nil
}
