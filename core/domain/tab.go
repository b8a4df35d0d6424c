package domain

// Tab is a browser tab as reported by the tab source
type Tab struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// DisplayTitle returns the title or a placeholder for untitled tabs
func (t Tab) DisplayTitle() string {
	if t.Title == "" {
		return "Untitled Tab"
	}
	return t.Title
}
