package palette

// NoMatches is the text of the placeholder row shown for an empty result.
const NoMatches = "No matches found."

// Row describes one rendered line of the result list.
type Row struct {
	// Index is the position in Session.Visible, or -1 for the placeholder.
	Index       int
	Title       string
	Description string
	Selected    bool
	Placeholder bool
}

// Rows maps a session to the rows a renderer should draw. An empty result
// yields exactly one placeholder row.
func Rows(s Session) []Row {
	if len(s.Visible) == 0 {
		return []Row{{Index: -1, Title: NoMatches, Placeholder: true}}
	}
	active := clamp(s.Active, len(s.Visible))
	rows := make([]Row, len(s.Visible))
	for i, a := range s.Visible {
		rows[i] = Row{
			Index:       i,
			Title:       a.Title,
			Description: a.Description,
			Selected:    i == active,
		}
	}
	return rows
}
