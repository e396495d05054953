package catalog

// Theme is an entry of the fixed theme table. Primary is a colour token
// name kept for display; Accent is the hex colour the UI actually paints.
type Theme struct {
	ID      string
	Name    string
	Primary string
	Accent  string
}

var Themes = []Theme{
	{ID: "ypt", Name: "YPT Classic", Primary: "orange-500", Accent: "#f97316"},
	{ID: "midnight", Name: "Midnight", Primary: "blue-500", Accent: "#3b82f6"},
	{ID: "emerald", Name: "Emerald", Primary: "emerald-500", Accent: "#10b981"},
	{ID: "rose", Name: "Cyber Rose", Primary: "rose-500", Accent: "#f43f5e"},
	{ID: "gold", Name: "Solar Gold", Primary: "amber-400", Accent: "#fbbf24"},
}

// DefaultThemeID is the id persisted when nothing else is stored.
const DefaultThemeID = "ypt"

// ThemeByID returns the matching theme, or the first entry when id is unknown.
func ThemeByID(id string) Theme {
	for _, t := range Themes {
		if t.ID == id {
			return t
		}
	}
	return Themes[0]
}
