// Package catalog holds the static lookup tables: seed subjects, themes,
// wallpapers and the colour presets offered when creating a subject.
package catalog

// Subject mirrors store.Subject without importing it, so the store can seed
// itself from this package.
type Subject struct {
	ID    string
	Name  string
	Color string
}

// DefaultSubjects are used only when no subjects have been persisted yet.
var DefaultSubjects = []Subject{
	{ID: "math", Name: "Mathematics", Color: "#3b82f6"},
	{ID: "coding", Name: "Coding", Color: "#10b981"},
	{ID: "english", Name: "English", Color: "#f59e0b"},
	{ID: "science", Name: "Science", Color: "#ef4444"},
	{ID: "design", Name: "Design", Color: "#a855f7"},
}

// SubjectColors are the presets offered by the add-subject form.
var SubjectColors = []string{
	"#3b82f6", "#10b981", "#f59e0b", "#ef4444", "#a855f7",
	"#ec4899", "#06b6d4", "#84cc16", "#f97316", "#6366f1",
}

// Fallbacks for references that no longer resolve.
const (
	UnknownSubjectName  = "Unknown"
	UnknownSubjectColor = "#334155"
	GeneralSubjectName  = "General"
)
