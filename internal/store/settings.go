package store

import "github.com/sadopc/focusflow/internal/catalog"

// DefaultDailyGoal is four hours, in seconds.
const DefaultDailyGoal int64 = 14400

// DailyGoal returns the daily goal in seconds. Non-positive stored values
// count as corrupt.
func (s *Store) DailyGoal() int64 {
	goal := get(s, KeyDailyGoal, DefaultDailyGoal)
	if goal <= 0 {
		return DefaultDailyGoal
	}
	return goal
}

func (s *Store) SaveDailyGoal(seconds int64) error {
	return set(s, KeyDailyGoal, seconds)
}

func (s *Store) ThemeID() string {
	if id := get(s, KeyThemeID, ""); id != "" {
		return id
	}
	return catalog.DefaultThemeID
}

func (s *Store) SaveThemeID(id string) error {
	return set(s, KeyThemeID, id)
}

// Wallpaper returns "none", a gradient, or an image URL (usually a data URI).
func (s *Store) Wallpaper() string {
	if w := get(s, KeyWallpaper, ""); w != "" {
		return w
	}
	return catalog.WallpaperNone
}

func (s *Store) SaveWallpaper(value string) error {
	return set(s, KeyWallpaper, value)
}
