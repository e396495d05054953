package catalog

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
)

// Wallpaper is a preset background value.
type Wallpaper struct {
	ID    string
	Name  string
	Value string
}

const WallpaperNone = "none"

var Wallpapers = []Wallpaper{
	{ID: "none", Name: "Pure Dark", Value: WallpaperNone},
	{ID: "mesh", Name: "Deep Mesh", Value: "radial-gradient(at 0% 0%, rgba(30, 41, 59, 0.5) 0, transparent 50%), radial-gradient(at 50% 0%, rgba(15, 23, 42, 0.5) 0, transparent 50%), radial-gradient(at 100% 0%, rgba(30, 41, 59, 0.5) 0, transparent 50%)"},
	{ID: "nebula", Name: "Nebula", Value: "linear-gradient(to bottom right, #0f172a, #1e1b4b, #020617)"},
	{ID: "grid", Name: "Cyber Grid", Value: `linear-gradient(rgba(15, 23, 42, 0.9), rgba(15, 23, 42, 0.9)), url("https://www.transparenttextures.com/patterns/carbon-fibre.png")`},
}

// WallpaperKind tells the render layer how to treat a stored wallpaper value.
type WallpaperKind int

const (
	WallpaperKindNone WallpaperKind = iota
	WallpaperKindGradient
	WallpaperKindImage
)

func (k WallpaperKind) String() string {
	switch k {
	case WallpaperKindGradient:
		return "gradient"
	case WallpaperKindImage:
		return "image"
	}
	return "none"
}

// ClassifyWallpaper maps "none" (and empty) to none, gradient strings to
// gradient, and anything else to an image URL.
func ClassifyWallpaper(v string) WallpaperKind {
	switch {
	case v == "" || v == WallpaperNone:
		return WallpaperKindNone
	case strings.HasPrefix(v, "linear-gradient"), strings.HasPrefix(v, "radial-gradient"):
		return WallpaperKindGradient
	}
	return WallpaperKindImage
}

// WallpaperName returns the preset name for v, or a generic label.
func WallpaperName(v string) string {
	for _, w := range Wallpapers {
		if w.Value == v {
			return w.Name
		}
	}
	switch ClassifyWallpaper(v) {
	case WallpaperKindNone:
		return Wallpapers[0].Name
	case WallpaperKindGradient:
		return "Custom gradient"
	}
	return "Custom image"
}

var (
	hexColorRe = regexp.MustCompile(`#[0-9a-fA-F]{6}\b`)
	rgbColorRe = regexp.MustCompile(`rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})`)
)

// WallpaperTint picks a terminal background colour out of a gradient: the
// first hex colour, else the first rgb()/rgba() colour. Images and "none"
// have no tint.
func WallpaperTint(v string) (string, bool) {
	if ClassifyWallpaper(v) != WallpaperKindGradient {
		return "", false
	}
	if m := hexColorRe.FindString(v); m != "" {
		return strings.ToLower(m), true
	}
	if m := rgbColorRe.FindStringSubmatch(v); m != nil {
		var r, g, b int
		fmt.Sscan(m[1], &r)
		fmt.Sscan(m[2], &g)
		fmt.Sscan(m[3], &b)
		return fmt.Sprintf("#%02x%02x%02x", clamp(r), clamp(g), clamp(b)), true
	}
	return "", false
}

func clamp(c int) int {
	if c > 255 {
		return 255
	}
	return c
}

// EncodeImageFile reads a local image and returns it as a data URI.
func EncodeImageFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read wallpaper image: %w", err)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("wallpaper %s is not an image (%s)", path, mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
