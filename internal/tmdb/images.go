package tmdb

import "strings"

// Images builds absolute image URLs from TMDB file paths
type Images struct {
	PosterBase   string // e.g. https://image.tmdb.org/t/p/w500
	BackdropBase string // e.g. https://image.tmdb.org/t/p/original
}

// PosterURL returns the poster URL, or empty when path is empty
func (i Images) PosterURL(path string) string {
	return join(i.PosterBase, path)
}

// BackdropURL returns the backdrop URL, or empty when path is empty
func (i Images) BackdropURL(path string) string {
	return join(i.BackdropBase, path)
}

func join(base, path string) string {
	if path == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
