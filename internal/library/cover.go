package library

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// coverNames are the album art files looked for next to a track, best first.
var coverNames = lo.FlatMap([]string{"cover", "folder", "album", "front"}, func(base string, _ int) []string {
	return []string{base + ".jpg", base + ".png", base + ".jpeg"}
})

// FindCover returns the album art file in the track's directory, or "" when
// there is none. Names match case-insensitively.
func FindCover(trackPath string) string {
	dir := filepath.Dir(trackPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	byName := make(map[string]string, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			byName[strings.ToLower(e.Name())] = e.Name()
		}
	}

	name, ok := lo.Find(coverNames, func(n string) bool {
		_, found := byName[n]
		return found
	})
	if !ok {
		return ""
	}
	return filepath.Join(dir, byName[name])
}
