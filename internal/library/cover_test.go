package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindCover(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		dirs  []string
		want  string
	}{
		{"no art", []string{"01.mp3"}, nil, ""},
		{"cover", []string{"01.mp3", "cover.jpg"}, nil, "cover.jpg"},
		{"cover beats folder", []string{"folder.png", "cover.jpg"}, nil, "cover.jpg"},
		{"jpg beats png", []string{"front.png", "front.jpg"}, nil, "front.jpg"},
		{"case-insensitive", []string{"Folder.JPG"}, nil, "Folder.JPG"},
		{"directories ignored", nil, []string{"cover.jpg"}, ""},
		{"other images ignored", []string{"scan.jpg"}, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("x"), 0o600))
			}
			for _, d := range tt.dirs {
				require.NoError(t, os.Mkdir(filepath.Join(dir, d), 0o755))
			}

			want := ""
			if tt.want != "" {
				want = filepath.Join(dir, tt.want)
			}
			assert.Equal(t, want, FindCover(filepath.Join(dir, "01 - Intro.mp3")))
		})
	}
}

func TestFindCover_MissingDirectory(t *testing.T) {
	assert.Empty(t, FindCover(filepath.Join(t.TempDir(), "gone", "a.mp3")))
}
