package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thomas-vilte/matereview/internal/models"
)

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"*.ts", "a.ts", true},
		{"*.ts", "a/b.ts", false},
		{"**/*.ts", "a/b.ts", true},
		{"**/*.ts", "a/b/c.ts", true},
		{"src/**", "src/deep/file.go", true},
		{"src/**", "lib/file.go", false},
		{"file?.go", "file1.go", true},
		{"file?.go", "file12.go", false},
		{"file?.go", "file/.go", false},
		{"exact.txt", "exact.txt", true},
		{"a+b.txt", "a+b.txt", true},
		{"a+b.txt", "aab.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchGlob(tt.pattern, tt.name))
		})
	}
}

func TestFilterFiles(t *testing.T) {
	files := []models.ChangedFile{
		{Filename: "src/app.ts", Status: models.FileModified},
		{Filename: "src/app.test.ts", Status: models.FileModified},
		{Filename: "README.md", Status: models.FileModified},
		{Filename: "old/name.go", Status: models.FileRenamed},
		{Filename: "gone.py", Status: models.FileRemoved},
		{Filename: "new.php", Status: models.FileAdded},
	}

	t.Run("default allow-list with no patterns", func(t *testing.T) {
		kept := FilterFiles(files, nil, nil)

		names := filenames(kept)
		assert.Equal(t, []string{"src/app.ts", "src/app.test.ts", "old/name.go", "new.php"}, names)
	})

	t.Run("include patterns replace the default allow-list", func(t *testing.T) {
		kept := FilterFiles(files, []string{"**/*.ts"}, nil)

		names := filenames(kept)
		assert.Equal(t, []string{"src/app.ts", "src/app.test.ts", "old/name.go"}, names)
	})

	t.Run("exclude takes precedence over include", func(t *testing.T) {
		kept := FilterFiles(files, []string{"**/*.ts"}, []string{"**/*.test.ts"})

		names := filenames(kept)
		assert.Equal(t, []string{"src/app.ts", "old/name.go"}, names)
	})

	t.Run("renamed files survive a matching exclude", func(t *testing.T) {
		kept := FilterFiles(files, nil, []string{"**/*.go", "old/**"})

		names := filenames(kept)
		assert.Contains(t, names, "old/name.go")
	})

	t.Run("removed files are always dropped", func(t *testing.T) {
		kept := FilterFiles(files, []string{"**"}, nil)

		assert.NotContains(t, filenames(kept), "gone.py")
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, FilterFiles(nil, nil, nil))
	})

	t.Run("filtering is idempotent", func(t *testing.T) {
		include := []string{"**/*.ts"}
		exclude := []string{"**/*.test.ts"}

		once := FilterFiles(files, include, exclude)
		twice := FilterFiles(once, include, exclude)

		assert.Equal(t, once, twice)
	})
}

func filenames(files []models.ChangedFile) []string {
	var names []string
	for _, f := range files {
		names = append(names, f.Filename)
	}
	return names
}
