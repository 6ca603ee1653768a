package review

import (
	"strings"

	"github.com/thomas-vilte/matereview/internal/models"
)

// defaultExtensions is the conservative source/config allow-list used when
// no include patterns are configured.
var defaultExtensions = []string{
	".js", ".jsx", ".ts", ".tsx",
	".py", ".php", ".go", ".rb", ".java", ".cs",
	".vue",
	".css", ".scss", ".html",
	".sql", ".sh",
	".json", ".yml", ".yaml",
}

// FilterFiles returns the subset of files worth analyzing, in input order.
// Renamed files are always kept, even when an exclude pattern matches:
// rename-only changes carry no diff body but still deserve a path sanity
// check. Removed files are dropped. Excludes take precedence over includes;
// with no includes configured the default extension allow-list applies.
func FilterFiles(files []models.ChangedFile, include, exclude []string) []models.ChangedFile {
	var kept []models.ChangedFile
	for _, f := range files {
		if f.Status == models.FileRenamed {
			kept = append(kept, f)
			continue
		}
		if f.Status != models.FileAdded && f.Status != models.FileModified {
			continue
		}
		if len(exclude) > 0 && matchAny(exclude, f.Filename) {
			continue
		}
		if len(include) > 0 {
			if matchAny(include, f.Filename) {
				kept = append(kept, f)
			}
			continue
		}
		if hasDefaultExtension(f.Filename) {
			kept = append(kept, f)
		}
	}
	return kept
}

func hasDefaultExtension(name string) bool {
	for _, ext := range defaultExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
