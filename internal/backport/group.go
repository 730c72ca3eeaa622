package backport

import (
	"strings"

	"github.com/danielolaszy/backport/pkg/models"
)

// GroupByFolder buckets files by the known top-level folder they live under.
// Files outside every folder are dropped. Every folder gets an entry, possibly empty.
func GroupByFolder(files []models.ChangedFile, folders []string) map[string][]models.ChangedFile {
	groups := make(map[string][]models.ChangedFile, len(folders))
	for _, folder := range folders {
		prefix := folder + "/"
		matched := []models.ChangedFile{}
		for _, f := range files {
			if strings.HasPrefix(f.Filename, prefix) {
				matched = append(matched, f)
			}
		}
		groups[folder] = matched
	}
	return groups
}
