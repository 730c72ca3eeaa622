package backport

import (
	"fmt"
	"strings"

	"github.com/danielolaszy/backport/internal/config"
)

// Product is one documentation tree and where its released versions live.
type Product struct {
	Folder          string
	VersionedFolder string
	VersionPrefixes []string
	VersionSuffix   string
}

// VersionedPath returns the directory holding the given release, e.g.
// "vcluster_versioned_docs/version-0.24.0".
func (p Product) VersionedPath(version string) string {
	return fmt.Sprintf("%s/version-%s%s", p.VersionedFolder, version, p.VersionSuffix)
}

// FolderMapping dispatches versions to products by version prefix.
type FolderMapping struct {
	products []Product
	fallback Product
}

// NewFolderMapping builds a mapping from validated product configuration.
func NewFolderMapping(products []config.ProductConfig) FolderMapping {
	var m FolderMapping
	for _, pc := range products {
		p := Product{
			Folder:          pc.Folder,
			VersionedFolder: pc.VersionedFolder,
			VersionPrefixes: pc.VersionPrefixes,
			VersionSuffix:   pc.VersionSuffix,
		}
		m.products = append(m.products, p)
		if pc.Default {
			m.fallback = p
		}
	}
	return m
}

// DefaultFolderMapping returns the built-in platform/vcluster layout.
func DefaultFolderMapping() FolderMapping {
	return NewFolderMapping(config.DefaultProducts())
}

// Folders lists the top-level folders of all products, in configuration order.
func (m FolderMapping) Folders() []string {
	folders := make([]string, 0, len(m.products))
	for _, p := range m.products {
		folders = append(folders, p.Folder)
	}
	return folders
}

// Resolve returns the first product with a prefix of version, or the default product.
func (m FolderMapping) Resolve(version string) Product {
	for _, p := range m.products {
		for _, prefix := range p.VersionPrefixes {
			if strings.HasPrefix(version, prefix) {
				return p
			}
		}
	}
	return m.fallback
}
