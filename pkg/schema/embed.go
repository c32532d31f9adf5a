package schema

import (
	"embed"
	"io/fs"
)

//go:embed catalog/*.avsc.json catalog/header.avsc
var embeddedCatalog embed.FS

// CatalogFS returns the embedded ETP 1.2 catalog rooted at the catalog directory.
func CatalogFS() fs.FS {
	sub, err := fs.Sub(embeddedCatalog, "catalog")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return sub
}
