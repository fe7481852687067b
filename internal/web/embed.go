package web

import (
	"embed"
	"io/fs"
)

//go:embed all:dist
var dist embed.FS

// Assets returns the prebuilt frontend bundle rooted at dist/
func Assets() fs.FS {
	assets, err := fs.Sub(dist, "dist")
	if err != nil {
		// dist is a literal directory compiled into the binary
		panic(err)
	}
	return assets
}
