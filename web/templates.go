package web

import (
	"embed"
	"io/fs"
)

//go:embed index.html
var content embed.FS

// Index returns the embedded front-end shell. The real UI is a
// single-page app; the backend only has to hand it over.
func Index() []byte {
	b, _ := content.ReadFile("index.html")
	return b
}

// StaticFS exposes the embedded static assets.
func StaticFS() fs.FS {
	return content
}
