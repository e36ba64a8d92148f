// Package web embeds the browser client. sw.js is the cache-first
// service worker that keeps the game shell available offline.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed index.html styles.css app.js sw.js manifest.webmanifest
var content embed.FS

// FS returns the embedded client as an http.FileSystem.
func FS() http.FileSystem {
	sub, _ := fs.Sub(content, ".")
	return http.FS(sub)
}
