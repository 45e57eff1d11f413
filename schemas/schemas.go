// Package schemas embeds the JSON Schemas for CLI snapshot files.
package schemas

import "embed"

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
