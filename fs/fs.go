package appfs

import "embed"

// FS holds the assets shipped inside the binary.
//go:embed all:templates
var FS embed.FS
