// Package assets embeds the default texture.
package assets

import "embed"

// FS holds earth.png, an equirectangular placeholder map.
//
//go:embed earth.png
var FS embed.FS

// Earth is the path of the default texture in FS.
const Earth = "earth.png"
