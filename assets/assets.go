// Package assets embeds the bundled sample cities.
package assets

import "embed"

//go:embed cities/*.xml
var Cities embed.FS
