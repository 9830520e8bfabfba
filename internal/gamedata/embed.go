// Package gamedata holds the embedded creature and item templates and
// builds entities from them.
package gamedata

import "embed"

// dataFS embeds all YAML template files from this directory at build time.
//
//go:embed *.yaml
var dataFS embed.FS
