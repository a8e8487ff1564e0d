package build

import _ "embed"

// Help is the detailed markdown help for the build subcommands.
//
//go:embed help.md
var Help string
