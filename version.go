package slipbox

import _ "embed"

// Version is the release of the library and the slipbox command.
//
//go:embed VERSION
var Version string
