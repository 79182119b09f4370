package abook

import _ "embed"

// Version is the release of the library and the abook binary.
//
//go:embed VERSION
var Version string
