package static

import _ "embed"

// UsageMd contains the embedded usage.md API guide.
//
//go:embed usage.md
var UsageMd string
