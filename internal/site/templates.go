package site

import "embed"

// layoutFS contains the default HTML layouts bundled with the binary. A
// layouts directory in the project overrides them template-by-template.
//
//go:embed layouts/*.html layouts/partials/*.html
var layoutFS embed.FS
