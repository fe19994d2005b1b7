package pattern

import "embed"

// builtinPatternsFS embeds the built-in patterns directory.
// Contains the recognizer patterns for ReScript native interface files.
//
//go:embed patterns/*.yml
var builtinPatternsFS embed.FS
