package dayplan

import _ "embed"

// DefaultTOML is the bundled fallback configuration, inserted into the store
// when no configuration exists there yet.
//
//go:embed default.toml
var DefaultTOML []byte

// Default parses the bundled configuration. The embedded file is covered by
// tests, so a parse failure here is a build defect.
func Default() *File {
	f, err := Parse(DefaultTOML)
	if err != nil {
		panic(err)
	}
	return f
}
