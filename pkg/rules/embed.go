package rules

import (
	"embed"
	"io/fs"
)

//go:embed defaults/* legacy/*
var embeddedRules embed.FS

// EmbeddedFS returns the bundled default rule files. Callers may pass this
// filesystem to LoadFS to use the default protein rule set.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedRules, "defaults")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Default returns the parsed default protein rule set.
func Default() (map[string]string, error) {
	return LoadFS(EmbeddedFS())
}

// LegacyFS returns the bundled legacy rule files, written against the
// filter-extended syntax (sort/join) handled by the pongo engine.
func LegacyFS() fs.FS {
	sub, err := fs.Sub(embeddedRules, "legacy")
	if err != nil {
		panic(err)
	}
	return sub
}

// Legacy returns the parsed legacy rule set for the pongo engine.
func Legacy() (map[string]string, error) {
	return LoadFS(LegacyFS())
}
