// Package config merges consumer-supplied overrides into component default
// configuration. Two strategies are supported: "merge" deep-merges override
// values into the defaults, "override" replaces each overridden subtree
// wholesale. Override documents are plain YAML so applications can ship them
// as assets.
package config
