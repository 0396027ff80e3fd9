// Package catalog loads the declarative list of provisioning tasks.
//
// A catalog is a TOML or YAML document holding an ordered list of entries.
// Each entry names exactly one probe kind and one action kind, plus optional
// guards. Build turns entries into types.Task values wired to the probes and
// actions packages. A default Ubuntu workstation catalog is embedded in the
// binary and used when no catalog file is configured.
package catalog
