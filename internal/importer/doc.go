// Package importer loads administrator profiles from a directory tree of
// JSON exports into the profile store. Imports are idempotent: records whose
// dedup key is already present are counted as duplicates and left untouched.
package importer
