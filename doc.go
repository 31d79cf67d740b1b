// Package corpus is a content-addressable, versioned content store.
//
// Each logical document is identified by a caller-chosen _path_
// and carries an independent, append-only history of immutable
// snapshots called _versions_.
// A version's id is the sha2-256 hash of its encoded content bytes,
// hex-encoded to a fixed-length string.
// Because the id is computed from content,
// writing the same bytes twice under one path yields the same version id,
// and a put is idempotent.
//
// Versions are linked by optional _parent_ references,
// forming, per path, a forest of trees rooted at parent-less versions.
// Two versions may share a parent (a branch);
// no version has more than one parent (no merges).
// Deciding which branch is "current" is the caller's job;
// this package only reports versions in reverse chronological order.
//
// Storage is pluggable through the Backend interface,
// with implementations for in-process maps (store/mem),
// a local directory tree (store/file),
// Google Cloud Storage (store/gcs),
// Postgresql (store/pg),
// and Sqlite (store/sqlite3),
// plus composable wrappers for logging (store/logging)
// and read-through caching (store/lru).
// A Store binds one Backend to one Codec and one store namespace;
// a Corpus is a registry of named store definitions sharing a Backend.
package corpus
