// Package backup implements the configuration backup and restore engine
// for cfgvault.
//
// # Backup sets
//
// Each backup operation produces a backup set: a timestamped directory
// holding one copied payload per backed up item plus a JSON manifest
// (backup-manifest.json) describing them. Sets live under a root directory
// carried by [Manager]:
//
//	<root>/
//	└── 20240601_020000/
//	    ├── backup-manifest.json
//	    ├── gitconfig.backup
//	    └── config.backup
//
// Sets are created empty by [Manager.CreateSet] and grow by appending
// entries through [Set.BackupItem]; entries are never removed or
// reordered, and sets are never deleted implicitly — removal is an
// explicit, confirmed operation on [Manager.RemoveSet].
//
// # Restoring
//
// [Manager.Restore] runs a staged restore: load the manifest, optionally
// validate the archive first, optionally snapshot the current live state
// into a new set (the restore point), filter entries by substring
// patterns, then restore entry by entry. Per-entry failures are collected
// into the [RestoreResult] and never abort later entries; there is no
// rollback. Set-level problems abort before any file is touched.
//
// # Integrity
//
// [Set.Validate] checks each entry's payload for existence and, for
// files, compares the on-disk size against the size recorded at capture
// time. It never reads or writes the original paths.
//
// # Concurrency
//
// The engine is single-process and sequential. The manifest is rewritten
// whole on every append, with no file locking; a Set handle must have at
// most one writer at a time, and interleaving appends, validation, and
// restores on the same set from multiple processes is unsafe.
package backup
