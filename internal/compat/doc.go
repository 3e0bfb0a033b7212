// Package compat decides whether a module's declared capability set satisfies
// a requested interface identity.
//
// A module is compatible with a requested interface when it either declares
// that exact identity, or declares some interface whose transitive ancestor
// closure contains it. Ancestor information comes from a ParentSource, which
// is produced by discovery (typically the manifest model) and is immutable
// for the lifetime of the resolver.
//
// Discovery can register hundreds of modules, and every lookup would
// otherwise re-walk the interface hierarchy. The resolver therefore memoizes
// two things: the full ancestor closure per interface identity, and the final
// verdict per (module, interface) pair. Both caches follow compute-once-per-key
// semantics: closures are pure functions of the immutable ParentSource, so
// concurrent writers converge on the same value and an idempotent overwrite
// is safe.
package compat
