// Package registry implements the lazy service module registry: it records
// the metadata of every discovered module, materializes module instances on
// demand, and answers interface-based lookups in priority order.
//
// # Core Concepts
//
//   - Seed: the immutable discovery output for one module type, consisting of
//     its identity, classification metadata, laziness, priority, and the set
//     of interface identities it implements.
//
//   - Descriptor: a Seed bound to a Factory, plus the mutable lifecycle state
//     owned by the instantiation engine. A descriptor moves through
//     Pending → Initializing → {Initialized | Failed}; Failed is retryable on
//     a later lookup, Initialized is terminal and the instance it holds never
//     changes afterwards (singleton-per-process).
//
//   - Binder: the bridge between discovery metadata and compiled Go code. It
//     maps a module identity to the Factory that constructs it, registered by
//     Module values compiled into the binary.
//
//   - Registry: the lookup surface. First, All, ByCategory, ByGroup and
//     Instance all funnel through the same path: select compatible
//     descriptors, ensure each is materialized, return the surviving
//     instances sorted by priority (descending, discovery order on ties).
//
// # Concurrency
//
// Any number of goroutines may call lookups concurrently, including while
// Init is still running. Each descriptor carries its own lock and completion
// signal so unrelated modules initialize in parallel; a caller that finds a
// descriptor mid-initialization on another goroutine waits on its completion
// signal up to a bounded timeout. Construction failures, circular
// dependencies and wait timeouts are converted to descriptor state plus an
// absent result; the only error a lookup returns is NotInitializedError when
// the registry has not been initialized yet.
package registry
