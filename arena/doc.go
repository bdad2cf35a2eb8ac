// Package arena implements a single-block bump allocator.
//
// An arena serves many same-lifetime allocations out of one contiguous
// block: each Alloc slices off a span by advancing a cursor, Reset reclaims
// the whole block in O(1), and Destroy frees it as one unit. Out-of-space
// is a soft condition signalled by a nil return, never an error, so the
// allocation path stays branch-cheap.
//
// # Corruption Detection
//
// Every arena carries a header magic word that is validated by Destroy and
// by the read-only queries; it catches use-after-destroy and header
// overwrites in all builds. Builds tagged "memguard" additionally keep a
// sentinel word just past the bump cursor, so a caller that writes beyond
// its most recent allocation is reported with the offending address and the
// expected/actual word values. The guard is strictly a debug facility:
// untagged builds reserve no extra space and skip the check entirely.
//
// # Concurrency
//
// No operation locks. An Arena value has a single logical owner at a time.
package arena
