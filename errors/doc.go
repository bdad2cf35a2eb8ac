// Package errors provides structured error types for the memstream library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes the context that matters when chasing
// memory bugs: the offending address and the expected/actual word values for
// corruption failures, plus a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDestroy, errors.KindCorruption).
//		Address(addr).
//		Words(arenaMagic, found).
//		Detail("arena header magic mismatch").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Corruption(errors.PhaseDestroy, "boundary guard", addr, want, got)
//	err := errors.Overflow(errors.PhaseQueue, live, added, capacity)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
