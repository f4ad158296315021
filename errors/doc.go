// Package errors provides standardized error handling patterns for fluxkit.
//
// # Overview
//
// The errors package implements a three-class error classification system:
// Transient (temporary, retryable by an embedding caller), Invalid (bad
// input or configuration, non-retryable), and Fatal (programming defects
// such as stream protocol violations, stop processing).
//
// The stream core itself has no retry policy anywhere - all stages are pure
// and stateless per item, so retrying is a caller-level concern. The
// Transient class exists for callers that embed fluxkit in larger systems.
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// Three wrapper functions provide classification-aware wrapping:
//
//	errors.WrapTransient(err, "Component", "Method", "action")
//	errors.WrapInvalid(err, "Component", "Method", "action")
//	errors.WrapFatal(err, "Component", "Method", "action")
//
// The generic Wrap() function adds context without setting a class.
//
// # Standard Error Variables
//
// Pre-defined variables cover the conditions the stream core can produce:
//
//   - Ambient context: ErrKeyNotFound (strict lookup on an absent key;
//     recover by using GetOrDefault)
//   - Protocol: ErrProtocolViolation, ErrInvalidDemand, ErrTransformFailed
//   - Configuration: ErrInvalidConfig, ErrMissingConfig
//   - Registry: ErrAlreadyRegistered, ErrUnknownOperation
//
// All types support errors.Is, errors.As and wrapping chains.
package errors
