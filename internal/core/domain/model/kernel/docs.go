// Package kernel provides core domain primitives shared across the order
// coordination domain model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - Phone: a customer phone number with trunk-prefix normalization and masking
//   - TrackingCode: the public order reference used by payment and tracking flows
//
// These primitives enforce domain invariants at construction time. They are
// immutable and thread-safe, making them suitable for concurrent use.
package kernel
