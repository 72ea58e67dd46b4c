// Package types defines the public model shared by the compound file reader,
// the structured-storage provider and the property reporter.
//
// Design goals:
//   - Property values are a sealed sum type (Value) with one concrete type
//     per rendering rule; consumers switch on the concrete type and treat
//     anything else as unsupported.
//   - Format identifiers and type tags reuse go-ole's GUID and VT so they
//     print the same way the platform does.
//   - Typed errors with stable categories and a platform status code, so a
//     failure can be reported as "description (0x80030002)" without string
//     matching.
package types
