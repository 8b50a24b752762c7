// Package inventory implements the stock catalog: a set of items keyed by
// SKU, owned by a single System value.
//
// # Guarantees
//
//   - Quantities never go negative. An adjustment that would do so fails
//     with a VALIDATION error and leaves the item untouched.
//   - SKUs are unique and NFC-normalised, so canonically-equal spellings
//     address the same item.
//   - Quantity changes go through typed operations only (AddItem,
//     AdjustQuantity, RemoveItem). User text is converted with ParseQuantity,
//     ParseDelta and ParsePrice, which accept plain decimal numbers and
//     nothing else.
//   - Every failure is an *Error carrying one of three codes: VALIDATION,
//     NOT_FOUND or PERSISTENCE.
//
// # Persistence
//
// A System loads from and saves to a Backend. FileBackend stores the catalog
// as CSV or canonical JSON in UTF-8; saves go through a temp file and an
// atomic rename so readers never observe a partial write. A failed load
// leaves the in-memory catalog unchanged.
//
// All public System methods serialise on one mutex and are safe for
// concurrent use.
package inventory
