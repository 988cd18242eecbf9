// Package order contains the order aggregate: the delivery order record, its
// fulfillment lifecycle state machines, and the append-only event trail.
//
// The aggregate is the single consistency boundary for order mutations. All
// state changes go through guarded methods; callers never write fields
// directly, and every successful mutation is paired with exactly one Event
// appended in the same unit of work.
//
// Two independent state machines live on the aggregate:
//   - Status: received -> processing -> out_for_delivery -> completed,
//     forward-only, one step at a time unless an administrative override
//     explicitly skips ahead (the skip itself is recorded as an event).
//   - AckStatus: none -> pending -> accepted|rejected, driven by pharmacy
//     assignment and acknowledgement; any reassignment resets it to pending.
package order
