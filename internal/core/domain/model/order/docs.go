// Package order implements the order aggregate and its lifecycle state
// machine: the states an order moves through from placement to delivery,
// which actor may drive each transition, and the rider-assignment rules that
// bind exactly one rider to a ready order.
//
// The aggregate records domain events for every committed mutation; the
// persistence layer writes state and events in one transaction (an outbox),
// so downstream consumers never observe an event for a change that did not
// happen, and never miss one that did.
package order
