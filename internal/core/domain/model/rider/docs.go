// Package rider contains the rider aggregate and its assignment records.
//
// A Rider tracks identity, shift availability, and the last known position
// used for proximity-based dispatch. An Assignment is the durable fact that
// a rider was matched to an order; cancellation and reassignment release
// assignments instead of deleting them, keeping dispatch history intact.
package rider
