// Package frontend contains the request-broker core: the iteration engine
// that sizes and publishes pilot demand, and the lifecycle manager that
// wraps it in a guarded, signal-driven polling loop.
//
// The loop's failure policy is asymmetric on purpose: an error on the very
// first pass is treated as a broken deployment and is fatal, while errors
// on later passes are assumed transient, logged, and tolerated.
package frontend
