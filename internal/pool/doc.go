// Package pool talks to the factory-pool collector: it discovers the
// glideins a factory currently offers and publishes or retracts this
// frontend's demand requests against them.
//
// Requests on the collector are namespaced by frontend identity plus
// glidein name, so multiple frontends can share one pool without
// clobbering each other's records.
package pool
