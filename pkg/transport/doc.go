// Package transport defines the Transport interface namespace adapters call
// through to reach the network, and a default net/http implementation of
// it. Adapters never import net/http directly; Transport is the sole test
// seam, backed by one concrete HTTP implementation with connection pooling
// and a configurable timeout.
package transport
