package cluster

import "context"

// IdentifyQueue gates shard identify handshakes through a single admission
// point, so a cluster (or several processes sharing credentials) never
// exceeds the platform's identify throughput limit. The contract per spec
// §4.2.3: admissions are globally serialized across every shard sharing
// the queue; no fairness beyond FIFO is required; a caller abandoning its
// wait (context cancellation) must not permanently starve later
// requesters.
type IdentifyQueue interface {
	// Request blocks until shardID may send its identify packet, or ctx is
	// cancelled first.
	Request(ctx context.Context, shardID int) error
}
