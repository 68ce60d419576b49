package arweave

type ContextKey string

const (
	// Overrides the node url for a single request
	ContextForcePeer ContextKey = "force_peer"

	// Turns off falling back to alternative peers
	ContextDisablePeers ContextKey = "disable_peers"
)
