package arweave

type NetworkInfo struct {
	Network          string `json:"network"`
	Version          int64  `json:"version"`
	Release          int64  `json:"release"`
	Height           int64  `json:"height"`
	Current          string `json:"current"`
	Blocks           int64  `json:"blocks"`
	Peers            int64  `json:"peers"`
	QueueLength      int64  `json:"queue_length"`
	NodeStateLatency int64  `json:"node_state_latency"`
}

// Confirmation info returned for an accepted transaction
type TxStatus struct {
	BlockHeight           int64        `json:"block_height"`
	BlockIndepHash        Base64String `json:"block_indep_hash"`
	NumberOfConfirmations int64        `json:"number_of_confirmations"`
}

// Body of POST /chunk
type ChunkUpload struct {
	DataRoot Base64String `json:"data_root"`
	DataSize string       `json:"data_size"`
	DataPath Base64String `json:"data_path"`
	Offset   string       `json:"offset"`
	Chunk    Base64String `json:"chunk"`
}

type Tag struct {
	Name  Base64String `json:"name"`
	Value Base64String `json:"value"`
}

func NewTag(name, value string) Tag {
	return Tag{Name: Base64String(name), Value: Base64String(value)}
}
