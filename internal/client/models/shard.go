package models

// ShardStatus is one shard's health as reported on the status channel.
type ShardStatus struct {
	// Shard is the shard identifier ("host:port"); it is the merge key.
	Shard string `json:"shard"`

	Healthy bool `json:"healthy"`

	// Size is the shard's stored byte count.
	Size int64 `json:"size"`

	// LastHeartbeat is the unix time of the last successful probe, if sent.
	LastHeartbeat float64 `json:"last_heartbeat,omitempty"`
}
