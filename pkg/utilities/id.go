package utilities

import (
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// NewKSUID generates a new globally unique KSUID string. Used as the
// primary key for tech-stack documents.
func NewKSUID() string {
	return ksuid.New().String()
}

// NewRequestID generates a sortable numeric ID for per-request log
// correlation. The snowflake node comes from SNOWFLAKE_NODE; if the node
// cannot be initialized it falls back to a KSUID string so a unique ID is
// always returned.
func NewRequestID() string {
	nodeID := int64(1)
	if v := os.Getenv("SNOWFLAKE_NODE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			nodeID = n
		}
	}
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return NewKSUID()
	}
	return node.Generate().String()
}
