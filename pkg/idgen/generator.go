package idgen

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// Generator produces offer identifiers that are unique within a process.
type Generator interface {
	OfferID() string
}

// SnowflakeGenerator implements Generator with Twitter Snowflake IDs, so
// offer IDs stay unique across concurrent searches without coordination.
type SnowflakeGenerator struct {
	node *snowflake.Node
	mu   sync.Mutex
}

// NewSnowflakeGenerator initializes an ID generator. nodeID must be unique
// per server instance (0-1023) to prevent collisions.
func NewSnowflakeGenerator(nodeID int64) (*SnowflakeGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}

	return &SnowflakeGenerator{node: node}, nil
}

func (g *SnowflakeGenerator) OfferID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return "offer-" + g.node.Generate().Base58()
}
