package idgen

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

const (
	OrderPrefix   = "ORD-"
	InvoicePrefix = "INV-"
)

// Generator hands out entity ids and human-readable document numbers
type Generator interface {
	NewID() string
	OrderNumber() string
	InvoiceNumber() string
}

// SnowflakeGenerator uses UUIDs for ids and snowflake ids for document
// numbers. Snowflake ids carry a per-millisecond sequence, so numbers stay
// unique and ordered under rapid creation.
type SnowflakeGenerator struct {
	node *snowflake.Node
}

// NewSnowflakeGenerator creates a generator for the given node (0-1023)
func NewSnowflakeGenerator(nodeID int64) (*SnowflakeGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node %d: %w", nodeID, err)
	}
	return &SnowflakeGenerator{node: node}, nil
}

func (g *SnowflakeGenerator) NewID() string {
	return uuid.NewString()
}

func (g *SnowflakeGenerator) OrderNumber() string {
	return OrderPrefix + g.node.Generate().String()
}

func (g *SnowflakeGenerator) InvoiceNumber() string {
	return InvoicePrefix + g.node.Generate().String()
}

// SequenceGenerator produces predictable ids and zero-padded numbers
// (ORD-000001, INV-000001). Used by tests and single-process tooling.
type SequenceGenerator struct {
	mu      sync.Mutex
	ids     int
	orders  int
	invoice int
}

func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{}
}

func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ids++
	return fmt.Sprintf("id-%d", g.ids)
}

func (g *SequenceGenerator) OrderNumber() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.orders++
	return fmt.Sprintf("%s%06d", OrderPrefix, g.orders)
}

func (g *SequenceGenerator) InvoiceNumber() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.invoice++
	return fmt.Sprintf("%s%06d", InvoicePrefix, g.invoice)
}
