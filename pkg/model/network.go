// Package model holds the distribution-network graph the Calculator reads:
// blocks (supplies, conductors, transformers, loads, wiring structure) and
// the undirected connections between them.
//
// The network may contain cycles through structural blocks (terminals,
// busbars, rows); valid power paths must be acyclic per source, which the
// calculation engine enforces. A Network is read-only during calculation and
// may be read concurrently once built.
package model

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrDuplicateBlockID is returned by [Network.AddBlock] when a block
	// with the same ID already exists. Block IDs are unique per network.
	ErrDuplicateBlockID = errors.New("duplicate block ID")

	// ErrUnknownBlock is returned by [Network.Block] and [Network.Connect]
	// when no block with the given ID exists.
	ErrUnknownBlock = errors.New("unknown block")

	// ErrSelfConnection is returned by [Network.Connect] when both ends of
	// a connection name the same block.
	ErrSelfConnection = errors.New("connection endpoints must differ")
)

// Connection is an undirected edge between two block IDs.
type Connection struct {
	Left  int
	Right int
}

// Network is the block graph a calculation runs against.
//
// The zero value is not usable - use New to create a valid Network.
// Network is not safe for concurrent mutation; once built it may be read
// from any number of goroutines.
type Network struct {
	blocks      map[int]*Block
	connections []Connection
	adjacency   map[int][]int // blockID -> connected block IDs, in insertion order
}

// New creates an empty network.
func New() *Network {
	return &Network{
		blocks:    make(map[int]*Block),
		adjacency: make(map[int][]int),
	}
}

// AddBlock adds a block to the network.
// Returns ErrDuplicateBlockID if the ID is already in use.
func (n *Network) AddBlock(b Block) error {
	if _, exists := n.blocks[b.ID]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicateBlockID, b.ID)
	}
	block := &b
	n.blocks[block.ID] = block
	return nil
}

// Connect adds an undirected connection between two existing blocks.
// Returns ErrUnknownBlock if either endpoint does not exist, or
// ErrSelfConnection if both endpoints are the same block. Parallel
// connections between the same pair are ignored.
func (n *Network) Connect(left, right int) error {
	if left == right {
		return fmt.Errorf("%w: %d", ErrSelfConnection, left)
	}
	if _, ok := n.blocks[left]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBlock, left)
	}
	if _, ok := n.blocks[right]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBlock, right)
	}
	if slices.Contains(n.adjacency[left], right) {
		return nil
	}
	n.connections = append(n.connections, Connection{Left: left, Right: right})
	n.adjacency[left] = append(n.adjacency[left], right)
	n.adjacency[right] = append(n.adjacency[right], left)
	return nil
}

// Block returns the block with the given ID.
func (n *Network) Block(id int) (*Block, error) {
	b, ok := n.blocks[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBlock, id)
	}
	return b, nil
}

// Blocks returns all blocks in ascending ID order.
func (n *Network) Blocks() []*Block {
	ids := slices.Sorted(maps.Keys(n.blocks))
	out := make([]*Block, len(ids))
	for i, id := range ids {
		out[i] = n.blocks[id]
	}
	return out
}

// Connections returns a copy of all connections in insertion order.
func (n *Network) Connections() []Connection {
	return slices.Clone(n.connections)
}

// Neighbors returns the IDs of blocks connected to the given block, in the
// order the connections were added. The returned slice is the network's own
// adjacency list - treat it as read-only.
func (n *Network) Neighbors(id int) []int { return n.adjacency[id] }

// BlockCount returns the number of blocks in the network.
func (n *Network) BlockCount() int { return len(n.blocks) }

// ConnectionCount returns the number of connections in the network.
func (n *Network) ConnectionCount() int { return len(n.connections) }

// Supplies returns all supply blocks in ascending ID order. Path
// construction visits supplies in this order, making calculation output
// deterministic.
func (n *Network) Supplies() []*Block {
	var out []*Block
	for _, b := range n.Blocks() {
		if b.Kind == KindSupply {
			out = append(out, b)
		}
	}
	return out
}
