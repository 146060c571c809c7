// Package louvaingraph defines the weighted-adjacency graph the Louvain
// engine operates on, and the parallel builder that turns a sorted edge
// array into one.
package louvaingraph

// Vertex is one node of the graph: a stable ID, the community it currently
// belongs to, a neighbor→weight adjacency, and a cached degree equal to the
// sum of neighbor weights (self-loops counted with weight 2).
type Vertex struct {
	ID        uint32
	Community uint32
	Neighbors map[uint32]uint64
	Degree    uint64
}

// Community is a disjoint set of vertex IDs identified by one member's ID,
// with a cached degree equal to the sum of its members' degrees.
type Community struct {
	ID      uint32
	Members map[uint32]struct{}
	Degree  uint64
}

// Graph owns a set of vertices and the communities partitioning them. It is
// structurally immutable once built: only Vertex.Community and the two
// Community maps mutate during the Louvain inner loop.
type Graph struct {
	Epoch       int
	TotalDegree uint64
	Vertices    map[uint32]*Vertex
	Communities map[uint32]*Community
}

// NumVertices returns the number of vertices in the graph.
func (g *Graph) NumVertices() int { return len(g.Vertices) }

// NumCommunities returns the number of non-empty communities in the graph.
func (g *Graph) NumCommunities() int { return len(g.Communities) }

// newSingleton allocates an empty graph at the given epoch. Every vertex
// later added through seedVertex gets its own singleton community, the
// state produced immediately after construction or contraction.
func newSingleton(epoch int) *Graph {
	return &Graph{
		Epoch:       epoch,
		Vertices:    make(map[uint32]*Vertex),
		Communities: make(map[uint32]*Community),
	}
}

// NewGraph allocates an empty graph at the given epoch. Exported so the
// Louvain engine can build the contracted graph of the next epoch without
// reaching into this package's internals.
func NewGraph(epoch int) *Graph { return newSingleton(epoch) }

// seedVertex ensures a vertex with the given ID exists, creating both the
// vertex and its singleton community on first reference.
func (g *Graph) seedVertex(id uint32) *Vertex {
	if v, ok := g.Vertices[id]; ok {
		return v
	}
	v := &Vertex{ID: id, Community: id, Neighbors: make(map[uint32]uint64)}
	g.Vertices[id] = v
	g.Communities[id] = &Community{ID: id, Members: map[uint32]struct{}{id: {}}}
	return v
}

// EnsureVertex is the exported form of seedVertex, used by the Louvain
// engine's contraction step to seed one super-vertex per surviving
// community.
func (g *Graph) EnsureVertex(id uint32) *Vertex { return g.seedVertex(id) }
