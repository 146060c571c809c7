package louvain

import "github.com/vxgraph/louvain/internal/louvaingraph"

// Modularity computes the graph-wide modularity Q as the sum of each
// non-empty community's contribution:
//
//	Q(C) = e_in/m - (a_C/m)^2
//
// where e_in is the sum of directed edge weights with both endpoints in C
// (so an internal undirected edge contributes 2, once per direction) and
// a_C is the sum of degrees of C's members. m is the graph's total degree.
//
// Computed in double precision; callers must ensure g.TotalDegree > 0.
func Modularity(g *louvaingraph.Graph) float64 {
	m := float64(g.TotalDegree)
	var q float64
	for _, c := range g.Communities {
		if len(c.Members) == 0 {
			continue
		}
		eIn := internalWeight(g, c)
		aC := float64(c.Degree)
		q += float64(eIn)/m - (aC/m)*(aC/m)
	}
	return q
}

// internalWeight sums the directed edge weight between members of c,
// i.e. Σ_{v ∈ c} Σ_{u ∈ c} weight(v, u).
func internalWeight(g *louvaingraph.Graph, c *louvaingraph.Community) uint64 {
	var total uint64
	for id := range c.Members {
		v := g.Vertices[id]
		for neighbor, w := range v.Neighbors {
			if _, ok := c.Members[neighbor]; ok {
				total += w
			}
		}
	}
	return total
}
