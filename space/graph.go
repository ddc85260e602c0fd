package space

import (
	"math"

	"github.com/pkg/errors"
)

// Edge is a weighted, directed connection between two graph nodes. Supply
// both (u,v) and (v,u) for an undirected edge, matching
// ridepy.util.spaces.Graph's default of an undirected weighted graph.
type Edge struct {
	From, To int
	Weight   float64
}

// Graph is a discrete transport space: a location is a node index.
// Travel times are derived from all-pairs shortest paths (Floyd-Warshall),
// matching ridepy.util.spaces.Graph._update_distance_cache. Locations
// between nodes are possible while in transit; InterpTime reports them as
// the next node on the path plus the jump_time until that node is reached
// (zero when the vehicle is exactly at a node), per spec.md §4.1.
type Graph struct {
	Velocity float64
	nodes    []int
	dist     map[int]map[int]float64
	next     map[int]map[int]int // next hop on shortest path, walked by InterpTime
}

// NewGraph builds shortest-path tables over the given nodes and edges.
// Triangle inequality is assumed by dispatcher pruning but is not enforced
// here, matching spec.md §4.1.
func NewGraph(nodes []int, edges []Edge, velocity float64) (*Graph, error) {
	if velocity <= 0 {
		velocity = 1
	}
	if len(nodes) == 0 {
		return nil, errors.New("space: graph requires at least one node")
	}
	dist := make(map[int]map[int]float64, len(nodes))
	next := make(map[int]map[int]int, len(nodes))
	for _, u := range nodes {
		dist[u] = make(map[int]float64, len(nodes))
		next[u] = make(map[int]int, len(nodes))
		for _, v := range nodes {
			if u == v {
				dist[u][v] = 0
			} else {
				dist[u][v] = math.Inf(1)
			}
			next[u][v] = -1
		}
	}
	for _, e := range edges {
		if _, ok := dist[e.From]; !ok {
			return nil, errors.Errorf("space: edge references unknown node %d", e.From)
		}
		if _, ok := dist[e.To]; !ok {
			return nil, errors.Errorf("space: edge references unknown node %d", e.To)
		}
		if e.Weight < dist[e.From][e.To] {
			dist[e.From][e.To] = e.Weight
			next[e.From][e.To] = e.To
		}
	}
	for _, k := range nodes {
		for _, i := range nodes {
			for _, j := range nodes {
				if dist[i][k]+dist[k][j] < dist[i][j] {
					dist[i][j] = dist[i][k] + dist[k][j]
					next[i][j] = next[i][k]
				}
			}
		}
	}
	return &Graph{Velocity: velocity, nodes: nodes, dist: dist, next: next}, nil
}

func (g *Graph) D(u, v Location) float64 {
	ui, vi := u.(int), v.(int)
	return g.dist[ui][vi]
}

func (g *Graph) T(u, v Location) float64 {
	return g.D(u, v) / g.Velocity
}

// InterpTime walks the shortest path from u toward v hop by hop until it
// finds the first node whose own travel time to v is <= timeToDest: a
// vehicle "in transit" on a graph edge is considered to be at its
// destination node only once jumpTime has elapsed, per spec.md §4.1. This
// walk (rather than reporting only the first hop) is what makes the result
// correct after a time advance spanning more than one edge of the shortest
// path, matching ridepy.util.spaces.Graph.interp_time.
func (g *Graph) InterpTime(u, v Location, timeToDest float64) (Location, float64) {
	ui, vi := u.(int), v.(int)
	if ui == vi {
		return vi, 0
	}
	cur := ui
	for {
		hop := g.next[cur][vi]
		if hop == -1 {
			return vi, 0
		}
		remaining := g.T(hop, vi)
		if remaining <= timeToDest {
			return hop, timeToDest - remaining
		}
		cur = hop
	}
}

func (g *Graph) RandomPoint(rng Rand) Location {
	return g.nodes[rng.Intn(len(g.nodes))]
}
