// Package graph provides pure graph algorithms over prerequisite edge lists.
package graph

import "github.com/siherrmann/curriculab/model"

// CycleResult reports whether a directed cycle exists and, if so, one witness
// path. The path lists the nodes along the cycle with the starting node
// repeated at the end, e.g. [a b c a].
type CycleResult struct {
	HasCycle bool     `json:"hasCycle"`
	Path     []string `json:"path"`
}

const (
	colorUnvisited = iota
	colorOnStack
	colorDone
)

type frame struct {
	node string
	next int
}

// DetectCycle runs an iterative depth-first search with three-color marking
// over the given edges. Every endpoint is treated as a node even if it has no
// outgoing edges. Runs in O(V+E); an explicit stack avoids recursion-depth
// limits on large graphs.
func DetectCycle(edges []model.PrereqEdge) CycleResult {
	adjacency := make(map[string][]string, len(edges))
	var order []string
	known := make(map[string]bool, len(edges)*2)
	addNode := func(id string) {
		if !known[id] {
			known[id] = true
			order = append(order, id)
		}
	}
	for _, e := range edges {
		addNode(e.Source)
		addNode(e.Target)
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
	}

	color := make(map[string]int, len(order))
	for _, root := range order {
		if color[root] != colorUnvisited {
			continue
		}

		stack := []frame{{node: root}}
		path := []string{root}
		pathIndex := map[string]int{root: 0}
		color[root] = colorOnStack

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			targets := adjacency[top.node]

			if top.next >= len(targets) {
				color[top.node] = colorDone
				stack = stack[:len(stack)-1]
				path = path[:len(path)-1]
				delete(pathIndex, top.node)
				continue
			}

			target := targets[top.next]
			top.next++

			switch color[target] {
			case colorUnvisited:
				color[target] = colorOnStack
				pathIndex[target] = len(path)
				path = append(path, target)
				stack = append(stack, frame{node: target})
			case colorOnStack:
				if idx, ok := pathIndex[target]; ok {
					cycle := make([]string, 0, len(path)-idx+1)
					cycle = append(cycle, path[idx:]...)
					cycle = append(cycle, target)
					return CycleResult{HasCycle: true, Path: cycle}
				}
				// Target marked on-stack but missing from the recorded path;
				// should not happen, report the back edge as a minimal witness.
				return CycleResult{HasCycle: true, Path: []string{top.node, target}}
			}
		}
	}

	return CycleResult{HasCycle: false, Path: nil}
}
