package registry

import (
	"fmt"
	"sort"
)

// fallbackGraph tracks which interpreters may hand a run to which others.
// An edge from -> to means from.Fallback can delegate to to.
type fallbackGraph struct {
	nodes    map[string]struct{}
	incoming map[string]map[string]struct{}
	outgoing map[string]map[string]struct{}
}

func newFallbackGraph() *fallbackGraph {
	return &fallbackGraph{
		nodes:    make(map[string]struct{}),
		incoming: make(map[string]map[string]struct{}),
		outgoing: make(map[string]map[string]struct{}),
	}
}

func (g *fallbackGraph) addNode(name string) {
	if _, exists := g.nodes[name]; exists {
		return
	}

	g.nodes[name] = struct{}{}
	g.incoming[name] = make(map[string]struct{})
	g.outgoing[name] = make(map[string]struct{})
}

func (g *fallbackGraph) addEdge(from, to string) {
	g.addNode(from)
	g.addNode(to)

	g.outgoing[from][to] = struct{}{}
	g.incoming[to][from] = struct{}{}
}

// detectCycle returns one cycle if present or nil when the graph is acyclic.
func (g *fallbackGraph) detectCycle() []string {
	visited := make(map[string]bool)
	stack := make(map[string]bool)
	path := []string{}

	var cycle []string
	var dfs func(node string) bool

	dfs = func(node string) bool {
		visited[node] = true
		stack[node] = true
		path = append(path, node)

		for _, target := range g.targets(node) {
			if !visited[target] {
				if dfs(target) {
					return true
				}
			} else if stack[target] {
				idx := len(path) - 1
				for idx >= 0 && path[idx] != target {
					idx--
				}
				if idx >= 0 {
					cycle = append([]string{}, path[idx:]...)
					return true
				}
			}
		}

		stack[node] = false
		path = path[:len(path)-1]
		return false
	}

	for _, node := range g.sortedNodes() {
		if !visited[node] {
			if dfs(node) {
				break
			}
		}
	}

	return cycle
}

// topologicalSort returns nodes so that every fallback target precedes the
// interpreters delegating to it.
func (g *fallbackGraph) topologicalSort() ([]string, error) {
	remaining := make(map[string]int, len(g.nodes))
	for node := range g.nodes {
		remaining[node] = len(g.outgoing[node])
	}

	queue := make([]string, 0, len(g.nodes))
	for node, targets := range remaining {
		if targets == 0 {
			queue = append(queue, node)
		}
	}
	sort.Strings(queue)

	result := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, current)

		for _, source := range g.sources(current) {
			remaining[source]--
			if remaining[source] == 0 {
				queue = append(queue, source)
				sort.Strings(queue)
			}
		}
	}

	if len(result) != len(g.nodes) {
		if cycle := g.detectCycle(); len(cycle) > 0 {
			return nil, ErrCircularFallback{Cycle: cycle}
		}
		return nil, fmt.Errorf("fallback graph contains unresolved nodes")
	}

	return result, nil
}

func (g *fallbackGraph) targets(node string) []string {
	return sortedKeys(g.outgoing[node])
}

func (g *fallbackGraph) sources(node string) []string {
	return sortedKeys(g.incoming[node])
}

func (g *fallbackGraph) sortedNodes() []string {
	return sortedKeys(g.nodes)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
