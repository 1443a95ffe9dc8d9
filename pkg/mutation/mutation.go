// Package mutation holds in-place transformations of statement graphs:
// merging, collapsing the central dogma, inference of missing
// transcription and translation edges, and pruning.
package mutation

import (
	"fmt"
	"maps"
	"slices"

	"github.com/belgraph/reifier/pkg/bel"
	"github.com/belgraph/reifier/pkg/filter"
	"github.com/belgraph/reifier/pkg/logger"
)

// LeftMerge adds to g the nodes and edges of h that g lacks. A qualified
// edge of h is skipped when g already holds an edge with equal data between
// the same pair; an unqualified edge is skipped when g has its key.
func LeftMerge(g, h *bel.Graph) {
	for _, n := range h.Nodes() {
		g.AddNode(n)
	}

	for _, e := range h.Edges() {
		u, v := e.Source.Key(), e.Target.Key()
		if !e.Qualified() {
			if !g.HasEdge(u, v, e.Key) {
				g.AddEdgeWithKey(e.Source, e.Target, e.Key, e.Data)
			}
			continue
		}

		duplicate := false
		for _, existing := range g.EdgesBetween(u, v) {
			if existing.Data.Equal(e.Data) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			g.AddEdge(e.Source, e.Target, e.Data)
		}
	}
}

// CollapseNodes moves every edge of each value node onto its key node and
// removes the value nodes. Self loops left behind are deleted. Key nodes
// missing from g are skipped.
func CollapseNodes(g *bel.Graph, collapse map[string][]string) {
	for _, key := range slices.Sorted(maps.Keys(collapse)) {
		target, ok := g.Node(key)
		if !ok {
			logger.Warn("[Mutation] Collapse target not in graph", "node", key)
			continue
		}

		for _, value := range collapse[key] {
			if value == key || !g.HasNode(value) {
				continue
			}
			moveEdges(g, value, target)
			_ = g.RemoveNode(value)
		}
	}

	removeSelfLoops(g)
}

func moveEdges(g *bel.Graph, from string, to bel.Node) {
	for _, succ := range g.Successors(from) {
		for _, e := range g.EdgesBetween(from, succ) {
			target := e.Target
			if succ == from {
				target = to
			}
			copyEdge(g, to, target, e)
		}
	}
	for _, pred := range g.Predecessors(from) {
		if pred == from {
			continue
		}
		for _, e := range g.EdgesBetween(pred, from) {
			copyEdge(g, e.Source, to, e)
		}
	}
}

func copyEdge(g *bel.Graph, u, v bel.Node, e bel.Edge) {
	if e.Qualified() {
		g.AddEdge(u, v, e.Data)
		return
	}
	if !g.HasEdge(u.Key(), v.Key(), e.Key) {
		g.AddEdgeWithKey(u, v, e.Key, e.Data)
	}
}

func removeSelfLoops(g *bel.Graph) {
	for _, e := range g.Edges() {
		k := e.Source.Key()
		if k == e.Target.Key() {
			_ = g.RemoveEdge(k, k, e.Key)
		}
	}
}

// BuildCentralDogmaCollapseDict maps each protein to the RNA translated to
// it and the genes transcribed to that RNA. RNA without a protein collects
// its genes itself.
func BuildCentralDogmaCollapseDict(g *bel.Graph) map[string][]string {
	sets := make(map[string]map[string]struct{})
	add := func(key, value string) {
		if sets[key] == nil {
			sets[key] = make(map[string]struct{})
		}
		sets[key][value] = struct{}{}
	}

	edges := g.Edges()
	rnaToProtein := make(map[string]string)
	for _, e := range edges {
		if e.Data.Relation != bel.TranslatedTo {
			continue
		}
		rna, protein := e.Source.Key(), e.Target.Key()
		add(protein, rna)
		rnaToProtein[rna] = protein
	}

	for _, e := range edges {
		if e.Data.Relation != bel.TranscribedTo {
			continue
		}
		gene, rna := e.Source.Key(), e.Target.Key()
		if protein, ok := rnaToProtein[rna]; ok {
			add(protein, gene)
		} else {
			add(rna, gene)
		}
	}

	collapse := make(map[string][]string, len(sets))
	for k, set := range sets {
		collapse[k] = slices.Sorted(maps.Keys(set))
	}
	return collapse
}

// CollapseByCentralDogma collapses genes and RNA onto the protein they
// encode, or onto the RNA when no protein is known.
func CollapseByCentralDogma(g *bel.Graph) {
	collapse := BuildCentralDogmaCollapseDict(g)
	logger.Info("[Mutation] Collapsing central dogma", "groups", len(collapse))
	CollapseNodes(g, collapse)
}

// BuildOrthologyCollapseDict groups nodes linked by orthologous edges. Each
// group is keyed by its member that appears first in an orthologous edge.
func BuildOrthologyCollapseDict(g *bel.Graph) map[string][]string {
	parent := make(map[string]string)
	seen := make(map[string]int)
	see := func(k string) {
		if _, ok := seen[k]; !ok {
			seen[k] = len(seen)
		}
	}
	var find func(string) string
	find = func(k string) string {
		p, ok := parent[k]
		if !ok || p == k {
			return k
		}
		root := find(p)
		parent[k] = root
		return root
	}

	for _, e := range g.Edges() {
		if e.Data.Relation != bel.Orthologous {
			continue
		}
		see(e.Source.Key())
		see(e.Target.Key())
		u, v := find(e.Source.Key()), find(e.Target.Key())
		if u == v {
			continue
		}
		if seen[v] < seen[u] {
			u, v = v, u
		}
		parent[v] = u
	}

	collapse := make(map[string][]string)
	for _, k := range slices.Sorted(maps.Keys(parent)) {
		if root := find(k); root != k {
			collapse[root] = append(collapse[root], k)
		}
	}
	return collapse
}

// CollapseOrthologies merges every group of orthologous nodes onto one node
// and returns the number of nodes removed. The orthologous edges go away as
// self loops.
func CollapseOrthologies(g *bel.Graph) int {
	collapse := BuildOrthologyCollapseDict(g)
	removed := 0
	for _, values := range collapse {
		removed += len(values)
	}
	logger.Info("[Mutation] Collapsing orthologies", "groups", len(collapse), "removed", removed)
	CollapseNodes(g, collapse)
	return removed
}

func inferOrigin(g *bel.Graph, function, origin, relation string) int {
	added := 0
	for _, n := range g.Nodes() {
		if n.Function != function || n.Name == "" || len(n.Variants) > 0 {
			continue
		}
		src := n.WithFunction(origin)
		key, _ := bel.UnqualifiedKey(relation)
		if g.HasEdge(src.Key(), n.Key(), key) {
			continue
		}
		g.AddUnqualifiedEdge(src, n, relation)
		added++
	}
	return added
}

// InferCentralDogmaticTranslations adds, for every named protein without
// variants, its RNA and the translatedTo edge. Returns the number of edges
// added.
func InferCentralDogmaticTranslations(g *bel.Graph) int {
	return inferOrigin(g, bel.Protein, bel.RNA, bel.TranslatedTo)
}

// InferCentralDogmaticTranscriptions adds, for every named RNA without
// variants, its gene and the transcribedTo edge.
func InferCentralDogmaticTranscriptions(g *bel.Graph) int {
	return inferOrigin(g, bel.RNA, bel.Gene, bel.TranscribedTo)
}

// InferCentralDogma runs translations and then transcriptions, so RNA
// inferred in the first pass gets its gene in the second.
func InferCentralDogma(g *bel.Graph) int {
	return InferCentralDogmaticTranslations(g) + InferCentralDogmaticTranscriptions(g)
}

// PruneByType removes nodes of the given function with at most threshold
// distinct neighbours. Returns the number of nodes removed.
func PruneByType(g *bel.Graph, function string, threshold int) int {
	var prune []string
	for _, n := range g.Nodes() {
		if n.Function == function && g.Degree(n.Key()) <= threshold {
			prune = append(prune, n.Key())
		}
	}
	g.RemoveNodes(prune...)
	return len(prune)
}

// Prune removes leaf genes and then leaf RNA.
func Prune(g *bel.Graph) int {
	return PruneByType(g, bel.Gene, 1) + PruneByType(g, bel.RNA, 1)
}

// RemoveFilteredNodes removes every node accepted by p.
func RemoveFilteredNodes(g *bel.Graph, p filter.NodePredicate) int {
	keys := filter.Nodes(g, p)
	g.RemoveNodes(keys...)
	return len(keys)
}

func RemoveNodesByFunction(g *bel.Graph, functions ...string) int {
	return RemoveFilteredNodes(g, filter.FunctionIn(functions...))
}

// RemoveNodesByNamespace is useful to drop knowledge learned about distant
// species.
func RemoveNodesByNamespace(g *bel.Graph, namespaces ...string) int {
	return RemoveFilteredNodes(g, filter.NamespaceIn(namespaces...))
}

func RemoveNodesByFunctionNamespace(g *bel.Graph, function string, namespaces ...string) int {
	return RemoveFilteredNodes(g, filter.FunctionNamespaceIn(function, namespaces...))
}

// RemoveMouseNodes removes nodes from the MGI namespaces.
func RemoveMouseNodes(g *bel.Graph) int {
	return RemoveNodesByNamespace(g, "MGI", "MGIID")
}

// RemoveRatNodes removes nodes from the RGD namespaces.
func RemoveRatNodes(g *bel.Graph) int {
	return RemoveNodesByNamespace(g, "RGD", "RGDID")
}

// AddInferredEdges adds, for each edge with one of relations, the inverse
// edge from object to subject (hasVariant gives isVariantOf, ...).
// Relations without an inverse are ignored with a warning.
func AddInferredEdges(g *bel.Graph, relations ...string) int {
	inverses := make(map[string]string, len(relations))
	for _, r := range relations {
		inv, ok := bel.Inverse[r]
		if !ok {
			logger.Warn("[Mutation] No inverse relation", "relation", r)
			continue
		}
		inverses[r] = inv
	}

	added := 0
	for _, e := range g.Edges() {
		inv, ok := inverses[e.Data.Relation]
		if !ok {
			continue
		}
		key, _ := bel.UnqualifiedKey(inv)
		if g.HasEdge(e.Target.Key(), e.Source.Key(), key) {
			continue
		}
		g.AddUnqualifiedEdge(e.Target, e.Source, inv)
		added++
	}
	return added
}

// AddInferredTwoWayEdge mirrors every correlative edge from u to v whose
// counterpart from v to u is missing. Returns the number of edges added.
func AddInferredTwoWayEdge(g *bel.Graph, u, v string) (int, error) {
	if !g.HasNode(u) {
		return 0, fmt.Errorf("two-way edge source %s: %w", u, bel.ErrNodeNotFound)
	}
	if !g.HasNode(v) {
		return 0, fmt.Errorf("two-way edge target %s: %w", v, bel.ErrNodeNotFound)
	}

	reverse := g.EdgesBetween(v, u)
	added := 0
	for _, e := range g.EdgesBetween(u, v) {
		if !bel.IsCorrelative(e.Data.Relation) {
			continue
		}
		found := false
		for _, r := range reverse {
			if r.Data.Relation == e.Data.Relation {
				found = true
				break
			}
		}
		if found {
			continue
		}
		mirrored := e.Data.Clone()
		mirrored.Subject, mirrored.Object = mirrored.Object, mirrored.Subject
		if e.Qualified() {
			g.AddEdge(e.Target, e.Source, mirrored)
		} else {
			g.AddEdgeWithKey(e.Target, e.Source, e.Key, mirrored)
		}
		reverse = append(reverse, bel.Edge{Data: mirrored})
		added++
	}
	return added, nil
}
