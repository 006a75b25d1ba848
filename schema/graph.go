package schema

import (
	"fmt"

	"github.com/siherrmann/curriculab/model"
)

// ValidateGraph checks a decoded curriculum graph document and returns all
// structural issues found. Issues with a document-scoped path ("", "nodes",
// "edges") are fatal to parsing; element-scoped issues mark entries that are
// dropped instead.
func ValidateGraph(doc any) []Issue {
	_, issues, _ := buildGraph(doc)
	return issues
}

// ParseGraph converts a decoded curriculum graph document into a typed graph.
// Malformed nodes and edges are dropped; edges whose endpoints do not resolve
// against the surviving node set are silently discarded. Parsing fails only
// when the document itself is malformed or no structurally valid node remains.
func ParseGraph(doc any) (*model.Graph, error) {
	graph, issues, fatal := buildGraph(doc)
	if fatal {
		return nil, &ValidationError{Message: "invalid curriculum graph document", Issues: issues}
	}
	return graph, nil
}

// ParseGraphSafe is ParseGraph with a tagged result instead of an error.
func ParseGraphSafe(doc any) Result[*model.Graph] {
	graph, err := ParseGraph(doc)
	if err != nil {
		return fail[*model.Graph](err)
	}
	return ok(graph)
}

func buildGraph(doc any) (*model.Graph, []Issue, bool) {
	var issues []Issue

	root, isObject := asObject(doc)
	if !isObject {
		issues = append(issues, issue(CodeInvalidType, "", "document must be an object"))
		return nil, issues, true
	}

	rawNodes, hasNodes := root["nodes"].([]any)
	if !hasNodes {
		issues = append(issues, issue(CodeInvalidType, "nodes", "field \"nodes\" must be an array"))
	}
	rawEdges, hasEdges := root["edges"].([]any)
	if !hasEdges {
		issues = append(issues, issue(CodeInvalidType, "edges", "field \"edges\" must be an array"))
	}
	if !hasNodes || !hasEdges {
		return nil, issues, true
	}

	nodes := make([]model.Node, 0, len(rawNodes))
	for i, raw := range rawNodes {
		path := fmt.Sprintf("nodes[%d]", i)
		m, isNodeObject := asObject(raw)
		if !isNodeObject {
			issues = append(issues, issue(CodeInvalidType, path, "node must be an object"))
			continue
		}

		var nodeIssues []Issue
		id, _ := requireString(m, "id", path+".id", &nodeIssues)
		nodeType, _ := requireString(m, "nodeType", path+".nodeType", &nodeIssues)
		label, _ := requireString(m, "label", path+".label", &nodeIssues)
		if len(nodeIssues) > 0 {
			issues = append(issues, nodeIssues...)
			continue
		}

		node := model.Node{ID: id, NodeType: nodeType, Label: label}
		node.GradeBand, _, _ = stringField(m, "gradeBand")
		node.ParentID, _, _ = stringField(m, "parentId")
		node.DomainCode, _, _ = stringField(m, "domainCode")
		node.Note, _, _ = stringField(m, "note")
		node.Reason, _, _ = stringField(m, "reason")
		nodes = append(nodes, node)
	}

	if len(nodes) == 0 {
		issues = append(issues, issue(CodeInvalidValue, "nodes", "graph must contain at least one valid node"))
		return nil, issues, true
	}

	knownIDs := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		knownIDs[n.ID] = true
	}

	edges := make([]model.Edge, 0, len(rawEdges))
	for i, raw := range rawEdges {
		path := fmt.Sprintf("edges[%d]", i)
		m, isEdgeObject := asObject(raw)
		if !isEdgeObject {
			issues = append(issues, issue(CodeInvalidType, path, "edge must be an object"))
			continue
		}

		var edgeIssues []Issue
		edgeType, _ := requireString(m, "edgeType", path+".edgeType", &edgeIssues)
		source, _ := requireString(m, "source", path+".source", &edgeIssues)
		target, _ := requireString(m, "target", path+".target", &edgeIssues)
		if len(edgeIssues) > 0 {
			issues = append(issues, edgeIssues...)
			continue
		}

		// Referential noise, not a schema failure: drop without an issue.
		if !knownIDs[source] || !knownIDs[target] {
			continue
		}

		edge := model.Edge{EdgeType: edgeType, Source: source, Target: target}
		edge.ID, _, _ = stringField(m, "id")
		edges = append(edges, edge)
	}

	graph := &model.Graph{Nodes: nodes, Edges: edges}
	if meta, isMeta := root["meta"].(map[string]any); isMeta {
		graph.Meta = meta
	}

	return graph, issues, false
}
