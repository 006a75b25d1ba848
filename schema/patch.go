package schema

import (
	"fmt"

	"github.com/siherrmann/curriculab/model"
)

// ValidatePatch checks a decoded research patch document. Every array element
// is validated independently and indexed in its issue path.
func ValidatePatch(doc any) []Issue {
	_, issues := buildPatch(doc)
	return issues
}

// ParsePatch converts a decoded research patch document into a typed patch.
// Any issue fails the parse.
func ParsePatch(doc any) (*model.ResearchPatch, error) {
	patch, issues := buildPatch(doc)
	if len(issues) > 0 {
		return nil, &ValidationError{Message: "invalid research patch document", Issues: issues}
	}
	return patch, nil
}

// ParsePatchSafe is ParsePatch with a tagged result instead of an error.
func ParsePatchSafe(doc any) Result[*model.ResearchPatch] {
	patch, err := ParsePatch(doc)
	if err != nil {
		return fail[*model.ResearchPatch](err)
	}
	return ok(patch)
}

func buildPatch(doc any) (*model.ResearchPatch, []Issue) {
	var issues []Issue

	root, isObject := asObject(doc)
	if !isObject {
		return nil, append(issues, issue(CodeInvalidType, "", "document must be an object"))
	}

	patch := &model.ResearchPatch{
		AddNodes:    []model.PatchNode{},
		AddEdges:    []model.PatchEdge{},
		RemoveEdges: []model.PatchEdgeRef{},
	}

	version, present, isString := stringField(root, "schemaVersion")
	if present {
		if !isString {
			issues = append(issues, issue(CodeInvalidType, "schemaVersion", "field \"schemaVersion\" must be a string"))
		} else if version != model.SchemaVersionResearchPatch {
			issues = append(issues, issue(
				CodeInvalidValue,
				"schemaVersion",
				fmt.Sprintf("schemaVersion must be %q when present", model.SchemaVersionResearchPatch),
			))
		} else {
			patch.SchemaVersion = version
		}
	}
	patch.Researcher = optionalString(root, "researcher", "researcher", &issues)
	patch.Scope = optionalString(root, "scope", "scope", &issues)

	for i, raw := range optionalArray(root, "add_nodes", &issues) {
		path := fmt.Sprintf("add_nodes[%d]", i)
		m, isNodeObject := asObject(raw)
		if !isNodeObject {
			issues = append(issues, issue(CodeInvalidType, path, "node must be an object"))
			continue
		}
		var node model.PatchNode
		node.ID, _ = requireString(m, "id", path+".id", &issues)
		node.NodeType, _ = requireString(m, "nodeType", path+".nodeType", &issues)
		node.Label, _ = requireString(m, "label", path+".label", &issues)
		node.Note = optionalString(m, "note", path+".note", &issues)
		node.Reason = optionalString(m, "reason", path+".reason", &issues)
		if proposed, isBool := m["proposed"].(bool); isBool {
			node.Proposed = proposed
		}
		patch.AddNodes = append(patch.AddNodes, node)
	}

	for i, raw := range optionalArray(root, "add_edges", &issues) {
		path := fmt.Sprintf("add_edges[%d]", i)
		m, isEdgeObject := asObject(raw)
		if !isEdgeObject {
			issues = append(issues, issue(CodeInvalidType, path, "edge must be an object"))
			continue
		}
		var edge model.PatchEdge
		edge.Source, _ = requireString(m, "source", path+".source", &issues)
		edge.Target, _ = requireString(m, "target", path+".target", &issues)
		edge.EdgeType, _ = requireString(m, "edgeType", path+".edgeType", &issues)
		edge.Confidence = optionalFiniteNumber(m, "confidence", path+".confidence", &issues)
		edge.Rationale = optionalString(m, "rationale", path+".rationale", &issues)
		patch.AddEdges = append(patch.AddEdges, edge)
	}

	for i, raw := range optionalArray(root, "remove_edges", &issues) {
		path := fmt.Sprintf("remove_edges[%d]", i)
		m, isEdgeObject := asObject(raw)
		if !isEdgeObject {
			issues = append(issues, issue(CodeInvalidType, path, "edge must be an object"))
			continue
		}
		var ref model.PatchEdgeRef
		ref.Source, _ = requireString(m, "source", path+".source", &issues)
		ref.Target, _ = requireString(m, "target", path+".target", &issues)
		ref.EdgeType = optionalString(m, "edgeType", path+".edgeType", &issues)
		patch.RemoveEdges = append(patch.RemoveEdges, ref)
	}

	for i, raw := range optionalArray(root, "notes", &issues) {
		path := fmt.Sprintf("notes[%d]", i)
		note, isNote := raw.(string)
		if !isNote {
			issues = append(issues, issue(CodeInvalidType, path, "note must be a string"))
			continue
		}
		patch.Notes = append(patch.Notes, note)
	}

	if len(issues) > 0 {
		return nil, issues
	}
	return patch, nil
}

// optionalArray reads a field as an array, tolerating absence.
func optionalArray(m map[string]any, key string, issues *[]Issue) []any {
	raw, present := m[key]
	if !present {
		return nil
	}
	arr, isArray := raw.([]any)
	if !isArray {
		*issues = append(*issues, issue(CodeInvalidType, key, fmt.Sprintf("field %q must be an array", key)))
		return nil
	}
	return arr
}
