package schema

import (
	"fmt"

	"github.com/siherrmann/curriculab/model"
)

// ValidateManifest checks a decoded research manifest document.
func ValidateManifest(doc any) []Issue {
	_, issues := buildManifest(doc)
	return issues
}

// ParseManifest converts a decoded research manifest document into a typed
// manifest. Any issue fails the parse.
func ParseManifest(doc any) (*model.ResearchManifest, error) {
	manifest, issues := buildManifest(doc)
	if len(issues) > 0 {
		return nil, &ValidationError{Message: "invalid research manifest document", Issues: issues}
	}
	return manifest, nil
}

// ParseManifestSafe is ParseManifest with a tagged result instead of an error.
func ParseManifestSafe(doc any) Result[*model.ResearchManifest] {
	manifest, err := ParseManifest(doc)
	if err != nil {
		return fail[*model.ResearchManifest](err)
	}
	return ok(manifest)
}

func buildManifest(doc any) (*model.ResearchManifest, []Issue) {
	var issues []Issue

	root, isObject := asObject(doc)
	if !isObject {
		return nil, append(issues, issue(CodeInvalidType, "", "document must be an object"))
	}

	version, versionOK := requireString(root, "schemaVersion", "schemaVersion", &issues)
	if versionOK && version != model.SchemaVersionResearchManifest {
		issues = append(issues, issue(
			CodeInvalidValue,
			"schemaVersion",
			fmt.Sprintf("schemaVersion must be %q", model.SchemaVersionResearchManifest),
		))
	}

	patchByTrack := map[model.Track]string{}
	tracks, hasTracks := root["patchByTrack"].(map[string]any)
	if !hasTracks {
		issues = append(issues, issue(CodeInvalidType, "patchByTrack", "field \"patchByTrack\" must be an object"))
	} else {
		for _, track := range model.Tracks() {
			path := fmt.Sprintf("patchByTrack.%v", track)
			if value, valueOK := requireString(tracks, string(track), path, &issues); valueOK {
				patchByTrack[track] = value
			}
		}
	}

	if len(issues) > 0 {
		return nil, issues
	}

	return &model.ResearchManifest{
		SchemaVersion: version,
		PatchByTrack:  patchByTrack,
	}, nil
}
