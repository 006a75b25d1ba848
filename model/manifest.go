package model

// SchemaVersionResearchManifest is the schema version of research manifest documents.
const SchemaVersionResearchManifest = "research-manifest-v1"

// Track is one of the named channels through which research patches are supplied.
type Track string

const (
	TrackT1 Track = "T1"
	TrackT2 Track = "T2"
	TrackT3 Track = "T3"
)

// Tracks returns all research tracks in order.
func Tracks() []Track {
	return []Track{TrackT1, TrackT2, TrackT3}
}

// ResearchManifest maps each research track to the path of its patch document.
// It is fetched once per session and cached by the caller.
type ResearchManifest struct {
	SchemaVersion string           `json:"schemaVersion"`
	PatchByTrack  map[Track]string `json:"patchByTrack"`
}
