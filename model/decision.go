package model

// DecisionStatus is the review status of a single research suggestion.
type DecisionStatus string

const (
	DecisionPending  DecisionStatus = "pending"
	DecisionAccepted DecisionStatus = "accepted"
	DecisionExcluded DecisionStatus = "excluded"
)

// DecisionSet holds the suggestion keys sharing one decision, split by kind.
type DecisionSet struct {
	NodeIDs  map[string]bool
	EdgeKeys map[string]bool
}

// Decisions tracks accepted and excluded research suggestions.
// A suggestion present in neither set is pending.
type Decisions struct {
	Accepted DecisionSet
	Excluded DecisionSet
}

// NewDecisions returns an empty decision store.
func NewDecisions() Decisions {
	return Decisions{
		Accepted: DecisionSet{NodeIDs: map[string]bool{}, EdgeKeys: map[string]bool{}},
		Excluded: DecisionSet{NodeIDs: map[string]bool{}, EdgeKeys: map[string]bool{}},
	}
}

// AcceptNode marks a proposed node as accepted, clearing any exclusion.
func (d *Decisions) AcceptNode(id string) {
	delete(d.Excluded.NodeIDs, id)
	d.Accepted.NodeIDs[id] = true
}

// ExcludeNode marks a proposed node as excluded, clearing any acceptance.
func (d *Decisions) ExcludeNode(id string) {
	delete(d.Accepted.NodeIDs, id)
	d.Excluded.NodeIDs[id] = true
}

// AcceptEdge marks a suggested edge as accepted, clearing any exclusion.
func (d *Decisions) AcceptEdge(key string) {
	delete(d.Excluded.EdgeKeys, key)
	d.Accepted.EdgeKeys[key] = true
}

// ExcludeEdge marks a suggested edge as excluded, clearing any acceptance.
func (d *Decisions) ExcludeEdge(key string) {
	delete(d.Accepted.EdgeKeys, key)
	d.Excluded.EdgeKeys[key] = true
}

// NodeStatus returns the decision status of a proposed node id.
func (d *Decisions) NodeStatus(id string) DecisionStatus {
	if d.Accepted.NodeIDs[id] {
		return DecisionAccepted
	}
	if d.Excluded.NodeIDs[id] {
		return DecisionExcluded
	}
	return DecisionPending
}

// EdgeStatus returns the decision status of a suggested edge key.
func (d *Decisions) EdgeStatus(key string) DecisionStatus {
	if d.Accepted.EdgeKeys[key] {
		return DecisionAccepted
	}
	if d.Excluded.EdgeKeys[key] {
		return DecisionExcluded
	}
	return DecisionPending
}
