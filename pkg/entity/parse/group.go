package parse

import "github.com/spf13/cast"

// Group is one active multiroom group. Members is ordered with the
// group master first.
type Group struct {
	ID      string
	Name    string
	Master  string
	Members []string
}

// GroupParser parses /grouping/activeGroups payloads.
type GroupParser struct{}

// First returns the first active group, or ok=false when the speaker is
// not grouped. The original device reports at most one active group per
// speaker.
func (p GroupParser) First(groups []map[string]any) (Group, bool) {
	if len(groups) == 0 {
		return Group{}, false
	}

	g := groups[0]
	master := cast.ToString(g["groupMasterId"])

	var members []string
	for _, product := range MapSlice(g["products"]) {
		if id := cast.ToString(product["productId"]); id != "" {
			members = append(members, id)
		}
	}
	if len(members) == 0 {
		return Group{}, false
	}

	// Master first, remaining members in reported order.
	ordered := make([]string, 0, len(members))
	for _, id := range members {
		if id == master {
			ordered = append(ordered, id)
		}
	}
	for _, id := range members {
		if id != master {
			ordered = append(ordered, id)
		}
	}

	return Group{
		ID:      cast.ToString(g["activeGroupId"]),
		Name:    cast.ToString(g["name"]),
		Master:  master,
		Members: ordered,
	}, true
}
