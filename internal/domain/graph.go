package domain

// Node is a single component in a proposed topology: a unique id, a
// free-form type string (normalized later by the types package), and an
// open config map. Recognized config keys: number_of_users,
// requests_per_user (User only); capacity, base_latency; algorithm
// (LoadBalancer only); weight (read on the targets of a
// weighted_round_robin LoadBalancer).
type Node struct {
	ID     string         `json:"id"`
	Type   string         `json:"type"`
	Config map[string]any `json:"config"`
}

// Edge is a directed reference between two node ids.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is the input topology: a finite directed graph of Nodes and Edges.
// It is consumed read-only by the validator, simulator, reviewer, and
// recommender — none of them mutate it or retain a reference past the call.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// TrafficProfile is the external traffic input to the simulator. When not
// supplied, the simulator reads the equivalent values from the first User
// node's config.
type TrafficProfile struct {
	NumberOfUsers   float64 `json:"number_of_users"`
	RequestsPerUser float64 `json:"requests_per_user"`
}

// NumberConfig reads a numeric config value under key, accepting the
// concrete numeric types encoding/json produces (float64) as well as int,
// since config maps may be built programmatically as well as unmarshaled.
// A missing or non-numeric value reads as 0; callers that need to tell a
// malformed value apart from an absent one should use NumberConfigOK.
func NumberConfig(config map[string]any, key string) float64 {
	v, _ := NumberConfigOK(config, key)
	return v
}

// NumberConfigOK reads a numeric config value under key, reporting whether
// the key was present and held one of the numeric types encoding/json (or a
// programmatically built config map) produces. A present-but-non-numeric
// value, e.g. a string, reports ok=false — the same as an absent key — so
// callers can fall back to a documented default instead of silently reading
// a malformed value as 0.
func NumberConfigOK(config map[string]any, key string) (float64, bool) {
	if config == nil {
		return 0, false
	}
	switch v := config[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// StringConfig reads a string config value under key, defaulting to "".
func StringConfig(config map[string]any, key string) string {
	if config == nil {
		return ""
	}
	if v, ok := config[key].(string); ok {
		return v
	}
	return ""
}
