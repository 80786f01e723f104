// Package types holds the closed component-type and layer tables that the
// graph validator and flow simulator both consult. Everything here is a
// static table, not a conditional tree: layer lookup, allowed transitions,
// and the alias map are all plain maps keyed by string.
package types

import "strings"

// CanonicalType is a member of the fixed component-type enum. User-supplied
// type strings that don't match any alias pass through unchanged, so this is
// a named string rather than a closed Go type — the raw-string fallback must
// survive round-tripping through it.
type CanonicalType string

// The closed canonical type set.
const (
	User                CanonicalType = "User"
	CDN                 CanonicalType = "CDN"
	APIGateway          CanonicalType = "APIGateway"
	LoadBalancer        CanonicalType = "LoadBalancer"
	EdgeType            CanonicalType = "Edge"
	RateLimiter         CanonicalType = "RateLimiter"
	Gateway             CanonicalType = "Gateway"
	Server              CanonicalType = "Server"
	MatchingEngine      CanonicalType = "MatchingEngine"
	LocationService     CanonicalType = "LocationService"
	TripService         CanonicalType = "TripService"
	TransactionService  CanonicalType = "TransactionService"
	MLInferenceService  CanonicalType = "MLInferenceService"
	RuleEngine          CanonicalType = "RuleEngine"
	IDGenerator         CanonicalType = "IDGenerator"
	InventoryService    CanonicalType = "InventoryService"
	PaymentGateway      CanonicalType = "PaymentGateway"
	InventoryLocking    CanonicalType = "InventoryLocking"
	ChatServer          CanonicalType = "ChatServer"
	Cache               CanonicalType = "Cache"
	FeatureStore        CanonicalType = "FeatureStore"
	TokenBucket         CanonicalType = "TokenBucket"
	Database            CanonicalType = "Database"
	MessageStore        CanonicalType = "MessageStore"
	MediaStore          CanonicalType = "MediaStore"
	SearchIndex         CanonicalType = "SearchIndex"
	Queue               CanonicalType = "Queue"
	EventStream         CanonicalType = "EventStream"
	Worker              CanonicalType = "Worker"
	DistributedSync     CanonicalType = "DistributedSync"
	NotificationService CanonicalType = "NotificationService"
)

// Layer is one of the seven abstraction bands a canonical type belongs to.
type Layer string

const (
	LayerExternal     Layer = "External"
	LayerEdge         Layer = "Edge"
	LayerCompute      Layer = "Compute"
	LayerDataAccess   Layer = "DataAccess"
	LayerStorage      Layer = "Storage"
	LayerAsync        Layer = "Async"
	LayerNotification Layer = "Notification"
)

// aliases maps a normalized (lowercased, spaces removed, dashes turned into
// underscores) key to its
// canonical type. Keys here must already be run through the same
// normalization applied to incoming type strings in Normalize.
var aliases = map[string]CanonicalType{
	"user":                   User,
	"cdn":                    CDN,
	"apigateway":             APIGateway,
	"api_gateway":            APIGateway,
	"loadbalancer":           LoadBalancer,
	"load_balancer":          LoadBalancer,
	"edge":                   EdgeType,
	"ratelimiter":            RateLimiter,
	"rate_limiter":           RateLimiter,
	"server":                 Server,
	"appserver":              Server,
	"matchingengine":         MatchingEngine,
	"locationservice":        LocationService,
	"tripservice":            TripService,
	"transactionservice":     TransactionService,
	"mlinferenceservice":     MLInferenceService,
	"mlservice":              MLInferenceService,
	"ruleengine":             RuleEngine,
	"idgenerator":            IDGenerator,
	"inventoryservice":       InventoryService,
	"paymentgateway":         PaymentGateway,
	"inventorylocking":       InventoryLocking,
	"inventorylockinglayer":  InventoryLocking,
	"cache":                  Cache,
	"redis":                  Cache,
	"featurestore":           FeatureStore,
	"database":               Database,
	"messagestore":           MessageStore,
	"mediastore":             MediaStore,
	"searchindex":            SearchIndex,
	"queue":                  Queue,
	"eventstream":            EventStream,
	"eventqueue":             EventStream,
	"worker":                 Worker,
	"notificationservice":    NotificationService,
	"gateway":                Gateway,
	"chatserver":             ChatServer,
	"tokenbucket":            TokenBucket,
	"distributedsync":        DistributedSync,
}

// layers maps a canonical type to its layer. A canonical type absent from
// this table (a pass-through raw string) is treated as Compute by LayerOf.
var layers = map[CanonicalType]Layer{
	User:                LayerExternal,
	CDN:                 LayerEdge,
	APIGateway:          LayerEdge,
	LoadBalancer:        LayerEdge,
	EdgeType:            LayerEdge,
	RateLimiter:         LayerEdge,
	Gateway:             LayerEdge,
	Server:              LayerCompute,
	MatchingEngine:      LayerCompute,
	LocationService:     LayerCompute,
	TripService:         LayerCompute,
	TransactionService:  LayerCompute,
	MLInferenceService:  LayerCompute,
	RuleEngine:          LayerCompute,
	IDGenerator:         LayerCompute,
	InventoryService:    LayerCompute,
	PaymentGateway:      LayerCompute,
	InventoryLocking:    LayerCompute,
	ChatServer:          LayerCompute,
	Cache:               LayerDataAccess,
	TokenBucket:         LayerDataAccess,
	Database:            LayerStorage,
	FeatureStore:        LayerStorage,
	MessageStore:        LayerStorage,
	MediaStore:          LayerStorage,
	SearchIndex:         LayerStorage,
	Queue:               LayerAsync,
	EventStream:         LayerAsync,
	Worker:              LayerAsync,
	DistributedSync:     LayerAsync,
	NotificationService: LayerNotification,
}

// allowedTransitions lists, for each source layer, the set of permitted
// target layers.
var allowedTransitions = map[Layer]map[Layer]bool{
	LayerExternal:     {LayerEdge: true},
	LayerEdge:         {LayerCompute: true},
	LayerCompute:      {LayerCompute: true, LayerDataAccess: true, LayerStorage: true, LayerAsync: true, LayerNotification: true},
	LayerDataAccess:   {LayerStorage: true},
	LayerStorage:      {LayerAsync: true},
	LayerAsync:        {LayerAsync: true, LayerStorage: true},
	LayerNotification: {},
}

// Normalize maps a free-form component type string to a canonical type:
// trim, lowercase, strip spaces and turn dashes into underscores, look up
// the alias table, and fall back to the raw trimmed value when no alias
// matches. An empty type is treated as Server.
func Normalize(raw string) CanonicalType {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Server
	}
	key := strings.ToLower(trimmed)
	key = strings.ReplaceAll(key, " ", "")
	key = strings.ReplaceAll(key, "-", "_")
	if canonical, ok := aliases[key]; ok {
		return canonical
	}
	return CanonicalType(trimmed)
}

// LayerOf returns the layer for a canonical type, defaulting to Compute for
// any type absent from the table so user-added types are treated
// conservatively.
func LayerOf(t CanonicalType) Layer {
	if l, ok := layers[t]; ok {
		return l
	}
	return LayerCompute
}

// AllowedTargets reports whether a transition from source to target layer is
// permitted by the fixed layer grammar.
func AllowedTargets(source, target Layer) bool {
	return allowedTransitions[source][target]
}

// AllCanonicalTypes lists the closed canonical type set, in declaration
// order, for consumers rendering a node palette.
func AllCanonicalTypes() []CanonicalType {
	return []CanonicalType{
		User, CDN, APIGateway, LoadBalancer, EdgeType, RateLimiter, Gateway,
		Server, MatchingEngine, LocationService, TripService, TransactionService,
		MLInferenceService, RuleEngine, IDGenerator, InventoryService,
		PaymentGateway, InventoryLocking, ChatServer, Cache, FeatureStore,
		TokenBucket, Database, MessageStore, MediaStore, SearchIndex, Queue,
		EventStream, Worker, DistributedSync, NotificationService,
	}
}
