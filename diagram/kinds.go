package diagram

// Kind tags a node with the icon family it is drawn with.
type Kind string

const (
	Users      Kind = "users"
	Java       Kind = "java"
	NodeJS     Kind = "nodejs"
	Kotlin     Kind = "kotlin"
	Python     Kind = "python"
	Dapr       Kind = "dapr"
	Kafka      Kind = "kafka"
	Prometheus Kind = "prometheus"
	Grafana    Kind = "grafana"
	Loki       Kind = "loki"
	Traefik    Kind = "traefik"
	Consul     Kind = "consul"
	Custom     Kind = "custom" // drawn from an icon file
	Blank      Kind = "blank"  // placeholder for a missing icon
)

// Category groups kinds the same way the icon sets are grouped (client,
// language, runtime, ...).
type Category string

const (
	CategoryClient     Category = "client"
	CategoryLanguage   Category = "language"
	CategoryRuntime    Category = "runtime"
	CategoryQueue      Category = "queue"
	CategoryMonitoring Category = "monitoring"
	CategoryLogging    Category = "logging"
	CategoryNetwork    Category = "network"
	CategoryCustom     Category = "custom"
	CategoryGeneric    Category = "generic"
)

// KindInfo holds the display defaults for a kind when no icon image is drawn.
type KindInfo struct {
	Category  Category
	FillColor string
	Shape     string
}

var kindInfo = map[Kind]KindInfo{
	Users:      {CategoryClient, "#FFE8CC", "oval"},
	Java:       {CategoryLanguage, "#F8D9C4", "box"},
	NodeJS:     {CategoryLanguage, "#D5EBC8", "box"},
	Kotlin:     {CategoryLanguage, "#E3D6F5", "box"},
	Python:     {CategoryLanguage, "#D6E6F5", "box"},
	Dapr:       {CategoryRuntime, "#CFE2F3", "hexagon"},
	Kafka:      {CategoryQueue, "#E0E0E0", "cylinder"},
	Prometheus: {CategoryMonitoring, "#F9D3C8", "box"},
	Grafana:    {CategoryMonitoring, "#FCE5B6", "box"},
	Loki:       {CategoryLogging, "#FCE5B6", "box"},
	Traefik:    {CategoryNetwork, "#D3EEF2", "box"},
	Consul:     {CategoryNetwork, "#F5D0DD", "box"},
	Custom:     {CategoryCustom, "none", "none"},
	Blank:      {CategoryGeneric, "#FFFFFF", "box"},
}

// Info returns the display defaults for k. Unknown kinds are treated like
// placeholders.
func (k Kind) Info() KindInfo {
	if info, ok := kindInfo[k]; ok {
		return info
	}
	return kindInfo[Blank]
}

func (k Kind) String() string { return string(k) }
