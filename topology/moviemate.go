// Package topology describes the MovieMate platform as a diagram graph.
package topology

import (
	"github.com/moviemate/infradiagram/diagram"
)

// Service is one microservice together with its Dapr sidecar.
type Service struct {
	Lang *diagram.Node
	Dapr *diagram.Node
}

// Services are the four MovieMate microservices plus the OpenAPI hub.
type Services struct {
	User, Movie, Rec, Activity Service
	OpenAPI                    *diagram.Node
}

// All returns the four services in the order they are drawn.
func (s *Services) All() []Service {
	return []Service{s.User, s.Movie, s.Rec, s.Activity}
}

// Languages returns the language node of every service.
func (s *Services) Languages() []*diagram.Node {
	var out []*diagram.Node
	for _, svc := range s.All() {
		out = append(out, svc.Lang)
	}
	return out
}

type Messaging struct {
	Kafka *diagram.Node
}

type Observability struct {
	Prometheus, Loki, Grafana, OTel, Zipkin *diagram.Node
}

type APIEdge struct {
	Gateway, Discovery *diagram.Node
}

// MovieMate holds the built graph along with handles to its nodes.
type MovieMate struct {
	Graph         *diagram.Graph
	User          *diagram.Node
	Services      Services
	Messaging     Messaging
	Observability Observability
	APIEdge       APIEdge
}

// Build assembles the MovieMate architecture graph. Optional icons are taken
// from assets; the graph shape does not depend on which of them exist.
func Build(assets *Assets) *MovieMate {
	return BuildWithDirection(assets, diagram.LeftToRight)
}

// BuildWithDirection is Build with a custom layout direction.
func BuildWithDirection(assets *Assets, dir diagram.Direction) *MovieMate {
	g := diagram.New("", dir)
	root := g.Root()

	m := &MovieMate{Graph: g}
	m.User = root.Node(diagram.Users, "User")
	m.Services = createMicroservices(root, assets)
	m.Messaging = createMessaging(root)
	m.Observability = createObservability(root, assets)
	m.APIEdge = createAPIEdge(root)
	m.createEdges()
	return m
}

func createMicroservices(root *diagram.Scope, assets *Assets) Services {
	ms := root.Cluster("MovieMate Microservices")
	service := func(name string, lang diagram.Kind, label string) Service {
		c := ms.Cluster(name)
		return Service{Lang: c.Node(lang, label), Dapr: c.Node(diagram.Dapr, "Dapr")}
	}
	var s Services
	s.User = service("mm-user-service", diagram.Java, "Java")
	s.Movie = service("mm-movie-service", diagram.NodeJS, "Node.js")
	s.Rec = service("mm-recommendation-service", diagram.Kotlin, "Kotlin")
	s.Activity = service("mm-activity-service", diagram.Python, "Python")
	s.OpenAPI = openAPINode(ms.Cluster("mm-openapi-hub"), assets)
	return s
}

func createMessaging(root *diagram.Scope) Messaging {
	c := root.Cluster("Messaging")
	return Messaging{Kafka: c.Node(diagram.Kafka, "Kafka/Redpanda")}
}

func createObservability(root *diagram.Scope, assets *Assets) Observability {
	c := root.Cluster("Observability")
	return Observability{
		Prometheus: c.Node(diagram.Prometheus, "Prometheus"),
		Loki:       c.Node(diagram.Loki, "Loki"),
		Grafana:    c.Node(diagram.Grafana, "Grafana"),
		OTel:       otelNode(c, assets),
		Zipkin:     zipkinNode(c, assets),
	}
}

func createAPIEdge(root *diagram.Scope) APIEdge {
	c := root.Cluster("API Edge")
	return APIEdge{
		Gateway:   c.Node(diagram.Traefik, "mm-api-gateway\n(Traefik)"),
		Discovery: c.Node(diagram.Consul, "mm-discovery-server\n(Consul)"),
	}
}

func (m *MovieMate) createEdges() {
	g := m.Graph
	svcs, obs, api, msg := &m.Services, &m.Observability, &m.APIEdge, &m.Messaging

	// A single edge stands in for the gateway routing to, and every service
	// registering with, the discovery server.
	g.Forward(m.User, api.Gateway, diagram.Attrs{Label: "HTTPS/REST", Color: "green", Style: diagram.Bold})
	g.Forward(api.Gateway, svcs.User.Lang, diagram.Attrs{Label: "routes all microservices", Color: "black", Style: diagram.Bold})
	g.Forward(svcs.User.Lang, api.Discovery, diagram.Attrs{Label: "register/health (all)", Color: "blue", Style: diagram.Bold})

	for _, svc := range svcs.All() {
		g.Link(svc.Lang, svc.Dapr, diagram.Attrs{Label: "Dapr sidecar", Color: "gray", Style: diagram.Dashed})
	}

	g.Forward(svcs.Activity.Dapr, msg.Kafka, diagram.Attrs{Label: "publish activity-*"})
	g.Forward(svcs.User.Dapr, msg.Kafka, diagram.Attrs{Label: "publish user-events"})
	g.Forward(svcs.Movie.Dapr, msg.Kafka, diagram.Attrs{Label: "publish catalog-events"})
	g.Back(svcs.Rec.Dapr, msg.Kafka, diagram.Attrs{Label: "consume ratings/activity"})

	for _, svc := range svcs.All() {
		g.Forward(svc.Lang, obs.OTel, diagram.Attrs{Label: "metrics/traces/logs"})
	}
	g.Forward(obs.OTel, obs.Prometheus, diagram.Attrs{Label: "metrics"})
	g.Forward(obs.OTel, obs.Loki, diagram.Attrs{Label: "logs"})
	g.Forward(obs.OTel, obs.Zipkin, diagram.Attrs{Label: "traces"})
	g.Back(obs.Grafana, obs.Prometheus, diagram.Attrs{Label: "dashboards"})
	g.Back(obs.Grafana, obs.Loki, diagram.Attrs{Label: "explore"})
	g.Back(obs.Grafana, obs.Zipkin, diagram.Attrs{Label: "traces"})

	g.LinkAll(svcs.OpenAPI, svcs.Languages(), diagram.Attrs{Label: "OpenAPI docs", Color: "black", Style: diagram.Dotted})
}

// OptionalNodes returns the three nodes whose icons come from the assets
// directory.
func (m *MovieMate) OptionalNodes() []*diagram.Node {
	return []*diagram.Node{m.Services.OpenAPI, m.Observability.OTel, m.Observability.Zipkin}
}
