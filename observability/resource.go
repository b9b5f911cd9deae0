package observability

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"

	"github.com/kbukum/rxkit/version"
)

// Resource attribute keys.
const (
	AttrServiceName    = "service.name"
	AttrServiceVersion = "service.version"
	AttrEnvironment    = "deployment.environment"
)

// newResource creates an OpenTelemetry resource with service metadata.
// An empty serviceVersion falls back to the build version.
func newResource(serviceName, serviceVersion, environment string) (*resource.Resource, error) {
	if serviceVersion == "" {
		serviceVersion = version.Short()
	}
	return resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			attribute.String(AttrServiceName, serviceName),
			attribute.String(AttrServiceVersion, serviceVersion),
			attribute.String(AttrEnvironment, environment),
		),
	)
}
