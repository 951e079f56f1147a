package consolidate

import (
	"testing"

	"github.com/go-openapi/spec"
	"github.com/stretchr/testify/require"

	"github.com/hexamon/hexaswag/internal/domain"
	"github.com/hexamon/hexaswag/internal/fixture"
	"github.com/hexamon/hexaswag/internal/registry"
	"github.com/hexamon/hexaswag/internal/strategy"
	"github.com/hexamon/hexaswag/internal/typeexpr"
)

type testEnv struct {
	u        *fixture.Universe
	types    *registry.Service
	table    *strategy.Registry
	pipeline *Pipeline
}

func newTestEnv(t *testing.T, configure ...func(*Config)) *testEnv {
	t.Helper()

	u := fixture.New()
	reg := registry.NewService()
	reg.AddPackages(u.MustPackages(t))

	table := strategy.Default()
	require.NoError(t, table.Register(domain.Nested, fixture.ModelPath+".Tree"))

	cfg := Config{Classifier: table, Describer: reg}
	for _, c := range configure {
		c(&cfg)
	}
	p, err := NewPipeline(cfg)
	require.NoError(t, err)

	return &testEnv{u: u, types: reg, table: table, pipeline: p}
}

// model returns the go/types expression of a variable or type in the blog
// model package.
func (e *testEnv) model(t *testing.T, name string) typeexpr.Expr {
	t.Helper()
	return typeexpr.Of(e.u.MustModel(t, name))
}

func (e *testEnv) definition(t *testing.T, name string) spec.Schema {
	t.Helper()

	def, ok := e.pipeline.Definitions().Lookup(name)
	require.True(t, ok, "definition %s", name)
	return def
}

func ref(name string) spec.Schema {
	return *spec.RefSchema("#/definitions/" + name)
}

func stringProp() spec.Schema {
	return *spec.StringProperty()
}

func dateTimeProp() spec.Schema {
	return *spec.DateTimeProperty()
}

func propertyNames(s spec.Schema) []string {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	return names
}
