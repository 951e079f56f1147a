package consolidate

import (
	"testing"

	"github.com/go-openapi/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexamon/hexaswag/internal/domain"
	"github.com/hexamon/hexaswag/internal/strategy"
	"github.com/hexamon/hexaswag/internal/typeexpr"
)

// tagResolver answers with the strategy it was registered for and records
// the expression it received.
type tagResolver struct {
	strategy domain.Strategy
	seen     *[]string
}

func (r tagResolver) answer(expr typeexpr.Expr) *spec.Schema {
	*r.seen = append(*r.seen, r.strategy.String()+" "+expr.Name())
	return &spec.Schema{SchemaProps: spec.SchemaProps{Title: r.strategy.String()}}
}

func (r tagResolver) ResolveModel(expr typeexpr.Expr, _ domain.Context, _ domain.Chain) (*spec.Schema, error) {
	return r.answer(expr), nil
}

func (r tagResolver) ResolveProperty(expr typeexpr.Expr, _ domain.Context, _ domain.Annotations, _ domain.Chain) (*spec.Schema, error) {
	return r.answer(expr), nil
}

func tagResolvers(seen *[]string) map[domain.Strategy]domain.Resolver {
	resolvers := make(map[domain.Strategy]domain.Resolver)
	for _, s := range domain.Strategies() {
		resolvers[s] = tagResolver{strategy: s, seen: seen}
	}
	return resolvers
}

type fixedClassifier domain.Strategy

func (c fixedClassifier) Classify(typeexpr.Expr) domain.Strategy {
	return domain.Strategy(c)
}

func TestNewDispatcher(t *testing.T) {
	t.Run("every strategy needs a resolver", func(t *testing.T) {
		var seen []string
		resolvers := tagResolvers(&seen)
		delete(resolvers, domain.Nested)

		_, err := NewDispatcher(strategy.Default(), resolvers)

		require.ErrorIs(t, err, domain.ErrNoResolver)
		assert.Contains(t, err.Error(), "nested")
	})

	t.Run("nil resolver counts as missing", func(t *testing.T) {
		var seen []string
		resolvers := tagResolvers(&seen)
		resolvers[domain.Page] = nil

		_, err := NewDispatcher(strategy.Default(), resolvers)

		assert.ErrorIs(t, err, domain.ErrNoResolver)
	})

	t.Run("unregistered strategy at dispatch", func(t *testing.T) {
		var seen []string
		d, err := NewDispatcher(fixedClassifier(42), tagResolvers(&seen))
		require.NoError(t, err)

		_, err = d.ResolveModel(typeexpr.Parse("x.Y"), nil, domain.Chain{})

		require.ErrorIs(t, err, domain.ErrNoResolver)
		assert.Contains(t, err.Error(), "Strategy(42)")
	})
}

func TestDispatcherLayers(t *testing.T) {
	env := newTestEnv(t)

	layers := env.pipeline.Dispatcher().Layers(env.model(t, "EntityMono"))

	require.Len(t, layers, 3)
	assert.Equal(t, domain.WrapSingle, layers[0].Strategy)
	assert.Equal(t, domain.Entity, layers[1].Strategy)
	assert.Equal(t, domain.Default, layers[2].Strategy)
	assert.Equal(t, "github.com/acme/blog/model.Article", layers[2].Expr.Name())

	assert.Empty(t, env.pipeline.Dispatcher().Layers(nil))
}

func TestDispatcherFold(t *testing.T) {
	t.Run("innermost first, each resolver gets its own layer", func(t *testing.T) {
		var seen []string
		d, err := NewDispatcher(strategy.Default(), tagResolvers(&seen))
		require.NoError(t, err)

		expr := typeexpr.Parse("github.com/hexamon/hexaswag/pkg/hexamon.Mono[github.com/hexamon/hexaswag/pkg/hexamon.Entity[x.Article]]")

		got, err := d.ResolveModel(expr, nil, domain.Chain{})

		require.NoError(t, err)
		assert.Equal(t, "wrapsingle", got.Title, "the outermost result wins")
		assert.Equal(t, []string{
			"default x.Article",
			"entity github.com/hexamon/hexaswag/pkg/hexamon.Entity[x.Article]",
			"wrapsingle " + expr.Name(),
		}, seen)
	})

	t.Run("property fold", func(t *testing.T) {
		var seen []string
		d, err := NewDispatcher(strategy.Default(), tagResolvers(&seen))
		require.NoError(t, err)

		got, err := d.ResolveProperty(typeexpr.Parse("time.Time"), nil, nil, domain.Chain{})

		require.NoError(t, err)
		assert.Equal(t, "datetime", got.Title)
		assert.Equal(t, []string{"datetime time.Time"}, seen)
	})

	t.Run("nil expression", func(t *testing.T) {
		var seen []string
		d, err := NewDispatcher(strategy.Default(), tagResolvers(&seen))
		require.NoError(t, err)

		got, err := d.ResolveModel(nil, nil, domain.Chain{})

		require.NoError(t, err)
		assert.Nil(t, got)
		assert.Empty(t, seen)
	})
}
