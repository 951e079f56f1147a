package schema

import (
	"go/types"
	"testing"

	"github.com/go-openapi/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexamon/hexaswag/internal/domain"
	"github.com/hexamon/hexaswag/internal/fixture"
	"github.com/hexamon/hexaswag/internal/registry"
	"github.com/hexamon/hexaswag/internal/typeexpr"
)

// builderContext runs every resolution through the builder alone.
type builderContext struct {
	*registry.Service
	*Definitions
	builder  *BuilderService
	building map[string]bool
}

func newBuilderContext(t *testing.T) (*builderContext, *fixture.Universe) {
	t.Helper()

	u := fixture.New()
	reg := registry.NewService()
	reg.AddPackages(u.MustPackages(t))

	builder := NewBuilder()
	builder.SetEnumLookup(reg)
	return &builderContext{
		Service:     reg,
		Definitions: NewDefinitions(),
		builder:     builder,
		building:    make(map[string]bool),
	}, u
}

func (c *builderContext) ResolveModel(expr typeexpr.Expr) (*spec.Schema, error) {
	return c.builder.ResolveModel(expr, c, domain.Chain{})
}

func (c *builderContext) ResolveProperty(expr typeexpr.Expr, annotations domain.Annotations) (*spec.Schema, error) {
	return c.builder.ResolveProperty(expr, c, annotations, domain.Chain{})
}

func (c *builderContext) Enter(name string) bool {
	if c.building[name] {
		return false
	}
	c.building[name] = true
	return true
}

func (c *builderContext) Leave(name string) {
	delete(c.building, name)
}

func TestBuilderPrimitives(t *testing.T) {
	ctx, _ := newBuilderContext(t)

	tests := []struct {
		name string
		typ  types.Type
		want *spec.Schema
	}{
		{"string", types.Typ[types.String], PrimitiveSchema(STRING)},
		{"int", types.Typ[types.Int], PrimitiveSchema(INTEGER)},
		{"int64", types.Typ[types.Int64], &spec.Schema{SchemaProps: spec.SchemaProps{Type: []string{INTEGER}, Format: "int64"}}},
		{"float64", types.Typ[types.Float64], &spec.Schema{SchemaProps: spec.SchemaProps{Type: []string{NUMBER}, Format: "double"}}},
		{"bool", types.Typ[types.Bool], PrimitiveSchema(BOOLEAN)},
		{"pointer", types.NewPointer(types.Typ[types.String]), PrimitiveSchema(STRING)},
		{"bytes", types.NewSlice(types.Typ[types.Byte]), spec.StrFmtProperty("byte")},
		{"slice", types.NewSlice(types.Typ[types.Bool]), spec.ArrayProperty(PrimitiveSchema(BOOLEAN))},
		{"map", types.NewMap(types.Typ[types.String], types.Typ[types.Int]), spec.MapProperty(PrimitiveSchema(INTEGER))},
		{"interface", types.NewInterfaceType(nil, nil), &spec.Schema{}},
		{"unsupported", types.NewChan(types.SendRecv, types.Typ[types.Int]), ObjectSchema()},
		{"complex", types.Typ[types.Complex128], ObjectSchema()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ctx.ResolveProperty(typeexpr.Of(tt.typ), nil)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuilderNamedTypes(t *testing.T) {
	t.Run("struct becomes a definition", func(t *testing.T) {
		ctx, u := newBuilderContext(t)

		got, err := ctx.ResolveModel(typeexpr.Of(u.MustModel(t, "Article")))

		require.NoError(t, err)
		assert.Equal(t, RefSchema("Article"), got)
		def, ok := ctx.Lookup("Article")
		require.True(t, ok)
		assert.Equal(t, *PrimitiveSchema(STRING), def.Properties["title"])
	})

	t.Run("calendar types are left to the DateTime strategy", func(t *testing.T) {
		ctx, u := newBuilderContext(t)

		_, err := ctx.ResolveModel(typeexpr.Of(u.MustModel(t, "Article")))

		require.NoError(t, err)
		def, _ := ctx.Lookup("Article")
		published := def.Properties["published"]
		assert.NotEqual(t, *DateTimeSchema(), published)
		assert.True(t, IsRefSchema(&published))
	})

	t.Run("uuid and decimal stay scalar", func(t *testing.T) {
		ctx, u := newBuilderContext(t)
		u.Add("github.com/google/uuid", "package uuid\n\ntype UUID [16]byte\n")
		uuid := u.MustType(t, "github.com/google/uuid", "UUID")

		got, err := ctx.ResolveProperty(typeexpr.Of(uuid), nil)

		require.NoError(t, err)
		assert.Equal(t, "uuid", got.Format)
	})

	t.Run("enum", func(t *testing.T) {
		ctx, u := newBuilderContext(t)

		status, err := ctx.ResolveProperty(typeexpr.Of(u.MustModel(t, "Status")), nil)
		require.NoError(t, err)
		priority, err := ctx.ResolveProperty(typeexpr.Of(u.MustModel(t, "Priority")), nil)
		require.NoError(t, err)

		assert.Equal(t, []interface{}{"draft", "published"}, status.Enum)
		assert.Equal(t, []string{STRING}, []string(status.Type))
		assert.Equal(t, []interface{}{int64(1), int64(2)}, priority.Enum)
	})

	t.Run("recursive struct", func(t *testing.T) {
		ctx, u := newBuilderContext(t)

		_, err := ctx.ResolveModel(typeexpr.Of(u.MustModel(t, "Comment")))

		require.NoError(t, err)
		def, ok := ctx.Lookup("Comment")
		require.True(t, ok)
		assert.Equal(t, *RefSchema("Comment"), def.Properties["parent"])
		assert.Empty(t, ctx.building)
	})

	t.Run("generic instance", func(t *testing.T) {
		ctx, u := newBuilderContext(t)

		got, err := ctx.ResolveModel(typeexpr.Of(u.MustModel(t, "ArticlePage")))

		require.NoError(t, err)
		assert.Equal(t, RefSchema("PageArticle"), got)
		def, ok := ctx.Lookup("PageArticle")
		require.True(t, ok)
		assert.Equal(t, RefSchema("Article"), def.Properties["items"].Items.Schema)
		assert.ElementsMatch(t, []string{"items", "page", "size", "total"}, keys(def.Properties))
	})

	t.Run("uninstantiated generic", func(t *testing.T) {
		ctx, u := newBuilderContext(t)

		got, err := ctx.ResolveModel(typeexpr.Of(u.MustType(t, fixture.HexamonPath, "Page")))

		require.NoError(t, err)
		assert.Equal(t, ObjectSchema(), got)
	})

	t.Run("textual reference", func(t *testing.T) {
		ctx, _ := newBuilderContext(t)

		got, err := ctx.ResolveModel(typeexpr.Parse(fixture.ModelPath + ".Author"))

		require.NoError(t, err)
		assert.Equal(t, RefSchema("Author"), got)
		def, _ := ctx.Lookup("Author")
		assert.Equal(t, []string{"name"}, def.Required)
		assert.NotContains(t, def.Properties, "secret")
		assert.NotContains(t, def.Properties, "internal")
	})
}

func TestBuilderAnnotations(t *testing.T) {
	ctx, u := newBuilderContext(t)
	expr := typeexpr.Of(u.MustModel(t, "Blob"))

	got, err := ctx.ResolveProperty(expr, domain.Annotations{"swaggertype": "primitive,integer"})
	require.NoError(t, err)
	assert.Equal(t, PrimitiveSchema(INTEGER), got)

	_, err = ctx.ResolveProperty(expr, domain.Annotations{"swaggertype": "User"})
	assert.Error(t, err)

	got, err = ctx.ResolveModel(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAddField(t *testing.T) {
	ctx, u := newBuilderContext(t)
	fields, err := ctx.Fields(typeexpr.Of(u.MustModel(t, "ArticleEntity")))
	require.NoError(t, err)

	model := ObjectSchema()
	for _, f := range fields {
		require.NoError(t, AddField(model, f, "_", ctx))
	}

	assert.ElementsMatch(t, []string{"_id", "_createdAt", "_entity"}, keys(model.Properties))
}

func keys(props spec.SchemaProperties) []string {
	out := make([]string, 0, len(props))
	for k := range props {
		out = append(out, k)
	}
	return out
}
