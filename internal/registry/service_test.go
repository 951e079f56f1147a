package registry

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexamon/hexaswag/internal/domain"
	"github.com/hexamon/hexaswag/internal/fixture"
	"github.com/hexamon/hexaswag/internal/parser/field"
	"github.com/hexamon/hexaswag/internal/typeexpr"
)

func newTestService(t *testing.T, u *fixture.Universe, paths ...string) *Service {
	t.Helper()

	s := NewService()
	s.AddPackages(u.MustPackages(t, paths...))
	return s
}

func TestAddPackages(t *testing.T) {
	u := fixture.New()
	s := newTestService(t, u)

	t.Run("indexes primary packages and their imports", func(t *testing.T) {
		_, ok := s.Package(fixture.ModelPath)
		assert.True(t, ok)
		_, ok = s.Package(fixture.HexamonPath)
		assert.True(t, ok)
		_, ok = s.Package(fixture.TimePath)
		assert.True(t, ok)
	})

	t.Run("finds types by full, qualified and simple name", func(t *testing.T) {
		for _, name := range []string{fixture.ModelPath + ".Article", "model.Article", "Article"} {
			obj, ok := s.FindTypeByName(name)
			require.True(t, ok, name)
			assert.Equal(t, "Article", obj.Name())
		}

		obj, ok := s.FindTypeByName("time.Time")
		require.True(t, ok)
		assert.Equal(t, fixture.TimePath, obj.Pkg().Path())
	})

	t.Run("unknown type", func(t *testing.T) {
		_, ok := s.FindTypeByName("model.Missing")
		assert.False(t, ok)
	})
}

func TestDefinitionName(t *testing.T) {
	u := fixture.New()

	t.Run("unique types use the simple name", func(t *testing.T) {
		s := newTestService(t, u)

		name := s.DefinitionName(u.MustModel(t, "Article").(*types.Named))

		assert.Equal(t, "Article", name)
		assert.Empty(t, s.NotUniqueNames())
	})

	t.Run("not unique types use the full path", func(t *testing.T) {
		s := newTestService(t, u, fixture.ModelPath, fixture.LegacyPath)

		model := s.DefinitionName(u.MustModel(t, "Article").(*types.Named))
		legacy := s.DefinitionName(u.MustType(t, fixture.LegacyPath, "Article").(*types.Named))

		assert.Equal(t, "github_com_acme_blog_model.Article", model)
		assert.Equal(t, "github_com_acme_blog_legacy.Article", legacy)
		assert.Equal(t, []string{"Article"}, s.NotUniqueNames())
		_, ok := s.FindTypeByName("Article")
		assert.False(t, ok, "ambiguous simple names do not resolve")
	})

	t.Run("generic instances append their arguments", func(t *testing.T) {
		s := newTestService(t, u)

		tests := map[string]string{
			"ArticlePage":    "PageArticle",
			"ArticleEntity":  "EntityArticle",
			"EnvelopeEntity": "EnvelopeEntityArticle",
			"CategoryTree":   "TreeArticle",
		}
		for variable, want := range tests {
			named, ok := u.MustModel(t, variable).(*types.Named)
			require.True(t, ok, variable)
			assert.Equal(t, want, s.DefinitionName(named), variable)
		}
	})

	t.Run("basic and composite arguments", func(t *testing.T) {
		s := newTestService(t, u)

		for text, want := range map[string]string{
			"model.Tree[string]":            "TreeString",
			"model.Tree[[]int]":             "TreeArrayInt",
			"model.Tree[map[string]*model.Article]": "TreeMapStringArticle",
		} {
			bound, err := s.Bind(text)
			require.NoError(t, err, text)
			assert.Equal(t, want, s.DefinitionName(bound.(*types.Named)), text)
		}
	})

	t.Run("not unique arguments are normalized", func(t *testing.T) {
		s := newTestService(t, u, fixture.ModelPath, fixture.LegacyPath)

		bound, err := s.Bind(fixture.HexamonPath + ".Page[" + fixture.LegacyPath + ".Article]")

		require.NoError(t, err)
		assert.Equal(t, "Pagegithub_com_acme_blog_legacy_Article", s.DefinitionName(bound.(*types.Named)))
	})
}

func TestBind(t *testing.T) {
	u := fixture.New()
	s := newTestService(t, u)

	t.Run("generic instance equals the declared one", func(t *testing.T) {
		want := u.MustModel(t, "ArticleEntity")

		got, err := s.Bind(want.String())

		require.NoError(t, err)
		assert.True(t, types.Identical(want, got))
	})

	t.Run("nested generic instance", func(t *testing.T) {
		want := u.MustModel(t, "EntityMono")

		got, err := s.TypeOf(typeexpr.Parse(types.TypeString(want, nil)))

		require.NoError(t, err)
		assert.True(t, types.Identical(want, got))
	})

	t.Run("composite types", func(t *testing.T) {
		tests := map[string]types.Type{
			"string":                   types.Typ[types.String],
			"[]string":                 types.NewSlice(types.Typ[types.String]),
			"*int64":                   types.NewPointer(types.Typ[types.Int64]),
			"map[string][]int":         types.NewMap(types.Typ[types.String], types.NewSlice(types.Typ[types.Int])),
			"[3]bool":                  types.NewArray(types.Typ[types.Bool], 3),
			"map[string]any":           types.NewMap(types.Typ[types.String], types.Universe.Lookup("any").Type()),
			"[]" + fixture.ModelPath + ".Article": types.NewSlice(u.MustModel(t, "Article")),
		}
		for text, want := range tests {
			got, err := s.Bind(text)
			require.NoError(t, err, text)
			assert.True(t, types.Identical(want, got), text)
		}
	})

	t.Run("go/types expressions pass through", func(t *testing.T) {
		want := u.MustModel(t, "Article")

		got, err := s.TypeOf(typeexpr.Of(want))

		require.NoError(t, err)
		assert.Same(t, want, got)
	})

	t.Run("errors", func(t *testing.T) {
		for _, text := range []string{
			"model.Missing",
			"model.Article[string]",
			fixture.HexamonPath + ".Page[string,int]",
			"map[string",
			"[x]int",
			"",
		} {
			_, err := s.Bind(text)
			assert.ErrorIs(t, err, domain.ErrUnknownType, text)
		}

		_, err := s.TypeOf(nil)
		assert.ErrorIs(t, err, domain.ErrUnknownType)
	})
}

func TestFields(t *testing.T) {
	u := fixture.New()
	s := newTestService(t, u)

	t.Run("textual generic instance", func(t *testing.T) {
		fields, err := s.Fields(typeexpr.Parse(fixture.HexamonPath + ".Entity[" + fixture.ModelPath + ".Article]"))

		require.NoError(t, err)
		require.Len(t, fields, 3)
		assert.Equal(t, "entity", fields[2].Name)
		assert.True(t, types.Identical(u.MustModel(t, "Article"), fields[2].Type))
	})

	t.Run("naming strategy", func(t *testing.T) {
		s := newTestService(t, u)
		s.SetNamingStrategy(field.SnakeCase)

		fields, err := s.Fields(typeexpr.Of(u.MustModel(t, "Audit")))

		require.NoError(t, err)
		assert.Equal(t, "created_by", fields[0].Name)
	})

	t.Run("non-struct", func(t *testing.T) {
		_, err := s.Fields(typeexpr.Of(u.MustModel(t, "Status")))

		assert.ErrorIs(t, err, field.ErrNotStruct)
	})
}

func TestEnumValues(t *testing.T) {
	u := fixture.New()
	s := newTestService(t, u)

	status := u.MustModel(t, "Status").(*types.Named)
	priority := u.MustModel(t, "Priority").(*types.Named)
	article := u.MustModel(t, "Article").(*types.Named)

	assert.Equal(t, []interface{}{"draft", "published"}, s.EnumValues(status))
	assert.Equal(t, []interface{}{int64(1), int64(2)}, s.EnumValues(priority))
	assert.Nil(t, s.EnumValues(article))
}

type recordingDebugger struct {
	lines []string
}

func (d *recordingDebugger) Printf(format string, v ...interface{}) {
	d.lines = append(d.lines, format)
}

func TestDebugger(t *testing.T) {
	u := fixture.New()
	s := newTestService(t, u)
	debug := &recordingDebugger{}
	s.SetDebugger(debug)

	_, err := s.Fields(typeexpr.Of(u.MustModel(t, "Article")))

	require.NoError(t, err)
	assert.Len(t, debug.lines, 1)
}
