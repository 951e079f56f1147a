package testing_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/go-openapi/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexamon/hexaswag/internal/gen"
	"github.com/hexamon/hexaswag/internal/orchestrator"
	"github.com/hexamon/hexaswag/internal/schema"
)

const (
	blogDir     = "testdata/blog"
	modelDir    = "testdata/blog/model"
	hexamonPath = "github.com/hexamon/hexaswag/pkg/hexamon"
)

func ref(name string) spec.Schema {
	return *schema.RefSchema(name)
}

func definitionNames(swagger *spec.Swagger) []string {
	names := make([]string, 0, len(swagger.Definitions))
	for name := range swagger.Definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func TestBlogIntegration(t *testing.T) {
	service := orchestrator.New(&orchestrator.Config{})

	swagger, err := service.Parse(context.Background(), []string{modelDir}, []string{"model.Feed"})
	require.NoError(t, err, "Failed to parse blog models")

	t.Logf("Total definitions generated: %d", len(swagger.Definitions))
	for _, name := range definitionNames(swagger) {
		t.Logf("  - %s", name)
	}

	feed, ok := swagger.Definitions["Feed"]
	require.True(t, ok, "Feed definition should exist")

	t.Run("Entity wrappers are consolidated", func(t *testing.T) {
		assert.Equal(t, ref("ArticleEntity"), feed.Properties["featured"])

		entity := swagger.Definitions["ArticleEntity"]
		assert.Contains(t, entity.Properties, "_id")
		assert.Contains(t, entity.Properties, "_createdAt")
		assert.Equal(t, "date-time", entity.Properties["_createdAt"].Format)
		assert.Contains(t, entity.Properties, "title")
		assert.Contains(t, entity.Properties, "published")
		assert.NotContains(t, entity.Properties, "entity")
		assert.NotContains(t, entity.Properties, "_entity")
		assert.Len(t, entity.Properties, len(swagger.Definitions["Article"].Properties)+2)
	})

	t.Run("Nested wrappers are consolidated", func(t *testing.T) {
		assert.Equal(t, ref("CategoryNested"), feed.Properties["categories"])

		nested := swagger.Definitions["CategoryNested"]
		assert.Equal(t, ref("Category"), nested.Properties["node"])
		require.NotNil(t, nested.Properties["children"].Items)
		assert.Equal(t, ref("CategoryNested"), *nested.Properties["children"].Items.Schema)
	})

	t.Run("Page references are renamed", func(t *testing.T) {
		assert.Equal(t, ref("HexamonPageArticle"), feed.Properties["listing"])
		assert.Contains(t, swagger.Definitions, "PageArticle")
		assert.Equal(t, swagger.Definitions["PageArticle"], swagger.Definitions["HexamonPageArticle"])
	})

	t.Run("Single and array wrappers are unwrapped", func(t *testing.T) {
		assert.Equal(t, ref("Article"), feed.Properties["latest"])

		stream := feed.Properties["stream"]
		assert.True(t, stream.Type.Contains("array"))
		assert.Equal(t, ref("Author"), *stream.Items.Schema)

		assert.Equal(t, ref("ArticleEntity"), feed.Properties["pending"])
	})

	t.Run("Map-like and date-time types", func(t *testing.T) {
		assert.True(t, feed.Properties["settings"].Type.Contains("object"))
		assert.Equal(t, "date-time", feed.Properties["refreshed"].Format)
		assert.Equal(t, "date-time", swagger.Definitions["Author"].Properties["joined"].Format)
		assert.Equal(t, "date-time", swagger.Definitions["Article"].Properties["published"].Format)
	})

	t.Run("Struct fields follow json tags", func(t *testing.T) {
		article := swagger.Definitions["Article"]
		assert.Equal(t, []string{"title"}, article.Required)
		assert.Equal(t, ref("Author"), article.Properties["author"])
		assert.NotContains(t, swagger.Definitions["Author"].Properties, "password")
		assert.NotContains(t, swagger.Definitions["Author"].Properties, "Password")
	})

	t.Run("Wrapper types are not documented themselves", func(t *testing.T) {
		for _, name := range definitionNames(swagger) {
			assert.NotContains(t, []string{"EntityArticle", "NestedCategory", "MonoArticle", "FluxAuthor", "JSON", "Time"}, name)
		}
	})

	t.Run("All references resolve", func(t *testing.T) {
		assert.Empty(t, schema.DanglingRefs(swagger.Definitions))
	})
}

func TestBlogFullPathNames(t *testing.T) {
	service := orchestrator.New(&orchestrator.Config{})

	swagger, err := service.Parse(context.Background(), []string{blogDir}, nil)
	require.NoError(t, err)

	names := definitionNames(swagger)
	assert.Contains(t, names, "github_com_hexamon_hexaswag_testing_testdata_blog_model.Article")
	assert.Contains(t, names, "github_com_hexamon_hexaswag_testing_testdata_blog_legacy.Article")
	assert.NotContains(t, names, "Article")
	assert.Contains(t, names, "github_com_hexamon_hexaswag_testing_testdata_blog_model.ArticleEntity")
	assert.Contains(t, names, "Feed")
	assert.Contains(t, names, "Category")
}

func TestBlogStrategiesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".hexaswag")
	require.NoError(t, os.WriteFile(file, []byte("// pages are entities\nentity "+hexamonPath+".Page\n"), 0o644))

	service := orchestrator.New(&orchestrator.Config{StrategiesFile: file})

	_, err := service.Parse(context.Background(), []string{modelDir}, []string{"model.Feed"})
	require.Error(t, err, "a base name bound to two strategies is rejected")
}

func TestBlogGenerate(t *testing.T) {
	outputDir := t.TempDir()

	err := gen.New().Build(context.Background(), &gen.Config{
		SearchDir:   modelDir,
		OutputDir:   outputDir,
		OutputTypes: []string{"json", "yaml", "oas3"},
		Types:       "model.Feed",
		Title:       "blog",
	})
	require.NoError(t, err)

	for _, name := range []string{"swagger.json", "swagger.yaml", "openapi.json"} {
		_, err := os.Stat(filepath.Join(outputDir, name))
		require.NoError(t, err, name)
	}

	b, err := os.ReadFile(filepath.Join(outputDir, "swagger.json"))
	require.NoError(t, err)

	var swagger spec.Swagger
	require.NoError(t, json.Unmarshal(b, &swagger))
	assert.Equal(t, "blog", swagger.Info.Title)
	assert.Contains(t, swagger.Definitions, "ArticleEntity")
	assert.Contains(t, swagger.Definitions, "HexamonPageArticle")

	b, err = os.ReadFile(filepath.Join(outputDir, "openapi.json"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "#/components/schemas/ArticleEntity")
}
