// Package gen generates the definitions document of a set of Go packages
// and writes it in the requested formats.
package gen

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path"
	"strings"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-openapi/spec"
	"sigs.k8s.io/yaml"

	"github.com/hexamon/hexaswag/internal/console"
	"github.com/hexamon/hexaswag/internal/orchestrator"
)

// Version of hexaswag.
const Version = "v0.1.0"

// DefaultInstanceName prefixes nothing; other instance names prefix every
// generated file.
const DefaultInstanceName = "swagger"

type genTypeWriter func(*Config, *spec.Swagger) error

// Gen presents a generate tool for hexaswag.
type Gen struct {
	json          func(data interface{}) ([]byte, error)
	jsonIndent    func(data interface{}) ([]byte, error)
	jsonToYAML    func(data []byte) ([]byte, error)
	toV3          func(doc *openapi2.T) (*openapi3.T, error)
	outputTypeMap map[string]genTypeWriter
	debug         Debugger
}

// Debugger is the interface that wraps the basic Printf method.
type Debugger interface {
	Printf(format string, v ...interface{})
}

// New creates a new Gen.
func New() *Gen {
	gen := Gen{
		json: json.Marshal,
		jsonIndent: func(data interface{}) ([]byte, error) {
			return json.MarshalIndent(data, "", "    ")
		},
		jsonToYAML: yaml.JSONToYAML,
		toV3:       openapi2conv.ToV3,
		debug:      log.New(os.Stdout, "", log.LstdFlags),
	}

	gen.outputTypeMap = map[string]genTypeWriter{
		"json": gen.writeJSONSwagger,
		"yaml": gen.writeYAMLSwagger,
		"yml":  gen.writeYAMLSwagger,
		"oas3": gen.writeOpenAPI3,
	}

	return &gen
}

// Build generates the document for config.SearchDir and writes one file per
// output type.
func (g *Gen) Build(ctx context.Context, config *Config) error {
	if config.Debugger != nil {
		g.debug = config.Debugger
	}
	config.setDefaults()
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	searchDirs := splitList(config.SearchDir)
	for _, searchDir := range searchDirs {
		if _, err := os.Stat(searchDir); os.IsNotExist(err) {
			return fmt.Errorf("dir: %s does not exist", searchDir)
		}
	}

	if config.StrategiesFile != DefaultStrategiesFile {
		if _, err := os.Stat(config.StrategiesFile); err != nil {
			return fmt.Errorf("could not open strategies file: %w", err)
		}
	}

	console.Logger.Debug("Generate definitions....")

	orc := orchestrator.New(&orchestrator.Config{
		ParseVendor:        config.ParseVendor,
		ParseDependency:    config.ParseDependency,
		PropNamingStrategy: config.PropNamingStrategy,
		Excludes:           parseExcludes(config.Excludes),
		PackagePrefix:      splitList(config.PackagePrefix),
		BuildTags:          splitList(config.BuildTags),
		StrategiesFile:     config.StrategiesFile,
		EntityField:        config.EntityField,
		Debug:              g.debug,
	})

	swagger, err := orc.Parse(ctx, searchDirs, splitList(config.Types))
	if err != nil {
		return err
	}
	swagger.Info.Title = config.Title
	swagger.Info.Version = config.Version

	// Infinity and NaN are not valid JSON
	g.debug.Printf("Sanitizing definitions to remove invalid numeric values...")
	sanitizeDefinitions(swagger.Definitions)

	if err := os.MkdirAll(config.OutputDir, os.ModePerm); err != nil {
		return err
	}

	for _, outputType := range config.OutputTypes {
		outputType = strings.ToLower(strings.TrimSpace(outputType))
		if typeWriter, ok := g.outputTypeMap[outputType]; ok {
			if err := typeWriter(config, swagger); err != nil {
				return err
			}
		} else {
			log.Printf("output type '%s' not supported", outputType)
		}
	}

	return nil
}

func (g *Gen) writeJSONSwagger(config *Config, swagger *spec.Swagger) error {
	jsonFileName := path.Join(config.OutputDir, config.fileName("swagger.json"))

	b, err := g.jsonIndent(swagger)
	if err != nil {
		return err
	}

	if err := g.writeFile(b, jsonFileName); err != nil {
		return err
	}

	console.Logger.Debug("create swagger.json at %+v", jsonFileName)

	return nil
}

func (g *Gen) writeYAMLSwagger(config *Config, swagger *spec.Swagger) error {
	yamlFileName := path.Join(config.OutputDir, config.fileName("swagger.yaml"))

	b, err := g.json(swagger)
	if err != nil {
		return err
	}

	y, err := g.jsonToYAML(b)
	if err != nil {
		return fmt.Errorf("cannot covert json to yaml error: %s", err)
	}

	if err := g.writeFile(y, yamlFileName); err != nil {
		return err
	}

	console.Logger.Debug("create swagger.yaml at %+v", yamlFileName)

	return nil
}

// writeOpenAPI3 converts the Swagger 2.0 document and writes it as
// openapi.json. Definitions become components/schemas.
func (g *Gen) writeOpenAPI3(config *Config, swagger *spec.Swagger) error {
	fileName := path.Join(config.OutputDir, config.fileName("openapi.json"))

	b, err := g.json(swagger)
	if err != nil {
		return err
	}

	var doc2 openapi2.T
	if err := json.Unmarshal(b, &doc2); err != nil {
		return fmt.Errorf("cannot read swagger 2.0 document: %w", err)
	}

	doc3, err := g.toV3(&doc2)
	if err != nil {
		return fmt.Errorf("cannot convert to openapi 3: %w", err)
	}

	out, err := g.jsonIndent(doc3)
	if err != nil {
		return err
	}

	if err := g.writeFile(out, fileName); err != nil {
		return err
	}

	console.Logger.Debug("create openapi.json at %+v", fileName)

	return nil
}

func (g *Gen) writeFile(b []byte, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	defer f.Close()

	_, err = f.Write(b)

	return err
}
