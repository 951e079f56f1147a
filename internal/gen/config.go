package gen

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/hexamon/hexaswag/internal/consolidate"
	"github.com/hexamon/hexaswag/internal/parser/field"
	"github.com/hexamon/hexaswag/internal/strategy"
)

// DefaultStrategiesFile is the location hexaswag looks for strategy table
// extensions. It may be absent.
const DefaultStrategiesFile = strategy.DefaultTableFile

// OutputTypes lists the supported output types.
var OutputTypes = []string{"json", "yaml", "yml", "oas3"}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config presents Gen configurations.
type Config struct {
	Debugger Debugger

	// SearchDir the generator would parse, comma separated if multiple
	SearchDir string

	// Excludes dirs in SearchDir, comma separated
	Excludes string

	// OutputDir represents the output directory for all the generated files
	OutputDir string

	// OutputTypes define types of files which should be generated
	OutputTypes []string

	// Types are the root type names, comma separated. Empty means every
	// exported type of the loaded packages.
	Types string

	// PropNamingStrategy represents property naming strategy like snake case,camel case,pascal case
	PropNamingStrategy string

	// InstanceName is used to get distinct names for different documents in the
	// same project. The default value is "swagger".
	InstanceName string

	// Title and Version fill the info object.
	Title   string
	Version string

	// ParseVendor whether vendor folders are parsed
	ParseVendor bool

	// ParseDependency whether types of imported packages count for name uniqueness
	ParseDependency bool

	// Parse only packages whose import path match the given prefix, comma separated
	PackagePrefix string

	// BuildTags passed to the go command, comma separated
	BuildTags string

	// StrategiesFile extends the strategy table.
	StrategiesFile string

	// EntityField is the serialized name of the wrapped value of entity wrappers.
	EntityField string
}

func (c *Config) setDefaults() {
	if c.InstanceName == "" {
		c.InstanceName = DefaultInstanceName
	}
	if c.PropNamingStrategy == "" {
		c.PropNamingStrategy = field.CamelCase
	}
	if c.StrategiesFile == "" {
		c.StrategiesFile = DefaultStrategiesFile
	}
	if c.EntityField == "" {
		c.EntityField = consolidate.DefaultEntityField
	}
	if c.Title == "" {
		c.Title = "hexaswag"
	}
	if c.Version == "" {
		c.Version = "1.0"
	}
	for i, outputType := range c.OutputTypes {
		c.OutputTypes[i] = strings.ToLower(strings.TrimSpace(outputType))
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	outputTypes := make([]interface{}, len(OutputTypes))
	for i, t := range OutputTypes {
		outputTypes[i] = t
	}

	return validation.ValidateStruct(c,
		validation.Field(&c.SearchDir, validation.Required),
		validation.Field(&c.OutputDir, validation.Required),
		validation.Field(&c.OutputTypes, validation.Required, validation.Each(validation.In(outputTypes...))),
		validation.Field(&c.PropNamingStrategy, validation.In(field.CamelCase, field.SnakeCase, field.PascalCase)),
		validation.Field(&c.InstanceName, validation.Match(identifier)),
		validation.Field(&c.EntityField, validation.Required),
	)
}

// fileName prefixes name with the instance name unless it is the default.
func (c *Config) fileName(name string) string {
	if c.InstanceName != "" && c.InstanceName != DefaultInstanceName {
		return c.InstanceName + "_" + name
	}
	return name
}

// parseExcludes converts comma-separated exclude string to map.
func parseExcludes(excludes string) map[string]struct{} {
	result := make(map[string]struct{})
	for _, exclude := range splitList(excludes) {
		result[exclude] = struct{}{}
	}
	return result
}

// splitList converts a comma-separated string to a slice, dropping empty items.
func splitList(list string) []string {
	if list == "" {
		return nil
	}

	var result []string
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
