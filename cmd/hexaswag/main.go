package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hexamon/hexaswag/internal/console"
	"github.com/hexamon/hexaswag/internal/consolidate"
	"github.com/hexamon/hexaswag/internal/domain"
	"github.com/hexamon/hexaswag/internal/gen"
	"github.com/hexamon/hexaswag/internal/parser/field"
	"github.com/hexamon/hexaswag/internal/strategy"
)

const (
	searchDirFlag        = "dir"
	excludeFlag          = "exclude"
	typesFlag            = "types"
	propertyStrategyFlag = "propertyStrategy"
	outputFlag           = "output"
	outputTypesFlag      = "outputTypes"
	parseVendorFlag      = "parseVendor"
	parseDependencyFlag  = "parseDependency"
	instanceNameFlag     = "instanceName"
	strategiesFlag       = "strategies"
	entityFieldFlag      = "entityField"
	quietFlag            = "quiet"
	tagsFlag             = "tags"
	packagePrefixFlag    = "packagePrefix"
	titleFlag            = "title"
	debugFlag            = "debug"
)

var initFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:    quietFlag,
		Aliases: []string{"q"},
		Usage:   "Make the logger quiet.",
	},
	&cli.StringFlag{
		Name:    searchDirFlag,
		Aliases: []string{"d"},
		Value:   "./",
		Usage:   "Directories you want to parse, comma separated",
	},
	&cli.StringFlag{
		Name:  excludeFlag,
		Usage: "Exclude directories when searching, comma separated",
	},
	&cli.StringFlag{
		Name:  typesFlag,
		Usage: "Root types to generate definitions for, comma separated (e.g. model.Article). All exported types by default",
	},
	&cli.StringFlag{
		Name:    propertyStrategyFlag,
		Aliases: []string{"p"},
		Value:   field.CamelCase,
		Usage:   "Property Naming Strategy like " + field.SnakeCase + "," + field.CamelCase + "," + field.PascalCase,
	},
	&cli.StringFlag{
		Name:    outputFlag,
		Aliases: []string{"o"},
		Value:   "./docs",
		Usage:   "Output directory for all the generated files (swagger.json, swagger.yaml, openapi.json)",
	},
	&cli.StringFlag{
		Name:    outputTypesFlag,
		Aliases: []string{"ot"},
		Value:   "json,yaml",
		Usage:   "Output types of generated files like json,yaml,oas3",
	},
	&cli.BoolFlag{
		Name:  parseVendorFlag,
		Usage: "Parse go files in 'vendor' folder, disabled by default",
	},
	&cli.BoolFlag{
		Name:    parseDependencyFlag,
		Aliases: []string{"pd"},
		Usage:   "Count types of imported packages when checking name uniqueness, disabled by default",
	},
	&cli.StringFlag{
		Name:  instanceNameFlag,
		Value: "",
		Usage: "This parameter can be used to name different document instances. It is optional.",
	},
	&cli.StringFlag{
		Name:  strategiesFlag,
		Value: gen.DefaultStrategiesFile,
		Usage: "File to read strategy table extensions from.",
	},
	&cli.StringFlag{
		Name:  entityFieldFlag,
		Value: consolidate.DefaultEntityField,
		Usage: "Serialized name of the wrapped value of entity wrappers",
	},
	&cli.StringFlag{
		Name:    tagsFlag,
		Aliases: []string{"t"},
		Value:   "",
		Usage:   "Build tags passed to the go command, comma separated",
	},
	&cli.StringFlag{
		Name:  packagePrefixFlag,
		Value: "",
		Usage: "Parse only packages whose import path match the given prefix, comma separated",
	},
	&cli.StringFlag{
		Name:  titleFlag,
		Value: "",
		Usage: "Title of the generated document",
	},
	&cli.BoolFlag{
		Name:  debugFlag,
		Usage: "Enable debug mode, disabled by default",
	},
}

func initAction(ctx *cli.Context) error {
	propStrategy := ctx.String(propertyStrategyFlag)

	switch propStrategy {
	case field.CamelCase, field.SnakeCase, field.PascalCase:
	default:
		return fmt.Errorf("not supported %s propertyStrategy", propStrategy)
	}

	if ctx.IsSet(debugFlag) {
		console.Logger.DebugLevel = 1
	}

	outputTypes := strings.Split(ctx.String(outputTypesFlag), ",")
	if len(outputTypes) == 0 {
		return fmt.Errorf("no output types specified")
	}
	logger := log.New(os.Stdout, "", log.LstdFlags)
	if ctx.Bool(quietFlag) {
		logger = log.New(io.Discard, "", log.LstdFlags)
		console.Logger.DebugLevel = -1
	}

	return gen.New().Build(ctx.Context, &gen.Config{
		SearchDir:          ctx.String(searchDirFlag),
		Excludes:           ctx.String(excludeFlag),
		Types:              ctx.String(typesFlag),
		PropNamingStrategy: propStrategy,
		OutputDir:          ctx.String(outputFlag),
		OutputTypes:        outputTypes,
		ParseVendor:        ctx.Bool(parseVendorFlag),
		ParseDependency:    ctx.Bool(parseDependencyFlag),
		InstanceName:       ctx.String(instanceNameFlag),
		StrategiesFile:     ctx.String(strategiesFlag),
		EntityField:        ctx.String(entityFieldFlag),
		BuildTags:          ctx.String(tagsFlag),
		PackagePrefix:      ctx.String(packagePrefixFlag),
		Title:              ctx.String(titleFlag),
		Debugger:           logger,
	})
}

// strategiesAction prints the strategy table, extended by the strategies file.
func strategiesAction(ctx *cli.Context) error {
	registry := strategy.Default()
	if _, err := registry.LoadFile(ctx.String(strategiesFlag)); err != nil {
		return err
	}

	out := ctx.App.Writer
	for _, s := range domain.Strategies() {
		for _, name := range registry.Names(s) {
			fmt.Fprintf(out, "%-10s %s\n", s, name)
		}
	}
	return nil
}

func main() {
	app := cli.NewApp()
	app.Version = gen.Version
	app.Usage = "Generate Swagger 2.0 definitions from Go types, consolidating hexamon wrapper types."
	app.Commands = []*cli.Command{
		{
			Name:    "init",
			Aliases: []string{"i"},
			Usage:   "Generate definitions",
			Action:  initAction,
			Flags:   initFlags,
		},
		{
			Name:    "strategies",
			Aliases: []string{"s"},
			Usage:   "List the strategy table",
			Action:  strategiesAction,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  strategiesFlag,
					Value: gen.DefaultStrategiesFile,
					Usage: "File to read strategy table extensions from.",
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
