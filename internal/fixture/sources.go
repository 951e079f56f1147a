package fixture

// Import paths of the packages a Universe knows about.
const (
	TimePath    = "time"
	SQLPath     = "database/sql"
	JSONPath    = "encoding/json"
	HexamonPath = "github.com/hexamon/hexaswag/pkg/hexamon"
	ModelPath   = "github.com/acme/blog/model"
	LegacyPath  = "github.com/acme/blog/legacy"
)

var stdSources = map[string]string{
	TimePath: `package time

type Time struct {
	wall uint64
	ext  int64
}

type Duration int64
`,
	SQLPath: `package sql

import "time"

type NullTime struct {
	Time  time.Time
	Valid bool
}

type NullString struct {
	String string
	Valid  bool
}
`,
	JSONPath: `package json

type RawMessage []byte
`,
	HexamonPath: `package hexamon

import "time"

type Entity[T any] struct {
	ID        string    ` + "`json:\"id\"`" + `
	CreatedAt time.Time ` + "`json:\"createdAt\"`" + `
	Entity    T         ` + "`json:\"entity\"`" + `
}

type Nested[T any] struct {
	Node     T           ` + "`json:\"node\"`" + `
	Children []Nested[T] ` + "`json:\"children\"`" + `
}

type Page[T any] struct {
	Items []T ` + "`json:\"items\"`" + `
	Page  int ` + "`json:\"page\"`" + `
	Size  int ` + "`json:\"size\"`" + `
	Total int ` + "`json:\"total\"`" + `
}

type Mono[T any] func() (T, error)

type Future[T any] <-chan T

type Flux[T any] <-chan T

type JSON map[string]any
`,
}

var userSources = map[string]string{
	ModelPath: `package model

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/hexamon/hexaswag/pkg/hexamon"
)

type Article struct {
	Title     string    ` + "`json:\"title\"`" + `
	Published time.Time ` + "`json:\"published\"`" + `
}

type Author struct {
	Name     string          ` + "`json:\"name\" binding:\"required\"`" + `
	Email    string          ` + "`json:\"email,omitempty\"`" + `
	Articles []Article       ` + "`json:\"articles\"`" + `
	Meta     json.RawMessage ` + "`json:\"meta\"`" + `
	LastSeen sql.NullTime    ` + "`json:\"lastSeen\"`" + `
	Secret   string          ` + "`json:\"-\"`" + `
	Internal string          ` + "`swaggerignore:\"true\"`" + `
	password string
}

type Audit struct {
	CreatedBy string
	UpdatedBy string
}

type Comment struct {
	Audit
	Body    string   ` + "`json:\"body\"`" + `
	Replies []Comment ` + "`json:\"replies\"`" + `
	Parent  *Comment ` + "`json:\"parent,omitempty\"`" + `
}

type PageView struct {
	URL string ` + "`json:\"url\"`" + `
}

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityHigh
)

type Tree[T any] struct {
	Value    T         ` + "`json:\"value\"`" + `
	Children []Tree[T] ` + "`json:\"children\"`" + `
	Path     [2]T      ` + "`json:\"path\"`" + `
}

type Envelope[T any] struct {
	Data T      ` + "`json:\"data\"`" + `
	Code Status ` + "`json:\"code\"`" + `
}

var (
	ArticleEntity  hexamon.Entity[Article]
	ArticleNested  hexamon.Nested[Article]
	ArticlePage    hexamon.Page[Article]
	PageViewPage   hexamon.Page[PageView]
	ArticleMono    hexamon.Mono[Article]
	ArticleFuture  hexamon.Future[Article]
	ArticleFlux    hexamon.Flux[Article]
	EntityMono     hexamon.Mono[hexamon.Entity[Article]]
	EntityFlux     hexamon.Flux[hexamon.Entity[Article]]
	ArticleRef     *hexamon.Entity[Article]
	CategoryTree   Tree[Article]
	EnvelopeEntity Envelope[hexamon.Entity[Article]]
	Document       hexamon.JSON
	Raw            json.RawMessage
	Created        time.Time
	Seen           sql.NullTime
	Tags           map[string][]string
	Blob           []byte
	Anything       any
	Inline         struct {
		Count int ` + "`json:\"count\"`" + `
	}
)
`,
	LegacyPath: `package legacy

type Article struct {
	Body string ` + "`json:\"body\"`" + `
}
`,
}
