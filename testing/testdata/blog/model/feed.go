package model

import (
	"time"

	"github.com/hexamon/hexaswag/pkg/hexamon"
)

// Feed is the landing page payload.
type Feed struct {
	Featured   hexamon.Entity[Article]                  `json:"featured"`
	Categories hexamon.Nested[Category]                 `json:"categories"`
	Listing    hexamon.Page[Article]                    `json:"listing"`
	Latest     hexamon.Mono[Article]                    `json:"latest"`
	Stream     hexamon.Flux[Author]                     `json:"stream"`
	Settings   hexamon.JSON                             `json:"settings"`
	Refreshed  time.Time                                `json:"refreshed"`
	Pending    hexamon.Future[*hexamon.Entity[Article]] `json:"pending"`
}
