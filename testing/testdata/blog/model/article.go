package model

import (
	"database/sql"
	"time"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

type Article struct {
	Title     string       `json:"title" binding:"required"`
	Body      string       `json:"body,omitempty"`
	Status    Status       `json:"status"`
	Published sql.NullTime `json:"published"`
	Author    *Author      `json:"author,omitempty"`
	Tags      []string     `json:"tags"`
}

type Author struct {
	Name     string    `json:"name"`
	Joined   time.Time `json:"joined"`
	Password string    `json:"-"`
}

type Category struct {
	Name string `json:"name"`
}
