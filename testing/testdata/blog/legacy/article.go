package legacy

// Article predates the model package.
type Article struct {
	Headline string `json:"headline"`
}
