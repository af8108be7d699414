package model

// Owner identifies the account that owns a Repository.
type Owner struct {
	Login     string
	AvatarURL string
}

// Repository is a single search result from GitHub. Values are read-only once
// received from the search API.
type Repository struct {
	ID              int64
	FullName        string
	Description     string
	StargazersCount int
	OpenIssuesCount int
	HTMLURL         string
	Owner           Owner
}
