package application

import "errors"

// ErrNoSearcher is returned when a search is attempted before a searcher is configured.
var ErrNoSearcher = errors.New("no repository searcher configured")

// ErrInvalidPage is returned for page numbers below 1.
var ErrInvalidPage = errors.New("page must be a positive integer")

// ErrRepositoryNotListed is returned when a selection names a repository the
// browser is not currently showing.
var ErrRepositoryNotListed = errors.New("repository is not listed")
