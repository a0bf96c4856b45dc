package vefur

import (
	"database/sql"
	"errors"
)

var (
	// ErrNotFound is returned when a requested post does not exist.
	ErrNotFound = sql.ErrNoRows

	// ErrUnknownRoute is returned by MetadataFor for paths outside the catalog.
	ErrUnknownRoute = errors.New("vefur: unknown route")

	// ErrInvalidCatalog wraps every authoring defect found by Catalog.Validate.
	ErrInvalidCatalog = errors.New("vefur: invalid route catalog")
)
