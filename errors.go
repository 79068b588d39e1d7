package decktrivia

import "errors"

var (
	// ErrNotADeck is returned when the input path is not a .pptx deck.
	ErrNotADeck = errors.New("decktrivia: input is not a .pptx deck")

	// ErrInvalidConfig is returned for invalid configuration values.
	ErrInvalidConfig = errors.New("decktrivia: invalid configuration")

	// ErrCatalogDisabled is returned when catalog access is requested but
	// no catalog is configured.
	ErrCatalogDisabled = errors.New("decktrivia: conversion catalog is disabled")
)
