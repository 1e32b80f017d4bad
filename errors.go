package mdenrich

import (
	"errors"

	"github.com/alnah/go-mdenrich/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrInputTooLarge  = errors.New("markdown input exceeds maximum size")
	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrRender         = errors.New("render failed")
	ErrInvalidOption  = errors.New("invalid option")

	// TOC validation errors.
	ErrInvalidTOCDepth = errors.New("invalid TOC depth")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
