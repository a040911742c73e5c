package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrInvestigationNotFound = goerr.New("investigation not found")
	ErrEmptyBrief            = goerr.New("brief text is empty")
	ErrUnsupportedFileType   = goerr.New("unsupported file type: only .txt and .md briefs can be read")
	ErrAPIKeyNotConfigured   = goerr.New("LLM API key is not configured")
)
