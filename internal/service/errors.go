package service

import (
	"errors"
	"fmt"
)

// ErrNoWorkspace means no workspace could be resolved and none could
// be bootstrapped; blog post derivation fails closed on it
var ErrNoWorkspace = errors.New("no workspace available for blog posts")

// StoreError is a failed write of the primary SeoArticle record. It
// abandons the affected article only; siblings in the batch continue.
type StoreError struct {
	ExternalID string
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("seo article write failed for %s: %v", e.ExternalID, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// DerivationError is a failed blog-post derivation downstream of a
// successful SeoArticle write. It is an observability event, not a
// control-flow signal: the SeoArticle row is retained and the batch
// continues.
type DerivationError struct {
	ExternalID   string
	SeoArticleID string
	Stage        string // "workspace", "slug" or "blog_post"
	Err          error
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("blog post derivation failed at %s for seo article %s: %v", e.Stage, e.SeoArticleID, e.Err)
}

func (e *DerivationError) Unwrap() error {
	return e.Err
}
