package enrichment

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies why an enrichment failed
type Kind int

const (
	KindTimeout Kind = iota + 1
	KindDependencyFailure
	KindMissingReference
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindDependencyFailure:
		return "dependency_failure"
	case KindMissingReference:
		return "missing_reference"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind.
var (
	ErrTimeout           = errors.New("enrichment: lookup timed out")
	ErrDependencyFailure = errors.New("enrichment: dependency failure")
	ErrMissingReference  = errors.New("enrichment: article reference not found")
)

// ErrNotFound may be returned (or wrapped) by a collaborator to signal an absent
// value. It is treated exactly like a nil result.
var ErrNotFound = errors.New("not found")

// Error is the terminal error of a failed enrichment.
type Error struct {
	Kind      Kind
	Op        string // "article", "image" or "video"
	ArticleID string
	URL       string
	Err       error // cause; set for dependency failures
}

func (e *Error) Error() string {
	target := e.ArticleID
	if e.URL != "" {
		target = e.URL
	}
	switch e.Kind {
	case KindMissingReference:
		return fmt.Sprintf("article %q: reference not found", e.ArticleID)
	case KindTimeout:
		return fmt.Sprintf("article %q: %s lookup %q timed out", e.ArticleID, e.Op, target)
	default:
		return fmt.Sprintf("article %q: %s lookup %q failed: %v", e.ArticleID, e.Op, target, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel for e.Kind
func (e *Error) Is(target error) bool {
	switch target {
	case ErrTimeout:
		return e.Kind == KindTimeout
	case ErrDependencyFailure:
		return e.Kind == KindDependencyFailure
	case ErrMissingReference:
		return e.Kind == KindMissingReference
	}
	return false
}

// KindOf returns the Kind carried by err, or 0 if err is not an enrichment error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// classify maps a collaborator error onto the taxonomy.
// A collaborator that gave up because its own deadline passed counts as a timeout.
func classify(op, articleID, url string, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Op: op, ArticleID: articleID, URL: url, Err: err}
	}
	return &Error{Kind: KindDependencyFailure, Op: op, ArticleID: articleID, URL: url, Err: err}
}
