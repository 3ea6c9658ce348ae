package figref

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-figref/internal/registry"
)

// Sentinel errors re-exported from the registry so callers can match with
// errors.Is without importing internal packages.
var (
	// ErrDuplicateLabel indicates the same caption label was declared twice
	// in one document. Fatal: numbering is a whole-document invariant.
	ErrDuplicateLabel = registry.ErrDuplicateLabel
	// ErrUnknownLabel indicates a reference named a label never registered.
	ErrUnknownLabel = registry.ErrUnknownLabel
)

const (
	duplicateLabelCode  = "FIGREF_DUPLICATE_LABEL"
	unknownLabelCode    = "FIGREF_UNKNOWN_LABEL"
	parseFailedCode     = "FIGREF_PARSE_FAILED"
	directiveFailedCode = "FIGREF_DIRECTIVE_FAILED"
)

func wrapScanError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, registry.ErrDuplicateLabel) {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "caption pre-scan failed").
			WithTextCode(duplicateLabelCode)
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "caption pre-scan failed").
		WithTextCode(parseFailedCode)
}

func wrapParseError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "directive extraction failed").
		WithTextCode(parseFailedCode)
}

func wrapRenderError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, registry.ErrDuplicateLabel):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "caption registration failed").
			WithTextCode(duplicateLabelCode)
	case errors.Is(err, registry.ErrUnknownLabel):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "reference lookup failed").
			WithTextCode(unknownLabelCode)
	default:
		return goerrors.Wrap(err, goerrors.CategoryValidation, "directive rendering failed").
			WithTextCode(directiveFailedCode)
	}
}
