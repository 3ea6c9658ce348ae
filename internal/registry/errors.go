package registry

import "errors"

var (
	// ErrDuplicateLabel indicates the same caption label was declared twice
	// within one document. Caption numbering is a whole-document invariant,
	// so this aborts processing.
	ErrDuplicateLabel = errors.New("figref: duplicate label")
	// ErrUnknownLabel indicates a reference named a label no caption
	// declares.
	ErrUnknownLabel = errors.New("figref: unknown label")
)
