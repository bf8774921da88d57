package services

import "errors"

// Validation failures surfaced by ledger and pricing operations. All of
// them leave the quotation untouched; callers match with errors.Is.
var (
	ErrUnknownSKU               = errors.New("sku not found in catalog")
	ErrEmptySizeBreakdown       = errors.New("size breakdown has no boxes")
	ErrMissingDiscountSelection = errors.New("rate discount not selected (must be 55 or 57)")
	ErrInvalidSampleInput       = errors.New("sample pcs and rate must be whole numbers")
	ErrIndexOutOfRange          = errors.New("item index out of range")
	ErrSnapshotRead             = errors.New("quotation snapshot could not be read")
	ErrSnapshotWrite            = errors.New("quotation snapshot could not be written")
)
