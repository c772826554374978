package types

import "errors"

var (
	ErrUnknownReport        = errors.New("unknown report; run 'erp-reports reports' to list the available ones")
	ErrMissingSource        = errors.New("no row source given; use --source or set 'source' in the config file")
	ErrUnsupportedSource    = errors.New("unsupported row source")
	ErrUnsupportedFormat    = errors.New("unsupported export format")
	ErrInvalidFilter        = errors.New("invalid filter, expected label=value")
	ErrExportFailed         = errors.New("no report file could be exported")
	ErrStorageNotConfigured = errors.New("upload requested but no storage bucket is configured")
)
