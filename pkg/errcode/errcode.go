// Package errcode enumerates error codes of user-facing errors.
package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Config errors
	ConfigReadError

	// Reference dataset errors
	ReferenceNotFoundError
	ReferenceReadError
	ReferenceFormatError
	ReferenceDownloadError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError

	// Populate errors
	PopulateNoRecordsError
	PopulateTruncateError
	PopulateCopyError

	// Open Food Facts errors
	OFFRequestError
	OFFStatusError
	OFFDecodeError

	// Cache errors
	CacheConnectionError

	// Web errors
	WebServerError

	// Analyze command errors
	AnalyzeInputError
	AnalyzeProductNotFoundError
	AnalyzeNoIngredientsError
)
