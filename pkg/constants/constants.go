// Package constants provides shared constants used throughout the bizcatalog codebase.
// This includes file permissions, the source domain policy, dedupe thresholds and
// default paths that must be consistent across the importer and the CLI.
package constants

import "time"

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Source constants identify the imported directory and its public domain.
const (
	// DisallowedDomain is never allowed to appear in a public field of the catalog.
	DisallowedDomain = "belarusinfo.by"

	// DefaultCountry is the country code of imported records.
	DefaultCountry = "BY"

	// SourceDoneStatus marks a fully scraped company row in the source database.
	SourceDoneStatus = "done"
)

// Taxonomy constants
const (
	// CategoryURLPrefix is prepended to a category slug when a category is fabricated.
	CategoryURLPrefix = "https://ibiz.by/"

	// DefaultTargetCategory receives every source category missing from the mapping table.
	DefaultTargetCategory = "uslugi-dlya-naseleniya"

	// CollisionSuffix marks a fabricated rubric whose slug is taken by a differently named rubric.
	CollisionSuffix = "-bi"

	// SlugPlaceholder replaces a slug that normalizes to nothing.
	SlugPlaceholder = "rubric"

	// UnnamedRubric is used for a source rubric with an empty display name.
	UnnamedRubric = "—"
)

// Limit constants
const (
	// MinPhoneDigits is the minimum digit count for a phone to act as a dedupe key.
	MinPhoneDigits = 9

	// MaxCityLength is the longest derived city accepted, in characters.
	MaxCityLength = 80

	// WriteBufferSize is the buffer size for catalog writes.
	WriteBufferSize = 64 * 1024
)

// Timeout constants
const (
	// SourceBusyTimeout is how long SQLite waits on a locked source database.
	SourceBusyTimeout = 5 * time.Second
)

// Path constants
const (
	// DefaultExistingCatalogPath is the catalog the site serves.
	DefaultExistingCatalogPath = "public/data/ibiz/companies.jsonl"

	// DefaultOutputCatalogPath is written when the import does not run in place.
	DefaultOutputCatalogPath = "public/data/ibiz/companies.with-belarusinfo.jsonl"

	// DefaultSourceDBPath is the scraped Belarusinfo database.
	DefaultSourceDBPath = "Info/belarusinfo.sqlite3"

	// TempSuffix is appended to the destination path while it is being written.
	TempSuffix = ".tmp"
)

// Format constants
const (
	// TimeFormatBackup is the UTC timestamp embedded in backup file names.
	TimeFormatBackup = "20060102T150405Z"

	// TimeFormatReport is the timestamp format used in run reports.
	TimeFormatReport = time.RFC3339
)
