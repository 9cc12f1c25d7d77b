// Package constants provides shared constants used throughout itemctl.
// This includes default paths, field names, file permissions and report
// limits that should be consistent across commands.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Default paths, relative to the working directory of a run
const (
	// DefaultItemsPath is the item collection rewritten by merge and reclassify
	DefaultItemsPath = "database/items.json"

	// DefaultReferenceCSV is the header-bearing correction source
	DefaultReferenceCSV = "database/reference_matching.csv"

	// DefaultTemplatePath is where the template command writes its CSV
	DefaultTemplatePath = "item_updates_template.csv"

	// ConfigFileName is the config file searched for in $HOME and the working directory
	ConfigFileName = ".itemctl"

	// EnvPrefix prefixes every environment variable read through viper
	EnvPrefix = "ITEMCTL"
)

// Default field names of an item object
const (
	FieldKey         = "IconFile"
	FieldPrimary     = "EnglishName"
	FieldSecondary   = "PolishName"
	FieldCategory    = "Category"
	FieldSubCategory = "SubCategory"
	FieldBaseName    = "BaseName"
)

// Default column names of the reference correction CSV
const (
	ColumnKey              = "IconFile"
	ColumnCorrectPrimary   = "CorrectEnglishName"
	ColumnCorrectSecondary = "CorrectPolishName"
)

// Output limits
const (
	// ReferenceReportLimit caps change lines printed for reference CSV batches
	ReferenceReportLimit = 20

	// ReclassifySampleSize is the number of example items shown per group
	ReclassifySampleSize = 10

	// JSONIndent is the indentation used when rewriting the collection
	JSONIndent = "    "
)
