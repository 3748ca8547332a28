package diag

// Diagnostic codes, numbered to match the conditions the upstream compiler
// reports so editors and log scrapers keyed on TS codes keep working.
const (
	CodeInvalidPattern        = 5010
	CodeCannotReadFile        = 5012
	CodeFailedToParseFile     = 5014
	CodeUnknownCompilerOption = 5023
	CodeOptionRequiresValue   = 5024
	CodeCannotWriteFile       = 5033
	CodeProjectConflictsWith  = 5042
	CodeCannotFindProject     = 5057
	CodeProjectPathMissing    = 5058
	CodeFileNotFound          = 6053
	CodeCircularExtends       = 18000
	CodeNoInputsFound         = 18003
)
