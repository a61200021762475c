package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldPath      = "path"
	FieldID        = "id"
	FieldMonth     = "month"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldCount     = "count"
	FieldError     = "error"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentTracker = "tracker"
	ComponentStorage = "storage"
	ComponentIndex   = "index"
	ComponentConfig  = "config"
)

// Operations defines standard operation names
const (
	OpAdd     = "add"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpList    = "list"
	OpSummary = "summary"
	OpReport  = "report"
	OpCheck   = "check"
	OpRebuild = "rebuild"
)
