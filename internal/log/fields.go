package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldCollection = "collection"
	FieldKey        = "key"
	FieldEntityID   = "entity_id"
	FieldCount      = "count"
	FieldBackend    = "backend"
	FieldSnapshot   = "snapshot_file"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentStore    = "store"
	ComponentTracker  = "tracker"
	ComponentBackup   = "backup"
	ComponentSeed     = "seed"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentCache    = "cache"
	ComponentBackend  = "backend"
	ComponentSecurity = "security"
)

// Operations defines standard operation names
const (
	OpAdd     = "add"
	OpRemove  = "remove"
	OpToggle  = "toggle"
	OpList    = "list"
	OpExport  = "export"
	OpImport  = "import"
	OpSeed    = "seed"
	OpMigrate = "migrate"
)
