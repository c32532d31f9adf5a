package etperr

// template defines a registered error type.
type template struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]template{
	// ============================================
	// Schema Errors (E100-E199)
	// ============================================

	"E100": {
		Category: CategorySchema,
		Message:  "No schema registered for message",
	},
	"E101": {
		Category: CategorySchema,
		Message:  "Message encode failed",
	},
	"E102": {
		Category: CategorySchema,
		Message:  "Message decode failed",
	},
	"E103": {
		Category: CategorySchema,
		Message:  "Schema catalog failed to load",
	},

	// ============================================
	// Transport Errors (E200-E299)
	// ============================================

	"E200": {
		Category: CategoryTransport,
		Message:  "WebSocket transport failed",
	},
	"E201": {
		Category: CategoryTransport,
		Message:  "Message body compression failed",
	},

	// ============================================
	// Protocol Errors (E300-E399)
	// ============================================

	"E300": {
		Category: CategoryProtocol,
		Message:  "Protocol exception received",
	},
	"E301": {
		Category: CategoryProtocol,
		Message:  "Unsupported websocket message received",
	},

	// ============================================
	// Config Errors (E400-E499)
	// ============================================

	"E400": {
		Category: CategoryConfig,
		Message:  "Invalid endpoint URL",
	},
	"E401": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},
}

// Sentinels for matching with errors.Is.
var (
	ErrNoSchema           = &EtpError{Code: "E100", Category: CategorySchema, Message: "No schema registered for message"}
	ErrEncode             = &EtpError{Code: "E101", Category: CategorySchema, Message: "Message encode failed"}
	ErrDecode             = &EtpError{Code: "E102", Category: CategorySchema, Message: "Message decode failed"}
	ErrCatalog            = &EtpError{Code: "E103", Category: CategorySchema, Message: "Schema catalog failed to load"}
	ErrTransport          = &EtpError{Code: "E200", Category: CategoryTransport, Message: "WebSocket transport failed"}
	ErrCompression        = &EtpError{Code: "E201", Category: CategoryTransport, Message: "Message body compression failed"}
	ErrUnsupportedMessage = &EtpError{Code: "E301", Category: CategoryProtocol, Message: "Unsupported websocket message received"}
	ErrURL                = &EtpError{Code: "E400", Category: CategoryConfig, Message: "Invalid endpoint URL"}
	ErrConfig             = &EtpError{Code: "E401", Category: CategoryConfig, Message: "Invalid configuration"}
)
