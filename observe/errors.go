package observe

import "errors"

// Configuration errors.
var (
	// ErrMissingServiceName indicates Config.ServiceName is empty.
	ErrMissingServiceName = errors.New("observe: service name is required")

	// ErrInvalidSamplePct indicates Tracing.SamplePct is not in [0.0, 1.0].
	ErrInvalidSamplePct = errors.New("observe: sample percentage must be between 0.0 and 1.0")

	// ErrInvalidExporter indicates an unknown exporter name.
	ErrInvalidExporter = errors.New("observe: invalid exporter")

	// ErrInvalidLogLevel indicates an unknown log level.
	ErrInvalidLogLevel = errors.New("observe: invalid log level")
)

// Exporter errors.
var (
	// ErrEndpointNotConfigured indicates a required endpoint environment
	// variable is not set.
	ErrEndpointNotConfigured = errors.New("observe: exporter endpoint not configured")
)

// RedactedFields lists log field keys that are always masked. Outbound
// payloads carry identity data, so anything resembling a subject attribute
// or a credential never reaches the log stream in the clear.
var RedactedFields = []string{
	"ssn",
	"document_number",
	"passport",
	"date_of_birth",
	"email",
	"phone",
	"address",
	"payload",
	"password",
	"secret",
	"token",
	"api_key",
}
