// Package observe provides telemetry for the outbound resilience layer:
// OpenTelemetry tracing and metrics, a redacting JSON logger, and the audit
// trail required for identity-verification compliance.
//
// Telemetry bootstraps the providers once per process; CallRecorder plugs
// into a client as its Recorder and fans every terminal call outcome out to
// metrics, logs, spans, and the audit sink. Log fields that name identity
// attributes (ssn, email, document numbers) are always masked.
package observe
