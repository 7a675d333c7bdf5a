// Package logging provides structured logging for the vlantrunk CLI.
package logging

// Standard field names so every command logs the same keys.
const (
	// FieldInvocationID identifies one CLI invocation across all its API calls.
	FieldInvocationID = "invocation_id"

	// FieldCommand is the subcommand being run (e.g., "add_vlan_trunks").
	FieldCommand = "command"

	// FieldRequestID is the X-Request-Id sent with a single API request.
	FieldRequestID = "request_id"

	// FieldMethod is the HTTP method of an API request.
	FieldMethod = "method"

	// FieldOperation is the provider service method (e.g., "SoftLayer_Account/getHardware").
	FieldOperation = "operation"

	// FieldStatusCode is the HTTP status code of an API response.
	FieldStatusCode = "status_code"

	// FieldDuration is the duration of an API request.
	FieldDuration = "duration"

	// FieldAttempt is the 1-based attempt number of a retried request.
	FieldAttempt = "attempt"

	// FieldIdentifier is the raw interface identifier given by the user.
	FieldIdentifier = "identifier"

	// FieldIdentifierKind is the parsed identifier form (ip, interface, vlan_name).
	FieldIdentifierKind = "identifier_kind"

	// FieldHardwareID is the provider ID of a resolved server.
	FieldHardwareID = "hardware_id"

	// FieldComponentID is the provider ID of a network component.
	FieldComponentID = "component_id"

	// FieldUplinkID is the provider ID of an uplink component.
	FieldUplinkID = "uplink_id"

	// FieldVLANID is the provider ID of a VLAN.
	FieldVLANID = "vlan_id"

	// FieldVLANName is the name of a VLAN.
	FieldVLANName = "vlan_name"
)
