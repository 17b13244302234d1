package errors

var (
	ErrRetailerNotFound = &DomainError{
		Code:    "RETAILER_NOT_FOUND",
		Message: "retailer not found",
	}
	ErrTerminalNotFound = &DomainError{
		Code:    "TERMINAL_NOT_FOUND",
		Message: "terminal not found",
	}
	ErrMutationInFlight = &DomainError{
		Code:    "MUTATION_IN_FLIGHT",
		Message: "another terminal mutation is in progress",
	}
	ErrAgentExists = &DomainError{
		Code:    "AGENT_EXISTS",
		Message: "an agent with this email already exists",
	}
)
