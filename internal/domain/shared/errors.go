package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientBalance = NewDomainError("INSUFFICIENT_BALANCE", "Insufficient deposit balance available")
	ErrDuplicateRate       = NewDomainError("DUPLICATE_RATE", "Exchange rate already exists for this date, currency pair and rate type")
	ErrUnmappedPartner     = NewDomainError("UNMAPPED_PARTNER", "Slip record has no business partner mapped")
	ErrMissingVendorConfig = NewDomainError("MISSING_VENDOR_CONFIG", "Vendor configuration for required fixed fields is missing")
)
