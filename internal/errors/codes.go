package errors

// Error codes for the Utopia front end.
//
// Error code ranges:
// E0100-E0199: Lexer errors
// E0200-E0299: Parser errors
// E0300-E0399: Type errors
// E0400-E0499: Cross-language errors
// W0001-W0099: Warnings

const (
	// E0101: Character that starts no token
	ErrorUnexpectedCharacter = "E0101"

	// E0102: String, character or template literal without its closing quote
	ErrorUnterminatedLiteral = "E0102"

	// E0201: A required token is missing
	ErrorExpectedToken = "E0201"

	// E0202: Token that cannot start an expression
	ErrorUnexpectedToken = "E0202"

	// E0203: `lang::function(args)` is incomplete
	ErrorMalformedCrossCall = "E0203"

	// E0204: Array or object literal is malformed
	ErrorMalformedLiteral = "E0204"

	// E0205: Input ended in the middle of a construct
	ErrorUnexpectedEOF = "E0205"

	// E0301: Initializer does not match the declared type
	ErrorTypeMismatch = "E0301"

	// E0302: Cross-call argument does not match the parameter type
	ErrorArgumentType = "E0302"

	// E0401: Cross-call names a language with no block
	ErrorUnknownLanguage = "E0401"

	// E0402: Cross-call names a function the language does not declare
	ErrorUndefinedFunction = "E0402"

	// E0403: Wrong number of cross-call arguments
	ErrorArityMismatch = "E0403"

	// E0404: Same function declared twice in one language
	ErrorDuplicateFunction = "E0404"

	// W0001: Language disabled in the project configuration
	WarningDisabledLanguage = "W0001"

	// W0002: Annotation the language adapter does not recognise
	WarningUnresolvedType = "W0002"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUnexpectedCharacter:
		return "Source contains a character that starts no token"
	case ErrorUnterminatedLiteral:
		return "Literal is missing its closing quote"
	case ErrorExpectedToken:
		return "A required token is missing"
	case ErrorUnexpectedToken:
		return "Token is not valid at this position"
	case ErrorMalformedCrossCall:
		return "Cross-language call is incomplete"
	case ErrorMalformedLiteral:
		return "Array or object literal is malformed"
	case ErrorUnexpectedEOF:
		return "Input ended unexpectedly"
	case ErrorTypeMismatch:
		return "Expression type does not match the declared type"
	case ErrorArgumentType:
		return "Argument type is not compatible with the parameter type"
	case ErrorUnknownLanguage:
		return "Cross-call targets a language with no block"
	case ErrorUndefinedFunction:
		return "Cross-call targets a function that is not declared"
	case ErrorArityMismatch:
		return "Cross-call has the wrong number of arguments"
	case ErrorDuplicateFunction:
		return "Function is declared more than once in the same language"
	case WarningDisabledLanguage:
		return "Language is disabled in the project configuration"
	case WarningUnresolvedType:
		return "Type annotation is not known to the language adapter"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than an error
func IsWarning(code string) bool {
	return len(code) > 0 && code[0] == 'W'
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case IsWarning(code):
		return "Warning"
	case code >= "E0100" && code < "E0200":
		return "Lexer"
	case code >= "E0200" && code < "E0300":
		return "Parser"
	case code >= "E0300" && code < "E0400":
		return "Type System"
	case code >= "E0400" && code < "E0500":
		return "Cross-Language"
	default:
		return "Unknown"
	}
}
