package constants

const (
	ERROR_INPUT              = "Invalid input data"
	ERROR_INTERNAL_ERROR     = "Internal server error"
	DATA_INPUT_IS_NOT_NUMBER = "Id param must be a number"

	MISSING_LOGIN_INPUT = "Username and password are required"
	INVALID_USERNAME    = "Username does not exist"
	INVALID_PASSWORD    = "Password does not match"
	ACCOUNT_NOT_ACTIVE  = "Account is deactivated"
	NOT_ADMIN           = "Admin permission required"

	INSTITUTION_NOT_FOUND = "Institution not found"
	CODE_INVALID          = "Invalid discount code"
	CODE_INACTIVE         = "This discount code is inactive"
	CODE_NOT_IN_SHOPIFY   = "Code is not valid in Shopify"

	ROLE_ADMIN = "ADMIN"
)

// Institution code format: INST-<year>-<3 digit suffix>.
const (
	CodePrefix      = "INST"
	CodeSuffixRange = 1000
)
