package errcode

type Code string

const (
	BadRequest       Code = "BAD_REQUEST"
	InvalidKey       Code = "INVALID_ASSET_KEY"
	StoreUnavailable Code = "STORE_UNAVAILABLE"
	Internal         Code = "INTERNAL_ERROR"
)
