package constants

const (
	DEFAULT_ITEMS_LIMIT   = 50
	MAX_ITEMS_LIMIT       = 500
	MAX_TOKENS_PER_DEPLOY = 50
	SERVICE_NAME          = "cep-market-api"
)
