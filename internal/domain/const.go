package domain

import "time"

const (
	// Chain constants
	DEFAULT_CHAIN_NAME     = "casper-net-1"
	DEFAULT_PAYMENT_AMOUNT = "2000000000"
	DEFAULT_GAS_PRICE      = 1
	DEFAULT_DEPLOY_TTL     = 30 * time.Minute

	// Finality polling constants
	DEFAULT_POLL_INTERVAL     = time.Second
	DEFAULT_POLL_MAX_ATTEMPTS = 300

	// Key prefixes used by the node
	HASH_PREFIX                  = "hash-"
	ACCOUNT_HASH_PREFIX          = "account-hash-"
	CONTRACT_PACKAGE_WASM_PREFIX = "contract-package-wasm"
)
