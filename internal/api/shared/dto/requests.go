package dto

import (
	"fmt"

	"github.com/feral-file/cep-market-client/internal/api/shared/constants"
	apierrors "github.com/feral-file/cep-market-client/internal/api/shared/errors"
)

// ValidateTokenIDs checks the token id list of a deploy request
func ValidateTokenIDs(ids []string) error {
	if len(ids) == 0 {
		return apierrors.NewValidationError("token_ids is required")
	}
	if len(ids) > constants.MAX_TOKENS_PER_DEPLOY {
		return apierrors.NewValidationError(fmt.Sprintf("maximum %d token ids allowed", constants.MAX_TOKENS_PER_DEPLOY))
	}
	return nil
}
