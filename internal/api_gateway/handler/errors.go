package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/backoffice-ledger/internal/domain/account"
	"github.com/backoffice-ledger/internal/domain/catalog"
	"github.com/backoffice-ledger/internal/domain/journal"
	"github.com/backoffice-ledger/internal/domain/order"
	"github.com/backoffice-ledger/internal/domain/shared"
	"github.com/backoffice-ledger/internal/domain/user"
)

var validationErrors = []error{
	account.ErrNameTooShort,
	account.ErrInvalidAccountType,
	account.ErrNegativeCode,
	journal.ErrNameTooShort,
	journal.ErrNoDetails,
	journal.ErrNegativeAmount,
	journal.ErrMissingAccount,
	journal.ErrMissingDate,
	catalog.ErrInvalidTitle,
	catalog.ErrNegativeStock,
	catalog.ErrNegativePrice,
	catalog.ErrMissingCategory,
	catalog.ErrCategoryNameShort,
	catalog.ErrEmptyComment,
	order.ErrInvalidQuantity,
	order.ErrInvalidStatus,
	order.ErrInvalidType,
	user.ErrInvalidRole,
}

// respondError maps a service error to its HTTP status. Unknown errors are
// logged and answered with a generic 500.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			RespondValidationError(c, err.Error())
			return
		}
	}

	var (
		unknownAccount journal.ErrUnknownAccount
		invalidDate    shared.ErrInvalidDate
		shortStock     catalog.ErrInsufficientStock
		missingCat     catalog.ErrCategoryNotFound
		dupCode        account.ErrDuplicateAccountCode
		dupUser        user.ErrDuplicateUser
		accountInUse   account.ErrAccountInUse
		productInUse   catalog.ErrProductInUse
		categoryInUse  catalog.ErrCategoryInUse
		userInUse      user.ErrUserInUse
	)

	switch {
	case errors.As(err, &unknownAccount):
		RespondValidationError(c, err.Error(), FieldError{Field: "detail.account", Message: err.Error()})
	case errors.As(err, &invalidDate):
		RespondValidationError(c, err.Error(), FieldError{Field: invalidDate.Field, Message: err.Error()})
	case errors.As(err, &shortStock):
		RespondWithError(c, http.StatusBadRequest, "INSUFFICIENT_STOCK", err.Error())

	case errors.Is(err, account.ErrAccountNotFound{}),
		errors.Is(err, journal.ErrJournalNotFound{}),
		errors.Is(err, catalog.ErrProductNotFound{}),
		errors.Is(err, order.ErrTransactionNotFound{}),
		errors.Is(err, user.ErrUserNotFound{}),
		errors.As(err, &missingCat):
		RespondNotFound(c, err.Error())

	case errors.As(err, &dupCode),
		errors.As(err, &dupUser),
		errors.As(err, &accountInUse),
		errors.As(err, &productInUse),
		errors.As(err, &categoryInUse),
		errors.As(err, &userInUse):
		RespondConflict(c, err.Error())

	case errors.Is(err, user.ErrInvalidCredentials):
		RespondUnauthorized(c, err.Error())
	case errors.Is(err, user.ErrRoleNotAllowed):
		RespondForbidden(c, err.Error())

	default:
		logger.Error("Request failed",
			"path", c.FullPath(),
			"correlation_id", correlationID(c),
			"error", err,
		)
		RespondInternalError(c)
	}
}
