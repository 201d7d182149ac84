package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/balance_dashboard/internal/apperrors"
	portsrepo "github.com/SscSPs/balance_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/balance_dashboard/internal/core/ports/services"
	"github.com/SscSPs/balance_dashboard/internal/dto"
	"github.com/SscSPs/balance_dashboard/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.DELETE("/:accountID", h.deleteAccount)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates an account, optionally attached to a label
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "request format", err)
		return
	}

	creatorUserID := middleware.UserIDOrAnonymous(c)
	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create account", slog.String("account_name", req.Name))

	newAccount, err := h.accountService.CreateAccount(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", newAccount.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(newAccount))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	logger = logger.With(slog.String("target_account_id", accountID))

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists accounts ordered by name, optionally filtered by label or country
// @Tags accounts
// @Produce  json
// @Param   labelID query string false "Only accounts with this label"
// @Param   countryCode query string false "Only accounts in this country"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, "query parameters", err)
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), portsrepo.AccountFilter{
		LabelID:     params.LabelID,
		CountryCode: params.CountryCode,
	})
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}

	logger.Info("Accounts listed successfully", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Deletes an account. Its records are kept and compile as unmatched.
// @Tags accounts
// @Param   accountID path string true "Account ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to delete account"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /accounts/{accountID} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	logger = logger.With(slog.String("target_account_id", accountID))

	deleted, err := h.accountService.DeleteAccounts(c.Request.Context(), []string{accountID})
	if err == nil && deleted == 0 {
		err = apperrors.NewNotFoundError("account " + accountID + " not found")
	}
	if err != nil {
		respondError(c, logger, err, "Failed to delete account")
		return
	}

	logger.Info("Account deleted")
	c.Status(http.StatusNoContent)
}
