package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/apperror"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/ledger"
	"github.com/Alejoxd70/sactpaper-stationery/internal/infrastructure/http/v1/dto"
)

// AccountHandler provides chart of accounts endpoints.
type AccountHandler struct {
	BaseHandler
	service *ledger.Service
}

// NewAccountHandler creates an account handler.
func NewAccountHandler(service *ledger.Service) *AccountHandler {
	return &AccountHandler{service: service}
}

// List returns the chart of accounts.
// GET /api/v1/accounts
func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.service.ListAccounts(c.Request.Context(), c.Query("all") == "")
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(accounts))
}

// Get returns one account.
// GET /api/v1/accounts/:id
func (h *AccountHandler) Get(c *gin.Context) {
	accountID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	account, err := h.service.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, account)
}

// Create adds an account to the chart.
// POST /api/v1/accounts
func (h *AccountHandler) Create(c *gin.Context) {
	var req dto.CreateAccountRequest
	if !h.BindJSON(c, &req) {
		return
	}

	account, err := h.accountFromRequest(req)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.CreateAccount(c.Request.Context(), account); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, account.ID.String())
}

// Update modifies an account.
// PUT /api/v1/accounts/:id
func (h *AccountHandler) Update(c *gin.Context) {
	accountID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if !h.BindJSON(c, &req) {
		return
	}

	account, err := h.accountFromRequest(req)
	if err != nil {
		h.Error(c, err)
		return
	}
	account.ID = accountID

	if err := h.service.UpdateAccount(c.Request.Context(), account); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "account updated")
}

// Balance returns the signed account balance.
// GET /api/v1/accounts/:id/balance
func (h *AccountHandler) Balance(c *gin.Context) {
	accountID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	until, ok := h.ParseDateQuery(c, "until")
	if !ok {
		return
	}

	var untilPtr *time.Time
	if !until.IsZero() {
		untilPtr = &until
	}

	balance, err := h.service.GetBalance(c.Request.Context(), accountID, untilPtr)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"accountId": accountID, "balance": balance})
}

// Postings returns the account's postings.
// GET /api/v1/accounts/:id/postings
func (h *AccountHandler) Postings(c *gin.Context) {
	accountID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	filter := ledger.PostingFilter{
		AccountID: &accountID,
		Limit:     h.ParseIntQuery(c, "limit", 50),
		Offset:    h.ParseIntQuery(c, "offset", 0),
	}

	postings, err := h.service.ListPostings(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(postings))
}

func (h *AccountHandler) accountFromRequest(req dto.CreateAccountRequest) (*ledger.Account, error) {
	account := ledger.NewAccount(req.Code, req.Name, ledger.AccountType(req.Type))
	if req.ParentID != nil {
		parentID, err := id.Parse(*req.ParentID)
		if err != nil {
			return nil, apperror.NewValidation("invalid parent id").WithDetail("field", "parentId")
		}
		account.ParentID = &parentID
	}
	if req.Active != nil {
		account.Active = *req.Active
	}
	return account, nil
}
