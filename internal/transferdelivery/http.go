// Package transferdelivery manages delivery layer of transfers.
package transferdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vporoshin/bank-ledger/internal/domain"
	"github.com/vporoshin/bank-ledger/pkg/errorspkg"
	"github.com/vporoshin/bank-ledger/pkg/moneypkg"
	"github.com/vporoshin/bank-ledger/pkg/web"
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferResult, error)
	Get(ctx context.Context, id int64) (domain.Transfer, error)
	List(ctx context.Context, arg domain.ListTransfersParams) ([]domain.Transfer, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(ts Service) Handler {
	return Handler{service: ts}
}

type createRequest struct {
	FromAccountID string `json:"from_account_id" binding:"required,uuid"`
	ToAccountID   string `json:"to_account_id" binding:"required,uuid"`
	Amount        string `json:"amount" binding:"required,amount"`
}

type response struct {
	Data domain.TransferResult `json:"data,omitempty"`
}

// Create handles http request to transfer money between two accounts.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.JSONError{Error: errMsg}})

		return
	}

	amount, err := moneypkg.FromString(req.Amount)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))
		return
	}

	arg := domain.CreateTransferParams{
		FromAccountID: uuid.MustParse(req.FromAccountID), // validated by binding
		ToAccountID:   uuid.MustParse(req.ToAccountID),
		Amount:        amount,
	}

	result, err := h.service.Transfer(ctx, arg)
	if err != nil {
		switch err {
		case domain.ErrInvalidAmount, domain.ErrSameAccount, domain.ErrInsufficientFunds:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrFromAccountNotFound, domain.ErrToAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: result})
}

type getRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type dataTransfer struct {
	Transfer domain.Transfer `json:"transfer"`
}
type responseTransfer struct {
	Data dataTransfer `json:"data,omitempty"`
}

// Get handles http request to get a single transfer record.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.JSONError{Error: errMsg}})

		return
	}

	transfer, err := h.service.Get(ctx, req.ID)
	if err != nil {
		if err == domain.ErrTransferNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := responseTransfer{
		Data: dataTransfer{transfer},
	}

	gctx.JSON(http.StatusOK, res)
}

type listRequest struct {
	AccountID string `form:"account_id" binding:"required,uuid"`
	PageID    int32  `form:"page_id,default=1" binding:"min=1"`
	PageSize  int32  `form:"page_size,default=50" binding:"min=1,max=500"`
}

type dataTransfers struct {
	Transfers []domain.Transfer `json:"transfers"`
}
type responseTransfers struct {
	Data dataTransfers `json:"data,omitempty"`
}

// List handles http request to list transfers touching an account.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.JSONError{Error: errMsg}})

		return
	}

	arg := domain.ListTransfersParams{
		AccountID: uuid.MustParse(req.AccountID),
		Limit:     req.PageSize,
		Offset:    (req.PageID - 1) * req.PageSize,
	}

	transfers, err := h.service.List(ctx, arg)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := responseTransfers{
		Data: dataTransfers{transfers},
	}

	gctx.JSON(http.StatusOK, res)
}
