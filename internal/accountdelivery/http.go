// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"errors"
	"io"
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

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, id uuid.UUID, name string, balance moneypkg.Money) (domain.Account, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Account, error)
	List(ctx context.Context, nameFilter string, pageSize, pageID int32) ([]domain.Account, error)
}

// Importer provides the bulk import interface needed by account delivery layer.
type Importer interface {
	ImportCSV(ctx context.Context, r io.Reader) (domain.ImportResult, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service  Service
	importer Importer
}

// NewHandler returns account handler.
func NewHandler(as Service, im Importer) Handler {
	return Handler{service: as, importer: im}
}

type data struct {
	Account domain.Account `json:"account"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

type createRequest struct {
	ID      string `json:"id" binding:"omitempty,uuid"`
	Name    string `json:"name" binding:"required"`
	Balance string `json:"balance" binding:"required,amount"`
}

// Create handles http request to create account.
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

	id := uuid.Nil
	if req.ID != "" {
		id = uuid.MustParse(req.ID) // validated by binding
	}

	balance, err := moneypkg.FromString(req.Balance)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidBalance))
		return
	}

	createdAccount, err := h.service.Create(ctx, id, req.Name, balance)
	if err != nil {
		switch err {
		case domain.ErrInvalidName, domain.ErrInvalidBalance:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrDuplicateAccount:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{createdAccount},
	}

	gctx.JSON(http.StatusOK, res)
}

type getRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// Get handles http request to get account.
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

	acc, err := h.service.Get(ctx, uuid.MustParse(req.ID))
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{acc},
	}

	gctx.JSON(http.StatusOK, res)
}

type listRequest struct {
	Search   string `form:"search"`
	PageID   int32  `form:"page_id,default=1" binding:"min=1"`
	PageSize int32  `form:"page_size,default=50" binding:"min=1,max=500"`
}

type dataAccounts struct {
	Accounts []domain.Account `json:"accounts"`
}
type responseAccounts struct {
	Data dataAccounts `json:"data,omitempty"`
}

// List handles http request to list accounts, optionally filtered by
// a name substring.
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

	accounts, err := h.service.List(ctx, req.Search, req.PageSize, req.PageID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := responseAccounts{
		Data: dataAccounts{accounts},
	}

	gctx.JSON(http.StatusOK, res)
}

var errNoFile = errors.New("no file provided")

type dataImport struct {
	Import domain.ImportResult `json:"import"`
}
type responseImport struct {
	Data dataImport `json:"data,omitempty"`
}

// Import handles http request to bulk import accounts from a CSV file.
func (h *Handler) Import(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	fileHeader, err := gctx.FormFile("file")
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(errNoFile))

		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}
	defer file.Close()

	result, err := h.importer.ImportCSV(ctx, file)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := responseImport{
		Data: dataImport{result},
	}

	gctx.JSON(http.StatusCreated, res)
}
