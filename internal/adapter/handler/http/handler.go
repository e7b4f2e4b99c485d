package http

import (
	"errors"
	"net/http"

	"github.com/MikeRez0/dropship-checkout/internal/core/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errorStatusMap = map[error]int{
	domain.ErrInternal:        http.StatusInternalServerError,
	domain.ErrDataNotFound:    http.StatusNotFound,
	domain.ErrConflictingData: http.StatusConflict,

	domain.ErrBadRequest: http.StatusBadRequest,

	domain.ErrInvalidToken:               http.StatusUnauthorized,
	domain.ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationType:   http.StatusUnauthorized,
	domain.ErrUnauthorized:               http.StatusUnauthorized,

	domain.ErrOrderStateConflict: http.StatusConflict,
	domain.ErrOrderCancelled:     http.StatusBadRequest,
	domain.ErrWebhookNotVerified: http.StatusBadRequest,
}

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

type errorResponse struct {
	Error string `json:"error"`
}

type issuesResponse struct {
	Errors []string `json:"errors"`
}

func (h *Handler) handleValidationError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, errorResponse{Error: domain.ErrBadRequest.Error()})
}

// handleError maps a saga error onto an HTTP response. Catalog issues are
// itemized for the client; gateway and internal detail stays in the logs and
// the client gets a generic message.
func (h *Handler) handleError(ctx *gin.Context, err error) {
	var catalogErr *domain.CatalogError
	if errors.As(err, &catalogErr) {
		reasons := make([]string, 0, len(catalogErr.Issues))
		for _, issue := range catalogErr.Issues {
			reasons = append(reasons, issue.Reason)
		}
		ctx.JSON(http.StatusBadRequest, issuesResponse{Errors: reasons})
		return
	}

	var gatewayErr *domain.GatewayError
	if errors.As(err, &gatewayErr) {
		h.logger.Error("gateway error processing request", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "checkout failed"})
		return
	}

	if errors.Is(err, domain.ErrCriticalInconsistency) {
		// Detail reached the alert channel already; the caller sees only a
		// generic failure.
		ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "order processing failed"})
		return
	}

	for known, statusCode := range errorStatusMap {
		if errors.Is(err, known) {
			ctx.JSON(statusCode, errorResponse{Error: known.Error()})
			return
		}
	}

	h.logger.Error("error processing request", zap.Error(err))
	ctx.JSON(http.StatusInternalServerError, errorResponse{Error: domain.ErrInternal.Error()})
}

func (h *Handler) handleAbort(ctx *gin.Context, err error) {
	statusCode, ok := errorStatusMap[err]
	if !ok {
		statusCode = http.StatusInternalServerError
		h.logger.Error("aborting request", zap.Error(err))
	}
	ctx.AbortWithStatusJSON(statusCode, errorResponse{Error: err.Error()})
}

func (h *Handler) handleSuccess(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, data)
}
