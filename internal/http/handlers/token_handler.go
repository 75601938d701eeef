package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/teambuilder-backend/internal/dto"
	"github.com/ignatzorin/teambuilder-backend/internal/http/handlers/common"
)

// TokenIssuer выпускает access токены.
type TokenIssuer interface {
	Issue(ownerID string) (string, time.Time, error)
}

// TokenHandler выдаёт токены в режиме разработки вместо внешнего OAuth.
type TokenHandler struct {
	tokens TokenIssuer
}

func NewTokenHandler(tokens TokenIssuer) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

// Issue обрабатывает POST /api/dev/token.
func (h *TokenHandler) Issue(c *gin.Context) {
	var req dto.IssueTokenRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	token, expiresAt, err := h.tokens.Issue(req.OwnerID)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "не удалось выпустить токен")
		return
	}
	c.JSON(http.StatusOK, dto.TokenResponse{AccessToken: token, ExpiresAt: expiresAt.Unix()})
}
