package recipe

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pantry-chef/internal/api/middleware"
	recipeService "pantry-chef/internal/core/recipe"
	"pantry-chef/internal/pkg/common"
)

// SuggestRequest request body of POST /api/v1/suggest
type SuggestRequest struct {
	ImageBase64    string                   `json:"imageBase64"`
	PantryOverride []string                 `json:"pantryOverride"`
	Prefs          recipeService.PrefsInput `json:"prefs"`
}

// Suggester is the pipeline the handler drives.
type Suggester interface {
	Suggest(ctx context.Context, req recipeService.Request) (*recipeService.ResultSet, error)
}

// ImageDecoder turns the uploaded string into image bytes.
type ImageDecoder interface {
	Decode(imageData string) ([]byte, error)
}

// Handler recipe suggestion handler
type Handler struct {
	suggester Suggester
	images    ImageDecoder
}

func NewHandler(suggester Suggester, images ImageDecoder) *Handler {
	return &Handler{suggester: suggester, images: images}
}

// HandleSuggest decodes the request, runs the pipeline and writes the result. Only input
// problems produce a non-200 status.
func (h *Handler) HandleSuggest(c *gin.Context) {
	requestID := requestid.Get(c)
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}

	var body SuggestRequest
	if err := common.DecodeJSON(c.Request.Body, &body); err != nil {
		if errors.Is(err, io.EOF) {
			middleware.AbortWithError(c, common.ErrMissingInput)
			return
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.AbortWithError(c, common.ErrBodyTooLarge)
			return
		}
		common.LogWarn("invalid suggest request",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		middleware.AbortWithError(c, common.ErrInvalidRequest)
		return
	}

	req := recipeService.Request{
		PantryOverride: body.PantryOverride,
		Prefs:          body.Prefs.Resolve(),
		RequestID:      requestID,
	}

	// the override list wins, so an image sent alongside it is never decoded
	if !req.HasOverride() && body.ImageBase64 != "" {
		img, err := h.images.Decode(body.ImageBase64)
		if err != nil {
			common.LogWarn("invalid image upload",
				zap.Error(err),
				zap.String("request_id", requestID),
			)
			h.writeError(c, err)
			return
		}
		req.Image = img
	}

	common.LogInfo("suggest request",
		zap.String("request_id", requestID),
		zap.Bool("has_image", len(req.Image) > 0),
		zap.Int("override_items", len(req.PantryOverride)),
		zap.Int("time", req.Prefs.Time),
		zap.String("diet", string(req.Prefs.Diet)),
		zap.Bool("explore", req.Prefs.Explore),
		zap.Bool("pantry_only", req.Prefs.PantryOnly),
	)

	rs, err := h.suggester.Suggest(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rs)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	if ce := common.AsCustomError(err); ce != nil {
		middleware.AbortWithError(c, ce)
		return
	}
	common.LogError("suggest failed", zap.Error(err), zap.String("request_id", requestid.Get(c)))
	middleware.AbortWithError(c, common.ErrInternalError)
}
