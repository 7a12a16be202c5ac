package handlers

import (
	"github.com/gin-gonic/gin"

	"tripdesk/internal/core/apperror"
	coresequence "tripdesk/internal/core/sequence"
	"tripdesk/internal/infrastructure/http/v1/dto"
	"tripdesk/internal/infrastructure/sequence"
)

// SequenceHandler provides administrative endpoints for document numbering.
type SequenceHandler struct {
	*BaseHandler
	service *sequence.Service
}

// NewSequenceHandler creates a new sequence handler.
func NewSequenceHandler(base *BaseHandler, service *sequence.Service) *SequenceHandler {
	return &SequenceHandler{BaseHandler: base, service: service}
}

func parseDocumentType(c *gin.Context) (coresequence.DocumentType, bool) {
	docType := coresequence.DocumentType(c.Param("type"))
	if docType == "" {
		return "", false
	}
	return docType, true
}

// GetConfig handles GET /sequences/:type.
func (h *SequenceHandler) GetConfig(c *gin.Context) {
	ctx := c.Request.Context()

	docType, ok := parseDocumentType(c)
	if !ok {
		h.Error(c, apperror.NewValidation("document type is required"))
		return
	}

	cfg, err := h.service.GetConfig(ctx, docType)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromSequenceConfig(cfg))
}

// UpdateConfig handles PATCH /sequences/:type.
// Prefix, format and reset interval are editable; the counter and the reset
// anchor belong to the issuer and survive any patch.
func (h *SequenceHandler) UpdateConfig(c *gin.Context) {
	ctx := c.Request.Context()

	docType, ok := parseDocumentType(c)
	if !ok {
		h.Error(c, apperror.NewValidation("document type is required"))
		return
	}

	var req dto.UpdateSequenceConfigRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cfg, err := h.service.UpdateConfig(ctx, docType, req.ToPatch())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromSequenceConfig(cfg))
}
