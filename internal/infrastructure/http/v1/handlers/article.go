package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripdesk/internal/core/apperror"
	"tripdesk/internal/core/id"
	"tripdesk/internal/domain"
	"tripdesk/internal/domain/catalogs/article"
	"tripdesk/internal/infrastructure/http/v1/dto"
)

// ArticleHandler extends the generic catalog handler with article-specific
// endpoints (listing by supplier).
type ArticleHandler struct {
	*CatalogHandler[*article.Article, dto.CreateArticleRequest, dto.UpdateArticleRequest]
	service *article.Service
}

// NewArticleHandler wires the catalog handler for articles.
func NewArticleHandler(base *BaseHandler, service *article.Service) *ArticleHandler {
	config := CatalogHandlerConfig[
		*article.Article,
		dto.CreateArticleRequest,
		dto.UpdateArticleRequest,
	]{
		Service:    service,
		EntityName: "article",

		MapCreateDTO: func(req dto.CreateArticleRequest) (*article.Article, error) {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateArticleRequest, existing *article.Article) error {
			return req.ApplyTo(existing)
		},

		MapToDTO: func(a *article.Article) any {
			return dto.FromArticle(a)
		},
	}

	return &ArticleHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// ListBySupplier handles GET /articles/by-supplier/:supplierId.
func (h *ArticleHandler) ListBySupplier(c *gin.Context) {
	ctx := c.Request.Context()

	supplierID, err := id.Parse(c.Param("supplierId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid supplierId format"))
		return
	}

	filter := domain.DefaultListFilter()
	filter.Limit = h.ParseIntQuery(c, "limit", filter.Limit)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", filter.OrderBy)

	result, err := h.service.ListBySupplier(ctx, supplierID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, item := range result.Items {
		items[i] = dto.FromArticle(item)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
