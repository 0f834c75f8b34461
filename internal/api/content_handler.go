package api

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wamuzi-news/internal/config"
	"github.com/wamuzi-news/internal/models"
	rendertext "github.com/wamuzi-news/internal/render"
	"github.com/wamuzi-news/internal/service"
	"github.com/wamuzi-news/internal/validation"
)

// ContentHandler serves the public news pages
type ContentHandler struct {
	base
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ContentHandler {
	return &ContentHandler{base{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "content").Logger(),
	}}
}

// articlePage is the data of the article template
type articlePage struct {
	View         *service.ArticleView
	Comments     []models.CommentNode
	CommentCount int
	Form         models.CommentForm
	FormErrors   validation.Errors
	CommentError string
	Summary      template.HTML
	SummaryError string
}

// Home handles GET /
func (h *ContentHandler) Home(c *gin.Context) {
	home, err := h.services.Content.Home(c.Request.Context())
	if err != nil {
		h.fail(c, err, msgPageNotFound)
		return
	}
	h.render(c, http.StatusOK, "home", h.page(c, "", home))
}

// Article handles GET /article/:slug
func (h *ContentHandler) Article(c *gin.Context) {
	page, err := h.articlePage(c)
	if err != nil {
		h.fail(c, err, msgArticleNotFound)
		return
	}
	h.renderArticle(c, http.StatusOK, page)
}

func (h *ContentHandler) articlePage(c *gin.Context) (*articlePage, error) {
	ctx := c.Request.Context()

	av, err := h.services.Content.Article(ctx, c.Param("slug"))
	if err != nil {
		return nil, err
	}

	page := &articlePage{View: av}
	if u := currentUser(c); u != nil {
		page.Form.AuthorName = u.Username
	}

	page.Comments, page.CommentCount, err = h.services.Comment.Thread(ctx, av.Article.ID)
	if err != nil {
		// comments are secondary; the article still renders
		h.log.Error().Err(err).Int64("post_id", av.Article.ID).Msg("Failed to load comments")
		page.CommentError = "Comments could not be loaded."
	}

	if html, ok := h.services.Summary.Cached(ctx, av.Article.ID); ok {
		page.Summary = template.HTML(html)
	}
	return page, nil
}

func (h *ContentHandler) renderArticle(c *gin.Context, status int, page *articlePage) {
	title := page.View.Article.Title.Rendered
	h.render(c, status, "article", h.page(c, rendertext.Text(title), page))
}

// PostComment handles POST /article/:slug/comments
func (h *ContentHandler) PostComment(c *gin.Context) {
	ctx := c.Request.Context()
	slug := c.Param("slug")

	var form models.CommentForm
	if err := c.ShouldBind(&form); err != nil {
		h.log.Warn().Err(err).Msg("Malformed comment form")
		form.Parent = models.RootParent
		form.AuthorName = c.PostForm("author_name")
		form.Content = c.PostForm("content")
	}

	article, err := h.services.Content.Lookup(ctx, slug)
	if err != nil {
		h.fail(c, err, msgArticleNotFound)
		return
	}

	comment, err := h.services.Comment.Post(ctx, article.ID, &form, currentUser(c))
	if err != nil {
		errs, ok := validationErrors(err)
		if !ok {
			h.fail(c, err, msgArticleNotFound)
			return
		}
		page, perr := h.articlePage(c)
		if perr != nil {
			h.fail(c, perr, msgArticleNotFound)
			return
		}
		page.Form = form
		page.FormErrors = errs
		h.renderArticle(c, http.StatusUnprocessableEntity, page)
		return
	}

	redirect(c, fmt.Sprintf("/article/%s#comment-%d", slug, comment.ID))
}

// Summarize handles POST /article/:slug/summary. JSON clients get the
// summary in the body; browsers are sent back to the article.
func (h *ContentHandler) Summarize(c *gin.Context) {
	slug := c.Param("slug")
	html, err := h.services.Summary.Summarize(c.Request.Context(), slug)
	wantsJSON := c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON

	if err != nil {
		status, msg := summaryFailure(err)
		if wantsJSON {
			c.JSON(status, gin.H{"error": msg})
			return
		}
		if !errors.Is(err, service.ErrSummaryUnavailable) {
			h.fail(c, err, msgArticleNotFound)
			return
		}
		page, perr := h.articlePage(c)
		if perr != nil {
			h.fail(c, perr, msgArticleNotFound)
			return
		}
		page.SummaryError = msg
		h.renderArticle(c, status, page)
		return
	}

	if wantsJSON {
		c.JSON(http.StatusOK, gin.H{"summary": html})
		return
	}
	redirect(c, "/article/"+slug+"#summary")
}

func summaryFailure(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, msgArticleNotFound
	case errors.Is(err, service.ErrSummaryUnavailable):
		return http.StatusBadGateway, msgSummaryFailed
	case errors.Is(err, service.ErrContentUnavailable), errors.Is(err, service.ErrUpstream):
		return http.StatusBadGateway, msgContentUnavailable
	}
	return http.StatusInternalServerError, msgInternal
}

// Category handles GET /category/:slug?page=N
func (h *ContentHandler) Category(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	cv, err := h.services.Content.Category(c.Request.Context(), c.Param("slug"), page)
	if err != nil {
		h.fail(c, err, msgCategoryNotFound)
		return
	}
	h.render(c, http.StatusOK, "category", h.page(c, cv.Category.Name, cv))
}

// Search handles GET /search?q=
func (h *ContentHandler) Search(c *gin.Context) {
	sv, err := h.services.Content.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.fail(c, err, msgPageNotFound)
		return
	}
	h.render(c, http.StatusOK, "search", h.page(c, "Search", sv))
}

// StaticPage serves a WordPress page. With a fixed slug it handles routes
// like /about-us; otherwise the slug comes from the path.
func (h *ContentHandler) StaticPage(slug string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := slug
		if s == "" {
			s = c.Param("slug")
		}
		p, err := h.services.Content.Page(c.Request.Context(), s)
		if err != nil {
			h.fail(c, err, msgPageNotFound)
			return
		}
		h.render(c, http.StatusOK, "page", h.page(c, rendertext.Text(p.Title.Rendered), p))
	}
}
