package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/wamuzi-news/internal/config"
	"github.com/wamuzi-news/internal/content"
	"github.com/wamuzi-news/internal/models"
	"github.com/wamuzi-news/internal/repository"
	"github.com/wamuzi-news/internal/summary"
	"github.com/wamuzi-news/internal/validation"
)

// ContentSource reads published content from the CMS
type ContentSource interface {
	GetArticles(ctx context.Context) ([]models.Article, error)
	GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error)
	GetPage(ctx context.Context, slug string) (*models.Page, error)
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetTags(ctx context.Context) ([]models.Tag, error)
}

// Summarizer turns a prompt into Markdown
type Summarizer interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ContentService serves pages built from the current content snapshot
type ContentService interface {
	Refresh(ctx context.Context) error
	Shell(ctx context.Context) *ShellView
	Home(ctx context.Context) (*HomeView, error)
	Article(ctx context.Context, slug string) (*ArticleView, error)
	Lookup(ctx context.Context, slug string) (*models.Article, error)
	ArticleByID(id int64) (*models.Article, bool)
	Category(ctx context.Context, slug string, page int) (*CategoryView, error)
	Search(ctx context.Context, query string) (*SearchView, error)
	Page(ctx context.Context, slug string) (*models.Page, error)
}

// CommentService manages reader comments
type CommentService interface {
	Thread(ctx context.Context, postID int64) ([]models.CommentNode, int, error)
	Post(ctx context.Context, postID int64, form *models.CommentForm, author *models.User) (*models.Comment, error)
	History(ctx context.Context, userID int64) ([]models.Comment, error)
}

// AuthService manages accounts and login sessions
type AuthService interface {
	Register(ctx context.Context, form *models.RegisterForm) (*models.User, error)
	Login(ctx context.Context, form *models.LoginForm) (*models.Session, *models.User, error)
	Logout(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, sessionID string) (*models.User, error)
	PurgeExpiredSessions(ctx context.Context) error
}

// UserService backs the admin user management screen
type UserService interface {
	List(ctx context.Context) ([]*models.User, error)
	ChangeRole(ctx context.Context, actor *models.User, userID int64, role models.Role) error
	Delete(ctx context.Context, actor *models.User, userID int64) error
}

// SettingsService reads and edits the theme settings
type SettingsService interface {
	Get(ctx context.Context) (models.ThemeSettings, error)
	Update(ctx context.Context, patch models.ThemeSettingsPatch) (models.ThemeSettings, error)
	Reset(ctx context.Context) (models.ThemeSettings, error)
}

// SummaryService produces cached article summaries
type SummaryService interface {
	Cached(ctx context.Context, articleID int64) (string, bool)
	Summarize(ctx context.Context, slug string) (string, error)
}

// Scheduler runs periodic background tasks
type Scheduler interface {
	StartProcessor(ctx context.Context)
	StopProcessor()
}

// ShellView is what every page's layout needs
type ShellView struct {
	Navigation  []models.Category
	Categories  map[int64]models.Category
	Ticker      []models.Article
	Breaking    *models.Article
	Unavailable bool
}

// HomeView is the homepage
type HomeView struct {
	Layout content.HomepageLayout
}

// ArticleView is an article detail page
type ArticleView struct {
	Article         models.Article
	PrimaryCategory *models.Category
	Tags            []models.Tag
	IsBreaking      bool
	BodyBefore      string
	BodyAfter       string
	Related         []models.Article
	ReadMore        []models.Article
	Popular         []models.Article
	Trending        []models.Article
	ByAuthor        []models.Article
}

// CategoryView is one page of a category listing
type CategoryView struct {
	Category models.Category
	Articles []models.Article
	Page     content.Page
}

// SearchView is a search result listing
type SearchView struct {
	Query   string
	Results []models.Article
}

// Deps are the collaborators services are built from
type Deps struct {
	Repos      *repository.Repositories
	Source     ContentSource
	Summarizer Summarizer
	Store      summary.Store
}

// Services holds all service interfaces
type Services struct {
	Content   ContentService
	Comment   CommentService
	Auth      AuthService
	User      UserService
	Settings  SettingsService
	Summary   SummaryService
	Scheduler Scheduler
}

// sessionPurgeInterval is how often expired sessions are removed
const sessionPurgeInterval = time.Hour

// NewServices creates all services
func NewServices(deps Deps, cfg *config.Config, log zerolog.Logger) *Services {
	validator := validation.NewValidator()

	settingsSvc := newSettingsService(deps.Repos.Settings, validator, log)
	contentSvc := newContentService(deps.Source, settingsSvc, cfg.Content, log)
	authSvc := newAuthService(deps.Repos.User, deps.Repos.Session, validator, cfg.Auth, log)

	scheduler := newScheduler(log)
	scheduler.Add(Task{Name: "content-refresh", Interval: cfg.Content.RefreshInterval, Run: contentSvc.Refresh})
	scheduler.Add(Task{Name: "session-purge", Interval: sessionPurgeInterval, Run: authSvc.PurgeExpiredSessions})

	return &Services{
		Content:   contentSvc,
		Comment:   newCommentService(deps.Repos.Comment, validator, log),
		Auth:      authSvc,
		User:      newUserService(deps.Repos.User, validator, log),
		Settings:  settingsSvc,
		Summary:   newSummaryService(contentSvc, deps.Summarizer, deps.Store, cfg.Summary, log),
		Scheduler: scheduler,
	}
}
