// Package server maps the HTTP routes onto the stores and the feed composer.
// Presentation is a JSON rendering of the context mapping each view produces.
package server

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/Luismorlan/postmux/feed"
	"github.com/Luismorlan/postmux/filestore"
	"github.com/Luismorlan/postmux/model"
	"github.com/Luismorlan/postmux/server/middlewares"
	"github.com/Luismorlan/postmux/store"
	Logger "github.com/Luismorlan/postmux/utils/log"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handlers carries the shared collaborators of every route.
type Handlers struct {
	DB       *gorm.DB
	Users    *store.UserStore
	Posts    *store.PostStore
	Groups   *store.GroupDirectory
	Comments *store.CommentStore
	Graph    *store.FollowGraph
	Composer *feed.Composer
	Cache    feed.PageCache
	Files    filestore.FileStore
}

func NewHandlers(db *gorm.DB, cache feed.PageCache, files filestore.FileStore) *Handlers {
	graph := store.NewFollowGraph(db)
	return &Handlers{
		DB:       db,
		Users:    store.NewUserStore(db),
		Posts:    store.NewPostStore(db),
		Groups:   store.NewGroupDirectory(db),
		Comments: store.NewCommentStore(db),
		Graph:    graph,
		Composer: feed.NewComposer(db, graph),
		Cache:    cache,
		Files:    files,
	}
}

// Register wires every route onto router. The caller attaches the global
// middlewares (identity, cors, tracing) before calling this.
func (h *Handlers) Register(router *gin.Engine) {
	router.GET("/", h.Index)
	router.GET("/ping", h.Ping)
	router.GET(middlewares.LoginPath, h.Login)
	router.GET("/group/:slug/", h.GroupFeed)

	authed := router.Group("", middlewares.LoginRequired())
	authed.POST("/new/", h.NewPost)
	authed.GET("/follow/", h.FollowingFeed)
	authed.GET("/:username/follow/", h.Follow)
	authed.GET("/:username/unfollow/", h.Unfollow)
	authed.POST("/:username/:postid/edit/", h.EditPost)
	authed.POST("/:username/:postid/comment/", h.AddComment)

	router.GET("/:username/", h.Profile)
	router.GET("/:username/:postid/", h.PostView)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"path": c.Request.URL.Path})
	})
}

func (h *Handlers) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// Login is the login entry point anonymous requests are redirected to. The
// actual credential exchange belongs to the identity provider, this endpoint
// only echoes where to resume after login.
func (h *Handlers) Login(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"msg":  "authenticate against the identity provider and retry with a token",
		"next": c.Query("next"),
	})
}

// currentUser resolves the authenticated user of this request, nil when
// anonymous or when the identity refers to no known user.
func (h *Handlers) currentUser(c *gin.Context) *model.User {
	username := c.Request.Header.Get("sub")
	if username == "" {
		return nil
	}
	user, err := h.Users.GetByUsername(username)
	if err != nil {
		return nil
	}
	return user
}

// Index serves the global feed. The first page is served through the page
// cache: within the TTL window repeated reads return the cached rendering even
// if posts were created since. Post writes deliberately do not invalidate.
func (h *Handlers) Index(c *gin.Context) {
	pageNumber := feed.PageNumber(c.Query("page"))

	if pageNumber == 1 {
		if body, ok := h.Cache.Get(c.Request.Context()); ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			return
		}
	}

	page, err := h.Composer.Global(pageNumber)
	if err != nil {
		h.internalError(c, err)
		return
	}
	posts, paginator := h.renderPage(page)
	body, err := json.Marshal(gin.H{"page": posts, "paginator": paginator})
	if err != nil {
		h.internalError(c, err)
		return
	}
	if pageNumber == 1 {
		h.Cache.Set(c.Request.Context(), body)
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (h *Handlers) GroupFeed(c *gin.Context) {
	group, err := h.Groups.GetBySlug(c.Param("slug"))
	if err != nil {
		h.notFoundOrError(c, err)
		return
	}
	page, err := h.Composer.Group(group, feed.PageNumber(c.Query("page")))
	if err != nil {
		h.internalError(c, err)
		return
	}
	posts, paginator := h.renderPage(page)
	c.JSON(http.StatusOK, gin.H{
		"group":     renderGroup(group),
		"page":      posts,
		"paginator": paginator,
	})
}

func (h *Handlers) Profile(c *gin.Context) {
	author, err := h.Users.GetByUsername(c.Param("username"))
	if err != nil {
		h.notFoundOrError(c, err)
		return
	}
	page, following, err := h.Composer.Profile(h.currentUser(c), author, feed.PageNumber(c.Query("page")))
	if err != nil {
		h.internalError(c, err)
		return
	}
	posts, paginator := h.renderPage(page)
	c.JSON(http.StatusOK, gin.H{
		"post_author": renderUser(author),
		"page":        posts,
		"paginator":   paginator,
		"following":   following,
	})
}

func (h *Handlers) PostView(c *gin.Context) {
	post, err := h.Posts.Get(c.Param("username"), c.Param("postid"))
	if err != nil {
		h.notFoundOrError(c, err)
		return
	}
	comments, err := h.Comments.ListForPost(post)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"post":        h.renderPost(post),
		"post_author": renderUser(&post.Author),
		"items":       renderComments(comments),
	})
}

func (h *Handlers) FollowingFeed(c *gin.Context) {
	viewer := h.currentUser(c)
	if viewer == nil {
		h.redirectToLogin(c)
		return
	}
	page, err := h.Composer.Following(viewer, feed.PageNumber(c.Query("page")))
	if err != nil {
		h.internalError(c, err)
		return
	}
	posts, paginator := h.renderPage(page)
	c.JSON(http.StatusOK, gin.H{"page": posts, "paginator": paginator})
}

// NewPost creates a post for the authenticated user. Note the page cache is
// intentionally not cleared here, the index stays stale until expiry.
func (h *Handlers) NewPost(c *gin.Context) {
	user := h.currentUser(c)
	if user == nil {
		h.redirectToLogin(c)
		return
	}
	group, ok := h.formGroup(c)
	if !ok {
		return
	}
	imageKey, ok := h.formImage(c)
	if !ok {
		return
	}
	if _, err := h.Posts.Create(user, c.PostForm("text"), group, imageKey); err != nil {
		h.validationOrError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// EditPost updates a post. A non-owner editor is redirected back to the
// unchanged post without an error, matching the original behavior (see
// DESIGN.md).
func (h *Handlers) EditPost(c *gin.Context) {
	post, err := h.Posts.Get(c.Param("username"), c.Param("postid"))
	if err != nil {
		h.notFoundOrError(c, err)
		return
	}
	postPath := fmt.Sprintf("/%s/%s/", c.Param("username"), c.Param("postid"))

	editor := h.currentUser(c)
	if editor == nil || editor.Id != post.AuthorID {
		c.Redirect(http.StatusFound, postPath)
		return
	}

	group, ok := h.formGroup(c)
	if !ok {
		return
	}
	imageKey, ok := h.formImage(c)
	if !ok {
		return
	}
	if _, err := h.Posts.Edit(post, editor, c.PostForm("text"), group, imageKey); err != nil {
		h.validationOrError(c, err)
		return
	}
	c.Redirect(http.StatusFound, postPath)
}

func (h *Handlers) AddComment(c *gin.Context) {
	post, err := h.Posts.Get(c.Param("username"), c.Param("postid"))
	if err != nil {
		h.notFoundOrError(c, err)
		return
	}
	user := h.currentUser(c)
	if user == nil {
		h.redirectToLogin(c)
		return
	}
	if _, err := h.Comments.Add(post, user, c.PostForm("text")); err != nil {
		h.validationOrError(c, err)
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/%s/%s/", c.Param("username"), c.Param("postid")))
}

func (h *Handlers) Follow(c *gin.Context) {
	author, err := h.Users.GetByUsername(c.Param("username"))
	if err != nil {
		h.notFoundOrError(c, err)
		return
	}
	user := h.currentUser(c)
	if user == nil {
		h.redirectToLogin(c)
		return
	}
	if err := h.Graph.Follow(user, author); err != nil {
		h.internalError(c, err)
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/%s/", author.Username))
}

// Unfollow requires the edge to exist at the route level: unfollowing an
// author the user doesn't follow is a 404, even though the graph itself treats
// removal as idempotent.
func (h *Handlers) Unfollow(c *gin.Context) {
	author, err := h.Users.GetByUsername(c.Param("username"))
	if err != nil {
		h.notFoundOrError(c, err)
		return
	}
	user := h.currentUser(c)
	if user == nil {
		h.redirectToLogin(c)
		return
	}
	following, err := h.Graph.IsFollowing(user, author)
	if err != nil {
		h.internalError(c, err)
		return
	}
	if !following {
		c.JSON(http.StatusNotFound, gin.H{"path": c.Request.URL.Path})
		return
	}
	if err := h.Graph.Unfollow(user, author); err != nil {
		h.internalError(c, err)
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/%s/", author.Username))
}

// formGroup resolves the optional group form field (a group slug). Reports
// false after writing the response when the slug refers to no known group.
func (h *Handlers) formGroup(c *gin.Context) (*model.Group, bool) {
	slug := c.PostForm("group")
	if slug == "" {
		return nil, true
	}
	group, err := h.Groups.GetBySlug(slug)
	if err != nil {
		if store.IsNotFound(err) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"group": "unknown group"}})
			return nil, false
		}
		h.internalError(c, err)
		return nil, false
	}
	return group, true
}

// formImage validates and stores the optional image form file, returning the
// file store key. Reports false after writing the response on a bad upload.
func (h *Handlers) formImage(c *gin.Context) (string, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		// no file attached
		return "", true
	}
	data, err := readMultipartFile(file)
	if err != nil {
		h.internalError(c, err)
		return "", false
	}
	if err := filestore.ValidateImage(data); err != nil {
		h.validationOrError(c, err)
		return "", false
	}
	key, err := h.Files.Store(file.Filename, data)
	if err != nil {
		h.internalError(c, err)
		return "", false
	}
	return key, true
}

func readMultipartFile(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ioutil.ReadAll(f)
}

func (h *Handlers) redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, middlewares.LoginPath+"?next="+url.QueryEscape(c.Request.URL.Path))
}

// validationOrError renders a ValidationError as a field error payload the
// form re-renders inline, anything else as a 500.
func (h *Handlers) validationOrError(c *gin.Context, err error) {
	if ve := store.AsValidationError(err); ve != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{ve.Field: ve.Message}})
		return
	}
	h.internalError(c, err)
}

func (h *Handlers) notFoundOrError(c *gin.Context, err error) {
	if store.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"path": c.Request.URL.Path})
		return
	}
	h.internalError(c, err)
}

func (h *Handlers) internalError(c *gin.Context, err error) {
	Logger.Log.Error("request failed: ", err)
	c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal server error"})
}
