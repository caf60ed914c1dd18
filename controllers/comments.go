package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/thangnd96/hybrid-app/api"
	"github.com/thangnd96/hybrid-app/structs"
	"github.com/thangnd96/hybrid-app/utils"
)

// CommentPageSize is how many comments a page of the detail view holds
const CommentPageSize = 10

// MaxCommentLength bounds the comment form input
const MaxCommentLength = 1000

// CommentListController owns the paginated comment list of one post. It
// follows the same incremental-append pattern as the post list, with one
// addition: a locally authored comment is prepended immediately on
// successful submission and the total is incremented optimistically,
// without reconciling against server-side ordering.
type CommentListController struct {
	mu       sync.Mutex
	api      *api.Client
	postID   int
	pageSize int

	comments   []structs.Comment
	page       int
	total      int
	totalPages int
	loading    bool
	seeded     bool
}

// NewCommentList builds a controller for one post's comments
func NewCommentList(client *api.Client, postID, pageSize int) *CommentListController {
	if pageSize <= 0 {
		pageSize = CommentPageSize
	}
	return &CommentListController{api: client, postID: postID, pageSize: pageSize}
}

// Load seeds the list with page 1, replacing any previous state. Opening
// the detail view again re-seeds from the server.
func (c *CommentListController) Load() error {
	page, err := c.api.FetchComments(c.postID, 0, c.pageSize)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.comments = page.Comments
	c.page = 1
	c.total = page.Total
	c.totalPages = TotalPages(page.Total, c.pageSize)
	c.seeded = true
	return nil
}

// LoadMore fetches the next page of comments and appends it. No-op while a
// fetch is in flight or once the last page is reached.
func (c *CommentListController) LoadMore() (bool, error) {
	c.mu.Lock()
	if c.loading || !c.seeded || c.page >= c.totalPages {
		c.mu.Unlock()
		return false, nil
	}
	c.loading = true
	nextPage := c.page + 1
	c.mu.Unlock()

	page, err := c.api.FetchComments(c.postID, (nextPage-1)*c.pageSize, c.pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		return false, err
	}

	c.comments = append(c.comments, page.Comments...)
	c.page = nextPage
	return true, nil
}

// Add submits a new comment and prepends the created record to the list.
// The new comment's position among later-loaded pages is client-side only.
func (c *CommentListController) Add(body, userID string) (structs.Comment, error) {
	created, err := c.api.AddComment(body, c.postID, userID)
	if err != nil {
		return structs.Comment{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.comments = append([]structs.Comment{created}, c.comments...)
	c.total++
	return created, nil
}

// Comments returns a copy of the currently loaded list
func (c *CommentListController) Comments() []structs.Comment {
	c.mu.Lock()
	defer c.mu.Unlock()

	comments := make([]structs.Comment, len(c.comments))
	copy(comments, c.comments)
	return comments
}

// Total returns the displayed comment count, including optimistic adds
func (c *CommentListController) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Page returns the current page number
func (c *CommentListController) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// TotalPages returns the page count fixed when the list was seeded
func (c *CommentListController) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPages
}

// CommentLists hands out one controller per post so load-more state
// survives across requests to the same detail view.
type CommentLists struct {
	mu       sync.Mutex
	api      *api.Client
	pageSize int
	lists    map[int]*CommentListController
}

// NewCommentLists builds the per-post controller registry
func NewCommentLists(client *api.Client, pageSize int) *CommentLists {
	return &CommentLists{
		api:      client,
		pageSize: pageSize,
		lists:    make(map[int]*CommentListController),
	}
}

// Get returns the controller for a post, creating it on first use
func (r *CommentLists) Get(postID int) *CommentListController {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, ok := r.lists[postID]
	if !ok {
		list = NewCommentList(r.api, postID, r.pageSize)
		r.lists[postID] = list
	}
	return list
}

// CommentHandlers exposes the comment controllers over the local UI routes
type CommentHandlers struct {
	lists *CommentLists
	store *SessionStore
}

// NewCommentHandlers builds the HTTP surface for comments
func NewCommentHandlers(lists *CommentLists, store *SessionStore) *CommentHandlers {
	return &CommentHandlers{lists: lists, store: store}
}

type createCommentRequest struct {
	PostID int    `json:"postId"`
	Body   string `json:"body"`
}

// CreateComment handles POST /comments/create
func (h *CommentHandlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	user := h.store.CurrentUser()
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.HandleError(w, http.StatusBadRequest, "Unable to parse request body")
		return
	}

	body := strings.TrimSpace(req.Body)
	if req.PostID == 0 || body == "" {
		http.Error(w, "Post ID and comment body cannot be empty", http.StatusBadRequest)
		return
	}
	if len(body) > MaxCommentLength {
		http.Error(w, "Comment is too long", http.StatusBadRequest)
		return
	}

	list := h.lists.Get(req.PostID)
	created, err := list.Add(body, user.ID)
	if err != nil {
		utils.RespondError(w, http.StatusBadGateway, "Failed to add comment. Please try again.", err)
		return
	}

	log.Printf("CreateComment: added comment %d to post %d", created.ID, req.PostID)
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"comment": created,
		"total":   list.Total(),
	})
}

// LoadMoreComments handles POST /comments/more?post_id=N
func (h *CommentHandlers) LoadMoreComments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	postID, err := strconv.Atoi(r.URL.Query().Get("post_id"))
	if err != nil {
		utils.HandleError(w, http.StatusBadRequest, "Invalid PostID, error converting postID to int")
		return
	}

	list := h.lists.Get(postID)
	loaded, err := list.LoadMore()
	if err != nil {
		utils.RespondError(w, http.StatusBadGateway, "Error fetching more comments", err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"loaded":     loaded,
		"comments":   list.Comments(),
		"page":       list.Page(),
		"totalPages": list.TotalPages(),
		"total":      list.Total(),
	})
}
