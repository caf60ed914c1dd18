package controllers

import (
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/thangnd96/hybrid-app/api"
	"github.com/thangnd96/hybrid-app/structs"
	"github.com/thangnd96/hybrid-app/utils"
)

// DefaultPageSize is how many posts a page of the feed holds
const DefaultPageSize = 10

// TotalPages derives the page count from a server-reported total:
// ceil(total/pageSize), clamped to at least 1 so an empty result set still
// has a terminal page.
func TotalPages(total, pageSize int) int {
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// PostListController owns the paginated, filtered view of posts. Changing
// any filter field restarts pagination at page 1 and replaces the list;
// LoadMore appends the next page in arrival order. A fetch already in
// flight when the filter changes is not aborted; its resolution is
// discarded by filter identity (last filter wins).
type PostListController struct {
	mu       sync.Mutex
	api      *api.Client
	pageSize int

	filter     structs.PostFilters
	pending    structs.PostFilters
	posts      []structs.Post
	page       int
	total      int
	totalPages int
	loading    bool
	seeded     bool
}

// NewPostList builds a controller over the given client and page size
func NewPostList(client *api.Client, pageSize int) *PostListController {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &PostListController{api: client, pageSize: pageSize}
}

// SetFilter applies a filter and fetches page 1 for it. An unchanged
// filter on an already seeded list is a no-op. On fetch failure the
// previous list and filter are left intact and the error is returned for
// the caller to surface as a transient notification; retrying the same
// filter issues a fresh fetch.
func (c *PostListController) SetFilter(filter structs.PostFilters) error {
	c.mu.Lock()
	if c.seeded && filter == c.filter {
		c.mu.Unlock()
		return nil
	}
	// The filter is not committed until its page 1 arrives; pending only
	// tracks which fetch is the newest so older resolutions can be dropped.
	c.pending = filter
	c.mu.Unlock()

	page, err := c.api.FetchPosts(filter, 0, c.pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	if filter != c.pending {
		// A newer filter superseded this fetch; drop the response.
		log.Printf("PostList: discarding stale page 1 for filter %+v", filter)
		return nil
	}
	if err != nil {
		return err
	}

	c.filter = filter
	c.posts = page.Posts
	c.page = 1
	c.total = page.Total
	// Computed once from the first page's total and held fixed for this filter.
	c.totalPages = TotalPages(page.Total, c.pageSize)
	c.seeded = true
	return nil
}

// LoadMore fetches the next page and appends it. It is a no-op when a
// fetch is already in flight, when the list is not seeded yet, or when the
// current page is the last one. The returned bool reports whether the list
// grew.
func (c *PostListController) LoadMore() (bool, error) {
	c.mu.Lock()
	if c.loading || !c.seeded || c.page >= c.totalPages {
		c.mu.Unlock()
		return false, nil
	}
	c.loading = true
	filter := c.filter
	nextPage := c.page + 1
	c.mu.Unlock()

	page, err := c.api.FetchPosts(filter, (nextPage-1)*c.pageSize, c.pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if filter != c.filter {
		log.Printf("PostList: discarding stale page %d for filter %+v", nextPage, filter)
		return false, nil
	}
	if err != nil {
		return false, err
	}

	c.posts = append(c.posts, page.Posts...)
	c.page = nextPage
	return true, nil
}

// Posts returns a copy of the currently loaded list
func (c *PostListController) Posts() []structs.Post {
	c.mu.Lock()
	defer c.mu.Unlock()

	posts := make([]structs.Post, len(c.posts))
	copy(posts, c.posts)
	return posts
}

// Filter returns the active filter
func (c *PostListController) Filter() structs.PostFilters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Page returns the current page number, 0 before the first fetch
func (c *PostListController) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// TotalPages returns the page count fixed at the first fetch
func (c *PostListController) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPages
}

// Total returns the server-reported total for the active filter
func (c *PostListController) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// PostHandlers exposes the post list over the local UI routes
type PostHandlers struct {
	list     *PostListController
	comments *CommentLists
	api      *api.Client
}

// NewPostHandlers builds the HTTP surface for the feed and post detail
func NewPostHandlers(list *PostListController, comments *CommentLists, client *api.Client) *PostHandlers {
	return &PostHandlers{list: list, comments: comments, api: client}
}

// highlightPosts wraps the active keyword in title and body of each post
func highlightPosts(posts []structs.Post, keyword string) []structs.Post {
	if keyword == "" {
		return posts
	}
	for i := range posts {
		posts[i].Title = utils.HighlightMatches(posts[i].Title, keyword)
		posts[i].Body = utils.HighlightMatches(posts[i].Body, keyword)
	}
	return posts
}

// ShowPosts handles GET /posts: applies the filter from the query string
// and renders the current page state.
func (h *PostHandlers) ShowPosts(w http.ResponseWriter, r *http.Request) {
	filter := structs.ParseFilters(r.URL.Query())

	if err := h.list.SetFilter(filter); err != nil {
		utils.RespondError(w, http.StatusBadGateway, "Error fetching posts", err)
		return
	}

	posts := highlightPosts(h.list.Posts(), filter.Q)
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"posts":      posts,
		"page":       h.list.Page(),
		"totalPages": h.list.TotalPages(),
		"total":      h.list.Total(),
		"filter":     filter,
	})
}

// LoadMorePosts handles POST /posts/more
func (h *PostHandlers) LoadMorePosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	loaded, err := h.list.LoadMore()
	if err != nil {
		utils.RespondError(w, http.StatusBadGateway, "Error fetching more posts", err)
		return
	}

	filter := h.list.Filter()
	posts := highlightPosts(h.list.Posts(), filter.Q)
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"loaded":     loaded,
		"posts":      posts,
		"page":       h.list.Page(),
		"totalPages": h.list.TotalPages(),
		"total":      h.list.Total(),
	})
}

// ShowPost handles GET /posts/view?id=N: the detail view with the author
// summary and the first page of comments.
func (h *PostHandlers) ShowPost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		utils.HandleError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	post, err := h.api.FetchPost(id)
	if err != nil {
		utils.RespondError(w, http.StatusBadGateway, "Error fetching post", err)
		return
	}

	author, err := h.api.FetchUser(post.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusBadGateway, "Error fetching post author", err)
		return
	}

	comments := h.comments.Get(post.ID)
	if err := comments.Load(); err != nil {
		utils.RespondError(w, http.StatusBadGateway, "Error fetching comments", err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"post":              post,
		"author":            author,
		"authorInitial":     UserInitial(author.Username),
		"comments":          comments.Comments(),
		"totalComments":     comments.Total(),
		"totalCommentPages": comments.TotalPages(),
	})
}
