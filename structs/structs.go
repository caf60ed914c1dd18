package structs

import "net/url"

// Reactions groups the like/dislike counters reported for a post
type Reactions struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}

// Post represents a post fetched from the posts API. Posts are immutable
// once fetched; only list membership changes as pages load.
type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Tags      []string  `json:"tags"`
	Reactions Reactions `json:"reactions"`
	Views     int       `json:"views"`
	UserID    int       `json:"userId"`
}

// CommentUser is the author summary embedded in each comment
type CommentUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// Comment represents a comment on a post
type Comment struct {
	ID     int         `json:"id"`
	Body   string      `json:"body"`
	Likes  int         `json:"likes"`
	PostID int         `json:"postId"`
	User   CommentUser `json:"user"`
}

// User represents an authenticated user. Locally registered users carry a
// generated ID and a bcrypt password hash; remote users come back from the
// user API as-is.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Image        string `json:"image"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Password     string `json:"-"`
}

// RegisterBody holds the fields submitted by the sign-up form
type RegisterBody struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Sort orders accepted by the posts API
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// sortableFields are the Post attributes the posts API sorts by. Anything
// else is dropped rather than passed through to the remote.
var sortableFields = map[string]bool{
	"id":        true,
	"title":     true,
	"body":      true,
	"tags":      true,
	"reactions": true,
	"views":     true,
	"userId":    true,
}

// PostFilters is the current search/sort state governing the post list
// query. The query string is its shareable representation.
type PostFilters struct {
	Q      string `json:"q,omitempty"`
	SortBy string `json:"sortBy,omitempty"`
	Order  string `json:"order,omitempty"`
}

// ParseFilters extracts a filter from URL query parameters
func ParseFilters(query url.Values) PostFilters {
	f := PostFilters{
		Q:      query.Get("q"),
		SortBy: query.Get("sortBy"),
		Order:  query.Get("order"),
	}
	if !sortableFields[f.SortBy] {
		f.SortBy = ""
	}
	if f.Order != OrderAsc && f.Order != OrderDesc {
		f.Order = ""
	}
	return f
}

// Values renders the filter back into query parameters, the shareable form
func (f PostFilters) Values() url.Values {
	v := url.Values{}
	if f.Q != "" {
		v.Set("q", f.Q)
	}
	if f.SortBy != "" {
		v.Set("sortBy", f.SortBy)
	}
	if f.Order != "" {
		v.Set("order", f.Order)
	}
	return v
}

// PostsResponse is the page envelope returned by GET /posts and /posts/search
type PostsResponse struct {
	Posts []Post `json:"posts"`
	Total int    `json:"total"`
	Skip  int    `json:"skip"`
	Limit int    `json:"limit"`
}

// CommentsResponse is the page envelope returned by GET /posts/{id}/comments
type CommentsResponse struct {
	Comments []Comment `json:"comments"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}
