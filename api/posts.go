package api

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/thangnd96/hybrid-app/structs"

	"github.com/pkg/errors"
)

// TrendingLimit is how many top posts the trending section shows
const TrendingLimit = 3

// FetchPosts retrieves one page of posts for the given filter. A non-empty
// search keyword routes through /posts/search, everything else through
// /posts. Sort parameters ride along either way.
func (c *Client) FetchPosts(filter structs.PostFilters, skip, limit int) (structs.PostsResponse, error) {
	params := filter.Values()
	params.Set("skip", strconv.Itoa(skip))
	params.Set("limit", strconv.Itoa(limit))

	path := "/posts"
	if filter.Q != "" {
		path = "/posts/search"
	}

	var page structs.PostsResponse
	if err := c.get(path, params, &page); err != nil {
		return structs.PostsResponse{}, errors.Wrap(err, "fetching posts")
	}
	if page.Total < 0 {
		return structs.PostsResponse{}, &DecodeError{Endpoint: path, Err: errors.New("negative total")}
	}
	return page, nil
}

// FetchPost retrieves a single post by ID
func (c *Client) FetchPost(id int) (structs.Post, error) {
	var post structs.Post
	if err := c.get(fmt.Sprintf("/posts/%d", id), nil, &post); err != nil {
		return structs.Post{}, errors.Wrapf(err, "fetching post %d", id)
	}
	return post, nil
}

// FetchTrendingPosts retrieves the most-viewed posts for the trending
// section, trimmed down to the fields the cards display.
func (c *Client) FetchTrendingPosts() ([]structs.Post, error) {
	params := url.Values{}
	params.Set("skip", "0")
	params.Set("limit", strconv.Itoa(TrendingLimit))
	params.Set("sortBy", "views")
	params.Set("order", structs.OrderDesc)
	params.Set("select", "title,reactions,tags,views")

	var page structs.PostsResponse
	if err := c.get("/posts", params, &page); err != nil {
		return nil, errors.Wrap(err, "fetching trending posts")
	}
	return page.Posts, nil
}
