package api

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/thangnd96/hybrid-app/structs"

	"github.com/pkg/errors"
)

// FetchComments retrieves one page of comments for a post
func (c *Client) FetchComments(postID, skip, limit int) (structs.CommentsResponse, error) {
	params := url.Values{}
	params.Set("skip", strconv.Itoa(skip))
	params.Set("limit", strconv.Itoa(limit))

	path := fmt.Sprintf("/posts/%d/comments", postID)
	var page structs.CommentsResponse
	if err := c.get(path, params, &page); err != nil {
		return structs.CommentsResponse{}, errors.Wrapf(err, "fetching comments for post %d", postID)
	}
	return page, nil
}

type addCommentBody struct {
	Body   string `json:"body"`
	PostID int    `json:"postId"`
	UserID string `json:"userId"`
}

// AddComment submits a new comment and returns the created record
func (c *Client) AddComment(body string, postID int, userID string) (structs.Comment, error) {
	var created structs.Comment
	err := c.post("/comments/add", addCommentBody{Body: body, PostID: postID, UserID: userID}, &created)
	if err != nil {
		return structs.Comment{}, errors.Wrapf(err, "adding comment to post %d", postID)
	}
	return created, nil
}
