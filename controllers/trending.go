package controllers

import (
	"net/http"

	"github.com/thangnd96/hybrid-app/api"
	"github.com/thangnd96/hybrid-app/utils"
)

// TrendingHandler serves the most-viewed posts for the trending section
type TrendingHandler struct {
	api *api.Client
}

// NewTrendingHandler builds the trending HTTP surface
func NewTrendingHandler(client *api.Client) *TrendingHandler {
	return &TrendingHandler{api: client}
}

// ShowTrending handles GET /trending. An empty set is a valid state, not
// an error; the payload says so and the UI renders its empty message.
func (h *TrendingHandler) ShowTrending(w http.ResponseWriter, r *http.Request) {
	posts, err := h.api.FetchTrendingPosts()
	if err != nil {
		utils.RespondError(w, http.StatusBadGateway, "Error loading trending posts", err)
		return
	}

	message := ""
	if len(posts) == 0 {
		message = "No trending posts right now."
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"posts":   posts,
		"message": message,
	})
}
