package controllers

import (
	"log"
	"net/http"

	"github.com/thangnd96/hybrid-app/structs"
	"github.com/thangnd96/hybrid-app/utils"
)

// SearchPosts handles GET /search. Direct access without a keyword goes
// back to the feed; otherwise the keyword becomes the active filter and
// every match is returned with the term wrapped in a highlight marker.
func (h *PostHandlers) SearchPosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		log.Println("SearchPosts: Invalid request method; redirecting to feed.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	filter := structs.ParseFilters(r.URL.Query())
	if filter.Q == "" {
		log.Println("SearchPosts: Empty search query; redirecting to feed.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	log.Printf("SearchPosts: Received search query: q=%s, sortBy=%s, order=%s", filter.Q, filter.SortBy, filter.Order)

	if err := h.list.SetFilter(filter); err != nil {
		utils.RespondError(w, http.StatusBadGateway, "Error fetching search results", err)
		return
	}

	posts := highlightPosts(h.list.Posts(), filter.Q)
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"query":      filter.Q,
		"results":    posts,
		"page":       h.list.Page(),
		"totalPages": h.list.TotalPages(),
		"total":      h.list.Total(),
	})
}
