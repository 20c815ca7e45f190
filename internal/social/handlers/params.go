package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/SystAttic/TraversiumSocialService/internal/social/store"
)

func int64Param(r *http.Request, name string) (int64, bool) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// pageRequest reads page/size/sort query params: page is 0-based, sort=newest
// flips the default insertion order.
func pageRequest(r *http.Request) store.PageRequest {
	q := r.URL.Query()
	req := store.PageRequest{}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		req.Page = v
	}
	if v, err := strconv.Atoi(q.Get("size")); err == nil {
		req.Size = v
	}
	if strings.EqualFold(strings.TrimSpace(q.Get("sort")), "newest") {
		req.NewestFirst = true
	}
	return req.Normalize()
}
