package web

import (
	"context"
	"net/http"
)

// RedirectNavigator answers the current request with a 302 to the target.
type RedirectNavigator struct {
	w http.ResponseWriter
	r *http.Request
}

func NewRedirectNavigator(w http.ResponseWriter, r *http.Request) *RedirectNavigator {
	return &RedirectNavigator{w: w, r: r}
}

func (n *RedirectNavigator) Navigate(ctx context.Context, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	http.Redirect(n.w, n.r, target, http.StatusFound)
	return nil
}
