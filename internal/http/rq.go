package httpapp

import (
	"net/http"

	"github.com/rest1/board/internal/auth"
	"github.com/rest1/board/internal/model"
)

// rq is the per-request context handed to handlers. The actor is resolved
// from the Authorization header on first use and then remembered, so a
// request is authenticated at most once and only when a handler asks.
type rq struct {
	r    *http.Request
	auth *auth.Service

	resolved bool
	actor    model.Member
	actorErr error
}

func newRq(r *http.Request, authSvc *auth.Service) *rq {
	return &rq{r: r, auth: authSvc}
}

func (q *rq) Actor() (model.Member, error) {
	if !q.resolved {
		q.actor, q.actorErr = q.auth.Authenticate(q.r.Context(), q.r.Header.Get("Authorization"))
		q.resolved = true
	}
	return q.actor, q.actorErr
}
