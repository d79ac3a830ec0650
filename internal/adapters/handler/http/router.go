package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	ws "github.com/vncsmyrnk/election/internal/adapters/handler/websocket"
)

func NewHandler(
	sessionHandler *SessionHandler,
	candidateHandler *CandidateHandler,
	pollWorkerHandler *PollWorkerHandler,
	authorizationHandler *AuthorizationHandler,
	observerHandler *ws.ObserverHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.CreateSession)
			r.Get("/", sessionHandler.ListSessions)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", sessionHandler.GetSession)
				r.Post("/start", sessionHandler.StartSession)
				r.Post("/close", sessionHandler.CloseSession)
				r.Get("/results", sessionHandler.SessionResults)

				r.Post("/candidates", candidateHandler.CreateCandidate)
				r.Get("/candidates", candidateHandler.ListCandidates)

				r.Post("/poll-workers", pollWorkerHandler.CreatePollWorker)
				r.Get("/poll-workers", pollWorkerHandler.ListPollWorkers)

				r.Post("/permits", authorizationHandler.IssuePermit)
				r.Post("/votes", authorizationHandler.CastVote)
			})
		})
	})

	r.Route("/ws/sessions/{id}", func(r chi.Router) {
		r.Get("/booth", observerHandler.BoothSocket)
		r.Get("/pollworker", observerHandler.PollWorkerSocket)
	})

	return r
}
