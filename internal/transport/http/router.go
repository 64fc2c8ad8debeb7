package http

import (
	"net/http"
	"time"

	httpmw "github.com/cwrk-planet/signaling-service/internal/transport/http/middleware"
	"github.com/cwrk-planet/signaling-service/internal/transport/ws"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler, wsServer *ws.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewareChi.RequestID)
	r.Use(middlewareChi.RealIP)
	r.Use(middlewareChi.Recoverer)

	// WS endpoint
	r.Get("/ws", wsServer.HandleWS)

	// Invite recovery requires access_token and user_id
	r.Group(func(pr chi.Router) {
		pr.Use(httpmw.AuthMiddleware)
		pr.Use(middlewareChi.Timeout(30 * time.Second))

		pr.Route("/invites", func(ir chi.Router) {
			ir.Get("/", h.ListInvites)
			ir.Post("/{id}/accept", h.AcceptInvite)
			ir.Post("/{id}/decline", h.DeclineInvite)
		})
	})

	// health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
