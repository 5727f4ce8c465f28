package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"pizzeria/pkg/app"
	"pizzeria/pkg/domain/service"
)

type Handler struct {
	cfg    app.Config
	users  service.UserService
	auth   service.AuthService
	tokens service.TokenService
	orders service.OrderService
}

func Router(cfg app.Config, users service.UserService, auth service.AuthService, tokens service.TokenService, orders service.OrderService) http.Handler {
	h := &Handler{cfg: cfg, users: users, auth: auth, tokens: tokens, orders: orders}

	r := mux.NewRouter()
	r.HandleFunc("/ping", h.ping).Methods(http.MethodGet)

	s := r.PathPrefix("/api/v1").Subrouter()
	s.HandleFunc("/auth/signup", h.signup).Methods(http.MethodPost)
	s.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)
	s.HandleFunc("/auth/login-form", h.loginForm).Methods(http.MethodPost)

	p := s.NewRoute().Subrouter()
	p.Use(h.withUser)
	p.HandleFunc("/auth/refresh", h.refresh).Methods(http.MethodPost)
	p.HandleFunc("/orders", h.createOrder).Methods(http.MethodPost)
	p.HandleFunc("/orders", h.listOwnOrders).Methods(http.MethodGet)
	p.HandleFunc("/orders/all", h.listOrders).Methods(http.MethodGet)
	p.HandleFunc("/orders/{ID}", h.getOrder).Methods(http.MethodGet)
	p.HandleFunc("/orders/{ID}/items", h.addItem).Methods(http.MethodPost)
	p.HandleFunc("/orders/{ID}/items/{itemID}", h.removeItem).Methods(http.MethodDelete)
	p.HandleFunc("/orders/{ID}/finalize", h.finalizeOrder).Methods(http.MethodPost)
	p.HandleFunc("/orders/{ID}/cancel", h.cancelOrder).Methods(http.MethodPost)

	return logMiddleware(r)
}

func (h *Handler) ping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}
