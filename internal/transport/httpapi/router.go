// Package httpapi отдаёт товары и заказы по REST поверх gorilla/mux.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/service/catalog"
)

const rootMessage = "storefront API is up"

type handlers struct {
	products catalog.ProductService
	orders   catalog.OrderService
	logger   *log.Entry
}

// Router собирает маршруты API с логированием запросов.
func Router(products catalog.ProductService, orders catalog.OrderService, logger *log.Entry) http.Handler {
	if logger == nil {
		logger = log.New().WithField("component", "http-api")
	}
	h := &handlers{products: products, orders: orders, logger: logger}

	r := mux.NewRouter()
	r.HandleFunc("/", h.root).Methods(http.MethodGet)

	p := r.PathPrefix("/products").Subrouter()
	p.HandleFunc("", h.listProducts).Methods(http.MethodGet)
	p.HandleFunc("", h.createProduct).Methods(http.MethodPost)
	p.HandleFunc("/{id}", h.getProduct).Methods(http.MethodGet)
	p.HandleFunc("/{id}", h.editProduct).Methods(http.MethodPut, http.MethodPatch)
	p.HandleFunc("/{id}", h.deleteProduct).Methods(http.MethodDelete)

	o := r.PathPrefix("/orders").Subrouter()
	o.HandleFunc("", h.listOrders).Methods(http.MethodGet)
	o.HandleFunc("", h.createOrder).Methods(http.MethodPost)
	o.HandleFunc("/{id}", h.getOrder).Methods(http.MethodGet)
	o.HandleFunc("/{id}", h.editOrder).Methods(http.MethodPut, http.MethodPatch)
	o.HandleFunc("/{id}", h.deleteOrder).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(h.notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(h.methodNotAllowed)

	return logMiddleware(logger, r)
}

// statusRecorder запоминает код ответа для лога.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logMiddleware(logger *log.Entry, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(rec, r)

		logger.WithFields(log.Fields{
			"method":      r.Method,
			"url":         r.URL.String(),
			"remote_addr": r.RemoteAddr,
			"user_agent":  r.UserAgent(),
			"status":      rec.status,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("http request")
	})
}
