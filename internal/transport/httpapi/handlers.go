package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vladislavdragonenkov/storefront/internal/transport/dto"
)

func (h *handlers) root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(rootMessage)); err != nil {
		h.logger.WithError(err).Error("write response")
	}
}

func (h *handlers) listProducts(w http.ResponseWriter, r *http.Request) {
	req, err := dto.ListRequestFromQuery(r.URL.Query())
	if err != nil {
		h.writeError(w, err)
		return
	}
	products, err := h.products.List(r.Context(), req.ProductFilter())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, dto.FromProducts(products))
}

func (h *handlers) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, dto.FromProduct(product))
}

func (h *handlers) createProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductRequest
	if err := dto.Decode(r.Body, &req); err != nil {
		h.writeError(w, err)
		return
	}
	product, err := h.products.Create(r.Context(), req.Input())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, dto.FromProduct(product))
}

func (h *handlers) editProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductRequest
	if err := dto.Decode(r.Body, &req); err != nil {
		h.writeError(w, err)
		return
	}
	product, err := h.products.Edit(r.Context(), mux.Vars(r)["id"], req.Changes())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, dto.FromProduct(product))
}

func (h *handlers) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Destroy(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, dto.Deleted{Deleted: true})
}

func (h *handlers) listOrders(w http.ResponseWriter, r *http.Request) {
	req, err := dto.ListRequestFromQuery(r.URL.Query())
	if err != nil {
		h.writeError(w, err)
		return
	}
	filter, err := req.OrderFilter()
	if err != nil {
		h.writeError(w, err)
		return
	}
	orders, err := h.orders.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, dto.FromOrders(orders))
}

func (h *handlers) getOrder(w http.ResponseWriter, r *http.Request) {
	view, err := h.orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, dto.FromOrderView(view))
}

func (h *handlers) createOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderRequest
	if err := dto.Decode(r.Body, &req); err != nil {
		h.writeError(w, err)
		return
	}
	view, err := h.orders.Create(r.Context(), req.Input())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, dto.FromOrderView(view))
}

func (h *handlers) editOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderRequest
	if err := dto.Decode(r.Body, &req); err != nil {
		h.writeError(w, err)
		return
	}
	view, err := h.orders.Edit(r.Context(), mux.Vars(r)["id"], req.Changes())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, dto.FromOrderView(view))
}

func (h *handlers) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.Destroy(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, dto.Deleted{Deleted: true})
}

func (h *handlers) notFound(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusNotFound, dto.Error{Error: "route not found"})
}

func (h *handlers) methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusMethodNotAllowed, dto.Error{Error: "method not allowed"})
}
