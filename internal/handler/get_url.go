package handler

import (
	"net"
	"net/http"
	"net/netip"
	"time"

	"github.com/avc-dev/link-resolver/internal/model"
	"github.com/go-chi/chi/v5"
)

// GetURL перенаправляет по короткому коду на адрес назначения
func (h *Handler) GetURL(w http.ResponseWriter, req *http.Request) {
	code := chi.URLParam(req, "code")

	destination, err := h.usecase.GetOriginalURL(req.Context(), code, requestMeta(req))
	if err != nil {
		h.handleError(w, err)
		return
	}

	http.Redirect(w, req, destination, http.StatusFound)
}

func requestMeta(req *http.Request) model.RequestMeta {
	return model.RequestMeta{
		IP:        clientIP(req),
		UserAgent: req.UserAgent(),
		Referer:   req.Referer(),
		Path:      req.URL.Path,
		At:        time.Now(),
	}
}

// clientIP возвращает адрес клиента или пустую строку, если его не удалось разобрать
func clientIP(req *http.Request) string {
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		host = req.RemoteAddr
	}

	addr, err := netip.ParseAddr(host)
	if err != nil {
		return ""
	}
	return addr.Unmap().String()
}
