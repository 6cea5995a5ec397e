package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/staffsync/badging-backend-go/internal/handler/http/response"
	"github.com/staffsync/badging-backend-go/internal/pkg/jwt"
	"github.com/staffsync/badging-backend-go/internal/pkg/live"
)

type LiveHandler interface {
	StreamToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type LiveHandlerImpl struct {
	hub        *live.Hub
	jwtService jwt.Service
}

type streamTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// StreamToken issues the short-lived token the stream endpoint accepts
// in a query parameter, since EventSource cannot send headers.
func (h *LiveHandlerImpl) StreamToken(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	userID, _ := claims["user_id"].(string)
	businessID, _ := claims["business_id"].(string)
	if userID == "" || businessID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateStreamToken(userID, businessID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate stream token")
		return
	}

	response.Success(w, streamTokenResponse{Token: token, ExpiresIn: expiresIn})
}

// Stream handles the SSE connection. Each connection builds a fresh
// tenant session from the token's claims and tears it down on
// disconnect, so events from a previously resolved tenant can never
// reach a reconnected client.
func (h *LiveHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	userID, businessID, err := h.jwtService.ValidateStreamToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	session := live.NewTenantSession(h.hub, businessID)
	defer session.Close()

	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		employeeID = userID
	}
	events := session.Subscribe("badge/" + employeeID)
	if events == nil {
		http.Error(w, "Subscription failed", http.StatusInternalServerError)
		return
	}

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

func NewLiveHandler(hub *live.Hub, jwtService jwt.Service) LiveHandler {
	return &LiveHandlerImpl{hub: hub, jwtService: jwtService}
}
