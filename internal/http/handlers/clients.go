package handlers

import (
	"context"
	"net/http"

	"github.com/chiemelie/bookhub/internal/domain/client"
	"github.com/gin-gonic/gin"
)

type ClientDirectory interface {
	Create(ctx context.Context, req client.CreateClientRequest) (client.Client, error)
	List(ctx context.Context) ([]client.Client, error)
}

type ClientsHandler struct {
	directory ClientDirectory
}

func NewClientsHandler(directory ClientDirectory) *ClientsHandler {
	return &ClientsHandler{directory: directory}
}

func (h *ClientsHandler) CreateClient(ctx *gin.Context) {
	var req client.CreateClientRequest

	if !BindJSON(ctx, &req) {
		return
	}

	c, err := h.directory.Create(ctx.Request.Context(), req)

	if err != nil {
		RespondInternal(ctx, "Could not create client")
		return
	}

	ctx.JSON(http.StatusCreated, c)
}

func (h *ClientsHandler) ListClients(ctx *gin.Context) {
	clients, err := h.directory.List(ctx.Request.Context())

	if err != nil {
		RespondInternal(ctx, "Could not list clients")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": clients,
		"count": len(clients),
	})
}
