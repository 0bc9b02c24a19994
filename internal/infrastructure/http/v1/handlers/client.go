package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stylos/internal/domain/catalog/client"
	"stylos/internal/infrastructure/http/v1/dto"
)

// ClientHandler handles HTTP requests for the client registry.
type ClientHandler struct {
	*BaseHandler
	service *client.Service
}

// NewClientHandler creates a new client handler.
func NewClientHandler(base *BaseHandler, service *client.Service) *ClientHandler {
	return &ClientHandler{BaseHandler: base, service: service}
}

// Create handles POST /clients.
func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.ClientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cl := client.New(req.Name, client.Type(req.Type))
	applyClientRequest(cl, req)

	if err := h.service.Create(c.Request.Context(), cl); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewClientResponse(cl))
}

// Update handles PUT /clients/:id.
func (h *ClientHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	clientID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.ClientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cl, err := h.service.GetByID(ctx, clientID)
	if err != nil {
		h.Error(c, err)
		return
	}

	cl.Name = req.Name
	cl.Type = client.Type(req.Type)
	cl.Version = req.Version
	applyClientRequest(cl, req)

	if err := h.service.Update(ctx, cl); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewClientResponse(cl))
}

// Get handles GET /clients/:id.
func (h *ClientHandler) Get(c *gin.Context) {
	clientID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	cl, err := h.service.GetByID(c.Request.Context(), clientID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewClientResponse(cl))
}

// List handles GET /clients.
func (h *ClientHandler) List(c *gin.Context) {
	filter := client.ListFilter{
		Search: c.Query("search"),
		Type:   client.Type(c.Query("type")),
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	clients, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewClientListResponse(clients))
}

func applyClientRequest(cl *client.Client, req dto.ClientRequest) {
	cl.Document = req.Document
	cl.Email = req.Email
	cl.Phone = req.Phone
	cl.City = req.City
	cl.Address = req.Address
}
