package storeapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/honeycarbs/job-finder/internal/domain"
	"github.com/honeycarbs/job-finder/internal/repository"
	"github.com/honeycarbs/job-finder/pkg/formstore"
	"github.com/honeycarbs/job-finder/pkg/logging"
)

// Handler serves the /formdata resource
type Handler struct {
	repo   repository.ApplicationRepository
	logger *logging.Logger
}

// NewHandler creates the handler with dependencies
func NewHandler(repo repository.ApplicationRepository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Handler{repo: repo, logger: logger}
}

// Register mounts the formdata routes on r
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/formdata", h.List)
	r.POST("/formdata", h.Create)
	r.PUT("/formdata/:id", h.Update)
}

// List is the GET /formdata endpoint
func (h *Handler) List(c *gin.Context) {
	apps, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list applications failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list applications"})
		return
	}

	out := make([]formstore.Record, 0, len(apps))
	for _, app := range apps {
		out = append(out, toWire(app))
	}
	c.JSON(http.StatusOK, out)
}

// Create is the POST /formdata endpoint
func (h *Handler) Create(c *gin.Context) {
	var req formstore.Fields
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	app, err := h.repo.Create(c.Request.Context(), fromWire(req))
	if err != nil {
		h.logger.Error("create application failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create application"})
		return
	}

	h.logger.Info("application created", "id", app.ID)
	c.JSON(http.StatusCreated, toWire(app))
}

// Update is the PUT /formdata/:id endpoint
func (h *Handler) Update(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	var req formstore.Fields
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	app, err := h.repo.Update(c.Request.Context(), domain.RecordID(id), fromWire(req))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
			return
		}
		h.logger.Error("update application failed", "id", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update application"})
		return
	}

	h.logger.Info("application updated", "id", app.ID)
	c.JSON(http.StatusOK, toWire(app))
}

func fromWire(f formstore.Fields) domain.ApplicationRecord {
	return domain.ApplicationRecord{
		Name:       f.Name,
		Age:        f.Age,
		Email:      f.Email,
		Experience: f.Experience,
		JobRole:    f.JobRole,
		Company:    f.Company,
	}
}

func toWire(app domain.StoredApplication) formstore.Record {
	return formstore.Record{
		ID: string(app.ID),
		Fields: formstore.Fields{
			Name:       app.Record.Name,
			Age:        app.Record.Age,
			Email:      app.Record.Email,
			Experience: app.Record.Experience,
			JobRole:    app.Record.JobRole,
			Company:    app.Record.Company,
		},
		CreatedAt: app.CreatedAt,
		UpdatedAt: app.UpdatedAt,
	}
}
