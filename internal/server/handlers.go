package server

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-cards/pkg/models"
	"github.com/mattsolo1/grove-cards/pkg/navigation"
	"github.com/mattsolo1/grove-cards/pkg/search"
	"github.com/mattsolo1/grove-cards/pkg/service"
	"github.com/mattsolo1/grove-cards/pkg/vault"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	svc      *service.Service
	settings SettingsStore
	logger   logrus.FieldLogger
}

// NewHandlers creates a new handlers instance
func NewHandlers(svc *service.Service, settings SettingsStore, logger logrus.FieldLogger) *Handlers {
	return &Handlers{svc: svc, settings: settings, logger: logger}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// ListCards handles GET /api/cards?folder=&q=
func (h *Handlers) ListCards(c *gin.Context) {
	settings, err := h.settings.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	nav := navigation.New()
	nav.NavigateTo(c.Query("folder"))
	nav.SetSearch(c.Query("q"))

	result, err := h.svc.Render(c.Request.Context(), service.Session{Nav: nav, Settings: settings})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Search handles GET /api/search?q=&limit=&folder=
func (h *Handlers) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(search.DefaultLimit)))
	hits, err := h.svc.Search(query, &search.Options{Folder: c.Query("folder"), Limit: limit})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrSearchDisabled) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	if hits == nil {
		hits = []search.Hit{}
	}

	c.JSON(http.StatusOK, gin.H{
		"query": query,
		"hits":  hits,
	})
}

type createNoteRequest struct {
	Folder string `json:"folder"`
}

// CreateNote handles POST /api/notes
func (h *Handlers) CreateNote(c *gin.Context) {
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.svc.CreateNote(c.Request.Context(), req.Folder)
	if err != nil {
		if vault.IsConflict(err) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, vault.ErrOutsideVault) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.logger.WithField("path", record.Path).Info("created note")
	c.JSON(http.StatusCreated, record)
}

// GetSettings handles GET /api/settings
func (h *Handlers) GetSettings(c *gin.Context) {
	settings, err := h.settings.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/settings. Fields absent from the body
// keep their current values.
func (h *Handlers) UpdateSettings(c *gin.Context) {
	settings, err := h.settings.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := settings.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.settings.Save(settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// memorySettings is a SettingsStore that keeps settings in memory.
type memorySettings struct {
	mu       sync.Mutex
	settings models.ViewSettings
}

// NewMemorySettings returns a SettingsStore holding settings in memory.
func NewMemorySettings(settings models.ViewSettings) SettingsStore {
	return &memorySettings{settings: settings}
}

func (m *memorySettings) Load() (models.ViewSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings, nil
}

func (m *memorySettings) Save(s models.ViewSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = s
	return nil
}
