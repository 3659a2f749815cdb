package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"onboarding-service/models"
	"onboarding-service/services"
	"onboarding-service/utils"
)

const clientCacheTTL = 24 * time.Hour

type ClientHandler struct {
	users *services.UserService
	cache utils.RedisClient
	es    utils.ElasticsearchClient
	kafka utils.KafkaProducer
}

func NewClientHandler(
	users *services.UserService,
	cache utils.RedisClient,
	es utils.ElasticsearchClient,
	kafka utils.KafkaProducer,
) *ClientHandler {
	return &ClientHandler{users: users, cache: cache, es: es, kafka: kafka}
}

type ClientResponse struct {
	Email            string            `json:"email"`
	FullName         string            `json:"full_name"`
	FormAnswers      models.StringList `json:"form_answers"`
	OnboardingStages models.StringList `json:"onboarding_stages"`
	ActiveStage      int64             `json:"active_stage"`
}

func toClientResponse(client *models.User) ClientResponse {
	return ClientResponse{
		Email:            client.Email,
		FullName:         client.FullName,
		FormAnswers:      client.FormAnswers,
		OnboardingStages: client.OnboardingStages,
		ActiveStage:      client.ActiveStage,
	}
}

func (h *ClientHandler) List(c *gin.Context) {
	if !allowed(c, "", managerOnly) {
		return
	}

	clients, err := h.users.ListClients()
	if err != nil {
		respondError(c, err)
		return
	}
	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = toClientResponse(&clients[i])
	}
	c.JSON(http.StatusOK, gin.H{"clients": responses})
}

func (h *ClientHandler) Get(c *gin.Context) {
	clientEmail := c.Param("clientEmail")
	if clientEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client email is required"})
		return
	}
	if !allowed(c, clientEmail, selfOrManager) {
		return
	}

	if h.cache != nil {
		if cached, err := h.cache.GetFromCache(c.Request.Context(), utils.ClientCacheKey(clientEmail)); err == nil && cached != "" {
			var response ClientResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				c.JSON(http.StatusOK, response)
				return
			}
		}
	}

	client, err := h.users.GetClient(clientEmail)
	if err != nil {
		respondError(c, err)
		return
	}
	response := toClientResponse(client)

	if h.cache != nil {
		if data, err := json.Marshal(response); err == nil {
			if err := h.cache.SetToCache(c.Request.Context(), utils.ClientCacheKey(clientEmail), string(data), clientCacheTTL); err != nil {
				log.Printf("Failed to cache client %s: %v", clientEmail, err)
			}
		}
	}

	c.JSON(http.StatusOK, response)
}

type ClientUpdateRequest struct {
	FullName         *string           `json:"full_name"`
	FormAnswers      models.StringList `json:"form_answers"`
	OnboardingStages models.StringList `json:"onboarding_stages"`
	ActiveStage      *int64            `json:"active_stage"`
}

// Update applies a partial client update: only non-null fields are written.
func (h *ClientHandler) Update(c *gin.Context) {
	clientEmail := c.Param("clientEmail")
	if clientEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client email is required"})
		return
	}
	if !allowed(c, clientEmail, selfOrManager) {
		return
	}

	var req ClientUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.users.UpdateClient(clientEmail, req.FullName, req.FormAnswers, req.OnboardingStages, req.ActiveStage)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.DeleteFromCache(c.Request.Context(), utils.ClientCacheKey(clientEmail)); err != nil {
			log.Printf("Failed to invalidate client cache %s: %v", clientEmail, err)
		}
	}
	if client, err := h.users.GetClient(clientEmail); err == nil {
		go sendClientEvent(h.kafka, "client_updated", client)
	}

	c.Status(http.StatusOK)
}

func (h *ClientHandler) FormFilled(c *gin.Context) {
	clientEmail := c.Param("clientEmail")
	if clientEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client email is required"})
		return
	}
	if !allowed(c, clientEmail, selfOrManager) {
		return
	}

	filled, err := h.users.IsFormFilled(clientEmail)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_form_filled": filled})
}

func (h *ClientHandler) Delete(c *gin.Context) {
	clientEmail := c.Param("clientEmail")
	if clientEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client email is required"})
		return
	}
	if !allowed(c, clientEmail, managerOnly) {
		return
	}

	remaining, err := h.users.DeleteClient(clientEmail)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.DeleteFromCache(c.Request.Context(), utils.ClientCacheKey(clientEmail)); err != nil {
			log.Printf("Failed to invalidate client cache %s: %v", clientEmail, err)
		}
	}
	go sendClientEvent(h.kafka, "client_deleted", map[string]string{"email": clientEmail})

	responses := make([]ClientResponse, len(remaining))
	for i := range remaining {
		responses[i] = toClientResponse(&remaining[i])
	}
	c.JSON(http.StatusOK, gin.H{"clients": responses})
}

// Search queries the Elasticsearch projection of client profiles.
func (h *ClientHandler) Search(c *gin.Context) {
	if !allowed(c, "", managerOnly) {
		return
	}
	if h.es == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search is not available"})
		return
	}
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  q,
				"fields": []string{"full_name", "email"},
			},
		},
	}
	results, err := h.es.SearchClients(c.Request.Context(), utils.ClientsIndex, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": results})
}
