package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"onboarding-service/auth"
	"onboarding-service/middleware"
	"onboarding-service/models"
	"onboarding-service/storage"
	"onboarding-service/utils"
)

// Per-endpoint gate policies. The differences are deliberate: note reads are
// self-only regardless of role, report and client reads let managers see any
// client, media endpoints are split by role.
var (
	selfOnly      = auth.Policy{OwnerCheckAppliesToManager: true}
	selfOrManager = auth.Policy{}
	managerOnly   = auth.Policy{RequiredRole: models.RoleManager}
	clientSelf    = auth.Policy{RequiredRole: models.RoleClient, OwnerCheckAppliesToManager: true}
)

// allowed runs the authorization gate for the current request. It writes the
// response on denial.
func allowed(c *gin.Context, ownerEmail string, policy auth.Policy) bool {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return false
	}
	if err := auth.Decide(principal, ownerEmail, policy); err != nil {
		log.Printf("access denied: %s on %s by %s", c.Request.Method, c.Request.URL.Path, principal.Email)
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return false
	}
	return true
}

// respondError maps domain errors onto stable status classes. Unexpected
// errors are recorded on the context so the Sentry middleware picks them up.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, models.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
	case errors.Is(err, models.ErrWrongPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong credentials"})
	case errors.Is(err, models.ErrWrongListSize),
		errors.Is(err, models.ErrUserNotClient),
		errors.Is(err, models.ErrNoteCannotBeDeleted):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// formFiles reads every uploaded "files" part into memory.
func formFiles(c *gin.Context) ([]storage.UploadFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	headers := form.File["files"]
	files := make([]storage.UploadFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, storage.UploadFile{Name: header.Filename, Data: data})
	}
	return files, nil
}

func sendClientEvent(producer utils.KafkaProducer, event string, payload interface{}) {
	if producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	body := map[string]interface{}{
		"event": event,
		"data":  payload,
	}
	jsonData, err := json.Marshal(body)
	if err != nil {
		log.Printf("Failed to marshal Kafka event: %v", err)
		return
	}

	if err := producer.SendMessage(ctx, utils.ClientEventsTopic, nil, jsonData); err != nil {
		log.Printf("Failed to send Kafka message: %v", err)
	}
}
