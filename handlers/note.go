package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"onboarding-service/models"
	"onboarding-service/services"
)

type NoteHandler struct {
	notes *services.NoteService
}

func NewNoteHandler(notes *services.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

func (h *NoteHandler) GetMeetingNotes(c *gin.Context) {
	clientEmail := c.Param("clientEmail")
	if clientEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client email is required"})
		return
	}
	if !allowed(c, clientEmail, selfOnly) {
		return
	}

	notes, err := h.notes.ListMeetingNotes(clientEmail)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meeting_notes": notes})
}

func (h *NoteHandler) GetMeetingNote(c *gin.Context) {
	clientEmail := c.Param("clientEmail")
	noteID, err := parseID(c.Param("noteId"))
	if clientEmail == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client email and note id are required"})
		return
	}
	if !allowed(c, clientEmail, selfOnly) {
		return
	}

	note, err := h.notes.GetMeetingNote(clientEmail, noteID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meeting_note": note})
}

func (h *NoteHandler) GetUsefulInfo(c *gin.Context) {
	h.getSingleton(c, "useful_info", h.notes.GetUsefulInfo)
}

func (h *NoteHandler) GetContactDetails(c *gin.Context) {
	h.getSingleton(c, "contact_details", h.notes.GetContactDetails)
}

func (h *NoteHandler) getSingleton(c *gin.Context, field string, fetch func(string) (*models.Note, error)) {
	clientEmail := c.Param("clientEmail")
	if clientEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client email is required"})
		return
	}
	if !allowed(c, clientEmail, selfOnly) {
		return
	}

	note, err := fetch(clientEmail)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{field: note})
}

type MeetingNoteRequest struct {
	ID      uint   `json:"id"`
	Header  string `json:"header" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// PutMeetingNote creates a meeting note, or edits one when an id is given.
func (h *NoteHandler) PutMeetingNote(c *gin.Context) {
	recipientEmail := c.Param("recipientEmail")
	if recipientEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipient email is required"})
		return
	}
	if !allowed(c, recipientEmail, managerOnly) {
		return
	}

	var req MeetingNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.notes.SaveMeetingNote(req.ID, req.Header, req.Content, recipientEmail); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

type NoteContentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *NoteHandler) PutUsefulInfo(c *gin.Context) {
	h.putSingleton(c, h.notes.SaveUsefulInfo)
}

func (h *NoteHandler) PutContactDetails(c *gin.Context) {
	h.putSingleton(c, h.notes.SaveContactDetails)
}

func (h *NoteHandler) putSingleton(c *gin.Context, save func(string, string) error) {
	recipientEmail := c.Param("recipientEmail")
	if recipientEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipient email is required"})
		return
	}
	if !allowed(c, recipientEmail, managerOnly) {
		return
	}

	var req NoteContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := save(recipientEmail, req.Content); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// DeleteMeetingNote tombstones a meeting note and returns the remaining ones.
// Singleton note types are refused.
func (h *NoteHandler) DeleteMeetingNote(c *gin.Context) {
	noteID, err := parseID(c.Param("noteId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid note id"})
		return
	}
	if !allowed(c, "", managerOnly) {
		return
	}

	remaining, err := h.notes.DeleteMeetingNote(noteID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meeting_notes": remaining})
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	return uint(id), err
}
