package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shampooches/salon-scheduler/internal/httperr"
	"github.com/shampooches/salon-scheduler/internal/httpresp"
	"github.com/shampooches/salon-scheduler/internal/middleware"
	"github.com/shampooches/salon-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// MessageHandler is the customer-to-staff messaging surface. Each customer
// account has one thread; clients poll for new messages with ?after=<id>.
type MessageHandler struct {
	db *gorm.DB
}

func NewMessageHandler(db *gorm.DB) *MessageHandler {
	return &MessageHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type SendMessageRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// ======================================================
// CUSTOMER
// ======================================================

func (h *MessageHandler) MyThread(c *gin.Context) {
	userID := middleware.UserID(c)

	thread, err := h.getOrCreateThread(userID)
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not load your conversation.")
		return
	}

	// viewing the thread marks staff replies as read
	h.db.Model(&models.Message{}).
		Where("thread_id = ? AND sender_id <> ? AND is_read = ?", thread.ID, userID, false).
		Update("is_read", true)

	h.listMessages(c, thread.ID)
}

func (h *MessageHandler) SendAsCustomer(c *gin.Context) {
	userID := middleware.UserID(c)

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Message content is required.")
		return
	}

	thread, err := h.getOrCreateThread(userID)
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not load your conversation.")
		return
	}

	h.send(c, thread.ID, userID, req.Content)
}

// ======================================================
// STAFF
// ======================================================

func (h *MessageHandler) ListThreads(c *gin.Context) {
	var threads []models.MessageThread
	if err := h.db.
		Where("is_active = ?", true).
		Order("updated_at DESC").
		Find(&threads).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load threads.")
		return
	}

	unread, err := h.unreadByThread()
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not load threads.")
		return
	}

	out := make([]gin.H, 0, len(threads))
	for _, t := range threads {
		out = append(out, gin.H{
			"thread": t,
			"unread": unread[t.ID],
		})
	}
	httpresp.List(c, out)
}

func (h *MessageHandler) ThreadMessages(c *gin.Context) {
	threadID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Thread id must be numeric.")
		return
	}

	var thread models.MessageThread
	if err := h.db.First(&thread, threadID).Error; err != nil {
		httperr.NotFound(c, "thread_not_found", "Thread not found.")
		return
	}

	// staff viewing the thread marks the customer's messages as read
	h.db.Model(&models.Message{}).
		Where("thread_id = ? AND sender_id = ? AND is_read = ?", thread.ID, thread.CustomerID, false).
		Update("is_read", true)

	h.listMessages(c, thread.ID)
}

func (h *MessageHandler) SendAsStaff(c *gin.Context) {
	staffID := middleware.UserID(c)

	threadID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Thread id must be numeric.")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Message content is required.")
		return
	}

	var thread models.MessageThread
	if err := h.db.First(&thread, threadID).Error; err != nil {
		httperr.NotFound(c, "thread_not_found", "Thread not found.")
		return
	}

	h.send(c, thread.ID, staffID, req.Content)
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

// unreadByThread counts messages sent by the customer and not yet read by
// staff, keyed by thread id.
func (h *MessageHandler) unreadByThread() (map[uint]int64, error) {
	type row struct {
		ThreadID uint
		N        int64
	}
	var rows []row
	err := h.db.Model(&models.Message{}).
		Select("messages.thread_id AS thread_id, COUNT(*) AS n").
		Joins("JOIN message_threads ON message_threads.id = messages.thread_id").
		Where("messages.is_read = ? AND messages.sender_id = message_threads.customer_id", false).
		Group("messages.thread_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	unread := make(map[uint]int64, len(rows))
	for _, r := range rows {
		unread[r.ThreadID] = r.N
	}
	return unread, nil
}

func (h *MessageHandler) getOrCreateThread(userID uint) (*models.MessageThread, error) {
	var thread models.MessageThread
	err := h.db.Where("customer_id = ?", userID).First(&thread).Error

	if err == gorm.ErrRecordNotFound {
		thread = models.MessageThread{
			CustomerID: userID,
			Subject:    "Conversation with Shampooches",
			IsActive:   true,
		}
		err = h.db.Create(&thread).Error
	}

	if err != nil {
		return nil, err
	}
	return &thread, nil
}

// listMessages returns a thread's messages ascending; ?after=<message id>
// narrows to messages newer than one already seen, which is what the web
// client polls with.
func (h *MessageHandler) listMessages(c *gin.Context, threadID uint) {
	q := h.db.Where("thread_id = ?", threadID)

	if afterStr := c.Query("after"); afterStr != "" {
		after, err := strconv.ParseUint(afterStr, 10, 32)
		if err != nil {
			httperr.BadRequest(c, "invalid_cursor", "after must be a message id.")
			return
		}
		q = q.Where("id > ?", after)
	}

	var messages []models.Message
	if err := q.Order("id ASC").Limit(200).Find(&messages).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load messages.")
		return
	}

	c.JSON(200, gin.H{
		"thread_id": threadID,
		"messages":  messages,
	})
}

func (h *MessageHandler) send(c *gin.Context, threadID, senderID uint, content string) {
	msg := models.Message{
		ThreadID: threadID,
		SenderID: senderID,
		Content:  strings.TrimSpace(content),
	}

	if err := h.db.Create(&msg).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not send message.")
		return
	}

	// bump the thread so staff see active conversations first
	h.db.Model(&models.MessageThread{}).
		Where("id = ?", threadID).
		Update("updated_at", gorm.Expr("NOW()"))

	httpresp.Created(c, msg)
}
