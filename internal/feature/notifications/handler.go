package notifications

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"workbridge/internal/domain"
	"workbridge/internal/transport/http/ez"
	resp "workbridge/internal/transport/http/response"
)

// Module persists and serves per-user notifications. Clients poll the listing
// and derive the unread count themselves.
type Module struct {
	store domain.Storage
	log   *zap.Logger
}

func NewModule(store domain.Storage, log *zap.Logger) *Module {
	return &Module{store: store, log: log}
}

func (m *Module) MountAPI(g *gin.RouterGroup) {
	ez.Register(g, ez.Action[struct{}, []domain.Notification]{
		Method: http.MethodGet,
		Path:   "/notifications/:userId",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Notification, error) {
			userID, err := ez.UintParam(c, "userId", "User ID is required")
			if err != nil {
				return nil, err
			}
			ns, err := m.store.ListNotificationsByUser(c.Request.Context(), userID)
			if err != nil {
				return nil, ez.Internal("Failed to list notifications", err)
			}
			return ns, nil
		},
	})

	// Marking an unknown or already-read id succeeds; the client loops over
	// its unread set and must not trip on races.
	ez.Register(g, ez.Action[struct{}, resp.Msg]{
		Method: http.MethodPost,
		Path:   "/notifications/:id/read",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (resp.Msg, error) {
			id, err := ez.UintParam(c, "id", "Notification ID is required")
			if err != nil {
				return resp.Msg{}, err
			}
			if err := m.store.MarkNotificationRead(c.Request.Context(), id); err != nil {
				return resp.Msg{}, ez.Internal("Failed to mark notification as read", err)
			}
			return resp.OK("Notification marked as read"), nil
		},
	})
}
