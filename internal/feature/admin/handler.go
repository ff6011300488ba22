package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"workbridge/internal/domain"
	"workbridge/internal/transport/http/ez"
)

// Module is the admin-plane read surface: user and job listings for
// marketplace operators. Mounted behind the admin-role JWT check.
type Module struct {
	store domain.Storage
	log   *zap.Logger
}

func NewModule(store domain.Storage, log *zap.Logger) *Module {
	return &Module{store: store, log: log}
}

type listQ struct {
	Offset int `form:"offset,default=0"`
	Limit  int `form:"limit,default=20"`
}

type userRow struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type userListOut struct {
	Total int64     `json:"total"`
	Items []userRow `json:"items"`
}

func (m *Module) MountAdmin(g *gin.RouterGroup) {
	ez.Register(g, ez.Action[listQ, userListOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *listQ) (userListOut, error) {
			if in.Limit <= 0 || in.Limit > 100 {
				in.Limit = 20
			}
			users, total, err := m.store.ListUsers(c.Request.Context(), in.Offset, in.Limit)
			if err != nil {
				return userListOut{}, ez.Internal("Failed to list users", err)
			}
			out := userListOut{Total: total, Items: make([]userRow, 0, len(users))}
			for _, u := range users {
				out.Items = append(out.Items, userRow{
					ID:        u.ID,
					Username:  u.Username,
					Role:      u.Role,
					FirstName: u.FirstName,
					LastName:  u.LastName,
					Email:     u.Email,
					Phone:     u.Phone,
				})
			}
			return out, nil
		},
	})

	ez.Register(g, ez.Action[struct{}, []domain.Job]{
		Method: http.MethodGet,
		Path:   "/jobs",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Job, error) {
			jobs, err := m.store.ListJobs(c.Request.Context())
			if err != nil {
				return nil, ez.Internal("Failed to list jobs", err)
			}
			return jobs, nil
		},
	})
}
