package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	coreauth "workbridge/internal/core/auth"
	"workbridge/internal/core/session"
	"workbridge/internal/domain"
	"workbridge/internal/transport/http/ez"
	mdw "workbridge/internal/transport/http/middleware"
	resp "workbridge/internal/transport/http/response"
	"workbridge/pkg/utils"
)

// Module serves registration, login, logout and the current-user lookup.
type Module struct {
	store   domain.Storage
	jwter   *coreauth.JWTer
	revoker session.Revoker
	log     *zap.Logger
}

func NewModule(store domain.Storage, jwter *coreauth.JWTer, revoker session.Revoker, log *zap.Logger) *Module {
	return &Module{store: store, jwter: jwter, revoker: revoker, log: log}
}

// Mounted before the data modules so /api/user wins over any wildcard.
func (m *Module) Priority() int { return 10 }

type workerRegistration struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"omitempty,eqfield=Password"`
	FirstName       string `json:"firstName" binding:"required"`
	LastName        string `json:"lastName" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"required"`
	Skills          string `json:"skills" binding:"required"`
}

type employerRegistration struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"omitempty,eqfield=Password"`
	FirstName       string `json:"firstName" binding:"required"`
	LastName        string `json:"lastName" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"required"`
	CompanyName     string `json:"companyName" binding:"required"`
	Designation     string `json:"designation" binding:"required"`
	Industry        string `json:"industry" binding:"required"`
}

type loginIn struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authOut struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

func (m *Module) MountAPI(g *gin.RouterGroup) {
	ez.Register(g, ez.Action[workerRegistration, authOut]{
		Method: http.MethodPost,
		Path:   "/register/worker",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *workerRegistration) (authOut, error) {
			u := domain.User{
				Username:  in.Username,
				Password:  utils.HashPassword(in.Password),
				Role:      domain.RoleWorker,
				FirstName: in.FirstName,
				LastName:  in.LastName,
				Email:     in.Email,
				Phone:     in.Phone,
			}
			out, err := m.register(c, &u)
			if err != nil {
				return authOut{}, err
			}
			profile := domain.WorkerProfile{UserID: u.ID, Skills: in.Skills}
			if err := m.store.CreateWorkerProfile(c.Request.Context(), &profile); err != nil {
				return authOut{}, ez.Internal("Failed to create worker profile", err)
			}
			return out, nil
		},
	})

	ez.Register(g, ez.Action[employerRegistration, authOut]{
		Method: http.MethodPost,
		Path:   "/register/employer",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *employerRegistration) (authOut, error) {
			u := domain.User{
				Username:  in.Username,
				Password:  utils.HashPassword(in.Password),
				Role:      domain.RoleEmployer,
				FirstName: in.FirstName,
				LastName:  in.LastName,
				Email:     in.Email,
				Phone:     in.Phone,
			}
			out, err := m.register(c, &u)
			if err != nil {
				return authOut{}, err
			}
			profile := domain.EmployerProfile{
				UserID:      u.ID,
				CompanyName: in.CompanyName,
				Designation: in.Designation,
				Industry:    in.Industry,
			}
			if err := m.store.CreateEmployerProfile(c.Request.Context(), &profile); err != nil {
				return authOut{}, ez.Internal("Failed to create employer profile", err)
			}
			return out, nil
		},
	})

	ez.Register(g, ez.Action[loginIn, authOut]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (authOut, error) {
			u, err := m.store.GetUserByUsername(c.Request.Context(), in.Username)
			if err != nil {
				return authOut{}, ez.Internal("Failed to look up user", err)
			}
			if u == nil || !utils.CheckPassword(in.Password, u.Password) {
				return authOut{}, ez.Unauthorized("Invalid username or password")
			}
			tok, err := m.jwter.Issue(u.ID, u.Role)
			if err != nil {
				return authOut{}, ez.Internal("Failed to issue token", err)
			}
			return authOut{User: u, Token: tok}, nil
		},
	})

	// Logout and the current-user lookup need a valid token.
	authed := g.Group("")
	authed.Use(mdw.AuthJWT(m.jwter, m.revoker, ""))

	ez.Register(authed, ez.Action[struct{}, resp.Msg]{
		Method: http.MethodPost,
		Path:   "/logout",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (resp.Msg, error) {
			claims := c.MustGet("claims").(*coreauth.Claims)
			ttl := time.Until(claims.ExpiresAt.Time)
			if err := m.revoker.Revoke(c.Request.Context(), claims.ID, ttl); err != nil {
				return resp.Msg{}, ez.Internal("Failed to log out", err)
			}
			return resp.OK("Logged out"), nil
		},
	})

	ez.Register(authed, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/user",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			uid := c.GetUint(mdw.KeyUserID)
			u, err := m.store.GetUser(c.Request.Context(), uid)
			if err != nil {
				return nil, ez.Internal("Failed to look up user", err)
			}
			if u == nil {
				return nil, ez.NotFound("User not found")
			}
			return u, nil
		},
	})
}

// register creates the user row and issues a token; a taken username maps to
// a conflict and leaves no row behind.
func (m *Module) register(c *gin.Context, u *domain.User) (authOut, error) {
	ctx := c.Request.Context()
	if err := m.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return authOut{}, ez.Conflict("Username already exists")
		}
		return authOut{}, ez.Internal("Failed to create user", err)
	}
	tok, err := m.jwter.Issue(u.ID, u.Role)
	if err != nil {
		return authOut{}, ez.Internal("Failed to issue token", err)
	}
	m.log.Info("user registered", zap.Uint("user_id", u.ID), zap.String("role", u.Role))
	return authOut{User: u, Token: tok}, nil
}
