package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/curlykit/PTLab2/internal/core/domain"
	"github.com/curlykit/PTLab2/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type stubValidator struct {
	validate func(token string) (*jwt.Claims, error)
}

func (s stubValidator) ValidateAccessToken(token string) (*jwt.Claims, error) {
	return s.validate(token)
}

func newAuthApp(v TokenValidator, roles ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := append([]fiber.Handler{AuthMiddleware(v)}, roles...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("username").(string))
	})
	app.Get("/", handlers...)
	return app
}

func TestAuthMiddleware(t *testing.T) {
	v := stubValidator{validate: func(token string) (*jwt.Claims, error) {
		switch token {
		case "admin":
			return &jwt.Claims{UserID: 1, Username: "admin", Role: string(domain.RoleAdmin)}, nil
		case "viewer":
			return &jwt.Claims{UserID: 2, Username: "viewer", Role: string(domain.RoleViewer)}, nil
		case "old":
			return nil, domain.ErrTokenExpired
		default:
			return nil, domain.ErrTokenInvalid
		}
	}}

	tests := []struct {
		name   string
		header string
		cookie string
		roles  []fiber.Handler
		want   int
	}{
		{name: "no token", want: http.StatusUnauthorized},
		{name: "bearer", header: "Bearer admin", want: http.StatusOK},
		{name: "cookie", cookie: "viewer", want: http.StatusOK},
		{name: "expired", header: "Bearer old", want: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic admin", want: http.StatusUnauthorized},
		{name: "viewer on admin route", header: "Bearer viewer", roles: []fiber.Handler{AdminOnly()}, want: http.StatusForbidden},
		{name: "viewer on read route", header: "Bearer viewer", roles: []fiber.Handler{ViewerOrAdmin()}, want: http.StatusOK},
		{name: "admin on admin route", header: "Bearer admin", roles: []fiber.Handler{AdminOnly()}, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newAuthApp(v, tt.roles...)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "access_token", Value: tt.cookie})
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, resp.StatusCode)
			}
		})
	}
}
