package auth

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// fakeDirectory meniru tabel users untuk UserLookup.
type fakeDirectory struct {
	users map[uuid.UUID]UserStatus
	err   error
}

func (d fakeDirectory) lookup(ctx context.Context, id uuid.UUID) (*UserStatus, error) {
	if d.err != nil {
		return nil, d.err
	}
	u, ok := d.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// newStudentOnlyApp: AuthJWT + RequireRoles(STUDENT), seperti /exam-session/start.
func newStudentOnlyApp(dir fakeDirectory) *fiber.App {
	app := fiber.New()
	app.Post("/start",
		AuthJWT(AuthJWTOpts{Secret: testSecret}),
		RequireRoles(dir.lookup, "Hanya siswa", "STUDENT"),
		func(c *fiber.Ctx) error {
			role, _ := c.Locals(LocUserRole).(string)
			return c.SendString(role)
		},
	)
	return app
}

func TestRequireRolesStudentOnly(t *testing.T) {
	student := uuid.New()
	teacher := uuid.New()
	inactive := uuid.New()
	promoted := uuid.New()
	missing := uuid.New()

	dir := fakeDirectory{users: map[uuid.UUID]UserStatus{
		student:  {Role: "STUDENT", IsActive: true},
		teacher:  {Role: "TEACHER", IsActive: true},
		inactive: {Role: "STUDENT", IsActive: false},
		// token masih STUDENT, DB sudah TEACHER
		promoted: {Role: "TEACHER", IsActive: true},
	}}
	app := newStudentOnlyApp(dir)

	exp := time.Now().Add(time.Hour)
	tokenFor := func(id uuid.UUID, role string, exp time.Time) string {
		return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
			"id": id.String(), "role": role, "exp": exp.Unix(),
		})
	}

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"siswa aktif", tokenFor(student, "STUDENT", exp), fiber.StatusOK},
		{"guru", tokenFor(teacher, "TEACHER", exp), fiber.StatusForbidden},
		{"role DB menang atas token", tokenFor(promoted, "STUDENT", exp), fiber.StatusForbidden},
		{"user nonaktif", tokenFor(inactive, "STUDENT", exp), fiber.StatusUnauthorized},
		{"user tidak ada", tokenFor(missing, "STUDENT", exp), fiber.StatusUnauthorized},
		{"token kedaluwarsa", tokenFor(student, "STUDENT", time.Now().Add(-time.Minute)), fiber.StatusUnauthorized},
		{"tanpa token", "", fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/start", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestRequireRolesUsesDirectoryRole(t *testing.T) {
	// token mengaku TEACHER, DB bilang STUDENT → lolos dengan role STUDENT
	id := uuid.New()
	app := newStudentOnlyApp(fakeDirectory{users: map[uuid.UUID]UserStatus{
		id: {Role: "STUDENT", IsActive: true},
	}})
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"id": id.String(), "role": "TEACHER", "exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("POST", "/start", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "STUDENT" {
		t.Fatalf("userRole = %q, want STUDENT", body)
	}
}

func TestRequireRolesLookupFailure(t *testing.T) {
	id := uuid.New()
	app := newStudentOnlyApp(fakeDirectory{err: errors.New("db down")})
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"id": id.String(), "role": "STUDENT", "exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("POST", "/start", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
}

func TestRequireRolesWithoutUserLocals(t *testing.T) {
	app := fiber.New()
	app.Get("/x", RequireRoles(fakeDirectory{}.lookup, "", "STUDENT"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}
