package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/bgugger/atelier/core"
	"github.com/bgugger/atelier/core/content"
	"github.com/bgugger/atelier/core/user"
)

// NewConfig returns a Config suitable for tests. No external service is
// reachable with it.
func NewConfig() *core.Config {
	conf := &core.Config{
		Env:             "test",
		TestMode:        true,
		AppName:         "Atelier",
		SecretKey:       "s3cr3t-k3y",
		FrontendBaseURL: "http://localhost:8080",
		AdminEmail:      "admin@test.ch",
	}
	conf.Server.JWTExpirationDelta = 10 * time.Minute
	conf.Server.JWTRefreshExpirationDelta = 4 * time.Hour
	conf.Uploads.AllowedExts = []string{"png", "jpg", "jpeg", "gif"}
	return conf
}

// Logger is a core.Logger that records messages on the test log.
type Logger struct {
	T *testing.T
}

func (l Logger) log(level, msg string, args []interface{}) {
	l.T.Helper()
	l.T.Logf("%s: %s %v", level, msg, args)
}

func (l Logger) Debug(msg string, args ...interface{}) { l.log("DEBUG", msg, args) }
func (l Logger) Info(msg string, args ...interface{})  { l.log("INFO", msg, args) }
func (l Logger) Warn(msg string, args ...interface{})  { l.log("WARN", msg, args) }
func (l Logger) Error(msg string, args ...interface{}) { l.log("ERROR", msg, args) }
func (l Logger) Fatal(msg string, args ...interface{}) {
	l.T.Helper()
	l.T.Fatalf("FATAL: %s %v", msg, args)
}

func CreateUser(t *testing.T, repo user.Repository, name, email, pwd string, isAdmin bool) user.User {
	t.Helper()

	usr := user.User{
		Name:      name,
		Email:     email,
		IsAdmin:   isAdmin,
		CreatedAt: time.Now().UTC(),
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreatePage(t *testing.T, repo content.Repository, slug, title, body string) content.Page {
	t.Helper()

	page, err := repo.CreatePage(context.Background(), content.Page{
		Slug:      slug,
		Title:     title,
		Content:   body,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreatePage() failed: %v", err)
	}
	return page
}

func CreateCourse(t *testing.T, repo content.Repository, title string, maxParticipants int, isActive bool) content.Course {
	t.Helper()

	now := time.Now().UTC()
	course := content.Course{
		Title:     title,
		IsActive:  isActive,
		Date:      null.TimeFrom(now.Add(14 * 24 * time.Hour)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if maxParticipants > 0 {
		course.MaxParticipants = null.IntFrom(maxParticipants)
	}
	course, err := repo.CreateCourse(context.Background(), course)
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return course
}

func CreateArtCategory(t *testing.T, repo content.Repository, title string, position int, isActive bool) content.ArtCategory {
	t.Helper()

	cat, err := repo.CreateArtCategory(context.Background(), content.ArtCategory{
		Title:     title,
		Position:  position,
		IsActive:  isActive,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateArtCategory() failed: %v", err)
	}
	return cat
}

func CreateArtImage(t *testing.T, repo content.Repository, categoryID int, relPath string, position int) content.ArtImage {
	t.Helper()

	img, err := repo.CreateArtImage(context.Background(), content.ArtImage{
		CategoryID: categoryID,
		ImagePath:  relPath,
		Position:   position,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateArtImage() failed: %v", err)
	}
	return img
}

func CreateRegistrations(t *testing.T, repo content.Repository, courseID, n int) []content.Registration {
	t.Helper()

	regs := make([]content.Registration, 0, n)
	for i := 0; i < n; i++ {
		reg, err := repo.CreateRegistration(context.Background(), content.Registration{
			CourseID:     courseID,
			FirstName:    fmt.Sprintf("Gast%d", i+1),
			LastName:     "Test",
			Phone:        "+41 79 000 00 00",
			RegisteredAt: time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("CreateRegistrations() failed: %v", err)
		}
		regs = append(regs, reg)
	}
	return regs
}
