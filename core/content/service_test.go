package content_test

import (
	"context"
	"strings"
	"testing"

	"github.com/bgugger/atelier/core"
	"github.com/bgugger/atelier/core/content"
	appfs "github.com/bgugger/atelier/fs"
	emailsvc "github.com/bgugger/atelier/services/email"
	dummydb "github.com/bgugger/atelier/storage/database/dummy"
	testutil "github.com/bgugger/atelier/tests"
)

func setup(t *testing.T) (*content.Service, content.Repository) {
	t.Helper()

	conf := testutil.NewConfig()
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open(): %v", err)
	}
	repo := dummydb.NewContentRepository(db)
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	t.Cleanup(emailsvc.ClearSentMessages)
	core.ParseEmailTemplates(appfs.FS, testutil.Logger{T: t})
	return content.NewService(repo, mailSvc, conf), repo
}

func TestService_UpdateContent(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	page := testutil.CreatePage(t, repo, "about", "Über mich", "<p>Hallo</p>")
	course := testutil.CreateCourse(t, repo, "Aquarell", 0, true)

	t.Run("unknown kind", func(t *testing.T) {
		err := svc.UpdateContent(ctx, content.Kind("banner"), page.ID, map[string]string{"title": "x"})
		if _, ok := err.(*core.ValidationError); !ok {
			t.Fatalf("err = %v; want validation error", err)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		err := svc.UpdateContent(ctx, content.KindPage, page.ID, map[string]string{"slug": "nope"})
		vErr, ok := err.(*core.ValidationError)
		if !ok {
			t.Fatalf("err = %v; want validation error", err)
		}
		if len(vErr.Fields) != 1 || vErr.Fields[0].Field != "slug" {
			t.Errorf("vErr.Fields = %+v", vErr.Fields)
		}
	})

	t.Run("missing entity", func(t *testing.T) {
		err := svc.UpdateContent(ctx, content.KindPage, 404, map[string]string{"title": "x"})
		if err != content.ErrNotFound {
			t.Errorf("err = %v; want ErrNotFound", err)
		}
	})

	t.Run("page fields are trimmed and saved", func(t *testing.T) {
		err := svc.UpdateContent(ctx, content.KindPage, page.ID, map[string]string{
			"title":   "  Neuer Titel  ",
			"content": "<p>Neuer Inhalt</p>",
		})
		if err != nil {
			t.Fatalf("UpdateContent() failed: %v", err)
		}
		got, err := repo.GetPage(ctx, page.ID)
		if err != nil {
			t.Fatalf("GetPage() failed: %v", err)
		}
		if got.Title != "Neuer Titel" {
			t.Errorf("Title = %q", got.Title)
		}
		if got.Content != "<p>Neuer Inhalt</p>" {
			t.Errorf("Content = %q", got.Content)
		}
		if !got.UpdatedAt.After(page.UpdatedAt) {
			t.Error("UpdatedAt not bumped")
		}
	})

	t.Run("course content maps to description", func(t *testing.T) {
		err := svc.UpdateContent(ctx, content.KindCourse, course.ID, map[string]string{"content": "Neu"})
		if err != nil {
			t.Fatalf("UpdateContent() failed: %v", err)
		}
		got, err := repo.GetCourse(ctx, course.ID)
		if err != nil {
			t.Fatalf("GetCourse() failed: %v", err)
		}
		if got.Description != "Neu" {
			t.Errorf("Description = %q", got.Description)
		}
	})
}

func TestService_SetImage(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	page := testutil.CreatePage(t, repo, "about", "Über mich", "")

	t.Run("unknown kind", func(t *testing.T) {
		if _, err := svc.SetImage(ctx, content.Kind("banner"), page.ID, "x.png"); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("sets path and returns title", func(t *testing.T) {
		title, err := svc.SetImage(ctx, content.KindPage, page.ID, "pages/atelier.jpg")
		if err != nil {
			t.Fatalf("SetImage() failed: %v", err)
		}
		if title != "Über mich" {
			t.Errorf("title = %q", title)
		}
		got, err := repo.GetPage(ctx, page.ID)
		if err != nil {
			t.Fatalf("GetPage() failed: %v", err)
		}
		if got.ImagePath.String != "pages/atelier.jpg" {
			t.Errorf("ImagePath = %q", got.ImagePath.String)
		}
	})
}

func TestService_Register(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	course := testutil.CreateCourse(t, repo, "Töpfern für Anfänger", 2, true)

	t.Run("with email sends confirmation and notification", func(t *testing.T) {
		t.Cleanup(emailsvc.ClearSentMessages)

		reg, err := svc.Register(ctx, course.ID, content.NewRegistration{
			FirstName: " Anna ",
			LastName:  "Muster",
			Email:     "Anna@Test.CH",
			Phone:     "+41 79 123 45 67",
		})
		if err != nil {
			t.Fatalf("Register() failed: %v", err)
		}
		if reg.FirstName != "Anna" {
			t.Errorf("FirstName = %q", reg.FirstName)
		}
		if reg.Email.String != "anna@test.ch" {
			t.Errorf("Email = %q", reg.Email.String)
		}
		if !reg.ConfirmationSent {
			t.Error("ConfirmationSent = false")
		}

		if len(emailsvc.SentMessages) != 2 {
			t.Fatalf("len(SentMessages) = %d; want 2", len(emailsvc.SentMessages))
		}
		confirm, notify := emailsvc.SentMessages[0], emailsvc.SentMessages[1]
		if confirm.To[0].Address != "anna@test.ch" {
			t.Errorf("confirmation To = %v", confirm.To)
		}
		if want := "Anmeldebestätigung: Töpfern für Anfänger"; confirm.Subject != want {
			t.Errorf("Subject = %q; want %q", confirm.Subject, want)
		}
		if !strings.Contains(confirm.TextContent, "Hallo Anna") {
			t.Errorf("confirmation body = %q", confirm.TextContent)
		}
		if notify.To[0].Address != "admin@test.ch" {
			t.Errorf("notification To = %v", notify.To)
		}
		if notify.ReplyTo != "anna@test.ch" {
			t.Errorf("notification ReplyTo = %q", notify.ReplyTo)
		}
	})

	t.Run("without email only notifies the admin", func(t *testing.T) {
		t.Cleanup(emailsvc.ClearSentMessages)

		reg, err := svc.Register(ctx, course.ID, content.NewRegistration{
			FirstName: "Beat",
			LastName:  "Muster",
			Phone:     "+41 79 123 45 68",
		})
		if err != nil {
			t.Fatalf("Register() failed: %v", err)
		}
		if reg.ConfirmationSent {
			t.Error("ConfirmationSent = true")
		}
		if len(emailsvc.SentMessages) != 1 {
			t.Fatalf("len(SentMessages) = %d; want 1", len(emailsvc.SentMessages))
		}
	})

	t.Run("course full", func(t *testing.T) {
		_, err := svc.Register(ctx, course.ID, content.NewRegistration{FirstName: "Cleo", LastName: "Muster"})
		vErr, ok := err.(*core.ValidationError)
		if !ok {
			t.Fatalf("err = %v; want validation error", err)
		}
		if vErr.Error() != content.ErrCourseFull.Error() {
			t.Errorf("err = %q", vErr.Error())
		}
	})

	t.Run("unknown course", func(t *testing.T) {
		if _, err := svc.Register(ctx, 404, content.NewRegistration{FirstName: "Dea", LastName: "Muster"}); err != content.ErrNotFound {
			t.Errorf("err = %v; want ErrNotFound", err)
		}
	})
}

func TestService_CreateCourse(t *testing.T) {
	svc, _ := setup(t)

	course, err := svc.CreateCourse(context.Background(), content.NewCourse{
		Title:    "  Malkurs  ",
		Location: "   ",
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	if course.Title != "Malkurs" {
		t.Errorf("Title = %q", course.Title)
	}
	if course.Location.Valid {
		t.Errorf("Location = %+v; want null", course.Location)
	}
	if course.ID == 0 {
		t.Error("ID = 0")
	}
}

func TestService_AddArtImages(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	cat := testutil.CreateArtCategory(t, repo, "Keramik", 1, true)
	testutil.CreateArtImage(t, repo, cat.ID, "art/old.jpg", 3)

	added, err := svc.AddArtImages(ctx, cat.ID, " Serie 2024 ", "art/a.jpg", "art/b.jpg")
	if err != nil {
		t.Fatalf("AddArtImages() failed: %v", err)
	}
	if len(added) != 2 {
		t.Fatalf("len(added) = %d; want 2", len(added))
	}
	// positions continue after the existing images
	if added[0].Position != 4 || added[1].Position != 5 {
		t.Errorf("positions = %d, %d; want 4, 5", added[0].Position, added[1].Position)
	}
	if added[0].Caption.String != "Serie 2024" {
		t.Errorf("Caption = %q", added[0].Caption.String)
	}

	if _, err = svc.AddArtImages(ctx, 404, "", "art/c.jpg"); err != content.ErrNotFound {
		t.Errorf("err = %v; want ErrNotFound", err)
	}
}

func TestService_CreateNavItem(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	item, err := svc.CreateNavItem(ctx, content.NavItem{Title: " Angebot ", Slug: " Angebot ", Position: 1, IsActive: true})
	if err != nil {
		t.Fatalf("CreateNavItem() failed: %v", err)
	}
	if item.Title != "Angebot" || item.Slug != "angebot" {
		t.Errorf("item = %+v", item)
	}

	items, err := repo.QueryNavItems(ctx, true)
	if err != nil {
		t.Fatalf("QueryNavItems() failed: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("len(items) = %d; want 1", len(items))
	}
}
