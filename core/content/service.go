package content

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/bgugger/atelier/core"
)

var (
	// errors
	ErrNotFound     = errors.New("content not found")
	ErrUnknownKind  = errors.New("unknown content kind")
	ErrUnknownField = errors.New("unknown editable field")
	ErrCourseFull   = errors.New("course is already full")
)

type (
	Repository interface {
		GetPage(ctx context.Context, id int) (Page, error)
		GetPageBySlug(ctx context.Context, slug string) (Page, error)
		QueryPages(ctx context.Context) ([]Page, error)
		CreatePage(ctx context.Context, page Page) (Page, error)
		UpdatePage(ctx context.Context, page Page) (Page, error)
		DeletePage(ctx context.Context, id int) error

		GetCourse(ctx context.Context, id int) (Course, error)
		// QueryCourses returns courses ordered by date, most recent first.
		QueryCourses(ctx context.Context, activeOnly bool) ([]Course, error)
		CreateCourse(ctx context.Context, course Course) (Course, error)
		UpdateCourse(ctx context.Context, course Course) (Course, error)
		DeleteCourse(ctx context.Context, id int) error

		CreateRegistration(ctx context.Context, reg Registration) (Registration, error)
		UpdateRegistration(ctx context.Context, reg Registration) (Registration, error)
		QueryRegistrations(ctx context.Context, courseID int) ([]Registration, error)

		GetArtCategory(ctx context.Context, id int) (ArtCategory, error)
		// QueryArtCategories returns categories ordered by position.
		QueryArtCategories(ctx context.Context, activeOnly bool) ([]ArtCategory, error)
		CreateArtCategory(ctx context.Context, cat ArtCategory) (ArtCategory, error)
		UpdateArtCategory(ctx context.Context, cat ArtCategory) (ArtCategory, error)
		DeleteArtCategory(ctx context.Context, id int) error

		GetArtImage(ctx context.Context, id int) (ArtImage, error)
		// QueryArtImages returns a category's images ordered by position.
		QueryArtImages(ctx context.Context, categoryID int) ([]ArtImage, error)
		CreateArtImage(ctx context.Context, img ArtImage) (ArtImage, error)
		DeleteArtImage(ctx context.Context, id int) error

		QueryNavItems(ctx context.Context, activeOnly bool) ([]NavItem, error)
		CreateNavItem(ctx context.Context, item NavItem) (NavItem, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
	}
)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{
		repo:    repo,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

// Inline editing

// UpdateContent applies inline text edits to the entity identified by (kind, id).
// Allowed fields are title, subtitle and content; content maps to the
// description of courses and art categories. Values are trimmed before save.
func (svc *Service) UpdateContent(ctx context.Context, kind Kind, id int, fields map[string]string) error {
	if !kind.Valid() {
		return core.NewValidationError(ErrUnknownKind)
	}
	for field, value := range fields {
		switch field {
		case FieldTitle, FieldSubtitle, FieldContent:
			fields[field] = core.CleanString(value)
		default:
			return core.NewValidationError(
				ErrUnknownField,
				core.FieldError{Field: field, Error: ErrUnknownField.Error()},
			)
		}
	}

	switch kind {
	case KindPage:
		page, err := svc.repo.GetPage(ctx, id)
		if err != nil {
			return err
		}
		applyFields(fields, &page.Title, &page.Subtitle, &page.Content)
		page.UpdatedAt = time.Now().UTC()
		_, err = svc.repo.UpdatePage(ctx, page)
		return err
	case KindCourse:
		course, err := svc.repo.GetCourse(ctx, id)
		if err != nil {
			return err
		}
		applyFields(fields, &course.Title, &course.Subtitle, &course.Description)
		course.UpdatedAt = time.Now().UTC()
		_, err = svc.repo.UpdateCourse(ctx, course)
		return err
	case KindArtCategory:
		cat, err := svc.repo.GetArtCategory(ctx, id)
		if err != nil {
			return err
		}
		applyFields(fields, &cat.Title, &cat.Subtitle, &cat.Description)
		_, err = svc.repo.UpdateArtCategory(ctx, cat)
		return err
	}
	return core.NewValidationError(ErrUnknownKind)
}

func applyFields(fields map[string]string, title, subtitle, content *string) {
	if v, ok := fields[FieldTitle]; ok {
		*title = v
	}
	if v, ok := fields[FieldSubtitle]; ok {
		*subtitle = v
	}
	if v, ok := fields[FieldContent]; ok {
		*content = v
	}
}

// SetImage stores relPath as the image of the entity identified by (kind, id)
// and returns the entity's title for use as alternative text.
func (svc *Service) SetImage(ctx context.Context, kind Kind, id int, relPath string) (string, error) {
	switch kind {
	case KindPage:
		page, err := svc.repo.GetPage(ctx, id)
		if err != nil {
			return "", err
		}
		page.ImagePath = null.StringFrom(relPath)
		page.UpdatedAt = time.Now().UTC()
		if _, err = svc.repo.UpdatePage(ctx, page); err != nil {
			return "", err
		}
		return page.Title, nil
	case KindCourse:
		course, err := svc.repo.GetCourse(ctx, id)
		if err != nil {
			return "", err
		}
		course.ImagePath = null.StringFrom(relPath)
		course.UpdatedAt = time.Now().UTC()
		if _, err = svc.repo.UpdateCourse(ctx, course); err != nil {
			return "", err
		}
		return course.Title, nil
	case KindArtCategory:
		cat, err := svc.repo.GetArtCategory(ctx, id)
		if err != nil {
			return "", err
		}
		cat.ImagePath = null.StringFrom(relPath)
		if _, err = svc.repo.UpdateArtCategory(ctx, cat); err != nil {
			return "", err
		}
		return cat.Title, nil
	}
	return "", core.NewValidationError(ErrUnknownKind)
}

// Pages

func (svc *Service) GetPageBySlug(ctx context.Context, slug string) (Page, error) {
	return svc.repo.GetPageBySlug(ctx, core.CleanString(slug, true /* lower */))
}

func (svc *Service) QueryPages(ctx context.Context) ([]Page, error) {
	return svc.repo.QueryPages(ctx)
}

func (svc *Service) CreatePage(ctx context.Context, page Page) (Page, error) {
	page.Slug = core.CleanString(page.Slug, true /* lower */)
	page.UpdatedAt = time.Now().UTC()
	return svc.repo.CreatePage(ctx, page)
}

// Courses

func (svc *Service) GetCourse(ctx context.Context, id int) (Course, error) {
	return svc.repo.GetCourse(ctx, id)
}

func (svc *Service) QueryActiveCourses(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryCourses(ctx, true)
}

func (svc *Service) QueryAllCourses(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryCourses(ctx, false)
}

func (svc *Service) CreateCourse(ctx context.Context, nc NewCourse) (Course, error) {
	now := time.Now().UTC()
	course := Course{
		Title:           core.CleanString(nc.Title),
		Subtitle:        core.CleanString(nc.Subtitle),
		Description:     core.CleanString(nc.Description),
		Date:            nc.Date,
		MaxParticipants: nc.MaxParticipants,
		IsActive:        nc.IsActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if loc := core.CleanString(nc.Location); loc != "" {
		course.Location = null.StringFrom(loc)
	}
	return svc.repo.CreateCourse(ctx, course)
}

func (svc *Service) DeleteCourse(ctx context.Context, id int) error {
	return svc.repo.DeleteCourse(ctx, id)
}

func (svc *Service) QueryRegistrations(ctx context.Context, courseID int) ([]Registration, error) {
	return svc.repo.QueryRegistrations(ctx, courseID)
}

// Register signs a participant up for a course, then sends a confirmation to
// the participant (when an email was given) and a notification to the admin.
func (svc *Service) Register(ctx context.Context, courseID int, nr NewRegistration) (Registration, error) {
	course, err := svc.repo.GetCourse(ctx, courseID)
	if err != nil {
		return Registration{}, err
	}
	if course.IsFull() {
		return Registration{}, core.NewValidationError(ErrCourseFull)
	}

	reg := Registration{
		CourseID:     course.ID,
		FirstName:    core.CleanString(nr.FirstName),
		LastName:     core.CleanString(nr.LastName),
		Phone:        core.CleanString(nr.Phone),
		RegisteredAt: time.Now().UTC(),
	}
	if email := core.CleanString(nr.Email, true /* lower */); email != "" {
		reg.Email = null.StringFrom(email)
	}
	reg, err = svc.repo.CreateRegistration(ctx, reg)
	if err != nil {
		return Registration{}, err
	}

	messages := make([]*core.EmailMessage, 0, 2)
	if reg.Email.Valid {
		messages = append(messages, svc.confirmationEmail(reg, course))
		reg.ConfirmationSent = true
		if reg, err = svc.repo.UpdateRegistration(ctx, reg); err != nil {
			return Registration{}, err
		}
	}
	if svc.conf.AdminEmail != "" {
		messages = append(messages, svc.notificationEmail(reg, course))
	}
	svc.mailSvc.SendMessages(messages...)

	return reg, nil
}

type registrationEmailData struct {
	Registration Registration
	Course       Course
	CourseDate   string
}

func (svc *Service) emailData(reg Registration, course Course) registrationEmailData {
	date := "Wird noch bekannt gegeben"
	if course.Date.Valid {
		date = course.Date.Time.Format("02.01.2006 15:04")
	}
	return registrationEmailData{Registration: reg, Course: course, CourseDate: date}
}

func (svc *Service) confirmationEmail(reg Registration, course Course) *core.EmailMessage {
	return &core.EmailMessage{
		To:           []mail.Address{{Name: reg.FirstName + " " + reg.LastName, Address: reg.Email.String}},
		Subject:      fmt.Sprintf("Anmeldebestätigung: %s", course.Title),
		TemplateName: "registration-confirm",
		TemplateData: svc.emailData(reg, course),
	}
}

func (svc *Service) notificationEmail(reg Registration, course Course) *core.EmailMessage {
	msg := &core.EmailMessage{
		To:           []mail.Address{{Address: svc.conf.AdminEmail}},
		Subject:      fmt.Sprintf("Neue Kursanmeldung: %s", course.Title),
		TemplateName: "registration-notify",
		TemplateData: svc.emailData(reg, course),
	}
	if reg.Email.Valid {
		msg.ReplyTo = reg.Email.String
	}
	return msg
}

// Art gallery

func (svc *Service) GetArtCategory(ctx context.Context, id int) (ArtCategory, error) {
	return svc.repo.GetArtCategory(ctx, id)
}

func (svc *Service) QueryActiveArtCategories(ctx context.Context) ([]ArtCategory, error) {
	return svc.repo.QueryArtCategories(ctx, true)
}

func (svc *Service) CreateArtCategory(ctx context.Context, nc NewArtCategory) (ArtCategory, error) {
	cat := ArtCategory{
		Title:       core.CleanString(nc.Title),
		Subtitle:    core.CleanString(nc.Subtitle),
		Description: core.CleanString(nc.Description),
		Position:    nc.Position,
		IsActive:    nc.IsActive,
		CreatedAt:   time.Now().UTC(),
	}
	return svc.repo.CreateArtCategory(ctx, cat)
}

func (svc *Service) DeleteArtCategory(ctx context.Context, id int) error {
	return svc.repo.DeleteArtCategory(ctx, id)
}

func (svc *Service) QueryArtImages(ctx context.Context, categoryID int) ([]ArtImage, error) {
	return svc.repo.QueryArtImages(ctx, categoryID)
}

// AddArtImages appends uploaded images to a category, after any existing ones.
func (svc *Service) AddArtImages(ctx context.Context, categoryID int, caption string, relPaths ...string) ([]ArtImage, error) {
	cat, err := svc.repo.GetArtCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	existing, err := svc.repo.QueryArtImages(ctx, cat.ID)
	if err != nil {
		return nil, err
	}
	pos := 0
	for _, img := range existing {
		if img.Position > pos {
			pos = img.Position
		}
	}

	caption = core.CleanString(caption)
	added := make([]ArtImage, 0, len(relPaths))
	for _, relPath := range relPaths {
		pos++
		img := ArtImage{
			CategoryID: cat.ID,
			ImagePath:  relPath,
			Position:   pos,
			CreatedAt:  time.Now().UTC(),
		}
		if caption != "" {
			img.Caption = null.StringFrom(caption)
		}
		if img, err = svc.repo.CreateArtImage(ctx, img); err != nil {
			return added, err
		}
		added = append(added, img)
	}
	return added, nil
}

func (svc *Service) DeleteArtImage(ctx context.Context, id int) error {
	return svc.repo.DeleteArtImage(ctx, id)
}

// Navigation

func (svc *Service) QueryActiveNavItems(ctx context.Context) ([]NavItem, error) {
	return svc.repo.QueryNavItems(ctx, true)
}

func (svc *Service) CreateNavItem(ctx context.Context, item NavItem) (NavItem, error) {
	item.Title = core.CleanString(item.Title)
	item.Slug = core.CleanString(item.Slug, true /* lower */)
	return svc.repo.CreateNavItem(ctx, item)
}
