package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/bgugger/atelier/core/content"
)

// courseColumns selects a course together with its registration count.
const courseColumns = `
	c.*,
	(SELECT COUNT(*) FROM course_registrations r WHERE r.course_id = c.id) AS registration_count`

type contentRepository struct {
	db *sqlx.DB
}

var _ content.Repository = (*contentRepository)(nil) // interface compliance check

func NewContentRepository(db *sqlx.DB) content.Repository {
	return &contentRepository{db: db}
}

// Pages

func (repo *contentRepository) GetPage(ctx context.Context, id int) (content.Page, error) {
	var page content.Page
	err := repo.db.GetContext(ctx, &page, `SELECT * FROM pages WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return content.Page{}, content.ErrNotFound
	} else if err != nil {
		return content.Page{}, errors.Wrap(err, "getting page")
	}
	return page, nil
}

func (repo *contentRepository) GetPageBySlug(ctx context.Context, slug string) (content.Page, error) {
	var page content.Page
	err := repo.db.GetContext(ctx, &page, `SELECT * FROM pages WHERE slug = $1`, slug)
	if err == sql.ErrNoRows {
		return content.Page{}, content.ErrNotFound
	} else if err != nil {
		return content.Page{}, errors.Wrap(err, "getting page")
	}
	return page, nil
}

func (repo *contentRepository) QueryPages(ctx context.Context) ([]content.Page, error) {
	pages := make([]content.Page, 0)
	if err := repo.db.SelectContext(ctx, &pages, `SELECT * FROM pages ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying pages")
	}
	return pages, nil
}

func (repo *contentRepository) CreatePage(ctx context.Context, page content.Page) (content.Page, error) {
	const q = `
		INSERT INTO pages (slug, title, subtitle, content, image_path, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := repo.db.QueryRowContext(ctx, q,
		page.Slug, page.Title, page.Subtitle, page.Content, page.ImagePath, page.UpdatedAt,
	).Scan(&page.ID)
	if err != nil {
		return content.Page{}, errors.Wrap(err, "creating page")
	}
	return page, nil
}

func (repo *contentRepository) UpdatePage(ctx context.Context, page content.Page) (content.Page, error) {
	const q = `
		UPDATE pages
		SET slug = $2, title = $3, subtitle = $4, content = $5, image_path = $6, updated_at = $7
		WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, q,
		page.ID, page.Slug, page.Title, page.Subtitle, page.Content, page.ImagePath, page.UpdatedAt,
	)
	if err != nil {
		return content.Page{}, errors.Wrap(err, "updating page")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return content.Page{}, content.ErrNotFound
	}
	return page, nil
}

func (repo *contentRepository) DeletePage(ctx context.Context, id int) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM pages WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting page")
	}
	return nil
}

// Courses

func (repo *contentRepository) GetCourse(ctx context.Context, id int) (content.Course, error) {
	var course content.Course
	err := repo.db.GetContext(ctx, &course, `SELECT `+courseColumns+` FROM courses c WHERE c.id = $1`, id)
	if err == sql.ErrNoRows {
		return content.Course{}, content.ErrNotFound
	} else if err != nil {
		return content.Course{}, errors.Wrap(err, "getting course")
	}
	return course, nil
}

func (repo *contentRepository) QueryCourses(ctx context.Context, activeOnly bool) ([]content.Course, error) {
	q := `SELECT ` + courseColumns + ` FROM courses c`
	if activeOnly {
		q += ` WHERE c.is_active`
	}
	q += ` ORDER BY c.date DESC NULLS LAST, c.id`

	courses := make([]content.Course, 0)
	if err := repo.db.SelectContext(ctx, &courses, q); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	return courses, nil
}

func (repo *contentRepository) CreateCourse(ctx context.Context, course content.Course) (content.Course, error) {
	const q = `
		INSERT INTO courses (title, subtitle, description, image_path, date, location, max_participants, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := repo.db.QueryRowContext(ctx, q,
		course.Title, course.Subtitle, course.Description, course.ImagePath, course.Date,
		course.Location, course.MaxParticipants, course.IsActive, course.CreatedAt, course.UpdatedAt,
	).Scan(&course.ID)
	if err != nil {
		return content.Course{}, errors.Wrap(err, "creating course")
	}
	return course, nil
}

func (repo *contentRepository) UpdateCourse(ctx context.Context, course content.Course) (content.Course, error) {
	const q = `
		UPDATE courses
		SET title = $2, subtitle = $3, description = $4, image_path = $5, date = $6,
		    location = $7, max_participants = $8, is_active = $9, updated_at = $10
		WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, q,
		course.ID, course.Title, course.Subtitle, course.Description, course.ImagePath,
		course.Date, course.Location, course.MaxParticipants, course.IsActive, course.UpdatedAt,
	)
	if err != nil {
		return content.Course{}, errors.Wrap(err, "updating course")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return content.Course{}, content.ErrNotFound
	}
	return course, nil
}

func (repo *contentRepository) DeleteCourse(ctx context.Context, id int) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return nil
}

// Registrations

func (repo *contentRepository) CreateRegistration(ctx context.Context, reg content.Registration) (content.Registration, error) {
	const q = `
		INSERT INTO course_registrations (course_id, first_name, last_name, phone, email, registered_at, confirmation_sent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := repo.db.QueryRowContext(ctx, q,
		reg.CourseID, reg.FirstName, reg.LastName, reg.Phone, reg.Email, reg.RegisteredAt, reg.ConfirmationSent,
	).Scan(&reg.ID)
	if err != nil {
		return content.Registration{}, errors.Wrap(err, "creating registration")
	}
	return reg, nil
}

func (repo *contentRepository) UpdateRegistration(ctx context.Context, reg content.Registration) (content.Registration, error) {
	const q = `
		UPDATE course_registrations
		SET first_name = $2, last_name = $3, phone = $4, email = $5, confirmation_sent = $6
		WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, q,
		reg.ID, reg.FirstName, reg.LastName, reg.Phone, reg.Email, reg.ConfirmationSent,
	)
	if err != nil {
		return content.Registration{}, errors.Wrap(err, "updating registration")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return content.Registration{}, content.ErrNotFound
	}
	return reg, nil
}

func (repo *contentRepository) QueryRegistrations(ctx context.Context, courseID int) ([]content.Registration, error) {
	regs := make([]content.Registration, 0)
	const q = `SELECT * FROM course_registrations WHERE course_id = $1 ORDER BY id`
	if err := repo.db.SelectContext(ctx, &regs, q, courseID); err != nil {
		return nil, errors.Wrap(err, "querying registrations")
	}
	return regs, nil
}

// Art categories

func (repo *contentRepository) GetArtCategory(ctx context.Context, id int) (content.ArtCategory, error) {
	var cat content.ArtCategory
	err := repo.db.GetContext(ctx, &cat, `SELECT * FROM art_categories WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return content.ArtCategory{}, content.ErrNotFound
	} else if err != nil {
		return content.ArtCategory{}, errors.Wrap(err, "getting art category")
	}
	return cat, nil
}

func (repo *contentRepository) QueryArtCategories(ctx context.Context, activeOnly bool) ([]content.ArtCategory, error) {
	q := `SELECT * FROM art_categories`
	if activeOnly {
		q += ` WHERE is_active`
	}
	q += ` ORDER BY position, id`

	cats := make([]content.ArtCategory, 0)
	if err := repo.db.SelectContext(ctx, &cats, q); err != nil {
		return nil, errors.Wrap(err, "querying art categories")
	}
	return cats, nil
}

func (repo *contentRepository) CreateArtCategory(ctx context.Context, cat content.ArtCategory) (content.ArtCategory, error) {
	const q = `
		INSERT INTO art_categories (title, subtitle, description, image_path, position, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := repo.db.QueryRowContext(ctx, q,
		cat.Title, cat.Subtitle, cat.Description, cat.ImagePath, cat.Position, cat.IsActive, cat.CreatedAt,
	).Scan(&cat.ID)
	if err != nil {
		return content.ArtCategory{}, errors.Wrap(err, "creating art category")
	}
	return cat, nil
}

func (repo *contentRepository) UpdateArtCategory(ctx context.Context, cat content.ArtCategory) (content.ArtCategory, error) {
	const q = `
		UPDATE art_categories
		SET title = $2, subtitle = $3, description = $4, image_path = $5, position = $6, is_active = $7
		WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, q,
		cat.ID, cat.Title, cat.Subtitle, cat.Description, cat.ImagePath, cat.Position, cat.IsActive,
	)
	if err != nil {
		return content.ArtCategory{}, errors.Wrap(err, "updating art category")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return content.ArtCategory{}, content.ErrNotFound
	}
	return cat, nil
}

func (repo *contentRepository) DeleteArtCategory(ctx context.Context, id int) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM art_categories WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting art category")
	}
	return nil
}

// Art images

func (repo *contentRepository) GetArtImage(ctx context.Context, id int) (content.ArtImage, error) {
	var img content.ArtImage
	err := repo.db.GetContext(ctx, &img, `SELECT * FROM art_images WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return content.ArtImage{}, content.ErrNotFound
	} else if err != nil {
		return content.ArtImage{}, errors.Wrap(err, "getting art image")
	}
	return img, nil
}

func (repo *contentRepository) QueryArtImages(ctx context.Context, categoryID int) ([]content.ArtImage, error) {
	imgs := make([]content.ArtImage, 0)
	const q = `SELECT * FROM art_images WHERE category_id = $1 ORDER BY position, id`
	if err := repo.db.SelectContext(ctx, &imgs, q, categoryID); err != nil {
		return nil, errors.Wrap(err, "querying art images")
	}
	return imgs, nil
}

func (repo *contentRepository) CreateArtImage(ctx context.Context, img content.ArtImage) (content.ArtImage, error) {
	const q = `
		INSERT INTO art_images (category_id, image_path, caption, position, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := repo.db.QueryRowContext(ctx, q,
		img.CategoryID, img.ImagePath, img.Caption, img.Position, img.CreatedAt,
	).Scan(&img.ID)
	if err != nil {
		return content.ArtImage{}, errors.Wrap(err, "creating art image")
	}
	return img, nil
}

func (repo *contentRepository) DeleteArtImage(ctx context.Context, id int) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM art_images WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting art image")
	}
	return nil
}

// Navigation

func (repo *contentRepository) QueryNavItems(ctx context.Context, activeOnly bool) ([]content.NavItem, error) {
	q := `SELECT * FROM nav_items`
	if activeOnly {
		q += ` WHERE is_active`
	}
	q += ` ORDER BY position, id`

	items := make([]content.NavItem, 0)
	if err := repo.db.SelectContext(ctx, &items, q); err != nil {
		return nil, errors.Wrap(err, "querying nav items")
	}
	return items, nil
}

func (repo *contentRepository) CreateNavItem(ctx context.Context, item content.NavItem) (content.NavItem, error) {
	const q = `
		INSERT INTO nav_items (title, slug, icon_path, position, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := repo.db.QueryRowContext(ctx, q,
		item.Title, item.Slug, item.IconPath, item.Position, item.IsActive,
	).Scan(&item.ID)
	if err != nil {
		return content.NavItem{}, errors.Wrap(err, "creating nav item")
	}
	return item, nil
}
