package dummydb

import (
	"context"
	"sort"

	"github.com/bgugger/atelier/core/content"
)

type contentRepository struct {
	page         *pageTable
	course       *courseTable
	registration *registrationTable
	artCategory  *artCategoryTable
	artImage     *artImageTable
	navItem      *navItemTable
}

var _ content.Repository = (*contentRepository)(nil) // interface compliance check

func NewContentRepository(db *DB) content.Repository {
	return &contentRepository{
		page:         db.page,
		course:       db.course,
		registration: db.registration,
		artCategory:  db.artCategory,
		artImage:     db.artImage,
		navItem:      db.navItem,
	}
}

// Pages

func (repo *contentRepository) GetPage(_ context.Context, id int) (content.Page, error) {
	repo.page.RLock()
	defer repo.page.RUnlock()

	if page, ok := repo.page.table[id]; ok {
		return *page, nil
	}
	return content.Page{}, content.ErrNotFound
}

func (repo *contentRepository) GetPageBySlug(_ context.Context, slug string) (content.Page, error) {
	repo.page.RLock()
	defer repo.page.RUnlock()

	for _, page := range repo.page.table {
		if page.Slug == slug {
			return *page, nil
		}
	}
	return content.Page{}, content.ErrNotFound
}

func (repo *contentRepository) QueryPages(_ context.Context) ([]content.Page, error) {
	repo.page.RLock()
	defer repo.page.RUnlock()

	pages := make([]content.Page, 0, len(repo.page.table))
	for _, page := range repo.page.table {
		pages = append(pages, *page)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].ID < pages[j].ID })
	return pages, nil
}

func (repo *contentRepository) CreatePage(_ context.Context, page content.Page) (content.Page, error) {
	repo.page.Lock()
	defer repo.page.Unlock()

	repo.page.seq++
	page.ID = repo.page.seq
	repo.page.table[page.ID] = &page
	return page, nil
}

func (repo *contentRepository) UpdatePage(_ context.Context, page content.Page) (content.Page, error) {
	repo.page.Lock()
	defer repo.page.Unlock()

	if _, ok := repo.page.table[page.ID]; !ok {
		return content.Page{}, content.ErrNotFound
	}
	repo.page.table[page.ID] = &page
	return page, nil
}

func (repo *contentRepository) DeletePage(_ context.Context, id int) error {
	repo.page.Lock()
	defer repo.page.Unlock()
	delete(repo.page.table, id)
	return nil
}

// Courses

func (repo *contentRepository) GetCourse(ctx context.Context, id int) (content.Course, error) {
	repo.course.RLock()
	course, ok := repo.course.table[id]
	if !ok {
		repo.course.RUnlock()
		return content.Course{}, content.ErrNotFound
	}
	res := *course
	repo.course.RUnlock()

	res.RegistrationCount = repo.countRegistrations(res.ID)
	return res, nil
}

func (repo *contentRepository) QueryCourses(_ context.Context, activeOnly bool) ([]content.Course, error) {
	repo.course.RLock()
	courses := make([]content.Course, 0, len(repo.course.table))
	for _, course := range repo.course.table {
		if activeOnly && !course.IsActive {
			continue
		}
		courses = append(courses, *course)
	}
	repo.course.RUnlock()

	for i := range courses {
		courses[i].RegistrationCount = repo.countRegistrations(courses[i].ID)
	}
	// most recent first, undated courses last
	sort.Slice(courses, func(i, j int) bool {
		ci, cj := courses[i], courses[j]
		if ci.Date.Valid != cj.Date.Valid {
			return ci.Date.Valid
		}
		if ci.Date.Valid {
			return ci.Date.Time.After(cj.Date.Time)
		}
		return ci.ID < cj.ID
	})
	return courses, nil
}

func (repo *contentRepository) CreateCourse(_ context.Context, course content.Course) (content.Course, error) {
	repo.course.Lock()
	defer repo.course.Unlock()

	repo.course.seq++
	course.ID = repo.course.seq
	repo.course.table[course.ID] = &course
	return course, nil
}

func (repo *contentRepository) UpdateCourse(_ context.Context, course content.Course) (content.Course, error) {
	repo.course.Lock()
	defer repo.course.Unlock()

	if _, ok := repo.course.table[course.ID]; !ok {
		return content.Course{}, content.ErrNotFound
	}
	repo.course.table[course.ID] = &course
	return course, nil
}

func (repo *contentRepository) DeleteCourse(_ context.Context, id int) error {
	repo.course.Lock()
	delete(repo.course.table, id)
	repo.course.Unlock()

	repo.registration.Lock()
	defer repo.registration.Unlock()
	for rid, reg := range repo.registration.table {
		if reg.CourseID == id {
			delete(repo.registration.table, rid)
		}
	}
	return nil
}

func (repo *contentRepository) countRegistrations(courseID int) int {
	repo.registration.RLock()
	defer repo.registration.RUnlock()

	count := 0
	for _, reg := range repo.registration.table {
		if reg.CourseID == courseID {
			count++
		}
	}
	return count
}

// Registrations

func (repo *contentRepository) CreateRegistration(_ context.Context, reg content.Registration) (content.Registration, error) {
	repo.registration.Lock()
	defer repo.registration.Unlock()

	repo.registration.seq++
	reg.ID = repo.registration.seq
	repo.registration.table[reg.ID] = &reg
	return reg, nil
}

func (repo *contentRepository) UpdateRegistration(_ context.Context, reg content.Registration) (content.Registration, error) {
	repo.registration.Lock()
	defer repo.registration.Unlock()

	if _, ok := repo.registration.table[reg.ID]; !ok {
		return content.Registration{}, content.ErrNotFound
	}
	repo.registration.table[reg.ID] = &reg
	return reg, nil
}

func (repo *contentRepository) QueryRegistrations(_ context.Context, courseID int) ([]content.Registration, error) {
	repo.registration.RLock()
	defer repo.registration.RUnlock()

	regs := make([]content.Registration, 0)
	for _, reg := range repo.registration.table {
		if reg.CourseID == courseID {
			regs = append(regs, *reg)
		}
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].ID < regs[j].ID })
	return regs, nil
}

// Art categories

func (repo *contentRepository) GetArtCategory(_ context.Context, id int) (content.ArtCategory, error) {
	repo.artCategory.RLock()
	defer repo.artCategory.RUnlock()

	if cat, ok := repo.artCategory.table[id]; ok {
		return *cat, nil
	}
	return content.ArtCategory{}, content.ErrNotFound
}

func (repo *contentRepository) QueryArtCategories(_ context.Context, activeOnly bool) ([]content.ArtCategory, error) {
	repo.artCategory.RLock()
	defer repo.artCategory.RUnlock()

	cats := make([]content.ArtCategory, 0, len(repo.artCategory.table))
	for _, cat := range repo.artCategory.table {
		if activeOnly && !cat.IsActive {
			continue
		}
		cats = append(cats, *cat)
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].Position != cats[j].Position {
			return cats[i].Position < cats[j].Position
		}
		return cats[i].ID < cats[j].ID
	})
	return cats, nil
}

func (repo *contentRepository) CreateArtCategory(_ context.Context, cat content.ArtCategory) (content.ArtCategory, error) {
	repo.artCategory.Lock()
	defer repo.artCategory.Unlock()

	repo.artCategory.seq++
	cat.ID = repo.artCategory.seq
	repo.artCategory.table[cat.ID] = &cat
	return cat, nil
}

func (repo *contentRepository) UpdateArtCategory(_ context.Context, cat content.ArtCategory) (content.ArtCategory, error) {
	repo.artCategory.Lock()
	defer repo.artCategory.Unlock()

	if _, ok := repo.artCategory.table[cat.ID]; !ok {
		return content.ArtCategory{}, content.ErrNotFound
	}
	repo.artCategory.table[cat.ID] = &cat
	return cat, nil
}

func (repo *contentRepository) DeleteArtCategory(_ context.Context, id int) error {
	repo.artCategory.Lock()
	delete(repo.artCategory.table, id)
	repo.artCategory.Unlock()

	repo.artImage.Lock()
	defer repo.artImage.Unlock()
	for imgID, img := range repo.artImage.table {
		if img.CategoryID == id {
			delete(repo.artImage.table, imgID)
		}
	}
	return nil
}

// Art images

func (repo *contentRepository) GetArtImage(_ context.Context, id int) (content.ArtImage, error) {
	repo.artImage.RLock()
	defer repo.artImage.RUnlock()

	if img, ok := repo.artImage.table[id]; ok {
		return *img, nil
	}
	return content.ArtImage{}, content.ErrNotFound
}

func (repo *contentRepository) QueryArtImages(_ context.Context, categoryID int) ([]content.ArtImage, error) {
	repo.artImage.RLock()
	defer repo.artImage.RUnlock()

	imgs := make([]content.ArtImage, 0)
	for _, img := range repo.artImage.table {
		if img.CategoryID == categoryID {
			imgs = append(imgs, *img)
		}
	}
	sort.Slice(imgs, func(i, j int) bool {
		if imgs[i].Position != imgs[j].Position {
			return imgs[i].Position < imgs[j].Position
		}
		return imgs[i].ID < imgs[j].ID
	})
	return imgs, nil
}

func (repo *contentRepository) CreateArtImage(_ context.Context, img content.ArtImage) (content.ArtImage, error) {
	repo.artImage.Lock()
	defer repo.artImage.Unlock()

	repo.artImage.seq++
	img.ID = repo.artImage.seq
	repo.artImage.table[img.ID] = &img
	return img, nil
}

func (repo *contentRepository) DeleteArtImage(_ context.Context, id int) error {
	repo.artImage.Lock()
	defer repo.artImage.Unlock()
	delete(repo.artImage.table, id)
	return nil
}

// Navigation

func (repo *contentRepository) QueryNavItems(_ context.Context, activeOnly bool) ([]content.NavItem, error) {
	repo.navItem.RLock()
	defer repo.navItem.RUnlock()

	items := make([]content.NavItem, 0, len(repo.navItem.table))
	for _, item := range repo.navItem.table {
		if activeOnly && !item.IsActive {
			continue
		}
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Position != items[j].Position {
			return items[i].Position < items[j].Position
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (repo *contentRepository) CreateNavItem(_ context.Context, item content.NavItem) (content.NavItem, error) {
	repo.navItem.Lock()
	defer repo.navItem.Unlock()

	repo.navItem.seq++
	item.ID = repo.navItem.seq
	repo.navItem.table[item.ID] = &item
	return item, nil
}
