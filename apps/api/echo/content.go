package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/bgugger/atelier/core/content"
	uploadsvc "github.com/bgugger/atelier/services/uploads"
)

const uploadFileField = "image"

// uploadSubfolders keeps each kind's images in its own directory under the
// upload root.
var uploadSubfolders = map[content.Kind]string{
	content.KindPage:        "pages",
	content.KindCourse:      "courses",
	content.KindArtCategory: "art",
}

func (s *server) registerPublicRoutes() {
	s.app.GET("/", s.home)
	s.app.GET("/nav", s.queryNav)
	s.app.GET("/pages/:slug", s.retrievePage)
	s.app.GET("/angebot", s.queryCourses)
	s.app.GET("/angebot/:id", s.retrieveCourse)
	s.app.POST("/angebot/:id/register", s.register)
	s.app.GET("/art", s.queryArtCategories)
	s.app.GET("/art/:id", s.retrieveArtCategory)
}

func (s *server) registerAdminAPI() {
	g := s.app.Group("/admin")

	// un-authed endpoints
	g.POST("/login", s.login)

	// authed endpoints
	jwt := middleware.JWTWithConfig(s.jwtConfig)
	ag := g.Group("", jwt)
	ag.POST("/token-refresh", s.tokenRefresh)

	api := ag.Group("/api", s.adminMiddleware())

	// inline editing; :kind is one of page|course|art-category
	api.POST("/:kind/:id/content", s.saveContent)
	api.POST("/:kind/:id/image", s.saveImage)

	api.POST("/course", s.createCourse)
	api.DELETE("/course/:id", s.destroyCourse)
	api.GET("/course/:id/registrations", s.queryRegistrations)

	api.POST("/art-category", s.createArtCategory)
	api.DELETE("/art-category/:id", s.destroyArtCategory)
	api.POST("/art-category/:id/images", s.uploadArtImages)
	api.DELETE("/art-image/:id", s.destroyArtImage)
}

// Public handlers

func (s *server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Willkommen bei "+s.deps.Conf.AppName+"!")
}

func (s *server) queryNav(ctx echo.Context) error {
	items, err := s.deps.ContentSvc.QueryActiveNavItems(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying nav items")
	}
	return ctx.JSON(http.StatusOK, items)
}

func (s *server) retrievePage(ctx echo.Context) error {
	page, err := s.deps.ContentSvc.GetPageBySlug(ctx.Request().Context(), ctx.Param("slug"))
	if err != nil {
		if errors.Cause(err) == content.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting page")
	}
	return ctx.JSON(http.StatusOK, page)
}

func (s *server) queryCourses(ctx echo.Context) error {
	courses, err := s.deps.ContentSvc.QueryActiveCourses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (s *server) retrieveCourse(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	course, err := s.deps.ContentSvc.GetCourse(ctx.Request().Context(), id)
	if err != nil {
		if errors.Cause(err) == content.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting course")
	}
	return ctx.JSON(http.StatusOK, CourseDetailResponse{Course: course, IsFull: course.IsFull()})
}

func (s *server) register(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	var data content.NewRegistration
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRegistration")
	}
	if err = s.deps.Validate.Struct(&data); err != nil {
		return err
	}

	reg, err := s.deps.ContentSvc.Register(ctx.Request().Context(), id, data)
	if err != nil {
		if errors.Cause(err) == content.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusCreated, reg)
}

func (s *server) queryArtCategories(ctx echo.Context) error {
	cats, err := s.deps.ContentSvc.QueryActiveArtCategories(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying art categories")
	}
	return ctx.JSON(http.StatusOK, cats)
}

func (s *server) retrieveArtCategory(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	cat, err := s.deps.ContentSvc.GetArtCategory(ctx.Request().Context(), id)
	if err != nil {
		if errors.Cause(err) == content.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting art category")
	}
	imgs, err := s.deps.ContentSvc.QueryArtImages(ctx.Request().Context(), cat.ID)
	if err != nil {
		return errors.Wrap(err, "querying art images")
	}
	return ctx.JSON(http.StatusOK, ArtCategoryDetailResponse{ArtCategory: cat, Images: imgs})
}

// Admin handlers

func (s *server) saveContent(ctx echo.Context) error {
	kind := content.Kind(ctx.Param("kind"))
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || !kind.Valid() {
		return errHttpNotFound
	}

	fields := make(map[string]string)
	if err = ctx.Bind(&fields); err != nil {
		return errors.Wrap(err, "binding content fields")
	}

	if err = s.deps.ContentSvc.UpdateContent(ctx.Request().Context(), kind, id, fields); err != nil {
		if errors.Cause(err) == content.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: true})
}

func (s *server) saveImage(ctx echo.Context) error {
	kind := content.Kind(ctx.Param("kind"))
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || !kind.Valid() {
		return errHttpNotFound
	}

	relPath, err := s.saveUpload(ctx, kind)
	if err != nil {
		return err
	}

	title, err := s.deps.ContentSvc.SetImage(ctx.Request().Context(), kind, id, relPath)
	if err != nil {
		if errors.Cause(err) == content.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, UploadResponse{Success: true, ImagePath: relPath, Title: title})
}

// saveUpload reads the uploaded form file and stores it under the kind's
// subfolder. Failures are reported in the response shape the inline editor
// expects.
func (s *server) saveUpload(ctx echo.Context, kind content.Kind) (string, error) {
	fh, err := ctx.FormFile(uploadFileField)
	if err != nil {
		return "", ctx.JSON(http.StatusBadRequest, UploadResponse{Success: false, Message: "Kein Bild hochgeladen"})
	}
	f, err := fh.Open()
	if err != nil {
		return "", errors.Wrap(err, "opening uploaded file")
	}
	defer func() { _ = f.Close() }()

	relPath, err := s.deps.Uploads.Save(uploadSubfolders[kind], fh.Filename, f)
	if err != nil {
		if err == uploadsvc.ErrBadExtension {
			return "", ctx.JSON(http.StatusBadRequest, UploadResponse{
				Success: false,
				Message: "Ungültiger Dateityp. Erlaubt sind png/jpg/jpeg/gif.",
			})
		}
		return "", errors.Wrap(err, "saving uploaded file")
	}
	return relPath, nil
}

func (s *server) createCourse(ctx echo.Context) error {
	var data content.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := s.deps.Validate.Struct(&data); err != nil {
		return err
	}

	course, err := s.deps.ContentSvc.CreateCourse(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, course)
}

func (s *server) destroyCourse(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	if err = s.deps.ContentSvc.DeleteCourse(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *server) queryRegistrations(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	regs, err := s.deps.ContentSvc.QueryRegistrations(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "querying registrations")
	}
	return ctx.JSON(http.StatusOK, regs)
}

func (s *server) createArtCategory(ctx echo.Context) error {
	var data content.NewArtCategory
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewArtCategory")
	}
	if err := s.deps.Validate.Struct(&data); err != nil {
		return err
	}

	cat, err := s.deps.ContentSvc.CreateArtCategory(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating art category")
	}
	return ctx.JSON(http.StatusCreated, cat)
}

func (s *server) destroyArtCategory(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	if err = s.deps.ContentSvc.DeleteArtCategory(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting art category")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *server) uploadArtImages(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, UploadResponse{Success: false, Message: "Keine Bilder ausgewählt."})
	}
	files := form.File["images"]
	if len(files) == 0 {
		return ctx.JSON(http.StatusBadRequest, UploadResponse{Success: false, Message: "Keine Bilder ausgewählt."})
	}

	relPaths := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return errors.Wrap(err, "opening uploaded file")
		}
		relPath, err := s.deps.Uploads.Save(uploadSubfolders[content.KindArtCategory], fh.Filename, f)
		_ = f.Close()
		if err != nil {
			if err == uploadsvc.ErrBadExtension {
				continue // skip unsupported files, keep the rest
			}
			return errors.Wrap(err, "saving uploaded file")
		}
		relPaths = append(relPaths, relPath)
	}

	imgs, err := s.deps.ContentSvc.AddArtImages(ctx.Request().Context(), id, ctx.FormValue("caption"), relPaths...)
	if err != nil {
		if errors.Cause(err) == content.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "adding art images")
	}
	return ctx.JSON(http.StatusCreated, imgs)
}

func (s *server) destroyArtImage(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	if err = s.deps.ContentSvc.DeleteArtImage(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting art image")
	}
	return ctx.NoContent(http.StatusNoContent)
}
