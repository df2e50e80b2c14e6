package echoapi

import (
	"github.com/go-playground/validator/v10"

	"github.com/bgugger/atelier/core"
	"github.com/bgugger/atelier/core/content"
)

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	SuccessResponse struct {
		Success bool `json:"success"`
	}

	// UploadResponse is the payload consumed by the inline image editor.
	UploadResponse struct {
		Success   bool   `json:"success"`
		ImagePath string `json:"image_path,omitempty"`
		Title     string `json:"title,omitempty"`
		Message   string `json:"message,omitempty"`
	}

	// CourseDetailResponse bundles a course with its registration state
	// for the public course page.
	CourseDetailResponse struct {
		content.Course
		IsFull bool `json:"is_full"`
	}

	ArtCategoryDetailResponse struct {
		content.ArtCategory
		Images []content.ArtImage `json:"images"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return validate.Struct(lr)
}
