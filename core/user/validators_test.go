package user

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

func TestValidatePassword(t *testing.T) {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	InitValidators(validate, translator)

	nu := NewUser{Name: "Bea Gugger", Email: "bea@test.ch"}

	tests := []struct {
		name    string
		pwd     string
		wantTag string
	}{
		{name: "too short", pwd: "aB1!", wantTag: pwdMinLenTag},
		{name: "whitespace", pwd: "aB1! aB1!", wantTag: pwdNoSpaceTag},
		{name: "all numeric", pwd: "12345678", wantTag: pwdNotAllNumTag},
		{name: "missing special char", pwd: "aaaaBBB1", wantTag: pwdComplexityTag},
		{name: "missing digit", pwd: "aaaaBBB!", wantTag: pwdComplexityTag},
		{name: "similar to email", pwd: "Bea@test.ch1", wantTag: pwdAttrSimTag},
		{name: "ok", pwd: "s3cr3t-K3y!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nu.Password = tt.pwd
			err := validate.Struct(nu)
			if tt.wantTag == "" {
				if err != nil {
					t.Fatalf("Struct() error = %v; want nil", err)
				}
				return
			}
			vErrs, ok := err.(validator.ValidationErrors)
			if !ok || len(vErrs) == 0 {
				t.Fatalf("Struct() error = %v; want ValidationErrors", err)
			}
			if tag := vErrs[0].Tag(); tag != tt.wantTag {
				t.Errorf("tag = %q; wantTag %q", tag, tt.wantTag)
			}
		})
	}
}
