// Package validation checks forms before they reach the network.
package validation

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/you/tutorportal/domain"
)

var (
	// custom validation tags & texts
	otpTag   = "otp"
	otpText  = "OTP must contain digits only"
	otpRegex = regexp.MustCompile(`^[0-9]+$`)

	phoneTag   = "phone"
	phoneText  = "{0} must be a valid phone number"
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

	appVersionTag   = "appversion"
	appVersionText  = "{0} must look like 1.2.3"
	appVersionRegex = regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+([-+][0-9A-Za-z.-]+)?$`)

	imgExtTag  = "imgext"
	imgExtText = "only jpg, jpeg, png, webp and gif images are allowed"
	imageExts  = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true}

	pdfExtTag  = "pdfext"
	pdfExtText = "only pdf files are allowed"

	requiredTag  = "required"
	requiredText = "{0} is required"
)

const (
	DefaultOTPLength = 6

	MaxImageBytes = 5 << 20
	MaxPDFBytes   = 10 << 20
	MaxCoursePDFs = 4
)

// Validator wraps a configured go-playground validator and its english translator
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
	otpLength  int
}

// Option tunes a Validator
type Option func(*Validator)

// WithOTPLength sets how many digits a one-time code has. Non-positive values
// keep the default.
func WithOTPLength(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.otpLength = n
		}
	}
}

// New instantiates the validator with english messages, JSON field names and
// the custom tags.
func New(opts ...Option) *Validator {
	validate := validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(otpTag, regexValidation(otpRegex))
	RegisterCustomTranslation(validate, translator, otpTag, otpText)

	_ = validate.RegisterValidation(phoneTag, phoneValidation)
	RegisterCustomTranslation(validate, translator, phoneTag, phoneText)

	_ = validate.RegisterValidation(appVersionTag, regexValidation(appVersionRegex))
	RegisterCustomTranslation(validate, translator, appVersionTag, appVersionText)

	_ = validate.RegisterValidation(imgExtTag, extValidation(imageExts))
	RegisterCustomTranslation(validate, translator, imgExtTag, imgExtText)

	_ = validate.RegisterValidation(pdfExtTag, extValidation(map[string]bool{".pdf": true}))
	RegisterCustomTranslation(validate, translator, pdfExtTag, pdfExtText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)

	v := &Validator{validate: validate, translator: translator, otpLength: DefaultOTPLength}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Struct validates a form and returns a *domain.ValidationError listing every
// failing field, or nil.
func (v *Validator) Struct(form interface{}) error {
	return v.translate(v.validate.Struct(form))
}

func (v *Validator) translate(err error) error {
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}
	out := &domain.ValidationError{Fields: make([]domain.FieldError, 0, len(vErrs))}
	for _, vErr := range vErrs {
		out.Fields = append(out.Fields, domain.FieldError{Field: vErr.Field(), Message: vErr.Translate(v.translator)})
	}
	return out
}

// OTP checks a one-time code; a bad code yields an error matching
// domain.ErrOTPInvalidFormat
func (v *Validator) OTP(code string) error {
	if err := v.validate.Var(code, fmt.Sprintf("required,len=%d,%s", v.otpLength, otpTag)); err != nil {
		return &domain.OTPFormatError{Length: v.otpLength}
	}
	return nil
}

// Email checks a single address entered on a login form
func (v *Validator) Email(field, email string) error {
	err := v.validate.Var(strings.TrimSpace(email), "required,email")
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) && len(vErrs) > 0 {
		msg := field + " must be a valid email address"
		if vErrs[0].Tag() == requiredTag {
			msg = field + " is required"
		}
		return &domain.ValidationError{Fields: []domain.FieldError{{Field: field, Message: msg}}}
	}
	return err
}

// Image checks an optional image upload
func (v *Validator) Image(field string, f *domain.FileUpload) error {
	if f == nil {
		return nil
	}
	return v.file(field, f, imgExtTag, MaxImageBytes)
}

// PDFs checks course documents: at most four, each a pdf within the size cap
func (v *Validator) PDFs(field string, files []domain.FileUpload) error {
	if len(files) > MaxCoursePDFs {
		return &domain.ValidationError{Fields: []domain.FieldError{{
			Field:   field,
			Message: fmt.Sprintf("at most %d pdf files can be attached", MaxCoursePDFs),
		}}}
	}
	for i := range files {
		if err := v.file(field, &files[i], pdfExtTag, MaxPDFBytes); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) file(field string, f *domain.FileUpload, tag string, maxBytes int64) error {
	if err := v.validate.Var(f.FileName, tag); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) && len(vErrs) > 0 {
			return &domain.ValidationError{Fields: []domain.FieldError{{Field: field, Message: vErrs[0].Translate(v.translator)}}}
		}
		return err
	}
	if f.Size() > maxBytes {
		return &domain.ValidationError{Fields: []domain.FieldError{{
			Field:   field,
			Message: fmt.Sprintf("%s exceeds the %d MB limit", f.FileName, maxBytes>>20),
		}}}
	}
	return nil
}

// Custom Global Validators

func regexValidation(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// phoneValidation ignores spaces and dashes used as separators
func phoneValidation(fl validator.FieldLevel) bool {
	phone := strings.NewReplacer(" ", "", "-", "").Replace(fl.Field().String())
	return phoneRegex.MatchString(phone)
}

func extValidation(allowed map[string]bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return allowed[strings.ToLower(filepath.Ext(fl.Field().String()))]
	}
}
