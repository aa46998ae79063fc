package domain

// CategoryInput is the create/update form of a category
type CategoryInput struct {
	Name       string      `json:"categoryName" validate:"required,max=120"`
	Definition string      `json:"categoryDefinition" validate:"max=2000"`
	Image      *FileUpload `json:"-" validate:"-"`
}

// SubcategoryInput is the create/update form of a subcategory.
// ParentSubcategoryID is set when nesting under another subcategory.
type SubcategoryInput struct {
	Name                string `json:"subcategoryName" validate:"required,max=120"`
	Definition          string `json:"subcategoryDefinition,omitempty" validate:"max=2000"`
	CategoryID          ID     `json:"categoryId" validate:"required"`
	ParentSubcategoryID ID     `json:"parentSubcategoryId,omitempty"`
}

// CourseInput is the create/update form of a course; up to four PDFs
type CourseInput struct {
	ClassName     string       `json:"className" validate:"required,max=120"`
	ClassFullname string       `json:"classFullname" validate:"required,max=250"`
	CategoryID    ID           `json:"categoryId" validate:"required"`
	SubcategoryID ID           `json:"subcategoryId,omitempty"`
	PDFs          []FileUpload `json:"-" validate:"-"`
}

// StaffInput is the create/update form of a staff member
type StaffInput struct {
	Name        string      `json:"name" validate:"required,max=100"`
	Email       string      `json:"email" validate:"required,email"`
	PhoneNumber string      `json:"phoneNumber" validate:"required,phone"`
	Subject     string      `json:"subject" validate:"required"`
	IsPremium   bool        `json:"isPremium"`
	Photo       *FileUpload `json:"-" validate:"-"`
}

// StaffPatch is a partial staff update; nil fields are left untouched
type StaffPatch struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber *string `json:"phoneNumber,omitempty" validate:"omitempty,phone"`
	Subject     *string `json:"subject,omitempty"`
	IsPremium   *bool   `json:"isPremium,omitempty"`
}

// TutorApplication is the final step of the tutor recruitment intake
type TutorApplication struct {
	Email       string      `json:"email" validate:"required,email"`
	Name        string      `json:"name" validate:"required,max=100"`
	PhoneNumber string      `json:"phoneNumber" validate:"required,phone"`
	Subjects    []string    `json:"subjects" validate:"required,min=1"`
	Experience  string      `json:"experience" validate:"max=2000"`
	Resume      *FileUpload `json:"-" validate:"-"`
}

// LogInput creates an audit log record
type LogInput struct {
	Level   string `json:"level" validate:"required,oneof=info warn error debug"`
	Message string `json:"message" validate:"required"`
	Source  string `json:"source,omitempty"`
}

// AppUpdateInput creates or edits a release record
type AppUpdateInput struct {
	Version     string `json:"version" validate:"required,appversion"`
	Platform    string `json:"platform" validate:"required,oneof=android ios web"`
	Notes       string `json:"notes"`
	DownloadURL string `json:"downloadUrl,omitempty" validate:"omitempty,url"`
	IsMandatory bool   `json:"isMandatory"`
}
