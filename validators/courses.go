package validators

type CourseInput struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"omitempty,max=5000"`
	Category    string `json:"category" validate:"omitempty,max=100"`
	Price       int    `json:"price" validate:"gte=0"`
}

func (in *CourseInput) Validate() error { return validate.Struct(in) }

type ModuleInput struct {
	CourseID uint   `json:"courseId" validate:"required"`
	Title    string `json:"title" validate:"required,min=1,max=255"`
	Position int    `json:"position" validate:"gte=1"`
}

func (in *ModuleInput) Validate() error { return validate.Struct(in) }

type LessonInput struct {
	ModuleID uint   `json:"moduleId" validate:"required"`
	Title    string `json:"title" validate:"required,min=1,max=255"`
	Content  string `json:"content" validate:"omitempty"`
	VideoURL string `json:"videoUrl" validate:"omitempty,url,max=500"`
	Duration int    `json:"duration" validate:"gte=0"`
	Position int    `json:"position" validate:"gte=1"`
}

func (in *LessonInput) Validate() error { return validate.Struct(in) }

type EnrollInput struct {
	CourseID uint `json:"courseId" validate:"required"`
}

func (in *EnrollInput) Validate() error { return validate.Struct(in) }

type CompleteLessonInput struct {
	LessonID uint `json:"lessonId" validate:"required"`
}

func (in *CompleteLessonInput) Validate() error { return validate.Struct(in) }

type ReviewInput struct {
	CourseID uint   `json:"courseId" validate:"required"`
	Rating   int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment  string `json:"comment" validate:"omitempty,max=2000"`
}

func (in *ReviewInput) Validate() error { return validate.Struct(in) }
