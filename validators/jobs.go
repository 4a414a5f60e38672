package validators

type JobInput struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Company     string `json:"company" validate:"required,min=1,max=200"`
	Location    string `json:"location" validate:"omitempty,max=200"`
	Type        string `json:"type" validate:"omitempty,oneof=full-time part-time contract remote"`
	SalaryMin   int    `json:"salaryMin" validate:"gte=0"`
	SalaryMax   int    `json:"salaryMax" validate:"gte=0,gtefield=SalaryMin"`
	Description string `json:"description" validate:"omitempty,max=10000"`
	Tags        string `json:"tags" validate:"omitempty,max=500"` // через запятую
	Match       int    `json:"match" validate:"gte=0,lte=100"`
}

func (in *JobInput) Validate() error { return validate.Struct(in) }

type ApplyInput struct {
	JobID uint `json:"jobId" validate:"required"`
}

func (in *ApplyInput) Validate() error { return validate.Struct(in) }

type SaveJobInput struct {
	JobID uint `json:"jobId" validate:"required"`
}

func (in *SaveJobInput) Validate() error { return validate.Struct(in) }
