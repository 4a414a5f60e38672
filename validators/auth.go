package validators

type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=student instructor"`
}

func (in *RegisterInput) Validate() error { return validate.Struct(in) }

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (in *LoginInput) Validate() error { return validate.Struct(in) }

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

func (in *ChangePasswordInput) Validate() error { return validate.Struct(in) }

type SkillInput struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Level string `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
}

type UpdateProfileInput struct {
	Name     string       `json:"name" validate:"omitempty,min=2,max=100"`
	Headline string       `json:"headline" validate:"omitempty,max=200"`
	City     string       `json:"city" validate:"omitempty,max=100"`
	Skills   []SkillInput `json:"skills" validate:"omitempty,dive"`
}

func (in *UpdateProfileInput) Validate() error { return validate.Struct(in) }

type AssignRoleInput struct {
	UserID uint   `json:"userId" validate:"required"`
	Role   string `json:"role" validate:"required,oneof=student instructor admin"`
}

func (in *AssignRoleInput) Validate() error { return validate.Struct(in) }
