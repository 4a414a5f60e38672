package validators

type PostInput struct {
	Title    string   `json:"title" validate:"required,min=3,max=200"`
	Content  string   `json:"content" validate:"required,min=1,max=20000"`
	Category string   `json:"category" validate:"omitempty,max=100"`
	Tags     []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=50"`
}

func (in *PostInput) Validate() error { return validate.Struct(in) }

type CommentInput struct {
	PostID  uint   `json:"postId" validate:"required"`
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

func (in *CommentInput) Validate() error { return validate.Struct(in) }

type LikeInput struct {
	PostID uint `json:"postId" validate:"required"`
}

func (in *LikeInput) Validate() error { return validate.Struct(in) }

type ShareInput struct {
	PostID uint `json:"postId" validate:"required"`
}

func (in *ShareInput) Validate() error { return validate.Struct(in) }
