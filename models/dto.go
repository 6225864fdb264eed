package models

type RegisterRequest struct {
	Username string   `json:"username" validate:"required,min=3,max=50"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Role     UserRole `json:"role,omitempty" validate:"omitempty,oneof=admin moderator editor"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CreateArticleRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=255"`
	Content     string   `json:"content" validate:"required"`
	Tags        []string `json:"tags" validate:"omitempty,dive,min=1,max=64"`
	IsPublic    bool     `json:"is_public"`
	WeightScore float64  `json:"weight_score" validate:"omitempty,gte=0"`
}

// UpdateArticleRequest and UpdateDraftRequest use pointers so handlers can
// tell an omitted field from an explicit zero value.
type UpdateArticleRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1,max=255"`
	Content     *string  `json:"content"`
	Tags        []string `json:"tags" validate:"omitempty,dive,min=1,max=64"`
	IsPublic    *bool    `json:"is_public"`
	WeightScore *float64 `json:"weight_score" validate:"omitempty,gte=0"`
}

type UpdateDraftRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1,max=255"`
	Content     *string  `json:"content"`
	Tags        []string `json:"tags" validate:"omitempty,dive,min=1,max=64"`
	IsPublic    *bool    `json:"is_public"`
	WeightScore *float64 `json:"weight_score" validate:"omitempty,gte=0"`
}

type AttachTranslationRequest struct {
	ArticleID                  uint   `json:"article_id" validate:"required"`
	LanguageCode               string `json:"language_code" validate:"required,min=2,max=16"`
	GroupID                    *uint  `json:"group_id"`
	AutoTranslateFromArticleID *uint  `json:"auto_translate_from_article_id"`
}

type CreateLanguageRequest struct {
	Code     string `json:"code" validate:"required,min=2,max=16"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	IsActive *bool  `json:"is_active"`
}

type UpdateLanguageRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	IsActive *bool   `json:"is_active"`
}

type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type ArticleListParams struct {
	Search    string `form:"search"`
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=10"`
	SortBy    string `form:"sort_by,default=created_at"`
	SortOrder string `form:"sort_order,default=desc"`
}
