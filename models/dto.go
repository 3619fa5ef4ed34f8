package models

import "lumen-cms/content"

type RegisterRequest struct {
	Username string   `json:"username" binding:"required,min=3,max=50"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=6"`
	Role     UserRole `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// OpenSessionRequest starts an editing session: post_id 0 opens a new,
// never-saved document.
type OpenSessionRequest struct {
	PostID uint `json:"post_id"`
}

type SetContentRequest struct {
	Body content.Content `json:"body" binding:"required"`
}

type SetMarkdownRequest struct {
	Markdown string `json:"markdown"`
}

type SwitchModeRequest struct {
	Mode string `json:"mode" binding:"required,oneof=visual markdown"`
}

// SubmitPostRequest is the explicit save of an editing session. The
// body itself comes from the session's live representation.
type SubmitPostRequest struct {
	Title               string     `json:"title" binding:"required,min=1,max=255"`
	Excerpt             string     `json:"excerpt" binding:"max=500"`
	Category            string     `json:"category"`
	Tags                []string   `json:"tags"`
	Status              PostStatus `json:"status" binding:"omitempty,oneof=draft published archived"`
	FeaturedImageURL    string     `json:"featured_image_url"`
	FeaturedImageHandle string     `json:"featured_image_handle"`
	VideoURL            string     `json:"video_url"`
}

type PostListParams struct {
	Status    string `form:"status"`
	Category  string `form:"category"`
	Tag       string `form:"tag"`
	AuthorID  uint   `form:"author_id"`
	Search    string `form:"q"`
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=10"`
	SortBy    string `form:"sort_by,default=created_at"`
	SortOrder string `form:"sort_order,default=desc"`
}

type ListParams struct {
	Category string `form:"category"`
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=20"`
}

type ProjectRequest struct {
	Title       string          `json:"title" binding:"required,min=1,max=255"`
	Client      string          `json:"client"`
	Category    string          `json:"category"`
	Summary     string          `json:"summary"`
	Body        content.Content `json:"body"`
	ImageURL    string          `json:"image_url"`
	ImageHandle string          `json:"image_handle"`
	VideoURL    string          `json:"video_url"`
	Year        int             `json:"year"`
	Published   bool            `json:"published"`
}

type TeamMemberRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=120"`
	Role        string `json:"role"`
	Bio         string `json:"bio"`
	PhotoURL    string `json:"photo_url"`
	PhotoHandle string `json:"photo_handle"`
	SortOrder   int    `json:"sort_order"`
}

type GalleryImageRequest struct {
	Title     string `json:"title"`
	Category  string `json:"category"`
	URL       string `json:"url" binding:"required,url"`
	Handle    string `json:"handle"`
	SortOrder int    `json:"sort_order"`
}

type PodcastEpisodeRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255"`
	Description string `json:"description"`
	Episode     int    `json:"episode" binding:"required,min=1"`
	AudioURL    string `json:"audio_url"`
	VideoURL    string `json:"video_url"`
	CoverURL    string `json:"cover_url"`
	CoverHandle string `json:"cover_handle"`
	Published   bool   `json:"published"`
}

// ContactRequest is validated with the translated validator before any
// row is written, so field errors come back inline.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"max=255"`
	Message string `json:"message" validate:"required,min=10"`
}

type UpdatePreferenceRequest struct {
	Theme string `json:"theme" binding:"required,oneof=light dark"`
}
