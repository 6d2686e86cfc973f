package models

type RegisterRequest struct {
	Username   string  `json:"username" binding:"required,min=3,max=50"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=8"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	EmployeeID *string `json:"employee_id"`
	Phone      string  `json:"phone"`
	Role       string  `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
	Role      *string `json:"role"`
}

type SetUserTypeRequest struct {
	UserType UserType `json:"user_type" binding:"required"`
}

type AssignDepartmentRequest struct {
	DepartmentID *uint `json:"department_id"`
}

type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description"`
}

type UpdateDepartmentRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
}

type SetTeamLeaderRequest struct {
	TeamLeaderID *uint `json:"team_leader_id"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description"`
	ParentID    *uint  `json:"parent_id"`
	Order       int    `json:"order"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	ParentID    *uint   `json:"parent_id"`
	IsActive    *bool   `json:"is_active"`
	Order       *int    `json:"order"`
}

type CreateTagRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=50"`
	Description string `json:"description"`
	IsFeatured  bool   `json:"is_featured"`
}

type CreateEntryRequest struct {
	Title              string      `json:"title" binding:"required,min=1,max=200"`
	ProblemDescription string      `json:"problem_description" binding:"required"`
	Solution           string      `json:"solution" binding:"required"`
	StepsToReproduce   string      `json:"steps_to_reproduce"`
	EnvironmentDetails string      `json:"environment_details"`
	ErrorMessages      string      `json:"error_messages"`
	Prerequisites      string      `json:"prerequisites"`
	EstimatedTime      *int        `json:"estimated_time"`
	CategoryID         uint        `json:"category_id" binding:"required"`
	TagNames           []string    `json:"tag_names"`
	Priority           Priority    `json:"priority"`
	Status             EntryStatus `json:"status"`
}

type UpdateEntryRequest struct {
	Title              *string      `json:"title" binding:"omitempty,min=1,max=200"`
	ProblemDescription *string      `json:"problem_description"`
	Solution           *string      `json:"solution"`
	StepsToReproduce   *string      `json:"steps_to_reproduce"`
	EnvironmentDetails *string      `json:"environment_details"`
	ErrorMessages      *string      `json:"error_messages"`
	Prerequisites      *string      `json:"prerequisites"`
	EstimatedTime      *int         `json:"estimated_time"`
	CategoryID         *uint        `json:"category_id"`
	TagNames           *[]string    `json:"tag_names"`
	Priority           *Priority    `json:"priority"`
	Status             *EntryStatus `json:"status"`
	ChangeSummary      string       `json:"change_summary"`
}

type VerifyEntryRequest struct {
	Notes string `json:"notes"`
}

type CastVoteRequest struct {
	VoteType VoteType `json:"vote_type" binding:"required,oneof=UP DOWN"`
}

// VoteResult echoes the vote with the recomputed counters so clients do
// not have to re-fetch the entry.
type VoteResult struct {
	Vote      *Vote `json:"vote"`
	Upvotes   int   `json:"upvotes"`
	Downvotes int   `json:"downvotes"`
	Score     int   `json:"score"`
}

type CreateCommentRequest struct {
	ParentID   *uint  `json:"parent_id"`
	Content    string `json:"content" binding:"required"`
	IsSolution bool   `json:"is_solution"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type CreateAttachmentRequest struct {
	OriginalFilename string         `json:"original_filename" binding:"required,max=255"`
	FileType         AttachmentType `json:"file_type" binding:"required"`
	FileSize         int64          `json:"file_size" binding:"required,min=1"`
	MimeType         string         `json:"mime_type" binding:"required,max=100"`
	Description      string         `json:"description" binding:"max=200"`
}

// AttachmentUpload pairs the stored metadata with a presigned PUT URL the
// client uses to push the bytes to object storage.
type AttachmentUpload struct {
	Attachment *Attachment `json:"attachment"`
	UploadURL  string      `json:"upload_url"`
}

type EntryListParams struct {
	Status     string `form:"status"`
	CategoryID uint   `form:"category_id"`
	TagID      uint   `form:"tag_id"`
	AuthorID   uint   `form:"author_id"`
	Verified   *bool  `form:"verified"`
	Search     string `form:"search"`
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=10"`
	SortBy     string `form:"sort_by,default=created_at"`
	SortOrder  string `form:"sort_order,default=desc"`
}

// Normalize clamps paging inputs to usable bounds. Binding defaults only
// cover absent parameters; explicit zero or out-of-range values land
// here.
func (p *EntryListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 || p.Limit > 100 {
		p.Limit = 10
	}
}
