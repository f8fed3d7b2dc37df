package dto

// RegisterDTO 注册，multipart 表单
type RegisterDTO struct {
	Email    string `form:"email" validate:"required,email,max=255"`
	Password string `form:"password" validate:"required,min=8,max=20"`
	Nickname string `form:"nickname" validate:"required,min=1,max=12"`
}

// LoginDTO 登录
type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResultDTO 登录成功返回的用户信息
type LoginResultDTO struct {
	UserID       uint64 `json:"userId"`
	Email        string `json:"email"`
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profileImage"`
}

// UserProfileDTO 当前用户信息
type UserProfileDTO struct {
	UserID       uint64 `json:"userId"`
	Email        string `json:"email"`
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profileImage"`
	Role         string `json:"role"`
}

// RegisterResultDTO 注册结果
type RegisterResultDTO struct {
	UserID uint64 `json:"userId"`
}
