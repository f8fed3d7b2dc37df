package consts

const (
	MimePrefixImage = "image/"
)

// AllowedImageTypes 允许上传的图片 MIME 类型
var AllowedImageTypes = map[string]struct{}{
	"image/jpg":  {},
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	TopPostLimit    = 10
)

// gin.Context 中的键
const (
	CtxUserID = "user_id"
	CtxRoles  = "roles"
)
