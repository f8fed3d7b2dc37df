package model

// All 参与 AutoMigrate 的模型
func All() []any {
	return []any{&Image{}, &User{}, &Post{}, &PostStatus{}, &PostImage{}}
}
