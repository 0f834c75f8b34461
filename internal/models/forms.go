package models

// CommentForm is a submitted comment or reply
type CommentForm struct {
	AuthorName string `form:"author_name"`
	Content    string `form:"content"`
	Parent     int64  `form:"parent"`
}

// RegisterForm is a submitted registration
type RegisterForm struct {
	Username string `form:"username"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

// LoginForm is a submitted login
type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// RoleForm changes a user's role from the admin area
type RoleForm struct {
	Role Role `form:"role"`
}
