package dto

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active blocked"`
}

type DashboardResponse struct {
	TotalUsers    int64 `json:"total_users"`
	ProUsers      int64 `json:"pro_users"`
	TotalPosts    int64 `json:"total_posts"`
	TotalAnalyses int64 `json:"total_analyses"`
	BadgesAwarded int64 `json:"badges_awarded"`
}
