package api

// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Error string `json:"error" example:"Server Error"`
}

// 回應給前端的錯誤訊息
const (
	MsgLoginFieldsRequired  = "Email and password are required."
	MsgAllFieldsRequired    = "All fields are required."
	MsgUpdateFieldsRequired = "Name, email, and role are required."
	MsgInvalidUserID        = "Invalid user ID."
	MsgInvalidCredentials   = "Invalid credentials."
	MsgUserNotFound         = "User not found."
	MsgUserConflict         = "Email or username already exists."
	MsgServerError          = "Server Error"
	MsgInvalidSession       = "Invalid or missing session."
	MsgForbidden            = "Admin privileges required."
	MsgRevocationDisabled   = "Session revocation is not available."
)
