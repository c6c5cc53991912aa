// File: cmd/service/main.go
// @title        Lunai Users API
// @version      1.0
// @description  Lunai 使用者管理後端 API 文件
// @host         localhost:3010
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer <token>
package main

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	_ "lunai-users/docs" // 引入 swag 產出的 docs
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		logrus.WithError(err).Error("service stopped")
		exitFunc(1)
	}
}
