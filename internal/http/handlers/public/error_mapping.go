package public

import (
	"errors"
	"net/http"

	"github.com/martstore/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	status int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackStatus int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.status, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackStatus, fallbackMsg, err)
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, status: http.StatusNotFound, msg: "Product not found"},
	{target: service.ErrCartItemNotFound, status: http.StatusNotFound, msg: "Cart item not found"},
	{target: service.ErrInvalidInput, status: http.StatusUnprocessableEntity, msg: "Invalid cart item"},
}

var orderCreateErrorRules = []mappedHandlerError{
	{target: service.ErrEmptyCart, status: http.StatusBadRequest, msg: "Cart is empty"},
	{target: service.ErrProductNotFound, status: http.StatusBadRequest, msg: "Product no longer available"},
	{target: service.ErrInvalidInput, status: http.StatusUnprocessableEntity, msg: "Invalid cart item"},
}

var authErrorRules = []mappedHandlerError{
	{target: service.ErrNameTooShort, status: http.StatusUnprocessableEntity, msg: "Name is too short"},
	{target: service.ErrInvalidEmail, status: http.StatusUnprocessableEntity, msg: "Invalid email address"},
	{target: service.ErrPasswordTooShort, status: http.StatusUnprocessableEntity, msg: "Password is too short"},
	{target: service.ErrEmailExists, status: http.StatusUnprocessableEntity, msg: "Email already registered"},
	{target: service.ErrInvalidCredentials, status: http.StatusUnauthorized, msg: "Invalid email or password"},
	{target: service.ErrUserDisabled, status: http.StatusForbidden, msg: "Account disabled"},
	{target: service.ErrCaptchaRequired, status: http.StatusUnprocessableEntity, msg: "Captcha is required"},
	{target: service.ErrCaptchaInvalid, status: http.StatusUnprocessableEntity, msg: "Captcha verification failed"},
}

func respondCartError(c *gin.Context, err error) {
	// 加购预检也会报库存不足
	var stockErr *service.InsufficientStockError
	if errors.As(err, &stockErr) {
		respondError(c, http.StatusBadRequest, "Insufficient stock for "+stockErr.ProductName, nil)
		return
	}
	respondWithMappedError(c, err, cartErrorRules, http.StatusInternalServerError, "Cart operation failed")
}

func respondOrderCreateError(c *gin.Context, err error) {
	// 库存不足带上具体商品名
	var stockErr *service.InsufficientStockError
	if errors.As(err, &stockErr) {
		respondError(c, http.StatusBadRequest, "Insufficient stock for "+stockErr.ProductName, nil)
		return
	}
	respondWithMappedError(c, err, orderCreateErrorRules, http.StatusInternalServerError, "Order creation failed")
}

func respondAuthError(c *gin.Context, err error) {
	respondWithMappedError(c, err, authErrorRules, http.StatusInternalServerError, "Authentication failed")
}
