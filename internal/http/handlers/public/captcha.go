package public

import (
	"errors"
	"net/http"

	"github.com/martstore/internal/http/response"
	"github.com/martstore/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCaptcha 生成登录图片验证码
func (h *Handler) GetCaptcha(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		if errors.Is(err, service.ErrCaptchaDisabled) {
			response.Success(c, "Captcha disabled", gin.H{"enabled": false})
			return
		}
		respondError(c, http.StatusInternalServerError, "Captcha generation failed", err)
		return
	}
	response.Success(c, "OK", gin.H{
		"enabled":      true,
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}
