package controllers

import (
	"github.com/gin-gonic/gin"

	"easyshop/internal/services"
	"easyshop/pkg/utils"
)

type WebhookController struct {
	webhookService services.WebhookService
}

func NewWebhookController(webhookService services.WebhookService) *WebhookController {
	return &WebhookController{
		webhookService: webhookService,
	}
}

// HandleOnepipe godoc
// @Summary Receive a OnePipe payment-result event
// @Description Signature-verified, idempotent on transaction_reference
// @Tags Webhooks
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /webhooks/onepipe [post]
func (w *WebhookController) HandleOnepipe(c *gin.Context) {
	w.webhookService.HandleWebhook(c)
}

// Health godoc
// @Summary Webhook processing health
// @Description Reports attempts recorded today and the most recent event
// @Tags Webhooks
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /webhooks/health [get]
func (w *WebhookController) Health(c *gin.Context) {
	snapshot, err := w.webhookService.HealthSnapshot(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, snapshot, "Webhook processing healthy")
}
