package paymentRoutes

import (
	controllers "learnhub/controllers/course"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes sets up the payment provider webhook. The webhook is
// authenticated by signature, not JWT.
func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payments")

	paymentGroup.Post("/webhook", controllers.PaymentWebhook)
}
