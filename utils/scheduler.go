package utils

import (
	"log"
	"time"

	"learnhub/database"
	courseModels "learnhub/models/course"

	"github.com/robfig/cron/v3"
)

// InitializePurchaseScheduler starts the daily job that reconciles and
// expires stale pending purchases.
func InitializePurchaseScheduler() *cron.Cron {
	log.Println("[PURCHASE-SCHEDULER] Initializing purchase scheduler...")

	c := cron.New()

	// Run daily at 3 AM
	c.AddFunc("0 3 * * *", func() {
		log.Println("[PURCHASE-SCHEDULER] Running daily pending-purchase sweep...")
		ReconcilePendingPurchases()
		ExpireStalePurchases()
	})

	c.Start()
	log.Println("[PURCHASE-SCHEDULER] Purchase scheduler started - runs daily at 3 AM")
	return c
}

// ReconcilePendingPurchases asks the provider about pending sessions whose
// webhook may have been missed and completes any that actually paid.
func ReconcilePendingPurchases() {
	db := database.Database.Db

	var pending []courseModels.Purchase
	if err := db.Where("status = ? AND checkout_session_id <> '' AND is_deleted = ?",
		courseModels.PurchasePending, false).Find(&pending).Error; err != nil {
		log.Printf("[PURCHASE-SCHEDULER] Error fetching pending purchases: %v", err)
		return
	}

	log.Printf("[PURCHASE-SCHEDULER] Found %d pending purchases to reconcile", len(pending))

	for _, p := range pending {
		session, err := GetCheckoutSession(p.CheckoutSessionID)
		if err != nil {
			log.Printf("[PURCHASE-SCHEDULER] Error fetching session %s: %v", p.CheckoutSessionID, err)
			continue
		}
		if session.Status == "completed" {
			now := time.Now()
			p.Status = courseModels.PurchaseCompleted
			p.CompletedAt = &now
			if err := db.Save(&p).Error; err != nil {
				log.Printf("[PURCHASE-SCHEDULER] Error completing purchase %s: %v", p.Reference, err)
				continue
			}
			log.Printf("[PURCHASE-SCHEDULER] Reconciled purchase %s", p.Reference)
		}
	}
}

// ExpireStalePurchases marks pending purchases older than 24h as expired
func ExpireStalePurchases() {
	db := database.Database.Db
	cutoff := time.Now().Add(-24 * time.Hour)

	result := db.Model(&courseModels.Purchase{}).
		Where("status = ? AND created_at < ? AND is_deleted = ?", courseModels.PurchasePending, cutoff, false).
		Update("status", courseModels.PurchaseExpired)
	if result.Error != nil {
		log.Printf("[PURCHASE-SCHEDULER] Error expiring purchases: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[PURCHASE-SCHEDULER] Expired %d stale purchases", result.RowsAffected)
	}
}
