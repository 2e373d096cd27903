package config

import (
	"crypto/sha256"
	"encoding/hex"
	"log"
	"time"

	"consent-backend/models"
)

// SeedDatabase inserts the baseline purposes and an initial cookie-banner
// policy. Safe to run on every boot: existing rows are left alone.
func SeedDatabase() {
	// ---------------- Purposes ----------------
	var purposeCount int64
	DB.Model(&models.ConsentPurpose{}).Count(&purposeCount)

	if purposeCount > 0 {
		log.Println("Purposes already seeded")
	} else {
		purposes := []models.ConsentPurpose{
			{
				Code:         models.PurposeNecessary,
				Name:         "Strictly Necessary",
				Description:  "Required for the site to function; cannot be disabled",
				IsEssential:  true,
				DataCategory: "technical",
				LegalBasis:   "legitimate_interest",
			},
			{
				Code:         models.PurposeFunctional,
				Name:         "Functional",
				Description:  "Remembers choices such as language or region",
				DataCategory: "preferences",
				LegalBasis:   "consent",
			},
			{
				Code:         models.PurposeAnalytics,
				Name:         "Analytics",
				Description:  "Helps understand how visitors use the site",
				DataCategory: "measurement",
				LegalBasis:   "consent",
			},
			{
				Code:         models.PurposeMarketing,
				Name:         "Marketing",
				Description:  "Used to deliver and measure advertising",
				DataCategory: "marketing",
				LegalBasis:   "consent",
			},
		}

		if err := DB.Create(&purposes).Error; err != nil {
			log.Printf("warning: failed to seed purposes: %v", err)
		} else {
			log.Println("Purposes seeded")
		}
	}

	// ---------------- Initial policy ----------------
	var policyCount int64
	DB.Model(&models.ConsentPolicy{}).
		Where("type = ?", models.PolicyTypeCookieBanner).
		Count(&policyCount)

	if policyCount > 0 {
		log.Println("Cookie banner policy already seeded")
		return
	}

	content := "Default cookie banner policy"
	hash := sha256.Sum256([]byte(content))
	policy := models.ConsentPolicy{
		Type:          models.PolicyTypeCookieBanner,
		Version:       "1.0",
		Name:          "Cookie Banner Policy",
		EffectiveDate: time.Now().UTC(),
		Content:       content,
		ContentHash:   hex.EncodeToString(hash[:]),
		IsActive:      true,
	}

	if err := DB.Create(&policy).Error; err != nil {
		log.Printf("warning: failed to seed cookie banner policy: %v", err)
	} else {
		log.Println("Cookie banner policy seeded")
	}
}
